package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/tendant/chi-demo/app"
	dbutils "github.com/tendant/db-utils/db"

	"github.com/tendant/simple-clients/pkg/clients"
	clientsapi "github.com/tendant/simple-clients/pkg/clients/api"
	"github.com/tendant/simple-clients/pkg/config"
	"github.com/tendant/simple-clients/pkg/credentials"
	"github.com/tendant/simple-clients/pkg/guard"
	"github.com/tendant/simple-clients/pkg/secrets"
)

type Config struct {
	DbConfig          config.DatabaseConfig
	AppConfig         app.AppConfig
	CredentialsConfig config.CredentialsConfig
	SecretsConfig     config.SecretsConfig
}

func main() {

	cfg := Config{}
	cleanenv.ReadEnv(&cfg)

	server := app.DefaultApp()

	app.RegisterHealthzRoutes(server.R)

	dbConfig := cfg.DbConfig.ToDbConfig()
	pool, err := dbutils.NewDbPool(context.Background(), dbConfig)
	if err != nil {
		slog.Error("Failed creating dbpool", "db", dbConfig.Database, "host", dbConfig.Host, "port", dbConfig.Port, "user", dbConfig.User)
		os.Exit(-1)
	}

	hasher := secrets.NewHasher(secrets.Mode(cfg.SecretsConfig.Hash))
	generator, err := secrets.NewGenerator(
		secrets.WithLength(cfg.SecretsConfig.Length),
		secrets.WithPrefix(cfg.SecretsConfig.ApiKeyPrefix),
	)
	if err != nil {
		slog.Error("Failed creating secret generator", "error", err)
		os.Exit(-1)
	}

	repository, err := clients.NewPostgresClientsRepository(pool, hasher, generator)
	if err != nil {
		slog.Error("Failed creating clients repository", "error", err)
		os.Exit(-1)
	}
	clientService := clients.NewClientService(repository)
	clientHandle := clientsapi.NewHandle(clientService)

	clientsGuard := guard.NewClientsGuard(repository, hasher, credentials.PipelineConfig{
		AppKey:          cfg.CredentialsConfig.AppKey,
		JwtHeaderMethod: cfg.CredentialsConfig.JwtHeaderMethod,
		JwtCookieName:   cfg.CredentialsConfig.JwtCookieName,
	})

	server.R.Group(func(r chi.Router) {
		r.Use(clientsGuard.FirstPartyClients)
		r.Route("/api/admin", clientHandle.Routes)
	})

	server.R.Group(func(r chi.Router) {
		r.Use(clientsGuard.Clients())
		r.Get("/api/whoami", func(w http.ResponseWriter, r *http.Request) {
			client := guard.RequestClient(r)
			if client == nil {
				slog.Error("Failed getting request client from context")
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			render.JSON(w, r, map[string]interface{}{
				"client_id": client.ID,
				"name":      client.Name,
				"scopes":    client.Scopes,
			})
		})
	})

	server.Run()

}
