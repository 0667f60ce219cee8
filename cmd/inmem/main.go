// Package main runs the client authentication service without a database,
// backed by the in-memory repository. Useful for:
// - Quick development and testing
// - Demo/prototype environments
// - Learning the API without database setup
//
// Note: All data is lost when the server stops. For production, use
// cmd/clientsd with PostgreSQL.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/chi-demo/app"
	"github.com/tendant/cors"

	"github.com/tendant/simple-clients/pkg/clients"
	clientsapi "github.com/tendant/simple-clients/pkg/clients/api"
	"github.com/tendant/simple-clients/pkg/credentials"
	"github.com/tendant/simple-clients/pkg/guard"
	"github.com/tendant/simple-clients/pkg/secrets"
)

const (
	appKey = "inmem-dev-secret-change-in-production"
	port   = 4000
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("Starting In-Memory Client Auth Service (no database required)")
	slog.Info(strings.Repeat("=", 60))

	hasher := secrets.NewHasher(secrets.ModeArgon2)
	generator, err := secrets.NewGenerator(secrets.WithPrefix("demo"))
	if err != nil {
		slog.Error("Failed creating secret generator", "error", err)
		os.Exit(-1)
	}

	repository := clients.NewInMemoryClientsRepository(hasher, generator)
	seeded := seedInitialData(repository)

	clientService := clients.NewClientService(repository)
	clientHandle := clientsapi.NewHandle(clientService)

	clientsGuard := guard.NewClientsGuard(repository, hasher, credentials.PipelineConfig{
		AppKey: appKey,
	})

	server := app.NewApp(
		app.WithPort(port),
		app.WithCORS(&cors.Options{
			AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
	)

	server.R.Route("/api/admin", clientHandle.Routes)

	server.R.Group(func(r chi.Router) {
		r.Use(clientsGuard.Clients())
		r.Get("/api/whoami", func(w http.ResponseWriter, r *http.Request) {
			client := guard.RequestClient(r)
			render.JSON(w, r, map[string]interface{}{
				"client_id": client.ID,
				"name":      client.Name,
				"scopes":    client.Scopes,
			})
		})
	})

	server.R.Group(func(r chi.Router) {
		r.Use(clientsGuard.Clients("reports:read"))
		r.Get("/api/reports", func(w http.ResponseWriter, r *http.Request) {
			render.PlainText(w, r, http.StatusText(http.StatusOK))
		})
	})

	server.R.Group(func(r chi.Router) {
		r.Use(clientsGuard.FirstPartyClients)
		r.Get("/api/internal", func(w http.ResponseWriter, r *http.Request) {
			render.PlainText(w, r, http.StatusText(http.StatusOK))
		})
	})

	slog.Info(strings.Repeat("=", 60))
	slog.Info("In-Memory Client Auth Service Ready")
	slog.Info("")
	slog.Info("Seeded demo client:")
	slog.Info("  Client ID: " + seeded.ID)
	slog.Info("  Secret:    " + seeded.PlainTextSecret)
	slog.Info("  API key:   " + seeded.ApiKey)
	slog.Info("")
	slog.Info("API Endpoints:")
	slog.Info("  POST /api/admin/clients      - Register client")
	slog.Info("  GET  /api/whoami             - Resolved client (auth required)")
	slog.Info("  GET  /api/reports            - Requires reports:read scope")
	slog.Info("  GET  /api/internal           - First-party clients only")
	slog.Info(strings.Repeat("=", 60))

	server.Run()
}

func seedInitialData(repository *clients.InMemoryClientsRepository) *clients.Client {
	seeded, err := repository.Create(context.Background(), clients.CreateClientParams{
		Name:                 "demo-client",
		UserID:               "demo-user",
		Scopes:               []string{"reports:read"},
		PersonalAccessClient: true,
	})
	if err != nil {
		slog.Error("Failed seeding demo client", "error", err)
		os.Exit(-1)
	}
	return seeded
}
