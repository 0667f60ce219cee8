package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/tendant/simple-clients/pkg/clients"
)

// Handle exposes client administration endpoints
type Handle struct {
	clientService *clients.ClientService
}

// NewHandle creates a client administration API handler
func NewHandle(clientService *clients.ClientService) *Handle {
	return &Handle{
		clientService: clientService,
	}
}

// Routes mounts the administration endpoints on a chi router
func (h *Handle) Routes(r chi.Router) {
	r.Post("/clients", h.CreateClient)
	r.Get("/clients/{id}", h.GetClient)
	r.Put("/clients/{id}", h.UpdateClient)
	r.Delete("/clients/{id}", h.DeleteClient)
	r.Post("/clients/{id}/rotate", h.RotateSecret)
	r.Post("/clients/{id}/revoke", h.RevokeClient)
	r.Get("/users/{userId}/clients", h.ListUserClients)
}

// CreateClientRequest is the client registration payload
type CreateClientRequest struct {
	ID                   string     `json:"id,omitempty"`
	Name                 string     `json:"name"`
	UserID               string     `json:"user_id,omitempty"`
	Secret               string     `json:"secret,omitempty"`
	IpAddresses          []string   `json:"ip_addresses,omitempty"`
	Scopes               []string   `json:"scopes,omitempty"`
	PersonalAccessClient bool       `json:"personal_access_client,omitempty"`
	PasswordClient       bool       `json:"password_client,omitempty"`
	ExpiresAt            *time.Time `json:"expires_at,omitempty"`
}

// UpdateClientRequest is the partial update payload; absent fields are left
// unchanged
type UpdateClientRequest struct {
	Name                 *string    `json:"name,omitempty"`
	UserID               *string    `json:"user_id,omitempty"`
	IpAddresses          []string   `json:"ip_addresses,omitempty"`
	Scopes               []string   `json:"scopes,omitempty"`
	PersonalAccessClient *bool      `json:"personal_access_client,omitempty"`
	PasswordClient       *bool      `json:"password_client,omitempty"`
	Revoked              *bool      `json:"revoked,omitempty"`
	ExpiresAt            *time.Time `json:"expires_at,omitempty"`
}

// ClientResponse is the representation returned to administrators. The
// plaintext secret is only present on create and rotate responses.
type ClientResponse struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name,omitempty"`
	UserID               string     `json:"user_id,omitempty"`
	ApiKey               string     `json:"api_key,omitempty"`
	IpAddresses          []string   `json:"ip_addresses"`
	Scopes               []string   `json:"scopes"`
	PersonalAccessClient bool       `json:"personal_access_client"`
	PasswordClient       bool       `json:"password_client"`
	Revoked              bool       `json:"revoked"`
	ExpiresAt            *time.Time `json:"expires_at,omitempty"`
	PlainTextSecret      string     `json:"plain_text_secret,omitempty"`
}

func toClientResponse(client *clients.Client) ClientResponse {
	return ClientResponse{
		ID:                   client.ID,
		Name:                 client.Name,
		UserID:               client.UserID,
		ApiKey:               client.ApiKey,
		IpAddresses:          client.IpAddresses,
		Scopes:               client.Scopes,
		PersonalAccessClient: client.PersonalAccessClient,
		PasswordClient:       client.PasswordClient,
		Revoked:              client.Revoked,
		ExpiresAt:            client.ExpiresAt,
		PlainTextSecret:      client.PlainTextSecret,
	}
}

// CreateClient registers a new client
func (h *Handle) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req CreateClientRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		slog.Error("Failed to parse create client request", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	client, err := h.clientService.CreateClient(r.Context(), clients.CreateClientParams{
		ID:                   req.ID,
		Name:                 req.Name,
		UserID:               req.UserID,
		Secret:               req.Secret,
		IpAddresses:          req.IpAddresses,
		Scopes:               req.Scopes,
		PersonalAccessClient: req.PersonalAccessClient,
		PasswordClient:       req.PasswordClient,
		ExpiresAt:            req.ExpiresAt,
	})
	if err != nil {
		slog.Error("Failed to create client", "error", err)
		http.Error(w, "failed to create client", http.StatusInternalServerError)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toClientResponse(client))
}

// GetClient returns a client by id
func (h *Handle) GetClient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	client, err := h.clientService.GetClient(r.Context(), id)
	if err != nil {
		slog.Error("Failed to get client", "clientId", id, "error", err)
		http.Error(w, "failed to get client", http.StatusInternalServerError)
		return
	}
	if client == nil {
		http.Error(w, "client not found", http.StatusNotFound)
		return
	}
	render.JSON(w, r, toClientResponse(client))
}

// UpdateClient applies a partial update
func (h *Handle) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req UpdateClientRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		slog.Error("Failed to parse update client request", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	client, err := h.clientService.UpdateClient(r.Context(), id, clients.UpdateClientParams{
		Name:                 req.Name,
		UserID:               req.UserID,
		IpAddresses:          req.IpAddresses,
		Scopes:               req.Scopes,
		PersonalAccessClient: req.PersonalAccessClient,
		PasswordClient:       req.PasswordClient,
		Revoked:              req.Revoked,
		ExpiresAt:            req.ExpiresAt,
	})
	if err != nil {
		slog.Error("Failed to update client", "clientId", id, "error", err)
		http.Error(w, "failed to update client", http.StatusInternalServerError)
		return
	}
	if client == nil {
		http.Error(w, "client not found", http.StatusNotFound)
		return
	}
	render.JSON(w, r, toClientResponse(client))
}

// DeleteClient removes a client
func (h *Handle) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	affected, err := h.clientService.DeleteClient(r.Context(), id)
	if err != nil {
		slog.Error("Failed to delete client", "clientId", id, "error", err)
		http.Error(w, "failed to delete client", http.StatusInternalServerError)
		return
	}
	render.JSON(w, r, map[string]int64{"deleted": affected})
}

// RotateSecret replaces the client secret and returns the new plaintext value
func (h *Handle) RotateSecret(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		Secret string `json:"secret"`
	}
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		slog.Error("Failed to parse rotate secret request", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Secret == "" {
		http.Error(w, "secret is required", http.StatusBadRequest)
		return
	}

	client, err := h.clientService.RotateSecret(r.Context(), id, req.Secret)
	if err != nil {
		slog.Error("Failed to rotate client secret", "clientId", id, "error", err)
		http.Error(w, "failed to rotate client secret", http.StatusInternalServerError)
		return
	}
	if client == nil {
		http.Error(w, "client not found", http.StatusNotFound)
		return
	}
	render.JSON(w, r, toClientResponse(client))
}

// RevokeClient marks a client as revoked
func (h *Handle) RevokeClient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	client, err := h.clientService.RevokeClient(r.Context(), id)
	if err != nil {
		slog.Error("Failed to revoke client", "clientId", id, "error", err)
		http.Error(w, "failed to revoke client", http.StatusInternalServerError)
		return
	}
	if client == nil {
		http.Error(w, "client not found", http.StatusNotFound)
		return
	}
	render.JSON(w, r, toClientResponse(client))
}

// ListUserClients lists the clients owned by a user
func (h *Handle) ListUserClients(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	owned, err := h.clientService.GetUserClients(r.Context(), userID)
	if err != nil {
		slog.Error("Failed to list user clients", "userId", userID, "error", err)
		http.Error(w, "failed to list user clients", http.StatusInternalServerError)
		return
	}

	responses := make([]ClientResponse, 0, len(owned))
	for _, client := range owned {
		responses = append(responses, toClientResponse(client))
	}
	render.JSON(w, r, responses)
}
