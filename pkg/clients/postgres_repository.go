package clients

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tendant/simple-clients/pkg/secrets"
	"github.com/tendant/simple-clients/pkg/utils"
)

const clientColumns = `id, name, user_id, secret, api_key, ip_addresses, scopes,
	personal_access_client, password_client, revoked, expires_on`

// PostgresClientsRepository implements ClientsRepository using PostgreSQL.
// Scope and IP lists are stored comma-joined in text columns; expired clients
// are filtered out at query time.
type PostgresClientsRepository struct {
	db        *pgxpool.Pool
	hasher    secrets.SecretHasher
	generator *secrets.Generator
}

// NewPostgresClientsRepository creates a new PostgreSQL clients repository
func NewPostgresClientsRepository(db *pgxpool.Pool, hasher secrets.SecretHasher, generator *secrets.Generator) (*PostgresClientsRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection cannot be nil")
	}
	return &PostgresClientsRepository{
		db:        db,
		hasher:    hasher,
		generator: generator,
	}, nil
}

// FindByID retrieves a client by id, excluding expired clients
func (r *PostgresClientsRepository) FindByID(ctx context.Context, id string) (*Client, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+clientColumns+`
		FROM authorized_clients
		WHERE id = $1 AND (expires_on IS NULL OR expires_on > now())`, id)
	return scanClient(row)
}

// FindByApiKey retrieves a client by API key, excluding expired clients
func (r *PostgresClientsRepository) FindByApiKey(ctx context.Context, key string) (*Client, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+clientColumns+`
		FROM authorized_clients
		WHERE api_key = $1 AND (expires_on IS NULL OR expires_on > now())`, key)
	return scanClient(row)
}

// FindByUserID lists the clients owned by a user
func (r *PostgresClientsRepository) FindByUserID(ctx context.Context, userID string) ([]*Client, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+clientColumns+`
		FROM authorized_clients
		WHERE user_id = $1
		ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients by user: %w", err)
	}
	defer rows.Close()

	var owned []*Client
	for rows.Next() {
		client, err := scanClientRow(rows)
		if err != nil {
			return nil, err
		}
		owned = append(owned, client)
	}
	return owned, rows.Err()
}

// Create stores a new client and returns it with the plaintext secret set
func (r *PostgresClientsRepository) Create(ctx context.Context, params CreateClientParams) (*Client, error) {
	plainText := params.Secret
	if plainText == "" {
		generated, err := r.generator.Generate()
		if err != nil {
			return nil, fmt.Errorf("failed to generate client secret: %w", err)
		}
		plainText = generated
	}

	hashedSecret, err := r.hasher.Hash(plainText)
	if err != nil {
		return nil, fmt.Errorf("failed to hash client secret: %w", err)
	}

	id := params.ID
	if id == "" {
		id = uuid.Must(uuid.NewV7()).String()
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO authorized_clients (
			id, name, user_id, secret, api_key, ip_addresses, scopes,
			personal_access_client, password_client, revoked, expires_on
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		id,
		utils.ToNullString(params.Name),
		utils.ToNullString(params.UserID),
		hashedSecret,
		plainText,
		joinList(NormalizeIpAddresses(params.IpAddresses)),
		joinList(NormalizeScopes(params.Scopes)),
		params.PersonalAccessClient,
		params.PasswordClient,
		params.Revoked,
		utils.ToNullTime(params.ExpiresAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	client, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve created client: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("created client not found: %s", id)
	}
	client.PlainTextSecret = plainText
	return client, nil
}

// UpdateByID applies the non-nil fields of params to an existing client
func (r *PostgresClientsRepository) UpdateByID(ctx context.Context, id string, params UpdateClientParams) (*Client, error) {
	assignments := []string{"updated_at = now()"}
	args := []interface{}{id}

	appendSet := func(column string, value interface{}) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	var plainText string
	if params.Secret != nil {
		plainText = *params.Secret
		hashed, err := r.hasher.Hash(plainText)
		if err != nil {
			return nil, fmt.Errorf("failed to hash client secret: %w", err)
		}
		appendSet("secret", hashed)
		appendSet("api_key", plainText)
	}
	if params.Name != nil {
		appendSet("name", *params.Name)
	}
	if params.UserID != nil {
		appendSet("user_id", *params.UserID)
	}
	if params.IpAddresses != nil {
		appendSet("ip_addresses", joinList(NormalizeIpAddresses(params.IpAddresses)))
	}
	if params.Scopes != nil {
		appendSet("scopes", joinList(NormalizeScopes(params.Scopes)))
	}
	if params.PersonalAccessClient != nil {
		appendSet("personal_access_client", *params.PersonalAccessClient)
	}
	if params.PasswordClient != nil {
		appendSet("password_client", *params.PasswordClient)
	}
	if params.Revoked != nil {
		appendSet("revoked", *params.Revoked)
	}
	if params.ExpiresAt != nil {
		appendSet("expires_on", *params.ExpiresAt)
	}

	query := fmt.Sprintf(`UPDATE authorized_clients SET %s WHERE id = $1`,
		strings.Join(assignments, ", "))
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}

	client, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client != nil {
		client.PlainTextSecret = plainText
	}
	return client, nil
}

// DeleteByID removes a client and reports the number of rows affected
func (r *PostgresClientsRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM authorized_clients WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete client: %w", err)
	}
	return tag.RowsAffected(), nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanClient(row pgx.Row) (*Client, error) {
	client, err := scanClientRow(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return client, nil
}

func scanClientRow(row rowScanner) (*Client, error) {
	var (
		client      Client
		name        sql.NullString
		userID      sql.NullString
		secret      sql.NullString
		apiKey      sql.NullString
		ipAddresses sql.NullString
		scopes      sql.NullString
		expiresOn   sql.NullTime
	)
	err := row.Scan(
		&client.ID,
		&name,
		&userID,
		&secret,
		&apiKey,
		&ipAddresses,
		&scopes,
		&client.PersonalAccessClient,
		&client.PasswordClient,
		&client.Revoked,
		&expiresOn,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan client: %w", err)
	}

	client.Name = utils.FromNullString(name)
	client.UserID = utils.FromNullString(userID)
	client.HashedSecret = utils.FromNullString(secret)
	client.ApiKey = utils.FromNullString(apiKey)
	client.IpAddresses = splitList(utils.FromNullString(ipAddresses))
	client.Scopes = splitList(utils.FromNullString(scopes))
	client.ExpiresAt = utils.FromNullTime(expiresOn)
	return &client, nil
}

// joinList stores a list as comma-joined text, the representation the
// original authorized_clients table uses
func joinList(values []string) string {
	return strings.Join(values, ",")
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var values []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
