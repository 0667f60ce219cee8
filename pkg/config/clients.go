package config

// CredentialsConfig holds the transport configuration for resolving client
// credentials from incoming requests
// This is shared across all services to avoid duplication
type CredentialsConfig struct {
	// AppKey signs and verifies client JWT credentials
	AppKey string `env:"CLIENTS_APP_KEY" env-default:"very-secure-app-key"`
	// JwtHeaderMethod is the Authorization scheme token that marks a JWT
	// credential, e.g. "Authorization: jwt <token>"
	JwtHeaderMethod string `env:"JWT_CREDENTIALS_HEADER_NAME" env-default:"jwt"`
	// JwtCookieName is the cookie carrying a JWT credential
	JwtCookieName string `env:"JWT_CREDENTIALS_COOKIE_NAME" env-default:"jwt-cookie"`
}

// SecretsConfig holds client secret generation and hashing configuration
type SecretsConfig struct {
	// Length is the entropy of generated client secrets in bytes; values
	// below 32 are raised to 32
	Length int `env:"CLIENT_SECRET_LENGTH" env-default:"32"`
	// ApiKeyPrefix is prepended to generated keys as "<prefix>_<key>"
	ApiKeyPrefix string `env:"CLIENT_API_KEY_PREFIX" env-default:""`
	// Hash selects the secret verification strategy: "argon2", "bcrypt" or
	// "plain"
	Hash string `env:"CLIENT_SECRET_HASH" env-default:"argon2"`
}

// NewCredentialsConfigFromEnv creates a CredentialsConfig from environment variables
func NewCredentialsConfigFromEnv() CredentialsConfig {
	return CredentialsConfig{
		AppKey:          GetEnvOrDefault("CLIENTS_APP_KEY", "very-secure-app-key"),
		JwtHeaderMethod: GetEnvOrDefault("JWT_CREDENTIALS_HEADER_NAME", "jwt"),
		JwtCookieName:   GetEnvOrDefault("JWT_CREDENTIALS_COOKIE_NAME", "jwt-cookie"),
	}
}

// NewSecretsConfigFromEnv creates a SecretsConfig from environment variables
func NewSecretsConfigFromEnv() SecretsConfig {
	return SecretsConfig{
		Length:       GetEnvInt("CLIENT_SECRET_LENGTH", 32),
		ApiKeyPrefix: GetEnvOrDefault("CLIENT_API_KEY_PREFIX", ""),
		Hash:         GetEnvOrDefault("CLIENT_SECRET_HASH", "argon2"),
	}
}
