// Package secrets provides client secret hashing, verification and generation.
//
// Verification strategy is a deployment-time choice, not per-client: Argon2id
// (default), bcrypt, or constant-time plaintext comparison. The Generator
// produces random API keys with a configurable length and optional prefix.
package secrets
