// Package clients defines the authorized client model, the authorization
// decision logic, and the client store.
//
// A Client is plain data constructed by a repository; Validate runs the
// per-request authorization decision (revocation, scope membership,
// first-party privilege, IP allow-list) without touching storage. Two
// repository implementations are provided: an in-memory store for development
// and tests, and a PostgreSQL store backed by pgx.
package clients
