// Package errors provides structured error handling with error codes for simple-clients.
//
// This package standardizes error handling across all packages with typed error
// codes, structured error details, and automatic HTTP status code mapping. Every
// authorization failure code maps to HTTP 401 so the guard boundary never leaks
// internal detail beyond the message text.
//
// Creating errors with codes:
//
//	import "github.com/tendant/simple-clients/pkg/errors"
//
//	// Create a simple error
//	err := errors.New(errors.ErrCodeClientNotFound, "access client not found")
//
//	// Create error with formatted message
//	err := errors.Newf(errors.ErrCodeOriginForbidden, "unauthorized request origin %s", ip)
//
//	// Wrap an existing error
//	err := errors.Wrap(dbErr, errors.ErrCodeInternal, "failed to query client")
//
// Inspecting errors:
//
//	if errors.IsCode(err, errors.ErrCodeClientRevoked) { ... }
//	status := errors.MapErrorCodeToHTTPStatus(errors.GetCode(err))
package errors
