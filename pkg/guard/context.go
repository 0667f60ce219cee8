package guard

import (
	"context"
	"net/http"

	"github.com/tendant/simple-clients/pkg/clients"
)

// contextKey is a value for use with context.WithValue. It's used as
// a pointer so it fits in an interface{} without allocation. This technique
// for defining context keys was copied from Go 1.7's new use of context in net/http.
type contextKey struct {
	name string
}

func (k *contextKey) String() string {
	return "clients context value " + k.name
}

// RequestClientKey holds the resolved client for downstream handlers
var RequestClientKey = &contextKey{"__X_REQUEST_CLIENT__"}

// WithRequestClient returns a context carrying the resolved client
func WithRequestClient(ctx context.Context, client *clients.Client) context.Context {
	return context.WithValue(ctx, RequestClientKey, client)
}

// RequestClient returns the client resolved for this request, or nil when the
// request did not pass through a guard
func RequestClient(r *http.Request) *clients.Client {
	client, _ := r.Context().Value(RequestClientKey).(*clients.Client)
	return client
}
