package clients

import (
	"log/slog"
	"time"

	"github.com/tendant/simple-clients/pkg/errors"
)

// Wildcard grants every scope or origin when present in the corresponding
// list
const Wildcard = "*"

// Client represents an authorized API caller with its authorization
// attributes. Instances are plain data constructed by a repository; the
// validation methods never touch storage.
type Client struct {
	// ID is the opaque primary identifier, immutable once created
	ID string
	// Name is display-only
	Name string
	// UserID is an optional owner reference
	UserID string
	// HashedSecret is the verification material; never exposed in plaintext
	// after creation
	HashedSecret string
	// ApiKey is an optional alternate credential matched directly, without a
	// secret verification step
	ApiKey string
	// IpAddresses lists allowed origins; contains Wildcard for any origin
	IpAddresses []string
	// Scopes lists granted permission tags; contains Wildcard for all scopes
	Scopes []string
	// PersonalAccessClient and PasswordClient flag first-party clients
	PersonalAccessClient bool
	PasswordClient       bool
	// Revoked clients never authenticate
	Revoked bool
	// ExpiresAt is optional; expired clients are filtered at lookup time by
	// the repositories, not re-checked here
	ExpiresAt *time.Time
	// PlainTextSecret is only populated on the create/rotate result, never
	// stored
	PlainTextSecret string
}

// LogValue keeps secrets out of structured logs
func (c *Client) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", c.ID),
		slog.String("name", c.Name),
		slog.Bool("revoked", c.Revoked),
	)
}

// FirstParty reports whether the client is a personal-access or
// password-grant client. First-party clients bypass IP restrictions.
func (c *Client) FirstParty() bool {
	return c.PersonalAccessClient || c.PasswordClient
}

// Confidential reports whether the client holds a secret
func (c *Client) Confidential() bool {
	return c.HashedSecret != ""
}

// HasScope reports whether the client may act on the requested scopes: true
// when the granted set contains the wildcard, when nothing is requested, or
// when any one requested scope is granted.
func (c *Client) HasScope(scopes ...string) bool {
	granted := c.Scopes
	if len(granted) == 0 {
		granted = []string{Wildcard}
	}
	for _, g := range granted {
		if g == Wildcard {
			return true
		}
	}
	if len(scopes) == 0 {
		return true
	}
	for _, requested := range scopes {
		for _, g := range granted {
			if requested == g {
				return true
			}
		}
	}
	return false
}

// MissingScopes returns the requested scopes the client does not hold
func (c *Client) MissingScopes(scopes []string) []string {
	var missing []string
	for _, requested := range scopes {
		found := false
		for _, g := range c.Scopes {
			if requested == g {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, requested)
		}
	}
	return missing
}

// Validate runs the authorization decision for a request: revocation first,
// then scope membership, then origin. First-party clients skip the origin
// check entirely. An empty requestIp or a wildcard allow-list passes.
func (c *Client) Validate(scopes []string, requestIp string) error {
	if c.Revoked {
		return errors.New(errors.ErrCodeClientRevoked, "client has been revoked")
	}

	if !c.HasScope(scopes...) {
		return errors.New(errors.ErrCodeMissingScopes, "client is missing required scopes").
			WithDetail("missing_scopes", c.MissingScopes(scopes))
	}

	if c.FirstParty() {
		return nil
	}

	// An unset allow-list normalizes to allow-all, never deny-all
	ips := c.IpAddresses
	if len(ips) == 0 {
		return nil
	}
	for _, ip := range ips {
		if ip == Wildcard {
			return nil
		}
	}
	if requestIp == "" {
		return nil
	}
	for _, ip := range ips {
		if ip == requestIp {
			return nil
		}
	}
	return errors.Newf(errors.ErrCodeOriginForbidden, "unauthorized request origin %s", requestIp)
}
