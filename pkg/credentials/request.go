package credentials

import (
	"net"
	"net/http"
	"strings"
)

// AuthorizationHeaderValue parses the Authorization header and returns the
// payload when the scheme token matches method (case-insensitive). Returns
// empty string when the header is absent or carries a different scheme.
func AuthorizationHeaderValue(r *http.Request, method string) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), strings.ToLower(method)) {
		return ""
	}
	return strings.TrimSpace(header[len(method):])
}

// CookieValue returns the named cookie value or empty string
func CookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// RequestIP resolves the caller address, preferring the X-Real-IP header set
// by fronting proxies over the socket remote address.
func RequestIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
