package server

import (
	"net/http"
	"slices"
	"strings"
)

// DefaultMaxOrder is the largest order served by default.
const DefaultMaxOrder = 512

// SecurityConfig holds the response hardening and request limits of the API.
type SecurityConfig struct {
	EnableCORS     bool
	AllowedOrigins []string // "*" allows any origin
	AllowedMethods []string
	// MaxOrder caps the 'n' parameter. Zero disables the cap.
	MaxOrder int
}

// DefaultSecurityConfig allows GET from any origin and caps the order at
// DefaultMaxOrder.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		MaxOrder:       DefaultMaxOrder,
	}
}

// securityHeaders are set on every response. The API only serves JSON, so
// nothing may be framed or loaded from it.
var securityHeaders = [][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Referrer-Policy", "strict-origin-when-cross-origin"},
	{"Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"},
}

// allowedOrigin returns the Access-Control-Allow-Origin value for origin,
// or "" when the origin is not allowed.
func (c SecurityConfig) allowedOrigin(origin string) string {
	if slices.Contains(c.AllowedOrigins, "*") {
		return "*"
	}
	if origin != "" && slices.Contains(c.AllowedOrigins, origin) {
		return origin
	}
	return ""
}

// SecurityMiddleware sets the security headers and, when CORS is enabled,
// the CORS headers. CORS preflight requests end here with 204.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	methods := strings.Join(config.AllowedMethods, ", ")
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for _, kv := range securityHeaders {
			h.Set(kv[0], kv[1])
		}

		if config.EnableCORS {
			if origin := config.allowedOrigin(r.Header.Get("Origin")); origin != "" {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", methods)
				h.Set("Access-Control-Allow-Headers", "Content-Type, Accept")
				h.Set("Access-Control-Max-Age", "86400")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}

		next(w, r)
	}
}
