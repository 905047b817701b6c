package server

import (
	"net/http"
	"slices"
	"strings"
)

// SecurityConfig controls the response headers added by SecurityMiddleware.
type SecurityConfig struct {
	// AllowedMethods lists the methods served; others get 405.
	AllowedMethods []string
	// ContentSecurityPolicy is sent verbatim when non-empty.
	ContentSecurityPolicy string
}

// DefaultSecurityConfig serves read-only requests with a locked-down policy.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		AllowedMethods:        []string{http.MethodGet, http.MethodHead},
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
	}
}

// SecurityMiddleware sets defensive headers and rejects methods outside
// cfg.AllowedMethods.
func SecurityMiddleware(cfg SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		if cfg.ContentSecurityPolicy != "" {
			h.Set("Content-Security-Policy", cfg.ContentSecurityPolicy)
		}

		if len(cfg.AllowedMethods) > 0 && !slices.Contains(cfg.AllowedMethods, r.Method) {
			w.Header().Set("Allow", strings.Join(cfg.AllowedMethods, ", "))
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}
