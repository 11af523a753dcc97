package middleware

import (
	"net/http"
	"strings"
)

// APIContentSecurityPolicy forbids framing and everything else; JSON responses load nothing.
const APIContentSecurityPolicy = "frame-ancestors 'none'"

// PageContentSecurityPolicy allows the console pages to load their own assets and the pinned htmx bundle.
const PageContentSecurityPolicy = "default-src 'self'; script-src 'self' https://unpkg.com; " +
	"style-src 'self' 'unsafe-inline'; form-action 'self'; frame-ancestors 'none'"

// Security returns middleware that sets OWASP-recommended security headers on all responses.
//
// Paths with a prefix in skipPaths are left untouched (e.g. "/api-docs", whose
// documentation UI needs a looser policy).
func Security(contentSecurityPolicy string, skipPaths ...string) func(http.Handler) http.Handler {
	if contentSecurityPolicy == "" {
		contentSecurityPolicy = APIContentSecurityPolicy
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, p := range skipPaths {
				if strings.HasPrefix(r.URL.Path, p) {
					next.ServeHTTP(w, r)
					return
				}
			}
			h := w.Header()
			h.Set("Cache-Control", "no-store")
			h.Set("Content-Security-Policy", contentSecurityPolicy)
			h.Set("Cross-Origin-Opener-Policy", "same-origin")
			h.Set("Cross-Origin-Resource-Policy", "same-origin")
			h.Set(
				"Permissions-Policy",
				"accelerometer=(), camera=(), geolocation=(), gyroscope=(), magnetometer=(), microphone=(), payment=(), usb=()",
			)
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			next.ServeHTTP(w, r)
		})
	}
}
