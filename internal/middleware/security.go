// internal/middleware/security.go
//
// Security-header middleware.
//
// Injects standard headers on every response:
//
//   - Strict-Transport-Security  forces HTTPS (2 years + preload)
//   - Content-Security-Policy    self-only, inline styles allowed for the
//     hand-written page CSS
//   - X-Frame-Options            click-jacking defence
//   - X-Content-Type-Options     MIME-sniffing defence
//   - Referrer-Policy            drops path/query from Referer
//   - Permissions-Policy         disables powerful features
//
// Headers are added after next.ServeHTTP so handlers may set their own
// values first; the middleware never overwrites an existing one.

package middleware

import "net/http"

// Security sets security headers for every response.
func Security(next http.Handler) http.Handler {
	const (
		hsts = "max-age=63072000; includeSubDomains; preload"
		csp  = "default-src 'self'; img-src 'self' data:; style-src 'self' 'unsafe-inline'; " +
			"object-src 'none'; base-uri 'self'; frame-ancestors 'none'"
		xfo   = "DENY"
		nosn  = "nosniff"
		refer = "strict-origin-when-cross-origin"
		perm  = "geolocation=(), microphone=(), camera=()"
	)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)

		h := w.Header()
		if h.Get("Strict-Transport-Security") == "" {
			h.Add("Strict-Transport-Security", hsts)
		}
		if h.Get("Content-Security-Policy") == "" {
			h.Add("Content-Security-Policy", csp)
		}
		if h.Get("X-Frame-Options") == "" {
			h.Add("X-Frame-Options", xfo)
		}
		if h.Get("X-Content-Type-Options") == "" {
			h.Add("X-Content-Type-Options", nosn)
		}
		if h.Get("Referrer-Policy") == "" {
			h.Add("Referrer-Policy", refer)
		}
		if h.Get("Permissions-Policy") == "" {
			h.Add("Permissions-Policy", perm)
		}
	})
}
