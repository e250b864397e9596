// internal/session/guard.go
//
// Admin-guard middleware.
//
// Every path under /admin except the login page requires an authenticated
// principal in the session.  Failure is a 303 redirect to the login form,
// never a 4xx body; an anonymous visitor poking at console URLs learns
// nothing beyond "there is a login page."

package session

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const (
	adminPrefix = "/admin"
	loginPath   = "/admin/login"
)

// AdminGuard short-circuits unauthenticated requests to admin routes.
// It must run inside the session Middleware so FromContext sees the
// decoded state.
func AdminGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if guarded(path) {
			if _, ok := FromContext(r.Context()).AdminID(); !ok {
				zap.L().Debug("admin guard redirect",
					zap.String("path", path))
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// guarded reports whether path requires authentication.
func guarded(path string) bool {
	if path != adminPrefix && !strings.HasPrefix(path, adminPrefix+"/") {
		return false
	}
	return path != loginPath
}
