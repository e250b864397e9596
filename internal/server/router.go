// internal/server/router.go
//
// Root handler assembly.
//
// Middleware order, outermost first: force-HTTPS (when configured),
// access log + metrics, security headers, session codec, admin guard.
// Components then mount their sub-routers at their registered prefixes.

package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nlplab/labsite/internal/component"
	"github.com/nlplab/labsite/internal/core"
	"github.com/nlplab/labsite/internal/middleware"
	"github.com/nlplab/labsite/internal/session"
)

// BuildRouter wires middleware, component routes, metrics, and static
// file serving into the root handler.
func BuildRouter(app *core.App) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLog(app.Log))
	r.Use(middleware.Security)
	r.Use(app.Sessions.Middleware)
	r.Use(session.AdminGuard)

	r.Handle("/metrics", promhttp.Handler())

	fileServer := http.StripPrefix("/static/", http.FileServer(http.Dir(app.Cfg.Paths.Static)))
	r.Get("/static/*", func(w http.ResponseWriter, req *http.Request) {
		fileServer.ServeHTTP(w, req)
	})

	for _, c := range component.All() {
		r.Mount(c.Prefix(), c.Routes(app))
	}

	return middleware.ForceHTTPS(app.Cfg.HTTP.ForceHTTPS, r)
}
