// internal/cli/serve.go
//
// `labsite serve` boots the full stack: config, logger, DB pool, optional
// GeoIP, the shared app aggregate, and the HTTP server.

package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/nlplab/labsite/internal/core"
	"github.com/nlplab/labsite/internal/database"
	"github.com/nlplab/labsite/internal/hero"
	"github.com/nlplab/labsite/internal/middleware"
	"github.com/nlplab/labsite/internal/server"
	"github.com/nlplab/labsite/internal/session"
	"github.com/nlplab/labsite/internal/view"

	// Components self-register on import.
	_ "github.com/nlplab/labsite/components/admin"
	_ "github.com/nlplab/labsite/components/public"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		if cfg.GeoIP.DBPath != "" {
			if err := middleware.InitGeo(cfg.GeoIP.DBPath); err != nil {
				log.Warnw("geoip unavailable", "path", cfg.GeoIP.DBPath, "error", err)
			}
		}

		db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN)
		if err != nil {
			return err
		}
		defer db.Close()
		log.Infow("database online", "driver", cfg.Database.Driver)

		app := &core.App{
			Cfg:      cfg,
			DB:       db,
			Sessions: session.NewManager(cfg.Session.SecretKey, cfg.Session.CookieName, cfg.App.IsProduction()),
			Views:    view.New(cfg.Paths.Templates, !cfg.App.IsProduction()),
			Hero:     hero.NewManager(cfg.Paths.Static, log),
			Log:      log,
		}

		srv := server.New(cfg.HTTP.ListenAddr, server.BuildRouter(app))
		return server.Run(context.Background(), srv, log)
	},
}
