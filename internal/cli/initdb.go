// internal/cli/initdb.go
//
// `labsite initdb` creates the content tables, seeds the admin credential
// from config, and writes the default hero record.  Idempotent; safe to
// run on every deploy.

package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/nlplab/labsite/internal/content"
	"github.com/nlplab/labsite/internal/database"
	"github.com/nlplab/labsite/internal/hero"
)

var initdbCmd = &cobra.Command{
	Use:   "initdb",
	Short: "Create tables and seed the admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN)
		if err != nil {
			return err
		}
		defer db.Close()

		ctx := context.Background()
		if err := content.InitSchema(ctx, db, cfg.Database.Driver); err != nil {
			return err
		}
		log.Infow("schema ready", "driver", cfg.Database.Driver)

		if err := content.EnsureAdmin(ctx, db, cfg.Admin.Username, cfg.Admin.Password); err != nil {
			return err
		}
		log.Infow("admin account ready", "username", cfg.Admin.Username)

		heroPost, err := content.GetHeroPost(ctx, db)
		if err != nil {
			return err
		}
		if heroPost == nil {
			if err := content.SaveHeroContent(ctx, db, hero.DefaultURL); err != nil {
				return err
			}
			log.Infow("hero record seeded")
		}
		return nil
	},
}
