// internal/core/app.go
//
// Central application aggregate.
//
// Context
//   One *core.App is built at boot and handed to every component.  It
//   bundles the shared singletons: config, the DB pool, the session
//   manager, the view renderer, the hero-image manager, and the sugared
//   logger.  Components must treat all fields as read-only.
package core

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/nlplab/labsite/internal/config"
	"github.com/nlplab/labsite/internal/hero"
	"github.com/nlplab/labsite/internal/session"
	"github.com/nlplab/labsite/internal/view"
)

// App is passed to components at mount time.
type App struct {
	Cfg      *config.Config
	DB       *sqlx.DB
	Sessions *session.Manager
	Views    *view.Renderer
	Hero     *hero.Manager
	Log      *zap.SugaredLogger
}
