// internal/config/model.go
//
// Typed configuration model for the lab website.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `conf/.env`                  – dotenv values,
//   • `conf/global.yaml`                    – primary static file,
//   • `LAB_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client *before* validation, so the model never stores
// Vault URIs, only plain strings.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`; Koanf ignores `yaml` tags
//     unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.

package config

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// App section
//

// App carries site identity and the environment flag.  Env gates the
// Secure attribute on the session cookie, so "production" must only be
// set behind TLS.
type App struct {
	Name string `koanf:"name" validate:"required"`
	Env  string `koanf:"env"  validate:"required,oneof=development test production"`
}

// IsProduction reports whether the process runs with production hardening.
func (a App) IsProduction() bool { return a.Env == "production" }

//
// Session section
//

// Session holds the cookie-signing secret.  Rotating SecretKey invalidates
// every outstanding session, which doubles as the bulk-revocation switch.
type Session struct {
	SecretKey  string `koanf:"secret_key"  validate:"required,min=16"`
	CookieName string `koanf:"cookie_name" validate:"required"`
}

//
// Database section
//

// Database selects the driver and DSN.  The default sqlite driver keeps
// local development dependency-free; mysql is the production choice.
type Database struct {
	Driver string `koanf:"driver" validate:"required,oneof=sqlite mysql"`
	DSN    string `koanf:"dsn"    validate:"required"`
}

//
// Admin section
//

// Admin seeds the single console credential on `labsite initdb`.
type Admin struct {
	Username string `koanf:"username" validate:"required,min=4,max=50"`
	Password string `koanf:"password" validate:"required,min=1,max=128"`
}

//
// Contact section
//

// Contact feeds the public contact page verbatim.
type Contact struct {
	Email   string `koanf:"email" validate:"required,email"`
	Address string `koanf:"address"`
	MapURL  string `koanf:"map_url"`
}

//
// GeoIP section
//

// GeoIP is optional; when DBPath is empty the access log skips geo lookup.
type GeoIP struct {
	DBPath string `koanf:"db_path"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never set in YAML or env.  The loader
// discovers `Root` (repo root or LAB_ROOT override) so later code can
// build absolute file paths.
type Paths struct {
	Root      string // LAB_ROOT or discovered parent
	Static    string // <root>/static, served under /static/
	Templates string // <root>/templates
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load().  It is built
// once at boot and shared read-only for the app lifetime.
type Config struct {
	App      App      `koanf:"app"`
	HTTP     HTTP     `koanf:"http"`
	Session  Session  `koanf:"session"`
	Database Database `koanf:"database"`
	Admin    Admin    `koanf:"admin"`
	Contact  Contact  `koanf:"contact"`
	GeoIP    GeoIP    `koanf:"geoip"`
	Paths    Paths    `koanf:"-"` // not loaded from config files
}
