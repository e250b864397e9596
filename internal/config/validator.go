// internal/config/validator.go
//
// Struct-tag validation of the merged configuration.
//
// Load() calls validateStruct right after unmarshalling the Koanf tree,
// so the binary refuses to start on partial or malformed configuration.
// Tags in use: `required`, `oneof` (app.env, database.driver), `min` on
// the session secret and admin password, `email` on the contact block,
// and `hostname_port` on http.listen_addr.

package config

import "github.com/go-playground/validator/v10"

var v = validator.New()

// validateStruct returns the first validation error, or nil on success.
func validateStruct(c *Config) error {
	return v.Struct(c)
}
