// Package database centralises sqlx connection helpers.  Two drivers are
// registered: modernc.org/sqlite (CGO-free, the development and test
// default) and go-sql-driver/mysql for production deployments.  Both use
// `?` placeholders, so repository SQL is shared verbatim.
//
// Public entry points:
//
//	Open(driver, dsn)                    – quick helper with conservative pool sizes.
//	OpenWithOptions(driver, dsn, mo, mi) – fine-grained control.
//
// Both helpers Ping the database before returning so callers can fail fast
// during bootstrap.  Callers should Close() the returned *sqlx.DB when no
// longer needed.
package database

import (
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Open returns a *sqlx.DB with sane defaults: 15 max open, 5 idle, and a
// 30-minute connection lifetime.  SQLite is capped to a single open
// connection because the file store serialises writers anyway.
func Open(driver, dsn string) (*sqlx.DB, error) {
	if driver == "sqlite" {
		return OpenWithOptions(driver, dsn, 1, 1)
	}
	return OpenWithOptions(driver, dsn, 15, 5)
}

// OpenWithOptions lets callers tune maxOpen and maxIdle per pool.
func OpenWithOptions(driver, dsn string, maxOpen, maxIdle int) (*sqlx.DB, error) {
	switch driver {
	case "sqlite", "mysql":
	default:
		return nil, fmt.Errorf("database: unsupported driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
