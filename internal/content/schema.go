// internal/content/schema.go
//
// Schema bootstrap for both supported drivers.
//
// Context
//   The site runs on sqlite for local and small deployments and mysql in
//   production.  The DDL is kept per driver rather than abstracted: the
//   two dialects disagree on auto-increment and column types in ways a
//   shared string cannot paper over.  Statements are idempotent
//   (IF NOT EXISTS) so InitSchema doubles as a boot-time check.

package content

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS member (
        id            INTEGER PRIMARY KEY AUTOINCREMENT,
        name          TEXT    NOT NULL,
        name_en       TEXT,
        role          TEXT    NOT NULL,
        email         TEXT    NOT NULL UNIQUE,
        photo_url     TEXT,
        bio           TEXT,
        bio_en        TEXT,
        display_order INTEGER NOT NULL DEFAULT 0,
        created_at    TIMESTAMP NOT NULL,
        updated_at    TIMESTAMP NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS project (
        id          INTEGER PRIMARY KEY AUTOINCREMENT,
        title       TEXT NOT NULL,
        title_en    TEXT,
        slug        TEXT NOT NULL UNIQUE,
        summary     TEXT NOT NULL,
        description TEXT NOT NULL,
        status      TEXT NOT NULL,
        start_date  TEXT NOT NULL,
        end_date    TEXT,
        created_at  TIMESTAMP NOT NULL,
        updated_at  TIMESTAMP NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS publication (
        id                 INTEGER PRIMARY KEY AUTOINCREMENT,
        title              TEXT    NOT NULL,
        title_en           TEXT,
        authors            TEXT    NOT NULL,
        authors_en         TEXT,
        venue              TEXT    NOT NULL,
        venue_en           TEXT,
        year               INTEGER NOT NULL,
        link               TEXT,
        related_project_id INTEGER REFERENCES project(id),
        created_at         TIMESTAMP NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS post (
        id           INTEGER PRIMARY KEY AUTOINCREMENT,
        title        TEXT    NOT NULL,
        title_en     TEXT,
        slug         TEXT    NOT NULL UNIQUE,
        content      TEXT    NOT NULL,
        content_en   TEXT,
        is_published BOOLEAN NOT NULL DEFAULT 0,
        created_at   TIMESTAMP NOT NULL,
        updated_at   TIMESTAMP NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS admin_user (
        id            INTEGER PRIMARY KEY AUTOINCREMENT,
        username      TEXT NOT NULL UNIQUE,
        password_hash TEXT NOT NULL,
        created_at    TIMESTAMP NOT NULL
    )`,
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS member (
        id            BIGINT       NOT NULL AUTO_INCREMENT PRIMARY KEY,
        name          VARCHAR(100) NOT NULL,
        name_en       VARCHAR(100),
        role          VARCHAR(32)  NOT NULL,
        email         VARCHAR(255) NOT NULL,
        photo_url     VARCHAR(500),
        bio           TEXT,
        bio_en        TEXT,
        display_order INT          NOT NULL DEFAULT 0,
        created_at    DATETIME     NOT NULL,
        updated_at    DATETIME     NOT NULL,
        UNIQUE KEY uq_member_email (email)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS project (
        id          BIGINT       NOT NULL AUTO_INCREMENT PRIMARY KEY,
        title       VARCHAR(200) NOT NULL,
        title_en    VARCHAR(200),
        slug        VARCHAR(150) NOT NULL,
        summary     VARCHAR(300) NOT NULL,
        description TEXT         NOT NULL,
        status      VARCHAR(32)  NOT NULL,
        start_date  VARCHAR(10)  NOT NULL,
        end_date    VARCHAR(10),
        created_at  DATETIME     NOT NULL,
        updated_at  DATETIME     NOT NULL,
        UNIQUE KEY uq_project_slug (slug)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS publication (
        id                 BIGINT       NOT NULL AUTO_INCREMENT PRIMARY KEY,
        title              VARCHAR(300) NOT NULL,
        title_en           VARCHAR(300),
        authors            VARCHAR(500) NOT NULL,
        authors_en         VARCHAR(500),
        venue              VARCHAR(255) NOT NULL,
        venue_en           VARCHAR(255),
        year               INT          NOT NULL,
        link               VARCHAR(500),
        related_project_id BIGINT,
        created_at         DATETIME     NOT NULL,
        KEY ix_publication_project (related_project_id),
        CONSTRAINT fk_publication_project
            FOREIGN KEY (related_project_id) REFERENCES project (id)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS post (
        id           BIGINT       NOT NULL AUTO_INCREMENT PRIMARY KEY,
        title        VARCHAR(200) NOT NULL,
        title_en     VARCHAR(200),
        slug         VARCHAR(150) NOT NULL,
        content      MEDIUMTEXT   NOT NULL,
        content_en   MEDIUMTEXT,
        is_published BOOLEAN      NOT NULL DEFAULT FALSE,
        created_at   DATETIME     NOT NULL,
        updated_at   DATETIME     NOT NULL,
        UNIQUE KEY uq_post_slug (slug)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS admin_user (
        id            BIGINT       NOT NULL AUTO_INCREMENT PRIMARY KEY,
        username      VARCHAR(100) NOT NULL,
        password_hash VARCHAR(255) NOT NULL,
        created_at    DATETIME     NOT NULL,
        UNIQUE KEY uq_admin_username (username)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// InitSchema creates the content tables for the given driver.
func InitSchema(ctx context.Context, db *sqlx.DB, driver string) error {
	var stmts []string
	switch driver {
	case "sqlite":
		stmts = sqliteSchema
	case "mysql":
		stmts = mysqlSchema
	default:
		return fmt.Errorf("content: unsupported driver %q", driver)
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("content: schema statement failed: %w", err)
		}
	}
	return nil
}
