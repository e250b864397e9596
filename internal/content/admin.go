// internal/content/admin.go
//
// Admin credential lookup and the dashboard counts.

package content

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nlplab/labsite/internal/secure"
)

// GetAdminByUsername fetches one admin user or nil.
func GetAdminByUsername(ctx context.Context, db *sqlx.DB, username string) (*AdminUser, error) {
	const q = `
        SELECT id, username, password_hash, created_at
        FROM   admin_user
        WHERE  username = ?
        LIMIT  1`
	var u AdminUser
	if err := db.GetContext(ctx, &u, q, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Authenticate checks a username/password pair and returns the admin row
// on success.  Unknown usernames and wrong passwords are indistinguishable
// to the caller.
func Authenticate(ctx context.Context, db *sqlx.DB, username, password string) (*AdminUser, error) {
	u, err := GetAdminByUsername(ctx, db, username)
	if err != nil {
		return nil, err
	}
	if u == nil || !secure.VerifyPassword(password, u.PasswordHash) {
		return nil, nil
	}
	return u, nil
}

// EnsureAdmin creates the admin account on first boot.  An existing row
// with the same username wins; the configured password is never used to
// overwrite it.
func EnsureAdmin(ctx context.Context, db *sqlx.DB, username, password string) error {
	existing, err := GetAdminByUsername(ctx, db, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	hash, err := secure.HashPassword(password)
	if err != nil {
		return err
	}
	const q = `
        INSERT INTO admin_user (username, password_hash, created_at)
        VALUES (?, ?, ?)`
	_, err = db.ExecContext(ctx, q, username, hash, time.Now().UTC())
	return err
}

// DashboardCounts returns the per-table totals shown on the admin
// dashboard.  The hero record is not a post for counting purposes.
func DashboardCounts(ctx context.Context, db *sqlx.DB) (*Counts, error) {
	const q = `
        SELECT
            (SELECT COUNT(*) FROM member)                      AS member_count,
            (SELECT COUNT(*) FROM project)                     AS project_count,
            (SELECT COUNT(*) FROM publication)                 AS publication_count,
            (SELECT COUNT(*) FROM post WHERE slug <> ?)        AS post_count`
	var c Counts
	if err := db.GetContext(ctx, &c, q, HeroPostSlug); err != nil {
		return nil, err
	}
	return &c, nil
}
