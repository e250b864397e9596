// internal/content/members.go
//
// Member queries and CRUD services.  Repository helpers follow the
// internal/site pattern: package-level functions over *sqlx.DB with the
// caller's context.

package content

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	msgMemberEmailTaken = "이미 사용 중인 이메일입니다."
	msgMemberNotFound   = "멤버를 찾을 수 없습니다."
)

const memberCols = `
        id, name, name_en, role, email, photo_url,
        bio, bio_en, display_order, created_at, updated_at`

// ListMembers returns every member ordered for display: display_order
// first, then seniority of insertion.
func ListMembers(ctx context.Context, db *sqlx.DB) ([]Member, error) {
	const q = `
        SELECT` + memberCols + `
        FROM   member
        ORDER BY display_order ASC, created_at ASC, id ASC`
	var rows []Member
	if err := db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

// MembersByRole groups members by role in MemberRoles order.  Roles with
// no members are omitted.
func MembersByRole(ctx context.Context, db *sqlx.DB) (map[string][]Member, error) {
	members, err := ListMembers(ctx, db)
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]Member)
	for _, m := range members {
		grouped[m.Role] = append(grouped[m.Role], m)
	}
	return grouped, nil
}

// GetMemberByID fetches one member or nil.
func GetMemberByID(ctx context.Context, db *sqlx.DB, id int64) (*Member, error) {
	const q = `SELECT` + memberCols + ` FROM member WHERE id = ? LIMIT 1`
	var m Member
	if err := db.GetContext(ctx, &m, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// getMemberByEmail backs the unique-email conflict check.
func getMemberByEmail(ctx context.Context, db *sqlx.DB, email string) (*Member, error) {
	const q = `SELECT` + memberCols + ` FROM member WHERE email = ? LIMIT 1`
	var m Member
	if err := db.GetContext(ctx, &m, q, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// CreateMember validates uniqueness and inserts.  Returns a *UserError on
// a duplicate email.
func CreateMember(ctx context.Context, db *sqlx.DB, in *MemberInput) (int64, error) {
	existing, err := getMemberByEmail(ctx, db, in.Email)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, conflict(msgMemberEmailTaken)
	}

	now := time.Now().UTC()
	const q = `
        INSERT INTO member
               (name, name_en, role, email, photo_url, bio, bio_en,
                display_order, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := db.ExecContext(ctx, q,
		in.Name, in.NameEn, in.Role, in.Email, in.PhotoURL,
		in.Bio, in.BioEn, in.DisplayOrder, now, now)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateMember rewrites a member row.  Unknown id → 404-class UserError;
// email collision with a different row → conflict.
func UpdateMember(ctx context.Context, db *sqlx.DB, id int64, in *MemberInput) error {
	m, err := GetMemberByID(ctx, db, id)
	if err != nil {
		return err
	}
	if m == nil {
		return notFound(msgMemberNotFound)
	}

	dup, err := getMemberByEmail(ctx, db, in.Email)
	if err != nil {
		return err
	}
	if dup != nil && dup.ID != id {
		return conflict(msgMemberEmailTaken)
	}

	const q = `
        UPDATE member
        SET    name = ?, name_en = ?, role = ?, email = ?, photo_url = ?,
               bio = ?, bio_en = ?, display_order = ?, updated_at = ?
        WHERE  id = ?`
	_, err = db.ExecContext(ctx, q,
		in.Name, in.NameEn, in.Role, in.Email, in.PhotoURL,
		in.Bio, in.BioEn, in.DisplayOrder, time.Now().UTC(), id)
	return err
}

// DeleteMember hard-deletes a member.
func DeleteMember(ctx context.Context, db *sqlx.DB, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM member WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound(msgMemberNotFound)
	}
	return nil
}
