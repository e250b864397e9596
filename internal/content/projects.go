// internal/content/projects.go
//
// Project queries and CRUD services.

package content

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	msgProjectSlugTaken = "이미 사용 중인 slug입니다."
	msgProjectNotFound  = "프로젝트를 찾을 수 없습니다."
	msgProjectHasPubs   = "연결된 논문이 있어 삭제할 수 없습니다."
)

const projectCols = `
        id, title, title_en, slug, summary, description, status,
        start_date, end_date, created_at, updated_at`

// ListProjects returns all projects, newest first.
func ListProjects(ctx context.Context, db *sqlx.DB) ([]Project, error) {
	const q = `
        SELECT` + projectCols + `
        FROM   project
        ORDER BY created_at DESC, id DESC`
	var rows []Project
	if err := db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

// LatestProjects returns up to limit projects for the home page.
func LatestProjects(ctx context.Context, db *sqlx.DB, limit int) ([]Project, error) {
	const q = `
        SELECT` + projectCols + `
        FROM   project
        ORDER BY created_at DESC, id DESC
        LIMIT  ?`
	var rows []Project
	if err := db.SelectContext(ctx, &rows, q, limit); err != nil {
		return nil, err
	}
	return rows, nil
}

// GetProjectByID fetches one project or nil.
func GetProjectByID(ctx context.Context, db *sqlx.DB, id int64) (*Project, error) {
	const q = `SELECT` + projectCols + ` FROM project WHERE id = ? LIMIT 1`
	var p Project
	if err := db.GetContext(ctx, &p, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// GetProjectBySlug fetches one project by its unique slug or nil.
func GetProjectBySlug(ctx context.Context, db *sqlx.DB, slug string) (*Project, error) {
	const q = `SELECT` + projectCols + ` FROM project WHERE slug = ? LIMIT 1`
	var p Project
	if err := db.GetContext(ctx, &p, q, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// CreateProject validates slug uniqueness and inserts.
func CreateProject(ctx context.Context, db *sqlx.DB, in *ProjectInput) (int64, error) {
	existing, err := GetProjectBySlug(ctx, db, in.Slug)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, conflict(msgProjectSlugTaken)
	}

	now := time.Now().UTC()
	const q = `
        INSERT INTO project
               (title, title_en, slug, summary, description, status,
                start_date, end_date, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := db.ExecContext(ctx, q,
		in.Title, in.TitleEn, in.Slug, in.Summary, in.Description,
		in.Status, in.StartDate, in.EndDate, now, now)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateProject rewrites a project row with the usual conflict checks.
func UpdateProject(ctx context.Context, db *sqlx.DB, id int64, in *ProjectInput) error {
	p, err := GetProjectByID(ctx, db, id)
	if err != nil {
		return err
	}
	if p == nil {
		return notFound(msgProjectNotFound)
	}

	dup, err := GetProjectBySlug(ctx, db, in.Slug)
	if err != nil {
		return err
	}
	if dup != nil && dup.ID != id {
		return conflict(msgProjectSlugTaken)
	}

	const q = `
        UPDATE project
        SET    title = ?, title_en = ?, slug = ?, summary = ?,
               description = ?, status = ?, start_date = ?, end_date = ?,
               updated_at = ?
        WHERE  id = ?`
	_, err = db.ExecContext(ctx, q,
		in.Title, in.TitleEn, in.Slug, in.Summary, in.Description,
		in.Status, in.StartDate, in.EndDate, time.Now().UTC(), id)
	return err
}

// DeleteProject refuses to orphan publications: a project with dependent
// rows returns a conflict instead of cascading.
func DeleteProject(ctx context.Context, db *sqlx.DB, id int64) error {
	p, err := GetProjectByID(ctx, db, id)
	if err != nil {
		return err
	}
	if p == nil {
		return notFound(msgProjectNotFound)
	}

	var dependents int
	if err := db.GetContext(ctx, &dependents,
		`SELECT COUNT(*) FROM publication WHERE related_project_id = ?`, id); err != nil {
		return err
	}
	if dependents > 0 {
		return conflict(msgProjectHasPubs)
	}

	_, err = db.ExecContext(ctx, `DELETE FROM project WHERE id = ?`, id)
	return err
}
