// internal/content/publications.go
//
// Publication queries and CRUD services.

package content

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	msgPublicationNotFound = "논문을 찾을 수 없습니다."
	msgRelatedProjectGone  = "연결할 프로젝트를 찾을 수 없습니다."
)

const publicationCols = `
        id, title, title_en, authors, authors_en, venue, venue_en,
        year, link, related_project_id, created_at`

// ListPublications returns all publications, newest year first, then
// newest insertion.
func ListPublications(ctx context.Context, db *sqlx.DB) ([]Publication, error) {
	const q = `
        SELECT` + publicationCols + `
        FROM   publication
        ORDER BY year DESC, created_at DESC, id DESC`
	var rows []Publication
	if err := db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

// LatestPublications returns up to limit publications for the home page.
func LatestPublications(ctx context.Context, db *sqlx.DB, limit int) ([]Publication, error) {
	const q = `
        SELECT` + publicationCols + `
        FROM   publication
        ORDER BY year DESC, created_at DESC, id DESC
        LIMIT  ?`
	var rows []Publication
	if err := db.SelectContext(ctx, &rows, q, limit); err != nil {
		return nil, err
	}
	return rows, nil
}

// PublicationsByYear groups the full listing by year for the public page.
// Years holds the distinct years in descending order so templates can
// iterate deterministically.
func PublicationsByYear(ctx context.Context, db *sqlx.DB) (years []int, grouped map[int][]Publication, err error) {
	pubs, err := ListPublications(ctx, db)
	if err != nil {
		return nil, nil, err
	}
	grouped = make(map[int][]Publication)
	for _, p := range pubs {
		if _, seen := grouped[p.Year]; !seen {
			years = append(years, p.Year)
		}
		grouped[p.Year] = append(grouped[p.Year], p)
	}
	return years, grouped, nil
}

// PublicationsForProject returns the publications linked to one project.
func PublicationsForProject(ctx context.Context, db *sqlx.DB, projectID int64) ([]Publication, error) {
	const q = `
        SELECT` + publicationCols + `
        FROM   publication
        WHERE  related_project_id = ?
        ORDER BY year DESC, created_at DESC, id DESC`
	var rows []Publication
	if err := db.SelectContext(ctx, &rows, q, projectID); err != nil {
		return nil, err
	}
	return rows, nil
}

// GetPublicationByID fetches one publication or nil.
func GetPublicationByID(ctx context.Context, db *sqlx.DB, id int64) (*Publication, error) {
	const q = `SELECT` + publicationCols + ` FROM publication WHERE id = ? LIMIT 1`
	var p Publication
	if err := db.GetContext(ctx, &p, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// checkRelatedProject verifies the optional project link points at a live
// row; a dangling id is user error, not a constraint violation surprise.
func checkRelatedProject(ctx context.Context, db *sqlx.DB, projectID *int64) error {
	if projectID == nil {
		return nil
	}
	p, err := GetProjectByID(ctx, db, *projectID)
	if err != nil {
		return err
	}
	if p == nil {
		return conflict(msgRelatedProjectGone)
	}
	return nil
}

// CreatePublication inserts after validating the optional project link.
func CreatePublication(ctx context.Context, db *sqlx.DB, in *PublicationInput) (int64, error) {
	if err := checkRelatedProject(ctx, db, in.RelatedProjectID); err != nil {
		return 0, err
	}

	const q = `
        INSERT INTO publication
               (title, title_en, authors, authors_en, venue, venue_en,
                year, link, related_project_id, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := db.ExecContext(ctx, q,
		in.Title, in.TitleEn, in.Authors, in.AuthorsEn, in.Venue, in.VenueEn,
		in.Year, in.Link, in.RelatedProjectID, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdatePublication rewrites a publication row.
func UpdatePublication(ctx context.Context, db *sqlx.DB, id int64, in *PublicationInput) error {
	p, err := GetPublicationByID(ctx, db, id)
	if err != nil {
		return err
	}
	if p == nil {
		return notFound(msgPublicationNotFound)
	}
	if err := checkRelatedProject(ctx, db, in.RelatedProjectID); err != nil {
		return err
	}

	const q = `
        UPDATE publication
        SET    title = ?, title_en = ?, authors = ?, authors_en = ?,
               venue = ?, venue_en = ?, year = ?, link = ?,
               related_project_id = ?
        WHERE  id = ?`
	_, err = db.ExecContext(ctx, q,
		in.Title, in.TitleEn, in.Authors, in.AuthorsEn, in.Venue, in.VenueEn,
		in.Year, in.Link, in.RelatedProjectID, id)
	return err
}

// DeletePublication hard-deletes a publication.
func DeletePublication(ctx context.Context, db *sqlx.DB, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM publication WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound(msgPublicationNotFound)
	}
	return nil
}
