// internal/content/posts.go
//
// Post queries and CRUD services, plus the reserved hero record.
//
// Context
//   One row of the post table is special: slug "system-home-hero-image"
//   stores the newline-joined hero URL list in its content column.  The
//   record never appears in post listings, public or admin, but it is
//   created and edited through the same CRUD path as any other post; the
//   only difference is that its content is canonicalized into the URL-list
//   form on the way in.

package content

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nlplab/labsite/internal/hero"
)

const (
	msgPostInvalid   = "게시글 입력값을 확인해주세요."
	msgPostSlugTaken = "이미 사용 중인 slug입니다."
	msgPostNotFound  = "게시글을 찾을 수 없습니다."
)

const postCols = `
        id, title, title_en, slug, content, content_en,
        is_published, created_at, updated_at`

// ListPosts returns every regular post for the admin listing, newest
// first.  The hero record is excluded.
func ListPosts(ctx context.Context, db *sqlx.DB) ([]Post, error) {
	const q = `
        SELECT` + postCols + `
        FROM   post
        WHERE  slug <> ?
        ORDER BY created_at DESC, id DESC`
	var rows []Post
	if err := db.SelectContext(ctx, &rows, q, HeroPostSlug); err != nil {
		return nil, err
	}
	return rows, nil
}

// ListPublishedPosts returns published posts for the public listing.
func ListPublishedPosts(ctx context.Context, db *sqlx.DB) ([]Post, error) {
	const q = `
        SELECT` + postCols + `
        FROM   post
        WHERE  slug <> ? AND is_published = ?
        ORDER BY created_at DESC, id DESC`
	var rows []Post
	if err := db.SelectContext(ctx, &rows, q, HeroPostSlug, true); err != nil {
		return nil, err
	}
	return rows, nil
}

// LatestPublishedPosts returns up to limit published posts for the home
// page.
func LatestPublishedPosts(ctx context.Context, db *sqlx.DB, limit int) ([]Post, error) {
	const q = `
        SELECT` + postCols + `
        FROM   post
        WHERE  slug <> ? AND is_published = ?
        ORDER BY created_at DESC, id DESC
        LIMIT  ?`
	var rows []Post
	if err := db.SelectContext(ctx, &rows, q, HeroPostSlug, true, limit); err != nil {
		return nil, err
	}
	return rows, nil
}

// GetPostByID fetches one post or nil.
func GetPostByID(ctx context.Context, db *sqlx.DB, id int64) (*Post, error) {
	const q = `SELECT` + postCols + ` FROM post WHERE id = ? LIMIT 1`
	var p Post
	if err := db.GetContext(ctx, &p, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// GetPostBySlug fetches one post by slug or nil.
func GetPostBySlug(ctx context.Context, db *sqlx.DB, slug string) (*Post, error) {
	const q = `SELECT` + postCols + ` FROM post WHERE slug = ? LIMIT 1`
	var p Post
	if err := db.GetContext(ctx, &p, q, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// GetPublishedPostBySlug is the public detail lookup: unpublished posts
// and the hero record read as absent.
func GetPublishedPostBySlug(ctx context.Context, db *sqlx.DB, slug string) (*Post, error) {
	if slug == HeroPostSlug {
		return nil, nil
	}
	p, err := GetPostBySlug(ctx, db, slug)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.IsPublished {
		return nil, nil
	}
	return p, nil
}

// CreatePost validates slug uniqueness and inserts.  Content posted under
// the reserved hero slug is canonicalized first.
func CreatePost(ctx context.Context, db *sqlx.DB, in *PostInput) (int64, error) {
	if in.Slug == HeroPostSlug {
		in.Content = heroContent(in.Content)
	}
	existing, err := GetPostBySlug(ctx, db, in.Slug)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, conflict(msgPostSlugTaken)
	}

	now := time.Now().UTC()
	const q = `
        INSERT INTO post
               (title, title_en, slug, content, content_en, is_published,
                created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := db.ExecContext(ctx, q,
		in.Title, in.TitleEn, in.Slug, in.Content, in.ContentEn,
		in.IsPublished, now, now)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdatePost rewrites a post row, the hero record included.  Content
// saved under the reserved slug is canonicalized the same way create
// does it.
func UpdatePost(ctx context.Context, db *sqlx.DB, id int64, in *PostInput) error {
	p, err := GetPostByID(ctx, db, id)
	if err != nil {
		return err
	}
	if p == nil {
		return notFound(msgPostNotFound)
	}
	if in.Slug == HeroPostSlug {
		in.Content = heroContent(in.Content)
	}

	dup, err := GetPostBySlug(ctx, db, in.Slug)
	if err != nil {
		return err
	}
	if dup != nil && dup.ID != id {
		return conflict(msgPostSlugTaken)
	}

	const q = `
        UPDATE post
        SET    title = ?, title_en = ?, slug = ?, content = ?,
               content_en = ?, is_published = ?, updated_at = ?
        WHERE  id = ?`
	_, err = db.ExecContext(ctx, q,
		in.Title, in.TitleEn, in.Slug, in.Content, in.ContentEn,
		in.IsPublished, time.Now().UTC(), id)
	return err
}

// DeletePost hard-deletes a regular post.  The hero record is not
// deletable; dropping it would orphan the hero flow, so it reads as
// absent here.
func DeletePost(ctx context.Context, db *sqlx.DB, id int64) error {
	p, err := GetPostByID(ctx, db, id)
	if err != nil {
		return err
	}
	if p == nil || p.IsHeroPost() {
		return notFound(msgPostNotFound)
	}
	_, err = db.ExecContext(ctx, `DELETE FROM post WHERE id = ?`, id)
	return err
}

//
// hero record
//

// heroContent canonicalizes a hero record's content: normalize every
// line into a root-relative URL, drop what does not parse, and fall back
// to the default image when nothing remains.
func heroContent(raw string) string {
	urls := hero.ParseURLs(raw)
	if len(urls) == 0 {
		return hero.DefaultURL
	}
	return hero.JoinURLs(urls)
}

// GetHeroPost fetches the reserved hero record, or nil when it has never
// been created.
func GetHeroPost(ctx context.Context, db *sqlx.DB) (*Post, error) {
	return GetPostBySlug(ctx, db, HeroPostSlug)
}

// SaveHeroContent upserts the hero record with the given content (the
// newline-joined URL list).  The row is created unpublished with its
// fixed title on first write.
func SaveHeroContent(ctx context.Context, db *sqlx.DB, content string) error {
	existing, err := GetHeroPost(ctx, db)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	if existing == nil {
		const q = `
        INSERT INTO post
               (title, title_en, slug, content, content_en, is_published,
                created_at, updated_at)
        VALUES (?, NULL, ?, ?, NULL, ?, ?, ?)`
		_, err = db.ExecContext(ctx, q, HeroPostTitle, HeroPostSlug, content, false, now, now)
		return err
	}
	const q = `UPDATE post SET content = ?, updated_at = ? WHERE id = ?`
	_, err = db.ExecContext(ctx, q, content, now, existing.ID)
	return err
}
