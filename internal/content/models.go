// internal/content/models.go
//
// Row types for the four content tables and the admin credential.
//
// Bilingual columns: the site renders Korean by default; *_en columns are
// optional English alternatives.  NULL and "" both mean "fall back to the
// Korean column" at render time, so the models keep them as *string and
// never normalise one into the other.

package content

import "time"

// Member roles, stored as plain strings (no native enum; sqlite has none
// and mysql enums complicate migrations).
const (
	RoleProfessor  = "professor"
	RoleResearcher = "researcher"
	RolePhD        = "phd"
	RoleMaster     = "master"
	RoleUndergrad  = "undergrad"
)

// MemberRoles is the display order of role groups on the members page.
var MemberRoles = []string{RoleProfessor, RoleResearcher, RolePhD, RoleMaster, RoleUndergrad}

// Project status values.
const (
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
)

// HeroPostSlug is the reserved slug of the system post whose content field
// stores the newline-joined hero-image URL list.  The post is hidden from
// the normal posts listing.
const HeroPostSlug = "system-home-hero-image"

// HeroPostTitle is the fixed title of the reserved hero post.
const HeroPostTitle = "홈 히어로 이미지"

// Member mirrors one row of the `member` table.
type Member struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	NameEn       *string   `db:"name_en"`
	Role         string    `db:"role"`
	Email        string    `db:"email"`
	PhotoURL     *string   `db:"photo_url"`
	Bio          *string   `db:"bio"`
	BioEn        *string   `db:"bio_en"`
	DisplayOrder int       `db:"display_order"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Project mirrors one row of the `project` table.
type Project struct {
	ID          int64      `db:"id"`
	Title       string     `db:"title"`
	TitleEn     *string    `db:"title_en"`
	Slug        string     `db:"slug"`
	Summary     string     `db:"summary"`
	Description string     `db:"description"`
	Status      string     `db:"status"`
	StartDate   string     `db:"start_date"` // ISO date; no time component
	EndDate     *string    `db:"end_date"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// Publication mirrors one row of the `publication` table.
type Publication struct {
	ID               int64     `db:"id"`
	Title            string    `db:"title"`
	TitleEn          *string   `db:"title_en"`
	Authors          string    `db:"authors"`
	AuthorsEn        *string   `db:"authors_en"`
	Venue            string    `db:"venue"`
	VenueEn          *string   `db:"venue_en"`
	Year             int       `db:"year"`
	Link             *string   `db:"link"`
	RelatedProjectID *int64    `db:"related_project_id"`
	CreatedAt        time.Time `db:"created_at"`
}

// Post mirrors one row of the `post` table.
type Post struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	TitleEn     *string   `db:"title_en"`
	Slug        string    `db:"slug"`
	Content     string    `db:"content"`
	ContentEn   *string   `db:"content_en"`
	IsPublished bool      `db:"is_published"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// IsHeroPost reports whether p is the reserved hero-image record.
func (p *Post) IsHeroPost() bool { return p.Slug == HeroPostSlug }

// AdminUser mirrors one row of the `admin_user` table.
type AdminUser struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// Counts feeds the admin dashboard.
type Counts struct {
	Members      int `db:"member_count"`
	Projects     int `db:"project_count"`
	Publications int `db:"publication_count"`
	Posts        int `db:"post_count"`
}
