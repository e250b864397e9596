// internal/content/inputs.go
//
// Typed form inputs and their validation.
//
// Context
//   Admin forms post flat string fields.  Each operation parses them into
//   a typed input struct validated with go-playground/validator, the same
//   library the config loader leans on.  Parse failures collapse to a
//   single generic Korean message per form; fine-grained field errors are
//   not part of this console's UX.
//
//   Optional bilingual fields come through as plain strings and are stored
//   as NULL when blank, keeping the "empty or NULL falls back" rule
//   trivially true.

package content

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

//
// helpers
//

// optional trims s and returns nil for the empty string.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// parseBool mirrors the loose checkbox semantics of the admin forms:
// anything but an explicit "false"/"0"/"" is true.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "false", "0", "off", "":
		return false
	default:
		return true
	}
}

//
// member
//

// MemberInput is the create/update payload for a member.
type MemberInput struct {
	Name         string `validate:"required,max=100"`
	NameEn       *string
	Role         string `validate:"required,oneof=professor researcher phd master undergrad"`
	Email        string `validate:"required,email,max=255"`
	PhotoURL     *string
	Bio          *string
	BioEn        *string
	DisplayOrder int `validate:"min=0"`
}

// ParseMemberInput validates raw member form fields.  A blank Korean name
// falls back to the English name, matching how bilingual profiles are
// actually entered.
func ParseMemberInput(name, nameEn, role, email, photoURL, bio, bioEn string, displayOrder int) (*MemberInput, error) {
	resolved := strings.TrimSpace(name)
	if resolved == "" && nameEn != "" {
		resolved = strings.TrimSpace(nameEn)
	}

	in := &MemberInput{
		Name:         resolved,
		NameEn:       optional(nameEn),
		Role:         strings.TrimSpace(role),
		Email:        strings.TrimSpace(email),
		PhotoURL:     optional(photoURL),
		Bio:          optional(bio),
		BioEn:        optional(bioEn),
		DisplayOrder: displayOrder,
	}
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	return in, nil
}

//
// project
//

// ProjectInput is the create/update payload for a project.
type ProjectInput struct {
	Title       string `validate:"required,max=200"`
	TitleEn     *string
	Slug        string `validate:"required,max=150"`
	Summary     string `validate:"required,max=300"`
	Description string `validate:"required,max=8000"`
	Status      string `validate:"required,oneof=ongoing completed"`
	StartDate   string `validate:"required,datetime=2006-01-02"`
	EndDate     *string
}

// ParseProjectInput validates raw project form fields.
func ParseProjectInput(title, titleEn, slug, summary, description, status, startDate, endDate string) (*ProjectInput, error) {
	in := &ProjectInput{
		Title:       strings.TrimSpace(title),
		TitleEn:     optional(titleEn),
		Slug:        strings.TrimSpace(slug),
		Summary:     strings.TrimSpace(summary),
		Description: strings.TrimSpace(description),
		Status:      strings.TrimSpace(status),
		StartDate:   strings.TrimSpace(startDate),
		EndDate:     optional(endDate),
	}
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if in.EndDate != nil {
		if err := validate.Var(*in.EndDate, "datetime=2006-01-02"); err != nil {
			return nil, err
		}
	}
	return in, nil
}

//
// publication
//

// PublicationInput is the create/update payload for a publication.
type PublicationInput struct {
	Title            string `validate:"required,max=300"`
	TitleEn          *string
	Authors          string `validate:"required,max=500"`
	AuthorsEn        *string
	Venue            string `validate:"required,max=255"`
	VenueEn          *string
	Year             int `validate:"min=1900,max=2100"`
	Link             *string
	RelatedProjectID *int64
}

// ParsePublicationInput validates raw publication form fields.
func ParsePublicationInput(title, titleEn, authors, authorsEn, venue, venueEn string, year int, link string, relatedProjectID *int64) (*PublicationInput, error) {
	in := &PublicationInput{
		Title:            strings.TrimSpace(title),
		TitleEn:          optional(titleEn),
		Authors:          strings.TrimSpace(authors),
		AuthorsEn:        optional(authorsEn),
		Venue:            strings.TrimSpace(venue),
		VenueEn:          optional(venueEn),
		Year:             year,
		Link:             optional(link),
		RelatedProjectID: relatedProjectID,
	}
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	return in, nil
}

//
// post
//

// PostInput is the create/update payload for a post.  Content length is
// generous because the hero record stores a URL list here.
type PostInput struct {
	Title       string `validate:"required,max=200"`
	TitleEn     *string
	Slug        string `validate:"required,max=150"`
	Content     string `validate:"max=12000"`
	ContentEn   *string
	IsPublished bool
}

// ParsePostInput validates raw post form fields.  A blank Korean title or
// body falls back to the English column when present; the hero record may
// carry an empty body (the service substitutes the default image URL).
func ParsePostInput(title, titleEn, slug, contentBody, contentEn, isPublished string) (*PostInput, error) {
	resolvedTitle := strings.TrimSpace(title)
	if resolvedTitle == "" && titleEn != "" {
		resolvedTitle = strings.TrimSpace(titleEn)
	}
	resolvedContent := strings.TrimSpace(contentBody)
	if resolvedContent == "" && contentEn != "" {
		resolvedContent = strings.TrimSpace(contentEn)
	}

	in := &PostInput{
		Title:       resolvedTitle,
		TitleEn:     optional(titleEn),
		Slug:        strings.TrimSpace(slug),
		Content:     resolvedContent,
		ContentEn:   optional(contentEn),
		IsPublished: parseBool(isPublished),
	}
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if in.Slug != HeroPostSlug && in.Content == "" {
		// Only the hero record may start out empty.
		return nil, &UserError{Message: msgPostInvalid}
	}
	return in, nil
}
