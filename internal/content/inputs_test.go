// internal/content/inputs_test.go

package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMemberInputNameFallsBackToEnglish(t *testing.T) {
	in, err := ParseMemberInput("", "Jane Doe", RolePhD, "jane@lab.test", "", "", "", 0)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", in.Name)
	require.NotNil(t, in.NameEn)
	assert.Equal(t, "Jane Doe", *in.NameEn)
}

func TestParseMemberInputRejectsBadRole(t *testing.T) {
	_, err := ParseMemberInput("김철수", "", "postdoc", "kim@lab.test", "", "", "", 0)
	assert.Error(t, err)
}

func TestParseMemberInputRejectsBadEmail(t *testing.T) {
	_, err := ParseMemberInput("김철수", "", RolePhD, "not-an-email", "", "", "", 0)
	assert.Error(t, err)
}

func TestParseMemberInputBlankOptionalsBecomeNil(t *testing.T) {
	in, err := ParseMemberInput("김철수", "  ", RolePhD, "kim@lab.test", "", "  ", "", 2)
	require.NoError(t, err)
	assert.Nil(t, in.NameEn)
	assert.Nil(t, in.PhotoURL)
	assert.Nil(t, in.Bio)
	assert.Equal(t, 2, in.DisplayOrder)
}

func TestParseProjectInputDates(t *testing.T) {
	_, err := ParseProjectInput("제목", "", "slug-1", "요약", "설명", StatusOngoing, "2026-01-15", "")
	require.NoError(t, err)

	_, err = ParseProjectInput("제목", "", "slug-1", "요약", "설명", StatusOngoing, "01/15/2026", "")
	assert.Error(t, err)

	_, err = ParseProjectInput("제목", "", "slug-1", "요약", "설명", StatusCompleted, "2025-01-01", "2026-13-40")
	assert.Error(t, err)
}

func TestParsePublicationInputYearBounds(t *testing.T) {
	_, err := ParsePublicationInput("논문", "", "저자", "", "ACL", "", 2026, "", nil)
	require.NoError(t, err)

	_, err = ParsePublicationInput("논문", "", "저자", "", "ACL", "", 1805, "", nil)
	assert.Error(t, err)
}

func TestParsePostInputTitleAndContentFallback(t *testing.T) {
	in, err := ParsePostInput("", "English Title", "slug-a", "", "English body", "on")
	require.NoError(t, err)
	assert.Equal(t, "English Title", in.Title)
	assert.Equal(t, "English body", in.Content)
	assert.True(t, in.IsPublished)
}

func TestParsePostInputEmptyContentOnlyForHeroSlug(t *testing.T) {
	_, err := ParsePostInput("제목", "", "regular-post", "", "", "false")
	ue, ok := AsUserError(err)
	require.True(t, ok)
	assert.Equal(t, msgPostInvalid, ue.Message)

	in, err := ParsePostInput(HeroPostTitle, "", HeroPostSlug, "", "", "false")
	require.NoError(t, err)
	assert.Empty(t, in.Content)
	assert.False(t, in.IsPublished)
}

func TestParseBoolCheckboxSemantics(t *testing.T) {
	assert.True(t, parseBool("on"))
	assert.True(t, parseBool("true"))
	assert.True(t, parseBool("1"))
	assert.False(t, parseBool(""))
	assert.False(t, parseBool("false"))
	assert.False(t, parseBool("0"))
	assert.False(t, parseBool("off"))
}
