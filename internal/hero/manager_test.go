// internal/hero/manager_test.go
//
// Filesystem-backed tests for the hero manager.  Each test gets its own
// static root via t.TempDir, so nothing touches the repo tree.

package hero

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(t.TempDir(), zap.NewNop().Sugar())
}

// writeHeroFile puts a file directly into the managed directory and
// returns its URL.
func writeHeroFile(t *testing.T, m *Manager, name string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(m.Dir().Root(), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(m.Dir().Root(), name), []byte("img"), 0o644))
	return m.Dir().URLFor(name)
}

// multipartFiles builds real *multipart.FileHeader values the way the
// HTTP layer would hand them over.
func multipartFiles(t *testing.T, files map[string][]byte) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, data := range files {
		part, err := w.CreateFormFile("hero_image_files", name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	r := multipart.NewReader(&buf, w.Boundary())
	form, err := r.ReadForm(32 << 20)
	require.NoError(t, err)
	return form.File["hero_image_files"]
}

//
// Upload
//

func TestSaveUploadsWritesAndReturnsURLs(t *testing.T) {
	m := newTestManager(t)

	urls, err := m.SaveUploads(multipartFiles(t, map[string][]byte{
		"Summer Trip (1).PNG": []byte("\x89PNG fake"),
	}))
	require.NoError(t, err)
	require.Len(t, urls, 1)

	assert.True(t, strings.HasPrefix(urls[0], URLPrefix))
	assert.True(t, strings.HasSuffix(urls[0], ".png"))
	assert.True(t, m.Dir().Exists(urls[0]))
}

func TestSaveUploadsRejectsBadExtension(t *testing.T) {
	m := newTestManager(t)

	_, err := m.SaveUploads(multipartFiles(t, map[string][]byte{
		"banner.bmp": []byte("bm"),
	}))
	assert.ErrorIs(t, err, ErrBadExt)
}

func TestSaveUploadsRejectsOversizeAndAcceptsTiny(t *testing.T) {
	m := newTestManager(t)

	_, err := m.SaveUploads(multipartFiles(t, map[string][]byte{
		"big.png": bytes.Repeat([]byte("x"), 9<<20), // 9 MiB
	}))
	assert.ErrorIs(t, err, ErrFileTooBig)

	urls, err := m.SaveUploads(multipartFiles(t, map[string][]byte{
		"tiny.png": {0x89}, // one byte is enough
	}))
	require.NoError(t, err)
	assert.Len(t, urls, 1)
}

func TestSaveUploadsRejectsEmptyFile(t *testing.T) {
	m := newTestManager(t)

	_, err := m.SaveUploads(multipartFiles(t, map[string][]byte{
		"empty.png": {},
	}))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestSaveUploadsBatchRollsBack(t *testing.T) {
	m := newTestManager(t)

	// Ordered batch: a valid file followed by an invalid one.  ReadForm
	// preserves part order, so build the parts explicitly.
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	good, err := w.CreateFormFile("hero_image_files", "good.png")
	require.NoError(t, err)
	_, _ = good.Write([]byte("ok"))
	bad, err := w.CreateFormFile("hero_image_files", "bad.tiff")
	require.NoError(t, err)
	_, _ = bad.Write([]byte("nope"))
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)

	_, err = m.SaveUploads(form.File["hero_image_files"])
	assert.ErrorIs(t, err, ErrBadExt)

	// The first file must be gone again.
	entries, readErr := os.ReadDir(m.Dir().Root())
	if readErr == nil {
		assert.Empty(t, entries, "rollback left files behind")
	}
}

func TestSaveUploadCollisionGetsSuffix(t *testing.T) {
	m := newTestManager(t)
	writeHeroFile(t, m, "team.png")

	urls, err := m.SaveUploads(multipartFiles(t, map[string][]byte{
		"team.png": []byte("new"),
	}))
	require.NoError(t, err)

	assert.NotEqual(t, m.Dir().URLFor("team.png"), urls[0])
	assert.True(t, strings.HasPrefix(urls[0], URLPrefix+"team-"))
	assert.True(t, m.Dir().Exists(urls[0]))

	// The original file is untouched.
	assert.True(t, m.Dir().Exists(m.Dir().URLFor("team.png")))
}

//
// Rename
//

func TestRenameDefaultRejected(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Rename(DefaultURL, "anything.jpg")
	assert.ErrorIs(t, err, ErrRenameDefault)
}

func TestRenameForeignRejected(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Rename("/static/images/other.jpg", "x.jpg")
	assert.ErrorIs(t, err, ErrOutsideHeroDir)

	_, err = m.Rename("/static/images/hero/../../etc/passwd", "x.jpg")
	assert.ErrorIs(t, err, ErrOutsideHeroDir)
}

func TestRenameMissingFile(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Rename(URLPrefix+"ghost.png", "x.png")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestRenameKeepsExtensionWhenOmitted(t *testing.T) {
	m := newTestManager(t)
	oldURL := writeHeroFile(t, m, "before.png")

	newURL, err := m.Rename(oldURL, "after")
	require.NoError(t, err)

	assert.Equal(t, URLPrefix+"after.png", newURL)
	assert.False(t, m.Dir().Exists(oldURL))
	assert.True(t, m.Dir().Exists(newURL))
}

func TestRenameRejectsDisallowedTargetExtension(t *testing.T) {
	m := newTestManager(t)
	oldURL := writeHeroFile(t, m, "before.png")

	_, err := m.Rename(oldURL, "after.exe")
	assert.ErrorIs(t, err, ErrBadExt)
	assert.True(t, m.Dir().Exists(oldURL), "failed rename must not move the file")
}

func TestRenameCollisionGetsSuffix(t *testing.T) {
	m := newTestManager(t)
	oldURL := writeHeroFile(t, m, "a.png")
	writeHeroFile(t, m, "b.png")

	newURL, err := m.Rename(oldURL, "b.png")
	require.NoError(t, err)

	assert.NotEqual(t, URLPrefix+"b.png", newURL)
	assert.True(t, strings.HasPrefix(newURL, URLPrefix+"b-"))
}

//
// Remove
//

func TestRemoveDeletesFilesAndKeepsDefault(t *testing.T) {
	m := newTestManager(t)
	a := writeHeroFile(t, m, "a.png")
	b := writeHeroFile(t, m, "b.png")

	urls := []string{DefaultURL, a, b}
	kept := m.Remove(urls, []string{a, DefaultURL})

	assert.Equal(t, []string{DefaultURL, b}, kept)
	assert.False(t, m.Dir().Exists(a))
	assert.True(t, m.Dir().Exists(b))
}

func TestRemoveForeignURLDropsListEntryOnly(t *testing.T) {
	m := newTestManager(t)
	b := writeHeroFile(t, m, "b.png")
	foreign := "/static/images/elsewhere.jpg"

	kept := m.Remove([]string{foreign, b}, []string{foreign})

	assert.Equal(t, []string{b}, kept)
	assert.True(t, m.Dir().Exists(b))
}

func TestRemoveEverythingFallsBackToDefault(t *testing.T) {
	m := newTestManager(t)
	a := writeHeroFile(t, m, "a.png")

	kept := m.Remove([]string{a}, []string{a})
	assert.Equal(t, []string{DefaultURL}, kept)
}

func TestRemoveSwallowsMissingFile(t *testing.T) {
	m := newTestManager(t)
	ghost := URLPrefix + "ghost.png"

	kept := m.Remove([]string{ghost}, []string{ghost})
	assert.Equal(t, []string{DefaultURL}, kept)
}

//
// Combined edits
//

func TestApplyEditsTranslatesRemovalsThroughRenames(t *testing.T) {
	m := newTestManager(t)
	a := writeHeroFile(t, m, "a.png")
	b := writeHeroFile(t, m, "b.png")

	// Rename a → c, and remove "a" by its pre-rename URL.
	kept, err := m.ApplyEdits(
		[]string{a, b},
		map[string]string{a: "c.png"},
		[]string{a},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{b}, kept)
	assert.False(t, m.Dir().Exists(URLPrefix+"c.png"), "renamed file should have been removed")
	assert.False(t, m.Dir().Exists(a))
}

func TestApplyEditsRenameOnly(t *testing.T) {
	m := newTestManager(t)
	a := writeHeroFile(t, m, "a.png")
	b := writeHeroFile(t, m, "b.png")

	kept, err := m.ApplyEdits([]string{a, b}, map[string]string{b: "renamed"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{a, URLPrefix + "renamed.png"}, kept)
}

func TestApplyEditsFailedRenameLeavesListAlone(t *testing.T) {
	m := newTestManager(t)
	a := writeHeroFile(t, m, "a.png")

	_, err := m.ApplyEdits([]string{DefaultURL, a}, map[string]string{DefaultURL: "x.jpg"}, nil)
	assert.ErrorIs(t, err, ErrRenameDefault)
	assert.True(t, m.Dir().Exists(a))
}

//
// Reconcile
//

func TestReconcilePrunesMissingManagedFiles(t *testing.T) {
	m := newTestManager(t)
	live := writeHeroFile(t, m, "live.png")
	gone := URLPrefix + "gone.png"
	foreign := "/static/images/foreign.jpg"

	raw := JoinURLs([]string{DefaultURL, live, gone, foreign})
	kept, changed := m.Reconcile(raw)

	assert.True(t, changed)
	assert.Equal(t, []string{DefaultURL, live, foreign}, kept)
}

func TestReconcileIdempotent(t *testing.T) {
	m := newTestManager(t)
	live := writeHeroFile(t, m, "live.png")

	first, _ := m.Reconcile(JoinURLs([]string{live, URLPrefix + "gone.png"}))
	second, changed := m.Reconcile(JoinURLs(first))

	assert.False(t, changed, "second pass must be a no-op")
	assert.Equal(t, first, second)
}

func TestReconcileEmptyFallsBackToDefault(t *testing.T) {
	m := newTestManager(t)

	kept, changed := m.Reconcile("")
	assert.True(t, changed)
	assert.Equal(t, []string{DefaultURL}, kept)
}

func TestReconcileRewritesLegacyDefault(t *testing.T) {
	m := newTestManager(t)

	kept, changed := m.Reconcile("/static/images/hero.jpg")
	assert.True(t, changed)
	assert.Equal(t, []string{DefaultURL}, kept)
}

func TestReconcileCleanContentUnchanged(t *testing.T) {
	m := newTestManager(t)
	live := writeHeroFile(t, m, "live.png")

	raw := JoinURLs([]string{DefaultURL, live})
	kept, changed := m.Reconcile(raw)

	assert.False(t, changed)
	assert.Equal(t, []string{DefaultURL, live}, kept)
}
