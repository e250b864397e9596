// internal/hero/manager.go
//
// Hero-image file manager.
//
// Context
//   The admin UI, the database text field, and the filesystem must agree
//   on which banner images exist.  This is the one place in the system
//   with real state-consistency risk: files can disappear outside any
//   request (manual disk edits, partial failures), so every admin list
//   view runs Reconcile to prune references that no longer resolve.
//
//   Policy, applied uniformly:
//     • DefaultURL is immutable: never renamed, never removed, always kept.
//     • URLs outside URLPrefix are "foreign": displayable and removable
//       from the list, but never renamed, verified, or deleted on disk.
//     • The list never collapses to empty; [DefaultURL] is the floor.
//
//   Two-phase writes: callers mutate the filesystem through this manager
//   first, then persist the resulting list.  A DB failure after a file
//   write self-heals on the next Reconcile instead of being retried here.

package hero

import (
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/nlplab/labsite/internal/metrics"
)

// Rename/remove policy errors, rendered verbatim in the admin UI.
var (
	ErrRenameDefault  = errors.New("기본 히어로 이미지는 이름을 바꿀 수 없습니다.")
	ErrOutsideHeroDir = errors.New("히어로 이미지 폴더의 파일만 변경할 수 있습니다.")
	ErrFileNotFound   = errors.New("이미지 파일을 찾을 수 없습니다.")
)

// Manager owns the hero directory.
type Manager struct {
	dir *Dir
	log *zap.SugaredLogger
}

// NewManager builds a Manager over <staticDir>/images/hero.
func NewManager(staticDir string, log *zap.SugaredLogger) *Manager {
	return &Manager{
		dir: NewDir(filepath.Join(staticDir, "images", "hero"), URLPrefix),
		log: log,
	}
}

// Dir exposes the underlying directory (used by tests and the member
// photo handler, which shares the naming rules via NewDir).
func (m *Manager) Dir() *Dir { return m.dir }

// DefaultContent is the stored-content floor for an empty list.
func (m *Manager) DefaultContent() string { return DefaultURL }

//
// Upload
//

// SaveUploads writes every submitted file and returns their URLs in
// submission order.  The batch is all-or-nothing: the first failure
// deletes everything already written and returns the user-facing error.
func (m *Manager) SaveUploads(files []*multipart.FileHeader) ([]string, error) {
	var urls []string

	rollback := func() {
		for _, u := range urls {
			if err := m.dir.Delete(u); err != nil {
				m.log.Warnw("hero upload rollback failed", "url", u, "err", err)
			}
		}
	}

	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			rollback()
			metrics.HeroUploadsRejected.Inc()
			return nil, errWriteFailed
		}
		url, err := m.dir.Save(fh.Filename, src, fh.Size)
		src.Close()
		if err != nil {
			rollback()
			metrics.HeroUploadsRejected.Inc()
			return nil, err
		}
		urls = append(urls, url)
	}

	metrics.HeroUploadsTotal.Add(float64(len(urls)))
	return urls, nil
}

//
// Rename
//

// Rename moves the file behind url to a name derived from newName and
// returns the replacement URL.  The default image and foreign URLs are
// rejected; a missing extension inherits the old one.
func (m *Manager) Rename(url, newName string) (string, error) {
	if IsDefault(url) {
		return "", ErrRenameDefault
	}
	if !m.dir.Contains(url) {
		return "", ErrOutsideHeroDir
	}

	oldPath, _ := m.dir.PathFor(url)
	if !m.dir.Exists(url) {
		return "", ErrFileNotFound
	}

	target, err := m.dir.resolveName(newName, filepath.Ext(oldPath))
	if err != nil {
		return "", err
	}

	newPath := filepath.Join(m.dir.root, target)
	if err := os.Rename(oldPath, newPath); err != nil {
		m.log.Errorw("hero rename failed", "from", oldPath, "to", newPath, "err", err)
		return "", errWriteFailed
	}

	m.log.Infow("hero image renamed", "from", url, "to", m.dir.URLFor(target))
	return m.dir.URLFor(target), nil
}

//
// Remove
//

// Remove drops the URLs in removals from urls.  The default image is
// silently excluded.  Managed files are deleted from disk; foreign URLs
// drop from the list only, since the files are not ours.  File-delete
// failures are logged and swallowed: the list is the source of truth,
// and an orphan file beats a dangling reference.
func (m *Manager) Remove(urls, removals []string) []string {
	drop := make(map[string]bool, len(removals))
	for _, u := range removals {
		if IsDefault(u) {
			continue
		}
		drop[u] = true
	}

	var kept []string
	for _, u := range urls {
		if !drop[u] {
			kept = append(kept, u)
			continue
		}
		if !m.dir.Contains(u) {
			continue
		}
		if err := m.dir.Delete(u); err != nil {
			m.log.Warnw("hero image delete failed", "url", u, "err", err)
		}
	}

	if len(kept) == 0 {
		kept = []string{DefaultURL}
	}
	return kept
}

//
// Combined edits
//

// ApplyEdits performs renames first, then removals.  Removal targets are
// translated through the rename results, so a removal aimed at a
// pre-rename URL still deletes the post-rename file.
func (m *Manager) ApplyEdits(urls []string, renames map[string]string, removals []string) ([]string, error) {
	renamed := make(map[string]string, len(renames))
	for oldURL, newName := range renames {
		newURL, err := m.Rename(oldURL, newName)
		if err != nil {
			return nil, err
		}
		renamed[oldURL] = newURL
	}

	list := make([]string, len(urls))
	for i, u := range urls {
		if nu, ok := renamed[u]; ok {
			list[i] = nu
		} else {
			list[i] = u
		}
	}

	drop := make([]string, len(removals))
	for i, u := range removals {
		if nu, ok := renamed[u]; ok {
			drop[i] = nu
		} else {
			drop[i] = u
		}
	}

	return m.Remove(list, drop), nil
}

//
// Reconcile
//

// Reconcile parses stored content, prunes managed URLs whose files are
// gone, and reports whether storage must be rewritten (pruning, legacy
// rewrites, or plain formatting drift).  It never widens the list, so
// running it concurrently is safe, and running it twice is a no-op.
func (m *Manager) Reconcile(raw string) ([]string, bool) {
	var kept []string
	for _, url := range ParseURLs(raw) {
		switch {
		case IsDefault(url):
			kept = append(kept, url)
		case m.dir.Contains(url):
			if m.dir.Exists(url) {
				kept = append(kept, url)
			} else {
				m.log.Infow("hero image pruned", "url", url)
			}
		default:
			// Foreign URL: displayable, not ours to verify.
			kept = append(kept, url)
		}
	}

	if len(kept) == 0 {
		kept = []string{DefaultURL}
	}

	return kept, JoinURLs(kept) != raw
}
