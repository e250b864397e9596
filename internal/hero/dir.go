// internal/hero/dir.go
//
// Managed image directory: safe filenames, collision handling, disk I/O.
//
// Context
//   Dir maps a filesystem directory 1:1 onto a root-relative URL prefix
//   (the static file server guarantees the mapping).  All names that reach
//   the disk pass through sanitisation: user-supplied filenames are
//   lowered, restricted to [a-z0-9._-], and bounded in length; a collision
//   with an existing file appends a random suffix instead of overwriting.
//
//   Dir is also reused for member photos, which share the same rules under
//   a different prefix.

package hero

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxUploadBytes is the per-file size ceiling (8 MiB).
const MaxUploadBytes = 8 << 20

// maxBaseLen bounds the sanitised filename stem.
const maxBaseLen = 80

// allowedExts is the image extension allow-list.
var allowedExts = map[string]bool{
	".gif":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Korean user-facing messages; handlers render these verbatim.
var (
	ErrEmptyFile   = errors.New("빈 파일은 업로드할 수 없습니다.")
	ErrFileTooBig  = errors.New("이미지 파일은 8MB 이하만 업로드할 수 있습니다.")
	ErrBadExt      = errors.New("지원하지 않는 이미지 형식입니다. (gif, jpg, jpeg, png, webp)")
	errWriteFailed = errors.New("이미지 저장 중 오류가 발생했습니다.")
)

// Dir binds one on-disk directory to one URL prefix.
type Dir struct {
	root      string // absolute filesystem directory
	urlPrefix string // e.g. "/static/images/hero/"
}

// NewDir builds a Dir.  The directory is created on first write, not here.
func NewDir(root, urlPrefix string) *Dir {
	if !strings.HasSuffix(urlPrefix, "/") {
		urlPrefix += "/"
	}
	return &Dir{root: root, urlPrefix: urlPrefix}
}

// Root returns the managed filesystem directory.
func (d *Dir) Root() string { return d.root }

// Contains reports whether url names a single file directly inside this
// directory.  Anything else (foreign prefixes, nested paths, traversal
// attempts) is outside the Dir's authority.
func (d *Dir) Contains(url string) bool {
	name, ok := d.fileName(url)
	return ok && name != ""
}

// fileName extracts the bare filename from url, rejecting nested or
// malformed paths.
func (d *Dir) fileName(url string) (string, bool) {
	rest, found := strings.CutPrefix(url, d.urlPrefix)
	if !found || rest == "" {
		return "", false
	}
	if strings.ContainsAny(rest, "/\\") || rest == "." || rest == ".." {
		return "", false
	}
	return rest, true
}

// URLFor maps a bare filename to its public URL.
func (d *Dir) URLFor(name string) string { return d.urlPrefix + name }

// PathFor maps a managed URL to its filesystem path.
func (d *Dir) PathFor(url string) (string, bool) {
	name, ok := d.fileName(url)
	if !ok {
		return "", false
	}
	return filepath.Join(d.root, name), true
}

// Exists reports whether the file behind a managed URL is on disk.
func (d *Dir) Exists(url string) bool {
	path, ok := d.PathFor(url)
	if !ok {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// Save writes src to a collision-free file derived from name and returns
// the public URL.  size is validated before any byte is written.
func (d *Dir) Save(name string, src io.Reader, size int64) (string, error) {
	if size == 0 {
		return "", ErrEmptyFile
	}
	if size > MaxUploadBytes {
		return "", ErrFileTooBig
	}

	target, err := d.resolveName(name, "")
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(d.root, 0o755); err != nil {
		return "", errWriteFailed
	}

	dst, err := os.OpenFile(filepath.Join(d.root, target), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", errWriteFailed
	}
	_, copyErr := io.Copy(dst, io.LimitReader(src, MaxUploadBytes+1))
	closeErr := dst.Close()
	if copyErr != nil || closeErr != nil {
		os.Remove(dst.Name())
		return "", errWriteFailed
	}

	return d.URLFor(target), nil
}

// Delete removes the file behind a managed URL.  Unmanaged URLs are a
// no-op; callers pre-filter.
func (d *Dir) Delete(url string) error {
	path, ok := d.PathFor(url)
	if !ok {
		return nil
	}
	return os.Remove(path)
}

// resolveName turns a requested filename into a safe, unique target.
// fallbackExt (with dot) is used when the request carries no extension,
// as happens on rename.
func (d *Dir) resolveName(requested, fallbackExt string) (string, error) {
	ext := strings.ToLower(filepath.Ext(requested))
	base := strings.TrimSuffix(requested, filepath.Ext(requested))
	if ext == "" {
		ext = strings.ToLower(fallbackExt)
	}
	if !allowedExts[ext] {
		return "", ErrBadExt
	}

	base = sanitizeBase(base)
	if base == "" {
		base = "image"
	}
	if len(base) > maxBaseLen {
		base = base[:maxBaseLen]
	}

	name := base + ext
	if _, err := os.Stat(filepath.Join(d.root, name)); err == nil {
		// Collision: suffix with a random tag rather than overwrite.
		name = fmt.Sprintf("%s-%s%s", base, uuid.NewString()[:8], ext)
	}
	return name, nil
}

// sanitizeBase lowers the stem and strips everything outside [a-z0-9._-].
// Runs of rejected characters collapse to one dash so "여름 사진 (1)"
// degrades gracefully instead of vanishing.
func sanitizeBase(base string) string {
	base = strings.ToLower(base)
	var b strings.Builder
	lastDash := false
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_':
			b.WriteRune(r)
			lastDash = false
		case r == '-':
			b.WriteRune('-')
			lastDash = true
		default:
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-.")
}
