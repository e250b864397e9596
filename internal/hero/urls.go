// internal/hero/urls.go
//
// Hero-image URL list handling.
//
// Context
//   The home-page banner images are stored as newline-joined root-relative
//   URLs inside one reserved post record.  Operators have historically
//   typed these by hand, so parsing is forgiving: bare filenames, paths
//   missing the /static prefix, and the legacy single-image default all
//   normalise to canonical /static/... form.  External http(s) URLs are
//   never accepted; the banner only serves files this process controls.
//
//   Order is display order; the first entry is the primary banner.

package hero

import "strings"

const (
	// URLPrefix is the public prefix of the managed hero directory.
	URLPrefix = "/static/images/hero/"

	// DefaultURL is the built-in banner.  It is immutable: never renamed,
	// never removed, always a valid fallback.
	DefaultURL = "/static/images/hero/hero.jpg"

	// legacyDefaultURL predates the hero/ subdirectory and still appears
	// in old records; it is rewritten to DefaultURL on sight.
	legacyDefaultURL = "/static/images/hero.jpg"
)

// NormalizeURL canonicalises one raw line.  ok is false for blank lines
// and external URLs.
func NormalizeURL(raw string) (string, bool) {
	url := strings.TrimSpace(raw)
	if url == "" {
		return "", false
	}

	lowered := strings.ToLower(url)
	if strings.HasPrefix(lowered, "http://") || strings.HasPrefix(lowered, "https://") {
		return "", false
	}

	switch {
	case strings.HasPrefix(url, "/static/"):
		if url == legacyDefaultURL {
			return DefaultURL, true
		}
		return url, true
	case strings.HasPrefix(url, "/images/"):
		return "/static" + url, true
	case strings.HasPrefix(url, "/"):
		return "/static" + url, true
	case strings.HasPrefix(url, "static/"):
		return "/" + url, true
	default:
		return "/static/" + url, true
	}
}

// ParseURLs splits and normalises stored content into the display list.
func ParseURLs(raw string) []string {
	var urls []string
	for _, line := range strings.Split(raw, "\n") {
		if url, ok := NormalizeURL(line); ok {
			urls = append(urls, url)
		}
	}
	return urls
}

// JoinURLs is the inverse of ParseURLs for already-canonical lists.
func JoinURLs(urls []string) string {
	return strings.Join(urls, "\n")
}

// IsDefault reports whether url is the immutable built-in banner.
func IsDefault(url string) bool { return url == DefaultURL }
