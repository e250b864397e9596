// internal/view/render.go
//
// View engine: template lookup, func-map injection, and an LRU of parsed
// *template.Template sets.
//
// Templates live under <root>/templates/<group>/<name>.html where group is
// "public" or "admin".  All *.html files in the same directory are parsed
// as one set so shared sub-templates ({{ template "nav" . }}) resolve
// without ceremony.  Callers pass the logical name ("public/home"); the
// engine picks the concrete template to execute: "<base>.html" when the
// file has no define block, otherwise the root template "<base>".
//
// The func map is pure (no request state captured) so parsed sets are safe
// to share across goroutines and cache entries never go stale per request.
// Request-scoped values, the language in particular, travel in the data
// payload instead.

package view

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/nlplab/labsite/internal/cache"
)

// Renderer parses and executes the site's template sets.
type Renderer struct {
	root    string // templates directory
	noCache bool   // reparse on every render (development)
	lru     *cache.LRU
	funcs   template.FuncMap
}

// New returns a Renderer over the given templates directory.  noCache
// skips the parsed-set cache so template edits show up without a restart.
func New(root string, noCache bool) *Renderer {
	return &Renderer{
		root:    root,
		noCache: noCache,
		lru:     cache.New(64),
		funcs:   builtinFuncs(),
	}
}

// Render executes the named template with status 200.
func (re *Renderer) Render(w http.ResponseWriter, name string, data any) error {
	return re.RenderStatus(w, http.StatusOK, name, data)
}

// RenderStatus renders into a buffer first, then writes the status and the
// body.  A template error after WriteHeader would otherwise leave a torn
// page with a success status.
func (re *Renderer) RenderStatus(w http.ResponseWriter, status int, name string, data any) error {
	t, err := re.load(name)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, execName(t, name), data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}

// load finds and (if necessary) parses the template set containing name.
func (re *Renderer) load(name string) (*template.Template, error) {
	file := filepath.Join(re.root, filepath.FromSlash(name)+".html")
	if _, err := os.Stat(file); err != nil {
		return nil, fmt.Errorf("view: template %q: %w", name, err)
	}

	dir := filepath.Dir(file)
	if !re.noCache {
		if v, ok := re.lru.Get(dir); ok {
			return v.(*template.Template), nil
		}
	}

	t, err := template.New(filepath.Base(dir)).Funcs(re.funcs).
		ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("view: parse %q: %w", dir, err)
	}
	if !re.noCache {
		re.lru.Add(dir, t)
	}
	return t, nil
}

// execName picks the template name to execute: the file itself when it has
// no define block, else the root template sharing its base name.
func execName(t *template.Template, name string) string {
	base := filepath.Base(filepath.FromSlash(name))
	if tmpl := t.Lookup(base + ".html"); tmpl != nil {
		return base + ".html"
	}
	return base
}

//
// func map
//

func builtinFuncs() template.FuncMap {
	return template.FuncMap{
		"loc":  loc,
		"dict": dict,
		"str": func(p *string) string {
			if p == nil {
				return ""
			}
			return *p
		},
		"date": func(t interface{ Format(string) string }) string { return t.Format("2006-01-02") },
		"nl2br": func(s string) template.HTML {
			escaped := template.HTMLEscapeString(s)
			return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
		},
	}
}

// dict builds a map in templates: {{ dict "k" 1 "k2" "v" }}.
func dict(kv ...any) map[string]any {
	m := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		m[key] = kv[i+1]
	}
	return m
}
