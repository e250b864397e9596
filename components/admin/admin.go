// components/admin/admin.go
//
// Admin console component: login, dashboard, and the CRUD pages for
// members, projects, publications, and posts (including the hero-image
// manager behind the reserved post record).
//
// Every mutating route is CSRF-gated with the double-submit token held in
// the session; the session guard upstream already ensures an admin id on
// everything but /admin/login.

package admin

import (
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nlplab/labsite/internal/component"
	"github.com/nlplab/labsite/internal/content"
	"github.com/nlplab/labsite/internal/core"
	"github.com/nlplab/labsite/internal/csrf"
	"github.com/nlplab/labsite/internal/hero"
	"github.com/nlplab/labsite/internal/metrics"
	"github.com/nlplab/labsite/internal/session"
)

// maxFormMemory caps multipart parsing buffers; larger parts spill to
// temp files.
const maxFormMemory = 8 << 20

const msgBadRequest = "입력값을 확인해주세요."

type comp struct{}

func init() { component.Register(comp{}) }

func (comp) Name() string   { return "admin" }
func (comp) Prefix() string { return "/admin" }

func (comp) Routes(app *core.App) chi.Router {
	h := &handler{
		app: app,
		photos: hero.NewDir(
			filepath.Join(app.Cfg.Paths.Static, "images", "members"),
			"/static/images/members/"),
	}

	r := chi.NewRouter()
	r.Get("/login", h.getLogin)
	r.Post("/login", h.postLogin)
	r.Post("/logout", h.postLogout)
	r.Get("/", h.dashboard)

	r.Route("/members", func(r chi.Router) {
		r.Get("/", h.listMembers)
		r.Post("/", h.createMember)
		r.Post("/{id}/update", h.updateMember)
		r.Post("/{id}/delete", h.deleteMember)
	})
	r.Route("/projects", func(r chi.Router) {
		r.Get("/", h.listProjects)
		r.Post("/", h.createProject)
		r.Post("/{id}/update", h.updateProject)
		r.Post("/{id}/delete", h.deleteProject)
	})
	r.Route("/publications", func(r chi.Router) {
		r.Get("/", h.listPublications)
		r.Post("/", h.createPublication)
		r.Post("/{id}/update", h.updatePublication)
		r.Post("/{id}/delete", h.deletePublication)
	})
	r.Route("/posts", func(r chi.Router) {
		r.Get("/", h.listPosts)
		r.Post("/", h.createPost)
		r.Post("/{id}/update", h.updatePost)
		r.Post("/{id}/delete", h.deletePost)
		r.Get("/hero", h.heroPage)
		r.Post("/hero/upload", h.heroUpload)
		r.Post("/hero/edit", h.heroEdit)
	})
	return r
}

type handler struct {
	app    *core.App
	photos *hero.Dir // member photo uploads, hero naming rules
}

// page assembles the base payload every admin template expects.  Reading
// the CSRF token creates one on first touch, which also marks the session
// dirty so the cookie goes out with the page.
func (h *handler) page(r *http.Request) map[string]any {
	st := session.FromContext(r.Context())
	_, authed := st.AdminID()
	return map[string]any{
		"SiteName":  h.app.Cfg.App.Name,
		"Path":      r.URL.Path,
		"CSRFToken": csrf.GetOrCreate(st),
		"Authed":    authed,
	}
}

func (h *handler) render(w http.ResponseWriter, status int, name string, data map[string]any) {
	if err := h.app.Views.RenderStatus(w, status, name, data); err != nil {
		h.app.Log.Errorw("render failed", "template", name, "error", err)
		http.Error(w, "server error", http.StatusInternalServerError)
	}
}

func (h *handler) serverError(w http.ResponseWriter, err error) {
	h.app.Log.Errorw("admin page failed", "error", err)
	http.Error(w, "server error", http.StatusInternalServerError)
}

// requireCSRF validates the double-submit token on a mutating request.
// Callers must have parsed the form already.  Returns false after writing
// the 403.
func (h *handler) requireCSRF(w http.ResponseWriter, r *http.Request) bool {
	st := session.FromContext(r.Context())
	if !csrf.Validate(st, r.PostFormValue("csrf_token")) {
		metrics.CSRFRejectsTotal.Inc()
		http.Error(w, "잘못된 요청입니다.", http.StatusForbidden)
		return false
	}
	return true
}

// parseForm handles both urlencoded and multipart admin forms.
func parseForm(r *http.Request) error {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && err != http.ErrNotMultipart {
		return err
	}
	return nil
}

func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func atoiDefault(s string, def int) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// failStatus maps a service error to the re-render status.
func failStatus(ue *content.UserError) int {
	if ue.NotFound {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func (h *handler) dashboard(w http.ResponseWriter, r *http.Request) {
	counts, err := content.DashboardCounts(r.Context(), h.app.DB)
	if err != nil {
		h.serverError(w, err)
		return
	}
	data := h.page(r)
	data["Counts"] = counts
	h.render(w, http.StatusOK, "admin/dashboard", data)
}
