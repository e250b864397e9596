// components/public/public.go
//
// Public site component: home, members, projects, publications, posts,
// and contact pages.  Korean-first with the ?lang=en switch; everything
// here is read-only.

package public

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nlplab/labsite/internal/component"
	"github.com/nlplab/labsite/internal/content"
	"github.com/nlplab/labsite/internal/core"
	"github.com/nlplab/labsite/internal/hero"
	"github.com/nlplab/labsite/internal/view"
)

type comp struct{}

func init() { component.Register(comp{}) }

func (comp) Name() string   { return "public" }
func (comp) Prefix() string { return "/" }

func (comp) Routes(app *core.App) chi.Router {
	h := &handler{app}
	r := chi.NewRouter()
	r.Get("/", h.home)
	r.Get("/members", h.members)
	r.Get("/projects", h.projects)
	r.Get("/projects/{slug}", h.projectDetail)
	r.Get("/publications", h.publications)
	r.Get("/posts", h.posts)
	r.Get("/posts/{slug}", h.postDetail)
	r.Get("/contact", h.contact)
	return r
}

type handler struct {
	app *core.App
}

// page assembles the base payload every public template expects.
func (h *handler) page(w http.ResponseWriter, r *http.Request) map[string]any {
	view.SetLangCookie(w, r)
	return map[string]any{
		"Lang":     view.Lang(r),
		"SiteName": h.app.Cfg.App.Name,
		"Path":     r.URL.Path,
	}
}

func (h *handler) render(w http.ResponseWriter, name string, data map[string]any) {
	if err := h.app.Views.Render(w, name, data); err != nil {
		h.app.Log.Errorw("render failed", "template", name, "error", err)
		http.Error(w, "server error", http.StatusInternalServerError)
	}
}

func (h *handler) serverError(w http.ResponseWriter, err error) {
	h.app.Log.Errorw("public page failed", "error", err)
	http.Error(w, "server error", http.StatusInternalServerError)
}

// home renders the landing page: hero images plus the latest content.
// The hero list is read through reconcile; when pruning changed it, the
// cleaned list is persisted right away so the next request skips the walk.
func (h *handler) home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	heroURLs := []string{hero.DefaultURL}
	post, err := content.GetHeroPost(ctx, h.app.DB)
	if err != nil {
		h.serverError(w, err)
		return
	}
	raw := ""
	if post != nil {
		raw = post.Content
	}
	urls, changed := h.app.Hero.Reconcile(raw)
	heroURLs = urls
	if changed {
		if err := content.SaveHeroContent(ctx, h.app.DB, hero.JoinURLs(urls)); err != nil {
			h.app.Log.Warnw("hero reconcile persist failed", "error", err)
		}
	}

	projects, err := content.LatestProjects(ctx, h.app.DB, 3)
	if err != nil {
		h.serverError(w, err)
		return
	}
	pubs, err := content.LatestPublications(ctx, h.app.DB, 5)
	if err != nil {
		h.serverError(w, err)
		return
	}
	posts, err := content.LatestPublishedPosts(ctx, h.app.DB, 3)
	if err != nil {
		h.serverError(w, err)
		return
	}

	data := h.page(w, r)
	data["HeroURLs"] = heroURLs
	data["Projects"] = projects
	data["Publications"] = pubs
	data["Posts"] = posts
	h.render(w, "public/home", data)
}

func (h *handler) members(w http.ResponseWriter, r *http.Request) {
	grouped, err := content.MembersByRole(r.Context(), h.app.DB)
	if err != nil {
		h.serverError(w, err)
		return
	}
	data := h.page(w, r)
	data["Roles"] = content.MemberRoles
	data["Grouped"] = grouped
	h.render(w, "public/members", data)
}

func (h *handler) projects(w http.ResponseWriter, r *http.Request) {
	projects, err := content.ListProjects(r.Context(), h.app.DB)
	if err != nil {
		h.serverError(w, err)
		return
	}
	data := h.page(w, r)
	data["Projects"] = projects
	h.render(w, "public/projects", data)
}

func (h *handler) projectDetail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	project, err := content.GetProjectBySlug(r.Context(), h.app.DB, slug)
	if err != nil {
		h.serverError(w, err)
		return
	}
	if project == nil {
		http.NotFound(w, r)
		return
	}
	pubs, err := content.PublicationsForProject(r.Context(), h.app.DB, project.ID)
	if err != nil {
		h.serverError(w, err)
		return
	}
	data := h.page(w, r)
	data["Project"] = project
	data["Publications"] = pubs
	h.render(w, "public/project_detail", data)
}

func (h *handler) publications(w http.ResponseWriter, r *http.Request) {
	years, grouped, err := content.PublicationsByYear(r.Context(), h.app.DB)
	if err != nil {
		h.serverError(w, err)
		return
	}
	data := h.page(w, r)
	data["Years"] = years
	data["Grouped"] = grouped
	h.render(w, "public/publications", data)
}

func (h *handler) posts(w http.ResponseWriter, r *http.Request) {
	posts, err := content.ListPublishedPosts(r.Context(), h.app.DB)
	if err != nil {
		h.serverError(w, err)
		return
	}
	data := h.page(w, r)
	data["Posts"] = posts
	h.render(w, "public/posts", data)
}

func (h *handler) postDetail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := content.GetPublishedPostBySlug(r.Context(), h.app.DB, slug)
	if err != nil {
		h.serverError(w, err)
		return
	}
	if post == nil {
		http.NotFound(w, r)
		return
	}
	data := h.page(w, r)
	data["Post"] = post
	h.render(w, "public/post_detail", data)
}

func (h *handler) contact(w http.ResponseWriter, r *http.Request) {
	data := h.page(w, r)
	data["Contact"] = h.app.Cfg.Contact
	h.render(w, "public/contact", data)
}
