// components/admin/posts.go
//
// Post CRUD pages plus the hero-image manager living behind the reserved
// post record.
//
// Hero flow
//   GET  /admin/posts/hero         list managed images (reconciled view)
//   POST /admin/posts/hero/upload  append uploaded files to the list
//   POST /admin/posts/hero/edit    apply renames and removals in one batch
//
// The stored list is reconciled on every view; when pruning or legacy
// rewriting changed it, the cleaned list is persisted immediately.

package admin

import (
	"mime/multipart"
	"net/http"

	"github.com/nlplab/labsite/internal/content"
	"github.com/nlplab/labsite/internal/hero"
)

func (h *handler) listPosts(w http.ResponseWriter, r *http.Request) {
	h.renderPosts(w, r, http.StatusOK, "")
}

func (h *handler) renderPosts(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	posts, err := content.ListPosts(r.Context(), h.app.DB)
	if err != nil {
		h.serverError(w, err)
		return
	}
	data := h.page(r)
	data["Posts"] = posts
	if errMsg != "" {
		data["Error"] = errMsg
	}
	h.render(w, status, "admin/posts", data)
}

func postInput(r *http.Request) (*content.PostInput, error) {
	return content.ParsePostInput(
		r.PostFormValue("title"),
		r.PostFormValue("title_en"),
		r.PostFormValue("slug"),
		r.PostFormValue("content"),
		r.PostFormValue("content_en"),
		r.PostFormValue("is_published"),
	)
}

func (h *handler) createPost(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.renderPosts(w, r, http.StatusBadRequest, msgBadRequest)
		return
	}
	if !h.requireCSRF(w, r) {
		return
	}

	in, err := postInput(r)
	if err != nil {
		h.renderPosts(w, r, http.StatusBadRequest, userMessage(err))
		return
	}
	if _, err := content.CreatePost(r.Context(), h.app.DB, in); err != nil {
		h.postFailure(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

func (h *handler) updatePost(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.renderPosts(w, r, http.StatusBadRequest, msgBadRequest)
		return
	}
	if !h.requireCSRF(w, r) {
		return
	}
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	in, err := postInput(r)
	if err != nil {
		h.renderPosts(w, r, http.StatusBadRequest, userMessage(err))
		return
	}
	if err := content.UpdatePost(r.Context(), h.app.DB, id, in); err != nil {
		h.postFailure(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

func (h *handler) deletePost(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.renderPosts(w, r, http.StatusBadRequest, msgBadRequest)
		return
	}
	if !h.requireCSRF(w, r) {
		return
	}
	id, ok := idParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := content.DeletePost(r.Context(), h.app.DB, id); err != nil {
		h.postFailure(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

func (h *handler) postFailure(w http.ResponseWriter, r *http.Request, err error) {
	if ue, ok := content.AsUserError(err); ok {
		h.renderPosts(w, r, failStatus(ue), ue.Message)
		return
	}
	h.serverError(w, err)
}

//
// hero manager
//

// heroList loads the stored URL list through reconcile, persisting the
// cleaned list when it changed.
func (h *handler) heroList(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	post, err := content.GetHeroPost(r.Context(), h.app.DB)
	if err != nil {
		h.serverError(w, err)
		return nil, false
	}
	raw := ""
	if post != nil {
		raw = post.Content
	}
	urls, changed := h.app.Hero.Reconcile(raw)
	if changed {
		if err := content.SaveHeroContent(r.Context(), h.app.DB, hero.JoinURLs(urls)); err != nil {
			h.serverError(w, err)
			return nil, false
		}
	}
	return urls, true
}

type heroImage struct {
	URL       string
	IsDefault bool
	Managed   bool
}

func (h *handler) heroPage(w http.ResponseWriter, r *http.Request) {
	h.renderHero(w, r, http.StatusOK, "")
}

func (h *handler) renderHero(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	urls, ok := h.heroList(w, r)
	if !ok {
		return
	}
	images := make([]heroImage, 0, len(urls))
	for _, u := range urls {
		images = append(images, heroImage{
			URL:       u,
			IsDefault: hero.IsDefault(u),
			Managed:   h.app.Hero.Dir().Contains(u),
		})
	}
	data := h.page(r)
	data["Images"] = images
	if errMsg != "" {
		data["Error"] = errMsg
	}
	h.render(w, status, "admin/hero", data)
}

func (h *handler) heroUpload(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.renderHero(w, r, http.StatusBadRequest, msgBadRequest)
		return
	}
	if !h.requireCSRF(w, r) {
		return
	}

	var files []*multipart.FileHeader
	if r.MultipartForm != nil {
		files = r.MultipartForm.File["images"]
	}
	if len(files) == 0 {
		h.renderHero(w, r, http.StatusBadRequest, msgBadRequest)
		return
	}

	saved, err := h.app.Hero.SaveUploads(files)
	if err != nil {
		h.renderHero(w, r, http.StatusBadRequest, userMessage(err))
		return
	}

	urls, ok := h.heroList(w, r)
	if !ok {
		return
	}
	urls = append(urls, saved...)
	if err := content.SaveHeroContent(r.Context(), h.app.DB, hero.JoinURLs(urls)); err != nil {
		h.serverError(w, err)
		return
	}
	http.Redirect(w, r, "/admin/posts/hero", http.StatusSeeOther)
}

// heroEdit applies renames and removals in one batch.  Renames arrive as
// paired rename_old/rename_new values, removals as repeated remove
// values; removal targets are translated through the rename map before
// deletion.
func (h *handler) heroEdit(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.renderHero(w, r, http.StatusBadRequest, msgBadRequest)
		return
	}
	if !h.requireCSRF(w, r) {
		return
	}

	olds := r.PostForm["rename_old"]
	news := r.PostForm["rename_new"]
	if len(olds) != len(news) {
		h.renderHero(w, r, http.StatusBadRequest, msgBadRequest)
		return
	}
	renames := make(map[string]string, len(olds))
	for i, old := range olds {
		if old != "" && news[i] != "" && old != news[i] {
			renames[old] = news[i]
		}
	}
	removals := r.PostForm["remove"]

	urls, ok := h.heroList(w, r)
	if !ok {
		return
	}
	updated, err := h.app.Hero.ApplyEdits(urls, renames, removals)
	if err != nil {
		h.renderHero(w, r, http.StatusBadRequest, userMessage(err))
		return
	}
	if err := content.SaveHeroContent(r.Context(), h.app.DB, hero.JoinURLs(updated)); err != nil {
		h.serverError(w, err)
		return
	}
	http.Redirect(w, r, "/admin/posts/hero", http.StatusSeeOther)
}
