// components/admin/publications.go
//
// Publication CRUD pages.  The project dropdown is fed from the full
// project list; an empty selection stores NULL.

package admin

import (
	"net/http"
	"strconv"

	"github.com/nlplab/labsite/internal/content"
)

func (h *handler) listPublications(w http.ResponseWriter, r *http.Request) {
	h.renderPublications(w, r, http.StatusOK, "")
}

func (h *handler) renderPublications(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	pubs, err := content.ListPublications(r.Context(), h.app.DB)
	if err != nil {
		h.serverError(w, err)
		return
	}
	projects, err := content.ListProjects(r.Context(), h.app.DB)
	if err != nil {
		h.serverError(w, err)
		return
	}
	data := h.page(r)
	data["Publications"] = pubs
	data["Projects"] = projects
	if errMsg != "" {
		data["Error"] = errMsg
	}
	h.render(w, status, "admin/publications", data)
}

func publicationInput(r *http.Request) (*content.PublicationInput, error) {
	var related *int64
	if raw := r.PostFormValue("related_project_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return nil, &content.UserError{Message: msgBadRequest}
		}
		related = &id
	}
	return content.ParsePublicationInput(
		r.PostFormValue("title"),
		r.PostFormValue("title_en"),
		r.PostFormValue("authors"),
		r.PostFormValue("authors_en"),
		r.PostFormValue("venue"),
		r.PostFormValue("venue_en"),
		atoiDefault(r.PostFormValue("year"), 0),
		r.PostFormValue("link"),
		related,
	)
}

func (h *handler) createPublication(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.renderPublications(w, r, http.StatusBadRequest, msgBadRequest)
		return
	}
	if !h.requireCSRF(w, r) {
		return
	}

	in, err := publicationInput(r)
	if err != nil {
		h.renderPublications(w, r, http.StatusBadRequest, userMessage(err))
		return
	}
	if _, err := content.CreatePublication(r.Context(), h.app.DB, in); err != nil {
		h.publicationFailure(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/publications", http.StatusSeeOther)
}

func (h *handler) updatePublication(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.renderPublications(w, r, http.StatusBadRequest, msgBadRequest)
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

	in, err := publicationInput(r)
	if err != nil {
		h.renderPublications(w, r, http.StatusBadRequest, userMessage(err))
		return
	}
	if err := content.UpdatePublication(r.Context(), h.app.DB, id, in); err != nil {
		h.publicationFailure(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/publications", http.StatusSeeOther)
}

func (h *handler) deletePublication(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.renderPublications(w, r, http.StatusBadRequest, msgBadRequest)
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
	if err := content.DeletePublication(r.Context(), h.app.DB, id); err != nil {
		h.publicationFailure(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/publications", http.StatusSeeOther)
}

func (h *handler) publicationFailure(w http.ResponseWriter, r *http.Request, err error) {
	if ue, ok := content.AsUserError(err); ok {
		h.renderPublications(w, r, failStatus(ue), ue.Message)
		return
	}
	h.serverError(w, err)
}
