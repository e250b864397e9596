// components/admin/projects.go
//
// Project CRUD pages.

package admin

import (
	"net/http"

	"github.com/nlplab/labsite/internal/content"
)

func (h *handler) listProjects(w http.ResponseWriter, r *http.Request) {
	h.renderProjects(w, r, http.StatusOK, "")
}

func (h *handler) renderProjects(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	projects, err := content.ListProjects(r.Context(), h.app.DB)
	if err != nil {
		h.serverError(w, err)
		return
	}
	data := h.page(r)
	data["Projects"] = projects
	if errMsg != "" {
		data["Error"] = errMsg
	}
	h.render(w, status, "admin/projects", data)
}

func projectInput(r *http.Request) (*content.ProjectInput, error) {
	return content.ParseProjectInput(
		r.PostFormValue("title"),
		r.PostFormValue("title_en"),
		r.PostFormValue("slug"),
		r.PostFormValue("summary"),
		r.PostFormValue("description"),
		r.PostFormValue("status"),
		r.PostFormValue("start_date"),
		r.PostFormValue("end_date"),
	)
}

func (h *handler) createProject(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.renderProjects(w, r, http.StatusBadRequest, msgBadRequest)
		return
	}
	if !h.requireCSRF(w, r) {
		return
	}

	in, err := projectInput(r)
	if err != nil {
		h.renderProjects(w, r, http.StatusBadRequest, userMessage(err))
		return
	}
	if _, err := content.CreateProject(r.Context(), h.app.DB, in); err != nil {
		h.projectFailure(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/projects", http.StatusSeeOther)
}

func (h *handler) updateProject(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.renderProjects(w, r, http.StatusBadRequest, msgBadRequest)
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

	in, err := projectInput(r)
	if err != nil {
		h.renderProjects(w, r, http.StatusBadRequest, userMessage(err))
		return
	}
	if err := content.UpdateProject(r.Context(), h.app.DB, id, in); err != nil {
		h.projectFailure(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/projects", http.StatusSeeOther)
}

func (h *handler) deleteProject(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.renderProjects(w, r, http.StatusBadRequest, msgBadRequest)
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
	if err := content.DeleteProject(r.Context(), h.app.DB, id); err != nil {
		h.projectFailure(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/projects", http.StatusSeeOther)
}

func (h *handler) projectFailure(w http.ResponseWriter, r *http.Request, err error) {
	if ue, ok := content.AsUserError(err); ok {
		h.renderProjects(w, r, failStatus(ue), ue.Message)
		return
	}
	h.serverError(w, err)
}
