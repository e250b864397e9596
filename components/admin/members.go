// components/admin/members.go
//
// Member CRUD pages.  Create and update accept an optional photo upload
// stored under /static/images/members/ with the same naming and size
// rules as hero images.

package admin

import (
	"errors"
	"net/http"

	"github.com/nlplab/labsite/internal/content"
	"github.com/nlplab/labsite/internal/hero"
)

func (h *handler) listMembers(w http.ResponseWriter, r *http.Request) {
	h.renderMembers(w, r, http.StatusOK, "")
}

func (h *handler) renderMembers(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	members, err := content.ListMembers(r.Context(), h.app.DB)
	if err != nil {
		h.serverError(w, err)
		return
	}
	data := h.page(r)
	data["Members"] = members
	data["Roles"] = content.MemberRoles
	if errMsg != "" {
		data["Error"] = errMsg
	}
	h.render(w, status, "admin/members", data)
}

// memberInput builds the service input from the posted form, saving the
// optional photo first.  existing carries the current photo URL on update
// so a form without a new file keeps it.
func (h *handler) memberInput(r *http.Request, existing *string) (*content.MemberInput, error) {
	photoURL := ""
	if existing != nil {
		photoURL = *existing
	}
	if file, header, err := r.FormFile("photo"); err == nil {
		defer file.Close()
		url, err := h.photos.Save(header.Filename, file, header.Size)
		if err != nil {
			return nil, err
		}
		photoURL = url
	}

	return content.ParseMemberInput(
		r.PostFormValue("name"),
		r.PostFormValue("name_en"),
		r.PostFormValue("role"),
		r.PostFormValue("email"),
		photoURL,
		r.PostFormValue("bio"),
		r.PostFormValue("bio_en"),
		atoiDefault(r.PostFormValue("display_order"), 0),
	)
}

func (h *handler) createMember(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.renderMembers(w, r, http.StatusBadRequest, msgBadRequest)
		return
	}
	if !h.requireCSRF(w, r) {
		return
	}

	in, err := h.memberInput(r, nil)
	if err != nil {
		h.renderMembers(w, r, http.StatusBadRequest, userMessage(err))
		return
	}
	if _, err := content.CreateMember(r.Context(), h.app.DB, in); err != nil {
		h.memberFailure(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/members", http.StatusSeeOther)
}

func (h *handler) updateMember(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.renderMembers(w, r, http.StatusBadRequest, msgBadRequest)
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

	current, err := content.GetMemberByID(r.Context(), h.app.DB, id)
	if err != nil {
		h.serverError(w, err)
		return
	}
	var existingPhoto *string
	if current != nil {
		existingPhoto = current.PhotoURL
	}

	in, err := h.memberInput(r, existingPhoto)
	if err != nil {
		h.renderMembers(w, r, http.StatusBadRequest, userMessage(err))
		return
	}
	if err := content.UpdateMember(r.Context(), h.app.DB, id, in); err != nil {
		h.memberFailure(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/members", http.StatusSeeOther)
}

func (h *handler) deleteMember(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.renderMembers(w, r, http.StatusBadRequest, msgBadRequest)
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
	if err := content.DeleteMember(r.Context(), h.app.DB, id); err != nil {
		h.memberFailure(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/members", http.StatusSeeOther)
}

func (h *handler) memberFailure(w http.ResponseWriter, r *http.Request, err error) {
	if ue, ok := content.AsUserError(err); ok {
		h.renderMembers(w, r, failStatus(ue), ue.Message)
		return
	}
	h.serverError(w, err)
}

// userMessage flattens parse and upload errors into one page message.
// Upload errors (size, extension) already carry Korean text.
func userMessage(err error) string {
	if ue, ok := content.AsUserError(err); ok {
		return ue.Message
	}
	switch {
	case errors.Is(err, hero.ErrEmptyFile),
		errors.Is(err, hero.ErrFileTooBig),
		errors.Is(err, hero.ErrBadExt),
		errors.Is(err, hero.ErrRenameDefault),
		errors.Is(err, hero.ErrOutsideHeroDir),
		errors.Is(err, hero.ErrFileNotFound):
		return err.Error()
	}
	return msgBadRequest
}
