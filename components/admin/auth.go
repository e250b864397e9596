// components/admin/auth.go
//
// Login and logout.
//
// Failed logins are indistinguishable between unknown username and wrong
// password.  A successful login rotates the CSRF token so the pre-login
// token is dead in any other tab.

package admin

import (
	"net/http"

	"github.com/nlplab/labsite/internal/content"
	"github.com/nlplab/labsite/internal/csrf"
	"github.com/nlplab/labsite/internal/metrics"
	"github.com/nlplab/labsite/internal/session"
)

const msgLoginFailed = "아이디 또는 비밀번호가 올바르지 않습니다."

func (h *handler) getLogin(w http.ResponseWriter, r *http.Request) {
	st := session.FromContext(r.Context())
	if _, ok := st.AdminID(); ok {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	h.render(w, http.StatusOK, "admin/login", h.page(r))
}

func (h *handler) postLogin(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		http.Error(w, msgBadRequest, http.StatusBadRequest)
		return
	}
	if !h.requireCSRF(w, r) {
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		data := h.page(r)
		data["Error"] = msgBadRequest
		h.render(w, http.StatusBadRequest, "admin/login", data)
		return
	}

	admin, err := content.Authenticate(r.Context(), h.app.DB, username, password)
	if err != nil {
		h.serverError(w, err)
		return
	}
	if admin == nil {
		metrics.LoginFailureTotal.Inc()
		h.app.Log.Infow("login failed", "username", username)
		data := h.page(r)
		data["Error"] = msgLoginFailed
		h.render(w, http.StatusUnauthorized, "admin/login", data)
		return
	}

	st := session.FromContext(r.Context())
	st.SetAdminID(admin.ID)
	csrf.Rotate(st)
	metrics.LoginSuccessTotal.Inc()
	h.app.Log.Infow("login", "username", username, "admin_id", admin.ID)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *handler) postLogout(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		http.Error(w, msgBadRequest, http.StatusBadRequest)
		return
	}
	if !h.requireCSRF(w, r) {
		return
	}
	session.FromContext(r.Context()).Clear()
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}
