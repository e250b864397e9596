// internal/session/middleware_test.go
//
// Tests for the session middleware lifecycle and the admin guard.
//
// Workflow mirrors internal/routing/alias_test.go: build a tiny chi-free
// handler, wrap it, fire httptest requests, and assert on cookies and
// redirects.

package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

const cookieName = "nlp_lab_session"

func newTestManager() *Manager {
	return NewManager("0123456789abcdef0123456789abcdef", cookieName, false)
}

func findCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	return nil
}

func TestMiddlewareSetsCookieForNonEmptySession(t *testing.T) {
	m := newTestManager()

	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).SetAdminID(42)
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	c := findCookie(t, rr)
	if c == nil {
		t.Fatal("no session cookie set")
	}
	if !c.HttpOnly || c.Path != "/" || c.SameSite != http.SameSiteLaxMode {
		t.Fatalf("cookie attributes wrong: %+v", c)
	}

	st := NewState(Decode([]byte("0123456789abcdef0123456789abcdef"), c.Value))
	if id, ok := st.AdminID(); !ok || id != 42 {
		t.Fatalf("decoded admin id = %d, %v", id, ok)
	}
}

func TestMiddlewareClearsEmptiedSession(t *testing.T) {
	m := newTestManager()

	// Seed a valid logged-in cookie.
	seed, err := Encode([]byte("0123456789abcdef0123456789abcdef"),
		map[string]any{"admin_user_id": int64(1), "csrf_token": "t"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).Clear() // logout
		w.WriteHeader(http.StatusSeeOther)
	}))

	req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: seed})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	c := findCookie(t, rr)
	if c == nil {
		t.Fatal("expected a clearing cookie")
	}
	if c.Value != "" || c.MaxAge >= 0 {
		t.Fatalf("cookie not cleared: value=%q maxage=%d", c.Value, c.MaxAge)
	}
}

func TestMiddlewareNoCookieForUntouchedAnonymous(t *testing.T) {
	m := newTestManager()

	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if c := findCookie(t, rr); c != nil {
		t.Fatalf("anonymous no-op request got cookie %+v", c)
	}
}

func TestMiddlewareTamperedCookieIsAnonymous(t *testing.T) {
	m := newTestManager()

	var sawID bool
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawID = FromContext(r.Context()).AdminID()
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "eyJhIjoxfQ.deadbeef"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("tampered cookie surfaced as %d, want 200", rr.Code)
	}
	if sawID {
		t.Fatal("tampered cookie produced an authenticated session")
	}
}

func TestAdminGuardRedirectsAnonymous(t *testing.T) {
	m := newTestManager()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := m.Middleware(AdminGuard(next))

	for _, path := range []string{"/admin", "/admin/posts", "/admin/members/3/delete"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusSeeOther {
			t.Errorf("GET %s = %d, want 303", path, rr.Code)
		}
		if loc := rr.Header().Get("Location"); loc != "/admin/login" {
			t.Errorf("GET %s redirected to %q", path, loc)
		}
	}
}

func TestAdminGuardAllowsLoginAndPublic(t *testing.T) {
	m := newTestManager()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := m.Middleware(AdminGuard(next))

	for _, path := range []string{"/admin/login", "/", "/members", "/administrivia"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rr.Code)
		}
	}
}

func TestAdminGuardAllowsAuthenticated(t *testing.T) {
	m := newTestManager()

	seed, err := Encode([]byte("0123456789abcdef0123456789abcdef"),
		map[string]any{"admin_user_id": int64(9)})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := m.Middleware(AdminGuard(next))

	req := httptest.NewRequest(http.MethodGet, "/admin/posts", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: seed})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("authenticated admin request = %d, want 200", rr.Code)
	}
}
