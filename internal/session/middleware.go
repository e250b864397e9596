// internal/session/middleware.go
//
// Session middleware: decode on the way in, re-sign on the way out.
//
// Context
//   One State is materialised per request from the incoming cookie (or
//   empty when absent/invalid), handed to handlers through the request
//   context, and serialised exactly once at response time:
//
//     • non-empty state  → re-signed Set-Cookie on every response,
//     • emptied state    → cookie-clearing Set-Cookie (Max-Age -1),
//     • never-had-cookie → nothing.
//
//   Headers must be written before the body, so the wrapper intercepts the
//   first WriteHeader/Write and emits the cookie just in time.  Handlers
//   that never write (rare) are covered by the deferred finalize.
//
//   Cookie attributes: HttpOnly, SameSite=Lax, Path=/, Secure only in
//   production so local HTTP development keeps working.
//
//------------------------------------------------------------------------------

package session

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// Manager owns the signing secret and cookie policy.
type Manager struct {
	secret     []byte
	cookieName string
	secure     bool
}

// NewManager builds a Manager.  secure should be true only behind TLS.
func NewManager(secret, cookieName string, secure bool) *Manager {
	return &Manager{secret: []byte(secret), cookieName: cookieName, secure: secure}
}

// CookieName returns the configured cookie name (used by tests).
func (m *Manager) CookieName() string { return m.cookieName }

//
// context plumbing
//

type ctxKey struct{} // unexported, collision-proof

// FromContext returns the request's State.  It returns an empty, detached
// State when the middleware has not run, so callers never nil-check.
func FromContext(ctx context.Context) *State {
	if st, ok := ctx.Value(ctxKey{}).(*State); ok {
		return st
	}
	return NewState(nil)
}

// WithState injects st into ctx (exported for handler tests).
func WithState(ctx context.Context, st *State) context.Context {
	return context.WithValue(ctx, ctxKey{}, st)
}

//
// middleware
//

// Middleware wires the decode → dispatch → encode lifecycle.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw string
		if c, err := r.Cookie(m.cookieName); err == nil {
			raw = c.Value
		}

		st := NewState(Decode(m.secret, raw))
		sw := &stateWriter{
			ResponseWriter: w,
			mgr:            m,
			state:          st,
			hadCookie:      raw != "",
		}

		next.ServeHTTP(sw, r.WithContext(WithState(r.Context(), st)))
		sw.finalize()
	})
}

//
// lazy cookie writer
//

// stateWriter defers the Set-Cookie decision until the response commits.
type stateWriter struct {
	http.ResponseWriter
	mgr         *Manager
	state       *State
	hadCookie   bool
	wroteHeader bool
	emitted     bool
}

func (sw *stateWriter) WriteHeader(code int) {
	if !sw.wroteHeader {
		sw.wroteHeader = true
		sw.emitCookie()
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *stateWriter) Write(b []byte) (int, error) {
	if !sw.wroteHeader {
		sw.WriteHeader(http.StatusOK)
	}
	return sw.ResponseWriter.Write(b)
}

// finalize covers handlers that wrote neither header nor body.
func (sw *stateWriter) finalize() {
	if !sw.wroteHeader {
		sw.emitCookie()
	}
}

// emitCookie re-signs a non-empty session or clears an emptied one.
func (sw *stateWriter) emitCookie() {
	if sw.emitted {
		return
	}
	sw.emitted = true

	switch {
	case sw.state.Len() > 0:
		value, err := Encode(sw.mgr.secret, sw.state.Values())
		if err != nil {
			// Unserialisable session value; drop the cookie rather than
			// send a torn one.
			zap.L().Error("session encode failed", zap.Error(err))
			return
		}
		http.SetCookie(sw.ResponseWriter, &http.Cookie{
			Name:     sw.mgr.cookieName,
			Value:    value,
			Path:     "/",
			HttpOnly: true,
			Secure:   sw.mgr.secure,
			SameSite: http.SameSiteLaxMode,
		})
	case sw.hadCookie:
		http.SetCookie(sw.ResponseWriter, &http.Cookie{
			Name:     sw.mgr.cookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   sw.mgr.secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
