// internal/csrf/csrf.go
//
// Session-bound CSRF tokens.
//
// Context
//   Every rendered admin form embeds a hidden `csrf_token` input whose
//   value lives in the session itself (double-submit against the signed
//   cookie).  Mutating routes call Validate before acting and answer 403
//   on mismatch.  Rotate runs on successful login so a token captured from
//   the anonymous session cannot ride into the authenticated one.
//
// Workflow
//   •  GetOrCreate(state) → token for the renderer.
//   •  Rotate(state)      → fresh token, unconditionally.
//   •  Validate(state, t) → constant-time verify; false on any failure.
//
//------------------------------------------------------------------------------

package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"

	"github.com/nlplab/labsite/internal/session"
)

const (
	tokenBytes  = 32  // raw entropy before encoding
	maxTokenLen = 256 // structural bound on submitted values
)

// GetOrCreate returns the session's token, minting one when absent.
func GetOrCreate(st *session.State) string {
	if t := st.CSRFToken(); t != "" {
		return t
	}
	return Rotate(st)
}

// Rotate unconditionally replaces the session token.  Call on login.
func Rotate(st *session.State) string {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; if it does the
		// process has bigger problems than one request.
		panic("csrf: system entropy unavailable: " + err.Error())
	}
	token := base64.RawURLEncoding.EncodeToString(buf)
	st.SetCSRFToken(token)
	return token
}

// Validate reports whether submitted matches the session token.  A session
// without a token always fails, as does an empty or oversized submission.
func Validate(st *session.State, submitted string) bool {
	if submitted == "" || len(submitted) > maxTokenLen {
		return false
	}
	stored := st.CSRFToken()
	if stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1
}
