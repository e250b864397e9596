// internal/session/state.go
//
// Typed view over the session map.
//
// Context
//   The cookie payload is a generic JSON object, but the application only
//   cares about two keys: the admin principal id and the CSRF token.  State
//   wraps the raw map with named accessors for those keys while still
//   carrying unknown keys through a decode/encode round trip untouched
//   (forward compatibility for future session fields).
//
//   JSON numbers decode as float64; AdminID tolerates that plus the int64
//   the login handler stores, so the accessor works on both fresh and
//   round-tripped state.
//
//------------------------------------------------------------------------------

package session

const (
	adminIDKey   = "admin_user_id"
	csrfTokenKey = "csrf_token"
)

// State is the per-request session.  Not safe for concurrent use; one
// request owns one State.
type State struct {
	values map[string]any
	dirty  bool
}

// NewState wraps an already-decoded session map.  A nil map yields an
// empty session.
func NewState(values map[string]any) *State {
	if values == nil {
		values = map[string]any{}
	}
	return &State{values: values}
}

// AdminID returns the authenticated principal id.  ok is false for
// anonymous sessions and for any non-integer junk under the key.
func (s *State) AdminID() (int64, bool) {
	switch v := s.values[adminIDKey].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		// JSON round trip; accept only integral values.
		if v == float64(int64(v)) {
			return int64(v), true
		}
	}
	return 0, false
}

// SetAdminID marks the session authenticated.
func (s *State) SetAdminID(id int64) {
	s.values[adminIDKey] = id
	s.dirty = true
}

// CSRFToken returns the stored anti-forgery token, or "" when absent.
func (s *State) CSRFToken() string {
	t, _ := s.values[csrfTokenKey].(string)
	return t
}

// SetCSRFToken stores a fresh anti-forgery token.
func (s *State) SetCSRFToken(token string) {
	s.values[csrfTokenKey] = token
	s.dirty = true
}

// Clear drops every key (logout).
func (s *State) Clear() {
	s.values = map[string]any{}
	s.dirty = true
}

// Get reads an arbitrary session value (forward-compatible extras).
func (s *State) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set writes an arbitrary session value.
func (s *State) Set(key string, value any) {
	s.values[key] = value
	s.dirty = true
}

// Len reports the number of stored keys.
func (s *State) Len() int { return len(s.values) }

// Values exposes the underlying map for encoding.  Callers must not
// mutate the result.
func (s *State) Values() map[string]any { return s.values }
