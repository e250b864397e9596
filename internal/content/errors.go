// internal/content/errors.go
//
// User-facing error type for the CRUD services.
//
// Services distinguish two failure classes: user errors (validation,
// duplicate keys, unknown ids) that re-render the originating page with a
// Korean message, and system errors (SQL, I/O) that surface as a generic
// 500.  Handlers branch with AsUserError, mirroring the
// validation-vs-system split the forms layer used before.

package content

import "errors"

// UserError carries a message destined for the page, plus whether the
// failure is a missing record (404) rather than bad input (400).
type UserError struct {
	Message  string
	NotFound bool
}

func (e *UserError) Error() string { return e.Message }

// AsUserError unwraps err into a *UserError when possible.
func AsUserError(err error) (*UserError, bool) {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

func conflict(msg string) error { return &UserError{Message: msg} }
func notFound(msg string) error { return &UserError{Message: msg, NotFound: true} }
