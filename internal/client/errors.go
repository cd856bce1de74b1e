package client

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated is returned by every authenticated operation invoked
// before a successful Authenticate. Callers use errors.Is against it to
// prompt for re-login instead of treating the failure as a transport error.
var ErrNotAuthenticated = errors.New("not authenticated")

// StatusError reports an unexpected HTTP status from the server.
type StatusError struct {
	Op   string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: server returned status %d", e.Op, e.Code)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
