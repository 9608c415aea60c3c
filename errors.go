package ipc

import (
	"errors"

	"github.com/pipe-works/ipc/ipcerr"
)

// ErrTypeMismatch is the only error kind produced by this module. It is returned,
// wrapped in an *ipcerr.Error, when a payload is not a mapping or holds a value
// outside the canonical domain, and when a Dumper does not produce a mapping.
var ErrTypeMismatch = ipcerr.ErrTypeMismatch

// IsTypeMismatch reports whether err, or any error it wraps, is ErrTypeMismatch.
func IsTypeMismatch(err error) bool {
	return errors.Is(err, ErrTypeMismatch)
}

// MismatchPath returns the location of the offending value inside the payload,
// such as "$" or "$.axes.age[0]", when err carries one.
func MismatchPath(err error) (string, bool) {
	var e *ipcerr.Error
	if !errors.As(err, &e) || e.Path == "" {
		return "", false
	}
	return e.Path, true
}
