package ipcerr

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTypeMismatch indicates a value was not of the shape an operation requires:
// a non-mapping payload at the top level, a value outside the canonical domain,
// or a Dumper whose ModelDump did not return a mapping.
var ErrTypeMismatch = errors.New("type mismatch")

// KindTypeMismatch is the Kind recorded on every *Error built by TypeMismatch.
const KindTypeMismatch = "type_mismatch"

// RootPath is the location of the top-level value handed to an operation.
const RootPath = "$"

// Error is a structured error describing where and why an operation rejected
// its input.
type Error struct {
	// Op is the operation that failed (e.g. "canonical.Canonicalize").
	Op string

	// Kind categorizes the error. Currently always KindTypeMismatch.
	Kind string

	// Got is a description of the offending value's type (e.g. "string", "chan int").
	Got string

	// Path locates the offending value, "$" for the top level and
	// "$.key[2]" style for nested values.
	Path string

	// Err is the underlying sentinel.
	Err error
}

// TypeMismatch creates an *Error with KindTypeMismatch for the value at the top level.
func TypeMismatch(op string, got any) *Error {
	return &Error{
		Op:   op,
		Kind: KindTypeMismatch,
		Got:  Describe(got),
		Path: RootPath,
		Err:  ErrTypeMismatch,
	}
}

// At returns a copy of the error located at path.
func (e *Error) At(path string) *Error {
	newErr := *e
	newErr.Path = path
	return &newErr
}

// WithOp returns a copy of the error attributed to op. The original operation is
// kept as a prefix so the chain stays readable: "ipc.PayloadHash > canonical.Canonicalize".
func (e *Error) WithOp(op string) *Error {
	newErr := *e
	if e.Op != "" && e.Op != op {
		newErr.Op = op + " > " + e.Op
	} else {
		newErr.Op = op
	}
	return &newErr
}

// Error implements the error interface.
//
// Example: "ipc: canonical.Canonicalize (type_mismatch): type mismatch: got chan int at $.a[0]"
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("ipc: ")
	b.WriteString(e.Op)
	if e.Kind != "" {
		fmt.Fprintf(&b, " (%s)", e.Kind)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if e.Got != "" {
		b.WriteString(": got ")
		b.WriteString(e.Got)
	}
	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}
	return b.String()
}

// Unwrap returns the underlying sentinel so errors.Is(err, ErrTypeMismatch) holds.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by Kind, and by Op when the target sets one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != "" && t.Kind != e.Kind {
		return false
	}
	return t.Op == "" || t.Op == e.Op
}

// Describe renders the dynamic type of v for error messages. A nil interface is "nil".
func Describe(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
