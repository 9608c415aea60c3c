// Package ipcerr provides the structured error type shared by the ipc packages.
//
// # Overview
//
// The identifier contract has exactly one failure mode: a value handed to the
// canonicalizer (directly, or through a Dumper) is not of the expected shape.
// That failure is represented by the ErrTypeMismatch sentinel and carried by
// *Error, which records the operation, the offending Go type, and the location
// of the value inside the payload.
//
// # Usage
//
// Callers match the kind with errors.Is and extract details with errors.As:
//
//	_, err := ipc.ComputePayloadHash(payload)
//	if errors.Is(err, ipcerr.ErrTypeMismatch) {
//	    var e *ipcerr.Error
//	    if errors.As(err, &e) {
//	        log.Printf("bad value at %s: %s", e.Path, e.Got)
//	    }
//	}
//
// Normalization and hashing of text never fail, so no other kinds exist.
package ipcerr
