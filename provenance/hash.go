package provenance

import (
	"reflect"

	"github.com/pipe-works/ipc/canonical"
	"github.com/pipe-works/ipc/digest"
	"github.com/pipe-works/ipc/ipcerr"
	"github.com/pipe-works/ipc/normalize"
)

// PayloadHash returns the Digest of the canonical form of payload, which must be
// a mapping. Errors match ipcerr.ErrTypeMismatch.
func PayloadHash(payload any) (digest.Digest, error) {
	c, err := canonical.Canonicalize(payload)
	if err != nil {
		return "", err
	}
	return digest.SumString(c), nil
}

// SystemPromptHash returns the Digest of the prompt-normalized text.
func SystemPromptHash(text string) digest.Digest {
	return digest.SumString(normalize.Prompt(text))
}

// OutputHash returns the Digest of the output-normalized text.
func OutputHash(text string) digest.Digest {
	return digest.SumString(normalize.Output(text))
}

// Dumper is implemented by domain values that can describe themselves as a plain
// mapping for hashing.
type Dumper interface {
	// ModelDump returns a plain mapping (map[string]any or another string-keyed
	// map) holding the hashed content of the value.
	ModelDump() any
}

// DumpHash hashes the mapping returned by d.ModelDump. It fails with
// ipcerr.ErrTypeMismatch when d is nil or a nil pointer, and when ModelDump
// returns something other than a mapping.
func DumpHash(d Dumper) (digest.Digest, error) {
	const op = "provenance.DumpHash"

	if d == nil {
		return "", ipcerr.TypeMismatch(op, nil)
	}
	if rv := reflect.ValueOf(d); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return "", ipcerr.TypeMismatch(op, d)
	}
	dump := d.ModelDump()
	if !canonical.IsMapping(dump) {
		return "", ipcerr.TypeMismatch(op, dump)
	}
	return PayloadHash(dump)
}
