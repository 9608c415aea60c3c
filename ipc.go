package ipc

import (
	"errors"

	"github.com/pipe-works/ipc/canonical"
	"github.com/pipe-works/ipc/digest"
	"github.com/pipe-works/ipc/ipcerr"
	"github.com/pipe-works/ipc/provenance"
)

// Digest is a 64 character lowercase hexadecimal SHA-256 digest.
type Digest = digest.Digest

// Dumper is implemented by domain values that produce a plain mapping on demand.
// PayloadHash hashes whatever ModelDump returns.
type Dumper = provenance.Dumper

// ComputePayloadHash returns the Digest of the canonical form of payload.
//
// Mapping key order is irrelevant at every depth; sequence order is significant.
// Returns an error matching ErrTypeMismatch if payload contains a value outside
// the canonical domain (see package canonical).
func ComputePayloadHash(payload map[string]any) (Digest, error) {
	return provenance.PayloadHash(payload)
}

// CanonicalizePayload returns the canonical string that ComputePayloadHash hashes.
// Unlike ComputePayloadHash it accepts any value and fails with ErrTypeMismatch
// when that value is not a mapping.
func CanonicalizePayload(payload any) (string, error) {
	return canonical.Canonicalize(payload)
}

// ComputeSystemPromptHash returns the Digest of the normalized system prompt:
// every line trimmed, outer blank lines removed, case preserved.
func ComputeSystemPromptHash(text string) Digest {
	return provenance.SystemPromptHash(text)
}

// ComputeOutputHash returns the Digest of the normalized output text: outer
// whitespace trimmed and runs of spaces collapsed, newlines and case preserved.
func ComputeOutputHash(text string) Digest {
	return provenance.OutputHash(text)
}

// ComputeIPCID returns the composite identifier of a generation run.
//
// The fields are joined in this order with single colons and hashed:
//
//	inputHash:systemPromptHash:model:temperature:maxTokens:seed
//
// inputHash and systemPromptHash are used verbatim. A colon inside any field
// makes the join ambiguous; see package provenance.
func ComputeIPCID(inputHash, systemPromptHash Digest, model string, temperature float64, maxTokens, seed int64) Digest {
	return provenance.ComposeID(inputHash, systemPromptHash, model, temperature, maxTokens, seed)
}

// PayloadHash hashes the mapping produced by d.ModelDump. It fails with
// ErrTypeMismatch when d is nil or ModelDump does not return a mapping.
func PayloadHash(d Dumper) (Digest, error) {
	h, err := provenance.DumpHash(d)
	if err != nil {
		var e *ipcerr.Error
		if errors.As(err, &e) {
			return "", e.WithOp("ipc.PayloadHash")
		}
		return "", err
	}
	return h, nil
}
