// Package ipc computes deterministic, content-addressable identifiers that track
// the provenance of generated outputs across independent runs of a pipeline.
//
// Two runs are "the same" when their identifiers match. Identifiers depend only on
// semantic content: whitespace formatting of prompts and outputs, and key order of
// payload mappings, do not change them.
//
// # Core Concepts
//
// The module is built from four small pieces, each in its own package:
//
//   - normalize: reduces prompt and output text to a canonical string
//   - canonical: reduces a nested payload mapping to a canonical string
//   - digest: SHA-256 of a canonical string as 64 lowercase hex characters
//   - provenance: combines digests and generation parameters into one identifier
//
// This package re-exports the operations most callers need.
//
// # Usage
//
//	inputHash, err := ipc.ComputePayloadHash(map[string]any{
//	    "world_id": "test_world",
//	    "seed":     42,
//	})
//	if err != nil {
//	    return err
//	}
//	promptHash := ipc.ComputeSystemPromptHash(systemPrompt)
//
//	id := ipc.ComputeIPCID(inputHash, promptHash, "gemma2:2b", 0.2, 120, 42)
//	outputHash := ipc.ComputeOutputHash(generated)
//
// Domain values that can describe themselves as a mapping implement Dumper and
// are hashed with PayloadHash:
//
//	type Request struct{ Prompt string }
//
//	func (r Request) ModelDump() any {
//	    return map[string]any{"prompt": r.Prompt}
//	}
//
//	h, err := ipc.PayloadHash(Request{Prompt: "hello"})
//
// # Determinism Guarantees
//
//   - Same input always produces the same output, on every platform
//   - Mapping key order is irrelevant at every nesting depth
//   - Case is never changed by normalization
//   - Numbers follow one frozen formatting rule (see package canonical)
//
// Every function is pure and safe for concurrent use. Nothing is cached,
// persisted or looked up: consumers decide what to do with the identifiers.
//
// # Errors
//
// The only error kind is ErrTypeMismatch, returned when a payload is not a
// mapping or holds a value outside the canonical domain. Text normalization and
// hashing never fail.
package ipc
