// Package provenance derives the identifiers that describe one generation run.
//
// # Hashes
//
// Three content hashes summarize the inputs and output of a run:
//
//   - PayloadHash: the Digest of the canonical form of the input payload mapping
//   - SystemPromptHash: the Digest of the prompt-normalized system prompt
//   - OutputHash: the Digest of the output-normalized generated text
//
// # Composite Identifier
//
// ComposeID combines the payload and system prompt hashes with the generation
// parameters into one Digest. The six fields are rendered in a fixed order,
//
//	inputHash:systemPromptHash:model:temperature:maxTokens:seed
//
// joined with single colons and hashed. Temperature uses canonical.FormatFloat,
// so 1 renders as "1.0" and 0.2 as "0.2".
//
// The join does not escape or length-prefix its fields. A field that itself
// contains a colon, such as a model named "vendor:model", can make two different
// six-tuples produce the same joined string and therefore the same identifier.
// Identifiers already in circulation depend on this exact join, so it is kept
// as is; callers that accept untrusted model names should reject colons before
// composing.
//
// # Records
//
// A Recorder turns a Run (raw payload, prompt, parameters and optional output)
// into a Record holding every hash plus a random run id. The run id tells apart
// executions that share an IPC id and never takes part in any hash.
//
//	rec, err := provenance.NewRecorder().Record(provenance.Run{
//	    Payload:      map[string]any{"seed": 42},
//	    SystemPrompt: "You are a descriptive layer.",
//	    Model:        "gemma2:2b",
//	    Temperature:  0.2,
//	    MaxTokens:    120,
//	    Seed:         42,
//	})
package provenance
