// Package llm provides the request and response types of a language-model
// invocation, and derives their provenance identifiers.
//
// # Completion Requests
//
// CompletionRequest describes one invocation. Use functional options to
// configure it:
//
//	req := llm.NewCompletionRequest(messages,
//	    llm.WithModel("gemma2:2b"),
//	    llm.WithTemperature(0.2),
//	    llm.WithMaxTokens(120),
//	    llm.WithSeed(42),
//	)
//
// # Provenance
//
// A request splits into the parts the IPC id is built from:
//
//   - SystemPrompt: the system messages, hashed with prompt normalization
//   - ModelDump: every other input (conversation, tools, top_p, stop) as a
//     plain mapping, hashed canonically
//   - Model, Temperature, MaxTokens and Seed: the scalar fields of the id
//
// ModelDump makes *CompletionRequest an ipc.Dumper, and IPCID composes the id
// directly:
//
//	id, err := req.IPCID()
//
// ProvenanceRun hands the request, plus a response when one exists, to a
// provenance.Recorder:
//
//	rec, err := provenance.NewRecorder().Record(req.ProvenanceRun(resp))
package llm
