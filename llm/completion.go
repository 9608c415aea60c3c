package llm

import (
	"fmt"
	"strings"

	"github.com/pipe-works/ipc/digest"
	"github.com/pipe-works/ipc/provenance"
)

// ToolDef describes a tool offered to the model. Tool definitions are part of
// the request payload and therefore of its input hash.
type ToolDef struct {
	Name        string
	Description string

	// Parameters is the JSON schema of the tool arguments.
	Parameters map[string]any
}

// CompletionRequest represents a request for LLM completion.
type CompletionRequest struct {
	// Model identifies the model, e.g. "gemma2:2b".
	Model string

	// Messages contains the conversation history, system messages included.
	Messages []Message

	// Temperature controls randomness in the output (0.0 to 2.0).
	Temperature *float64

	// MaxTokens limits the maximum number of tokens to generate.
	MaxTokens *int

	// Seed fixes the sampler seed for reproducible generation.
	Seed *int64

	// TopP controls nucleus sampling (0.0 to 1.0).
	TopP *float64

	// Stop contains sequences that will stop generation when encountered.
	Stop []string

	// Tools contains tool definitions available for the model to use.
	Tools []ToolDef
}

// CompletionResponse represents a response from an LLM completion.
type CompletionResponse struct {
	// Content is the generated text content.
	Content string

	// FinishReason indicates why the generation stopped.
	// Common values: "stop", "length", "tool_calls", "content_filter"
	FinishReason string
}

// CompletionOption is a functional option for configuring CompletionRequest.
type CompletionOption func(*CompletionRequest)

// WithModel sets the model identifier.
func WithModel(model string) CompletionOption {
	return func(r *CompletionRequest) {
		r.Model = model
	}
}

// WithTemperature sets the temperature for the completion request.
func WithTemperature(t float64) CompletionOption {
	return func(r *CompletionRequest) {
		r.Temperature = &t
	}
}

// WithMaxTokens sets the maximum number of tokens to generate.
func WithMaxTokens(n int) CompletionOption {
	return func(r *CompletionRequest) {
		r.MaxTokens = &n
	}
}

// WithSeed sets the sampler seed.
func WithSeed(seed int64) CompletionOption {
	return func(r *CompletionRequest) {
		r.Seed = &seed
	}
}

// WithTopP sets the nucleus sampling parameter.
func WithTopP(p float64) CompletionOption {
	return func(r *CompletionRequest) {
		r.TopP = &p
	}
}

// WithStopSequences sets sequences that will stop generation.
func WithStopSequences(stops ...string) CompletionOption {
	return func(r *CompletionRequest) {
		r.Stop = stops
	}
}

// WithTools sets the available tools for the completion request.
func WithTools(tools ...ToolDef) CompletionOption {
	return func(r *CompletionRequest) {
		r.Tools = tools
	}
}

// ApplyOptions applies a set of options to the completion request.
func (r *CompletionRequest) ApplyOptions(opts ...CompletionOption) {
	for _, opt := range opts {
		opt(r)
	}
}

// NewCompletionRequest creates a new CompletionRequest with the given messages and options.
func NewCompletionRequest(messages []Message, opts ...CompletionOption) *CompletionRequest {
	req := &CompletionRequest{
		Messages: messages,
	}
	req.ApplyOptions(opts...)
	return req
}

// SystemPrompt returns the content of all system messages joined by a blank line.
func (r *CompletionRequest) SystemPrompt() string {
	var parts []string
	for _, m := range r.Messages {
		if m.Role == RoleSystem {
			parts = append(parts, m.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}

// ModelDump returns the request payload as a plain mapping: the non-system
// messages, tools and sampling options that are not provenance fields of their
// own. Model, temperature, max tokens and seed are left out because the IPC id
// carries them explicitly.
//
// ModelDump makes *CompletionRequest satisfy provenance.Dumper and ipc.Dumper.
func (r *CompletionRequest) ModelDump() any {
	messages := make([]any, 0, len(r.Messages))
	for _, m := range r.Messages {
		if m.Role == RoleSystem {
			continue
		}
		messages = append(messages, m.dump())
	}

	out := map[string]any{"messages": messages}
	if r.TopP != nil {
		out["top_p"] = *r.TopP
	}
	if len(r.Stop) > 0 {
		out["stop"] = r.Stop
	}
	if len(r.Tools) > 0 {
		tools := make([]any, 0, len(r.Tools))
		for _, t := range r.Tools {
			tools = append(tools, map[string]any{
				"name":        t.Name,
				"description": t.Description,
				"parameters":  t.Parameters,
			})
		}
		out["tools"] = tools
	}
	return out
}

// ProvenanceRun converts the request, and the response when it is complete,
// into a provenance.Run. Unset temperature, max tokens and seed count as zero.
// A nil or truncated response leaves the run without output.
func (r *CompletionRequest) ProvenanceRun(resp *CompletionResponse) provenance.Run {
	run := provenance.Run{
		Payload:      r.ModelDump(),
		SystemPrompt: r.SystemPrompt(),
		Model:        r.Model,
	}
	if r.Temperature != nil {
		run.Temperature = *r.Temperature
	}
	if r.MaxTokens != nil {
		run.MaxTokens = int64(*r.MaxTokens)
	}
	if r.Seed != nil {
		run.Seed = *r.Seed
	}
	if resp != nil && resp.IsComplete() {
		content := resp.Content
		run.Output = &content
	}
	return run
}

// Validate checks every message against its role. The error wraps
// ErrInvalidMessage.
func (r *CompletionRequest) Validate() error {
	for i, m := range r.Messages {
		if !m.IsValid() {
			return fmt.Errorf("messages[%d] (role %q): %w", i, m.Role, ErrInvalidMessage)
		}
	}
	return nil
}

// IPCID validates the request and returns its composite provenance identifier.
func (r *CompletionRequest) IPCID() (digest.Digest, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	run := r.ProvenanceRun(nil)
	inputHash, err := provenance.PayloadHash(run.Payload)
	if err != nil {
		return "", err
	}
	return provenance.ComposeID(inputHash, provenance.SystemPromptHash(run.SystemPrompt),
		run.Model, run.Temperature, run.MaxTokens, run.Seed), nil
}

// OutputHash returns the provenance hash of the generated content.
func (r *CompletionResponse) OutputHash() digest.Digest {
	return provenance.OutputHash(r.Content)
}

// IsComplete reports whether generation finished on its own. Responses cut
// short by the token limit or a content filter are not complete; an empty
// FinishReason counts as complete.
func (r *CompletionResponse) IsComplete() bool {
	switch r.FinishReason {
	case "length", "content_filter":
		return false
	default:
		return true
	}
}
