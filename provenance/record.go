package provenance

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/pipe-works/ipc/digest"
)

// Run holds the raw inputs, and optionally the output, of one generation run.
type Run struct {
	// Payload is the input mapping handed to the model.
	Payload any

	// SystemPrompt is the system prompt text before normalization.
	SystemPrompt string

	Model       string
	Temperature float64
	MaxTokens   int64
	Seed        int64

	// Output is the generated text. Nil when the run has not produced output yet.
	Output *string
}

// Record is the provenance of one run: the content hashes, the composite IPC id
// and a random run id.
type Record struct {
	RunID            string        `json:"run_id" yaml:"run_id"`
	IPCID            digest.Digest `json:"ipc_id" yaml:"ipc_id"`
	InputHash        digest.Digest `json:"input_hash" yaml:"input_hash"`
	SystemPromptHash digest.Digest `json:"system_prompt_hash" yaml:"system_prompt_hash"`
	OutputHash       digest.Digest `json:"output_hash,omitempty" yaml:"output_hash,omitempty"`
	Model            string        `json:"model" yaml:"model"`
	Temperature      float64       `json:"temperature" yaml:"temperature"`
	MaxTokens        int64         `json:"max_tokens" yaml:"max_tokens"`
	Seed             int64         `json:"seed" yaml:"seed"`
}

// HasOutput reports whether the record carries an output hash.
func (r Record) HasOutput() bool {
	return r.OutputHash != ""
}

// Matches reports whether both records describe the same inputs and parameters.
func (r Record) Matches(other Record) bool {
	return r.IPCID == other.IPCID
}

// SameOutput reports whether both records carry the same normalized output.
// Records without output never match.
func (r Record) SameOutput(other Record) bool {
	return r.HasOutput() && r.OutputHash == other.OutputHash
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithRunIDFunc replaces the run id generator. The default is uuid.NewString.
func WithRunIDFunc(fn func() string) RecorderOption {
	return func(r *Recorder) {
		if fn != nil {
			r.newRunID = fn
		}
	}
}

// Recorder builds Records from Runs. It holds no mutable state and is safe for
// concurrent use.
type Recorder struct {
	newRunID func() string
}

// NewRecorder creates a Recorder with the given options.
func NewRecorder(opts ...RecorderOption) *Recorder {
	r := &Recorder{newRunID: uuid.NewString}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record hashes run and returns its Record. Fails with ipcerr.ErrTypeMismatch
// when the payload is not a mapping.
func (r *Recorder) Record(run Run) (Record, error) {
	inputHash, err := PayloadHash(run.Payload)
	if err != nil {
		return Record{}, fmt.Errorf("hash payload: %w", err)
	}

	rec := Record{
		RunID:            r.newRunID(),
		InputHash:        inputHash,
		SystemPromptHash: SystemPromptHash(run.SystemPrompt),
		Model:            run.Model,
		Temperature:      run.Temperature,
		MaxTokens:        run.MaxTokens,
		Seed:             run.Seed,
	}
	rec.IPCID = ComposeID(rec.InputHash, rec.SystemPromptHash, rec.Model, rec.Temperature, rec.MaxTokens, rec.Seed)
	if run.Output != nil {
		rec.OutputHash = OutputHash(*run.Output)
	}
	return rec, nil
}
