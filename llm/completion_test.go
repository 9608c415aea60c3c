package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipe-works/ipc"
	"github.com/pipe-works/ipc/provenance"
)

var _ ipc.Dumper = (*CompletionRequest)(nil)

func TestCompletionOptions(t *testing.T) {
	req := NewCompletionRequest([]Message{{Role: RoleUser, Content: "Hello"}},
		WithModel("gemma2:2b"),
		WithTemperature(0.7),
		WithMaxTokens(1000),
		WithSeed(-5),
		WithTopP(0.95),
		WithStopSequences("STOP", "END"),
	)

	assert.Equal(t, "gemma2:2b", req.Model)
	require.NotNil(t, req.Temperature)
	assert.Equal(t, 0.7, *req.Temperature)
	require.NotNil(t, req.MaxTokens)
	assert.Equal(t, 1000, *req.MaxTokens)
	require.NotNil(t, req.Seed)
	assert.EqualValues(t, -5, *req.Seed)
	require.NotNil(t, req.TopP)
	assert.Equal(t, 0.95, *req.TopP)
	assert.Equal(t, []string{"STOP", "END"}, req.Stop)
	assert.Nil(t, req.Tools)
}

func newTestRequest() *CompletionRequest {
	return NewCompletionRequest([]Message{
		{Role: RoleSystem, Content: "You are a descriptive layer."},
		{Role: RoleUser, Content: "Describe the old, weary figure."},
		{Role: RoleSystem, Content: "  NEVER use metaphor.  "},
	},
		WithModel("gemma2:2b"),
		WithTemperature(0.2),
		WithMaxTokens(120),
		WithSeed(42),
	)
}

func TestSystemPrompt(t *testing.T) {
	req := newTestRequest()
	assert.Equal(t, "You are a descriptive layer.\n\n  NEVER use metaphor.  ", req.SystemPrompt())
	assert.Empty(t, (&CompletionRequest{}).SystemPrompt())
}

func TestModelDump(t *testing.T) {
	req := newTestRequest()
	req.ApplyOptions(
		WithTopP(0.9),
		WithStopSequences("END"),
		WithTools(ToolDef{Name: "lookup", Description: "Find a fact", Parameters: map[string]any{"type": "object"}}),
	)

	got, err := ipc.CanonicalizePayload(req.ModelDump())
	require.NoError(t, err)

	want := `{"messages": [{"content": "Describe the old, weary figure.", "role": "user"}], ` +
		`"stop": ["END"], ` +
		`"tools": [{"description": "Find a fact", "name": "lookup", "parameters": {"type": "object"}}], ` +
		`"top_p": 0.9}`
	assert.Equal(t, want, got)
}

func TestModelDumpExcludesIDFields(t *testing.T) {
	a := newTestRequest()
	b := newTestRequest()
	b.ApplyOptions(WithModel("llama3:8b"), WithTemperature(0.9), WithMaxTokens(5), WithSeed(1))

	ha, err := ipc.PayloadHash(a)
	require.NoError(t, err)
	hb, err := ipc.PayloadHash(b)
	require.NoError(t, err)
	assert.Equal(t, ha, hb, "scalar id fields must not leak into the payload hash")

	ida, err := a.IPCID()
	require.NoError(t, err)
	idb, err := b.IPCID()
	require.NoError(t, err)
	assert.NotEqual(t, ida, idb)
}

func TestIPCIDMatchesComposition(t *testing.T) {
	req := newTestRequest()

	inputHash, err := ipc.PayloadHash(req)
	require.NoError(t, err)
	want := ipc.ComputeIPCID(inputHash, ipc.ComputeSystemPromptHash(req.SystemPrompt()), "gemma2:2b", 0.2, 120, 42)

	got, err := req.IPCID()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestIPCIDIgnoresPromptWhitespace(t *testing.T) {
	a := newTestRequest()
	b := newTestRequest()
	b.Messages[2].Content = "NEVER use metaphor."

	ida, err := a.IPCID()
	require.NoError(t, err)
	idb, err := b.IPCID()
	require.NoError(t, err)
	assert.Equal(t, ida, idb)
}

func TestProvenanceRun(t *testing.T) {
	req := newTestRequest()
	resp := &CompletionResponse{Content: "A weathered  figure stands.", FinishReason: "stop"}

	run := req.ProvenanceRun(resp)
	assert.Equal(t, "gemma2:2b", run.Model)
	assert.Equal(t, 0.2, run.Temperature)
	assert.EqualValues(t, 120, run.MaxTokens)
	assert.EqualValues(t, 42, run.Seed)
	require.NotNil(t, run.Output)
	assert.Equal(t, resp.Content, *run.Output)

	rec, err := provenance.NewRecorder(provenance.WithRunIDFunc(func() string { return "r" })).Record(run)
	require.NoError(t, err)

	id, err := req.IPCID()
	require.NoError(t, err)
	assert.Equal(t, id, rec.IPCID)
	assert.Equal(t, resp.OutputHash(), rec.OutputHash)
	assert.Equal(t, ipc.ComputeOutputHash("A weathered figure stands."), rec.OutputHash)
}

func TestProvenanceRunDefaults(t *testing.T) {
	run := (&CompletionRequest{Model: "m"}).ProvenanceRun(nil)

	assert.Zero(t, run.Temperature)
	assert.Zero(t, run.MaxTokens)
	assert.Zero(t, run.Seed)
	assert.Nil(t, run.Output)
}

func TestProvenanceRunSkipsTruncatedOutput(t *testing.T) {
	req := newTestRequest()

	for _, reason := range []string{"length", "content_filter"} {
		run := req.ProvenanceRun(&CompletionResponse{Content: "A weathered", FinishReason: reason})
		assert.Nil(t, run.Output, reason)
	}

	run := req.ProvenanceRun(&CompletionResponse{Content: "A weathered figure."})
	require.NotNil(t, run.Output, "an unset finish reason counts as complete")
}

func TestCompletionResponseIsComplete(t *testing.T) {
	tests := []struct {
		reason string
		want   bool
	}{
		{reason: "stop", want: true},
		{reason: "tool_calls", want: true},
		{reason: "", want: true},
		{reason: "length", want: false},
		{reason: "content_filter", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			resp := CompletionResponse{FinishReason: tt.reason}
			assert.Equal(t, tt.want, resp.IsComplete())
		})
	}
}

func TestIPCIDRejectsInvalidMessages(t *testing.T) {
	req := newTestRequest()
	req.Messages = append(req.Messages, Message{Role: RoleTool, Content: "42"})

	_, err := req.IPCID()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidMessage)
	assert.Contains(t, err.Error(), "messages[3]")

	assert.NoError(t, newTestRequest().Validate())
}

func TestPayloadHashNilRequest(t *testing.T) {
	var req *CompletionRequest

	_, err := ipc.PayloadHash(req)
	require.Error(t, err)
	assert.True(t, ipc.IsTypeMismatch(err))
	assert.Contains(t, err.Error(), "*llm.CompletionRequest")
}
