package ipc

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type runVector struct {
	Name             string  `yaml:"name"`
	Payload          string  `yaml:"payload"`
	SystemPrompt     string  `yaml:"system_prompt"`
	Model            string  `yaml:"model"`
	Temperature      float64 `yaml:"temperature"`
	MaxTokens        int64   `yaml:"max_tokens"`
	Seed             int64   `yaml:"seed"`
	Output           string  `yaml:"output"`
	InputHash        Digest  `yaml:"input_hash"`
	SystemPromptHash Digest  `yaml:"system_prompt_hash"`
	OutputHash       Digest  `yaml:"output_hash"`
	IPCID            Digest  `yaml:"ipc_id"`
}

func loadRunVectors(t *testing.T) []runVector {
	t.Helper()

	data, err := os.ReadFile("testdata/vectors.yaml")
	require.NoError(t, err)

	var file struct {
		Runs []runVector `yaml:"runs"`
	}
	require.NoError(t, yaml.Unmarshal(data, &file))
	require.NotEmpty(t, file.Runs)
	return file.Runs
}

func decodePayload(t *testing.T, text string) map[string]any {
	t.Helper()

	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()
	var payload map[string]any
	require.NoError(t, dec.Decode(&payload))
	return payload
}

func TestGoldenRuns(t *testing.T) {
	for _, v := range loadRunVectors(t) {
		t.Run(v.Name, func(t *testing.T) {
			inputHash, err := ComputePayloadHash(decodePayload(t, v.Payload))
			require.NoError(t, err)
			assert.Equal(t, v.InputHash, inputHash)

			promptHash := ComputeSystemPromptHash(v.SystemPrompt)
			assert.Equal(t, v.SystemPromptHash, promptHash)

			assert.Equal(t, v.OutputHash, ComputeOutputHash(v.Output))

			id := ComputeIPCID(inputHash, promptHash, v.Model, v.Temperature, v.MaxTokens, v.Seed)
			assert.Equal(t, v.IPCID, id)
		})
	}
}

func TestDigestShape(t *testing.T) {
	payloadHash, err := ComputePayloadHash(map[string]any{"k": "v"})
	require.NoError(t, err)

	digests := []Digest{
		payloadHash,
		ComputeSystemPromptHash("test prompt"),
		ComputeSystemPromptHash(""),
		ComputeOutputHash("test output"),
		ComputeIPCID("", "", "", 0, 0, 0),
	}

	for _, d := range digests {
		assert.Len(t, d, 64)
		assert.Equal(t, strings.ToLower(string(d)), string(d))
		assert.True(t, d.Valid())
	}
}

func TestWhitespaceEquivalence(t *testing.T) {
	assert.Equal(t,
		ComputeSystemPromptHash("line one\nline two"),
		ComputeSystemPromptHash("  line one  \n  line two  "))
	assert.Equal(t, ComputeOutputHash("word word"), ComputeOutputHash("word  word"))
}

func TestPayloadOrderIndependence(t *testing.T) {
	a, err := ComputePayloadHash(map[string]any{"a": map[string]any{"x": 1, "y": 2}, "b": 3})
	require.NoError(t, err)
	b, err := ComputePayloadHash(map[string]any{"b": 3, "a": map[string]any{"y": 2, "x": 1}})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCanonicalizePayloadTypeMismatch(t *testing.T) {
	_, err := CanonicalizePayload("not-a-dict")
	require.Error(t, err)
	assert.True(t, IsTypeMismatch(err))

	path, ok := MismatchPath(err)
	assert.True(t, ok)
	assert.Equal(t, "$", path)
}

func TestComputePayloadHashNestedMismatch(t *testing.T) {
	_, err := ComputePayloadHash(map[string]any{"axes": map[string]any{"age": []any{struct{}{}}}})
	require.Error(t, err)
	assert.True(t, IsTypeMismatch(err))

	path, ok := MismatchPath(err)
	assert.True(t, ok)
	assert.Equal(t, "$.axes.age[0]", path)
}

type dummyPayload struct {
	data map[string]any
}

func (p dummyPayload) ModelDump() any {
	out := make(map[string]any, len(p.data))
	for k, v := range p.data {
		out[k] = v
	}
	return out
}

type dummyPayloadBad struct{}

func (dummyPayloadBad) ModelDump() any { return "not-a-dict" }

func TestPayloadHash(t *testing.T) {
	payload := dummyPayload{data: map[string]any{
		"axes":        map[string]any{"health": map[string]any{"label": "weary", "score": 0.5}},
		"policy_hash": "h",
		"seed":        1,
		"world_id":    "w",
	}}

	h1, err := PayloadHash(payload)
	require.NoError(t, err)
	h2, err := PayloadHash(payload)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)

	direct, err := ComputePayloadHash(payload.data)
	require.NoError(t, err)
	assert.Equal(t, direct, h1)
}

func TestPayloadHashTypeMismatch(t *testing.T) {
	_, err := PayloadHash(dummyPayloadBad{})
	require.Error(t, err)
	assert.True(t, IsTypeMismatch(err))
	assert.Contains(t, err.Error(), "ipc.PayloadHash")
	assert.Contains(t, err.Error(), "got string")

	_, err = PayloadHash(nil)
	assert.True(t, IsTypeMismatch(err))
}

func TestMismatchPathWithoutDetails(t *testing.T) {
	_, ok := MismatchPath(ErrTypeMismatch)
	assert.False(t, ok)
	_, ok = MismatchPath(nil)
	assert.False(t, ok)
}
