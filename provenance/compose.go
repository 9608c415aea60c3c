package provenance

import (
	"strings"

	"github.com/pipe-works/ipc/canonical"
	"github.com/pipe-works/ipc/digest"
)

// Separator joins the fields of a composite identifier.
const Separator = ":"

// Fields are the six inputs of a composite identifier, in join order.
type Fields struct {
	InputHash        digest.Digest
	SystemPromptHash digest.Digest
	Model            string
	Temperature      float64
	MaxTokens        int64
	Seed             int64
}

// Join returns the colon-joined pre-image of the identifier. The hash fields are
// used verbatim, without shape validation.
func (f Fields) Join() string {
	return strings.Join([]string{
		string(f.InputHash),
		string(f.SystemPromptHash),
		f.Model,
		canonical.FormatFloat(f.Temperature),
		canonical.FormatInt(f.MaxTokens),
		canonical.FormatInt(f.Seed),
	}, Separator)
}

// ID returns the Digest of Join.
func (f Fields) ID() digest.Digest {
	return digest.SumString(f.Join())
}

// ComposeID returns the composite identifier of one generation run.
func ComposeID(inputHash, systemPromptHash digest.Digest, model string, temperature float64, maxTokens, seed int64) digest.Digest {
	return Fields{
		InputHash:        inputHash,
		SystemPromptHash: systemPromptHash,
		Model:            model,
		Temperature:      temperature,
		MaxTokens:        maxTokens,
		Seed:             seed,
	}.ID()
}
