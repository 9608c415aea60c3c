package digest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSumKnownValues(t *testing.T) {
	tests := []struct {
		in   string
		want Digest
	}{
		{in: "", want: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{in: "{}", want: "44136fa355b3678a1146ad16f7e8649e94fb4fc21fe77e8310c060f61caaff8a"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SumString(tt.in))
		assert.Equal(t, tt.want, Sum([]byte(tt.in)))
	}
}

func TestSumShape(t *testing.T) {
	inputs := []string{"", "a", "test prompt", strings.Repeat("x", 10000), "café ☕", "\x00\xff"}

	for _, in := range inputs {
		d := SumString(in)
		assert.Len(t, d, Size)
		assert.Equal(t, strings.ToLower(string(d)), string(d))
		assert.True(t, d.Valid(), "digest of %q not valid", in)
	}
}

func TestParse(t *testing.T) {
	good := strings.Repeat("a", 64)
	d, err := Parse(good)
	require.NoError(t, err)
	assert.Equal(t, Digest(good), d)

	tests := []struct {
		name string
		in   string
	}{
		{name: "empty", in: ""},
		{name: "short", in: strings.Repeat("a", 63)},
		{name: "long", in: strings.Repeat("a", 65)},
		{name: "uppercase", in: strings.Repeat("A", 64)},
		{name: "non hex", in: strings.Repeat("g", 64)},
		{name: "prefixed", in: "sha256:" + strings.Repeat("a", 57)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in)
			assert.Error(t, err)
			assert.False(t, Digest(tt.in).Valid())
		})
	}
}

func TestShort(t *testing.T) {
	d := SumString("")
	assert.Equal(t, "e3b0c442", d.Short(8))
	assert.Equal(t, string(d), d.Short(100))
	assert.Equal(t, string(d), d.Short(-1))
	assert.Equal(t, string(d), d.String())
}
