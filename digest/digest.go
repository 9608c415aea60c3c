package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Size is the length in characters of every Digest.
const Size = sha256.Size * 2

// Digest is the lowercase hexadecimal SHA-256 of some byte sequence.
type Digest string

// Sum returns the Digest of b.
func Sum(b []byte) Digest {
	sum := sha256.Sum256(b)
	return Digest(hex.EncodeToString(sum[:]))
}

// SumString returns the Digest of the UTF-8 bytes of s.
func SumString(s string) Digest {
	return Sum([]byte(s))
}

// Parse checks that s has the shape of a Digest: exactly 64 characters, each a
// digit or a lowercase letter a-f.
func Parse(s string) (Digest, error) {
	if len(s) != Size {
		return "", fmt.Errorf("digest: expected %d characters, got %d", Size, len(s))
	}
	for i := 0; i < len(s); i++ {
		if !isLowerHex(s[i]) {
			return "", fmt.Errorf("digest: invalid character %q at offset %d", s[i], i)
		}
	}
	return Digest(s), nil
}

// Valid reports whether d has the shape of a Digest.
func (d Digest) Valid() bool {
	_, err := Parse(string(d))
	return err == nil
}

// String returns the hexadecimal text of the Digest.
func (d Digest) String() string {
	return string(d)
}

// Short returns the first n characters of the Digest, for display only.
func (d Digest) Short(n int) string {
	if n < 0 || n >= len(d) {
		return string(d)
	}
	return string(d[:n])
}

func isLowerHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
}
