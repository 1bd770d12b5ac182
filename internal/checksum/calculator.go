package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Calculator produces hex-encoded digests.
type Calculator interface {
	// Sum digests content as-is.
	Sum(content []byte) string

	// Fingerprint digests an ordered list of parts. Case and surrounding
	// whitespace of each part are ignored; order is significant.
	Fingerprint(parts ...string) string
}

// SHA256 implements Calculator. The zero value is ready to use.
type SHA256 struct{}

var _ Calculator = SHA256{}

// New returns a SHA256 calculator.
func New() SHA256 {
	return SHA256{}
}

func (c SHA256) Sum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

func (c SHA256) Fingerprint(parts ...string) string {
	normalized := make([]string, len(parts))
	for i, p := range parts {
		normalized[i] = strings.ToLower(strings.TrimSpace(p))
	}
	// Unit separator keeps ("ab","c") and ("a","bc") apart.
	return c.Sum([]byte(strings.Join(normalized, "\x1f")))
}
