package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
)

// Tagger computes the integrity tag that binds one step's submitted data to a
// server-held secret. Implementations must be deterministic: the same
// (step, data) pair always yields the same tag.
type Tagger interface {
	Tag(step int, data map[string][]string) (string, error)
}

// HMACTagger is the default Tagger: HMAC-SHA256 over a canonical encoding of
// the step index and field values, hex encoded. The secret is injected at
// construction rather than read from process-wide state.
type HMACTagger struct {
	secret []byte
}

// NewHMACTagger constructs a tagger from the given secret. An empty secret is
// rejected; a tag that anyone can recompute detects nothing.
func NewHMACTagger(secret []byte) (*HMACTagger, error) {
	if len(secret) == 0 {
		return nil, errors.New("security: secret is required")
	}
	return &HMACTagger{secret: append([]byte(nil), secret...)}, nil
}

// Tag implements Tagger.
func (t *HMACTagger) Tag(step int, data map[string][]string) (string, error) {
	if t == nil || len(t.secret) == 0 {
		return "", errors.New("security: tagger is not configured")
	}
	if step < 0 {
		return "", fmt.Errorf("security: negative step index %d", step)
	}

	mac := hmac.New(sha256.New, t.secret)
	mac.Write(canonicalPayload(step, data))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// Equal compares two tags in constant time.
func Equal(a, b string) bool {
	return hmac.Equal([]byte(a), []byte(b))
}

// canonicalPayload serialises the step data unambiguously: keys sorted, every
// token length-prefixed so adjacent values cannot be confused for each other.
func canonicalPayload(step int, data map[string][]string) []byte {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := fmt.Appendf(nil, "step:%d\n", step)
	for _, key := range keys {
		out = fmt.Appendf(out, "%d:%s", len(key), key)
		for _, value := range data[key] {
			out = fmt.Appendf(out, "=%d:%s", len(value), value)
		}
		out = append(out, '\n')
	}
	return out
}
