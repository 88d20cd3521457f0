// Package fingerprint derives stable hexadecimal identifiers from composite keys.
//
// Both variants are pure functions of the input bytes, so independent processes
// that build the same composite key agree on the identifier without coordinating.
package fingerprint

import (
	"crypto/sha1" //nolint:gosec // identifier derivation, not a security boundary
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"
)

// Hasher computes a lowercase hex digest of its input.
type Hasher interface {
	Calc(input string) string
	Name() string
	// Size is the digest length in hex characters.
	Size() int
}

type digest struct {
	name string
	new  func() hash.Hash
	size int
}

func (d digest) Calc(input string) string {
	h := d.new()
	h.Write([]byte(input))
	return hex.EncodeToString(h.Sum(nil))
}

func (d digest) Name() string { return d.name }

func (d digest) Size() int { return d.size }

var (
	// SHA1 produces 40-character digests.
	SHA1 Hasher = digest{name: "sha1", new: sha1.New, size: 40}
	// SHA256 produces 64-character digests.
	SHA256 Hasher = digest{name: "sha256", new: sha256.New, size: 64}
)

// ByName returns the hasher configured under name ("sha1" or "sha256").
func ByName(name string) (Hasher, error) {
	switch strings.ToLower(name) {
	case "sha1", "sha-1":
		return SHA1, nil
	case "sha256", "sha-256":
		return SHA256, nil
	default:
		return nil, fmt.Errorf("unknown digest %q", name)
	}
}

// Key joins parts with "-" and fingerprints the result.
func Key(h Hasher, parts ...string) string {
	return h.Calc(strings.Join(parts, "-"))
}
