// Package password wraps bcrypt behind a small hashing contract. Every hash
// embeds its own random salt and cost, so digests are self-describing and
// two identical passwords never share a digest.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrCorruptDigest signals a stored digest that bcrypt cannot parse. This is
// a data fault, not an authentication failure.
var ErrCorruptDigest = errors.New("corrupt password digest")

// Hasher derives and verifies salted one-way password digests.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost. A cost outside
// bcrypt's supported range falls back to the library default, which keeps the
// work factor tunable without ever silently weakening it below the floor.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash derives a digest from plaintext using a fresh random salt.
func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify re-derives the digest using the salt and cost embedded in digest and
// compares in constant time. A mismatch returns (false, nil); only a digest
// bcrypt cannot parse produces an error.
func (h *Hasher) Verify(plaintext, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, ErrCorruptDigest
	}
}

// dummyDigest is a valid bcrypt digest of an unguessable throwaway value.
// Comparing against it burns the same CPU as a real verification.
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// VerifyDummy performs a compare against a fixed digest and always reports
// failure. Callers use it to equalize login timing when no account matches
// the supplied username.
func (h *Hasher) VerifyDummy(plaintext string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyDigest), []byte(plaintext))
}
