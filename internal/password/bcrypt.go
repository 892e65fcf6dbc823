package password

import (
	"crypto/rand"
	"encoding/hex"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher implements Hasher using bcrypt with a configurable cost.
type BcryptHasher struct {
	cost int

	dummyOnce sync.Once
	dummy     string
}

// NewBcryptHasher creates a hasher with the given work factor.
// A cost outside bcrypt's valid range falls back to the library default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify recomputes the digest and compares in constant time. A malformed
// stored hash yields false, indistinguishable from a wrong password.
func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

func (h *BcryptHasher) DummyHash() string {
	h.dummyOnce.Do(func() {
		// hash a random secret nobody knows, so verification always fails
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return
		}
		digest, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(buf)), h.cost)
		if err != nil {
			return
		}
		h.dummy = string(digest)
	})
	return h.dummy
}
