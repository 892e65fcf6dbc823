// Package password wraps one-way password hashing for credentials at rest.
package password

// Hasher produces and verifies salted one-way password digests.
//
// Verify must never distinguish a malformed stored hash from a wrong
// password: both are reported as a plain verification failure.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool

	// DummyHash returns a throwaway digest with the same cost as real
	// hashes. Callers verify against it when no account exists, so the
	// unknown-email path burns the same CPU as a wrong-password one.
	DummyHash() string
}
