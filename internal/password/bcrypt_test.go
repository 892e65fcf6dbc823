package password

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestHasher() *BcryptHasher {
	return NewBcryptHasher(bcrypt.MinCost)
}

func TestHashVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	h := newTestHasher()

	hash, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if hash == "secret123" {
		t.Fatalf("hash must not equal plaintext")
	}
	if !h.Verify("secret123", hash) {
		t.Fatalf("Verify rejected the original password")
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	t.Parallel()

	h := newTestHasher()

	hash, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if h.Verify("secret124", hash) {
		t.Fatalf("Verify accepted a wrong password")
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	t.Parallel()

	h := newTestHasher()

	if h.Verify("anything", "not-a-bcrypt-hash") {
		t.Fatalf("Verify accepted a malformed stored hash")
	}
	if h.Verify("anything", "") {
		t.Fatalf("Verify accepted an empty stored hash")
	}
}

func TestHash_SaltedPerCall(t *testing.T) {
	t.Parallel()

	h := newTestHasher()

	a, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	b, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if a == b {
		t.Fatalf("two hashes of the same password must differ (salting)")
	}
}

func TestDummyHash_NeverVerifies(t *testing.T) {
	t.Parallel()

	h := newTestHasher()

	dummy := h.DummyHash()
	if dummy == "" {
		t.Fatalf("DummyHash returned empty digest")
	}
	if dummy != h.DummyHash() {
		t.Fatalf("DummyHash must be stable for a hasher instance")
	}
	for _, candidate := range []string{"", "secret123", "password"} {
		if h.Verify(candidate, dummy) {
			t.Fatalf("candidate %q verified against the dummy hash", candidate)
		}
	}
}

func TestNewBcryptHasher_CostClamped(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(1000)
	hash, err := h.Hash("pw")
	if err != nil {
		t.Fatalf("Hash error with clamped cost: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("Cost error: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost %d, got %d", bcrypt.DefaultCost, cost)
	}
}
