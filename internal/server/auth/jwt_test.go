package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/avolkov/gatekeeper/internal/common"
)

func TestIssueAndValidate_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := Issue("acc-123", "a@x.com", secret, time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := Validate(tok, secret)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if claims.UserID != "acc-123" {
		t.Fatalf("UserID mismatch: got %q want %q", claims.UserID, "acc-123")
	}
	if claims.Email != "a@x.com" {
		t.Fatalf("Email mismatch: got %q want %q", claims.Email, "a@x.com")
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatalf("expected issued-at and expires-at claims to be set")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Fatalf("ttl mismatch: got %v want 1h", got)
	}
}

func TestValidate_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := Issue("u1", "a@x.com", secret, -1*time.Second)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = Validate(tok, secret)
	if err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := Issue("u2", "a@x.com", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = Validate(tok, []byte("wrong-secret"))
	if err == nil {
		t.Fatalf("expected error for forged token, got nil")
	}
	if !errors.Is(err, common.ErrInvalidSignature) {
		t.Fatalf("expected common.ErrInvalidSignature, got %v", err)
	}
}

func TestValidate_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := Validate("not.a.jwt", []byte("k"))
	if err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
	if !errors.Is(err, common.ErrInvalidSignature) {
		t.Fatalf("expected common.ErrInvalidSignature, got %v", err)
	}
}

func TestValidate_TamperedPayload(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := Issue("u3", "a@x.com", secret, time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	tampered := tok[:len(tok)-2] + "xx"
	if _, err := Validate(tampered, secret); err == nil {
		t.Fatalf("expected error for tampered token, got nil")
	}
}
