package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avolkov/gatekeeper/internal/common"
	"github.com/avolkov/gatekeeper/internal/password"
	"github.com/avolkov/gatekeeper/internal/server/auth"
	"github.com/avolkov/gatekeeper/internal/server/config"
)

const minPasswordLength = 8

// maxUpdateRetries bounds the CAS retry loop in Login. The lockout
// threshold caps how many conflicting updates can ever succeed, so a
// competing attempt settles well within this bound.
const maxUpdateRetries = 8

// AuthResult is what a successful register or login returns to the caller.
type AuthResult struct {
	Token   string
	Account PublicView
}

// Service orchestrates registration and login: it is the only component
// talking to the credential store, and it feeds every attempt outcome
// through the lockout policy before persisting.
type Service struct {
	repo      Repository
	hasher    password.Hasher
	policy    LockoutPolicy
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewService(repo Repository, hasher password.Hasher, cfg *config.Config) *Service {
	return &Service{
		repo:      repo,
		hasher:    hasher,
		policy:    NewLockoutPolicy(cfg.LockoutThreshold),
		jwtSecret: []byte(cfg.SecretKey),
		tokenTTL:  cfg.TokenValidityDuration,
	}
}

// NormalizeEmail fixes the email comparison policy: case-insensitive,
// surrounding whitespace ignored. Accounts store the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateCredentials(email, plaintext string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", common.ErrValidation)
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: malformed email", common.ErrValidation)
	}
	if len(plaintext) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrValidation, minPasswordLength)
	}
	return nil
}

// Register creates an account with zeroed counters and issues a session
// token. A normalized-email collision yields common.ErrDuplicateAccount.
func (s *Service) Register(ctx context.Context, email, plaintext string) (*AuthResult, error) {

	normalized := NormalizeEmail(email)

	if err := validateCredentials(normalized, plaintext); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		return nil, fmt.Errorf("%w: hashing password: %v", common.ErrInternal, err)
	}

	account, err := s.repo.Create(ctx, &Account{Email: normalized, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateAccount) {
			return nil, common.ErrDuplicateAccount
		}
		return nil, fmt.Errorf("%w: creating account: %v", common.ErrStoreUnavailable, err)
	}

	token, err := auth.Issue(account.ID, account.Email, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: issuing token: %v", common.ErrInternal, err)
	}

	return &AuthResult{Token: token, Account: account.Public()}, nil
}

// Login verifies credentials under the lockout policy and persists the
// policy's new counters with a compare-and-swap, retrying on conflicts
// against fresh state. Unknown email, wrong password and locked account all
// surface as common.ErrAuthenticationFailed.
func (s *Service) Login(ctx context.Context, email, plaintext string) (*AuthResult, error) {

	normalized := NormalizeEmail(email)

	if err := validateCredentials(normalized, plaintext); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxUpdateRetries; attempt++ {

		account, err := s.repo.GetByEmail(ctx, normalized)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				// burn an equivalent hash computation so unknown emails
				// cost the same as a wrong password, nothing is persisted
				s.hasher.Verify(plaintext, s.hasher.DummyHash())
				return nil, common.ErrAuthenticationFailed
			}
			return nil, fmt.Errorf("%w: loading account: %v", common.ErrStoreUnavailable, err)
		}

		if account.IsLocked {
			// terminal within this core, skip the verify entirely
			return nil, common.ErrAuthenticationFailed
		}

		succeeded := s.hasher.Verify(plaintext, account.PasswordHash)
		decision := s.policy.Apply(account.FailedLoginAttempts, account.IsLocked, succeeded)

		lastLogin := account.LastLogin
		if decision.Allowed {
			now := time.Now().UTC()
			lastLogin = &now
		}

		err = s.repo.UpdateLoginState(ctx, account.ID, account.Version, decision.Attempts, decision.Locked, lastLogin)
		if errors.Is(err, common.ErrVersionConflict) {
			continue
		}
		if errors.Is(err, common.ErrNotFound) {
			// deleted out-of-band between read and write
			return nil, common.ErrAuthenticationFailed
		}
		if err != nil {
			return nil, fmt.Errorf("%w: persisting login state: %v", common.ErrStoreUnavailable, err)
		}

		if !decision.Allowed {
			return nil, common.ErrAuthenticationFailed
		}

		account.FailedLoginAttempts = decision.Attempts
		account.IsLocked = decision.Locked
		account.LastLogin = lastLogin

		token, err := auth.Issue(account.ID, account.Email, s.jwtSecret, s.tokenTTL)
		if err != nil {
			return nil, fmt.Errorf("%w: issuing token: %v", common.ErrInternal, err)
		}

		return &AuthResult{Token: token, Account: account.Public()}, nil
	}

	return nil, fmt.Errorf("%w: too many concurrent updates", common.ErrStoreUnavailable)
}

// Account returns the public view for an already-authenticated caller.
func (s *Service) Account(ctx context.Context, email string) (*PublicView, error) {

	account, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: loading account: %v", common.ErrStoreUnavailable, err)
	}

	view := account.Public()
	return &view, nil
}
