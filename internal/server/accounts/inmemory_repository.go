package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avolkov/gatekeeper/internal/common"
)

// InMemoryRepository keeps accounts in a mutex-guarded map. It backs tests
// and the in-memory dev mode; the CAS contract matches the postgres
// implementation.
type InMemoryRepository struct {
	mu      sync.Mutex
	byEmail map[string]*Account
	byID    map[string]*Account
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byEmail: make(map[string]*Account),
		byID:    make(map[string]*Account),
	}
}

func cloneAccount(a *Account) *Account {
	c := *a
	if a.LastLogin != nil {
		t := *a.LastLogin
		c.LastLogin = &t
	}
	return &c
}

func (r *InMemoryRepository) Create(ctx context.Context, account *Account) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[account.Email]; ok {
		return nil, common.ErrDuplicateAccount
	}

	stored := cloneAccount(account)
	stored.ID = uuid.NewString()
	stored.Version = 1
	stored.CreatedAt = time.Now().UTC()

	r.byEmail[stored.Email] = stored
	r.byID[stored.ID] = stored

	return cloneAccount(stored), nil
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}

	return cloneAccount(stored), nil
}

func (r *InMemoryRepository) UpdateLoginState(ctx context.Context, id string, version int64, attempts int, locked bool, lastLogin *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok {
		return common.ErrNotFound
	}
	if stored.Version != version {
		return common.ErrVersionConflict
	}

	stored.FailedLoginAttempts = attempts
	stored.IsLocked = locked
	if lastLogin != nil {
		t := *lastLogin
		stored.LastLogin = &t
	}
	stored.Version++

	return nil
}
