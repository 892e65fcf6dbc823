package accounts

import (
	"context"
	"time"
)

// Repository is the credential store contract. Implementations must make
// UpdateLoginState atomic per account: the update applies only when the
// stored version still matches, otherwise common.ErrVersionConflict is
// returned and the caller re-reads.
type Repository interface {
	Create(ctx context.Context, account *Account) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	UpdateLoginState(ctx context.Context, id string, version int64, attempts int, locked bool, lastLogin *time.Time) error
}
