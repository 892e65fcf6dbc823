package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/avolkov/gatekeeper/internal/common"
	"github.com/avolkov/gatekeeper/internal/dbx"
)

const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Create(ctx context.Context, account *Account) (*Account, error) {

	query :=
		`INSERT INTO accounts (email, password_hash)
		 VALUES ($1, $2)
		 RETURNING id, failed_login_attempts, is_locked, version, created_at
		 `

	err := r.db.QueryRowContext(ctx, query, account.Email, account.PasswordHash).
		Scan(&account.ID, &account.FailedLoginAttempts, &account.IsLocked, &account.Version, &account.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrDuplicateAccount
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {

	query :=
		`SELECT id, email, password_hash, failed_login_attempts, is_locked, last_login, version, created_at
		 FROM accounts
		 WHERE email = $1
		 `

	account := &Account{}
	var lastLogin sql.NullTime

	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&account.ID, &account.Email, &account.PasswordHash,
		&account.FailedLoginAttempts, &account.IsLocked,
		&lastLogin, &account.Version, &account.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	if lastLogin.Valid {
		t := lastLogin.Time
		account.LastLogin = &t
	}

	return account, nil
}

// UpdateLoginState persists lockout counters with a compare-and-swap on the
// row version. When the version moved underneath us it reports
// common.ErrVersionConflict; the distinction from a missing row is resolved
// inside the same transaction.
func (r *PostgresRepository) UpdateLoginState(ctx context.Context, id string, version int64, attempts int, locked bool, lastLogin *time.Time) error {

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {

		query :=
			`UPDATE accounts
			 SET failed_login_attempts = $1, is_locked = $2, last_login = $3, version = version + 1
			 WHERE id = $4 AND version = $5
			 `

		var lastLoginArg any
		if lastLogin != nil {
			lastLoginArg = *lastLogin
		}

		res, err := tx.ExecContext(ctx, query, attempts, locked, lastLoginArg, id, version)
		if err != nil {
			return fmt.Errorf("error performing sql request: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("error reading affected rows: %w", err)
		}
		if affected == 1 {
			return nil
		}

		var current int64
		err = tx.QueryRowContext(ctx, `SELECT version FROM accounts WHERE id = $1`, id).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("error performing sql request: %w", err)
		}

		return common.ErrVersionConflict
	})
}
