package db

import (
	"context"
	"database/sql"

	"github.com/avolkov/gatekeeper/internal/server/accounts"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Accounts() accounts.Repository
}
