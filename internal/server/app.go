// Package server initializes and runs the gatekeeper application server.
// It wires the credential store, the authentication service and the HTTP
// endpoint, and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/avolkov/gatekeeper/internal/logging"
	"github.com/avolkov/gatekeeper/internal/password"
	"github.com/avolkov/gatekeeper/internal/server/accounts"
	"github.com/avolkov/gatekeeper/internal/server/config"
	"github.com/avolkov/gatekeeper/internal/server/httpapi"
	"github.com/avolkov/gatekeeper/internal/server/shared/db"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	accountService *accounts.Service
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewDefault(os.Stdout, slog.LevelInfo)

	var rm db.RepositoryManager
	var err error

	if c.UseInMemoryStore {
		rm = db.NewInMemoryRepositoryManager()
	} else {
		rm, err = db.NewPostgresRepositoryManager(c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
	}

	hasher := password.NewBcryptHasher(c.BcryptCost)
	as := accounts.NewService(rm.Accounts(), hasher, c)

	return &App{config: c, logger: logger, accountService: as}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, app.accountService, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
