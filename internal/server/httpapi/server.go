// Package httpapi exposes the authentication service over HTTP/JSON:
// registration, login and the token-protected current-account endpoint.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avolkov/gatekeeper/internal/common"
	"github.com/avolkov/gatekeeper/internal/logging"
	"github.com/avolkov/gatekeeper/internal/server/accounts"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address   string
	accounts  *accounts.Service
	logger    logging.Logger
	jwtSecret []byte
}

func NewServer(a string, l logging.Logger, as *accounts.Service, secretKey string) *Server {
	return &Server{
		address:   a,
		logger:    l.With("module", "http_server"),
		accounts:  as,
		jwtSecret: []byte(secretKey),
	}
}

// Router builds the gin engine with all routes mounted. Split from Run so
// tests can drive the handlers through httptest.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	user := r.Group("/user")
	user.POST("/user", s.handleRegister)
	user.POST("/auth", s.handleLogin)
	user.GET("/me", s.requireToken(), s.handleMe)

	return r
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// writeError maps service errors onto the wire taxonomy. Store failures log
// their detail server-side only; the caller sees a retryable generic code.
func (s *Server) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "ValidationError"})
	case errors.Is(err, common.ErrDuplicateAccount):
		c.JSON(http.StatusConflict, gin.H{"error": "DuplicateAccount"})
	case errors.Is(err, common.ErrAuthenticationFailed):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "AuthenticationFailed"})
	case errors.Is(err, common.ErrStoreUnavailable):
		s.logger.Error(c.Request.Context(), "credential store failure", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "StoreUnavailable"})
	default:
		s.logger.Error(c.Request.Context(), "unexpected failure", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "InternalError"})
	}
}
