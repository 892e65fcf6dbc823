package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/avolkov/gatekeeper/internal/server/auth"
)

const contextClaimsKey = "auth.claims"

// requireToken validates the bearer credential on protected routes.
// Expired and forged tokens are logged with their distinct reason but the
// response is the same generic 401 either way.
func (s *Server) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {

		const prefix = "Bearer "

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, prefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
			return
		}

		claims, err := auth.Validate(strings.TrimPrefix(header, prefix), s.jwtSecret)
		if err != nil {
			s.logger.Warn(c.Request.Context(), "token rejected", "reason", err.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
			return
		}

		c.Set(contextClaimsKey, claims)
		c.Next()
	}
}

func claimsFromContext(c *gin.Context) *auth.Claims {
	v, ok := c.Get(contextClaimsKey)
	if !ok {
		return nil
	}
	claims, ok := v.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}
