// Package auth provides optional bearer-token protection for mutating
// endpoints. The operator configures a bcrypt hash of the token; clients
// send the raw token in the Authorization header.
package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// Middleware guards requests with a static bearer token.
type Middleware struct {
	tokenHash []byte
}

// NewMiddleware creates the middleware for the given bcrypt token hash. An
// empty hash disables authentication entirely.
func NewMiddleware(tokenHash string) *Middleware {
	return &Middleware{tokenHash: []byte(tokenHash)}
}

// Enabled reports whether a token hash is configured.
func (m *Middleware) Enabled() bool {
	return len(m.tokenHash) > 0
}

// Handler rejects requests whose bearer token does not match the configured
// hash. When no hash is configured it is a no-op.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.Enabled() {
			c.Next()
			return
		}

		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		if err := bcrypt.CompareHashAndPassword(m.tokenHash, []byte(token)); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
