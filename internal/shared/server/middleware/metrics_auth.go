package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-analyzer/internal/shared/server/respond"
)

// MetricsAuth guards the scrape endpoint with a static bearer token.
func MetricsAuth(token string) gin.HandlerFunc {
	want := []byte(token)
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		got := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if len(want) == 0 || !strings.HasPrefix(authHeader, "Bearer ") ||
			subtle.ConstantTimeCompare([]byte(got), want) != 1 {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid metrics token", nil)
			return
		}
		c.Next()
	}
}
