package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/openblog/blog-api/internal/auth"
	"github.com/openblog/blog-api/internal/http/respond"
)

// ContextUserID is the gin context key holding the authenticated user's ID.
const ContextUserID = "userID"

// RequireAuth gates protected routes on a valid bearer access token. A
// missing or malformed header fails before any verification is attempted.
func RequireAuth(tokens *auth.TokenManager, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respond.AbortError(c, http.StatusUnauthorized, "Unauthorized: No token provided")
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if tokenString == "" {
			respond.AbortError(c, http.StatusUnauthorized, "Unauthorized: No token provided")
			return
		}

		claims, err := tokens.Verify(auth.AccessToken, tokenString)
		if err != nil {
			log.Warn("access token rejected", zap.Error(err))
			if errors.Is(err, auth.ErrExpired) {
				respond.AbortError(c, http.StatusUnauthorized,
					"Unauthorized: Token expired, request a new token with refresh token")
				return
			}
			respond.AbortError(c, http.StatusUnauthorized, "Unauthorized: Invalid token")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}
