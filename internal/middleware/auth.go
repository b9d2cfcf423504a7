package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/marblesound/marblesound-api/internal/constants"
	apierrors "github.com/marblesound/marblesound-api/internal/errors"
	"github.com/marblesound/marblesound-api/internal/services"
)

// RequireSession authenticates the caller from the X-User-ID header and
// the bearer token, verifying the token against the stored session
// hash. An invalid or missing session is rejected with 403.
func RequireSession(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.GetHeader(constants.HeaderUserID), 10, 64)
		token := bearerToken(c)

		if err != nil || token == "" || !authService.VerifySession(userID, token) {
			apierrors.Forbidden(c, "Invalid session")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Set(constants.ContextKeySessionToken, token)
		c.Next()
	}
}

// GetUserID retrieves the authenticated user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	id, ok := userID.(uint64)
	return id, ok
}

// GetSessionToken retrieves the presented session token from context
func GetSessionToken(c *gin.Context) (string, bool) {
	token, exists := c.Get(constants.ContextKeySessionToken)
	if !exists {
		return "", false
	}

	t, ok := token.(string)
	return t, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
