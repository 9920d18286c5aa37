package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"gopherpost/internal/app"
	"gopherpost/internal/model"
	"gopherpost/internal/transport/http/response"
)

const ContextUserKey = "current_user"

// Auth is the single gate on protected routes: it verifies the bearer token
// and resolves it to a persisted user. Missing header, malformed token,
// expired token and vanished user all produce the same 401.
func Auth(authService *app.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			response.Error(c, 401, response.CodeUnauthorized, "missing authorization header")
			c.Abort()
			return
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			response.Error(c, 401, response.CodeUnauthorized, "invalid authorization scheme")
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
		user, err := authService.ResolveToken(token)
		if err != nil {
			response.Error(c, 401, response.CodeUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user resolved by Auth for this request.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok
}
