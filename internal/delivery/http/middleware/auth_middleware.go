package middleware

import (
	"net/http"
	"strings"

	"consultant-tracker-backend/internal/delivery/http/response"
	"consultant-tracker-backend/internal/domain"
	"consultant-tracker-backend/pkg/logger"
	"consultant-tracker-backend/pkg/token"

	"github.com/gin-gonic/gin"
)

const accountContextKey = "Account"

// AuthMiddleware verifies the bearer token and resolves the subject back to
// an account. Role comes from the database on every request, never from the
// token.
func AuthMiddleware(tokens *token.Manager, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		// 1. Try to get token from Header
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			// 2. Try to get token from Cookie
			cookie, err := c.Cookie("auth_token")
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		email, err := tokens.Verify(tokenString)
		if err != nil {
			logger.Log.Debug("Token validation failed", "error", err)
			response.Error(c, http.StatusUnauthorized, "Could not validate credentials", nil)
			c.Abort()
			return
		}

		acc, err := authUC.ResolveAccount(c.Request.Context(), email)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Could not validate credentials", nil)
			c.Abort()
			return
		}
		if !acc.IsActive {
			response.Error(c, http.StatusForbidden, "Inactive user", nil)
			c.Abort()
			return
		}

		c.Set(accountContextKey, acc)
		c.Set(string(domain.KeyUserID), acc.ID)
		c.Set(string(domain.KeyUserEmail), acc.Email)
		c.Set(string(domain.KeyUserRole), string(acc.Role))

		c.Next()
	}
}

// CurrentAccount returns the authenticated account placed by AuthMiddleware.
func CurrentAccount(c *gin.Context) *domain.Account {
	v, ok := c.Get(accountContextKey)
	if !ok {
		return nil
	}
	acc, _ := v.(*domain.Account)
	return acc
}

// RequireRole gates a route to the given roles. Admins pass every gate.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		acc := CurrentAccount(c)
		if acc == nil {
			response.Error(c, http.StatusUnauthorized, "Not authenticated", nil)
			c.Abort()
			return
		}
		if !domain.RoleSatisfies(acc.Role, roles...) {
			response.Error(c, http.StatusForbidden, "Insufficient permissions", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
