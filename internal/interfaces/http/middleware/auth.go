package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"talenthub/internal/infrastructure/auth"
	"talenthub/internal/shared/constants"
	"talenthub/internal/shared/logger"
	"talenthub/internal/shared/utils"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeyUserRole, claims.Role)

		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			utils.ErrorResponse(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user ID set by RequireAuth.
func CurrentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}

func IsAdmin(c *gin.Context) bool {
	role, exists := c.Get(constants.ContextKeyUserRole)
	return exists && role == auth.RoleAdmin
}
