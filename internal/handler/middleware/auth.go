package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"stayhub/internal/domain/guest"
	"stayhub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxGuestIDKey   = "guest_id"
	ctxGuestRoleKey = "guest_role"
)

type AuthMiddleware struct {
	authQueries queries.AuthQueries
}

func NewAuthMiddleware(authQueries queries.AuthQueries) *AuthMiddleware {
	return &AuthMiddleware{
		authQueries: authQueries,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		claims, err := m.authQueries.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		role, err := guest.NewRole(claims.Role)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxGuestIDKey, claims.GuestID)
		c.Set(ctxGuestRoleKey, role)
		c.Set("jwt_claims", map[string]any{
			"guest_id": claims.GuestID.String(),
			"role":     claims.Role,
		})
		c.Next()
	}
}

func (m *AuthMiddleware) RequireRoleAtLeast(minRole guest.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetGuestRole(c)
		if !ok {
			// Unexpected error: should be used after RequireAuth()
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			c.Abort()
			return
		}

		if !role.HasPermission(minRole) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func GetGuestID(c *gin.Context) (uuid.UUID, bool) {
	guestID, exists := c.Get(ctxGuestIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := guestID.(uuid.UUID)
	return id, ok
}

func GetGuestRole(c *gin.Context) (guest.Role, bool) {
	guestRole, exists := c.Get(ctxGuestRoleKey)
	if !exists {
		return "", false
	}

	role, ok := guestRole.(guest.Role)
	return role, ok
}
