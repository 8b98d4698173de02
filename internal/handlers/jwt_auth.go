package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Shaileshwaranavk/QR-Attendance/internal/auth"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/config"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/models"
	"github.com/Shaileshwaranavk/QR-Attendance/internal/utils"
)

// Context keys set by the auth middleware.
const (
	ctxUsername = "username"
	ctxUserRole = "user_role"
	ctxLinkedID = "linked_id"
)

// JWTAuthMiddleware validates bearer tokens issued by the auth service.
type JWTAuthMiddleware struct {
	jwtConfig config.JWTConfig
	logger    utils.Logger
}

func NewJWTAuthMiddleware(jwtConfig config.JWTConfig, logger utils.Logger) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{
		jwtConfig: jwtConfig,
		logger:    logger,
	}
}

// AuthMiddleware extracts and validates the bearer token, then stores the
// caller's identity in the gin context.
func (am *JWTAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Unauthorized",
				Details: "authorization header missing",
			})
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "bearer") {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Unauthorized",
				Details: "invalid authorization header format",
			})
			c.Abort()
			return
		}

		claims, err := auth.Parse(tokenParts[1], am.jwtConfig.Secret, am.jwtConfig.Issuer)
		if err != nil {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Unauthorized",
				Details: "invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxUsername, claims.Subject)
		c.Set(ctxUserRole, claims.Role)
		c.Set(ctxLinkedID, claims.LinkedID)

		c.Next()
	}
}

// RequireRoleMiddleware checks if the caller holds one of the required roles.
func (am *JWTAuthMiddleware) RequireRoleMiddleware(requiredRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(ctxUserRole)
		if !exists {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Message: "Forbidden",
				Details: "user role not found in context",
			})
			c.Abort()
			return
		}

		role, ok := userRole.(models.UserRole)
		if !ok {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Message: "Forbidden",
				Details: "invalid user role format",
			})
			c.Abort()
			return
		}

		for _, required := range requiredRoles {
			if role == required {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Forbidden",
			Details: "insufficient permissions",
		})
		c.Abort()
	}
}

// callerLinkedID returns the roster ID the authenticated account is bound to.
func callerLinkedID(c *gin.Context) string {
	return c.GetString(ctxLinkedID)
}
