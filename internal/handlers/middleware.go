package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/craftportal/learning-service/internal/apperrors"
	"github.com/craftportal/learning-service/internal/auth"
	"github.com/craftportal/learning-service/internal/models"
	"github.com/craftportal/learning-service/internal/repositories"
	"github.com/craftportal/learning-service/internal/services"
)

const (
	contextCaller     = "caller"
	contextUserStatus = "user_status"
)

// RolePolicy selects how a role gate combines its required roles.
type RolePolicy int

const (
	// AnyOf passes when the caller holds at least one required role.
	AnyOf RolePolicy = iota
	// AllOf passes only when the caller holds every required role.
	AllOf
)

// SetupMiddleware sets up common middleware for the Gin router
func SetupMiddleware(router *gin.Engine) {
	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware())
	router.Use(gin.Recovery())
	router.Use(SecurityMiddleware())
}

// AuthMiddleware resolves the caller from a bearer token. Roles ride in
// the token; status is re-read from the database on every request so a
// deactivation takes effect immediately.
type AuthMiddleware struct {
	tokens   *auth.TokenManager
	userRepo repositories.UserRepository
}

func NewAuthMiddleware(tokens *auth.TokenManager, userRepo repositories.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, userRepo: userRepo}
}

func (am *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "authorization header missing")
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		userID, claims, err := am.tokens.Parse(tokenParts[1])
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		user, err := am.userRepo.GetByID(c.Request.Context(), userID)
		if err != nil {
			abortUnauthorized(c, "unknown user")
			return
		}

		c.Set(contextCaller, services.Caller{
			ID:    user.ID,
			Roles: models.NewRoleSet(claims.Roles...),
		})
		c.Set(contextUserStatus, user.Status)
		c.Next()
	}
}

// RequireActive gates on account status. A non-active account gets the
// distinct inactive kind so clients can route the user to remediation
// rather than showing a generic permission error.
func RequireActive() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(contextUserStatus)
		if !exists {
			abortUnauthorized(c, "user not authenticated")
			return
		}
		if status := value.(models.UserStatus); status != models.StatusActive {
			appErr := apperrors.Inactive()
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error:   string(appErr.Kind),
				Message: appErr.Message,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRoles gates on the caller's role set. An empty role list is a
// wiring mistake, not a runtime condition, so it panics at route setup.
func RequireRoles(policy RolePolicy, roles ...models.Role) gin.HandlerFunc {
	if len(roles) == 0 {
		panic("handlers: RequireRoles configured with no roles")
	}
	return func(c *gin.Context) {
		value, exists := c.Get(contextCaller)
		if !exists {
			abortUnauthorized(c, "user not authenticated")
			return
		}
		caller := value.(services.Caller)

		var allowed bool
		switch policy {
		case AllOf:
			allowed = caller.Roles.HasAll(roles...)
		default:
			allowed = caller.Roles.HasAny(roles...)
		}
		if !allowed {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error:   string(apperrors.KindForbidden),
				Message: "insufficient permissions for this resource",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, ErrorResponse{
		Error:   "unauthorized",
		Message: message,
	})
	c.Abort()
}

// SecurityMiddleware adds security headers
func SecurityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'self'")
		c.Next()
	}
}

// RequestIDMiddleware generates a unique request ID for each request
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header("X-Request-ID", requestID)
		c.Set("request_id", requestID)
		c.Next()
	}
}

// CORSMiddleware provides CORS support
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "Content-Length")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Max-Age", "43200")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
