package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
)

// contextKey is a private type for request-context keys. Using a custom type
// prevents collisions with other packages.
type contextKey string

const (
	loggerCtxKey  = contextKey("logger")
	userIDKey     = contextKey("userID")
	roleKey       = contextKey("role")
	sessionKey    = contextKey("session")
	authMethodKey = contextKey("authMethod")
)

// Authentication methods recorded in the context by the auth middlewares.
const (
	AuthMethodSession  = "session"
	AuthMethodAPIToken = "api_token"
)

// GetLoggerFromCtx retrieves the request-scoped logger from a standard
// context, falling back to slog.Default.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// setIdentity stores the authenticated identity in both the Gin context and
// the request context so handlers and services can reach it either way.
func setIdentity(c *gin.Context, userID string, role domain.Role, method string) {
	c.Set(string(userIDKey), userID)
	c.Set(string(roleKey), role)
	c.Set(string(authMethodKey), method)

	ctx := c.Request.Context()
	ctx = context.WithValue(ctx, userIDKey, userID)
	ctx = context.WithValue(ctx, roleKey, role)
	ctx = context.WithValue(ctx, authMethodKey, method)
	ctx = context.WithValue(ctx, loggerCtxKey, GetLoggerFromCtx(ctx).With(slog.String("user_id", userID)))
	c.Request = c.Request.WithContext(ctx)
}

// GetUserIDFromContext retrieves the authenticated user ID.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(userIDKey)); exists {
		if userID, ok := v.(string); ok && userID != "" {
			return userID, true
		}
	}
	if v, ok := c.Request.Context().Value(userIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// GetRoleFromContext retrieves the authenticated role.
func GetRoleFromContext(c *gin.Context) (domain.Role, bool) {
	if v, exists := c.Get(string(roleKey)); exists {
		if role, ok := v.(domain.Role); ok {
			return role, true
		}
	}
	return "", false
}

// GetAuthMethodFromContext reports how the request authenticated.
func GetAuthMethodFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(authMethodKey)); exists {
		if method, ok := v.(string); ok {
			return method, true
		}
	}
	return "", false
}

// setSession caches the resolved session so later middleware does not hit
// the store again.
func setSession(c *gin.Context, session *domain.Session) {
	c.Set(string(sessionKey), session)
}

// GetSessionFromContext retrieves the resolved session, when one exists.
func GetSessionFromContext(c *gin.Context) (*domain.Session, bool) {
	if v, exists := c.Get(string(sessionKey)); exists {
		if session, ok := v.(*domain.Session); ok {
			return session, true
		}
	}
	return nil, false
}
