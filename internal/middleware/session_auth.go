package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sarrafhq/sarraf-backend/internal/apperrors"
	portssvc "github.com/sarrafhq/sarraf-backend/internal/core/ports/services"
	"github.com/sarrafhq/sarraf-backend/internal/dto"
)

// SessionAuth authenticates requests by the httpOnly session cookie and
// loads the identity into the context. Requests already authenticated by a
// prior middleware (API token) pass through.
func SessionAuth(auth portssvc.AuthSvcFacade, sessionCookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if method, ok := GetAuthMethodFromContext(c); ok && method == AuthMethodAPIToken {
			c.Next()
			return
		}

		// CSRFProtect may have resolved the session already.
		if session, ok := GetSessionFromContext(c); ok {
			setIdentity(c, session.UserID, session.Role, AuthMethodSession)
			c.Next()
			return
		}

		token, err := c.Cookie(sessionCookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.Error("authentication required", apperrors.CodeUnauthenticated))
			return
		}

		session, err := auth.ValidateSession(c.Request.Context(), token)
		if err != nil {
			status, code := apperrors.StatusAndCode(err)
			c.AbortWithStatusJSON(status, dto.Error("session invalid or expired", code))
			return
		}

		setSession(c, session)
		setIdentity(c, session.UserID, session.Role, AuthMethodSession)
		c.Next()
	}
}
