package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sarrafhq/sarraf-backend/internal/apperrors"
	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
	portssvc "github.com/sarrafhq/sarraf-backend/internal/core/ports/services"
	"github.com/sarrafhq/sarraf-backend/internal/dto"
)

// CSRFProtect rejects mutating requests whose CSRF token does not match the
// one bound to the session. The token may arrive in the X-CSRF-Token header,
// a _csrf form field, or a _csrf query parameter. Safe methods and requests
// authenticated via API token are exempt. Every mismatch is audit-logged.
func CSRFProtect(auth portssvc.AuthSvcFacade, audit portssvc.AuditSvc, sessionCookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if method, _ := GetAuthMethodFromContext(c); method == AuthMethodAPIToken {
			c.Next()
			return
		}

		sessionToken, err := c.Cookie(sessionCookieName)
		if err != nil || sessionToken == "" {
			// No session cookie: SessionAuth rejects unauthenticated requests;
			// there is nothing to forge without one.
			c.Next()
			return
		}

		session, err := auth.ValidateSession(c.Request.Context(), sessionToken)
		if err != nil {
			c.Next()
			return
		}
		setSession(c, session)

		provided := c.GetHeader("X-CSRF-Token")
		if provided == "" {
			provided = c.PostForm("_csrf")
		}
		if provided == "" {
			provided = c.Query("_csrf")
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(session.CSRFToken)) != 1 {
			GetLoggerFromCtx(c.Request.Context()).Warn("CSRF token mismatch",
				slog.String("user_id", session.UserID),
				slog.String("path", c.Request.URL.Path),
			)
			audit.Record(c.Request.Context(), domain.AuditLogEntry{
				UserID:     session.UserID,
				Action:     domain.AuditActionCSRFMismatch,
				EntityType: "session",
				EntityID:   session.UserID,
				NewValues:  map[string]interface{}{"path": c.Request.URL.Path, "ip": c.ClientIP()},
			})
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.Error("csrf token missing or invalid", apperrors.CodeForbidden))
			return
		}

		c.Next()
	}
}
