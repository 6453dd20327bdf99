package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sarrafhq/sarraf-backend/internal/apperrors"
	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
	portssvc "github.com/sarrafhq/sarraf-backend/internal/core/ports/services"
	"github.com/sarrafhq/sarraf-backend/internal/dto"
)

// RequireRoles allows only the listed roles through. Every rejection is
// audit-logged with the attempted path.
func RequireRoles(audit portssvc.AuditSvc, roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role, ok := GetRoleFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.Error("authentication required", apperrors.CodeUnauthenticated))
			return
		}

		if _, permitted := allowed[role]; !permitted {
			userID, _ := GetUserIDFromContext(c)
			GetLoggerFromCtx(c.Request.Context()).Warn("Role rejected",
				slog.String("user_id", userID),
				slog.String("role", string(role)),
				slog.String("path", c.Request.URL.Path),
			)
			audit.Record(c.Request.Context(), domain.AuditLogEntry{
				UserID:     userID,
				Action:     domain.AuditActionRoleRejected,
				EntityType: "route",
				EntityID:   c.Request.URL.Path,
				NewValues:  map[string]interface{}{"role": string(role), "method": c.Request.Method},
			})
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.Error("insufficient role for this operation", apperrors.CodeForbidden))
			return
		}

		c.Next()
	}
}
