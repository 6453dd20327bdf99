package middleware

import (
	"github.com/gin-gonic/gin"
	portssvc "github.com/sarrafhq/sarraf-backend/internal/core/ports/services"
)

// APITokenAuth authenticates programmatic clients by the x-api-key header.
// A valid token sets the identity and lets the request skip the cookie and
// CSRF checks; an absent or invalid token falls through to session auth.
func APITokenAuth(tokenSvc portssvc.APITokenSvc, auth portssvc.AuthSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("x-api-key")
		if apiKey == "" {
			c.Next()
			return
		}

		userID, err := tokenSvc.ValidateToken(c.Request.Context(), apiKey)
		if err != nil {
			c.Next()
			return
		}

		user, err := auth.GetUser(c.Request.Context(), userID)
		if err != nil {
			c.Next()
			return
		}

		setIdentity(c, user.UserID, user.Role, AuthMethodAPIToken)
		c.Next()
	}
}
