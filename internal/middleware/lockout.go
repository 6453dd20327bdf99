package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sarrafhq/sarraf-backend/internal/apperrors"
	"github.com/sarrafhq/sarraf-backend/internal/dto"
	"github.com/ulule/limiter/v3"
)

// Lockout tracks failed login attempts per client IP and rejects further
// attempts once the threshold is reached. The counter lives in a limiter
// store so it expires on its own when the lockout window passes; a store
// backed by Redis shares the counter across instances.
type Lockout struct {
	limiter *limiter.Limiter
}

// NewLockout builds a Lockout over any limiter store. rate is the number of
// allowed failures per lockout window.
func NewLockout(store limiter.Store, rate limiter.Rate) *Lockout {
	return &Lockout{limiter: limiter.New(store, rate)}
}

// Middleware rejects requests from a locked-out client. It only peeks at the
// counter: attempts are counted by Fail, not by arriving here.
func (l *Lockout) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		lctx, err := l.limiter.Peek(c.Request.Context(), ip)
		if err != nil {
			GetLoggerFromCtx(c.Request.Context()).Error("Failed to peek lockout counter",
				slog.String("ip", ip), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.Error("internal error during lockout check", apperrors.CodeInternal))
			return
		}

		// Remaining == 0 means the failure budget is spent; Reached only
		// flips once the count exceeds the limit, one attempt too late.
		if lctx.Remaining == 0 || lctx.Reached {
			GetLoggerFromCtx(c.Request.Context()).Warn("Login attempt while locked out",
				slog.String("ip", ip))
			c.Header("Retry-After", strconv.FormatInt(retryAfterSeconds(lctx.Reset), 10))
			c.AbortWithStatusJSON(http.StatusLocked,
				dto.Error("too many failed login attempts, try again later", apperrors.CodeLocked))
			return
		}

		c.Next()
	}
}

// Fail counts one failed login attempt and reports whether the client is now
// locked out.
func (l *Lockout) Fail(ctx context.Context, ip string) bool {
	lctx, err := l.limiter.Get(ctx, ip)
	if err != nil {
		GetLoggerFromCtx(ctx).Error("Failed to count login failure",
			slog.String("ip", ip), slog.String("error", err.Error()))
		return false
	}
	return lctx.Remaining == 0 || lctx.Reached
}
