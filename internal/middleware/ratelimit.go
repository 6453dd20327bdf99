package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sarrafhq/sarraf-backend/internal/apperrors"
	"github.com/sarrafhq/sarraf-backend/internal/dto"
	"github.com/ulule/limiter/v3"
)

// RateLimit applies a per-client-IP request rate limit.
func RateLimit(limiterInstance *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		lctx, err := limiterInstance.Get(c.Request.Context(), ip)
		if err != nil {
			GetLoggerFromCtx(c.Request.Context()).Error("Failed to get rate limit context",
				slog.String("ip", ip), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.Error("internal error during rate limit check", apperrors.CodeInternal))
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

		if lctx.Reached {
			GetLoggerFromCtx(c.Request.Context()).Warn("Rate limit exceeded",
				slog.String("ip", ip), slog.Int64("limit", lctx.Limit))
			c.Header("Retry-After", strconv.FormatInt(retryAfterSeconds(lctx.Reset), 10))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.Error("too many requests, please try again later", apperrors.CodeRateLimited))
			return
		}

		c.Next()
	}
}

// retryAfterSeconds converts a limiter reset timestamp into a Retry-After
// value, never below one second.
func retryAfterSeconds(reset int64) int64 {
	seconds := reset - time.Now().Unix()
	if seconds < 1 {
		seconds = 1
	}
	return seconds
}
