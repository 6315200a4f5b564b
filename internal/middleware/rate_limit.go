package middleware

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/mandic19/Shop/internal/caching"
	"github.com/mandic19/Shop/internal/common"
	"github.com/mandic19/Shop/internal/logging"

	"github.com/labstack/echo/v4"
)

const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
)

// RateLimitStore counts hits per key inside a fixed window.
type RateLimitStore interface {
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (*caching.RateLimitResult, error)
}

// RateLimit throttles each client IP to limit requests per window. When the
// store is unreachable requests pass through unthrottled.
func RateLimit(store RateLimitStore, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			result, err := store.IsRateLimited(ctx, c.RealIP(), limit, window)
			if err != nil {
				logging.FromContext(ctx).Warn("rate limiter unavailable, allowing request", "remote_ip", c.RealIP(), "error", err)
				return next(c)
			}

			h := c.Response().Header()
			h.Set(HeaderRateLimitLimit, strconv.Itoa(result.Limit))
			h.Set(HeaderRateLimitRemaining, strconv.Itoa(result.Remaining))

			if result.Limited {
				retryAfter := int(math.Ceil(result.RetryAfter.Seconds()))
				if retryAfter < 1 {
					retryAfter = 1
				}
				h.Set(echo.HeaderRetryAfter, strconv.Itoa(retryAfter))
				return common.SendTooManyRequestsError(c)
			}
			return next(c)
		}
	}
}
