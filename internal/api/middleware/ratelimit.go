package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/squartrbnb/user-service/internal/api/metrics"
)

// Limiter decides whether one more request from key is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

// RateLimit rejects requests from a client IP once the limiter says it is over
// budget. Limiter failures let the request through and are logged.
func RateLimit(limiter Limiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()

			allowed, retryAfter, err := limiter.Allow(c.Request().Context(), key)
			if err != nil {
				log.Warn().Err(err).Str("client", key).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}
			if allowed {
				return next(c)
			}

			seconds := int(math.Ceil(retryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			c.Response().Header().Set("Retry-After", strconv.Itoa(seconds))
			metrics.RateLimitedTotal.WithLabelValues(c.Path()).Inc()

			return echo.NewHTTPError(http.StatusTooManyRequests,
				fmt.Sprintf("too many requests, retry in %d seconds", seconds))
		}
	}
}
