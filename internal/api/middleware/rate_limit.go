package middleware

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"
	"github/chapool/go-faucet/internal/api/httperrors"
	"github/chapool/go-faucet/internal/metrics"
	"github/chapool/go-faucet/internal/ratelimit"
	"github/chapool/go-faucet/internal/util"
)

// RateLimiter gates requests per caller IP through the fixed-window
// admission limiter. Denied requests get a 429 with a Retry-After hint and
// consume no pipeline resources.
func RateLimiter(limiter *ratelimit.Limiter, m *metrics.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := c.RealIP()

			allowed, retryAfter := limiter.Allow(identity)
			if !allowed {
				m.RateLimited.Inc()

				util.LogFromEchoContext(c).Info().
					Str("identity", identity).
					Dur("retry_after", retryAfter).
					Msg("Request rejected by admission gate")

				c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))

				return httperrors.ErrTooManyRequests
			}

			return next(c)
		}
	}
}
