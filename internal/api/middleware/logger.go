package middleware

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github/chapool/go-faucet/internal/util"
)

// RequestLogger attaches a request-scoped zerolog logger (request id,
// method, path) to the request context and logs request completion.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = c.Response().Header().Get(echo.HeaderXRequestID)
			}
			if id == "" {
				id = uuid.New().String()
			}

			l := log.With().
				Str("request_id", id).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Logger()

			ctx := l.WithContext(context.WithValue(req.Context(), util.CTXKeyRequestID, id))
			c.SetRequest(req.WithContext(ctx))

			start := time.Now()
			err := next(c)

			l.Debug().
				Int("status", c.Response().Status).
				Dur("duration", time.Since(start)).
				Msg("Request handled")

			return err
		}
	}
}
