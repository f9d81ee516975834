package util

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contextKey string

const (
	CTXKeyRequestID contextKey = "request_id"
)

// LogFromContext returns the logger scoped to ctx, falling back to the global
// logger if none was attached.
func LogFromContext(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		return &log.Logger
	}

	return l
}

// LogFromEchoContext returns the request-scoped logger of an echo context.
func LogFromEchoContext(c echo.Context) *zerolog.Logger {
	return LogFromContext(c.Request().Context())
}

// RequestIDFromContext returns the request id attached by the logger
// middleware, or an empty string.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(CTXKeyRequestID).(string); ok {
		return id
	}

	return ""
}
