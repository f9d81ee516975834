package router

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github/chapool/go-faucet/internal/api"
	"github/chapool/go-faucet/internal/api/middleware"
)

// Init sets up the echo instance, middlewares and all routes on the given
// server.
func Init(s *api.Server) {
	s.Echo = echo.New()

	s.Echo.Debug = false
	s.Echo.HideBanner = true
	s.Echo.HTTPErrorHandler = errorHandler(s.Config.Echo.HideInternalServerErrorDetails)

	if s.Config.Echo.EnableRecoverMiddleware {
		s.Echo.Use(echoMiddleware.Recover())
	}

	if s.Config.Echo.EnableRequestIDMiddleware {
		s.Echo.Use(echoMiddleware.RequestID())
	}

	if s.Config.Echo.EnableCORSMiddleware {
		s.Echo.Use(echoMiddleware.CORS())
	}

	s.Echo.Use(middleware.RequestLogger())
	s.Echo.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: s.Metrics.Registry,
	}))

	s.Router = &api.Router{
		Root:       s.Echo.Group(""),
		Management: s.Echo.Group("/-"),

		// The admission gate only guards the dispatch pipeline, not ping or
		// management endpoints.
		Faucet: s.Echo.Group("", middleware.RateLimiter(s.Limiter, s.Metrics)),
	}

	attachAllRoutes(s)
}
