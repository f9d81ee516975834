package common

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-faucet/internal/api"
)

// GetHealthyRoute is the liveness probe: it only proves the process serves
// requests, readiness is checked separately.
func GetHealthyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/healthy", getHealthyHandler(s))
}

func getHealthyHandler(_ *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.String(http.StatusOK, "OK.")
	}
}
