package common

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github/chapool/go-faucet/internal/api"
)

type GetPingResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func GetPingRoute(s *api.Server) *echo.Route {
	return s.Router.Root.GET("/ping", getPingHandler(s))
}

func getPingHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, GetPingResponse{
			Message:   "pong",
			Timestamp: s.Clock.Now().UTC().Format(time.RFC3339),
		})
	}
}
