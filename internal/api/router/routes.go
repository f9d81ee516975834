package router

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github/chapool/go-faucet/internal/api"
	"github/chapool/go-faucet/internal/api/handlers/common"
	faucethandler "github/chapool/go-faucet/internal/api/handlers/faucet"
)

func attachAllRoutes(s *api.Server) {
	s.Router.Routes = []*echo.Route{
		common.GetPingRoute(s),
		common.GetHealthyRoute(s),
		common.GetReadyRoute(s),
		faucethandler.PostFundRoute(s),
	}

	s.Router.Routes = append(s.Router.Routes, faucethandler.PostFundTokenRoutes(s)...)

	s.Router.Routes = append(s.Router.Routes,
		s.Router.Management.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: s.Metrics.Registry,
		})),
	)
}
