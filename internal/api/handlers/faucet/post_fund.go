package faucet

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github/chapool/go-faucet/internal/api"
	"github/chapool/go-faucet/internal/api/httperrors"
	faucetsvc "github/chapool/go-faucet/internal/faucet"
	"github/chapool/go-faucet/internal/token"
	"github/chapool/go-faucet/internal/util"
)

type PostFundPayload struct {
	Address string      `json:"address"`
	Amount  json.Number `json:"amount"`
}

type PostFundResponse struct {
	Message string `json:"message"`
	TxHash  string `json:"txHash"`
	Status  string `json:"status"`
}

// PostFundRoute handles native currency funding requests.
func PostFundRoute(s *api.Server) *echo.Route {
	return s.Router.Faucet.POST("/fund", postFundHandler(s, nil))
}

// PostFundTokenRoutes registers one /fund-<symbol> route per configured
// token. Identical contract, token-transfer path.
func PostFundTokenRoutes(s *api.Server) []*echo.Route {
	tokens := s.Tokens.All()

	routes := make([]*echo.Route, 0, len(tokens))
	for _, tok := range tokens {
		routes = append(routes, s.Router.Faucet.POST("/fund-"+strings.ToLower(tok.Symbol), postFundHandler(s, tok)))
	}

	return routes
}

func postFundHandler(s *api.Server, tok *token.Token) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body PostFundPayload
		if err := c.Bind(&body); err != nil {
			return httperrors.ErrBadRequestBody
		}

		// Validation runs per route: asset kinds differ downstream, the
		// address/amount shape checks do not.
		req, err := faucetsvc.ValidateRequest(body.Address, body.Amount.String())
		if err != nil {
			return err
		}
		req.Token = tok

		asset := s.Config.Faucet.NativeSymbol
		if tok != nil {
			asset = tok.Symbol
		}

		outcome, err := s.Faucet.Fund(ctx, req)
		if err != nil {
			s.Metrics.FundingRequests.WithLabelValues(asset, "error").Inc()
			log.Error().Err(err).Str("asset", asset).Msg("Failed to dispatch funding transaction")

			return httperrors.ErrInternalDispatch
		}

		s.Metrics.FundingRequests.WithLabelValues(asset, string(outcome.Status)).Inc()

		return c.JSON(http.StatusOK, PostFundResponse{
			Message: fmt.Sprintf("Sent %s %s to %s.", req.Amount.String(), asset, req.To.Hex()),
			TxHash:  outcome.TxHash,
			Status:  string(outcome.Status),
		})
	}
}
