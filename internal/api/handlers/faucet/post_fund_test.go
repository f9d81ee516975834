package faucet_test

import (
	"encoding/hex"
	"math/big"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github/chapool/go-faucet/internal/api"
	faucethandler "github/chapool/go-faucet/internal/api/handlers/faucet"
	faucetsvc "github/chapool/go-faucet/internal/faucet"
	"github/chapool/go-faucet/internal/test"
)

const recipient = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"

func TestPostFund(t *testing.T) {
	mock := test.NewMockChain()
	test.WithTestServerChain(t, mock, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/fund", map[string]interface{}{
			"address": recipient,
			"amount":  0.1,
		}, nil)

		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response faucethandler.PostFundResponse
		test.ParseResponseBody(t, res, &response)

		require.NotEmpty(t, response.TxHash)
		require.Equal(t, string(faucetsvc.StatusConfirmed), response.Status)
		require.Contains(t, response.Message, recipient)
		require.Contains(t, response.Message, "0.1")
		require.Contains(t, response.Message, "ETH")

		sent := mock.SentTransactions()
		require.Len(t, sent, 1)
		require.EqualValues(t, mock.StartNonce, sent[0].Nonce())
		require.Equal(t, recipient, sent[0].To().Hex())
		require.Equal(t, "100000000000000000", sent[0].Value().String())
	})
}

func TestPostFundAcceptsStringAmount(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/fund", map[string]interface{}{
			"address": recipient,
			"amount":  "0.5",
		}, nil)

		require.Equal(t, http.StatusOK, res.Result().StatusCode)
	})
}

func TestPostFundMissingFields(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		tests := []map[string]interface{}{
			{"amount": 0.1},
			{"address": recipient},
			{},
		}

		for _, body := range tests {
			res := test.PerformRequest(t, s, "POST", "/fund", body, nil)

			require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

			var response map[string]string
			test.ParseResponseBody(t, res, &response)
			require.Equal(t, "Address and amount are required.", response["error"])
		}

		// rejected requests must not consume a sequence number
		require.EqualValues(t, 7, s.Sequencer.Current())
	})
}

func TestPostFundInvalidAddress(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/fund", map[string]interface{}{
			"address": "0x1234",
			"amount":  0.1,
		}, nil)

		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var response map[string]string
		test.ParseResponseBody(t, res, &response)
		require.Equal(t, "Invalid Ethereum address.", response["error"])
	})
}

func TestPostFundInvalidAmount(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/fund", map[string]interface{}{
			"address": recipient,
			"amount":  -3,
		}, nil)

		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var response map[string]string
		test.ParseResponseBody(t, res, &response)
		require.Equal(t, "Amount must be a number greater than zero.", response["error"])
	})
}

func TestPostFundUnconfirmedReturnsPending(t *testing.T) {
	mock := test.NewMockChain()
	mock.WithholdReceipts = true

	test.WithTestServerChain(t, mock, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/fund", map[string]interface{}{
			"address": recipient,
			"amount":  0.1,
		}, nil)

		// a confirmation timeout is not a failure, the hash is handed back
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response faucethandler.PostFundResponse
		test.ParseResponseBody(t, res, &response)
		require.Equal(t, string(faucetsvc.StatusPending), response.Status)
		require.NotEmpty(t, response.TxHash)
	})
}

func TestPostFundBroadcastFailure(t *testing.T) {
	mock := test.NewMockChain()
	mock.SendErr = http.ErrHandlerTimeout

	test.WithTestServerChain(t, mock, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/fund", map[string]interface{}{
			"address": recipient,
			"amount":  0.1,
		}, nil)

		require.Equal(t, http.StatusInternalServerError, res.Result().StatusCode)

		var response map[string]string
		test.ParseResponseBody(t, res, &response)
		require.Equal(t, "Failed to dispatch transaction.", response["error"])
	})
}

func TestPostFundToken(t *testing.T) {
	mock := test.NewMockChain()
	test.WithTestServerChain(t, mock, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/fund-usdt", map[string]interface{}{
			"address": recipient,
			"amount":  100,
		}, nil)

		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response faucethandler.PostFundResponse
		test.ParseResponseBody(t, res, &response)
		require.Equal(t, string(faucetsvc.StatusConfirmed), response.Status)
		require.Contains(t, response.Message, "USDT")

		// the transfer moves value via the contract call
		sent := mock.SentTransactions()
		require.Len(t, sent, 1)
		require.Equal(t, test.TestTokenContract, sent[0].To().Hex())
		require.Zero(t, sent[0].Value().Sign())

		data := sent[0].Data()
		require.Len(t, data, 68)
		require.Equal(t, "a9059cbb", hex.EncodeToString(data[:4]))
		require.Equal(t, "100000000", new(big.Int).SetBytes(data[4+32:]).String())
	})
}

func TestPostFundUnknownTokenRoute(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/fund-wbtc", map[string]interface{}{
			"address": recipient,
			"amount":  1,
		}, nil)

		require.Equal(t, http.StatusNotFound, res.Result().StatusCode)
	})
}

func TestPostFundRateLimited(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		body := map[string]interface{}{
			"address": recipient,
			"amount":  0.1,
		}

		for i := 0; i < 3; i++ {
			res := test.PerformRequest(t, s, "POST", "/fund", body, nil)
			require.Equal(t, http.StatusOK, res.Result().StatusCode, "request %d should pass the gate", i+1)
		}

		res := test.PerformRequest(t, s, "POST", "/fund", body, nil)
		require.Equal(t, http.StatusTooManyRequests, res.Result().StatusCode)
		require.NotEmpty(t, res.Header().Get("Retry-After"))

		var response map[string]string
		test.ParseResponseBody(t, res, &response)
		require.Equal(t, "Too many requests. Try again later.", response["error"])

		// the gate also rejects before validation runs
		res = test.PerformRequest(t, s, "POST", "/fund", map[string]interface{}{}, nil)
		require.Equal(t, http.StatusTooManyRequests, res.Result().StatusCode)
	})
}

func TestPostFundRateLimitDoesNotGateManagementRoutes(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		body := map[string]interface{}{
			"address": recipient,
			"amount":  0.1,
		}

		for i := 0; i < 4; i++ {
			test.PerformRequest(t, s, "POST", "/fund", body, nil)
		}

		res := test.PerformRequest(t, s, "GET", "/ping", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
	})
}
