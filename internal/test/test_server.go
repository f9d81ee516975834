package test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github/chapool/go-faucet/internal/api"
	"github/chapool/go-faucet/internal/api/router"
	"github/chapool/go-faucet/internal/config"
)

// TestPrivateKey is the first well-known local development key; its address
// is 0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266.
const TestPrivateKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

// TestTokenContract is an arbitrary contract address for the test token.
const TestTokenContract = "0x5FbDB2315678afecb367f032d93F642f64180aa3"

// DefaultTestServerConfig returns a config suitable for in-process tests:
// short receipt polling and one 6-decimals token on /fund-usdt.
func DefaultTestServerConfig() config.Server {
	cfg := config.DefaultServiceConfigFromEnv()

	cfg.Faucet.PrivateKey = TestPrivateKey
	cfg.Faucet.ChainID = 1337
	cfg.Faucet.AwaitConfirmation = true
	cfg.Faucet.ReceiptTimeout = 250 * time.Millisecond
	cfg.Faucet.ReceiptPollInterval = 10 * time.Millisecond
	cfg.Faucet.Tokens = []config.Token{
		{Symbol: "USDT", ContractAddress: TestTokenContract, Decimals: 6},
	}

	return cfg
}

// WithTestServer runs closure against a fully routed server talking to a
// fresh default MockChain.
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()

	WithTestServerConfigAndChain(t, DefaultTestServerConfig(), NewMockChain(), closure)
}

// WithTestServerChain runs closure against a server using the given mock
// chain.
func WithTestServerChain(t *testing.T, mock *MockChain, closure func(s *api.Server)) {
	t.Helper()

	WithTestServerConfigAndChain(t, DefaultTestServerConfig(), mock, closure)
}

func WithTestServerConfigAndChain(t *testing.T, cfg config.Server, mock *MockChain, closure func(s *api.Server)) {
	t.Helper()

	s, err := api.InitNewServerWithChain(context.Background(), cfg, mock)
	require.NoError(t, err)

	router.Init(s)

	closure(s)
}

// PerformRequest runs a request against the server's echo instance without a
// network listener. A non-nil body is marshalled to JSON.
func PerformRequest(t *testing.T, s *api.Server, method, path string, body interface{}, headers http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for key, vals := range headers {
		for _, val := range vals {
			req.Header.Add(key, val)
		}
	}

	res := httptest.NewRecorder()
	s.Echo.ServeHTTP(res, req)

	return res
}

// ParseResponseBody unmarshals the recorded JSON response into target.
func ParseResponseBody(t *testing.T, res *httptest.ResponseRecorder, target interface{}) {
	t.Helper()

	require.NoError(t, json.Unmarshal(res.Body.Bytes(), target))
}
