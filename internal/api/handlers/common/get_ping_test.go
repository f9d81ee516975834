package common_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/stretchr/testify/require"
	"github/chapool/go-faucet/internal/api"
	"github/chapool/go-faucet/internal/api/handlers/common"
	"github/chapool/go-faucet/internal/test"
)

func TestGetPing(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		now := time.Date(2025, 6, 15, 12, 30, 45, 0, time.UTC)
		s.Clock = time2.NewMockClock(now)

		res := test.PerformRequest(t, s, "GET", "/ping", nil, nil)

		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response common.GetPingResponse
		test.ParseResponseBody(t, res, &response)

		require.Equal(t, "pong", response.Message)
		require.Equal(t, "2025-06-15T12:30:45Z", response.Timestamp)

		parsed, err := time.Parse(time.RFC3339, response.Timestamp)
		require.NoError(t, err)
		require.True(t, parsed.Equal(now))
	})
}
