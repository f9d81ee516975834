package ratelimit_test

import (
	"sync"
	"testing"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/stretchr/testify/require"
	"github/chapool/go-faucet/internal/ratelimit"
)

func TestLimiterFixedWindow(t *testing.T) {
	clock := time2.NewMockClock(time.Now())
	limiter := ratelimit.New(clock, 3, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.Allow("10.0.0.1")
		require.True(t, allowed, "request %d should be within quota", i+1)
	}

	allowed, retryAfter := limiter.Allow("10.0.0.1")
	require.False(t, allowed)
	require.Greater(t, retryAfter, time.Duration(0))
	require.LessOrEqual(t, retryAfter, time.Minute)

	// other identities are unaffected
	allowed, _ = limiter.Allow("10.0.0.2")
	require.True(t, allowed)

	// after window expiry the identity starts a fresh window
	clock.Advance(61 * time.Second)

	allowed, _ = limiter.Allow("10.0.0.1")
	require.True(t, allowed)
}

func TestLimiterConcurrentCheckAndIncrement(t *testing.T) {
	const limit = 50
	const requests = 200

	clock := time2.NewMockClock(time.Now())
	limiter := ratelimit.New(clock, limit, time.Minute)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			allowed, _ := limiter.Allow("10.0.0.1")
			if allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	// an atomic check-and-increment admits exactly the quota, never more
	require.Equal(t, limit, allowedCount)
}
