package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		WindowSize:    time.Minute,
		MaxRequests:   2,
		CleanupPeriod: time.Hour,
		BanDuration:   time.Minute,
	}
}

func TestAllowEnforcesBudget(t *testing.T) {
	limiter := NewMemoryRateLimiter(testConfig())
	defer limiter.Close()

	allowed, info := limiter.Allow("1.2.3.4")
	require.True(t, allowed)
	assert.Equal(t, 1, info.Remaining)

	allowed, info = limiter.Allow("1.2.3.4")
	require.True(t, allowed)
	assert.Zero(t, info.Remaining)

	allowed, info = limiter.Allow("1.2.3.4")
	assert.False(t, allowed)
	assert.True(t, info.Banned)
	assert.Positive(t, info.RetryAfter)
}

func TestAllowTracksClientsIndependently(t *testing.T) {
	limiter := NewMemoryRateLimiter(testConfig())
	defer limiter.Close()

	for i := 0; i < 3; i++ {
		limiter.Allow("1.2.3.4")
	}

	allowed, _ := limiter.Allow("5.6.7.8")
	assert.True(t, allowed)
}

func TestGetClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", GetClientIP(r))

	r.Header.Set("X-Real-IP", "8.8.8.8")
	assert.Equal(t, "8.8.8.8", GetClientIP(r))

	r.Header.Set("X-Forwarded-For", "1.1.1.1, 2.2.2.2")
	assert.Equal(t, "1.1.1.1", GetClientIP(r))
}
