package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  600,
		DefaultWindow: time.Minute,
		Allowlist:     make(map[string]bool),
		Blocklist:     make(map[string]bool),
		EndpointConfigs: []EndpointConfig{
			{Path: "/api/jobs/find-matches", Method: "POST", Limit: 30, Window: time.Hour, Burst: 2},
		},
	}
}

func TestLimiter_BurstThenThrottle(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	allowed, _ := l.Allow("10.0.0.1", "/api/jobs/find-matches", "POST")
	assert.True(t, allowed)
	allowed, _ = l.Allow("10.0.0.1", "/api/jobs/find-matches", "POST")
	assert.True(t, allowed)

	allowed, info := l.Allow("10.0.0.1", "/api/jobs/find-matches", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 30, info.Limit)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 2; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/api/jobs/find-matches", "POST")
		require.True(t, allowed)
	}
	allowed, _ := l.Allow("10.0.0.1", "/api/jobs/find-matches", "POST")
	require.False(t, allowed)

	// A different client still has a full bucket.
	allowed, _ = l.Allow("10.0.0.2", "/api/jobs/find-matches", "POST")
	assert.True(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/api/jobs/find-matches", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_AllowlistAndBlocklist(t *testing.T) {
	cfg := testConfig()
	cfg.Allowlist["10.0.0.9"] = true
	cfg.Blocklist["10.0.0.66"] = true
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("10.0.0.9", "/api/jobs/find-matches", "POST")
		require.True(t, allowed)
	}

	allowed, _ := l.Allow("10.0.0.66", "/api/jobs", "GET")
	assert.False(t, allowed)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/api/jobs/find-matches", Method: "POST", Limit: 30, Window: time.Hour},
		{Path: "/api/jobs/", Method: "GET", Limit: 100, Window: time.Minute},
	}

	tests := []struct {
		name      string
		path      string
		method    string
		wantLimit int
		wantNil   bool
	}{
		{"exact match", "/api/jobs/find-matches", "POST", 30, false},
		{"prefix match", "/api/jobs/123/skills-gap", "GET", 100, false},
		{"health unlimited", "/health", "GET", 0, false},
		{"method mismatch", "/api/jobs/find-matches", "GET", 100, false},
		{"no match", "/api/users/me", "GET", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantLimit, got.Limit)
		})
	}
}

func TestTokenBucket_Refills(t *testing.T) {
	// 100 tokens per second so the test does not need to sleep long.
	tb := newTokenBucket(1, 100)

	require.True(t, tb.allow())
	require.False(t, tb.allow())

	time.Sleep(20 * time.Millisecond)
	assert.True(t, tb.allow())
}
