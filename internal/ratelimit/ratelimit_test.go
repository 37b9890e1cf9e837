package ratelimit

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/liamcoop/churn/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledLimiterIsNil(t *testing.T) {
	l := New(config.RateLimitConfig{Enabled: false, RPS: 1, Burst: 1})
	assert.Nil(t, l)
	assert.True(t, l.Allow("ip:1.2.3.4"))

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	assert.NotNil(t, l.Middleware(next))
}

func TestAllowBurstThenReject(t *testing.T) {
	l := New(config.RateLimitConfig{Enabled: true, RPS: 1, Burst: 2})
	fixed := time.Unix(1700000000, 0)
	l.now = func() time.Time { return fixed }

	assert.True(t, l.Allow("ip:a"))
	assert.True(t, l.Allow("ip:a"))
	assert.False(t, l.Allow("ip:a"))

	// other clients have their own bucket
	assert.True(t, l.Allow("ip:b"))

	fixed = fixed.Add(time.Second)
	assert.True(t, l.Allow("ip:a"))
}

func TestIdleClientsAreSwept(t *testing.T) {
	l := New(config.RateLimitConfig{Enabled: true, RPS: 100, Burst: 100})
	now := time.Unix(1700000000, 0)
	l.now = func() time.Time { return now }

	l.Allow("ip:old")
	now = now.Add(time.Hour)
	for i := 0; i < 511; i++ {
		l.Allow(fmt.Sprintf("ip:%d", i%3))
	}

	assert.Equal(t, 3, l.size())
}

func TestMiddleware(t *testing.T) {
	l := New(config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 1})
	handler := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/predict", nil)
	req.RemoteAddr = "10.0.0.1:5555"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, rec.Body.String())
}

func TestKey(t *testing.T) {
	testCases := []struct {
		remote string
		want   string
	}{
		{"10.0.0.1:5555", "ip:10.0.0.1"},
		{"[::1]:80", "ip:::1"},
		{"10.0.0.2", "ip:10.0.0.2"},
		{"", "ip:unknown"},
	}

	for _, tc := range testCases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = tc.remote
		assert.Equal(t, tc.want, Key(req), "remote %q", tc.remote)
	}
}
