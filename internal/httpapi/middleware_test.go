package httpapi

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRequestID_MintsWhenAbsent(t *testing.T) {
	var captured string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = RequestIDFromContext(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, captured)
	require.Equal(t, captured, rr.Header().Get(requestIDHeader))
}

func TestRequestID_EchoesValidIncoming(t *testing.T) {
	var captured string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "req-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, "req-123", captured)
	require.Equal(t, "req-123", rr.Header().Get(requestIDHeader))
}

func TestRequestID_ReplacesInvalidIncoming(t *testing.T) {
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "bad id with spaces!")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	got := rr.Header().Get(requestIDHeader)
	require.NotEmpty(t, got)
	require.NotEqual(t, "bad id with spaces!", got)
}

func TestSanitizeRequestID(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"req-123", "req-123"},
		{"  req-123  ", "req-123"},
		{"a.b_c-D9", "a.b_c-D9"},
		{"", ""},
		{"has space", ""},
		{"semi;colon", ""},
		{strings.Repeat("a", maxRequestIDLength+1), ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, sanitizeRequestID(tc.raw), "sanitizeRequestID(%q)", tc.raw)
	}
}

func TestLogging_PassesThroughStatus(t *testing.T) {
	h := Logging(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusTeapot, rr.Code)
}

func TestRateLimit_BlocksAfterBurst(t *testing.T) {
	cfg := RateLimitConfig{RequestsPerMinute: 300, Burst: 1}
	h := RateLimit(cfg, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	require.Equal(t, "1", second.Header().Get("Retry-After"))

	// 300/min replenishes a token within 200ms.
	time.Sleep(250 * time.Millisecond)
	third := httptest.NewRecorder()
	h.ServeHTTP(third, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, third.Code)
}

func TestRateLimit_DisabledPassesThrough(t *testing.T) {
	h := RateLimit(RateLimitConfig{}, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rr.Code)
	}
}

func TestRateLimit_SeparateClientsHaveSeparateBuckets(t *testing.T) {
	cfg := RateLimitConfig{RequestsPerMinute: 60, Burst: 1}
	h := RateLimit(cfg, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	reqA := httptest.NewRequest(http.MethodGet, "/", nil)
	reqA.RemoteAddr = "203.0.113.10:4000"
	reqB := httptest.NewRequest(http.MethodGet, "/", nil)
	reqB.RemoteAddr = "203.0.113.20:4000"

	rrA := httptest.NewRecorder()
	h.ServeHTTP(rrA, reqA)
	require.Equal(t, http.StatusOK, rrA.Code)

	rrB := httptest.NewRecorder()
	h.ServeHTTP(rrB, reqB)
	require.Equal(t, http.StatusOK, rrB.Code)
}

func TestClientKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.10:4000"
	require.Equal(t, "203.0.113.10", clientKey(req))

	req.RemoteAddr = "203.0.113.10"
	require.Equal(t, "203.0.113.10", clientKey(req))
}
