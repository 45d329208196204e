package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func hitOnce(limiter *RateLimiter, ip string) int {
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/forum", nil)
	req.Header.Set("X-Forwarded-For", ip)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiterUnderLimit(t *testing.T) {
	limiter := NewRateLimiter(3)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hitOnce(limiter, "10.0.0.1"))
	}
}

func TestRateLimiterOverLimit(t *testing.T) {
	limiter := NewRateLimiter(2)

	assert.Equal(t, http.StatusOK, hitOnce(limiter, "10.0.0.1"))
	assert.Equal(t, http.StatusOK, hitOnce(limiter, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, hitOnce(limiter, "10.0.0.1"))
}

func TestRateLimiterPerClient(t *testing.T) {
	limiter := NewRateLimiter(1)

	assert.Equal(t, http.StatusOK, hitOnce(limiter, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, hitOnce(limiter, "10.0.0.1"))
	assert.Equal(t, http.StatusOK, hitOnce(limiter, "10.0.0.2"))
}

func TestRateLimiterDisabled(t *testing.T) {
	limiter := NewRateLimiter(0)

	for i := 0; i < 50; i++ {
		assert.Equal(t, http.StatusOK, hitOnce(limiter, "10.0.0.1"))
	}
}
