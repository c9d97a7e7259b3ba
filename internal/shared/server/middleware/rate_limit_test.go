package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimit429IncludesRetryAfter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(RateLimitRule{Rate: 1, Burst: 1}, func() time.Time { return now })

	r := gin.New()
	r.Use(RateLimit(limiter))
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	resp1 := httptest.NewRecorder()
	r.ServeHTTP(resp1, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if resp1.Code != http.StatusOK {
		t.Fatalf("expected first request 200, got %d", resp1.Code)
	}

	resp2 := httptest.NewRecorder()
	r.ServeHTTP(resp2, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if resp2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp2.Code)
	}
	if resp2.Header().Get("Retry-After") != "1" {
		t.Fatalf("expected Retry-After 1, got %q", resp2.Header().Get("Retry-After"))
	}

	var payload map[string]any
	if err := json.NewDecoder(resp2.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["success"] != false || payload["error"] != "rate limited" {
		t.Fatalf("unexpected payload %v", payload)
	}
	if _, ok := payload["retryAfterMs"]; !ok {
		t.Fatalf("expected retryAfterMs in response")
	}

	now = now.Add(time.Second)
	resp3 := httptest.NewRecorder()
	r.ServeHTTP(resp3, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if resp3.Code != http.StatusOK {
		t.Fatalf("expected refill after 1s, got %d", resp3.Code)
	}
}

func TestRateLimitDisabledRule(t *testing.T) {
	limiter := NewRateLimiter(RateLimitRule{}, nil)
	for i := 0; i < 100; i++ {
		if ok, _ := limiter.Allow("client"); !ok {
			t.Fatalf("disabled limiter rejected request %d", i)
		}
	}
	var nilLimiter *RateLimiter
	if ok, _ := nilLimiter.Allow("client"); !ok {
		t.Fatalf("nil limiter must allow")
	}
}
