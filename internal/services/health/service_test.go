package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestStatusFields(t *testing.T) {
	svc := NewService("candy-game-server", "1.0.0")
	svc.now = func() time.Time {
		return time.Date(2025, time.January, 2, 3, 4, 5, 6_000_000, time.UTC)
	}

	got := svc.Status()
	want := Status{
		Status:    "healthy",
		Message:   "server is running",
		Timestamp: "2025-01-02T03:04:05.006Z",
		Server:    "candy-game-server",
		Version:   "1.0.0",
	}
	if got != want {
		t.Fatalf("Status() = %+v, want %+v", got, want)
	}
}

func TestHandlerReturnsISOTimestamp(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/health", NewService("candy-game-server", "1.0.0").Handler())

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var payload Status
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Status != "healthy" {
		t.Fatalf("unexpected status %q", payload.Status)
	}
	if _, err := time.Parse(time.RFC3339Nano, payload.Timestamp); err != nil {
		t.Fatalf("timestamp %q is not ISO-8601: %v", payload.Timestamp, err)
	}
}
