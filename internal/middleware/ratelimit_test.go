package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hitoshi/storeman/internal/model"
	"golang.org/x/time/rate"
)

func testRateLimiterConfig(generalBurst, orderBurst int) RateLimiterConfig {
	return RateLimiterConfig{
		GeneralRate:     rate.Limit(0.001),
		GeneralBurst:    generalBurst,
		OrderRate:       rate.Limit(0.001),
		OrderBurst:      orderBurst,
		CleanupInterval: time.Hour,
	}
}

func doRequest(t *testing.T, handler http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiter_GeneralMiddleware_BlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig(3, 3))
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(okHandler())

	for i := 0; i < 3; i++ {
		if rec := doRequest(t, handler, "10.0.0.1:1234"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i, rec.Code, http.StatusOK)
		}
	}

	rec := doRequest(t, handler, "10.0.0.1:1234")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header should be set")
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	// 429も統一エラーフォーマットで返ること
	var body ErrorResponseBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	if body.Code != model.ErrCodeRateLimited {
		t.Errorf("code = %q, want %q", body.Code, model.ErrCodeRateLimited)
	}
	if body.Message == "" || body.Action == "" {
		t.Errorf("message and action should be populated: %+v", body)
	}
}

// クライアントIPごとに独立してカウントされること
func TestRateLimiter_GeneralMiddleware_PerClientIsolation(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig(1, 1))
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(okHandler())

	if rec := doRequest(t, handler, "10.0.0.1:1234"); rec.Code != http.StatusOK {
		t.Fatalf("first client: status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec := doRequest(t, handler, "10.0.0.1:1234"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("first client second request: status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}

	// 別クライアントは制限されない
	if rec := doRequest(t, handler, "10.0.0.2:5678"); rec.Code != http.StatusOK {
		t.Fatalf("second client: status = %d, want %d", rec.Code, http.StatusOK)
	}

	if count := rl.GeneralLimiterCount(); count != 2 {
		t.Errorf("limiter count = %d, want 2", count)
	}
}

// 注文作成の制限がAPI全般の制限と独立に動作すること
func TestRateLimiter_OrderCreationMiddleware_IndependentOfGeneral(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig(1, 2))
	defer rl.Stop()

	general := rl.GeneralMiddleware()(okHandler())
	order := rl.OrderCreationMiddleware()(okHandler())

	if rec := doRequest(t, general, "10.0.0.1:1234"); rec.Code != http.StatusOK {
		t.Fatalf("general: status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec := doRequest(t, general, "10.0.0.1:1234"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("general should be exhausted, got %d", rec.Code)
	}

	// 同一クライアントでも注文作成のバーストは未消費
	for i := 0; i < 2; i++ {
		if rec := doRequest(t, order, "10.0.0.1:1234"); rec.Code != http.StatusOK {
			t.Fatalf("order request %d: status = %d, want %d", i, rec.Code, http.StatusOK)
		}
	}
	if rec := doRequest(t, order, "10.0.0.1:1234"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("order should be exhausted, got %d", rec.Code)
	}

	if count := rl.OrderLimiterCount(); count != 1 {
		t.Errorf("order limiter count = %d, want 1", count)
	}
}

func TestClientIPFromRequest(t *testing.T) {
	tests := []struct {
		remoteAddr string
		want       string
	}{
		{"10.0.0.1:1234", "10.0.0.1"},
		{"[::1]:8080", "::1"},
		{"no-port", "no-port"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = tt.remoteAddr
		if got := clientIPFromRequest(req); got != tt.want {
			t.Errorf("clientIPFromRequest(%q) = %q, want %q", tt.remoteAddr, got, tt.want)
		}
	}
}

func TestDefaultRateLimiterConfig(t *testing.T) {
	cfg := DefaultRateLimiterConfig()

	if cfg.GeneralBurst != 120 {
		t.Errorf("general burst = %d, want 120", cfg.GeneralBurst)
	}
	if cfg.OrderBurst != 30 {
		t.Errorf("order burst = %d, want 30", cfg.OrderBurst)
	}
	if cfg.GeneralRate != rate.Limit(2) {
		t.Errorf("general rate = %v, want 2", cfg.GeneralRate)
	}
	if cfg.OrderRate != rate.Limit(0.5) {
		t.Errorf("order rate = %v, want 0.5", cfg.OrderRate)
	}
}
