package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/scott-daily/time-tracker-api/internal/auth"
)

func TestRateLimiter_BurstExhaustion(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(RateLimitConfig{Rate: 1, Burst: 3})
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.Allow("caller") {
			t.Fatalf("request %d within burst should be allowed", i)
		}
	}
	if rl.Allow("caller") {
		t.Error("request beyond burst should be denied")
	}
}

func TestRateLimiter_IndependentCallers(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(RateLimitConfig{Rate: 1, Burst: 1})
	defer rl.Stop()

	if !rl.Allow("alice") {
		t.Error("alice's first request should be allowed")
	}
	if !rl.Allow("bob") {
		t.Error("bob should have a separate bucket")
	}
	if rl.Allow("alice") {
		t.Error("alice's second request should be denied")
	}
}

func TestRateLimit_TooManyRequests(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(RateLimitConfig{Rate: 1, Burst: 1})
	defer rl.Stop()

	handler := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	req = req.WithContext(context.WithValue(req.Context(), CallerUIDKey, "user-1"))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("first request should pass, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", rr.Code)
	}
	if got := rr.Header().Get("Retry-After"); got == "" {
		t.Error("expected a Retry-After header")
	}
}

func TestRateLimit_AfterAuthKeysByCallerUID(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(RateLimitConfig{Rate: 1, Burst: 1})
	defer rl.Stop()

	verifier := &fakeVerifier{verifyFunc: func(_ context.Context, token string) (*auth.Claims, error) {
		return claimsFor(token), nil
	}}

	// Auth before RateLimit, matching the protected route chain. Two
	// callers behind the same address must not share a bucket.
	handler := Auth(verifier)(RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	send := func(uid string) int {
		req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("Authorization", "Bearer "+uid)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	if got := send("user-a"); got != http.StatusOK {
		t.Fatalf("first caller should pass, got %d", got)
	}
	if got := send("user-b"); got != http.StatusOK {
		t.Errorf("second caller should have a separate bucket, got %d", got)
	}
	if got := send("user-a"); got != http.StatusTooManyRequests {
		t.Errorf("first caller beyond burst should get 429, got %d", got)
	}
}

func TestRateLimit_FallsBackToRemoteAddr(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(RateLimitConfig{Rate: 1, Burst: 1})
	defer rl.Stop()

	handler := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("first request should pass, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("expected status 429 for same host, got %d", rr.Code)
	}
}
