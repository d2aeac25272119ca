package kit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"CourseCatalog/pkg/kit"
)

func TestIPRateLimiter_CeilingPerIP(t *testing.T) {
	limiter := kit.NewIPRateLimiter(3, 60)

	h := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	status := func(remote string) int {
		r := httptest.NewRequest(http.MethodPost, "/courses/new", nil)
		r.RemoteAddr = remote
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w.Code
	}

	for i := 0; i < 3; i++ {
		if got := status("10.0.0.1:1234"); got != http.StatusOK {
			t.Fatalf("request %d: status=%d want=200", i+1, got)
		}
	}
	if got := status("10.0.0.1:1234"); got != http.StatusTooManyRequests {
		t.Fatalf("over limit: status=%d want=429", got)
	}

	// A different client is not affected.
	if got := status("10.0.0.2:1234"); got != http.StatusOK {
		t.Fatalf("other ip: status=%d want=200", got)
	}
}

func TestClientIP_PrefersForwardedFor(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")

	if got := kit.ClientIP(r); got != "203.0.113.9" {
		t.Fatalf("ClientIP=%q want=203.0.113.9", got)
	}
}
