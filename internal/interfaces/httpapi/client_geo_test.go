package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolveClientIP(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/v1/matches", nil)
	req.RemoteAddr = "10.0.0.7:5123"
	if got := resolveClientIP(req); got != "10.0.0.7" {
		t.Fatalf("expected socket address, got %q", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := resolveClientIP(req); got != "203.0.113.9" {
		t.Fatalf("expected first forwarded address, got %q", got)
	}
}

func TestResolveCountryCode(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/v1/matches", nil)
	if got := resolveCountryCode(req); got != "ZZ" {
		t.Fatalf("expected ZZ without headers, got %q", got)
	}
	req.Header.Set("CF-IPCountry", "id")
	if got := resolveCountryCode(req); got != "ID" {
		t.Fatalf("expected ID, got %q", got)
	}
	req.Header.Set("Fly-Client-Country", "G8")
	if got := resolveCountryCode(req); got != "ID" {
		t.Fatalf("expected invalid code skipped, got %q", got)
	}
}
