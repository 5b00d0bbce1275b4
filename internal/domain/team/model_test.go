package team

import "testing"

func TestPlaceholderLogo(t *testing.T) {
	t.Parallel()

	if got := PlaceholderLogo("Arsenal"); got != "https://via.placeholder.com/50?text=A" {
		t.Fatalf("unexpected placeholder %q", got)
	}
	if got := PlaceholderLogo(""); got != "https://via.placeholder.com/50?text=%3F" {
		t.Fatalf("unexpected empty-name placeholder %q", got)
	}
}

func TestLogoOr(t *testing.T) {
	t.Parallel()

	if got := LogoOr(" ", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := LogoOr("https://x/logo.png", "fallback"); got != "https://x/logo.png" {
		t.Fatalf("expected logo, got %q", got)
	}
}
