package token

import (
	"strings"
	"testing"
	"time"
)

func TestClientSigner(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		s := NewClientSigner("secret")
		tok := s.Generate("ORD-202608-0001", "+54 11 5555-1234")

		claims, ok := s.Verify(tok)
		if !ok {
			t.Fatalf("expected token to verify")
		}
		if claims.OrderNumber != "ORD-202608-0001" {
			t.Fatalf("unexpected order number: %q", claims.OrderNumber)
		}
		if claims.PhoneDigits != "541155551234" {
			t.Fatalf("expected digits only, got %q", claims.PhoneDigits)
		}
		if claims.IssuedAt.IsZero() {
			t.Fatalf("expected issue time")
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok := NewClientSigner("secret-a").Generate("ORD-202608-0001", "1234")
		if _, ok := NewClientSigner("secret-b").Verify(tok); ok {
			t.Fatalf("expected verification failure")
		}
	})

	t.Run("tampered payload", func(t *testing.T) {
		s := NewClientSigner("secret")
		tok := s.Generate("ORD-202608-0001", "1234")
		forged := s.Generate("ORD-202608-0002", "1234")

		// Keep the original signature, swap in another payload.
		origSig := tok[strings.Index(tok, ".")+1:]
		forgedPayload := forged[:strings.Index(forged, ".")]
		if _, ok := s.Verify(forgedPayload + "." + origSig); ok {
			t.Fatalf("expected verification failure")
		}
	})

	t.Run("garbage", func(t *testing.T) {
		s := NewClientSigner("secret")
		for _, tok := range []string{"", "no-dot", "!!!.deadbeef", "YWJj.deadbeef"} {
			if _, ok := s.Verify(tok); ok {
				t.Fatalf("expected failure for %q", tok)
			}
		}
	})

	t.Run("expires after 24h", func(t *testing.T) {
		s := NewClientSigner("secret")
		issued := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
		s.now = func() time.Time { return issued }
		tok := s.Generate("ORD-202608-0001", "1234")

		s.now = func() time.Time { return issued.Add(23 * time.Hour) }
		if _, ok := s.Verify(tok); !ok {
			t.Fatalf("expected token still valid at 23h")
		}

		s.now = func() time.Time { return issued.Add(25 * time.Hour) }
		if _, ok := s.Verify(tok); ok {
			t.Fatalf("expected token expired at 25h")
		}
	})
}

func TestSessionSigner(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		s := NewSessionSigner("secret")
		tok, err := s.Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !s.Validate(tok) {
			t.Fatalf("expected token to validate")
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok, err := NewSessionSigner("secret-a").Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if NewSessionSigner("secret-b").Validate(tok) {
			t.Fatalf("expected validation failure")
		}
	})

	t.Run("garbage", func(t *testing.T) {
		s := NewSessionSigner("secret")
		for _, tok := range []string{"", "no-dot", ".sig-only", "raw."} {
			if s.Validate(tok) {
				t.Fatalf("expected failure for %q", tok)
			}
		}
	})

	t.Run("unique per call", func(t *testing.T) {
		s := NewSessionSigner("secret")
		a, _ := s.Generate()
		b, _ := s.Generate()
		if a == b {
			t.Fatalf("expected distinct tokens")
		}
	})
}
