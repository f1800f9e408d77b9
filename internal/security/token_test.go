package security

import (
	"testing"
	"time"
)

func newTestIssuer() *TokenIssuer {
	return NewTokenIssuer("test-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestIssueAccess_RoundTrip(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer()

	tok, err := issuer.IssueAccess("user-1")
	if err != nil {
		t.Fatalf("IssueAccess error: %v", err)
	}

	claims := issuer.Decode(tok)
	if claims == nil {
		t.Fatal("Decode returned nil for a freshly issued token")
	}
	if claims.TokenType != TokenTypeAccess {
		t.Fatalf("token type: got %q want %q", claims.TokenType, TokenTypeAccess)
	}
	if claims.Subject != "user-1" {
		t.Fatalf("subject: got %q want %q", claims.Subject, "user-1")
	}
}

func TestIssueRefresh_RoundTrip(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer()

	tok, err := issuer.IssueRefresh("user-2")
	if err != nil {
		t.Fatalf("IssueRefresh error: %v", err)
	}

	claims := issuer.Decode(tok)
	if claims == nil {
		t.Fatal("Decode returned nil for a freshly issued token")
	}
	if claims.TokenType != TokenTypeRefresh {
		t.Fatalf("token type: got %q want %q", claims.TokenType, TokenTypeRefresh)
	}
	if claims.Subject != "user-2" {
		t.Fatalf("subject: got %q want %q", claims.Subject, "user-2")
	}
}

func TestDecode_Expired(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("test-secret", -1*time.Second, -1*time.Second)

	tok, err := issuer.IssueAccess("user-3")
	if err != nil {
		t.Fatalf("IssueAccess error: %v", err)
	}

	if claims := issuer.Decode(tok); claims != nil {
		t.Fatalf("expected nil claims for expired token, got %+v", claims)
	}
}

func TestDecode_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := newTestIssuer().IssueAccess("user-4")
	if err != nil {
		t.Fatalf("IssueAccess error: %v", err)
	}

	other := NewTokenIssuer("other-secret", 15*time.Minute, time.Hour)
	if claims := other.Decode(tok); claims != nil {
		t.Fatalf("expected nil claims for wrong secret, got %+v", claims)
	}
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	if claims := newTestIssuer().Decode("not.a.jwt"); claims != nil {
		t.Fatalf("expected nil claims for malformed token, got %+v", claims)
	}
}
