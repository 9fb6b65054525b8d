package security

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken("secret", "alice@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := ParseToken(token, "secret", ScopeAccess)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Subject != "alice@example.com" {
		t.Fatalf("unexpected subject %q", claims.Subject)
	}
	if claims.Scope != ScopeAccess {
		t.Fatalf("unexpected scope %q", claims.Scope)
	}
}

func TestParseTokenRejectsWrongScope(t *testing.T) {
	token, err := GenerateRefreshToken("secret", "alice@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	if _, err := ParseToken(token, "secret", ScopeAccess); err == nil {
		t.Fatalf("refresh token must not pass as access token")
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken("secret", "alice@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := ParseToken(token, "other", ScopeAccess); err == nil {
		t.Fatalf("token must not validate with the wrong secret")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := GenerateAccessToken("secret", "alice@example.com", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := ParseToken(token, "secret", ScopeAccess); err == nil {
		t.Fatalf("expired token must not validate")
	}
}

func TestGeneratedTokensAreUnique(t *testing.T) {
	a, err := GenerateRefreshToken("secret", "alice@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	b, err := GenerateRefreshToken("secret", "alice@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	if a == b {
		t.Fatalf("tokens issued back to back must differ")
	}
}
