package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret")

	token, expiresAt, err := tm.SignToken("user-123", time.Hour)
	if err != nil {
		t.Fatalf("SignToken failed: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatal("expiry should be in the future")
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("uid = %q, want %q", claims.UserID, "user-123")
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a").SignToken("user-123", time.Hour)
	if err != nil {
		t.Fatalf("SignToken failed: %v", err)
	}
	if _, err := NewTokenManager("secret-b").ParseToken(token); err == nil {
		t.Error("token signed with another secret must be rejected")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	tm := NewTokenManager("test-secret")
	token, _, err := tm.SignToken("user-123", -time.Minute)
	if err != nil {
		t.Fatalf("SignToken failed: %v", err)
	}
	if _, err := tm.ParseToken(token); err == nil {
		t.Error("expired token must be rejected")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret")
	if _, err := tm.ParseToken("not-a-jwt"); err == nil {
		t.Error("malformed token must be rejected")
	}
}
