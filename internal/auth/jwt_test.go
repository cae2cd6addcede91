package auth

import (
	"testing"
	"time"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if token == "" {
		t.Fatal("Issue() = empty token")
	}

	userID, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if userID != "user-1" {
		t.Errorf("userID = %q, want %q", userID, "user-1")
	}
}

func TestTokenManager_Verify_WrongSecret(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	other := NewTokenManager("another-secret", time.Hour)

	token, err := m.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := other.Verify(token); err == nil {
		t.Error("Verify() error = nil, want signature error")
	}
}

func TestTokenManager_Verify_Expired(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute)

	token, err := m.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := m.Verify(token); err == nil {
		t.Error("Verify() error = nil, want expiration error")
	}
}

func TestTokenManager_Verify_Garbage(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	if _, err := m.Verify("not-a-token"); err == nil {
		t.Error("Verify() error = nil, want parse error")
	}
}
