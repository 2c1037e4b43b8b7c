package util

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/roamly/vacations-api/internal/domain"
)

func TestJWTGenerateAndParse(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	userID := uuid.New()

	token, expiresAt, err := manager.Generate(userID, "trip@example.com", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatal("expected expiry in the future")
	}

	claims, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user id %s, got %s", userID, claims.UserID)
	}
	if claims.Email != "trip@example.com" {
		t.Fatalf("unexpected email claim %q", claims.Email)
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role claim %q", claims.Role)
	}
}

func TestJWTParseRejectsForeignSecret(t *testing.T) {
	token, _, err := NewJWTManager("secret-a", time.Hour).Generate(uuid.New(), "a@example.com", domain.RoleUser)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if _, err := NewJWTManager("secret-b", time.Hour).Parse(token); err == nil {
		t.Fatal("expected parse to fail for token signed with a different secret")
	}
}

func TestJWTParseRejectsExpired(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)
	token, _, err := manager.Generate(uuid.New(), "late@example.com", domain.RoleUser)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if _, err := manager.Parse(token); err == nil {
		t.Fatal("expected parse to fail for expired token")
	}
}
