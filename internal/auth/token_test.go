package auth

import (
	"testing"
	"time"

	"github.com/craftportal/learning-service/internal/models"
)

func testUser() *models.User {
	return &models.User{
		ID:     7,
		Name:   "Jordan Vale",
		Email:  "jordan@example.com",
		Status: models.StatusActive,
		Roles: []models.UserRole{
			{UserID: 7, Role: models.RoleInstructor},
			{UserID: 7, Role: models.RoleUser},
		},
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, expiresAt, err := tm.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if time.Until(expiresAt) < 55*time.Minute {
		t.Errorf("expiry too soon: %v", expiresAt)
	}

	userID, claims, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if userID != 7 {
		t.Errorf("subject = %d, want 7", userID)
	}
	roles := models.NewRoleSet(claims.Roles...)
	if !roles.Has(models.RoleInstructor) || !roles.Has(models.RoleUser) {
		t.Errorf("claims roles = %v, want instructor+user", claims.Roles)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", time.Hour).Issue(testUser())
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := NewTokenManager("secret-b", time.Hour).Parse(token); err == nil {
		t.Error("Parse() accepted a token signed with a different secret")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	tm := &TokenManager{secret: []byte("test-secret"), ttl: -time.Minute}
	token, _, err := tm.Issue(testUser())
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := tm.Parse(token); err == nil {
		t.Error("Parse() accepted an expired token")
	}
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if err := ComparePassword(hash, "correct horse battery staple"); err != nil {
		t.Errorf("ComparePassword() rejected the right password: %v", err)
	}
	if err := ComparePassword(hash, "wrong"); err == nil {
		t.Error("ComparePassword() accepted the wrong password")
	}
}
