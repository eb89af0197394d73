package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("not-the-api-key"))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestParseUnverifiedStandardClaims(t *testing.T) {
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	token := sign(t, jwt.MapClaims{
		"sub":   "42",
		"email": "rana@example.com",
		"roles": []string{"Employee", "Admin"},
		"exp":   exp.Unix(),
	})

	c, err := ParseUnverified(token)
	if err != nil {
		t.Fatalf("ParseUnverified: %v", err)
	}
	if c.Subject != "42" || c.Email != "rana@example.com" {
		t.Fatalf("claims = %+v", c)
	}
	if !c.HasRole("Admin") || !c.HasRole("Employee") || c.HasRole("Guest") {
		t.Fatalf("roles = %v", c.Roles)
	}
	if c.ExpiresAt == nil || !c.ExpiresAt.Equal(exp) {
		t.Fatalf("exp = %v", c.ExpiresAt)
	}
}

func TestParseUnverifiedIdentityClaims(t *testing.T) {
	token := sign(t, jwt.MapClaims{
		"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier": "abc",
		"http://schemas.microsoft.com/ws/2008/06/identity/claims/role":         "Admin",
	})

	c, err := ParseUnverified(token)
	if err != nil {
		t.Fatalf("ParseUnverified: %v", err)
	}
	if c.Subject != "abc" || !c.HasRole("Admin") || c.ExpiresAt != nil {
		t.Fatalf("claims = %+v", c)
	}
}

func TestParseUnverifiedRejectsGarbage(t *testing.T) {
	if _, err := ParseUnverified("not-a-token"); err == nil {
		t.Fatal("expected error")
	}
}
