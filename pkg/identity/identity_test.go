package identity

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/trendora-io/storefront-backend/pkg/config"
)

func testConfig() config.IdentityConfig {
	return config.IdentityConfig{JWTSecret: "test-secret", Issuer: "trendora-auth"}
}

func mintToken(t *testing.T, cfg config.IdentityConfig, mutate func(*Claims)) string {
	t.Helper()

	claims := &Claims{
		UserID:      "user-1",
		Email:       "jane@example.com",
		DisplayName: "Jane Doe",
		Role:        RoleCustomer,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	if mutate != nil {
		mutate(claims)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return signed
}

func TestParseTokenRoundTrip(t *testing.T) {
	cfg := testConfig()
	token := mintToken(t, cfg, nil)

	claims, err := ParseToken(cfg, token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "jane@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	user := UserFromClaims(claims)
	if user.IsGuest() {
		t.Fatal("expected authenticated user")
	}
	if user.IsAdmin() {
		t.Fatal("customer should not be admin")
	}
}

func TestParseTokenRejectsWrongIssuer(t *testing.T) {
	cfg := testConfig()
	token := mintToken(t, cfg, func(c *Claims) {
		c.Issuer = "someone-else"
	})

	if _, err := ParseToken(cfg, token); err == nil {
		t.Fatal("expected issuer mismatch error")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	cfg := testConfig()
	token := mintToken(t, cfg, func(c *Claims) {
		c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	})

	if _, err := ParseToken(cfg, token); err == nil {
		t.Fatal("expected expiry error")
	}
}

func TestParseTokenRejectsMissingUserID(t *testing.T) {
	cfg := testConfig()
	token := mintToken(t, cfg, func(c *Claims) {
		c.UserID = ""
	})

	if _, err := ParseToken(cfg, token); err == nil {
		t.Fatal("expected missing user id error")
	}
}

func TestGuestValue(t *testing.T) {
	g := Guest()
	if !g.IsGuest() {
		t.Fatal("guest value should report guest")
	}
	if g.Role != RoleCustomer {
		t.Fatalf("guest role should default to customer, got %q", g.Role)
	}
}
