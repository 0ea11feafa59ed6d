package identity

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/trendora-io/storefront-backend/pkg/config"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// GuestUserID tags orders placed without an authenticated user.
const GuestUserID = "guest"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Claims is the typed view of a token minted by the external auth provider.
// This service only verifies; it never issues.
type Claims struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
	Role        string `json:"role"`
	jwt.RegisteredClaims
}

// User is the current-user value derived from verified claims, or the guest
// value when no credentials were presented.
type User struct {
	ID          string
	Email       string
	DisplayName string
	Role        string
}

// Guest returns the anonymous user value.
func Guest() User {
	return User{ID: GuestUserID, Role: RoleCustomer}
}

// IsGuest reports whether the user is unauthenticated.
func (u User) IsGuest() bool {
	return u.ID == "" || u.ID == GuestUserID
}

// IsAdmin reports whether the user carries the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ParseToken validates the JWT string against the provider secret and issuer
// and returns typed claims.
func ParseToken(cfg config.IdentityConfig, tokenString string) (*Claims, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("identity jwt secret is required")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.JWTSecret), nil
		},
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if strings.TrimSpace(claims.UserID) == "" {
		return nil, fmt.Errorf("token missing user id")
	}
	if claims.Role == "" {
		claims.Role = RoleCustomer
	}
	return claims, nil
}

// UserFromClaims maps verified claims onto the current-user value.
func UserFromClaims(claims *Claims) User {
	if claims == nil {
		return Guest()
	}
	return User{
		ID:          claims.UserID,
		Email:       claims.Email,
		DisplayName: claims.DisplayName,
		Role:        claims.Role,
	}
}
