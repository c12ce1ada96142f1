package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ledgerkeep/core/internal/domain"
)

// TokenTTL is how long an issued bearer token remains valid.
const TokenTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid or expired token")

// claims is the JWT payload carrying the fields needed to rebuild a
// domain.Principal without a database round trip on every request.
type claims struct {
	TenantID uuid.UUID   `json:"tenant_id"`
	Role     domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies bearer tokens with a single HMAC
// secret. One TokenIssuer is built at startup from config.JWTConfig.Secret and
// shared by the auth service and the bearer-auth middleware.
type TokenIssuer struct {
	secret []byte
}

// NewTokenIssuer builds a TokenIssuer over secret, which must be
// non-empty.
func NewTokenIssuer(secret string) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	return &TokenIssuer{secret: []byte(secret)}, nil
}

// Issue signs a token for userID/tenantID/role, expiring after TokenTTL.
func (i *TokenIssuer) Issue(userID, tenantID uuid.UUID, role domain.Role) (string, error) {
	now := time.Now()
	c := claims{
		TenantID: tenantID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the Principal it
// encodes. Any parse failure, signature mismatch, or expiry collapses
// to ErrInvalidToken so the middleware never leaks why a token failed.
func (i *TokenIssuer) Verify(tokenString string) (*domain.Principal, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &domain.Principal{
		TenantID: c.TenantID,
		UserID:   userID,
		Role:     c.Role,
	}, nil
}
