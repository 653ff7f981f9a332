package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/medfleet/backoffice/internal/models"
)

// TokenExpiry is the duration after which an access token expires.
const TokenExpiry = 12 * time.Hour

var (
	// ErrInvalidToken is returned for tokens that fail signature, method or
	// expiry checks. Callers get no further detail.
	ErrInvalidToken = errors.New("invalid token")
)

// TokenConfig holds the signing key and issuer for access tokens. It is
// built once at process start and passed to NewSigner/NewVerifier; nothing
// reads signing material from ambient global state.
type TokenConfig struct {
	// Key is the HMAC-SHA256 signing key.
	Key string

	// Issuer is the iss claim stamped on every token.
	Issuer string
}

// Claims are the access token claims. A token carries exactly four
// application claims: subject (user id), name (login), role and org.
type Claims struct {
	jwt.RegisteredClaims
	Name string `json:"name"`
	Role string `json:"role"`
	Org  string `json:"org"`
}

// Signer issues signed access tokens.
type Signer struct {
	key    []byte
	issuer string
}

// NewSigner creates a token signer. The signing key is required; the caller
// decides what to do when configuration is absent (see cmd/server).
func NewSigner(cfg TokenConfig) (*Signer, error) {
	if cfg.Key == "" {
		return nil, errors.New("token signing key not provided")
	}
	return &Signer{key: []byte(cfg.Key), issuer: cfg.Issuer}, nil
}

// Sign issues a token for the given account, valid for TokenExpiry from now.
func (s *Signer) Sign(userID uuid.UUID, login string, role models.Role, orgID uuid.UUID) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry)),
		},
		Name: login,
		Role: role.String(),
		Org:  orgID.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verifier validates access tokens and extracts their claims.
type Verifier struct {
	key []byte
}

// NewVerifier creates a token verifier sharing the signer's key material.
func NewVerifier(cfg TokenConfig) (*Verifier, error) {
	if cfg.Key == "" {
		return nil, errors.New("token signing key not provided")
	}
	return &Verifier{key: []byte(cfg.Key)}, nil
}

// Verify parses and validates a token string. It enforces the HS256 signing
// method and expiry; any failure surfaces as ErrInvalidToken.
func (v *Verifier) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return v.key, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
