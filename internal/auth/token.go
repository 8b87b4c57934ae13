package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Kind selects which token family to issue or verify. The value doubles as
// the subject claim so a token of one kind cannot pass as the other.
type Kind string

const (
	AccessToken  Kind = "accessToken"
	RefreshToken Kind = "refreshToken"
)

// Verification failures. ErrExpired means the signature checked out and only
// the expiry failed; ErrInvalid covers bad signatures, malformed tokens, and
// kind mismatches.
var (
	ErrExpired = errors.New("token expired")
	ErrInvalid = errors.New("token invalid")
)

// Claims is the payload carried by every issued token.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies signed tokens. Access and refresh tokens
// use separate secrets and lifetimes.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenManager creates a manager with per-kind secrets and lifetimes.
func NewTokenManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// Issue mints a signed token of the given kind for the user. It is a pure
// computation; persisting refresh tokens is the caller's job.
func (t *TokenManager) Issue(kind Kind, userID string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			// Unique ID per issuance: two tokens for the same user in the
			// same second must still differ.
			ID:        uuid.NewString(),
			Subject:   string(kind),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl(kind))),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret(kind))
}

// Verify checks the token's signature against the kind's secret and its
// expiry, returning the claims on success.
func (t *TokenManager) Verify(kind Kind, tokenString string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return t.secret(kind), nil
	})
	if err != nil {
		// jwt/v5 only validates claims after the signature checks out,
		// so an expiry error implies a genuine token.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpired
		}
		return Claims{}, ErrInvalid
	}
	if !token.Valid || claims.Subject != string(kind) {
		return Claims{}, ErrInvalid
	}
	return claims, nil
}

func (t *TokenManager) secret(kind Kind) []byte {
	if kind == RefreshToken {
		return t.refreshSecret
	}
	return t.accessSecret
}

func (t *TokenManager) ttl(kind Kind) time.Duration {
	if kind == RefreshToken {
		return t.refreshTTL
	}
	return t.accessTTL
}

// RefreshTTL exposes the refresh token lifetime, used for the cookie max-age.
func (t *TokenManager) RefreshTTL() time.Duration {
	return t.refreshTTL
}
