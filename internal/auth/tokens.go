// Package auth provides password hashing, JWT issuance and verification,
// and the request guards that resolve a token to a user id.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "bookmarkd"

// Token kinds carried in the token_use claim. A refresh token can only mint
// new access tokens; an access token can only authorize API calls.
const (
	useAccess  = "access"
	useRefresh = "refresh"
)

// ErrInvalidToken is returned for any token that fails verification:
// bad signature, expired, wrong issuer, or wrong token_use.
var ErrInvalidToken = errors.New("auth: invalid token")

// TokenService issues and verifies the access/refresh token pair.
// It holds the HMAC secret used to sign and verify; the same secret must be
// used for both.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenService creates a TokenService with the given secret and lifetimes.
// The secret should be at least 32 bytes of random data in production.
func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}, nil
}

// claims is the JWT payload. Subject carries the decimal user id; TokenUse
// distinguishes access from refresh tokens.
type claims struct {
	TokenUse string `json:"token_use"`
	jwt.RegisteredClaims
}

// IssueAccess creates a short-lived access token for userID.
func (s *TokenService) IssueAccess(userID int64) (string, error) {
	return s.issue(userID, useAccess, s.accessTTL)
}

// IssueRefresh creates a long-lived refresh token for userID.
func (s *TokenService) IssueRefresh(userID int64) (string, error) {
	return s.issue(userID, useRefresh, s.refreshTTL)
}

func (s *TokenService) issue(userID int64, use string, ttl time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		TokenUse: use,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}
	return signed, nil
}

// Verify parses and verifies a JWT string and returns the user id it is
// bound to. wantRefresh selects which half of the pair is acceptable:
// a refresh token where an access token is expected fails, and vice versa.
//
// The signing method is pinned to HS256 so a token with alg tampered to
// "none" (or an asymmetric method) is rejected outright.
func (s *TokenService) Verify(tokenStr string, wantRefresh bool) (int64, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return 0, ErrInvalidToken
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}

	want := useAccess
	if wantRefresh {
		want = useRefresh
	}
	if c.TokenUse != want {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, ErrInvalidToken
	}
	return userID, nil
}
