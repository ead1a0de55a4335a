package auth

import (
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTLMinutes = 1440 // 24h

// TokenManager issues and validates signed bearer tokens. The signing key is
// process-wide configuration loaded once at startup; rotating it invalidates
// every previously issued token.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a manager with the given symmetric key and TTL.
func NewTokenManager(secret string, ttlMinutes int) *TokenManager {
	if ttlMinutes <= 0 {
		ttlMinutes = defaultTokenTTLMinutes
	}
	return &TokenManager{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}
}

// Issue signs a token for the identity key with iat=now and exp=now+TTL.
func (tm *TokenManager) Issue(identityKey string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   identityKey,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ExtractSubject parses the token and returns its subject. Failures keep
// their specific kind: ErrMalformedToken, ErrInvalidSignature or
// ErrExpiredToken.
func (tm *TokenManager) ExtractSubject(tokenStr string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidSignature
		}
		return tm.secret, nil
	})
	if err != nil {
		return "", classifyTokenError(err)
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return "", ErrMalformedToken
	}
	if claims.ExpiresAt == nil {
		return "", ErrMalformedToken
	}
	return claims.Subject, nil
}

// IsValid reports whether the token carries the expected identity key
// (case-insensitive) and is unexpired. Parse, signature and expiry failures
// propagate with their specific kind so callers decide how to surface them.
func (tm *TokenManager) IsValid(tokenStr, expectedIdentityKey string) (bool, error) {
	subject, err := tm.ExtractSubject(tokenStr)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(subject, expectedIdentityKey), nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrInvalidSignature):
		return ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformedToken
	default:
		return ErrMalformedToken
	}
}
