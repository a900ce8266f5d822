package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"toolshare/config"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrSecretNotSet   = errors.New("token secret not configured")
	ErrWrongTokenType = errors.New("wrong token type")
)

// Claims is the payload of both token kinds.
type Claims struct {
	UserID    string `json:"userId"`
	Role      string `json:"role,omitempty"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

func secretFor(tokenType string) ([]byte, error) {
	secret := config.AppConfig.JWTSecret
	if tokenType == TokenTypeRefresh {
		secret = config.AppConfig.JWTRefreshSecret
	}
	if secret == "" {
		return nil, ErrSecretNotSet
	}
	return []byte(secret), nil
}

func generateToken(userID, role, tokenType string, ttl time.Duration) (string, error) {
	secret, err := secretFor(tokenType)
	if err != nil {
		return "", err
	}
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// GenerateAccessToken issues the long-lived bearer token used on every request.
func GenerateAccessToken(userID, role string) (string, error) {
	return generateToken(userID, role, TokenTypeAccess, config.AppConfig.AccessTokenTTL)
}

// GenerateRefreshToken issues a token that can only be exchanged for a new pair.
func GenerateRefreshToken(userID string) (string, error) {
	return generateToken(userID, "", TokenTypeRefresh, config.AppConfig.RefreshTokenTTL)
}

func parseToken(tokenString, tokenType string) (*Claims, error) {
	secret, err := secretFor(tokenType)
	if err != nil {
		return nil, err
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != tokenType {
		return nil, ErrWrongTokenType
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ParseAccessToken validates an access token and returns its claims.
func ParseAccessToken(tokenString string) (*Claims, error) {
	return parseToken(tokenString, TokenTypeAccess)
}

// ParseRefreshToken validates a refresh token and returns its claims.
func ParseRefreshToken(tokenString string) (*Claims, error) {
	return parseToken(tokenString, TokenTypeRefresh)
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// RemainingTTL returns how long the token stays valid, or zero if it has no expiry.
func (c *Claims) RemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	if d := time.Until(c.ExpiresAt.Time); d > 0 {
		return d
	}
	return 0
}
