package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	accessTTL  = 15 * time.Minute
	refreshTTL = 30 * 24 * time.Hour
)

// Claims carried by both access and refresh tokens. TokenType keeps a
// refresh token from being replayed as an access token.
type Claims struct {
	UserID    string `json:"uid"`
	Role      string `json:"role"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

func secret() []byte {
	s := os.Getenv("JWT_SECRET")
	if s == "" {
		s = "dev-secret-change-me"
	}
	return []byte(s)
}

// IssueTokens returns a fresh access/refresh pair for a user.
func IssueTokens(userID, role string) (access string, refresh string, err error) {
	access, err = sign(userID, role, tokenTypeAccess, accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = sign(userID, role, tokenTypeRefresh, refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func sign(userID, role, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		Role:      role,
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
}

// ParseAccess validates an access token and returns its claims.
func ParseAccess(raw string) (*Claims, error) {
	return parse(raw, tokenTypeAccess)
}

// RefreshAccess validates a refresh token and issues a new access token.
// This backs the client's one-shot 401 retry.
func RefreshAccess(raw string) (string, error) {
	claims, err := parse(raw, tokenTypeRefresh)
	if err != nil {
		return "", err
	}
	return sign(claims.UserID, claims.Role, tokenTypeAccess, accessTTL)
}

func parse(raw, wantType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret(), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.TokenType != wantType {
		return nil, fmt.Errorf("wrong token type %q", claims.TokenType)
	}
	return claims, nil
}
