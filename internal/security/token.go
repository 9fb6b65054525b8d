package security

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token scopes. The identity resolver only accepts ScopeAccess; refresh and
// email confirmation flows check for their own scope.
const (
	ScopeAccess  = "access_token"
	ScopeRefresh = "refresh_token"
	ScopeEmail   = "email_token"
)

type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

func generateToken(secret string, email string, scope string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

func GenerateAccessToken(secret string, email string, ttl time.Duration) (string, error) {
	return generateToken(secret, email, ScopeAccess, ttl)
}

func GenerateRefreshToken(secret string, email string, ttl time.Duration) (string, error) {
	return generateToken(secret, email, ScopeRefresh, ttl)
}

func GenerateEmailToken(secret string, email string, ttl time.Duration) (string, error) {
	return generateToken(secret, email, ScopeEmail, ttl)
}

// ParseToken validates the signature and expiry and requires the given scope
// claim. The subject is the user's email.
func ParseToken(tokenStr string, secret string, scope string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Scope != scope {
		return nil, fmt.Errorf("invalid token scope %q", claims.Scope)
	}
	return claims, nil
}

// HashToken is used to store refresh tokens at rest without keeping the
// token itself.
func HashToken(token string) []byte {
	sum := sha256.Sum256([]byte(token))
	return sum[:]
}
