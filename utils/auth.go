package utils

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification for the identity collaborator. Both the HTTP
// controllers and the socket handshake resolve a credential to a userId
// through VerifyToken; token issuance itself lives in the auth backend.

var (
	ErrNoToken      = errors.New("no token provided")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the JWT payload issued by the auth backend
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// VerifyToken resolves a bearer token to the userId it was issued for
func VerifyToken(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrNoToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}

// GenerateToken issues a signed token for a userId. The auth backend is
// the normal issuer; this is used by tooling and tests.
func GenerateToken(userID string, ttl time.Duration) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
		UserID: userID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// UserIDFromRequest authenticates an HTTP request via its bearer token
func UserIDFromRequest(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", ErrNoToken
	}
	return VerifyToken(strings.TrimPrefix(authHeader, "Bearer "))
}
