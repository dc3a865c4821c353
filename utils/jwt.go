package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"rustico-backend/apperr"
	"rustico-backend/models"
)

// Claims is the token payload: user id (sub), username and role.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	return []byte(EnvOrDefault("JWT_SECRET", "dev-secret-change-me"))
}

func tokenLifetime() time.Duration {
	if d, err := time.ParseDuration(EnvOrDefault("JWT_EXPIRES_IN", "24h")); err == nil && d > 0 {
		return d
	}
	return 24 * time.Hour
}

func SignToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: user.Username,
		Role:     string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime())),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
}

func VerifyToken(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: invalid token", apperr.ErrUnauthorized)
	}
	return claims, nil
}
