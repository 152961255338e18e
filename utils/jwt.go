package utils

import (
	"errors"
	"fmt"
	"time"

	"riverwood/config"

	"github.com/golang-jwt/jwt"
)

func signingKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		// Dev fallback; production deployments must set JWT_SECRET.
		secret = "riverwood-dev"
	}
	return []byte(secret)
}

// GenerateToken issues an HS256 token for the given subject and email,
// expiring after the given duration.
func GenerateToken(subject, email string, duration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   subject,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(duration).Unix(),
	})
	return token.SignedString(signingKey())
}

// ExtractIDFromToken verifies the token and returns its subject claim.
func ExtractIDFromToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return signingKey(), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", errors.New("token has no subject")
	}
	return sub, nil
}
