package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type SessionClaims struct {
	Id string
	*jwt.RegisteredClaims
}

func CreateToken(id string, secret string) (string, error) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &SessionClaims{
		Id: id,
		RegisteredClaims: &jwt.RegisteredClaims{
			Issuer:    "comicbay",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}).SignedString([]byte(secret))

	if err != nil {
		return "", fmt.Errorf("error signing session token: %v", err)
	}

	return token, nil
}

func ParseToken(token string, secret string) (*SessionClaims, error) {
	claims := &SessionClaims{RegisteredClaims: &jwt.RegisteredClaims{}}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("error parsing session token: %v", err)
	}

	if !parsed.Valid {
		return nil, fmt.Errorf("session token is not valid")
	}

	return claims, nil
}
