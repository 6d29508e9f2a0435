package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// OwnerSubject is the only principal the service knows about.
const OwnerSubject = "owner"

const tokenTTL = 30 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

func GenerateToken(secret []byte, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   OwnerSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

// ParseToken returns the token subject.
func ParseToken(secret []byte, tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject != OwnerSubject {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
