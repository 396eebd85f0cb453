package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoEmail в токене нет email.
var ErrNoEmail = errors.New("token has no email claim")

// CustomClaims данные, которые несет токен.
type CustomClaims struct {
	Email                string `json:"email"`
	jwt.RegisteredClaims        // ExpiresAt, IssuedAt и пр.
}

// GenerateToken выпускает токен для email со временем жизни tokenTTL.
func (j *MakerImpl) GenerateToken(email string) (string, error) {
	now := time.Now()
	claims := CustomClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken проверяет подпись и срок действия токена и возвращает его claims.
// Принимаются только токены HS256 с непустым email.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNoEmail)
	}
	return claims, nil
}
