package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"blog-service/internal/custom_errors"
	"blog-service/internal/model"
)

// TokenManager signs and verifies HS256 bearer tokens.
type TokenManager struct {
	secret    []byte
	expiresIn time.Duration
}

func NewTokenManager(secret string, expiresIn time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), expiresIn: expiresIn}
}

func (m *TokenManager) Generate(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"iat":     now.Unix(),
		"exp":     now.Add(m.expiresIn).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses the token and returns the user id it was issued for.
func (m *TokenManager) Verify(tokenStr string) (int64, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, custom_errors.ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, custom_errors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, custom_errors.ErrInvalidToken
	}

	rawID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, custom_errors.ErrInvalidToken
	}

	return int64(rawID), nil
}
