// Package auth issues and validates the HS256 access tokens used by the
// HTTP API. Claims carry the user ID plus the profile role so admin checks
// need no extra database round trip.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/trackvers/trackvers/internal/common"
)

// Claims extends the registered claim set with the user identity and role.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
	Role   string
}

func GenerateToken(userID, role string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID: userID,
		Role:   role,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken returns the user ID and role carried by tokenString, or
// common.ErrInvalidToken when the signature or shape is wrong.
func ParseToken(tokenString string, secretKey []byte) (string, string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", "", err
	}

	if !token.Valid {
		return "", "", common.ErrInvalidToken
	}

	return claims.UserID, claims.Role, nil
}
