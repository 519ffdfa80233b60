package utils

import (
	"errors"
	"time"

	"github.com/Stevekk11/PersonalCloud/config"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	OwnerID  string `json:"owner_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateToken signs a bearer token for the given owner. Token issuance
// normally lives in the external identity provider; this mirrors its format
// for tooling and tests.
func GenerateToken(ownerID string, username string) (string, error) {
	cfg := config.AppConfig.JWT
	claims := Claims{
		OwnerID:  ownerID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(cfg.ExpireHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

func ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.AppConfig.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.OwnerID == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
