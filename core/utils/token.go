package utils

import (
	"fmt"
	"strings"
	"time"

	"metra-api/core/config"
	"metra-api/core/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TokenClaims are the JWT claims carried by access and refresh tokens.
type TokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Scope  string    `json:"scope"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed JWT for the given user and scope.
func GenerateToken(userID uuid.UUID, scope string, ttl time.Duration) (string, error) {
	cfg, ok := config.GetSafe()
	if !ok {
		return "", fmt.Errorf("config not loaded")
	}

	now := time.Now()
	claims := &TokenClaims{
		UserID: userID,
		Scope:  scope,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   userID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ValidateAndParseToken verifies the signature and expiry and returns claims.
func ValidateAndParseToken(tokenString string) (*TokenClaims, error) {
	cfg, ok := config.GetSafe()
	if !ok {
		return nil, fmt.Errorf("config not loaded")
	}

	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// GetTokenFromHeader extracts the bearer token from the Authorization header.
func GetTokenFromHeader(c echo.Context) (string, *errors.AppError) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", errors.NewAppError(errors.ErrMissingAuthorizationHeader, "missing authorization header", nil)
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.NewAppError(errors.ErrInvalidTokenFormat, "authorization header must be a bearer token", nil)
	}
	return parts[1], nil
}
