package utils

import (
	"errors"
	"time"

	"festoria/config"
	"festoria/models"

	"github.com/golang-jwt/jwt"
)

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "festoria-dev"
	}
	return []byte(secret)
}

// GenerateToken creates a signed JWT token for a marketplace principal. The
// role claim distinguishes clients from providers.
func GenerateToken(subject string, role models.Role, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": string(role),
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ExtractActorFromToken resolves the acting identity and role from a valid
// token string.
func ExtractActorFromToken(tokenString string) (models.Actor, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return models.Actor{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.Actor{}, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return models.Actor{}, errors.New("token does not contain a valid 'sub' claim")
	}
	roleClaim, ok := claims["role"].(string)
	if !ok {
		return models.Actor{}, errors.New("token does not contain a valid 'role' claim")
	}

	role := models.Role(roleClaim)
	if role != models.RoleClient && role != models.RoleProvider {
		return models.Actor{}, errors.New("unsupported role claim")
	}
	return models.Actor{ID: sub, Role: role}, nil
}
