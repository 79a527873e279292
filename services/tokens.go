package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const verifyPurpose = "email-verify"

// CreateAccessToken issues the short-lived token used on requests.
func CreateAccessToken(userID uint, secret []byte, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(time.Hour * 1).Unix(),
	})
	return token.SignedString(secret)
}

// CreateRefreshToken issues the long-lived token used to mint new access
// tokens.
func CreateRefreshToken(userID uint, secret []byte, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"refresh": true,
		"exp":     now.Add(time.Hour * 24 * 7).Unix(),
	})
	return token.SignedString(secret)
}

// CreateVerificationToken issues the token embedded in the email
// verification link. It carries a purpose claim so an access token cannot
// be replayed against the verify endpoint.
func CreateVerificationToken(userID uint, secret []byte, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"purpose": verifyPurpose,
		"jti":     uuid.NewString(),
		"exp":     now.Add(time.Hour * 24).Unix(),
	})
	return token.SignedString(secret)
}

// ParseVerificationToken validates a verification token and returns the
// user id it was issued for.
func ParseVerificationToken(tokenString string, secret []byte) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, errors.New("invalid token")
	}
	if purpose, _ := claims["purpose"].(string); purpose != verifyPurpose {
		return 0, errors.New("invalid token purpose")
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errors.New("invalid token claims")
	}
	return uint(userID), nil
}
