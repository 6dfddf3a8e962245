package security

import (
	"errors"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// TokenAuth verifies bearer tokens issued by the external identity provider.
// This service never issues tokens itself.
var TokenAuth *jwtauth.JWTAuth

func Init(secret []byte) {
	TokenAuth = jwtauth.New("HS256", secret, nil)
}

// GetEmailFromClaims extracts the verified principal's email. A token whose
// payload lacks an email claim is treated as invalid.
func GetEmailFromClaims(claims jwt.MapClaims) (string, error) {
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", errors.New("email claim is missing or not a string")
	}
	return email, nil
}
