package utils

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// MatchSecret reports whether provided matches the configured secret. A
// bcrypt hash takes precedence over the plain value. An empty credential
// or an unconfigured secret never matches.
func MatchSecret(provided, plain, hash string) bool {
	if provided == "" {
		return false
	}
	if hash != "" {
		return CheckPasswordHash(provided, hash)
	}
	if plain == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(plain)) == 1
}
