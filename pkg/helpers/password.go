package helpers

import (
	"crypto/rand"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// unusablePrefix marks a hash that can never match a password.
const unusablePrefix = "!"

// HashPassword hashes the plain text password using bcrypt
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// UnusablePassword returns a random marker stored for accounts created without a password.
func UnusablePassword() string {
	b := make([]byte, 20)
	_, _ = rand.Read(b)
	return unusablePrefix + hex.EncodeToString(b)
}

// CompareHashAndPassword compares a bcrypt hash with a plain password
func CompareHashAndPassword(hash string, plain string) bool {
	if plain == "" || len(hash) == 0 || hash[:1] == unusablePrefix {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
