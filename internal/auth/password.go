package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether plain matches the stored credential. Besides
// bcrypt it accepts the werkzeug pbkdf2/scrypt hashes found in older data files.
func VerifyPassword(hashed, plain string) bool {
	if isWerkzeugHash(hashed) {
		return verifyWerkzeug(hashed, plain)
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

func isWerkzeugHash(hashed string) bool {
	return strings.HasPrefix(hashed, "pbkdf2:") || strings.HasPrefix(hashed, "scrypt:")
}
