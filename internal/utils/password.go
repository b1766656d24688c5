package utils

import (
	errs "github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/errors"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a login password with bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// HashPIN hashes a 4-digit transaction PIN. PINs use the same bcrypt
// treatment as passwords; the short length is enforced at registration.
func HashPIN(pin string) (string, error) {
	return HashPassword(pin)
}

// VerifyPIN checks a plaintext PIN against the stored hash and returns the
// domain error consumed by every money-moving operation.
func VerifyPIN(pinHash, pin string) error {
	if pinHash == "" || bcrypt.CompareHashAndPassword([]byte(pinHash), []byte(pin)) != nil {
		return errs.ErrInvalidPin
	}
	return nil
}
