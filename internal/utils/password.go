package utils

import (
	"fmt"

	"github.com/assacalos/easyconnect/internal/apperrors"
	"golang.org/x/crypto/bcrypt"
)

const (
	// MinPasswordLength is the shortest password accepted for a stored account.
	MinPasswordLength = 6
	// maxPasswordBytes is the bcrypt input limit; longer input is rejected rather than truncated.
	maxPasswordBytes = 72
)

// HashPassword validates an account password and returns its bcrypt hash.
func HashPassword(password string) (string, error) {
	switch {
	case len(password) < MinPasswordLength:
		return "", fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidation, MinPasswordLength)
	case len(password) > maxPasswordBytes:
		return "", fmt.Errorf("%w: password must be at most %d bytes", apperrors.ErrValidation, maxPasswordBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored hash.
// A malformed or empty hash never matches.
func VerifyPassword(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
