package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a salted bcrypt digest of the given password.
// The raw password is never logged or stored.
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword reports whether password matches the stored bcrypt digest.
// A malformed digest counts as a mismatch, never an error.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
