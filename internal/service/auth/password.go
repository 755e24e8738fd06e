package auth

import "golang.org/x/crypto/bcrypt"

// PasswordVerifier compares a stored hash against a plaintext candidate.
// Hashing happens in the user store on write; the verifier only checks.
type PasswordVerifier interface {
	// Compare returns nil when the plaintext matches the hash.
	Compare(hashedPassword, password string) error
}

// BcryptVerifier implements PasswordVerifier using bcrypt.
type BcryptVerifier struct{}

// NewBcryptVerifier creates a new BcryptVerifier.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{}
}

// Compare implements PasswordVerifier using bcrypt.
func (v *BcryptVerifier) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
