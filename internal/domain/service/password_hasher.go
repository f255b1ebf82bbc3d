// Package service defines interfaces for stateless domain capabilities whose
// implementations live in infra (hashing, tokens, QR rendering, event export).
package service

// PasswordHasher abstracts the password hashing algorithm.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check reports whether password matches hash.
	Check(password, hash string) bool
}
