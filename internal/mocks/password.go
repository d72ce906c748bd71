package mocks

import (
	"github.com/worthtrust/market-api/internal/service/auth"
)

// MockPasswordHasher implements auth.PasswordHasher for testing.
// The default implementation prefixes the plaintext so tests can verify
// the hash without paying bcrypt cost.
type MockPasswordHasher struct {
	HashFn    func(password string) (string, error)
	HashError error
}

// Ensure MockPasswordHasher implements auth.PasswordHasher
var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements the PasswordHasher interface
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}

	if m.HashError != nil {
		return "", m.HashError
	}

	return "hashed:" + password, nil
}

// MockPasswordVerifier implements auth.PasswordVerifier for testing.
// The default implementation accepts hashes produced by MockPasswordHasher.
type MockPasswordVerifier struct {
	CompareFn    func(hashedPassword, password string) error
	CompareError error
}

// Ensure MockPasswordVerifier implements auth.PasswordVerifier
var _ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)

// Compare implements the PasswordVerifier interface
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}

	if m.CompareError != nil {
		return m.CompareError
	}

	if hashedPassword != "hashed:"+password {
		return auth.ErrInvalidCredentials
	}
	return nil
}
