package mocks

import (
	"errors"
	"strings"
)

const mockHashPrefix = "mockhash:"

// MockPasswordHasher implements auth.PasswordHasher with a reversible,
// cheap scheme so tests do not pay for bcrypt.
type MockPasswordHasher struct {
	HashFn   func(password string) (string, error)
	VerifyFn func(password, credential string) bool

	// HashCalls and VerifyCalls count invocations.
	HashCalls   int
	VerifyCalls int
}

// Hash implements auth.PasswordHasher
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	m.HashCalls++
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	return mockHashPrefix + reverse(password), nil
}

// Verify implements auth.PasswordHasher
func (m *MockPasswordHasher) Verify(password, credential string) bool {
	m.VerifyCalls++
	if m.VerifyFn != nil {
		return m.VerifyFn(password, credential)
	}
	stored, ok := strings.CutPrefix(credential, mockHashPrefix)
	return ok && stored == reverse(password)
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}
