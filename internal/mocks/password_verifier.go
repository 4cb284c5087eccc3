package mocks

import "errors"

// ErrPasswordMismatch is returned by the default Compare implementation
// when the plaintext does not match the stored mock hash.
var ErrPasswordMismatch = errors.New("password does not match")

// MockPasswordVerifier implements auth.PasswordVerifier and
// auth.PasswordHasher without the cost of real bcrypt. The default
// behavior treats a hash as matching when it equals "hashed:" plus the
// plaintext.
type MockPasswordVerifier struct {
	CompareFn func(hashedPassword, password string) error
	HashFn    func(password string) (string, error)

	CompareError error
	HashError    error
}

const mockHashPrefix = "hashed:"

func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.CompareError != nil {
		return m.CompareError
	}
	if hashedPassword != mockHashPrefix+password {
		return ErrPasswordMismatch
	}
	return nil
}

func (m *MockPasswordVerifier) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	if m.HashError != nil {
		return "", m.HashError
	}
	return mockHashPrefix + password, nil
}
