package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost stays at the library default; raise it here if hardware
// allows without pushing login latency past ~100ms.
const bcryptCost = bcrypt.DefaultCost

var ErrEmptyPassword = errors.New("password must not be empty")

func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword returns nil when password matches hash.
func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
