package auth

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/rachelSwimmer/StoreApi/pkg/domain/model"
)

var _ model.PasswordManager = &BcryptPasswordManager{}

type BcryptPasswordManager struct {
	cost int
}

func NewBcryptPasswordManager() *BcryptPasswordManager {
	return &BcryptPasswordManager{cost: bcrypt.DefaultCost}
}

func (m *BcryptPasswordManager) Hash(plainTextPassword string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), m.cost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(hash), nil
}

func (m *BcryptPasswordManager) Check(hashedPassword, plainTextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainTextPassword))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "check password")
	}
	return true, nil
}
