package storage

import (
	"errors"

	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/keyring"
	"github.com/julianstephens/habitflow/internal/logger"
)

// KeyringStore keeps the token in the OS keyring
type KeyringStore struct{}

func NewKeyringStore() *KeyringStore {
	return &KeyringStore{}
}

func (s *KeyringStore) Get() (string, bool) {
	token, err := keyring.GetToken()
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			logger.Warn("Reading token from keyring failed", "error", err)
		}
		return "", false
	}
	return token, token != ""
}

func (s *KeyringStore) Set(token string) {
	if token == "" {
		if err := keyring.DeleteToken(); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			logger.Warn("Removing token from keyring failed", "error", err)
		}
		return
	}
	if err := keyring.SetToken(token); err != nil {
		logger.Error("Storing token in keyring failed", "error", err)
	}
}

func (s *KeyringStore) Name() string {
	return string(constants.BackendKeyring)
}
