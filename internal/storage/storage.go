package storage

import (
	"fmt"
	"path/filepath"

	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/keyring"
	"github.com/julianstephens/habitflow/internal/logger"
)

// Open returns the credential store for the configured backend. "auto" prefers
// the OS keyring and falls back to a SQLite file in configDir.
func Open(backend constants.CredentialBackend, configDir string) (CredentialStore, error) {
	switch backend {
	case constants.BackendKeyring:
		if !keyring.IsAvailable() {
			return nil, keyring.ErrKeyringUnavailable
		}
		return NewKeyringStore(), nil
	case constants.BackendSQLite:
		return openSQLite(configDir)
	case constants.BackendMemory:
		return NewMemoryStore(""), nil
	case constants.BackendAuto, "":
		if keyring.IsAvailable() {
			return NewKeyringStore(), nil
		}
		logger.Info("OS keyring unavailable, using credential database", "dir", configDir)
		return openSQLite(configDir)
	default:
		return nil, fmt.Errorf("unknown credential backend %q", backend)
	}
}

func openSQLite(configDir string) (CredentialStore, error) {
	store := NewSQLiteStore(filepath.Join(configDir, constants.CredentialsDBName))
	if err := store.Init(); err != nil {
		return nil, err
	}
	return store, nil
}
