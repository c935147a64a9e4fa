package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/logger"
)

const credentialsSchema = `CREATE TABLE IF NOT EXISTS credentials (
	name  TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// SQLiteStore keeps the token as a single named record in a local SQLite file.
// It is the fallback when no OS keyring is available.
type SQLiteStore struct {
	path string
	mu   sync.Mutex
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

// Init creates the database file and schema if needed
func (s *SQLiteStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open()
}

func (s *SQLiteStore) open() error {
	if s.db != nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(credentialsSchema); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to create credentials table: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.open(); err != nil {
		logger.Warn("Credential database unavailable", "path", s.path, "error", err)
		return "", false
	}

	var token string
	err := s.db.QueryRow("SELECT value FROM credentials WHERE name = ?", constants.CredentialName).Scan(&token)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.Warn("Reading token from credential database failed", "error", err)
		}
		return "", false
	}
	return token, token != ""
}

func (s *SQLiteStore) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.open(); err != nil {
		logger.Error("Credential database unavailable", "path", s.path, "error", err)
		return
	}
	if err := s.write(token); err != nil {
		logger.Error("Writing token to credential database failed", "error", err)
	}
}

// write replaces the record inside a transaction so it is never partially written
func (s *SQLiteStore) write(token string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM credentials WHERE name = ?", constants.CredentialName); err != nil {
		return err
	}
	if token != "" {
		if _, err := tx.Exec("INSERT INTO credentials (name, value) VALUES (?, ?)", constants.CredentialName, token); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Name() string {
	return string(constants.BackendSQLite)
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
