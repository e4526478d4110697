package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"penpals_server/models"
)

// FileStore persists the database as a single JSON file. Writes go through a
// temp file plus rename so a crash mid-write never leaves a torn document.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Load(_ context.Context) (*models.Database, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.NewDatabase(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read database file '%s': %w", s.Path, err)
	}

	db := models.NewDatabase()
	if err := json.Unmarshal(data, db); err != nil {
		return nil, fmt.Errorf("failed to parse database file '%s': %w", s.Path, err)
	}
	db.Normalize()
	return db, nil
}

func (s *FileStore) Save(_ context.Context, db *models.Database) error {
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal database: %w", err)
	}

	tmp := s.Path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write database file: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("failed to replace database file: %w", err)
	}
	return nil
}
