// Package storage persists uploaded attachment files on local disk under a
// configured base directory. Files are stored under random names; the
// original file name lives only in the database.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/fileshare/fileshare-backend/internal/domain"
)

// Store writes and reads attachment files below a single base directory.
// All paths exchanged with callers are relative to that base.
type Store struct {
	basePath string
}

// NewStore creates the base directory if needed.
func NewStore(basePath string) (*Store, error) {
	if basePath == "" {
		return nil, fmt.Errorf("storage: base path is empty")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create base dir: %w", err)
	}
	return &Store{basePath: basePath}, nil
}

// Save writes the reader's content to a new randomly named file, keeping the
// original extension. It returns the relative path and the number of bytes
// written.
func (s *Store) Save(fileName string, r io.Reader) (string, int64, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	rel := uuid.New().String() + ext

	f, err := os.OpenFile(filepath.Join(s.basePath, rel), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", 0, fmt.Errorf("storage: create file: %w", err)
	}

	size, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", 0, fmt.Errorf("storage: write file: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", 0, fmt.Errorf("storage: close file: %w", err)
	}

	return rel, size, nil
}

// Open returns a reader for a previously saved file. Paths that escape the
// base directory are rejected.
func (s *Store) Open(relPath string) (io.ReadSeekCloser, error) {
	abs, err := s.Abs(relPath)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("storage: %s: %w", relPath, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("storage: open file: %w", err)
	}
	return f, nil
}

// Remove deletes a stored file. Missing files are not an error.
func (s *Store) Remove(relPath string) error {
	abs, err := s.Abs(relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: remove file: %w", err)
	}
	return nil
}

// Abs resolves a relative path against the base directory, rejecting
// anything that would escape it.
func (s *Store) Abs(relPath string) (string, error) {
	if relPath == "" || !filepath.IsLocal(relPath) {
		return "", fmt.Errorf("storage: invalid path %q: %w", relPath, domain.ErrValidation)
	}
	return filepath.Join(s.basePath, relPath), nil
}
