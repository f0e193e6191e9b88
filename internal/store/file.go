package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/ashureev/spiritual-guide/internal/domain"
)

// FileStore keeps one JSON document per user under a data directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the data directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(userID string) string {
	return filepath.Join(s.dir, "mem_"+userID+".json")
}

// Read loads the user's document.
func (s *FileStore) Read(_ context.Context, userID string) (*domain.UserState, error) {
	if err := validateKey(userID); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(userID))
	if errors.Is(err, fs.ErrNotExist) {
		return domain.NewUserState(time.Now()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read user memory: %w", err)
	}
	return decodeState(data, userID, "file"), nil
}

// Write replaces the user's document atomically: the state is written to a
// temporary file, synced, then renamed over the old one.
func (s *FileStore) Write(_ context.Context, userID string, state *domain.UserState) error {
	if err := validateKey(userID); err != nil {
		return err
	}
	data, err := encodeState(state, true)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "mem_"+userID+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op after a successful rename.
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write user memory: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync user memory: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close user memory: %w", err)
	}
	if err := os.Rename(tmpName, s.path(userID)); err != nil {
		return fmt.Errorf("replace user memory: %w", err)
	}
	return nil
}

// Ping checks that the data directory is still present.
func (s *FileStore) Ping(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("stat data directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data path %s is not a directory", s.dir)
	}
	return nil
}

// Close is a no-op.
func (s *FileStore) Close() error { return nil }

var _ Repository = (*FileStore)(nil)
