package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"

	"github.com/spf13/afero"
)

// LocalStore keeps blobs on a filesystem. Production uses a directory on
// disk; tests use afero.NewMemMapFs.
type LocalStore struct {
	fs afero.Fs
}

// NewLocalStore stores blobs below dir, creating it when missing
func NewLocalStore(dir string) (*LocalStore, error) {
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return NewFsStore(afero.NewBasePathFs(osFs, dir)), nil
}

// NewFsStore stores blobs at the root of fsys
func NewFsStore(fsys afero.Fs) *LocalStore {
	return &LocalStore{fs: fsys}
}

func (s *LocalStore) Put(_ context.Context, key string, r io.Reader, _ string) error {
	if !validKey(key) {
		return ErrInvalidKey
	}
	if err := s.fs.MkdirAll(path.Dir(key), 0o755); err != nil {
		return fmt.Errorf("failed to create blob directory: %w", err)
	}
	if err := afero.WriteReader(s.fs, key, r); err != nil {
		return fmt.Errorf("failed to write blob: %w", err)
	}
	return nil
}

func (s *LocalStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	if !validKey(key) {
		return nil, ErrInvalidKey
	}
	f, err := s.fs.Open(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to open blob: %w", err)
	}
	return f, nil
}

func (s *LocalStore) Delete(_ context.Context, key string) error {
	if !validKey(key) {
		return ErrInvalidKey
	}
	if err := s.fs.Remove(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	// Drop the per-upload directory; it fails harmlessly when not empty.
	_ = s.fs.Remove(path.Dir(key))
	return nil
}

func (s *LocalStore) Exists(_ context.Context, key string) (bool, error) {
	if !validKey(key) {
		return false, ErrInvalidKey
	}
	return afero.Exists(s.fs, key)
}
