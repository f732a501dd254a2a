// Package storage keeps uploaded order files in a blob store.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no blob exists under a key
var ErrNotFound = errors.New("blob not found")

// BlobStore stores opaque blobs under slash-separated keys.
type BlobStore interface {
	// Put writes r under key, replacing any existing blob
	Put(ctx context.Context, key string, r io.Reader, contentType string) error

	// Open returns a reader for the blob or ErrNotFound
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the blob. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether a blob is stored under key
	Exists(ctx context.Context, key string) (bool, error)
}

// NewKey returns a unique key for an upload named filename, in the form
// "<uuid>/<sanitised filename>". Two uploads with the same name never
// collide.
func NewKey(filename string) string {
	return uuid.NewString() + "/" + SanitizeFilename(filename)
}

// SanitizeFilename drops any directory part of name and replaces characters
// outside [A-Za-z0-9._-] with '_'.
func SanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	cleaned := strings.TrimLeft(b.String(), ".")
	if cleaned == "" {
		return "file"
	}
	return cleaned
}

// validKey rejects keys that could escape the store root.
func validKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return false
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return false
		}
	}
	return true
}

// ErrInvalidKey is returned for keys that are empty or contain path traversal
var ErrInvalidKey = errors.New("invalid blob key")
