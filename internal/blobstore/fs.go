package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const contentTypeSuffix = ".content-type"

// FS stores blobs as files below a root directory. The content type is kept
// in a sidecar file next to each blob.
type FS struct {
	root string
}

// NewFS creates the root directory if needed.
func NewFS(root string) (*FS, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob dir: %w", err)
	}
	return &FS{root: root}, nil
}

func (s *FS) path(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key))
}

// Put writes data under key, replacing any existing blob.
func (s *FS) Put(_ context.Context, key, contentType string, data []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	p := s.path(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return &Error{Op: "put", Key: key, Cause: err}
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return &Error{Op: "put", Key: key, Cause: err}
	}
	if err := os.WriteFile(p+contentTypeSuffix, []byte(contentType), 0o644); err != nil {
		return &Error{Op: "put", Key: key, Cause: err}
	}
	return nil
}

// Get reads the blob under key.
func (s *FS) Get(_ context.Context, key string) (*Object, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	p := s.path(key)
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &Error{Op: "get", Key: key, Cause: err}
	}
	ct, err := os.ReadFile(p + contentTypeSuffix)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, &Error{Op: "get", Key: key, Cause: err}
	}
	return &Object{Key: key, ContentType: string(ct), Data: data}, nil
}

// Delete removes the blob under key.
func (s *FS) Delete(_ context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	p := s.path(key)
	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return &Error{Op: "delete", Key: key, Cause: err}
	}
	_ = os.Remove(p + contentTypeSuffix)
	return nil
}
