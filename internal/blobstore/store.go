// Package blobstore keeps uploaded resume files by key.
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Get and Delete when no object exists under the key.
var ErrNotFound = errors.New("blob not found")

// Store is a key/value store for file content.
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Get(ctx context.Context, key string) (*Object, error)
	Delete(ctx context.Context, key string) error
}

// Object is a stored blob.
type Object struct {
	Key         string
	ContentType string
	Data        []byte
}

// Error wraps a backend failure for one key.
type Error struct {
	Op    string
	Key   string
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("blobstore %s %q: %v", e.Op, e.Key, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewKey returns a fresh key for a resume uploaded as filename.
// The extension is kept so downloads get a sensible name.
func NewKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return "resumes/" + uuid.NewString() + ext
}

func checkKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "..") {
		return fmt.Errorf("invalid blob key %q", key)
	}
	return nil
}
