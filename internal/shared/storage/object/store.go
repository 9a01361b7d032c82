package object

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Open and Delete for a missing key.
var ErrNotFound = errors.New("object not found")

// Object describes a stored resume upload.
type Object struct {
	Key      string
	Size     int64
	MimeType string
}

// Store saves, reads and removes uploaded files. Keys are namespaced by an
// opaque owner id (the job a resume was submitted to).
type Store interface {
	Save(ctx context.Context, namespace string, fileName string, r io.Reader) (Object, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
