package object

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrExists is returned when a key is already taken.
var ErrExists = errors.New("object already exists")

// Entry describes a stored object.
type Entry struct {
	Key     string
	Size    int64
	ModTime time.Time
}

// ObjectStore defines the contract for the flat upload store.
type ObjectStore interface {
	// Save writes r under key and returns the number of bytes stored.
	Save(ctx context.Context, key string, r io.Reader) (int64, error)
	List(ctx context.Context) ([]Entry, error)
	Delete(ctx context.Context, key string) error
}
