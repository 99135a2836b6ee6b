package storage

import (
	"context"
	"io"
)

// FileStore is the backend for profile images. The local filesystem
// implementation covers development and single-node deployments; a cloud
// object store can implement the same surface.
type FileStore interface {
	// Save writes the file under the given key, replacing any previous
	// content.
	Save(ctx context.Context, key string, reader io.Reader) error

	// Open returns the file for reading. The caller closes it.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists reports whether the key is present and its size in bytes.
	Exists(ctx context.Context, key string) (bool, int64, error)

	// Delete removes the file. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
