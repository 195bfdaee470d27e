package models

import (
	"context"
	"io"
)

// ReadHandle is a closeable read handle into a stored artifact.
type ReadHandle interface {
	io.ReadCloser
}

// WriteHandle is a closeable write handle used by the producer bridge to
// append produced blocks to durable storage as they arrive.
type WriteHandle interface {
	io.WriteCloser
}

// Backend is the storage operation contract the Stream Cache drives.
// Concrete non-local backends (object storage, etc.) are out of scope for
// this repository; LocalFS is the only implementation, but admission and
// the block pump depend only on this interface.
type Backend interface {
	// Alias identifies this backend instance for logging/metrics.
	Alias() string

	// Mkdir creates path and any missing parents. If allowExists is false
	// and path already exists, Mkdir returns an error.
	Mkdir(ctx context.Context, path string, allowExists bool) error

	// OpenRead opens an existing file at path for reading from offset 0.
	OpenRead(ctx context.Context, path string) (ReadHandle, error)

	// OpenWrite opens or creates a file at path for appending producer
	// output. Existing content, if any, is preserved; writes append.
	OpenWrite(ctx context.Context, path string) (WriteHandle, error)

	// TypeSize returns the size in bytes of the file at path, or an error
	// if it does not exist.
	TypeSize(ctx context.Context, path string) (int64, error)

	// Exists reports whether a regular file exists at path, without
	// reading its content.
	Exists(ctx context.Context, path string) (bool, error)

	// LockPath returns the path an advisory lock for the artifact at path
	// should be taken against.
	LockPath(path string) string
}
