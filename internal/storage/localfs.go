// Package storage implements pkg/models.Backend against the local
// filesystem, addressed by caller-supplied paths (doc_basepath joined
// with detail_path) rather than by content hash.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"brm/pkg/models"
)

// LocalFS is the sole Backend implementation this repository ships;
// concrete non-local backends are out of scope.
type LocalFS struct {
	alias string
	root  string
}

// NewLocalFS creates a LocalFS rooted at root, creating root itself if it
// does not already exist.
func NewLocalFS(alias, root string) (*LocalFS, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("localfs: create root %s: %w", root, err)
	}
	return &LocalFS{alias: alias, root: root}, nil
}

func (l *LocalFS) Alias() string { return l.alias }

func (l *LocalFS) resolve(path string) string {
	return filepath.Join(l.root, filepath.FromSlash(path))
}

// Mkdir creates path (and parents) under the backend root. If allowExists
// is false, an existing directory at path is reported as an error.
// Admission always calls it with allowExists true.
func (l *LocalFS) Mkdir(ctx context.Context, path string, allowExists bool) error {
	full := l.resolve(path)
	if !allowExists {
		if info, err := os.Stat(full); err == nil && info.IsDir() {
			return fmt.Errorf("localfs: directory already exists: %s", path)
		}
	}
	if err := os.MkdirAll(full, 0755); err != nil {
		return fmt.Errorf("localfs: mkdir %s: %w", path, err)
	}
	return nil
}

func (l *LocalFS) OpenRead(ctx context.Context, path string) (models.ReadHandle, error) {
	f, err := os.Open(l.resolve(path))
	if err != nil {
		return nil, fmt.Errorf("localfs: open %s: %w", path, err)
	}
	return f, nil
}

// OpenWrite opens path for appending, creating parent directories and the
// file itself as needed. Existing content is preserved so repeated calls
// during a single fill append producer output incrementally. Mode 0600
// per spec.md §4.1 step 5: the artifact holds decrypted stream content
// derived from a crypto-key-adjacent source asset, so it is never
// group/world readable.
func (l *LocalFS) OpenWrite(ctx context.Context, path string) (models.WriteHandle, error) {
	full := l.resolve(path)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return nil, fmt.Errorf("localfs: create parent dir for %s: %w", path, err)
	}
	f, err := os.OpenFile(full, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("localfs: open for write %s: %w", path, err)
	}
	return f, nil
}

func (l *LocalFS) TypeSize(ctx context.Context, path string) (int64, error) {
	info, err := os.Stat(l.resolve(path))
	if err != nil {
		return 0, fmt.Errorf("localfs: stat %s: %w", path, err)
	}
	return info.Size(), nil
}

// Exists reports whether a regular file is present at path without
// reading its content, mirroring the lightweight os.Stat-based check this
// codebase uses elsewhere for hit/miss detection.
func (l *LocalFS) Exists(ctx context.Context, path string) (bool, error) {
	info, err := os.Stat(l.resolve(path))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("localfs: stat %s: %w", path, err)
	}
	return !info.IsDir(), nil
}

// LockPath returns the filesystem path a flock.Flock should be created
// against for the artifact at path. It is a sibling file so lock
// acquisition never races with the artifact's own open/create.
func (l *LocalFS) LockPath(path string) string {
	return l.resolve(path) + ".lock"
}
