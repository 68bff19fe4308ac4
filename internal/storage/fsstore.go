package storage

import (
	"context"
	"os"
	"path/filepath"
)

// FSStore implements ObjectStore on the local filesystem, rooted at a
// single directory. Keys map directly to relative paths.
type FSStore struct {
	root string
}

func NewFSStore(root string) *FSStore {
	return &FSStore{root: root}
}

func (f *FSStore) Init(ctx context.Context) error {
	return os.MkdirAll(f.root, 0o755)
}

func (f *FSStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	path := filepath.Join(f.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (f *FSStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(f.root, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (f *FSStore) Available(ctx context.Context) bool {
	info, err := os.Stat(f.root)
	return err == nil && info.IsDir()
}
