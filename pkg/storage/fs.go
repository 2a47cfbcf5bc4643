package storage

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/driftdb/driftdb/pkg/direrr"
)

// FSAdapter is a Blob backed by plain files under a base directory,
// one file per stored path (per-document layout, spec §6.1). It is
// the natural choice for a collection that wants human-inspectable
// on-disk documents rather than a single opaque database file.
type FSAdapter struct {
	baseDir string
}

// NewFSAdapter creates an adapter rooted at baseDir, creating the
// directory if it does not exist.
func NewFSAdapter(baseDir string) (*FSAdapter, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, direrr.StorageFailure("mkdir", err)
	}
	return &FSAdapter{baseDir: baseDir}, nil
}

func (a *FSAdapter) resolve(path string) (string, error) {
	key, err := Normalize(path)
	if err != nil {
		return "", err
	}
	return filepath.Join(a.baseDir, filepath.FromSlash(key)), nil
}

func (a *FSAdapter) Close() error { return nil }

func (a *FSAdapter) Read(path string) (string, error) {
	full, err := a.resolve(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(full)
	if os.IsNotExist(err) {
		return "", direrr.NotFound("path", path)
	}
	if err != nil {
		return "", direrr.StorageFailure("read", err)
	}
	return string(data), nil
}

func (a *FSAdapter) Write(path string, content string) error {
	key, err := Normalize(path)
	if err != nil {
		return err
	}
	if key == "" {
		return direrr.InvalidPath(path, "writes to the root path are not allowed")
	}
	full := filepath.Join(a.baseDir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return direrr.StorageFailure("write", err)
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		return direrr.StorageFailure("write", err)
	}
	return nil
}

func (a *FSAdapter) Delete(path string) error {
	full, err := a.resolve(path)
	if err != nil {
		return err
	}
	err = os.Remove(full)
	if os.IsNotExist(err) {
		return direrr.NotFound("path", path)
	}
	if err != nil {
		return direrr.StorageFailure("delete", err)
	}
	return nil
}

func (a *FSAdapter) Exists(path string) (bool, error) {
	full, err := a.resolve(path)
	if err != nil {
		return false, err
	}
	_, statErr := os.Stat(full)
	if os.IsNotExist(statErr) {
		return false, nil
	}
	if statErr != nil {
		return false, direrr.StorageFailure("exists", statErr)
	}
	return true, nil
}

func (a *FSAdapter) List(dir string) ([]string, error) {
	full, err := a.resolve(dir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(full)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, direrr.StorageFailure("list", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
