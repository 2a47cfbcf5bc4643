package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/driftdb/driftdb/pkg/direrr"
	bolt "go.etcd.io/bbolt"
)

// blobBucket is the single bucket every path-keyed blob lives in.
// Paths are stored as keys verbatim (monolithic layout, spec §6.1):
// there is no on-disk directory structure to mirror, so List is
// emulated by scanning key prefixes.
var blobBucket = []byte("blobs")

// BoltAdapter is a Blob backed by a single embedded bbolt database
// file, the storage engine the reference pack's cluster store used
// for its own key/value persistence.
type BoltAdapter struct {
	db *bolt.DB
}

// NewBoltAdapter opens (creating if absent) a bbolt database under
// dataDir named driftdb.db.
func NewBoltAdapter(dataDir string) (*BoltAdapter, error) {
	dbPath := filepath.Join(dataDir, "driftdb.db")

	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: open bolt database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(blobBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: create blob bucket: %w", err)
	}

	return &BoltAdapter{db: db}, nil
}

func (a *BoltAdapter) Close() error {
	return a.db.Close()
}

func (a *BoltAdapter) Read(path string) (string, error) {
	key, err := Normalize(path)
	if err != nil {
		return "", err
	}

	var content []byte
	err = a.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(blobBucket).Get([]byte(key))
		if v != nil {
			content = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return "", direrr.StorageFailure("read", err)
	}
	if content == nil {
		return "", direrr.NotFound("path", path)
	}
	return string(content), nil
}

func (a *BoltAdapter) Write(path string, content string) error {
	key, err := Normalize(path)
	if err != nil {
		return err
	}
	if key == "" {
		return direrr.InvalidPath(path, "writes to the root path are not allowed")
	}

	err = a.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(blobBucket).Put([]byte(key), []byte(content))
	})
	if err != nil {
		return direrr.StorageFailure("write", err)
	}
	return nil
}

func (a *BoltAdapter) Delete(path string) error {
	key, err := Normalize(path)
	if err != nil {
		return err
	}

	exists := false
	err = a.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(blobBucket)
		if b.Get([]byte(key)) != nil {
			exists = true
			return b.Delete([]byte(key))
		}
		return nil
	})
	if err != nil {
		return direrr.StorageFailure("delete", err)
	}
	if !exists {
		return direrr.NotFound("path", path)
	}
	return nil
}

func (a *BoltAdapter) Exists(path string) (bool, error) {
	key, err := Normalize(path)
	if err != nil {
		return false, err
	}

	found := false
	err = a.db.View(func(tx *bolt.Tx) error {
		found = tx.Bucket(blobBucket).Get([]byte(key)) != nil
		return nil
	})
	if err != nil {
		return false, direrr.StorageFailure("exists", err)
	}
	return found, nil
}

func (a *BoltAdapter) List(dir string) ([]string, error) {
	prefix, err := Normalize(dir)
	if err != nil {
		return nil, err
	}
	scanPrefix := prefix
	if scanPrefix != "" {
		scanPrefix += "/"
	}

	seen := map[string]struct{}{}
	var names []string
	err = a.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(blobBucket).Cursor()
		for k, _ := c.Seek([]byte(scanPrefix)); k != nil && strings.HasPrefix(string(k), scanPrefix); k, _ = c.Next() {
			rest := strings.TrimPrefix(string(k), scanPrefix)
			child := rest
			if idx := strings.Index(rest, "/"); idx >= 0 {
				child = rest[:idx]
			}
			if _, dup := seen[child]; !dup {
				seen[child] = struct{}{}
				names = append(names, child)
			}
		}
		return nil
	})
	if err != nil {
		return nil, direrr.StorageFailure("list", err)
	}
	return names, nil
}
