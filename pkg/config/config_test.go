package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftdb/driftdb/pkg/collection"
)

func TestDefaultIsUsableWithoutAFile(t *testing.T) {
	cfg := Default()
	assert.Equal(t, BackendBolt, cfg.Backend)
	assert.Equal(t, collection.DefaultBucketSize, cfg.BucketSize)
	assert.NotEmpty(t, cfg.DataDir)
}

func TestLoadParsesYAMLAndFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "driftdb.yaml")
	yaml := `
dataDir: /var/lib/driftdb
backend: fs
collections:
  - name: users
    schema: users
    bucketSize: 50
  - name: sessions
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/driftdb", cfg.DataDir)
	assert.Equal(t, BackendFS, cfg.Backend)
	assert.Equal(t, collection.DefaultBucketSize, cfg.BucketSize)
	require.Len(t, cfg.Collections, 2)
	assert.Equal(t, 50, cfg.BucketSizeFor("users"))
	assert.Equal(t, collection.DefaultBucketSize, cfg.BucketSizeFor("sessions"))
	assert.Equal(t, collection.DefaultBucketSize, cfg.BucketSizeFor("unknown"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dataDir: [unterminated"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
