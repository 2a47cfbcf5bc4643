package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/driftdb/driftdb/pkg/collection"
)

// Backend names a concrete storage.Blob implementation this config
// can select. Network/transport backends are out of scope (spec §1).
type Backend string

const (
	BackendBolt Backend = "bolt"
	BackendFS   Backend = "fs"
)

// CollectionConfig configures one named collection.
type CollectionConfig struct {
	Name       string `yaml:"name"`
	Schema     string `yaml:"schema,omitempty"`
	BucketSize int    `yaml:"bucketSize,omitempty"`
}

// Config is the top-level YAML document a driftdb process loads at
// startup (spec §1's ambient "configuration" concern).
type Config struct {
	// DataDir is the base directory the storage backend persists
	// under: a bbolt file's parent directory for BackendBolt, or the
	// document root for BackendFS.
	DataDir string `yaml:"dataDir"`
	// Backend selects the storage.Blob implementation. Defaults to
	// BackendBolt.
	Backend Backend `yaml:"backend,omitempty"`
	// BucketSize is the anti-entropy default every collection uses
	// unless its own entry overrides it. Defaults to
	// collection.DefaultBucketSize.
	BucketSize int `yaml:"bucketSize,omitempty"`
	// MetricsAddr, if set, is the address `driftdb serve` binds its
	// /metrics and /health endpoints to.
	MetricsAddr string `yaml:"metricsAddr,omitempty"`
	// Collections lists the collections to open eagerly at startup.
	// A collection not listed here can still be opened on demand; this
	// is purely a convenience for `driftdb serve`.
	Collections []CollectionConfig `yaml:"collections,omitempty"`
}

// Default returns a Config usable without a file on disk: a bbolt
// backend under ./driftdb-data with the package's default bucket size.
func Default() Config {
	return Config{
		DataDir:     "./driftdb-data",
		Backend:     BackendBolt,
		BucketSize:  collection.DefaultBucketSize,
		MetricsAddr: ":9090",
	}
}

// Load reads and parses a YAML config file at path, filling any
// unset field from Default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %q: %w", path, err)
	}
	if cfg.BucketSize <= 0 {
		cfg.BucketSize = collection.DefaultBucketSize
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendBolt
	}
	return cfg, nil
}

// BucketSizeFor returns the bucket size a named collection should use:
// its own override if set, otherwise the config-wide default.
func (c Config) BucketSizeFor(name string) int {
	for _, cc := range c.Collections {
		if cc.Name == name && cc.BucketSize > 0 {
			return cc.BucketSize
		}
	}
	return c.BucketSize
}
