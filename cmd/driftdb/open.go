package main

import (
	"fmt"

	"github.com/driftdb/driftdb/pkg/collection"
	"github.com/driftdb/driftdb/pkg/config"
	"github.com/driftdb/driftdb/pkg/storage"
	"github.com/driftdb/driftdb/pkg/validate"
)

// resolveConfig loads --config if given, otherwise builds a Config
// from the persistent flags.
func resolveConfig() (config.Config, error) {
	if flagConfig != "" {
		return config.Load(flagConfig)
	}
	cfg := config.Default()
	cfg.DataDir = flagDataDir
	cfg.Backend = config.Backend(flagBackend)
	if flagBucketSize > 0 {
		cfg.BucketSize = flagBucketSize
	}
	if flagMetricsAddr != "" {
		cfg.MetricsAddr = flagMetricsAddr
	}
	return cfg, nil
}

// openAdapter constructs the storage.Blob the config selects.
func openAdapter(cfg config.Config) (storage.Blob, error) {
	switch cfg.Backend {
	case config.BackendFS, "":
		return storage.NewFSAdapter(cfg.DataDir)
	case config.BackendBolt:
		return storage.NewBoltAdapter(cfg.DataDir)
	default:
		return nil, fmt.Errorf("driftdb: unknown backend %q", cfg.Backend)
	}
}

// openCollection opens name against the configured backend. The
// caller must Close the returned collection (which also closes the
// underlying adapter).
func openCollection(name string) (*collection.Collection, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, err
	}
	adapter, err := openAdapter(cfg)
	if err != nil {
		return nil, err
	}
	bucketSize := cfg.BucketSizeFor(name)
	c := collection.New(name, adapter, validate.NewFieldValidator(), collection.WithBucketSize(bucketSize))
	return c, nil
}
