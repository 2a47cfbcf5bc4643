/*
Package config loads the YAML-driven defaults a driftdb process
bootstraps from: which storage backend to open, where its data lives,
and the bucket size each collection uses for anti-entropy unless a
call site overrides it.

# Architecture

	                    ┌──────────────────┐
	                    │    Default()      │
	                    │  (no file needed)  │
	                    └─────────┬────────┘
	                              ▼
	   config.yaml ──►    Load(path)    ──► yaml.Unmarshal over Default()
	                              │
	                              ▼
	                    fill any zero-valued
	                    field back to Default
	                              │
	                              ▼
	                           Config
	                              │
	                  ┌───────────┴────────────┐
	                  ▼                        ▼
	           openAdapter(cfg)          openCollection(name, cfg)
	         (cmd/driftdb/open.go)      (cmd/driftdb/open.go)

Default returns a Config usable with no file on disk at all — a bbolt
backend under ./driftdb-data with the collection package's own
DefaultBucketSize — so `driftdb` subcommands work out of the box
against a scratch directory before any config file exists. Load starts
from that same Default and overlays whatever the YAML file sets, so a
config file only needs to name the fields it wants to override.

# Fields

DataDir is the base directory the storage backend persists under: a
bbolt file's parent directory when Backend is "bolt", or the document
root when Backend is "fs". Backend selects which storage.Blob
implementation cmd/driftdb's openAdapter constructs; network/transport
backends are out of scope for this package (spec §1 — sync transport is
left to the integrator, not configured here). BucketSize is the
anti-entropy default every collection uses unless its own
CollectionConfig entry overrides it via BucketSizeFor.

Collections lists the collections `driftdb serve` opens eagerly at
startup, each with its own optional schema name and bucket-size
override:

	collections:
	  - name: users
	    schema: users
	    bucketSize: 200
	  - name: sessions

A collection not listed here is not unusable — it can still be opened
on demand through the same storage backend — this list is purely a
convenience for which ones `driftdb serve` should open and register
health for immediately (see cmd/driftdb/serve.go).

# See Also

  - pkg/storage for the Backend-selected Blob implementations
  - pkg/collection for DefaultBucketSize and the Collection type this
    config ultimately configures
  - cmd/driftdb/open.go for where a Config becomes a live adapter and
    collection
*/
package config
