/*
Package storage implements the Blob contract the collection engine
depends on (spec §4.5): a path-keyed string store with read, write,
delete, exists, and list. The core never reaches into a concrete
adapter directly — it only ever holds a storage.Blob — so a collection
can be opened against whichever backend fits the deployment without any
change above this package.

# Architecture

	┌───────────────────────────────────────────────────────────┐
	│                     pkg/collection                          │
	│         (Collection holds exactly one storage.Blob)         │
	└───────────────────────────┬───────────────────────────────┘
	                            │
	                            ▼
	                  ┌──────────────────┐
	                  │   Blob interface  │
	                  │ Read/Write/Delete │
	                  │ Exists/List/Close │
	                  └─────────┬────────┘
	               ┌────────────┴────────────┐
	               ▼                         ▼
	      ┌─────────────────┐       ┌──────────────────┐
	      │   BoltAdapter     │       │    FSAdapter      │
	      │  (monolithic)      │       │  (per-document)   │
	      │  one bbolt bucket  │       │  one file per blob │
	      └─────────────────┘       └──────────────────┘

# Adapters

BoltAdapter stores every blob as a key in a single bbolt bucket
(monolithic layout): bbolt gives ACID single-writer transactions and
MVCC snapshot reads with no external dependency beyond the bbolt
library itself, the same engine and transaction idiom production
clustered stores lean on for embedded persistence. List is emulated by
a prefix scan over the bucket's cursor, since bbolt has no native
directory concept — every key is logically flat, and "directories" are
just a naming convention (docPath = "<collection>/<id>.json").

FSAdapter stores each blob as a plain file under a base directory
(per-document layout): useful when the deployment wants
human-inspectable on-disk documents, or a storage prefix shared with
tooling that expects ordinary files (backup scripts, `find`, a text
editor). List maps directly onto a directory read.

Both adapters satisfy the same Blob interface, so cmd/driftdb's
openAdapter picks one purely from configuration (config.BackendBolt vs
config.BackendFS); nothing in package collection or above needs to
know which is in play.

# Path Rules

Both adapters route every incoming path through Normalize (path.go)
before touching disk:

	"a\\b\\c"        ──► "a/b/c"        (backslashes become forward slashes)
	"//a//b/"        ──► "a/b"          (duplicate/leading/trailing slashes collapse)
	"." / ""         ──► ""             (both mean the root)
	"a/../b"         ──► InvalidPath     (".." segments are rejected outright)
	"a\x00b"         ──► InvalidPath     (NUL and most control bytes are rejected)

Normalize does not itself forbid writes to the root; Write rejects
those explicitly, since read/exists/list all have a legitimate meaning
at the root (list everything, check whether anything at all has been
written) but write does not — there is no such thing as "the content of
the root".

# Errors

Read and Delete return a *direrr.NotFoundError for an absent path;
package collection relies on errors.As against that concrete type to
turn a missing document into a nil Get result rather than surfacing a
generic failure. Every other adapter-level failure (a disk I/O error,
a corrupted bbolt file) is wrapped in a *direrr.StorageError, which
implements Unwrap so errors.Is still reaches the underlying cause.

# See Also

  - pkg/direrr for the NotFound/StorageFailure error constructors
    adapters return
  - pkg/collection for the single caller of this package's Blob
    interface
  - pkg/config for the Backend setting that selects an adapter at
    startup (cmd/driftdb/open.go)
*/
package storage
