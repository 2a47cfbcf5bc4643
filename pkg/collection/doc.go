/*
Package collection implements driftdb's sync engine: a named set of
CRDT documents backed by a storage.Blob, offering Get/All/Where,
Insert/Update/Merge, and the GetHashes/GetBuckets pair anti-entropy
sync runs over (spec §4.4). This is the package application code
actually calls; pkg/crdt, pkg/hash, and pkg/hlc underneath it are pure
and storage-unaware.

# Architecture

	┌──────────────────────────────────────────────────────────────┐
	│                         Collection                             │
	│                                                                 │
	│   Get/All/Where ──────────► read-through cache ──► storage.Blob│
	│                                   (LRU)                         │
	│                                                                 │
	│   Insert/Update/Merge ──► taskCh (FIFO) ──► single worker       │
	│                                              goroutine          │
	│                                                   │             │
	│                                                   ▼             │
	│                                         crdt.MergeDocument /    │
	│                                         crdt.MakeDocument /     │
	│                                         crdt.UpdateDocument     │
	│                                                   │             │
	│                                                   ▼             │
	│                                         validate.Validator      │
	│                                                   │             │
	│                                                   ▼             │
	│                                         hlc.Clock.Tick/Observe  │
	│                                                   │             │
	│                                                   ▼             │
	│                                         storage.Blob.Write      │
	└──────────────────────────────────────────────────────────────┘

# Single-Writer Concurrency

All mutating operations (Insert, Update, Merge) serialize through one
worker goroutine reading from a buffered task channel — the
"single-writer cooperative concurrency" model spec §5 calls for. A
caller's goroutine enqueues a closure and blocks on a per-call result
channel until the worker has run it to completion:

	caller goroutine            worker goroutine
	     │                            │
	     │  submit(fn) ──► taskCh ───►│  fn()
	     │                            │    │
	     │                            │    ▼
	     │                            │  done <- err
	     │◄────────── done ───────────┤
	     ▼                            │

This guarantees FIFO ordering of mutations within one collection
without needing a mutex around the whole read-modify-write sequence;
two concurrent Insert calls for different IDs still run one after the
other, never interleaved mid-write. Get/All/Where bypass the queue
entirely and take no lock, so readers never wait behind a slow write;
they also do not wait for mutations queued ahead of them.

# Lifecycle

A Collection starts unopened; the first operation other than Close
triggers open(), which loads a persisted clock (a missing or malformed
clock file just starts the clock at zero — losing clock history is
recoverable, since observing any already-stored document's HLC pulls
it forward again) and starts the worker goroutine. Close transitions
unopened/open → closing → terminal: operations already admitted to the
queue finish, but no new mutation is accepted, and the underlying
storage.Blob is closed only after the worker has drained.

	unopened ──open()──► open ──Close()──► closing ──drain──► closed

# Insert / Update / Merge

Insert (spec §4.4) validates the candidate data, ticks the clock once,
builds a brand-new document via crdt.MakeDocument, and persists it; it
fails with an AlreadyExists error if the id is already present.

Update re-ticks only the fields actually present in the partial change
set via crdt.UpdateDocument, re-validates the merged result, and
persists it; it fails with NotFound if the id is absent.

Merge (sync.go) is how a remote peer's documents enter the collection:
each incoming document is joined against any local copy with
crdt.MergeDocument, the clock observes the merged document's HLC (which
may produce a non-fatal ClockRegression warning if the remote clock
looks implausible — see pkg/hlc), and the result is persisted. One bad
document in a batch does not abort the rest; the first error
encountered is returned once every document has been attempted.

# Anti-Entropy: GetHashes / GetBuckets

GetHashes computes the package hash rollup (root + per-bucket digests)
over every document's content hash in canonical order. GetBuckets
returns the full documents backing whichever bucket indices a peer
asks for, after it found its own root or bucket hashes didn't match —
the fetch half of the compare-then-fetch anti-entropy exchange spec
§4.3 describes. Neither call mutates the collection, so both run
directly against storage without going through the single-writer
queue.

# Listeners and Metrics

RegisterListener/UnregisterListener let a caller observe every
Insert/Update/Merge as it commits (events.Registry, package events).
Every mutating call also records duration and outcome counters through
package metrics, and Stats reports a point-in-time document/listener
count plus the clock's logical counter for a metrics scraper to poll
without touching the mutation queue.

# See Also

  - pkg/crdt for the document model and merge algorithm this package's
    worker applies on every mutation
  - pkg/hlc for the clock each Collection owns one instance of
  - pkg/storage for the Blob interface collections persist through
  - pkg/validate for the schema check every Insert/Update runs (Merge
    does not validate incoming documents)
  - pkg/events for the listener notification mechanism
*/
package collection
