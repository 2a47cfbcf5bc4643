/*
Package crdt implements driftdb's data model and its conflict-free
merge algorithm: a dynamically typed Value union, a Field pairing a
Value with the HLC that wrote it, and a Document grouping named fields
under a content hash and a document-level HLC.

Every document mutation in driftdb — insert, update, or the application
of a remote peer's document during sync — ultimately goes through this
package's pure functions. Nothing here touches storage, validation, or
even a live clock beyond accepting an already-ticked hlc.Timestamp or a
tick callback; that keeps merge total and non-blocking, safe to call
from concurrent readers without coordination.

# Architecture

	┌───────────────────────────────────────────────────────────┐
	│                        Document                            │
	│  ID        string                                          │
	│  Fields    map[string]Field  ──┐                           │
	│  Hash      string              │  one per named field      │
	│  DocHLC    hlc.Timestamp        │                           │
	└─────────────────────────────────┼───────────────────────────┘
	                                  ▼
	                        ┌──────────────────┐
	                        │      Field        │
	                        │  Value  Value     │
	                        │  HLC    Timestamp │
	                        └──────────────────┘
	                                  │
	                                  ▼
	                        ┌──────────────────┐
	                        │      Value        │  tagged union:
	                        │  Null/Bool/Number  │  Null, Bool, Number,
	                        │  String/Array/Obj  │  String, Array, Object
	                        └──────────────────┘

Value is a value type, not an interface, so Fields and Documents copy
and compare cheaply and never need a type switch guarded by a nil
check. FromJSON/ToJSON round-trip through the same interface{} shapes
encoding/json produces, so a Document serializes exactly like any other
JSON object (MarshalJSON/UnmarshalJSON delegate to them).

# Field Merge

MergeField is the atomic unit of conflict resolution: given two
versions of the same field, the one with the strictly greater HLC
wins, full stop.

	fieldA.HLC = 100-000-aaaa      fieldB.HLC = 100-001-bbbb
	            │                               │
	            └──────────────┬────────────────┘
	                           ▼
	                  Compare HLCs: B.HLC > A.HLC
	                           ▼
	                     winner = fieldB

Equal HLCs can only arise if two replicas independently minted the
identical (physical, logical, nonce) triple — the nonce makes this
vanishingly unlikely. MergeField resolves that tie deterministically in
favor of the first argument and, if the two tied values differ, logs a
warning, since that usually means a nonce source isn't random enough to
trust.

# Document Merge

MergeDocument takes the union of two documents' field names and
resolves each name independently with MergeField:

	local.Fields:  {id, name, email}
	remote.Fields: {id, name, phone}
	                      │
	                      ▼
	          union: {id, name, email, phone}
	                      │
	         ┌────────────┼────────────┬─────────────┐
	         ▼            ▼            ▼             ▼
	    merge(id)    merge(name)   local.email  remote.phone
	   (both sides)  (both sides)  (remote absent) (local absent)

A field present on only one side passes through unchanged — merge
never deletes a field just because a peer hasn't seen it yet. Because
HLCs are totally ordered and a field's value never changes without a
strictly greater HLC, repeated merges of documents derived from any
common lineage converge to the same fields regardless of the order or
count of times replicas apply them:

  - Commutative: MergeDocument(a, b) == MergeDocument(b, a)
  - Associative: MergeDocument(MergeDocument(a, b), c) ==
    MergeDocument(a, MergeDocument(b, c))
  - Idempotent:  MergeDocument(a, a) == a

These three laws — not just "it produces a plausible-looking
document" — are what the package's merge tests check directly, since
they are the only guarantee that matters for eventual consistency: any
two replicas that have seen the same set of updates, applied in any
order, any number of times, end up with identical document state.

# Construction and Update

MakeDocument assigns one HLC to every field of a newly-inserted
document, including a synthetic "id" field holding the document's own
ID as a String value (spec's "id is itself a field" rule) — the whole
document is, deliberately, just a bag of fields like any other.

UpdateDocument re-ticks only the fields actually named in the partial
change set, one tick per changed field; every other field's prior Field
value — value and HLC both — passes through untouched. This is what
lets two concurrent updates to different fields of the same document
merge without either one clobbering the other.

# Ordering

SortByCanonicalOrder establishes the one global document order every
hash and bucket computation in package hash depends on: ascending by
DocHLC's canonical string form, ID as tie-breaker. Two replicas with
pairwise-equal document sets that each sort by this order and hash the
result will compute identical digests — the precondition for the
anti-entropy comparison in package collection to ever converge to "no
divergence detected".

# See Also

  - pkg/hlc for the Timestamp type merge compares
  - pkg/hash for the content-addressed digest built over merged documents
  - pkg/collection for the storage-backed merge loop that calls this
    package on every Insert, Update, and incoming sync document
*/
package crdt
