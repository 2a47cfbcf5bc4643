/*
Package hash implements the content-addressed digests driftdb uses for
anti-entropy sync: a canonical serialization of a value tree, a fast
non-cryptographic string hash over it, and a two-level rollup (bucket
hashes, then a root hash over the buckets) that lets two replicas find
exactly which documents diverge without transferring either replica's
full document set.

# Why non-cryptographic

Hash is a DJB2-style fold, not SHA-anything. Anti-entropy correctness
only needs one property — equal inputs yield equal outputs, and
different inputs are very unlikely to collide — and driftdb never uses
these digests for anything security-sensitive (authentication, tamper
detection against an adversary). A replica that wanted to lie about its
state could just as easily lie about the documents themselves, so a
cryptographic hash would cost more CPU on every Insert, Update, and
Merge for no benefit any caller of this package can use.

# Canonical Serialization

Object makes structural equality independent of Go map iteration order
or field-insertion order, which is what actually lets two replicas
that built the "same" document differently still hash it identically:

	map[string]interface{}{"b": 2, "a": 1}       map[string]interface{}{"a": 1, "b": 2}
	                  │                                            │
	                  ▼                                            ▼
	         writeCanonical (sorts keys)                 writeCanonical (sorts keys)
	                  │                                            │
	                  ▼                                            ▼
	            `{"a":1,"b":2}`                              `{"a":1,"b":2}`
	                  │                                            │
	                  └─────────────────── Hash ───────────────────┘
	                                        │
	                                        ▼
	                                  identical digest

Accepted leaf types mirror what encoding/json produces when
unmarshaling into interface{} (nil, bool, string, float64) plus the two
composite shapes ([]interface{}, map[string]interface{}); int/int64 are
accepted as a convenience for values built directly in Go rather than
decoded from JSON.

# Rollup: Accumulate and Bucket

Accumulate left-folds a non-commutative Combine over an ordered
sequence of hashes, so the result depends on both the set of inputs and
their order — which is exactly why every caller first sorts documents
into the one canonical order package crdt defines
(crdt.SortByCanonicalOrder) before hashing them.

Bucket partitions that same ordered sequence into fixed-size chunks and
accumulates each chunk independently, keyed by chunk index:

	documents (canonical order): [d0, d1, d2, d3, d4, d5, d6]
	bucketSize = 3
	                  │
	        ┌─────────┼─────────┐
	        ▼         ▼         ▼
	  bucket 0:    bucket 1:  bucket 2:
	  [d0,d1,d2]   [d3,d4,d5]    [d6]
	        │         │           │
	        ▼         ▼           ▼
	   Accumulate  Accumulate  Accumulate
	        │         │           │
	        ▼         ▼           ▼
	      hash0      hash1       hash2
	        └─────────┼───────────┘
	                  ▼
	       Accumulate([hash0, hash1, hash2])
	                  │
	                  ▼
	               root hash

This is the shape of the hash-compare exchange in package collection
(spec §4.3): one peer sends its root hash; on mismatch, it sends its
per-bucket hashes; the remote compares those against its own buckets
and requests only the documents in buckets that actually differ,
instead of re-sending the whole collection on every sync pass. A
bucketSize of N keeps a collection of D documents comparable in O(D/N)
buckets rather than O(D) individual document hashes, trading
finer-grained diffs for fewer round trips as N grows.

# See Also

  - pkg/crdt for the document ordering this package's rollup depends on
  - pkg/collection for the GetHashes/GetBuckets operations that drive
    an actual anti-entropy sync round using this package's digests
*/
package hash
