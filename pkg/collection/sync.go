package collection

import (
	"github.com/driftdb/driftdb/pkg/crdt"
	"github.com/driftdb/driftdb/pkg/events"
	"github.com/driftdb/driftdb/pkg/hash"
	"github.com/driftdb/driftdb/pkg/metrics"
)

// Merge applies each incoming document through merge_document against
// any local copy (spec §4.4's merge algorithm): the CRDT layer cannot
// fail, but reading or persisting a document can, so one bad document
// does not abort the rest of the batch. The first error encountered is
// returned after every document has been attempted. Incoming documents
// are not passed through the Validator.
func (c *Collection) Merge(docs []crdt.Document) error {
	var firstErr error
	for _, incoming := range docs {
		timer := metrics.NewTimer()
		err := c.submit(func() error {
			existing, existed, err := c.readDocument(incoming.ID)
			if err != nil {
				return err
			}

			merged := incoming
			if existed {
				merged = crdt.MergeDocument(existing, incoming)
			}
			if err := c.writeDocument(merged); err != nil {
				return err
			}
			if warn := c.clock.Observe(merged.DocHLC); warn != nil {
				c.logger.Warn().Err(warn).Str("id", merged.ID).Msg("implausible remote clock observed")
			}
			if err := c.persistClock(); err != nil {
				return err
			}

			metrics.MergedDocumentsTotal.WithLabelValues(existedLabel(existed)).Inc()
			c.listeners.Notify(events.Event{Op: events.OpMerge, ID: merged.ID, Data: dataFromDocument(merged)})
			return nil
		})
		timer.ObserveDuration(metrics.MergeDuration)
		metrics.OperationsTotal.WithLabelValues("merge", outcomeLabel(err)).Inc()
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func existedLabel(existed bool) string {
	if existed {
		return "true"
	}
	return "false"
}

// GetHashes computes the anti-entropy digest (spec §4.3): every
// document's content hash in canonical order, rolled up into
// bucketSize-wide buckets, and a root hash over the bucket hashes in
// ascending bucket-index order. An empty collection's root is the
// empty-accumulation hash, matching hash.Accumulate(nil).
func (c *Collection) GetHashes(bucketSize int) (root string, buckets map[int]string, err error) {
	if bucketSize <= 0 {
		bucketSize = c.bucketSize
	}
	timer := metrics.NewTimer()
	defer timer.ObserveDuration(metrics.DigestDuration)

	if err := c.open(); err != nil {
		return "", nil, err
	}
	docs, err := c.loadAll()
	if err != nil {
		return "", nil, err
	}

	hashes := make([]string, len(docs))
	for i, doc := range docs {
		hashes[i] = doc.Hash
	}
	buckets = hash.Bucket(hashes, bucketSize)

	bucketHashes := make([]string, len(buckets))
	for i := range bucketHashes {
		bucketHashes[i] = buckets[i]
	}
	root = hash.Accumulate(bucketHashes)
	return root, buckets, nil
}

// GetBuckets returns the full documents backing the requested bucket
// indices, letting a peer that found a bucket mismatch fetch exactly
// the documents it needs (spec §4.3's exchange protocol).
func (c *Collection) GetBuckets(indices []int, bucketSize int) (map[int][]crdt.Document, error) {
	if bucketSize <= 0 {
		bucketSize = c.bucketSize
	}
	if err := c.open(); err != nil {
		return nil, err
	}
	docs, err := c.loadAll()
	if err != nil {
		return nil, err
	}

	wanted := make(map[int]bool, len(indices))
	for _, idx := range indices {
		wanted[idx] = true
	}
	metrics.BucketsCompared.Add(float64(len(indices)))

	out := make(map[int][]crdt.Document, len(indices))
	for i, doc := range docs {
		idx := i / bucketSize
		if wanted[idx] {
			out[idx] = append(out[idx], doc)
		}
	}
	return out, nil
}
