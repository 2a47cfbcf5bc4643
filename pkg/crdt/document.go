package crdt

import (
	"sort"

	"github.com/driftdb/driftdb/pkg/hash"
	"github.com/driftdb/driftdb/pkg/hlc"
	"github.com/rs/zerolog/log"
)

// Field is a value paired with the HLC timestamp that last wrote it.
// The HLC is immutable once assigned: replacing a field always
// requires a strictly greater HLC (spec §3.1).
type Field struct {
	Value Value
	HLC   hlc.Timestamp
}

// Document is a named set of fields plus a content hash and the
// document-level HLC (the max field HLC). id is stored both as the
// document's ID and as one of its own fields, per spec §3.1.
type Document struct {
	ID     string
	Fields map[string]Field
	Hash   string
	DocHLC hlc.Timestamp
}

// MergeField implements the field-merge law: the field with the
// greater HLC wins (spec §4.3). Equal HLCs can only arise if two
// replicas independently minted the identical (physical, logical,
// nonce) triple, which the nonce makes vanishingly unlikely; this
// implementation resolves the tie deterministically in favor of a
// (side-a-wins) and, when the two tied values differ, logs a warning
// since that likely indicates a nonce source that isn't random enough
// to trust.
func MergeField(a, b Field) Field {
	switch a.HLC.Compare(b.HLC) {
	case 1:
		return a
	case -1:
		return b
	default:
		if !a.Value.Equal(b.Value) {
			log.Warn().
				Str("component", "crdt").
				Str("hlc", a.HLC.String()).
				Msg("field merge saw equal HLCs with differing values; this should be practically impossible")
		}
		return a
	}
}

// fieldsToJSON converts a field map into the plain map[string]Value
// tree hash.Object expects, dropping HLCs (the hash covers values
// only, per spec §4.2).
func fieldsToJSON(fields map[string]Field) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for name, f := range fields {
		out[name] = f.Value.ToJSON()
	}
	return out
}

func hashFields(fields map[string]Field) string {
	return hash.Object(fieldsToJSON(fields))
}

func maxFieldHLC(fields map[string]Field) hlc.Timestamp {
	var max hlc.Timestamp
	first := true
	for _, f := range fields {
		if first || max.Less(f.HLC) {
			max = f.HLC
			first = false
		}
	}
	return max
}

// MakeDocument builds a new document from validated data, assigning
// the same HLC to every derived field including the id field (spec
// §4.3).
func MakeDocument(ts hlc.Timestamp, id string, data map[string]Value) Document {
	fields := make(map[string]Field, len(data)+1)
	fields["id"] = Field{Value: String(id), HLC: ts}
	for name, v := range data {
		fields[name] = Field{Value: v, HLC: ts}
	}
	return Document{
		ID:     id,
		Fields: fields,
		Hash:   hashFields(fields),
		DocHLC: ts,
	}
}

// UpdateDocument applies partial_changes over doc, re-ticking only the
// changed fields via tick (one tick per changed field, per spec §4.4's
// update algorithm). Unchanged fields retain their prior Field
// unmodified. The hash and doc_hlc are recomputed.
func UpdateDocument(tick func() hlc.Timestamp, doc Document, partialChanges map[string]Value) Document {
	fields := make(map[string]Field, len(doc.Fields))
	for name, f := range doc.Fields {
		fields[name] = f
	}
	for name, v := range partialChanges {
		fields[name] = Field{Value: v, HLC: tick()}
	}
	return Document{
		ID:     doc.ID,
		Fields: fields,
		Hash:   hashFields(fields),
		DocHLC: maxFieldHLC(fields),
	}
}

// MergeDocument computes the CRDT join of local and remote: the union
// of field names, each resolved by MergeField, with absent-side
// tolerance (spec §4.3). The result satisfies the commutative,
// associative, and idempotent merge laws because MergeField does.
func MergeDocument(local, remote Document) Document {
	names := make(map[string]struct{}, len(local.Fields)+len(remote.Fields))
	for name := range local.Fields {
		names[name] = struct{}{}
	}
	for name := range remote.Fields {
		names[name] = struct{}{}
	}

	fields := make(map[string]Field, len(names))
	for name := range names {
		lf, lok := local.Fields[name]
		rf, rok := remote.Fields[name]
		switch {
		case lok && rok:
			fields[name] = MergeField(lf, rf)
		case lok:
			fields[name] = lf
		default:
			fields[name] = rf
		}
	}

	id := local.ID
	if id == "" {
		id = remote.ID
	}

	return Document{
		ID:     id,
		Fields: fields,
		Hash:   hashFields(fields),
		DocHLC: maxFieldHLC(fields),
	}
}

// SortByCanonicalOrder orders docs ascending by doc_hlc string, with id
// as tie-breaker (spec §4.4 "Ordering"), the order every hash/bucket
// operation requires so that two replicas with pairwise-equal
// document sets compute identical digests.
func SortByCanonicalOrder(docs []Document) {
	sort.Slice(docs, func(i, j int) bool {
		a, b := docs[i], docs[j]
		as, bs := a.DocHLC.String(), b.DocHLC.String()
		if as != bs {
			return as < bs
		}
		return a.ID < b.ID
	})
}
