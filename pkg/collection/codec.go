package collection

import (
	"encoding/json"
	"fmt"

	"github.com/driftdb/driftdb/pkg/crdt"
	"github.com/driftdb/driftdb/pkg/direrr"
	"github.com/driftdb/driftdb/pkg/hlc"
)

// persistedField is one field's on-disk shape: an HLC string paired
// with the JSON-encoded value (spec §6.1).
type persistedField struct {
	HLC   string     `json:"hlc"`
	Value crdt.Value `json:"value"`
}

// persistedDocument is a CRDT document's on-disk shape: id, a field
// map under the "_fields" key, and a content hash under "_hash" (spec
// §6.1's bare-underscore spelling, see DESIGN.md).
type persistedDocument struct {
	ID     string                    `json:"id"`
	Fields map[string]persistedField `json:"_fields"`
	Hash   string                    `json:"_hash"`
}

func encodeDocument(doc crdt.Document) (string, error) {
	pd := persistedDocument{
		ID:     doc.ID,
		Fields: make(map[string]persistedField, len(doc.Fields)),
		Hash:   doc.Hash,
	}
	for name, f := range doc.Fields {
		pd.Fields[name] = persistedField{HLC: f.HLC.String(), Value: f.Value}
	}
	data, err := json.Marshal(pd)
	if err != nil {
		return "", fmt.Errorf("collection: encode document %q: %w", doc.ID, err)
	}
	return string(data), nil
}

func decodeDocument(path, content string) (crdt.Document, error) {
	var pd persistedDocument
	if err := json.Unmarshal([]byte(content), &pd); err != nil {
		return crdt.Document{}, direrr.InvalidContent(path, err.Error())
	}

	fields := make(map[string]crdt.Field, len(pd.Fields))
	var docHLC hlc.Timestamp
	first := true
	for name, pf := range pd.Fields {
		ts, err := hlc.Parse(pf.HLC)
		if err != nil {
			return crdt.Document{}, direrr.InvalidContent(path, "field "+name+" has a malformed hlc: "+err.Error())
		}
		fields[name] = crdt.Field{Value: pf.Value, HLC: ts}
		if first || docHLC.Less(ts) {
			docHLC = ts
			first = false
		}
	}

	return crdt.Document{ID: pd.ID, Fields: fields, Hash: pd.Hash, DocHLC: docHLC}, nil
}

// dataFromDocument projects a document's fields into the plain JSON
// map callers of Get/All/Where see, per the spec's insert/get scenario
// (the id field is included, not stripped).
func dataFromDocument(doc crdt.Document) map[string]interface{} {
	out := make(map[string]interface{}, len(doc.Fields))
	for name, f := range doc.Fields {
		out[name] = f.Value.ToJSON()
	}
	return out
}

// EncodeDocument renders a CRDT document in driftdb's on-disk/wire
// shape (spec §6.1). It is exported for callers implementing the
// abstract sync exchanges in spec §6.2 (Digest/Buckets/Push) over a
// concrete transport, which must serialize documents the same way
// this collection does when persisting them.
func EncodeDocument(doc crdt.Document) (string, error) {
	return encodeDocument(doc)
}

// DecodeDocument parses content produced by EncodeDocument back into a
// crdt.Document. path is used only to annotate InvalidContent errors.
func DecodeDocument(path, content string) (crdt.Document, error) {
	return decodeDocument(path, content)
}

func valuesFromData(data map[string]interface{}) (map[string]crdt.Value, error) {
	out := make(map[string]crdt.Value, len(data))
	for name, v := range data {
		cv, err := crdt.FromJSON(v)
		if err != nil {
			return nil, fmt.Errorf("collection: field %q: %w", name, err)
		}
		out[name] = cv
	}
	return out, nil
}
