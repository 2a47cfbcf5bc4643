package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/driftdb/driftdb/pkg/collection"
	"github.com/driftdb/driftdb/pkg/crdt"
)

var mergeFromCmd = &cobra.Command{
	Use:   "merge-from <collection> <file>",
	Short: "Apply a batch of remote CRDT documents read from file (the Push exchange of spec §6.2)",
	Long: `merge-from reads a JSON array of documents in driftdb's on-disk
document shape (id, _fields, _hash — the same shape EncodeDocument
produces) and applies each one through the collection's CRDT merge,
exactly as a peer's Push exchange would.`,
	Args: cobra.ExactArgs(2),
	RunE: runMergeFrom,
}

func runMergeFrom(cmd *cobra.Command, args []string) error {
	collectionName, path := args[0], args[1]

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("driftdb: read %q: %w", path, err)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return fmt.Errorf("driftdb: parse %q as a json array: %w", path, err)
	}

	docs := make([]crdt.Document, 0, len(entries))
	for i, entry := range entries {
		doc, err := collection.DecodeDocument(fmt.Sprintf("%s[%d]", path, i), string(entry))
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	c, err := openCollection(collectionName)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.Merge(docs); err != nil {
		return err
	}
	fmt.Printf("merged %d document(s) into %q\n", len(docs), collectionName)
	return nil
}
