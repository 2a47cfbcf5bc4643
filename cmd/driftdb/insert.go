package main

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var insertCmd = &cobra.Command{
	Use:   "insert <collection> <id|-> <json-data>",
	Short: "Insert a new document",
	Long: `Insert a new document into a collection.

Pass "-" as id to generate one with google/uuid:

  driftdb insert users - '{"name":"Alice","age":30}'`,
	Args: cobra.ExactArgs(3),
	RunE: runInsert,
}

func runInsert(cmd *cobra.Command, args []string) error {
	collectionName, id, rawData := args[0], args[1], args[2]
	if id == "-" {
		id = uuid.NewString()
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(rawData), &data); err != nil {
		return fmt.Errorf("driftdb: parse json data: %w", err)
	}

	c, err := openCollection(collectionName)
	if err != nil {
		return err
	}
	defer c.Close()

	result, err := c.Insert(id, data)
	if err != nil {
		return err
	}
	return printJSON(result)
}
