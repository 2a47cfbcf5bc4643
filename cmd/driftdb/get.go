package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <collection> <id>",
	Short: "Fetch one document by id",
	Args:  cobra.ExactArgs(2),
	RunE:  runGet,
}

var allCmd = &cobra.Command{
	Use:   "all <collection>",
	Short: "List every document in a collection, in canonical order",
	Args:  cobra.ExactArgs(1),
	RunE:  runAll,
}

func runGet(cmd *cobra.Command, args []string) error {
	collectionName, id := args[0], args[1]

	c, err := openCollection(collectionName)
	if err != nil {
		return err
	}
	defer c.Close()

	data, err := c.Get(id)
	if err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("driftdb: document %q not found in %q", id, collectionName)
	}
	return printJSON(data)
}

func runAll(cmd *cobra.Command, args []string) error {
	collectionName := args[0]

	c, err := openCollection(collectionName)
	if err != nil {
		return err
	}
	defer c.Close()

	docs, err := c.All()
	if err != nil {
		return err
	}
	return printJSON(docs)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
