package main

import (
	"github.com/spf13/cobra"
)

var hashesCmd = &cobra.Command{
	Use:   "hashes <collection>",
	Short: "Print the root hash and per-bucket hashes used for anti-entropy",
	Args:  cobra.ExactArgs(1),
	RunE:  runHashes,
}

func runHashes(cmd *cobra.Command, args []string) error {
	collectionName := args[0]

	c, err := openCollection(collectionName)
	if err != nil {
		return err
	}
	defer c.Close()

	root, buckets, err := c.GetHashes(flagBucketSize)
	if err != nil {
		return err
	}
	return printJSON(map[string]interface{}{
		"root":    root,
		"buckets": buckets,
	})
}
