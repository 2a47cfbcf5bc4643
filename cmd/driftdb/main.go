// Command driftdb is a small CLI over a single driftdb collection: it
// opens a storage backend from flags or a config file, then exposes
// insert/get/all/hashes/merge-from as subcommands, plus a serve mode
// that exports Prometheus metrics and health endpoints. It is a thin
// demonstration harness, not a server for the sync protocol itself
// (spec §1: "Any HTTP/network transport... is an application
// concern").
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/driftdb/driftdb/pkg/log"
)

var (
	// Version is set via -ldflags at build time.
	Version = "dev"

	flagDataDir     string
	flagBackend     string
	flagConfig      string
	flagLogLevel    string
	flagLogJSON     bool
	flagBucketSize  int
	flagMetricsAddr string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "driftdb",
	Short:   "driftdb - a local-first, eventually-consistent document store",
	Version: Version,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("driftdb version %s\n", Version))

	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "./driftdb-data", "Directory the storage backend persists under")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "bolt", "Storage backend: bolt or fs")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a driftdb.yaml config file (when set, used instead of --data-dir and --backend)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&flagLogJSON, "log-json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().IntVar(&flagBucketSize, "bucket-size", 0, "Anti-entropy bucket size (0 uses the collection/config default)")

	cobra.OnInitialize(initLogging)

	rootCmd.AddCommand(insertCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(allCmd)
	rootCmd.AddCommand(hashesCmd)
	rootCmd.AddCommand(mergeFromCmd)
	rootCmd.AddCommand(serveCmd)
}

func initLogging() {
	log.Init(log.Config{
		Level:      log.Level(flagLogLevel),
		JSONOutput: flagLogJSON,
	})
}
