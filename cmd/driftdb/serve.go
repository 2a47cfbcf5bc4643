package main

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/driftdb/driftdb/pkg/collection"
	"github.com/driftdb/driftdb/pkg/config"
	"github.com/driftdb/driftdb/pkg/log"
	"github.com/driftdb/driftdb/pkg/metrics"
	"github.com/driftdb/driftdb/pkg/validate"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Open the configured collections and serve /metrics, /health, /ready",
	Long: `serve eagerly opens every collection named in the config file's
"collections" list against one shared storage adapter, registers each
one's health with pkg/metrics, and blocks serving Prometheus metrics
and health endpoints. It does not serve the sync protocol itself
(spec §1): that is an application concern left to the integrator.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "Address to serve /metrics and /health on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	adapter, err := openAdapter(cfg)
	if err != nil {
		metrics.RegisterCriticalComponent("storage", false, err.Error())
		return err
	}
	metrics.RegisterCriticalComponent("storage", true, "")

	collections := make([]*collection.Collection, 0, len(cfg.Collections))
	for _, cc := range cfg.Collections {
		componentName := "collection:" + cc.Name
		c := collection.New(cc.Name, adapter, validate.NewFieldValidator(),
			collection.WithBucketSize(cfg.BucketSizeFor(cc.Name)))
		if _, err := c.All(); err != nil {
			metrics.RegisterCriticalComponent(componentName, false, err.Error())
			return err
		}
		metrics.RegisterCriticalComponent(componentName, true, "")
		collections = append(collections, c)
		log.WithComponent("serve").Info().Str("collection", cc.Name).Msg("collection opened")
	}

	defer func() {
		for _, c := range collections {
			_ = c.Close()
		}
	}()

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/health", metrics.HealthHandler())
	mux.HandleFunc("/ready", metrics.ReadyHandler())
	mux.HandleFunc("/live", metrics.LivenessHandler())

	addr := cfg.MetricsAddr
	if flagMetricsAddr != "" {
		addr = flagMetricsAddr
	}
	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.WithComponent("serve").Info().Str("addr", addr).Msg("serving metrics and health endpoints")
	return server.ListenAndServe()
}
