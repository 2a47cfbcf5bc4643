package metrics

import (
	"time"

	"github.com/driftdb/driftdb/pkg/collection"
	"github.com/driftdb/driftdb/pkg/log"
)

// Collector periodically polls one or more collections and publishes
// their document/listener/clock counts as gauges.
type Collector struct {
	collections []*collection.Collection
	stopCh      chan struct{}
}

// NewCollector creates a collector over the given collections.
func NewCollector(collections ...*collection.Collection) *Collector {
	return &Collector{
		collections: collections,
		stopCh:      make(chan struct{}),
	}
}

// Start begins collecting metrics every 15 seconds, plus once
// immediately.
func (c *Collector) Start() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		c.collect()
		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-c.stopCh:
				ticker.Stop()
				return
			}
		}
	}()
}

// Stop stops the collector.
func (c *Collector) Stop() {
	close(c.stopCh)
}

func (c *Collector) collect() {
	for _, coll := range c.collections {
		stats, err := coll.Stats()
		if err != nil {
			log.WithComponent("metrics").Warn().Err(err).Str("collection", coll.Name()).Msg("failed to collect collection stats")
			continue
		}
		DocumentsTotal.WithLabelValues(coll.Name()).Set(float64(stats.Documents))
		ListenersTotal.WithLabelValues(coll.Name()).Set(float64(stats.Listeners))
		ClockLogical.WithLabelValues(coll.Name()).Set(float64(stats.Logical))
	}
}
