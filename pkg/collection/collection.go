package collection

import (
	"errors"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"github.com/driftdb/driftdb/pkg/crdt"
	"github.com/driftdb/driftdb/pkg/direrr"
	"github.com/driftdb/driftdb/pkg/events"
	"github.com/driftdb/driftdb/pkg/hlc"
	"github.com/driftdb/driftdb/pkg/log"
	"github.com/driftdb/driftdb/pkg/metrics"
	"github.com/driftdb/driftdb/pkg/storage"
	"github.com/driftdb/driftdb/pkg/validate"
)

// DefaultBucketSize is the bucket size get_hashes/get_buckets use when
// the caller does not name one (spec §4.4).
const DefaultBucketSize = 100

// cacheSize bounds the read-through document cache. A collection with
// a working set larger than this still behaves correctly; it just
// pays a storage read on every eviction-then-access.
const cacheSize = 4096

// state is a Collection's position in the three-state lifecycle (spec
// §4.4): unopened, open, closing.
type state int

const (
	stateUnopened state = iota
	stateOpen
	stateClosing
)

// ErrClosing is returned by any mutating operation submitted after
// Close has been called; the collection only drains work already
// admitted to its queue.
var ErrClosing = errors.New("collection: closing, rejects new writes")

// task is one FIFO-queued mutation.
type task struct {
	run  func() error
	done chan error
}

// Collection is the sync engine (spec §4.4): it exposes get/all/
// where/insert/update/merge, computes anti-entropy digests, and
// persists its HLC clock and documents through a storage.Blob. All
// mutating operations serialize through a single worker goroutine
// (single-writer cooperative concurrency, spec §5); reads take no lock
// and never wait on the mutation queue, including for mutations queued
// before them.
type Collection struct {
	name       string
	schema     string
	bucketSize int
	adapter    storage.Blob
	validator  validate.Validator
	clock      *hlc.Clock
	cache      *lru.Cache[string, crdt.Document]
	listeners  *events.Registry
	logger     zerolog.Logger

	openOnce sync.Once
	openErr  error

	stateMu sync.RWMutex
	st      state
	taskCh  chan task
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// Option configures a Collection at construction time.
type Option func(*Collection)

// WithBucketSize overrides DefaultBucketSize.
func WithBucketSize(n int) Option {
	return func(c *Collection) {
		if n > 0 {
			c.bucketSize = n
		}
	}
}

// WithSchema sets the schema name passed to the Validator; it
// defaults to the collection's own name.
func WithSchema(name string) Option {
	return func(c *Collection) { c.schema = name }
}

// New creates a Collection in the unopened state. Open() is called
// implicitly by the first operation other than Close.
func New(name string, adapter storage.Blob, validator validate.Validator, opts ...Option) *Collection {
	cache, _ := lru.New[string, crdt.Document](cacheSize)
	c := &Collection{
		name:       name,
		schema:     name,
		bucketSize: DefaultBucketSize,
		adapter:    adapter,
		validator:  validator,
		clock:      hlc.NewClock(),
		cache:      cache,
		listeners:  events.NewRegistry(),
		logger:     log.WithCollection(name),
		taskCh:     make(chan task, 64),
		stopCh:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Collection) clockPath() string { return c.name + ".hlc" }
func (c *Collection) docPath(id string) string {
	return fmt.Sprintf("%s/%s.json", c.name, id)
}

// open performs the unopened->open transition: load the persisted
// clock (a missing or malformed clock file just starts fresh; losing
// clock history is recoverable because observing any stored document
// pulls the clock forward again, spec §4.1) and start the worker
// goroutine.
func (c *Collection) open() error {
	c.openOnce.Do(func() {
		raw, err := c.adapter.Read(c.clockPath())
		var nf *direrr.NotFoundError
		if err != nil && !errors.As(err, &nf) {
			c.openErr = direrr.StorageFailure("open", err)
			return
		}
		if err == nil {
			if uerr := c.clock.UnmarshalText([]byte(raw)); uerr != nil {
				c.logger.Warn().Err(uerr).Msg("stored clock was unreadable, starting from zero")
			}
		}

		c.stateMu.Lock()
		c.st = stateOpen
		c.stateMu.Unlock()

		c.wg.Add(1)
		go c.runWorker()
		c.logger.Info().Msg("collection opened")
	})
	return c.openErr
}

func (c *Collection) runWorker() {
	defer c.wg.Done()
	for {
		select {
		case t := <-c.taskCh:
			t.done <- t.run()
		case <-c.stopCh:
			return
		}
	}
}

// submit enqueues fn and blocks until the worker goroutine has run it,
// preserving FIFO mutation order within this collection.
func (c *Collection) submit(fn func() error) error {
	if err := c.open(); err != nil {
		return err
	}
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	if c.st != stateOpen {
		return ErrClosing
	}
	done := make(chan error, 1)
	c.taskCh <- task{run: fn, done: done}
	return <-done
}

// Close moves the collection into the closing, then terminal, state.
// Operations already admitted to the queue finish; no new mutation is
// accepted once Close has been called.
func (c *Collection) Close() error {
	if err := c.open(); err != nil {
		return err
	}
	c.stateMu.Lock()
	if c.st != stateOpen {
		c.stateMu.Unlock()
		return nil
	}
	c.st = stateClosing
	c.stateMu.Unlock()

	close(c.stopCh)
	c.wg.Wait()
	return c.adapter.Close()
}

func (c *Collection) persistClock() error {
	text, _ := c.clock.MarshalText()
	if err := c.adapter.Write(c.clockPath(), string(text)); err != nil {
		return direrr.StorageFailure("persist-clock", err)
	}
	return nil
}

func (c *Collection) readDocument(id string) (crdt.Document, bool, error) {
	if doc, ok := c.cache.Get(id); ok {
		return doc, true, nil
	}
	raw, err := c.adapter.Read(c.docPath(id))
	var nf *direrr.NotFoundError
	if errors.As(err, &nf) {
		return crdt.Document{}, false, nil
	}
	if err != nil {
		return crdt.Document{}, false, direrr.StorageFailure("read", err)
	}
	doc, err := decodeDocument(c.docPath(id), raw)
	if err != nil {
		return crdt.Document{}, false, err
	}
	c.cache.Add(id, doc)
	return doc, true, nil
}

func (c *Collection) writeDocument(doc crdt.Document) error {
	encoded, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	if err := c.adapter.Write(c.docPath(doc.ID), encoded); err != nil {
		return direrr.StorageFailure("write", err)
	}
	c.cache.Add(doc.ID, doc)
	return nil
}

func (c *Collection) loadAll() ([]crdt.Document, error) {
	names, err := c.adapter.List(c.name)
	if err != nil {
		return nil, direrr.StorageFailure("list", err)
	}
	docs := make([]crdt.Document, 0, len(names))
	for _, name := range names {
		id := trimJSONSuffix(name)
		doc, ok, err := c.readDocument(id)
		if err != nil {
			return nil, err
		}
		if ok {
			docs = append(docs, doc)
		}
	}
	crdt.SortByCanonicalOrder(docs)
	return docs, nil
}

func trimJSONSuffix(name string) string {
	const suffix = ".json"
	if len(name) > len(suffix) && name[len(name)-len(suffix):] == suffix {
		return name[:len(name)-len(suffix)]
	}
	return name
}

// Get returns a document's data, or nil if it does not exist (spec
// §7: NotFound from read during get becomes nil, not an error).
func (c *Collection) Get(id string) (map[string]interface{}, error) {
	if err := c.open(); err != nil {
		return nil, err
	}
	doc, ok, err := c.readDocument(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return dataFromDocument(doc), nil
}

// All returns every document's data in canonical order.
func (c *Collection) All() ([]map[string]interface{}, error) {
	return c.Where(nil)
}

// Where returns every document's data for which predicate returns
// true; a nil predicate matches everything.
func (c *Collection) Where(predicate func(map[string]interface{}) bool) ([]map[string]interface{}, error) {
	if err := c.open(); err != nil {
		return nil, err
	}
	docs, err := c.loadAll()
	if err != nil {
		return nil, err
	}
	out := make([]map[string]interface{}, 0, len(docs))
	for _, doc := range docs {
		data := dataFromDocument(doc)
		if predicate == nil || predicate(data) {
			out = append(out, data)
		}
	}
	return out, nil
}

// Insert validates data, ticks the clock, builds a new document, and
// persists it (spec §4.4's insert algorithm). It fails with
// AlreadyExists if id is already present.
func (c *Collection) Insert(id string, data map[string]interface{}) (map[string]interface{}, error) {
	timer := metrics.NewTimer()
	var result map[string]interface{}
	err := c.submit(func() error {
		if _, exists, err := c.readDocument(id); err != nil {
			return err
		} else if exists {
			return direrr.AlreadyExists(id)
		}

		values, err := valuesFromData(data)
		if err != nil {
			return err
		}
		validated, err := c.validator.Validate(c.schema, values)
		if err != nil {
			return err
		}

		ts := c.clock.Tick()
		doc := crdt.MakeDocument(ts, id, validated)
		if err := c.persistClock(); err != nil {
			return err
		}
		if err := c.writeDocument(doc); err != nil {
			return err
		}
		result = dataFromDocument(doc)
		c.listeners.Notify(events.Event{Op: events.OpInsert, ID: id, Data: result})
		return nil
	})
	timer.ObserveDuration(metrics.InsertDuration)
	metrics.OperationsTotal.WithLabelValues("insert", outcomeLabel(err)).Inc()
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Update re-ticks each changed field, merges it over the stored
// document, validates the resulting data, and persists it (spec
// §4.4's update algorithm). It fails with NotFound if id is absent.
func (c *Collection) Update(id string, partial map[string]interface{}) (map[string]interface{}, error) {
	timer := metrics.NewTimer()
	var result map[string]interface{}
	err := c.submit(func() error {
		existing, ok, err := c.readDocument(id)
		if err != nil {
			return err
		}
		if !ok {
			return direrr.NotFound("document", id)
		}

		changes, err := valuesFromData(partial)
		if err != nil {
			return err
		}

		updated := crdt.UpdateDocument(c.clock.Tick, existing, changes)

		merged := dataFromDocument(updated)
		mergedValues, err := valuesFromData(merged)
		if err != nil {
			return err
		}
		if _, err := c.validator.Validate(c.schema, mergedValues); err != nil {
			return err
		}

		if err := c.persistClock(); err != nil {
			return err
		}
		if err := c.writeDocument(updated); err != nil {
			return err
		}
		result = merged
		c.listeners.Notify(events.Event{Op: events.OpUpdate, ID: id, Data: result})
		return nil
	})
	timer.ObserveDuration(metrics.UpdateDuration)
	metrics.OperationsTotal.WithLabelValues("update", outcomeLabel(err)).Inc()
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RegisterListener adds or replaces the listener at key; it fires on
// every Insert, Update, and Merge.
func (c *Collection) RegisterListener(key string, fn func(op string, id string, data map[string]interface{})) {
	c.listeners.Register(key, func(e events.Event) { fn(string(e.Op), e.ID, e.Data) })
	metrics.ListenersTotal.WithLabelValues(c.name).Set(float64(c.listeners.Len()))
}

// UnregisterListener removes the listener at key, if any.
func (c *Collection) UnregisterListener(key string) {
	c.listeners.Unregister(key)
	metrics.ListenersTotal.WithLabelValues(c.name).Set(float64(c.listeners.Len()))
}

// Name returns the collection's name, as used in its metric labels and
// storage paths.
func (c *Collection) Name() string { return c.name }

// Stats reports point-in-time counts a metrics collector can poll
// without taking the mutation queue's lock.
type Stats struct {
	Documents int
	Listeners int
	Logical   uint32
}

// Stats returns the collection's current document count, listener
// count, and clock logical counter.
func (c *Collection) Stats() (Stats, error) {
	docs, err := c.All()
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Documents: len(docs),
		Listeners: c.listeners.Len(),
		Logical:   c.clock.Current().Logical,
	}, nil
}

func outcomeLabel(err error) string {
	if err == nil {
		return "ok"
	}
	return "error"
}
