package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterAndNotify(t *testing.T) {
	r := NewRegistry()
	var got Event
	r.Register("watcher", func(e Event) { got = e })

	r.Notify(Event{Op: OpInsert, ID: "u1", Data: map[string]interface{}{"name": "Alice"}})

	assert.Equal(t, OpInsert, got.Op)
	assert.Equal(t, "u1", got.ID)
}

func TestUnregisterStopsDelivery(t *testing.T) {
	r := NewRegistry()
	calls := 0
	r.Register("watcher", func(Event) { calls++ })
	r.Unregister("watcher")

	r.Notify(Event{Op: OpUpdate, ID: "u1"})

	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, r.Len())
}
