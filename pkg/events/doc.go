/*
Package events implements the keyed listener registry a Collection
notifies after every Insert, Update, and Merge (spec §4.4's
register_listener/unregister_listener). It is the mechanism an
application uses to react to document changes without polling.

# Design: keyed registration, not subscribe/receive

	RegisterListener(key, fn) ──► Registry.listeners[key] = fn
	                                      │
	  Insert/Update/Merge ──► Notify(Event{Op, ID, Data})
	                                      │
	                          ┌───────────┼───────────┐
	                          ▼           ▼           ▼
	                     listener A  listener B  listener C
	                    (synchronous, same goroutine, unspecified order)

Register/Unregister take an explicit caller-supplied key (spec §4.4),
rather than handing back an opaque subscription handle the way a
channel-based pub/sub broker typically does. This matters in practice:
a caller that re-registers the same logical listener (say, on
reconnect) uses the same key and naturally replaces the old
registration instead of accumulating duplicates, and unregistering
doesn't require threading a handle value back to wherever registration
happened.

# Synchronous delivery

Notify calls every registered Listener directly, on the goroutine that
is mutating the collection — there is no internal channel, buffer, or
background dispatcher. This is a deliberate simplicity trade-off: a
slow or blocking listener stalls the collection's single writer
goroutine for every subsequent Insert/Update/Merge, so listeners must
be cheap (update an in-memory counter, push to an already-buffered
channel they own) rather than do I/O inline. An application that needs
asynchronous fan-out should have its listener itself hand off to a
worker pool or channel rather than block here.

# Iteration order

Notify delivers to listeners in Go map-iteration order, which is
unspecified and varies between calls. Listeners must not depend on
delivery order relative to each other; each one only needs to see every
event exactly once.

# See Also

  - pkg/collection for the Collection that owns a Registry and calls
    Notify after every mutation
*/
package events
