/*
Package hlc implements the Hybrid Logical Clock used to version every
field of every document in a driftdb collection.

A Timestamp combines a physical component (wall-clock milliseconds), a
logical component (a counter that disambiguates timestamps minted
within the same millisecond on the same replica), and a nonce (a short
random tag that makes timestamps independently minted by different
replicas distinguishable even when their physical and logical
components collide). Its canonical string form is ordered so that
plain string comparison equals causal order:

	<physical, 20 digits>-<logical, 6 digits>-<nonce>

That property is what lets the CRDT merge in package crdt reduce a
field-level "who wins" decision to a byte compare.

# Clock semantics

A Clock is owned by exactly one collection and is the single source
of truth for "what time is it, causally speaking" on that replica:

	c := hlc.NewClock()
	t1 := c.Tick()           // local write
	_ = c.Observe(remoteT)   // a field HLC seen on a document from a peer
	t2 := c.Tick()           // guaranteed to dominate t1 and remoteT

Tick can never fail. If the wall clock moves backward relative to the
last issued timestamp, the physical component is pinned and progress
continues through the logical counter — the clock degrades gracefully
to a plain Lamport clock for as long as the regression persists.

Observe folds the remote timestamp in unconditionally, but also
returns a *direrr.ClockRegressionError when the remote's physical
component sits implausibly far from this replica's wall clock — a
non-fatal warning a caller typically logs rather than treats as a
merge failure.

Persistence is the caller's concern (see package collection): Clock
implements encoding.TextMarshaler/TextUnmarshaler so a Storage adapter
can read/write its canonical form as an opaque blob. Losing the
persisted value on restart is not a correctness problem — the very
next Observe of any previously-written document pulls the fresh clock
back ahead of everything it has ever seen.
*/
package hlc
