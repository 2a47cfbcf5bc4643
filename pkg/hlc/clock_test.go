package hlc

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftdb/driftdb/pkg/direrr"
)

func TestTimestampStringOrderMatchesCausalOrder(t *testing.T) {
	a := Timestamp{Physical: 100, Logical: 0, Nonce: "aaaa"}
	b := Timestamp{Physical: 100, Logical: 1, Nonce: "0000"}
	c := Timestamp{Physical: 101, Logical: 0, Nonce: "0000"}

	assert.True(t, a.String() < b.String())
	assert.True(t, b.String() < c.String())
	assert.True(t, a.Less(b))
	assert.True(t, b.Less(c))
}

func TestTimestampParseRoundTrip(t *testing.T) {
	ts := Timestamp{Physical: 1234567890123, Logical: 42, Nonce: "deadbeef"}
	parsed, err := Parse(ts.String())
	require.NoError(t, err)
	assert.Equal(t, ts, parsed)
}

func TestParseRejectsMalformed(t *testing.T) {
	_, err := Parse("not-a-timestamp")
	assert.Error(t, err)
	_, err = Parse("abc-def-ghi")
	assert.Error(t, err)
}

func TestClockTickIsMonotonic(t *testing.T) {
	c := NewClock()
	var last Timestamp
	for i := 0; i < 500; i++ {
		next := c.Tick()
		assert.True(t, last.Less(next), "tick %d: %s should be less than %s", i, last, next)
		last = next
	}
}

func TestClockTickPinsPhysicalOnClockRegression(t *testing.T) {
	t0 := int64(1_000_000)
	nowFunc = func() int64 { return t0 }
	defer func() { nowFunc = func() int64 { return 0 } }()

	c := NewClock()
	first := c.Tick()
	assert.Equal(t, int64(t0), first.Physical)
	assert.Equal(t, uint32(0), first.Logical)

	// Simulate the wall clock jumping backward.
	nowFunc = func() int64 { return t0 - 500 }
	second := c.Tick()

	assert.Equal(t, first.Physical, second.Physical, "physical must not regress")
	assert.Equal(t, first.Logical+1, second.Logical, "logical counter must advance instead")
	assert.True(t, first.Less(second))
}

func TestClockObserveAdvancesToMaxPlusNextTick(t *testing.T) {
	c := NewClock()
	remote := Timestamp{Physical: 9_999_999_999, Logical: 7, Nonce: "ffffffff"}

	nowFunc = func() int64 { return 1 }
	defer func() { nowFunc = func() int64 { return 0 } }()

	_ = c.Observe(remote)
	next := c.Tick()

	assert.True(t, remote.Less(next))
	assert.Equal(t, remote.Physical, next.Physical)
	assert.Equal(t, remote.Logical+1, next.Logical)
}

func TestClockObserveIsIdempotentForEqualTimestamps(t *testing.T) {
	nowFunc = func() int64 { return 42 }
	defer func() { nowFunc = func() int64 { return 0 } }()

	c := NewClock()
	remote := Timestamp{Physical: 42, Logical: 3, Nonce: "abcd"}

	require.NoError(t, c.Observe(remote))
	before := c.Current()
	require.NoError(t, c.Observe(remote))
	after := c.Current()

	assert.Equal(t, before, after)
}

func TestClockObserveFlagsImplausibleDrift(t *testing.T) {
	nowFunc = func() int64 { return 10_000_000_000 }
	defer func() { nowFunc = func() int64 { return 0 } }()

	c := NewClock()
	farFuture := Timestamp{Physical: 10_000_000_000 + maxPlausibleDriftMillis*2, Logical: 0, Nonce: "aaaa"}

	err := c.Observe(farFuture)
	require.Error(t, err)
	var regression *direrr.ClockRegressionError
	require.True(t, errors.As(err, &regression))

	// The observation still folds in despite the warning.
	assert.Equal(t, farFuture, c.Current())
}

func TestClockObservePlausibleDriftIsNil(t *testing.T) {
	nowFunc = func() int64 { return 10_000_000_000 }
	defer func() { nowFunc = func() int64 { return 0 } }()

	c := NewClock()
	nearby := Timestamp{Physical: 10_000_000_000 + 5_000, Logical: 0, Nonce: "bbbb"}

	assert.NoError(t, c.Observe(nearby))
}

// TestClockMonotonicityUnderRandomInterleaving is the property test
// from spec §8.1: for any sequence of Tick/Observe calls on one
// clock, each Tick is strictly greater than every prior Tick and
// Observe argument.
func TestClockMonotonicityUnderRandomInterleaving(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	c := NewClock()

	var highWater Timestamp
	for i := 0; i < 2000; i++ {
		if rng.Intn(3) == 0 {
			remote := Timestamp{
				Physical: int64(rng.Intn(1_000_000)),
				Logical:  uint32(rng.Intn(1000)),
				Nonce:    "seed",
			}
			c.Observe(remote)
			if highWater.Less(remote) {
				highWater = remote
			}
			continue
		}
		ts := c.Tick()
		require.True(t, highWater.Less(ts), "iteration %d: tick %s did not dominate high-water %s", i, ts, highWater)
		highWater = ts
	}
}

func TestMarshalUnmarshalTextRoundTrip(t *testing.T) {
	c := NewClock()
	_ = c.Observe(Timestamp{Physical: 55, Logical: 2, Nonce: "beef"})

	data, err := c.MarshalText()
	require.NoError(t, err)

	restored := NewClock()
	require.NoError(t, restored.UnmarshalText(data))
	assert.Equal(t, c.Current(), restored.Current())
}

func TestUnmarshalTextEmptyLeavesZero(t *testing.T) {
	c := NewClock()
	require.NoError(t, c.UnmarshalText(nil))
	assert.Equal(t, Zero, c.Current())
}
