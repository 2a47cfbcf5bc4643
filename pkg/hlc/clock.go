package hlc

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/driftdb/driftdb/pkg/direrr"
)

// maxPlausibleDriftMillis bounds how far a remote timestamp's physical
// component may sit from this replica's wall clock before Observe
// treats it as implausible (spec §7: "far ahead or behind local
// time"). A replica that has been offline for under a day, or whose
// peer's clock is skewed by the same, is unremarkable; anything past
// that points at a misconfigured peer clock worth a warning.
const maxPlausibleDriftMillis = 24 * int64(time.Hour/time.Millisecond)

// nowFunc is overridden in tests to pin wall-clock time.
var nowFunc = func() int64 { return time.Now().UnixMilli() }

// nonceFunc is overridden in tests to produce deterministic nonces.
var nonceFunc = func() string {
	id := uuid.New()
	return strings.ToLower(hexEncode(id[:4]))
}

func hexEncode(b []byte) string {
	const hextable = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hextable[c>>4]
		out[i*2+1] = hextable[c&0x0f]
	}
	return string(out)
}

// Timestamp is a Hybrid Logical Clock value: physical time in
// milliseconds since the Unix epoch, a logical counter that
// disambiguates timestamps minted within the same millisecond, and a
// random nonce that makes two independently-minted timestamps with
// identical physical/logical components distinguishable (and, per the
// spec, makes colliding values for the same (document, field) pair
// effectively impossible).
type Timestamp struct {
	Physical int64
	Logical  uint32
	Nonce    string
}

// Zero is the smallest possible timestamp, ordering before any
// timestamp ever minted by a real clock.
var Zero = Timestamp{}

// String renders the canonical form
// <physical 20-digit ms>-<logical 6-digit counter>-<nonce>, a string
// whose lexicographic order equals the timestamp's causal order. The
// physical part is the zero-padded decimal millisecond count since the
// Unix epoch, not an ISO-8601 date.
func (t Timestamp) String() string {
	return fmt.Sprintf("%020d-%06d-%s", t.Physical, t.Logical, t.Nonce)
}

// Parse reverses String. It is forgiving of the exact nonce width
// (the spec fixes the layout of the first two fields, not the last).
func Parse(s string) (Timestamp, error) {
	parts := strings.SplitN(s, "-", 3)
	if len(parts) != 3 {
		return Timestamp{}, fmt.Errorf("hlc: malformed timestamp %q", s)
	}
	physical, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Timestamp{}, fmt.Errorf("hlc: bad physical component in %q: %w", s, err)
	}
	logical, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return Timestamp{}, fmt.Errorf("hlc: bad logical component in %q: %w", s, err)
	}
	return Timestamp{Physical: physical, Logical: uint32(logical), Nonce: parts[2]}, nil
}

// Less reports whether t sorts strictly before other under the
// canonical string order (equivalently: causal order).
func (t Timestamp) Less(other Timestamp) bool {
	return t.String() < other.String()
}

// Compare returns -1, 0, or 1 the way strings.Compare does, comparing
// the canonical string form.
func (t Timestamp) Compare(other Timestamp) int {
	return strings.Compare(t.String(), other.String())
}

// max returns the component-wise maximum of two timestamps: the
// greater physical time wins outright; on a physical tie the greater
// logical counter wins. The nonce of the winning side is kept.
func max(a, b Timestamp) Timestamp {
	if a.Physical != b.Physical {
		if a.Physical > b.Physical {
			return a
		}
		return b
	}
	if a.Logical != b.Logical {
		if a.Logical > b.Logical {
			return a
		}
		return b
	}
	if a.Compare(b) >= 0 {
		return a
	}
	return b
}

// Clock is a single-replica Hybrid Logical Clock generator. It is
// safe for concurrent use; Tick and Observe are both atomic with
// respect to each other.
type Clock struct {
	mu     sync.Mutex
	latest Timestamp
}

// NewClock creates a clock with no prior history. Its first Tick will
// be based on the current wall clock.
func NewClock() *Clock {
	return &Clock{}
}

// Current returns the last timestamp issued or observed, without
// advancing the clock. It is Zero if the clock has never ticked.
func (c *Clock) Current() Timestamp {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.latest
}

// Tick atomically produces the next timestamp. If wall-clock time has
// advanced past the last issued physical component, the new
// timestamp uses that wall-clock time with logical reset to zero;
// otherwise physical is pinned to the prior value and logical is
// incremented. Tick cannot fail.
func (c *Clock) Tick() Timestamp {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := nowFunc()
	var next Timestamp
	if now > c.latest.Physical {
		next = Timestamp{Physical: now, Logical: 0, Nonce: nonceFunc()}
	} else {
		next = Timestamp{Physical: c.latest.Physical, Logical: c.latest.Logical + 1, Nonce: nonceFunc()}
	}
	c.latest = next
	return next
}

// Observe folds a remote timestamp into local state so the clock's
// next Tick dominates it. It is idempotent: observing the same
// timestamp (or any timestamp not greater than the current state)
// twice has no further effect beyond the first call.
//
// Observe always folds the remote timestamp in, even when it reports
// a *direrr.ClockRegressionError: the error is a soft warning about
// an implausible peer clock, not a rejection of the observation
// (spec §7). Callers typically log it and continue.
func (c *Clock) Observe(remote Timestamp) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latest = max(c.latest, remote)

	drift := remote.Physical - nowFunc()
	if drift > maxPlausibleDriftMillis || drift < -maxPlausibleDriftMillis {
		return direrr.ClockRegression(fmt.Sprintf(
			"observed timestamp %s is %dms from local wall clock", remote, drift))
	}
	return nil
}

// MarshalText implements best-effort persistence: it renders the
// clock's current state as the canonical timestamp string so a
// Storage adapter can write it through unchanged.
func (c *Clock) MarshalText() ([]byte, error) {
	return []byte(c.Current().String()), nil
}

// UnmarshalText restores clock state from a previously persisted
// canonical timestamp string. An empty payload leaves the clock at
// Zero, matching a collection opened for the first time.
func (c *Clock) UnmarshalText(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" {
		return nil
	}
	ts, err := Parse(s)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.latest = ts
	c.mu.Unlock()
	return nil
}
