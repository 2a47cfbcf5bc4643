package storage

import (
	"math/rand"
	"testing"

	"github.com/driftdb/driftdb/pkg/direrr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCollapsesSlashesAndBackslashes(t *testing.T) {
	got, err := Normalize(`a\\b//c/`)
	require.NoError(t, err)
	assert.Equal(t, "a/b/c", got)
}

func TestNormalizeEmptyAndDotAreRoot(t *testing.T) {
	for _, p := range []string{"", ".", "/", "//"} {
		got, err := Normalize(p)
		require.NoError(t, err)
		assert.Equal(t, "", got)
	}
}

func TestNormalizeRejectsDotDotSegment(t *testing.T) {
	_, err := Normalize("../etc/passwd")
	var ipe *direrr.InvalidPathError
	require.ErrorAs(t, err, &ipe)
}

func TestNormalizeRejectsNulAndControlBytes(t *testing.T) {
	_, err := Normalize("a\x00b")
	var ipe *direrr.InvalidPathError
	require.ErrorAs(t, err, &ipe)

	_, err = Normalize("a\x1fb")
	require.ErrorAs(t, err, &ipe)

	_, err = Normalize("a\x7fb")
	require.ErrorAs(t, err, &ipe)
}

func TestNormalizeAllowsTabNewlineCarriageReturn(t *testing.T) {
	_, err := Normalize("a\tb\nc\rd")
	assert.NoError(t, err)
}

// TestNormalizeIdempotence is the property test from spec §8.7:
// normalize(normalize(p)) == normalize(p).
func TestNormalizeIdempotence(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	segments := []string{"a", "b", "c", ".", "", "x/y", "z"}

	for i := 0; i < 200; i++ {
		n := rng.Intn(5) + 1
		path := ""
		for j := 0; j < n; j++ {
			path += "/" + segments[rng.Intn(len(segments))]
		}
		once, err := Normalize(path)
		require.NoError(t, err)
		twice, err := Normalize(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}
