package storage

import (
	"testing"

	"github.com/driftdb/driftdb/pkg/direrr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdapters(t *testing.T) map[string]Blob {
	t.Helper()
	bolt, err := NewBoltAdapter(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { bolt.Close() })

	fs, err := NewFSAdapter(t.TempDir())
	require.NoError(t, err)

	return map[string]Blob{
		"bolt": bolt,
		"fs":   fs,
	}
}

func TestAdapterWriteReadRoundTrip(t *testing.T) {
	for name, a := range newAdapters(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, a.Write("users/u1.json", `{"id":"u1"}`))
			got, err := a.Read("users/u1.json")
			require.NoError(t, err)
			assert.Equal(t, `{"id":"u1"}`, got)
		})
	}
}

func TestAdapterReadMissingIsNotFound(t *testing.T) {
	for name, a := range newAdapters(t) {
		t.Run(name, func(t *testing.T) {
			_, err := a.Read("missing.json")
			var nf *direrr.NotFoundError
			assert.ErrorAs(t, err, &nf)
		})
	}
}

func TestAdapterDeleteMissingIsNotFound(t *testing.T) {
	for name, a := range newAdapters(t) {
		t.Run(name, func(t *testing.T) {
			err := a.Delete("missing.json")
			var nf *direrr.NotFoundError
			assert.ErrorAs(t, err, &nf)
		})
	}
}

func TestAdapterExistsReflectsWrites(t *testing.T) {
	for name, a := range newAdapters(t) {
		t.Run(name, func(t *testing.T) {
			ok, err := a.Exists("u1.json")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, a.Write("u1.json", "x"))
			ok, err = a.Exists("u1.json")
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestAdapterDeleteThenExistsIsFalse(t *testing.T) {
	for name, a := range newAdapters(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, a.Write("u1.json", "x"))
			require.NoError(t, a.Delete("u1.json"))
			ok, err := a.Exists("u1.json")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestAdapterListReturnsImmediateChildren(t *testing.T) {
	for name, a := range newAdapters(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, a.Write("users/u1.json", "a"))
			require.NoError(t, a.Write("users/u2.json", "b"))

			names, err := a.List("users")
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"u1.json", "u2.json"}, names)
		})
	}
}

func TestAdapterWriteRootIsRejected(t *testing.T) {
	for name, a := range newAdapters(t) {
		t.Run(name, func(t *testing.T) {
			err := a.Write("", "x")
			var ipe *direrr.InvalidPathError
			assert.ErrorAs(t, err, &ipe)
		})
	}
}

func TestAdapterWriteRejectsDotDot(t *testing.T) {
	for name, a := range newAdapters(t) {
		t.Run(name, func(t *testing.T) {
			err := a.Write("../etc/passwd", "x")
			var ipe *direrr.InvalidPathError
			assert.ErrorAs(t, err, &ipe)

			err = a.Write("a\x00b", "x")
			assert.ErrorAs(t, err, &ipe)
		})
	}
}
