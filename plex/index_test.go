package plex_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasbyte1/go-plex/plex"
)

func TestIGetInt(t *testing.T) {
	p := plex.New(10, 20, 30)

	v, err := p.IGet(1)
	require.NoError(t, err)
	assert.Equal(t, 20, v)

	v, err = p.IGet(-1)
	require.NoError(t, err)
	assert.Equal(t, 30, v, "negative indices count from the end")

	_, err = p.IGet(3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, plex.ErrIndexOutOfRange))
}

func TestIGetIntList(t *testing.T) {
	p := plex.New(10, 20, 30)
	v, err := p.IGet([]int{2, 0})
	require.NoError(t, err)
	sel := v.(*plex.Plex)
	assert.Equal(t, []any{30, 10}, sel.Native())
	assert.Same(t, sel, sel.Root(), "positional selection starts a fresh lineage")
}

func TestIGetSlice(t *testing.T) {
	p := plex.New(10, 20, 30, 40)

	v, err := p.IGet(plex.Span(1, 3))
	require.NoError(t, err)
	assert.Equal(t, []any{20, 30}, v.(*plex.Plex).Native())

	v, err = p.IGet(plex.Span(-2, plex.End))
	require.NoError(t, err)
	assert.Equal(t, []any{30, 40}, v.(*plex.Plex).Native())

	// Out-of-range bounds clamp instead of failing.
	v, err = p.IGet(plex.Span(2, 99))
	require.NoError(t, err)
	assert.Equal(t, []any{30, 40}, v.(*plex.Plex).Native())
}

func TestSliceKeepsRootAligned(t *testing.T) {
	records := sampleRecords()
	foo := mustAttr(t, records, "foo")

	v, err := foo.IGet(plex.Span(1, 3))
	require.NoError(t, err)
	tail := v.(*plex.Plex)
	require.Equal(t, 2, tail.Len())
	require.Equal(t, 2, tail.Root().Len(), "the root is sliced in parallel")
	assert.Equal(t, []any{
		map[string]any{"foo": 1, "bar": 1},
		map[string]any{"foo": 2, "bar": 0},
	}, tail.Root().Native())

	// A comparison on the sliced view selects within the sliced root.
	assert.Equal(t, 1, tail.Gt(1).Len())
}

func TestIGetStringKeySubscriptsElements(t *testing.T) {
	records := sampleRecords()
	v, err := records.IGet("foo")
	require.NoError(t, err)
	foo := v.(*plex.Plex)
	assert.Equal(t, []any{0, 1, 2}, foo.Native())
	assert.Same(t, records, foo.Root())
}

func TestIGetElementwiseKeys(t *testing.T) {
	records := sampleRecords()
	v, err := records.IGet([]any{"foo", "bar", "foo"})
	require.NoError(t, err)
	assert.Equal(t, []any{0, 1, 2}, v.(*plex.Plex).Native())

	_, err = records.IGet([]any{"foo", "bar"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, plex.ErrShape))
}

func TestIGetTupleDeep(t *testing.T) {
	p := plex.New(
		map[string]any{"a": map[string]any{"b": 1}},
		map[string]any{"a": map[string]any{"b": 2}},
	)
	v, err := p.IGet(plex.Tuple{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2}, v.(*plex.Plex).Native())
}

func TestIGetTupleShallowFallback(t *testing.T) {
	records := sampleRecords()
	v, err := records.IGet(plex.Tuple{"foo", "bar"})
	require.NoError(t, err)
	pairs := v.(*plex.Plex)
	first, _ := pairs.Get(0)
	assert.Equal(t, plex.Tuple{0, 0}, first, "independent lookups pack into a Tuple")
	second, _ := pairs.Get(1)
	assert.Equal(t, plex.Tuple{1, 1}, second)
}

func TestIGetTupleBothFail(t *testing.T) {
	p := plex.New(1, 2)
	_, err := p.IGet(plex.Tuple{"a", "b"})
	require.Error(t, err)
}

// ─────────────────────────────────────────────────────────────────────────────
// ISet
// ─────────────────────────────────────────────────────────────────────────────

func TestISetInt(t *testing.T) {
	p := plex.New(10, 20, 30)
	_, err := p.ISet(-1, 99)
	require.NoError(t, err)
	assert.Equal(t, []any{10, 20, 99}, p.Native())
}

func TestISetIntList(t *testing.T) {
	p := plex.New(10, 20, 30)
	_, err := p.ISet([]int{0, 2}, []any{1, 3})
	require.NoError(t, err)
	assert.Equal(t, []any{1, 20, 3}, p.Native())
}

func TestISetSliceBroadcast(t *testing.T) {
	p := plex.New(10, 20, 30, 40)
	_, err := p.ISet(plex.Span(1, 3), 0)
	require.NoError(t, err)
	assert.Equal(t, []any{10, 0, 0, 40}, p.Native())
}

func TestISetKeyOnElements(t *testing.T) {
	records := sampleRecords()
	_, err := records.ISet("baz", plex.New(7, 8, 9))
	require.NoError(t, err)
	baz := mustAttr(t, records, "baz")
	assert.Equal(t, []any{7, 8, 9}, baz.Native())
}

func TestISetTupleDeep(t *testing.T) {
	p := plex.New(map[string]any{"a": map[string]any{"b": 1}})
	_, err := p.ISet(plex.Tuple{"a", "b"}, 9)
	require.NoError(t, err)
	v, err := p.IGet(plex.Tuple{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []any{9}, v.(*plex.Plex).Native())
}

func TestISetTupleShallowFallback(t *testing.T) {
	records := sampleRecords()
	_, err := records.ISet(plex.Tuple{"x", "y"}, 1)
	require.NoError(t, err)
	x := mustAttr(t, records, "x")
	y := mustAttr(t, records, "y")
	assert.Equal(t, []any{1, 1, 1}, x.Native())
	assert.Equal(t, []any{1, 1, 1}, y.Native())
}

// ─────────────────────────────────────────────────────────────────────────────
// IDel
// ─────────────────────────────────────────────────────────────────────────────

func TestIDelPositions(t *testing.T) {
	p := plex.New(1, 2, 3, 4)
	_, err := p.IDel([]int{0, 2})
	require.NoError(t, err)
	assert.Equal(t, []any{2, 4}, p.Native())

	_, err = p.IDel(-1)
	require.NoError(t, err)
	assert.Equal(t, []any{2}, p.Native())
}

func TestIDelSlice(t *testing.T) {
	p := plex.New(1, 2, 3, 4)
	_, err := p.IDel(plex.Span(1, 3))
	require.NoError(t, err)
	assert.Equal(t, []any{1, 4}, p.Native())
}

func TestIDelKeyOnElements(t *testing.T) {
	records := sampleRecords()
	_, err := records.IDel("bar")
	require.NoError(t, err)
	assert.Equal(t, []any{
		map[string]any{"foo": 0},
		map[string]any{"foo": 1},
		map[string]any{"foo": 2},
	}, records.Native())
}
