package plex_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasbyte1/go-plex/plex"
)

func TestGroupByFieldValues(t *testing.T) {
	records := sampleRecords()
	bar := mustAttr(t, records, "bar")

	grouped, err := bar.GroupBy()
	require.NoError(t, err)
	require.Equal(t, 2, grouped.Len(), "two distinct bar values")

	// Groups come out in first-seen key order and contain the records.
	assert.Equal(t, []any{
		[]any{
			map[string]any{"foo": 0, "bar": 0},
			map[string]any{"foo": 2, "bar": 0},
		},
		[]any{
			map[string]any{"foo": 1, "bar": 1},
		},
	}, grouped.Native())
}

func TestGroupByAliasesRecords(t *testing.T) {
	records := sampleRecords()
	bar := mustAttr(t, records, "bar")
	grouped, err := bar.GroupBy()
	require.NoError(t, err)

	// Mutating a record through the grouped view is visible in the source.
	fooG := mustAttr(t, grouped, "foo")
	_, err = fooG.Eq(2).SetAttr("seen", true)
	require.NoError(t, err)

	r2, err := records.IGet(2)
	require.NoError(t, err)
	assert.True(t, r2.(*plex.Dict).Has("seen"))
}

func TestGroupBySecondLevel(t *testing.T) {
	records := sampleRecords()
	bar := mustAttr(t, records, "bar")
	grouped, err := bar.GroupBy()
	require.NoError(t, err)

	// Grouping an already-grouped view recurses instead of adding a level
	// at the top.
	fooG := mustAttr(t, grouped, "foo")
	regrouped, err := fooG.GroupBy()
	require.NoError(t, err)
	assert.Equal(t, 2, regrouped.Len())
	assert.Equal(t, 2, regrouped.Depth())
}

func TestGroupByUnhashableKey(t *testing.T) {
	records := sampleRecords()
	_, err := records.GroupBy()
	require.Error(t, err, "Dict records cannot serve as group keys directly")
	assert.True(t, errors.Is(err, plex.ErrHashability))

	keys, err := records.Apply(plex.Surrogate)
	require.NoError(t, err)
	grouped, err := keys.GroupBy()
	require.NoError(t, err)
	assert.Equal(t, 3, grouped.Len(), "surrogates make every record groupable")
}

func TestUngroupRoundTrip(t *testing.T) {
	records := sampleRecords()
	bar := mustAttr(t, records, "bar")
	grouped, err := bar.GroupBy()
	require.NoError(t, err)

	flat, err := grouped.Ungroup(-1)
	require.NoError(t, err)
	assert.Equal(t, []any{
		map[string]any{"foo": 0, "bar": 0},
		map[string]any{"foo": 2, "bar": 0},
		map[string]any{"foo": 1, "bar": 1},
	}, flat.Native(), "ungrouping concatenates in group order")
}

func TestUngroupTooManyLevels(t *testing.T) {
	records := sampleRecords()
	_, err := records.Ungroup(1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, plex.ErrStructure))

	// The negative form never fails; it just stops at flat.
	flat, err := records.Ungroup(-1)
	require.NoError(t, err)
	assert.Equal(t, 3, flat.Len())
}

func TestNonEmpty(t *testing.T) {
	p := plex.New([]any{1, 2}, []any{}, []any{3})
	kept := p.NonEmpty(0)
	assert.Equal(t, 2, kept.Len())

	deep := plex.New([]any{[]any{}, []any{1}}, []any{[]any{}})
	kept = deep.NonEmpty(plex.Deepest)
	require.Equal(t, 1, kept.Len(), "a group left empty by recursion is itself dropped")
	assert.Equal(t, []any{[]any{[]any{1}}}, kept.Native())
}

func TestReduceEqKeepsFirstSeen(t *testing.T) {
	records := sampleRecords()
	bar := mustAttr(t, records, "bar")

	reduced, err := bar.ReduceEq()
	require.NoError(t, err)
	assert.Equal(t, []any{0, 1}, reduced.Native())
	assert.Equal(t, []any{
		map[string]any{"foo": 0, "bar": 0},
		map[string]any{"foo": 1, "bar": 1},
	}, reduced.Root().Native(), "root alignment survives the reduction")
}

func TestReduceEqGroupedRootAlignment(t *testing.T) {
	records := sampleRecords()
	bar := mustAttr(t, records, "bar")
	grouped, err := bar.GroupBy()
	require.NoError(t, err)

	barG := mustAttr(t, grouped, "bar")
	reduced, err := barG.ReduceEq()
	require.NoError(t, err)
	assert.Equal(t, []any{[]any{0}, []any{1}}, reduced.Native())

	// The root nests the surviving records in the same group structure, so
	// the reduction stays usable as a filter on the grouped records.
	assert.Equal(t, []any{
		[]any{map[string]any{"foo": 0, "bar": 0}},
		[]any{map[string]any{"foo": 1, "bar": 1}},
	}, reduced.Root().Native())
}

func TestReduceEqWithinGroups(t *testing.T) {
	p := plex.New([]any{1, 1, 2}, []any{3, 3})
	reduced, err := p.ReduceEq()
	require.NoError(t, err)
	assert.Equal(t, []any{[]any{1, 2}, []any{3}}, reduced.Native())
}

func TestUniqAlias(t *testing.T) {
	p := plex.New(1, 1, 2)
	u, err := p.Uniq()
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2}, u.Native())
}

func TestReduceEqUnhashable(t *testing.T) {
	p := plex.From([]any{map[string]any{"a": 1}})
	vals := mustAttr(t, p, "a")
	_, err := vals.ReduceEq()
	require.NoError(t, err, "scalar field values are hashable")

	// Grouping directly by the records themselves is not allowed...
	_, err = p.ReduceEq()
	require.Error(t, err)
	assert.True(t, errors.Is(err, plex.ErrHashability))

	// ...but their surrogates are.
	keys, err := p.Apply(plex.Surrogate)
	require.NoError(t, err)
	_, err = keys.ReduceEq()
	assert.NoError(t, err)
}

func TestSortByPermutesRoot(t *testing.T) {
	records := plex.From([]any{
		map[string]any{"foo": 2},
		map[string]any{"foo": 0},
		map[string]any{"foo": 1},
	})
	foo := mustAttr(t, records, "foo")

	sorted := foo.SortBy(nil)
	assert.Same(t, foo, sorted, "SortBy reorders in place and returns the receiver")
	assert.Equal(t, []any{0, 1, 2}, foo.Native())
	assert.Equal(t, []any{
		map[string]any{"foo": 0},
		map[string]any{"foo": 1},
		map[string]any{"foo": 2},
	}, records.Native(), "the source is permuted in lockstep")
}

func TestSortByKeyFunc(t *testing.T) {
	p := plex.New("bb", "a", "ccc")
	p.SortBy(func(v any) any { return len(v.(string)) })
	assert.Equal(t, []any{"a", "bb", "ccc"}, p.Native())
}

func TestSortByMixedTypesIsDeterministic(t *testing.T) {
	p := plex.New("b", 2, "a", 1)
	p.SortBy(nil)
	q := plex.New(1, "a", 2, "b")
	q.SortBy(nil)
	assert.Equal(t, p.Native(), q.Native())
}
