// Package plex provides a chainable, recursively nesting collection type
// over heterogeneous data, together with a mapping proxy designed to be its
// typical element type.
//
// # Overview
//
// The central type is [Plex], an ordered sequence of arbitrary values:
// scalars, [Dict] mappings, or further nested Plex collections. Every
// derivation (field access, indexing, grouping, sorting, filtering) returns
// a *new* Plex that keeps a back-reference to the collection it was derived
// from, so a chain can filter a projected view and still recover (or
// mutate) the original records:
//
//	records := plex.From([]any{
//	    map[string]any{"foo": 0, "bar": 0},
//	    map[string]any{"foo": 1, "bar": 1},
//	    map[string]any{"foo": 2, "bar": 0},
//	})
//	bar, _ := records.Attr("bar")     // [0 1 0], rooted at records
//	bar.Eq(0)                         // the two records whose bar == 0
//	bar.Eq(0).SetAttr("baz", 3)       // writes through to records
//
// # Comparisons filter
//
// The comparison methods (Eq, Ne, Lt, Le, Gt, Ge) never produce booleans.
// They select the elements of the *root* collection at the positions where
// the comparison holds. Use [Plex.EqualsDeep] when an actual true/false
// answer is needed.
//
// # Grouping and depth
//
// [Plex.GroupBy] partitions root elements by the leaf values of the
// receiver, adding one level of nesting; [Plex.Ungroup] removes levels.
// Operations that recurse take an explicit depth: 0 applies to immediate
// elements, N recurses N levels first, and [Deepest] (-1) recurses as far
// as each branch allows. [Plex.AtDepth] returns a depth-scoped [View] for
// chaining. Attribute names may also carry trailing underscores, one per
// extra level: Attr("foo_") resolves "foo" one level deeper.
//
// # Aliasing
//
// Derived collections share their elements with the source. New top-level
// sequences are built on every derivation, but leaf elements are never
// copied implicitly: mutating a Dict through a filtered view is visible
// through every other view holding it. This write-through aliasing is the
// point of keeping roots around.
//
// # Errors
//
// Fallible operations return errors from a small taxonomy ([ErrLookup],
// [ErrShape], [ErrStructure], [ErrHashability]). Structure-aware operations
// try the recursive interpretation first and fall back to a flat one; when
// both fail, both causes are reported together.
package plex
