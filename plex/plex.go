package plex

import (
	"encoding/json"
	"fmt"

	"github.com/oklog/ulid/v2"
)

// Deepest is the sentinel recursion depth meaning "recurse as far as each
// branch allows". At Deepest, branches that cannot recurse further are
// handled flat instead of failing; positive depths propagate the failure.
const Deepest = -1

// Plex is an ordered sequence of arbitrary values: scalars, *Dict mappings,
// or nested *Plex collections. It is the unit every operation in this
// package consumes and produces.
//
// A Plex derived from another (by field access, slicing, grouping, …) keeps
// a back-reference to the outermost collection it came from; see
// [Plex.Root]. Elements at the same position across parallel derived
// collections correspond to the same logical source record, which is what
// makes cross-field filtering well-defined.
type Plex struct {
	elems []any
	ids   []ulid.ULID
	root  *Plex // nil means self-rooted
}

// ─────────────────────────────────────────────────────────────────────────────
// Constructors
// ─────────────────────────────────────────────────────────────────────────────

// New creates a Plex from a variadic list of items. Nested []any and
// map[string]any values are wrapped into *Plex and *Dict recursively; the
// wrapped maps share storage with the originals (no deep copy of leaves).
func New(items ...any) *Plex {
	return From(items)
}

// From creates a Plex from a slice. The slice itself is copied; the
// elements are shared.
func From(items []any) *Plex {
	elems := make([]any, len(items))
	for i, item := range items {
		elems[i] = wrapValue(item)
	}
	return &Plex{elems: elems, ids: newIDs(len(elems))}
}

// Empty creates an empty Plex.
func Empty() *Plex {
	return &Plex{elems: []any{}, ids: []ulid.ULID{}}
}

// wrapValue converts plain nested containers into their plex counterparts.
// Anything already wrapped, and every other value, passes through untouched.
func wrapValue(v any) any {
	switch t := v.(type) {
	case *Plex, *Dict, *DefaultDict, KeyValue:
		return v
	case []any:
		return From(t)
	case map[string]any:
		return DictOf(t)
	default:
		return v
	}
}

// newPlex builds a Plex over elems with fresh identity tags.
func newPlex(elems []any, root *Plex) *Plex {
	return &Plex{elems: elems, ids: newIDs(len(elems)), root: root}
}

// pick builds a Plex from the elements of p at idxs, carrying their
// identity tags.
func (p *Plex) pick(idxs []int, root *Plex) *Plex {
	elems := make([]any, len(idxs))
	ids := make([]ulid.ULID, len(idxs))
	for i, idx := range idxs {
		elems[i] = p.elems[idx]
		ids[i] = p.ids[idx]
	}
	return &Plex{elems: elems, ids: ids, root: root}
}

// ─────────────────────────────────────────────────────────────────────────────
// Accessors
// ─────────────────────────────────────────────────────────────────────────────

// Root returns the outermost collection this Plex was derived from, or the
// Plex itself when it has no derivation history. Root is idempotent:
// p.Root().Root() == p.Root().
func (p *Plex) Root() *Plex {
	if p.root == nil {
		return p
	}
	return p.root
}

// Len returns the number of immediate elements.
func (p *Plex) Len() int { return len(p.elems) }

// IsEmpty reports whether the Plex contains no elements.
func (p *Plex) IsEmpty() bool { return len(p.elems) == 0 }

// All returns a copy of the element slice. Elements are shared, the slice
// is not.
func (p *Plex) All() []any {
	out := make([]any, len(p.elems))
	copy(out, p.elems)
	return out
}

// Get returns the element at index together with a presence flag.
func (p *Plex) Get(index int) (any, bool) {
	if index < 0 || index >= len(p.elems) {
		return nil, false
	}
	return p.elems[index], true
}

// Each calls fn(elem, index) for every immediate element.
func (p *Plex) Each(fn func(any, int)) {
	for i, el := range p.elems {
		fn(el, i)
	}
}

// Native recursively converts the Plex into plain nested []any /
// map[string]any structures suitable for serialisation or interop.
func (p *Plex) Native() any {
	out := make([]any, len(p.elems))
	for i, el := range p.elems {
		out[i] = nativeValue(el)
	}
	return out
}

func nativeValue(v any) any {
	switch t := v.(type) {
	case *Plex:
		return t.Native()
	case *Dict:
		return t.Native()
	case *DefaultDict:
		return t.Native()
	case KeyValue:
		return []any{t.Key, nativeValue(t.Val)}
	default:
		return v
	}
}

// String returns a JSON representation of the collection.
// It implements [fmt.Stringer].
func (p *Plex) String() string {
	b, err := json.Marshal(p.Native())
	if err != nil {
		return fmt.Sprintf("%v", p.elems)
	}
	return string(b)
}

// ─────────────────────────────────────────────────────────────────────────────
// Boolean equality
// ─────────────────────────────────────────────────────────────────────────────

// EqualsDeep reports whether p and other are structurally equal: equal
// length at every level and pairwise-recursively equal elements, falling
// back to plain value equality at the leaves. This is the boolean
// counterpart of [Plex.Eq], which filters instead of answering true/false.
func (p *Plex) EqualsDeep(other any) bool {
	o, ok := wrapValue(other).(*Plex)
	if !ok {
		return false
	}
	if len(p.elems) != len(o.elems) {
		return false
	}
	for i, el := range p.elems {
		if sub, ok := el.(*Plex); ok {
			if !sub.EqualsDeep(o.elems[i]) {
				return false
			}
			continue
		}
		if !equalValues(el, o.elems[i]) {
			return false
		}
	}
	return true
}

// ─────────────────────────────────────────────────────────────────────────────
// Structure predicates
// ─────────────────────────────────────────────────────────────────────────────

// allNested reports whether every element is itself a *Plex. An empty
// collection is not considered nested.
func (p *Plex) allNested() bool {
	if len(p.elems) == 0 {
		return false
	}
	for _, el := range p.elems {
		if _, ok := el.(*Plex); !ok {
			return false
		}
	}
	return true
}

// leafCount returns the total number of non-Plex leaves in the structure.
func (p *Plex) leafCount() int {
	n := 0
	for _, el := range p.elems {
		if sub, ok := el.(*Plex); ok {
			n += sub.leafCount()
		} else {
			n++
		}
	}
	return n
}

// depthDec steps a recursion depth down one level, leaving the Deepest
// sentinel in place.
func depthDec(depth int) int {
	if depth < 0 {
		return depth
	}
	return depth - 1
}
