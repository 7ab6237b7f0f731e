package plex

import (
	"fmt"
	"sort"

	"github.com/oklog/ulid/v2"
)

// Grouping, ungrouping and order.

// GroupBy partitions the elements of the receiver's root by the leaf
// values of the receiver, adding one level of nesting. Groups appear in
// first-seen key order and contain the root elements themselves, so a
// grouped view still aliases the original records:
//
//	bar, _ := records.Attr("bar")
//	groups, _ := bar.GroupBy()
//	// [[records with bar=v1...] [records with bar=v2...] ...]
//
// Already-nested elements are grouped recursively without adding a level
// there; only true leaves get newly grouped. Keys must be usable as map
// keys; group by [Surrogate] values otherwise.
func (p *Plex) GroupBy() (*Plex, error) {
	return groupAligned(p, p.Root())
}

func groupAligned(keys, src *Plex) (*Plex, error) {
	if keys.allNested() {
		out := make([]any, len(keys.elems))
		for i, el := range keys.elems {
			sub := el.(*Plex)
			srcSub, ok := src.elems[i].(*Plex)
			if !ok {
				return nil, &StructureError{
					Op:     "groupby",
					Detail: fmt.Sprintf("keys nested at position %d but source is %T", i, src.elems[i]),
				}
			}
			g, err := groupAligned(sub, srcSub)
			if err != nil {
				return nil, err
			}
			out[i] = g
		}
		return newPlex(out, nil), nil
	}
	if len(keys.elems) != len(src.elems) {
		return nil, &StructureError{
			Op:     "groupby",
			Detail: fmt.Sprintf("keys length %d does not match source length %d", len(keys.elems), len(src.elems)),
		}
	}
	var order []any
	buckets := make(map[any][]int)
	for i, k := range keys.elems {
		kk, err := groupKey(k)
		if err != nil {
			return nil, err
		}
		if _, seen := buckets[kk]; !seen {
			order = append(order, kk)
		}
		buckets[kk] = append(buckets[kk], i)
	}
	groups := make([]any, len(order))
	for gi, kk := range order {
		groups[gi] = src.pick(buckets[kk], nil)
	}
	return newPlex(groups, nil), nil
}

// Ungroup removes levels of nesting by concatenating sub-collections.
// A negative levels removes all nesting. Asking for more levels than the
// structure has is a [StructureError], except under the negative form,
// which simply stops when the collection is flat.
func (p *Plex) Ungroup(levels int) (*Plex, error) {
	cur := p
	if levels < 0 {
		for cur.anyNested() {
			cur = flattenOne(cur)
		}
		return cur, nil
	}
	for i := 0; i < levels; i++ {
		if !cur.anyNested() {
			return nil, &StructureError{
				Op:     "ungroup",
				Detail: fmt.Sprintf("requested %d levels but only %d exist", levels, i),
			}
		}
		cur = flattenOne(cur)
	}
	if cur == p {
		cur = p.pick(seqInts(0, len(p.elems)), nil)
	}
	return cur, nil
}

// anyNested reports whether at least one element is a *Plex.
func (p *Plex) anyNested() bool {
	for _, el := range p.elems {
		if _, ok := el.(*Plex); ok {
			return true
		}
	}
	return false
}

// flattenOne removes one level of nesting; leaf elements pass through.
func flattenOne(p *Plex) *Plex {
	elems := make([]any, 0, len(p.elems))
	ids := make([]ulid.ULID, 0, len(p.elems))
	for i, el := range p.elems {
		if sub, ok := el.(*Plex); ok {
			elems = append(elems, sub.elems...)
			ids = append(ids, sub.ids...)
			continue
		}
		elems = append(elems, el)
		ids = append(ids, p.ids[i])
	}
	return &Plex{elems: elems, ids: ids}
}

// NonEmpty removes empty sub-collections. Depth 0 filters direct children
// only; deeper (or [Deepest]) recurses into children first, then filters
// the ones left empty.
func (p *Plex) NonEmpty(depth int) *Plex {
	elems := make([]any, 0, len(p.elems))
	ids := make([]ulid.ULID, 0, len(p.elems))
	for i, el := range p.elems {
		sub, nested := el.(*Plex)
		if nested && depth != 0 {
			sub = sub.NonEmpty(depthDec(depth))
		}
		if nested && sub.IsEmpty() {
			continue
		}
		if nested {
			elems = append(elems, sub)
		} else {
			elems = append(elems, el)
		}
		ids = append(ids, p.ids[i])
	}
	return &Plex{elems: elems, ids: ids}
}

// ReduceEq keeps, within each innermost group, only the first occurrence
// of each distinct value, preserving root alignment: the result's root
// contains exactly the source records whose values were first seen.
func (p *Plex) ReduceEq() (*Plex, error) {
	return reduceAligned(p, p.Root())
}

// Uniq is an alias for [Plex.ReduceEq].
func (p *Plex) Uniq() (*Plex, error) { return p.ReduceEq() }

func reduceAligned(keys, src *Plex) (*Plex, error) {
	if keys.allNested() {
		out := make([]any, len(keys.elems))
		rootOut := make([]any, len(keys.elems))
		for i, el := range keys.elems {
			sub := el.(*Plex)
			srcSub, ok := src.elems[i].(*Plex)
			if !ok {
				return nil, &StructureError{
					Op:     "reduce_eq",
					Detail: fmt.Sprintf("keys nested at position %d but source is %T", i, src.elems[i]),
				}
			}
			r, err := reduceAligned(sub, srcSub)
			if err != nil {
				return nil, err
			}
			out[i] = r
			rootOut[i] = r.Root()
		}
		res := newPlex(out, nil)
		if src != keys {
			// Root alignment holds per group and one level up: the result's
			// root nests the surviving source records group by group.
			res.root = newPlex(rootOut, nil)
		}
		return res, nil
	}
	seen := make(map[any]struct{}, len(keys.elems))
	var idxs []int
	for i, k := range keys.elems {
		kk, err := groupKey(k)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[kk]; dup {
			continue
		}
		seen[kk] = struct{}{}
		idxs = append(idxs, i)
	}
	out := keys.pick(idxs, nil)
	if src != keys {
		out.root = src.pick(idxs, nil)
	}
	return out, nil
}

// SortBy reorders the receiver in place by the key function (identity when
// nil), applying the same permutation to the root so parallel derived
// views stay index-aligned with their source. The sort is stable. Returns
// the receiver for chaining.
func (p *Plex) SortBy(key func(any) any) *Plex {
	if key == nil {
		key = func(v any) any { return v }
	}
	perm := seqInts(0, len(p.elems))
	sort.SliceStable(perm, func(a, b int) bool {
		return universalLess(key(p.elems[perm[a]]), key(p.elems[perm[b]]))
	})
	p.applyPerm(perm)
	if p.root != nil {
		p.root.applyPerm(perm)
	}
	return p
}

func (p *Plex) applyPerm(perm []int) {
	elems := make([]any, len(perm))
	ids := make([]ulid.ULID, len(perm))
	for i, j := range perm {
		elems[i] = p.elems[j]
		ids[i] = p.ids[j]
	}
	p.elems = elems
	p.ids = ids
}
