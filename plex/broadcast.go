package plex

import "reflect"

// ─────────────────────────────────────────────────────────────────────────────
// Broadcasting
//
// ensureLen is the single broadcasting rule used throughout call, operator
// and assignment dispatch: it decides whether a supplied argument is
// per-element or shared.
// ─────────────────────────────────────────────────────────────────────────────

// ensureLen returns v spread across n positions.
//
// In permissive mode (strict=false) any non-string sequence of exactly n
// elements is taken as per-element values. In strict mode only a *Plex of
// length n passes through; every other value, plain slices of matching
// length included, is replicated as a shared singleton.
func ensureLen(n int, v any, strict bool) []any {
	if p, ok := v.(*Plex); ok && len(p.elems) == n {
		return p.All()
	}
	if !strict {
		if s, ok := asSeq(v); ok && len(s) == n {
			return s
		}
	}
	out := make([]any, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// asSeq views v as a []any when it is a genuine sequence. Strings and byte
// slices are scalars here, not sequences.
func asSeq(v any) ([]any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case *Plex:
		return t.All(), true
	case []any:
		return t, true
	case string, []byte:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// ─────────────────────────────────────────────────────────────────────────────
// Index trees
// ─────────────────────────────────────────────────────────────────────────────

// Inds is a nested structure of integer indices mirroring the nesting of a
// grouped collection: each entry is either an int or a nested Inds.
// Comparator methods with the Inds suffix return these instead of selecting
// elements.
type Inds []any

// setOp selects how two index sets are combined.
type setOp int

const (
	setAnd setOp = iota // intersection
	setOr               // union
	setXor              // symmetric difference
)

// mergeInds merges two index structures with the given set operation.
// When both sides are parallel nested structures it recurses position by
// position; flat int lists combine as ordered sets keeping a's order first;
// incompatible shapes fall back to pairwise concatenation.
func mergeInds(a, b Inds, op setOp) Inds {
	if nestedInds(a) && nestedInds(b) && len(a) == len(b) {
		out := make(Inds, len(a))
		for i := range a {
			out[i] = mergeInds(a[i].(Inds), b[i].(Inds), op)
		}
		return out
	}
	ai, aFlat := flatInds(a)
	bi, bFlat := flatInds(b)
	if aFlat && bFlat {
		return mergeFlat(ai, bi, op)
	}
	out := make(Inds, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

func mergeFlat(a, b []int, op setOp) Inds {
	inB := make(map[int]struct{}, len(b))
	for _, i := range b {
		inB[i] = struct{}{}
	}
	out := Inds{}
	switch op {
	case setAnd:
		for _, i := range a {
			if _, ok := inB[i]; ok {
				out = append(out, i)
			}
		}
	case setOr:
		seen := make(map[int]struct{}, len(a))
		for _, i := range a {
			if _, dup := seen[i]; dup {
				continue
			}
			seen[i] = struct{}{}
			out = append(out, i)
		}
		for _, i := range b {
			if _, dup := seen[i]; dup {
				continue
			}
			seen[i] = struct{}{}
			out = append(out, i)
		}
	case setXor:
		inA := make(map[int]struct{}, len(a))
		for _, i := range a {
			inA[i] = struct{}{}
		}
		for _, i := range a {
			if _, ok := inB[i]; !ok {
				out = append(out, i)
			}
		}
		for _, i := range b {
			if _, ok := inA[i]; !ok {
				out = append(out, i)
			}
		}
	}
	return out
}

// nestedInds reports whether every entry of t is a nested Inds.
func nestedInds(t Inds) bool {
	if len(t) == 0 {
		return false
	}
	for _, e := range t {
		if _, ok := e.(Inds); !ok {
			return false
		}
	}
	return true
}

// flatInds views t as a flat int list when possible.
func flatInds(t Inds) ([]int, bool) {
	out := make([]int, len(t))
	for i, e := range t {
		n, ok := e.(int)
		if !ok {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

// ─────────────────────────────────────────────────────────────────────────────
// Counter cell
// ─────────────────────────────────────────────────────────────────────────────

// counter is a mutable value cell whose succ/pred operations both mutate
// and return the new value. It hands out sequential fill values and
// remaining-group counts during deep traversals without threading extra
// return values up the call stack.
type counter struct {
	n int
}

func (c *counter) succ() int {
	c.n++
	return c.n
}

func (c *counter) pred() int {
	c.n--
	return c.n
}
