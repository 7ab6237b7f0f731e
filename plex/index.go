package plex

import (
	"fmt"
	"reflect"
)

// Indexing.
//
// IGet / ISet / IDel dispatch on the dynamic type of the key:
//
//   - int           → one raw element (read) / one position (write, delete)
//   - []int         → positional select; the result is fresh and unrooted
//   - Slice         → a sliced view, with the root sliced in parallel
//   - Tuple         → per element, first as one multi-part index, then as
//     independent single keys packed into a Tuple
//   - other []any   → element-wise: self[i][key[i]]
//   - anything else → subscripted on every element
//
// Negative integer indices count from the end.

// Slice selects the half-open range [Lo, Hi). Negative bounds count from
// the end; Hi = [End] runs to the end of the collection.
type Slice struct {
	Lo, Hi int
}

// End marks a Slice upper bound meaning "through the last element".
const End = int(^uint(0) >> 1)

// Span builds a Slice selecting [lo, hi).
func Span(lo, hi int) Slice { return Slice{Lo: lo, Hi: hi} }

// bounds clamps the slice to a collection of length n.
func (s Slice) bounds(n int) (int, int) {
	lo, hi := s.Lo, s.Hi
	if lo < 0 {
		lo += n
	}
	if lo < 0 {
		lo = 0
	}
	if lo > n {
		lo = n
	}
	if hi == End {
		hi = n
	}
	if hi < 0 {
		hi += n
	}
	if hi > n {
		hi = n
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// Tuple is a multi-part index key. On read it is first applied as one
// chained lookup per element and, failing that, reinterpreted as
// independent single-key lookups whose results are packed into a Tuple per
// element.
type Tuple []any

// ─────────────────────────────────────────────────────────────────────────────
// Read
// ─────────────────────────────────────────────────────────────────────────────

// IGet reads by key. A single int yields the raw element; every other key
// form yields a *Plex.
func (p *Plex) IGet(key any) (any, error) {
	switch k := key.(type) {
	case int:
		i, err := normIndex(k, len(p.elems))
		if err != nil {
			return nil, err
		}
		return p.elems[i], nil
	case []int:
		idxs := make([]int, len(k))
		for j, raw := range k {
			i, err := normIndex(raw, len(p.elems))
			if err != nil {
				return nil, err
			}
			idxs[j] = i
		}
		return p.pick(idxs, nil), nil
	case Slice:
		return p.sliceView(k), nil
	case Tuple:
		return p.getTuple(k)
	}
	if seq, ok := asSeq(key); ok {
		if len(seq) != len(p.elems) {
			return nil, &ShapeError{Want: len(p.elems), Got: len(seq)}
		}
		out := make([]any, len(p.elems))
		for i, el := range p.elems {
			v, err := subscript(el, seq[i])
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return newPlex(out, p.Root()), nil
	}
	out := make([]any, len(p.elems))
	for i, el := range p.elems {
		v, err := subscript(el, key)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return newPlex(out, p.Root()), nil
}

// sliceView slices the receiver, slicing the root in parallel when the
// receiver is derived, so the view stays aligned with its source.
func (p *Plex) sliceView(s Slice) *Plex {
	lo, hi := s.bounds(len(p.elems))
	out := p.pick(seqInts(lo, hi), nil)
	if p.root != nil {
		out.root = p.root.pick(seqInts(lo, hi), nil)
	}
	return out
}

func seqInts(lo, hi int) []int {
	out := make([]int, hi-lo)
	for i := range out {
		out[i] = lo + i
	}
	return out
}

func (p *Plex) getTuple(k Tuple) (*Plex, error) {
	// Deep: one chained multi-part lookup per element.
	deep := func() (*Plex, error) {
		out := make([]any, len(p.elems))
		for i, el := range p.elems {
			cur := el
			for _, sk := range k {
				v, err := subscript(cur, sk)
				if err != nil {
					return nil, err
				}
				cur = v
			}
			out[i] = cur
		}
		return newPlex(out, p.Root()), nil
	}
	if res, err := deep(); err == nil {
		return res, nil
	} else {
		// Shallow: independent single-key lookups, packed per element.
		out := make([]any, len(p.elems))
		for i, el := range p.elems {
			packed := make(Tuple, len(k))
			for j, sk := range k {
				v, subErr := subscript(el, sk)
				if subErr != nil {
					return nil, bothFailed(err, subErr)
				}
				packed[j] = v
			}
			out[i] = packed
		}
		return newPlex(out, p.Root()), nil
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Write
// ─────────────────────────────────────────────────────────────────────────────

// ISet writes value under key, mirroring the read-side dispatch with value
// broadcasting per [ensureLen]. Returns the receiver for chaining.
func (p *Plex) ISet(key, value any) (*Plex, error) {
	switch k := key.(type) {
	case int:
		i, err := normIndex(k, len(p.elems))
		if err != nil {
			return nil, err
		}
		p.elems[i] = wrapValue(value)
		return p, nil
	case []int:
		vals := ensureLen(len(k), value, false)
		for j, raw := range k {
			i, err := normIndex(raw, len(p.elems))
			if err != nil {
				return nil, err
			}
			p.elems[i] = wrapValue(vals[j])
		}
		return p, nil
	case Slice:
		lo, hi := k.bounds(len(p.elems))
		vals := ensureLen(hi-lo, value, false)
		for j := lo; j < hi; j++ {
			p.elems[j] = wrapValue(vals[j-lo])
		}
		return p, nil
	case Tuple:
		return p.setTuple(k, value)
	}
	if seq, ok := asSeq(key); ok {
		if len(seq) != len(p.elems) {
			return nil, &ShapeError{Want: len(p.elems), Got: len(seq)}
		}
		vals := ensureLen(len(p.elems), value, false)
		for i, el := range p.elems {
			if err := setSubscript(el, seq[i], vals[i]); err != nil {
				return nil, err
			}
		}
		return p, nil
	}
	vals := ensureLen(len(p.elems), value, false)
	for i, el := range p.elems {
		if err := setSubscript(el, key, vals[i]); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Plex) setTuple(k Tuple, value any) (*Plex, error) {
	vals := ensureLen(len(p.elems), value, false)
	// Deep: navigate all but the last key, assign at the last.
	deep := func() error {
		for i, el := range p.elems {
			cur := el
			for _, sk := range k[:len(k)-1] {
				v, err := subscript(cur, sk)
				if err != nil {
					return err
				}
				cur = v
			}
			if err := setSubscript(cur, k[len(k)-1], vals[i]); err != nil {
				return err
			}
		}
		return nil
	}
	if err := deep(); err != nil {
		// Shallow: assign each sub-key independently, broadcasting the
		// element's value across the sub-keys.
		for i, el := range p.elems {
			svals := ensureLen(len(k), vals[i], false)
			for j, sk := range k {
				if subErr := setSubscript(el, sk, svals[j]); subErr != nil {
					return nil, bothFailed(err, subErr)
				}
			}
		}
	}
	return p, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete
// ─────────────────────────────────────────────────────────────────────────────

// IDel deletes by key with the same dispatch shape as ISet, minus the
// value. Integer, int-list and slice keys remove positions from the
// receiver; other keys delete within each element. Returns the receiver
// for chaining.
func (p *Plex) IDel(key any) (*Plex, error) {
	switch k := key.(type) {
	case int:
		i, err := normIndex(k, len(p.elems))
		if err != nil {
			return nil, err
		}
		p.removePositions([]int{i})
		return p, nil
	case []int:
		idxs := make([]int, 0, len(k))
		for _, raw := range k {
			i, err := normIndex(raw, len(p.elems))
			if err != nil {
				return nil, err
			}
			idxs = append(idxs, i)
		}
		p.removePositions(idxs)
		return p, nil
	case Slice:
		lo, hi := k.bounds(len(p.elems))
		p.removePositions(seqInts(lo, hi))
		return p, nil
	case Tuple:
		return p.delTuple(k)
	}
	if seq, ok := asSeq(key); ok {
		if len(seq) != len(p.elems) {
			return nil, &ShapeError{Want: len(p.elems), Got: len(seq)}
		}
		for i, el := range p.elems {
			if err := delSubscript(el, seq[i]); err != nil {
				return nil, err
			}
		}
		return p, nil
	}
	for _, el := range p.elems {
		if err := delSubscript(el, key); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Plex) delTuple(k Tuple) (*Plex, error) {
	deep := func() error {
		for _, el := range p.elems {
			cur := el
			for _, sk := range k[:len(k)-1] {
				v, err := subscript(cur, sk)
				if err != nil {
					return err
				}
				cur = v
			}
			if err := delSubscript(cur, k[len(k)-1]); err != nil {
				return err
			}
		}
		return nil
	}
	if err := deep(); err != nil {
		for _, el := range p.elems {
			for _, sk := range k {
				if subErr := delSubscript(el, sk); subErr != nil {
					return nil, bothFailed(err, subErr)
				}
			}
		}
	}
	return p, nil
}

// removePositions drops the given positions from the element sequence.
func (p *Plex) removePositions(idxs []int) {
	drop := make(map[int]struct{}, len(idxs))
	for _, i := range idxs {
		drop[i] = struct{}{}
	}
	elems := p.elems[:0]
	ids := p.ids[:0]
	for i := range p.elems {
		if _, gone := drop[i]; gone {
			continue
		}
		elems = append(elems, p.elems[i])
		ids = append(ids, p.ids[i])
	}
	p.elems = elems
	p.ids = ids
}

// ─────────────────────────────────────────────────────────────────────────────
// Element-level subscripting
// ─────────────────────────────────────────────────────────────────────────────

func subscript(el, key any) (any, error) {
	switch t := el.(type) {
	case *Plex:
		return t.IGet(key)
	case *DefaultDict:
		if s, ok := key.(string); ok {
			return t.Get(s), nil
		}
	case *Dict:
		if s, ok := key.(string); ok {
			if v, ok := t.Get(s); ok {
				return v, nil
			}
			return nil, fmt.Errorf("plex: key %q not present in Dict", s)
		}
		if ks, ok := key.([]string); ok {
			return t.GetList(ks), nil
		}
	case map[string]any:
		if s, ok := key.(string); ok {
			if v, ok := t[s]; ok {
				return wrapValue(v), nil
			}
			return nil, fmt.Errorf("plex: key %q not present in map", s)
		}
	case []any:
		if i, ok := key.(int); ok {
			j, err := normIndex(i, len(t))
			if err != nil {
				return nil, err
			}
			return wrapValue(t[j]), nil
		}
	case KeyValue:
		if s, ok := key.(string); ok {
			switch s {
			case "key", "Key":
				return t.Key, nil
			case "val", "Val":
				return t.Val, nil
			}
		}
	}
	rv := reflect.ValueOf(el)
	switch rv.Kind() {
	case reflect.Map:
		kv := reflect.ValueOf(key)
		if kv.IsValid() && kv.Type().AssignableTo(rv.Type().Key()) {
			if v := rv.MapIndex(kv); v.IsValid() {
				return wrapValue(v.Interface()), nil
			}
			return nil, fmt.Errorf("plex: key %v not present in %T", key, el)
		}
	case reflect.Slice, reflect.Array:
		if i, ok := key.(int); ok {
			j, err := normIndex(i, rv.Len())
			if err != nil {
				return nil, err
			}
			return wrapValue(rv.Index(j).Interface()), nil
		}
	}
	return nil, fmt.Errorf("plex: cannot subscript %T with %v (%T)", el, key, key)
}

func setSubscript(el, key, value any) error {
	switch t := el.(type) {
	case *Plex:
		_, err := t.ISet(key, value)
		return err
	case *DefaultDict:
		if s, ok := key.(string); ok {
			t.Set(s, value)
			return nil
		}
	case *Dict:
		if s, ok := key.(string); ok {
			t.Set(s, value)
			return nil
		}
		if ks, ok := key.([]string); ok {
			return t.SetList(ks, value)
		}
	case map[string]any:
		if s, ok := key.(string); ok {
			t[s] = value
			return nil
		}
	case []any:
		if i, ok := key.(int); ok {
			j, err := normIndex(i, len(t))
			if err != nil {
				return err
			}
			t[j] = value
			return nil
		}
	}
	rv := reflect.ValueOf(el)
	switch rv.Kind() {
	case reflect.Map:
		kv := reflect.ValueOf(key)
		vv := reflect.ValueOf(value)
		if kv.IsValid() && kv.Type().AssignableTo(rv.Type().Key()) &&
			vv.IsValid() && vv.Type().AssignableTo(rv.Type().Elem()) {
			rv.SetMapIndex(kv, vv)
			return nil
		}
	case reflect.Slice:
		if i, ok := key.(int); ok {
			j, err := normIndex(i, rv.Len())
			if err != nil {
				return err
			}
			vv := reflect.ValueOf(value)
			if vv.IsValid() && vv.Type().AssignableTo(rv.Type().Elem()) {
				rv.Index(j).Set(vv)
				return nil
			}
		}
	}
	return fmt.Errorf("plex: cannot assign %T[%v] = %T", el, key, value)
}

func delSubscript(el, key any) error {
	switch t := el.(type) {
	case *Plex:
		_, err := t.IDel(key)
		return err
	case *DefaultDict:
		if s, ok := key.(string); ok {
			t.Del(s)
			return nil
		}
	case *Dict:
		if s, ok := key.(string); ok {
			t.Del(s)
			return nil
		}
	case map[string]any:
		if s, ok := key.(string); ok {
			delete(t, s)
			return nil
		}
	}
	rv := reflect.ValueOf(el)
	if rv.Kind() == reflect.Map {
		kv := reflect.ValueOf(key)
		if kv.IsValid() && kv.Type().AssignableTo(rv.Type().Key()) {
			rv.SetMapIndex(kv, reflect.Value{})
			return nil
		}
	}
	return fmt.Errorf("plex: cannot delete %v from %T", key, el)
}

func normIndex(i, n int) (int, error) {
	j := i
	if j < 0 {
		j += n
	}
	if j < 0 || j >= n {
		return 0, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, n)
	}
	return j, nil
}
