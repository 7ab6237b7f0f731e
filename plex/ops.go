package plex

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/oklog/ulid/v2"
)

// Operator factories.
//
// The comparison, logical, binary and unary behaviours of Plex are built
// here as factory-generated functions over small operator kinds; the
// methods in compare.go and arith.go install them. Keeping the dispatch
// and broadcasting rules in one place means every operator family shares
// the exact same semantics.

// ─────────────────────────────────────────────────────────────────────────────
// Value coercion
// ─────────────────────────────────────────────────────────────────────────────

// toFloat views v as a float64 when it has any numeric dynamic type.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}

// toInt views v as an int64 when it has an integer dynamic type.
func toInt(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case uint:
		return int64(t), true
	case uint8:
		return int64(t), true
	case uint16:
		return int64(t), true
	case uint32:
		return int64(t), true
	case uint64:
		return int64(t), true
	}
	return 0, false
}

// equalValues reports value equality with numeric coercion: 1 == 1.0.
// Containers compare by their native forms.
func equalValues(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	if sa, ok := a.(string); ok {
		sb, ok := b.(string)
		return ok && sa == sb
	}
	if ka, ok := a.(KeyValue); ok {
		kb, ok := b.(KeyValue)
		return ok && ka.Key == kb.Key && equalValues(ka.Val, kb.Val)
	}
	return reflect.DeepEqual(nativeValue(a), nativeValue(b))
}

// orderValues compares two ordered values: -1, 0 or +1 plus an ok flag.
// Numbers order numerically, strings lexically; anything else is unordered.
func orderValues(a, b any) (int, bool) {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			switch {
			case fa < fb:
				return -1, true
			case fa > fb:
				return 1, true
			}
			return 0, true
		}
		return 0, false
	}
	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			return strings.Compare(sa, sb), true
		}
	}
	return 0, false
}

// universalLess is a deterministic total order used by SortBy when leaf
// values are of mixed type: ordered values first, then by type name, then
// by rendered form.
func universalLess(a, b any) bool {
	if c, ok := orderValues(a, b); ok {
		return c < 0
	}
	ta, tb := fmt.Sprintf("%T", a), fmt.Sprintf("%T", b)
	if ta != tb {
		return ta < tb
	}
	return fmt.Sprint(nativeValue(a)) < fmt.Sprint(nativeValue(b))
}

// ─────────────────────────────────────────────────────────────────────────────
// Comparator factory
// ─────────────────────────────────────────────────────────────────────────────

type cmpKind int

const (
	cmpEq cmpKind = iota
	cmpNe
	cmpLt
	cmpLe
	cmpGt
	cmpGe
)

// holds applies the comparison to two leaf values. Unordered operands make
// every ordering comparison false and only affect Eq/Ne through equality.
func (k cmpKind) holds(a, b any) bool {
	switch k {
	case cmpEq:
		return equalValues(a, b)
	case cmpNe:
		return !equalValues(a, b)
	}
	c, ok := orderValues(a, b)
	if !ok {
		return false
	}
	switch k {
	case cmpLt:
		return c < 0
	case cmpLe:
		return c <= 0
	case cmpGt:
		return c > 0
	case cmpGe:
		return c >= 0
	}
	return false
}

// inclusive reports whether the comparator admits equality. Inclusive
// comparators short-cut identity comparisons to "everything" and merge
// mismatched-length results with union; exclusive ones short-cut to
// "nothing" and merge with intersection.
func (k cmpKind) inclusive() bool {
	return k == cmpEq || k == cmpLe || k == cmpGe
}

func (k cmpKind) mergeOp() setOp {
	if k.inclusive() {
		return setOr
	}
	return setAnd
}

// makeComparator builds the index-computing half of a comparison operator.
// The Plex methods feed the result through selectInds on the root, which is
// what turns comparisons into filters over the original data.
func makeComparator(kind cmpKind) func(*Plex, any) Inds {
	return func(p *Plex, other any) Inds {
		return cmpInds(p, other, kind)
	}
}

func cmpInds(p *Plex, other any, kind cmpKind) Inds {
	if o, ok := other.(*Plex); ok && o == p {
		if kind.inclusive() {
			return p.allInds()
		}
		return Inds{}
	}
	if seq, ok := asSeq(other); ok {
		switch {
		case len(seq) == 0:
			if kind == cmpEq {
				return Inds{}
			}
			return p.allInds()
		case len(seq) == len(p.elems):
			return cmpPairwise(p, seq, kind)
		default:
			// Mismatched nonzero length: compare against each element of
			// the other side in turn and merge with the operator's set rule.
			acc := cmpInds(p, seq[0], kind)
			for _, o := range seq[1:] {
				acc = mergeInds(acc, cmpInds(p, o, kind), kind.mergeOp())
			}
			return acc
		}
	}
	return cmpScalar(p, other, kind)
}

// cmpPairwise compares position by position. Nested elements contribute a
// nested index tree at their position (one entry per position, possibly
// empty) while flat matches contribute their index.
func cmpPairwise(p *Plex, seq []any, kind cmpKind) Inds {
	out := Inds{}
	for i, el := range p.elems {
		if sub, ok := el.(*Plex); ok {
			out = append(out, cmpInds(sub, seq[i], kind))
			continue
		}
		if kind.holds(el, seq[i]) {
			out = append(out, i)
		}
	}
	return out
}

func cmpScalar(p *Plex, other any, kind cmpKind) Inds {
	out := Inds{}
	for i, el := range p.elems {
		if sub, ok := el.(*Plex); ok {
			out = append(out, cmpInds(sub, other, kind))
			continue
		}
		if kind.holds(el, other) {
			out = append(out, i)
		}
	}
	return out
}

// allInds returns the index tree selecting every element of p.
func (p *Plex) allInds() Inds {
	out := make(Inds, len(p.elems))
	for i, el := range p.elems {
		if sub, ok := el.(*Plex); ok {
			out[i] = sub.allInds()
		} else {
			out[i] = i
		}
	}
	return out
}

// selectInds picks the elements of p named by the index tree, recursing
// into nested structure. The result is a fresh, self-rooted collection.
func (p *Plex) selectInds(t Inds) *Plex {
	if nestedInds(t) && len(t) == len(p.elems) {
		elems := make([]any, len(t))
		ids := make([]ulid.ULID, len(t))
		for i := range t {
			sub, ok := p.elems[i].(*Plex)
			if !ok {
				// Flat element under a nested tree: treat the subtree as a
				// flat selection on p itself.
				if flat, isFlat := flatInds(t); isFlat {
					return p.pick(flat, nil)
				}
				return Empty()
			}
			elems[i] = sub.selectInds(t[i].(Inds))
			ids[i] = p.ids[i]
		}
		return &Plex{elems: elems, ids: ids}
	}
	flat, ok := flatInds(t)
	if !ok {
		return Empty()
	}
	return p.pick(flat, nil)
}

// ─────────────────────────────────────────────────────────────────────────────
// Logical-op factory
// ─────────────────────────────────────────────────────────────────────────────

// makeLogical builds a logical operator: element-wise boolean combination
// when both operands line up as booleans, otherwise a set-style combination
// over the flattened leaves keyed by element identity.
func makeLogical(op setOp) func(*Plex, *Plex) *Plex {
	return func(p, o *Plex) *Plex {
		if res, ok := tryBoolCombine(p, o, op); ok {
			return res
		}
		return identityCombine(p, o, op)
	}
}

func tryBoolCombine(p, o *Plex, op setOp) (*Plex, bool) {
	if len(p.elems) != len(o.elems) {
		return nil, false
	}
	out := make([]any, len(p.elems))
	for i, el := range p.elems {
		if sub, ok := el.(*Plex); ok {
			osub, ok := o.elems[i].(*Plex)
			if !ok {
				return nil, false
			}
			res, ok := tryBoolCombine(sub, osub, op)
			if !ok {
				return nil, false
			}
			out[i] = res
			continue
		}
		ab, aok := el.(bool)
		bb, bok := o.elems[i].(bool)
		if !aok || !bok {
			return nil, false
		}
		switch op {
		case setAnd:
			out[i] = ab && bb
		case setOr:
			out[i] = ab || bb
		case setXor:
			out[i] = ab != bb
		}
	}
	return newPlex(out, p.Root()), true
}

// identityCombine flattens both operands to their ultimate leaves and
// combines them as identity sets: self's matches first, then the other's,
// preserving relative order. The result is flat and unrooted.
func identityCombine(p, o *Plex, op setOp) *Plex {
	a, b := p.flattenRefs(), o.flattenRefs()
	inA := make(map[ulid.ULID]struct{}, len(a))
	for _, r := range a {
		inA[r.id] = struct{}{}
	}
	inB := make(map[ulid.ULID]struct{}, len(b))
	for _, r := range b {
		inB[r.id] = struct{}{}
	}
	keep := make([]leafRef, 0, len(a)+len(b))
	switch op {
	case setAnd:
		for _, r := range a {
			if _, ok := inB[r.id]; ok {
				keep = append(keep, r)
			}
		}
	case setOr:
		keep = append(keep, a...)
		for _, r := range b {
			if _, ok := inA[r.id]; !ok {
				keep = append(keep, r)
			}
		}
	case setXor:
		for _, r := range a {
			if _, ok := inB[r.id]; !ok {
				keep = append(keep, r)
			}
		}
		for _, r := range b {
			if _, ok := inA[r.id]; !ok {
				keep = append(keep, r)
			}
		}
	}
	res := &Plex{elems: make([]any, len(keep)), ids: make([]ulid.ULID, len(keep))}
	for i, r := range keep {
		res.elems[i] = r.v
		res.ids[i] = r.id
	}
	return res
}

// ─────────────────────────────────────────────────────────────────────────────
// Binary-op factory
// ─────────────────────────────────────────────────────────────────────────────

type binKind int

const (
	binAdd binKind = iota
	binSub
	binMul
	binDiv
	binFloorDiv
	binMod
	binPow
	binLsh
	binRsh
)

func (k binKind) String() string {
	switch k {
	case binAdd:
		return "+"
	case binSub:
		return "-"
	case binMul:
		return "*"
	case binDiv:
		return "/"
	case binFloorDiv:
		return "//"
	case binMod:
		return "%"
	case binPow:
		return "**"
	case binLsh:
		return "<<"
	case binRsh:
		return ">>"
	}
	return "?"
}

// makeBinary builds an element-wise binary operator with right-operand
// broadcasting: a same-length Plex pairs element-wise, everything else is
// shared across all elements. swapped derives the reflected variant from
// the same base operator.
func makeBinary(kind binKind, swapped bool) func(*Plex, any) (*Plex, error) {
	var apply func(p *Plex, other any) (*Plex, error)
	apply = func(p *Plex, other any) (*Plex, error) {
		vals := ensureLen(len(p.elems), other, true)
		out := make([]any, len(p.elems))
		for i, el := range p.elems {
			if sub, ok := el.(*Plex); ok {
				res, err := apply(sub, vals[i])
				if err != nil {
					return nil, err
				}
				out[i] = res
				continue
			}
			a, b := el, vals[i]
			if swapped {
				a, b = b, a
			}
			v, err := numBinary(kind, a, b)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return newPlex(out, p.Root()), nil
	}
	return apply
}

func numBinary(kind binKind, a, b any) (any, error) {
	if kind == binAdd {
		if sa, ok := a.(string); ok {
			if sb, ok := b.(string); ok {
				return sa + sb, nil
			}
		}
	}
	ia, aInt := toInt(a)
	ib, bInt := toInt(b)
	if aInt && bInt && kind != binDiv {
		return intBinary(kind, ia, ib)
	}
	fa, aok := toFloat(a)
	fb, bok := toFloat(b)
	if !aok || !bok {
		return nil, fmt.Errorf("plex: unsupported operand types for %s: %T and %T", kind, a, b)
	}
	switch kind {
	case binAdd:
		return fa + fb, nil
	case binSub:
		return fa - fb, nil
	case binMul:
		return fa * fb, nil
	case binDiv:
		return fa / fb, nil
	case binFloorDiv:
		return math.Floor(fa / fb), nil
	case binMod:
		return math.Mod(fa, fb), nil
	case binPow:
		return math.Pow(fa, fb), nil
	}
	return nil, fmt.Errorf("plex: %s requires integer operands, got %T and %T", kind, a, b)
}

func intBinary(kind binKind, a, b int64) (any, error) {
	switch kind {
	case binAdd:
		return int(a + b), nil
	case binSub:
		return int(a - b), nil
	case binMul:
		return int(a * b), nil
	case binFloorDiv:
		if b == 0 {
			return nil, fmt.Errorf("plex: integer division by zero")
		}
		q := a / b
		if (a%b != 0) && ((a < 0) != (b < 0)) {
			q--
		}
		return int(q), nil
	case binMod:
		if b == 0 {
			return nil, fmt.Errorf("plex: integer modulo by zero")
		}
		return int(a % b), nil
	case binPow:
		if b < 0 {
			return math.Pow(float64(a), float64(b)), nil
		}
		out := int64(1)
		for i := int64(0); i < b; i++ {
			out *= a
		}
		return int(out), nil
	case binLsh:
		return int(a << uint(b)), nil
	case binRsh:
		return int(a >> uint(b)), nil
	}
	return nil, fmt.Errorf("plex: unsupported integer operator %s", kind)
}

// ─────────────────────────────────────────────────────────────────────────────
// Unary-op factory
// ─────────────────────────────────────────────────────────────────────────────

type unKind int

const (
	unNeg unKind = iota
	unPos
	unAbs
	unInvert
	unNot
)

func makeUnary(kind unKind) func(*Plex) (*Plex, error) {
	var apply func(p *Plex) (*Plex, error)
	apply = func(p *Plex) (*Plex, error) {
		out := make([]any, len(p.elems))
		for i, el := range p.elems {
			if sub, ok := el.(*Plex); ok {
				res, err := apply(sub)
				if err != nil {
					return nil, err
				}
				out[i] = res
				continue
			}
			v, err := numUnary(kind, el)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return newPlex(out, p.Root()), nil
	}
	return apply
}

func numUnary(kind unKind, v any) (any, error) {
	switch kind {
	case unNot:
		if b, ok := v.(bool); ok {
			return !b, nil
		}
	case unInvert:
		if i, ok := toInt(v); ok {
			return int(^i), nil
		}
	case unNeg, unPos, unAbs:
		if i, ok := toInt(v); ok {
			switch kind {
			case unNeg:
				return int(-i), nil
			case unPos:
				return int(i), nil
			case unAbs:
				if i < 0 {
					return int(-i), nil
				}
				return int(i), nil
			}
		}
		if f, ok := toFloat(v); ok {
			switch kind {
			case unNeg:
				return -f, nil
			case unPos:
				return f, nil
			case unAbs:
				return math.Abs(f), nil
			}
		}
	}
	return nil, fmt.Errorf("plex: unsupported operand type %T", v)
}
