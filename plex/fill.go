package plex

import "fmt"

// Fill operations and depth/shape introspection.

// Fill returns a structure isomorphic to the receiver with every leaf
// replaced by sequential integers from start, assigned depth-first
// left-to-right. A positive depth restarts the numbering that many levels
// down (each subtree numbered independently); [Deepest] restarts it per
// innermost group.
func (p *Plex) Fill(start, depth int) (*Plex, error) {
	switch {
	case depth == 0:
		c := &counter{n: start - 1}
		return fillSeq(p, c), nil
	case depth < 0:
		if p.allNested() {
			out := make([]any, len(p.elems))
			for i, el := range p.elems {
				sub, _ := el.(*Plex)
				res, err := sub.Fill(start, depth)
				if err != nil {
					return nil, err
				}
				out[i] = res
			}
			return newPlex(out, nil), nil
		}
		c := &counter{n: start - 1}
		return fillSeq(p, c), nil
	default:
		out := make([]any, len(p.elems))
		for i, el := range p.elems {
			sub, ok := el.(*Plex)
			if !ok {
				return nil, &StructureError{
					Op:     "fill",
					Detail: fmt.Sprintf("cannot recurse %d more levels into %T", depth, el),
				}
			}
			res, err := sub.Fill(start, depth-1)
			if err != nil {
				return nil, err
			}
			out[i] = res
		}
		return newPlex(out, nil), nil
	}
}

func fillSeq(p *Plex, c *counter) *Plex {
	out := make([]any, len(p.elems))
	for i, el := range p.elems {
		if sub, ok := el.(*Plex); ok {
			out[i] = fillSeq(sub, c)
			continue
		}
		out[i] = c.succ()
	}
	return newPlex(out, nil)
}

// LFill is [Plex.Fill] returning plain nested lists instead of a Plex.
func (p *Plex) LFill(start, depth int) ([]any, error) {
	res, err := p.Fill(start, depth)
	if err != nil {
		return nil, err
	}
	return res.Native().([]any), nil
}

// Left returns a structure isomorphic to the receiver whose leaves count
// down the elements remaining after each position: from leaf count - 1
// down to 0, depth-first. Depth semantics match [Plex.Fill]: positive
// depths and [Deepest] restart the countdown per subtree or per innermost
// group.
func (p *Plex) Left(depth int) (*Plex, error) {
	switch {
	case depth == 0:
		c := &counter{n: p.leafCount()}
		return leftSeq(p, c), nil
	case depth < 0:
		if p.allNested() {
			out := make([]any, len(p.elems))
			for i, el := range p.elems {
				sub, _ := el.(*Plex)
				res, err := sub.Left(depth)
				if err != nil {
					return nil, err
				}
				out[i] = res
			}
			return newPlex(out, nil), nil
		}
		c := &counter{n: p.leafCount()}
		return leftSeq(p, c), nil
	default:
		out := make([]any, len(p.elems))
		for i, el := range p.elems {
			sub, ok := el.(*Plex)
			if !ok {
				return nil, &StructureError{
					Op:     "left",
					Detail: fmt.Sprintf("cannot recurse %d more levels into %T", depth, el),
				}
			}
			res, err := sub.Left(depth - 1)
			if err != nil {
				return nil, err
			}
			out[i] = res
		}
		return newPlex(out, nil), nil
	}
}

func leftSeq(p *Plex, c *counter) *Plex {
	out := make([]any, len(p.elems))
	for i, el := range p.elems {
		if sub, ok := el.(*Plex); ok {
			out[i] = leftSeq(sub, c)
			continue
		}
		out[i] = c.pred()
	}
	return newPlex(out, nil)
}

// ValuesLike returns a structure isomorphic to the receiver with every
// element replaced by v, or, when v is a sequence matching the
// receiver's length, by the per-position value. No derived index is
// computed.
func (p *Plex) ValuesLike(v any) *Plex {
	vals := ensureLen(len(p.elems), v, false)
	out := make([]any, len(p.elems))
	for i, el := range p.elems {
		if sub, ok := el.(*Plex); ok {
			out[i] = sub.ValuesLike(vals[i])
			continue
		}
		out[i] = vals[i]
	}
	return newPlex(out, nil)
}

// ─────────────────────────────────────────────────────────────────────────────
// Introspection
// ─────────────────────────────────────────────────────────────────────────────

// Depth returns the number of nesting levels before reaching leaves: 0 for
// a flat or empty collection, and the maximum across branches otherwise.
func (p *Plex) Depth() int {
	max := 0
	for _, el := range p.elems {
		if sub, ok := el.(*Plex); ok {
			if d := 1 + sub.Depth(); d > max {
				max = d
			}
		}
	}
	return max
}

// LenAt returns the total element count at the given nesting depth:
// 0 is the immediate length, positive depths sum the lengths that many
// levels down, and a negative depth counts the ultimate leaves.
func (p *Plex) LenAt(depth int) int {
	switch {
	case depth < 0:
		return p.leafCount()
	case depth == 0:
		return len(p.elems)
	default:
		total := 0
		for _, el := range p.elems {
			if sub, ok := el.(*Plex); ok {
				total += sub.LenAt(depth - 1)
			}
		}
		return total
	}
}

// Shape returns a structure isomorphic to the receiver where each leaf
// holds the length of its innermost group.
func (p *Plex) Shape() *Plex {
	out := make([]any, len(p.elems))
	for i, el := range p.elems {
		if sub, ok := el.(*Plex); ok {
			out[i] = sub.Shape()
			continue
		}
		out[i] = len(p.elems)
	}
	return newPlex(out, nil)
}

// Structure returns one integer per nesting level: the total element
// count at that level, outermost first.
func (p *Plex) Structure() []int {
	var out []int
	level := []*Plex{p}
	for len(level) > 0 {
		total := 0
		var next []*Plex
		for _, node := range level {
			total += len(node.elems)
			for _, el := range node.elems {
				if sub, ok := el.(*Plex); ok {
					next = append(next, sub)
				}
			}
		}
		out = append(out, total)
		level = next
	}
	return out
}
