package plex

// Comparison and logical operators. All comparisons filter: the result is
// the subset of the *root* collection at the positions where the
// comparison holds, so a chain like
//
//	bar, _ := records.Attr("bar")
//	zeros := bar.Eq(0)
//
// yields original records, not booleans. The Inds variants expose the raw
// (possibly nested) index structure instead.

var (
	eqInds = makeComparator(cmpEq)
	neInds = makeComparator(cmpNe)
	ltInds = makeComparator(cmpLt)
	leInds = makeComparator(cmpLe)
	gtInds = makeComparator(cmpGt)
	geInds = makeComparator(cmpGe)

	andOp = makeLogical(setAnd)
	orOp  = makeLogical(setOr)
	xorOp = makeLogical(setXor)
)

// Eq selects the root elements at positions where the receiver equals
// other.
//
// other may be: the receiver itself (everything matches); a sequence of
// the same length (element-for-element, recursing into nested groups); a
// sequence of different nonzero length (pairwise against every element,
// results merged by union); an empty sequence (nothing matches, as a
// policy); or a scalar (compared against every leaf).
func (p *Plex) Eq(other any) *Plex { return p.Root().selectInds(eqInds(p, other)) }

// Ne selects the root elements at positions where the receiver differs
// from other. Against an empty sequence it returns everything; mismatched
// lengths merge by intersection.
func (p *Plex) Ne(other any) *Plex { return p.Root().selectInds(neInds(p, other)) }

// Lt selects the root elements at positions where the receiver is ordered
// before other.
func (p *Plex) Lt(other any) *Plex { return p.Root().selectInds(ltInds(p, other)) }

// Le selects the root elements at positions where the receiver is ordered
// before or equal to other.
func (p *Plex) Le(other any) *Plex { return p.Root().selectInds(leInds(p, other)) }

// Gt selects the root elements at positions where the receiver is ordered
// after other.
func (p *Plex) Gt(other any) *Plex { return p.Root().selectInds(gtInds(p, other)) }

// Ge selects the root elements at positions where the receiver is ordered
// after or equal to other.
func (p *Plex) Ge(other any) *Plex { return p.Root().selectInds(geInds(p, other)) }

// EqInds returns the index structure Eq would select, without selecting.
func (p *Plex) EqInds(other any) Inds { return eqInds(p, other) }

// NeInds returns the index structure Ne would select, without selecting.
func (p *Plex) NeInds(other any) Inds { return neInds(p, other) }

// LtInds returns the index structure Lt would select, without selecting.
func (p *Plex) LtInds(other any) Inds { return ltInds(p, other) }

// LeInds returns the index structure Le would select, without selecting.
func (p *Plex) LeInds(other any) Inds { return leInds(p, other) }

// GtInds returns the index structure Gt would select, without selecting.
func (p *Plex) GtInds(other any) Inds { return gtInds(p, other) }

// GeInds returns the index structure Ge would select, without selecting.
func (p *Plex) GeInds(other any) Inds { return geInds(p, other) }

// And combines with other element-wise when both sides are boolean
// structures of equal shape. Otherwise it falls back to an identity-set
// intersection over the flattened leaves: the leaves of the receiver that
// are, as in-memory elements rather than by value, also leaves of other, in the
// receiver's order. The fallback result is flat and unrooted.
func (p *Plex) And(other *Plex) *Plex { return andOp(p, other) }

// Or combines element-wise, or falls back to an identity-set union:
// the receiver's leaves followed by other's leaves not already present.
func (p *Plex) Or(other *Plex) *Plex { return orOp(p, other) }

// Xor combines element-wise, or falls back to an identity-set symmetric
// difference: the receiver's exclusive leaves, then other's.
func (p *Plex) Xor(other *Plex) *Plex { return xorOp(p, other) }
