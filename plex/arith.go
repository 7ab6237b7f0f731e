package plex

// Arithmetic and bitwise operators: pure element-wise application with
// right-operand broadcasting. A same-length Plex pairs element-wise;
// anything else, scalars included, is shared across every element.
// R-prefixed methods are the reflected (swapped-operand) variants and
// I-prefixed methods apply in place, mutating the receiver's elements.

var (
	addOp      = makeBinary(binAdd, false)
	subOp      = makeBinary(binSub, false)
	mulOp      = makeBinary(binMul, false)
	divOp      = makeBinary(binDiv, false)
	floorDivOp = makeBinary(binFloorDiv, false)
	modOp      = makeBinary(binMod, false)
	powOp      = makeBinary(binPow, false)
	lshOp      = makeBinary(binLsh, false)
	rshOp      = makeBinary(binRsh, false)

	rAddOp      = makeBinary(binAdd, true)
	rSubOp      = makeBinary(binSub, true)
	rMulOp      = makeBinary(binMul, true)
	rDivOp      = makeBinary(binDiv, true)
	rFloorDivOp = makeBinary(binFloorDiv, true)
	rModOp      = makeBinary(binMod, true)
	rPowOp      = makeBinary(binPow, true)

	negOp    = makeUnary(unNeg)
	posOp    = makeUnary(unPos)
	absOp    = makeUnary(unAbs)
	invertOp = makeUnary(unInvert)
	notOp    = makeUnary(unNot)
)

// Add returns the element-wise sum. Both ints and floats are supported;
// string elements concatenate with string operands.
func (p *Plex) Add(other any) (*Plex, error) { return addOp(p, other) }

// Sub returns the element-wise difference.
func (p *Plex) Sub(other any) (*Plex, error) { return subOp(p, other) }

// Mul returns the element-wise product.
func (p *Plex) Mul(other any) (*Plex, error) { return mulOp(p, other) }

// Div returns the element-wise quotient, always as float64.
func (p *Plex) Div(other any) (*Plex, error) { return divOp(p, other) }

// FloorDiv returns the element-wise floored quotient. Integer operands
// stay integers.
func (p *Plex) FloorDiv(other any) (*Plex, error) { return floorDivOp(p, other) }

// Mod returns the element-wise remainder.
func (p *Plex) Mod(other any) (*Plex, error) { return modOp(p, other) }

// Pow returns the element-wise power.
func (p *Plex) Pow(other any) (*Plex, error) { return powOp(p, other) }

// Lsh returns the element-wise left shift (integer elements only).
func (p *Plex) Lsh(other any) (*Plex, error) { return lshOp(p, other) }

// Rsh returns the element-wise right shift (integer elements only).
func (p *Plex) Rsh(other any) (*Plex, error) { return rshOp(p, other) }

// DivMod returns the element-wise floored quotient and remainder together.
func (p *Plex) DivMod(other any) (*Plex, *Plex, error) {
	q, err := p.FloorDiv(other)
	if err != nil {
		return nil, nil, err
	}
	r, err := p.Mod(other)
	if err != nil {
		return nil, nil, err
	}
	return q, r, nil
}

// RAdd returns other + elements, element-wise.
func (p *Plex) RAdd(other any) (*Plex, error) { return rAddOp(p, other) }

// RSub returns other - elements, element-wise.
func (p *Plex) RSub(other any) (*Plex, error) { return rSubOp(p, other) }

// RMul returns other * elements, element-wise.
func (p *Plex) RMul(other any) (*Plex, error) { return rMulOp(p, other) }

// RDiv returns other / elements, element-wise, always as float64.
func (p *Plex) RDiv(other any) (*Plex, error) { return rDivOp(p, other) }

// RFloorDiv returns other // elements, element-wise.
func (p *Plex) RFloorDiv(other any) (*Plex, error) { return rFloorDivOp(p, other) }

// RMod returns other % elements, element-wise.
func (p *Plex) RMod(other any) (*Plex, error) { return rModOp(p, other) }

// RPow returns other ** elements, element-wise.
func (p *Plex) RPow(other any) (*Plex, error) { return rPowOp(p, other) }

// IAdd adds other into the receiver in place and returns it.
func (p *Plex) IAdd(other any) (*Plex, error) { return p.inPlace(addOp, other) }

// ISub subtracts other from the receiver in place and returns it.
func (p *Plex) ISub(other any) (*Plex, error) { return p.inPlace(subOp, other) }

// IMul multiplies the receiver by other in place and returns it.
func (p *Plex) IMul(other any) (*Plex, error) { return p.inPlace(mulOp, other) }

// IDiv divides the receiver by other in place and returns it.
func (p *Plex) IDiv(other any) (*Plex, error) { return p.inPlace(divOp, other) }

// IMod reduces the receiver modulo other in place and returns it.
func (p *Plex) IMod(other any) (*Plex, error) { return p.inPlace(modOp, other) }

func (p *Plex) inPlace(op func(*Plex, any) (*Plex, error), other any) (*Plex, error) {
	res, err := op(p, other)
	if err != nil {
		return nil, err
	}
	copy(p.elems, res.elems)
	return p, nil
}

// Neg returns the element-wise negation.
func (p *Plex) Neg() (*Plex, error) { return negOp(p) }

// Pos returns the elements unchanged, verifying they are numeric.
func (p *Plex) Pos() (*Plex, error) { return posOp(p) }

// Abs returns the element-wise absolute value.
func (p *Plex) Abs() (*Plex, error) { return absOp(p) }

// Invert returns the element-wise bitwise complement (integer elements).
func (p *Plex) Invert() (*Plex, error) { return invertOp(p) }

// Not returns the element-wise boolean negation (boolean elements).
func (p *Plex) Not() (*Plex, error) { return notOp(p) }
