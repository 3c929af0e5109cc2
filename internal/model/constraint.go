package model

import "cad-translator/internal/common"

// ConstraintKind enumerates the sketch constraint kinds.
type ConstraintKind int

const (
	ConstraintKindUnknown ConstraintKind = iota
	ConstraintKindCoincident
	ConstraintKindEqual
	ConstraintKindParallel
	ConstraintKindPerpendicular
	ConstraintKindTangent
	ConstraintKindHorizontal
	ConstraintKindVertical
	ConstraintKindAngle
	ConstraintKindDistance
	ConstraintKindHorizontalDistance
	ConstraintKindVerticalDistance
	ConstraintKindRadius
	ConstraintKindDiameter
)

// String returns a human-readable constraint kind name.
func (k ConstraintKind) String() string {
	switch k {
	case ConstraintKindCoincident:
		return "coincident"
	case ConstraintKindEqual:
		return "equal"
	case ConstraintKindParallel:
		return "parallel"
	case ConstraintKindPerpendicular:
		return "perpendicular"
	case ConstraintKindTangent:
		return "tangent"
	case ConstraintKindHorizontal:
		return "horizontal"
	case ConstraintKindVertical:
		return "vertical"
	case ConstraintKindAngle:
		return "angle"
	case ConstraintKindDistance:
		return "distance"
	case ConstraintKindHorizontalDistance:
		return "horizontal_distance"
	case ConstraintKindVerticalDistance:
		return "vertical_distance"
	case ConstraintKindRadius:
		return "radius"
	case ConstraintKindDiameter:
		return "diameter"
	default:
		return common.UnknownStr
	}
}

// Unit returns the unit of the constraint value, or "" for unvalued kinds.
func (k ConstraintKind) Unit() string {
	switch k {
	case ConstraintKindAngle:
		return "deg"
	case ConstraintKindDistance, ConstraintKindHorizontalDistance, ConstraintKindVerticalDistance,
		ConstraintKindRadius, ConstraintKindDiameter:
		return "mm"
	default:
		return ""
	}
}

// Constraint is a relation between sketch entities.
type Constraint interface {
	Entity
	Kind() ConstraintKind
	Operands() []Ref
	isConstraint()
}

// StateConstraint relates two operands without a value: coincident, equal,
// parallel, perpendicular, tangent. A coincident constraint between a point
// and an edge means point-on-object.
type StateConstraint struct {
	base
	Type ConstraintKind
	A, B Ref
}

// SnapConstraint is horizontal or vertical over one edge or two points.
type SnapConstraint struct {
	base
	Type ConstraintKind
	Refs []Ref
}

// AngleConstraint fixes the angle in degrees between two lines. Quadrant
// (1-4) selects which of the four angles at the intersection is meant,
// counted clockwise from A's start.
type AngleConstraint struct {
	base
	A, B     Ref
	Value    float64
	Quadrant int
}

// DistanceConstraint is a distance in millimetres: total, horizontal or
// vertical, over one edge (its length) or two operands.
type DistanceConstraint struct {
	base
	Type  ConstraintKind
	Refs  []Ref
	Value float64
}

// RadiusConstraint sets the radius or diameter of a single curve.
type RadiusConstraint struct {
	base
	Type  ConstraintKind
	Ref   Ref
	Value float64
}

func newState(kind ConstraintKind, a, b Ref) *StateConstraint {
	return &StateConstraint{base: newBase(), Type: kind, A: a, B: b}
}

func NewCoincident(a, b Ref) *StateConstraint    { return newState(ConstraintKindCoincident, a, b) }
func NewEqual(a, b Ref) *StateConstraint         { return newState(ConstraintKindEqual, a, b) }
func NewParallel(a, b Ref) *StateConstraint      { return newState(ConstraintKindParallel, a, b) }
func NewPerpendicular(a, b Ref) *StateConstraint { return newState(ConstraintKindPerpendicular, a, b) }
func NewTangent(a, b Ref) *StateConstraint       { return newState(ConstraintKindTangent, a, b) }

// NewState builds a state constraint of the given kind.
func NewState(kind ConstraintKind, a, b Ref) *StateConstraint {
	return newState(kind, a, b)
}

// NewSnap builds a horizontal or vertical constraint over refs.
func NewSnap(kind ConstraintKind, refs ...Ref) *SnapConstraint {
	return &SnapConstraint{base: newBase(), Type: kind, Refs: refs}
}

func NewHorizontal(refs ...Ref) *SnapConstraint { return NewSnap(ConstraintKindHorizontal, refs...) }
func NewVertical(refs ...Ref) *SnapConstraint   { return NewSnap(ConstraintKindVertical, refs...) }

// NewAngle builds an angle constraint; degrees is the angle value.
func NewAngle(a, b Ref, degrees float64, quadrant int) *AngleConstraint {
	return &AngleConstraint{base: newBase(), A: a, B: b, Value: degrees, Quadrant: quadrant}
}

// NewDistanceOf builds a distance constraint of the given kind.
func NewDistanceOf(kind ConstraintKind, value float64, refs ...Ref) *DistanceConstraint {
	return &DistanceConstraint{base: newBase(), Type: kind, Refs: refs, Value: value}
}

func NewDistance(value float64, refs ...Ref) *DistanceConstraint {
	return NewDistanceOf(ConstraintKindDistance, value, refs...)
}

func NewHorizontalDistance(value float64, refs ...Ref) *DistanceConstraint {
	return NewDistanceOf(ConstraintKindHorizontalDistance, value, refs...)
}

func NewVerticalDistance(value float64, refs ...Ref) *DistanceConstraint {
	return NewDistanceOf(ConstraintKindVerticalDistance, value, refs...)
}

// NewRadiusOf builds a radius or diameter constraint.
func NewRadiusOf(kind ConstraintKind, ref Ref, value float64) *RadiusConstraint {
	return &RadiusConstraint{base: newBase(), Type: kind, Ref: ref, Value: value}
}

func NewRadius(ref Ref, value float64) *RadiusConstraint {
	return NewRadiusOf(ConstraintKindRadius, ref, value)
}

func NewDiameter(ref Ref, value float64) *RadiusConstraint {
	return NewRadiusOf(ConstraintKindDiameter, ref, value)
}

func (c *StateConstraint) Kind() ConstraintKind    { return c.Type }
func (c *SnapConstraint) Kind() ConstraintKind     { return c.Type }
func (*AngleConstraint) Kind() ConstraintKind      { return ConstraintKindAngle }
func (c *DistanceConstraint) Kind() ConstraintKind { return c.Type }
func (c *RadiusConstraint) Kind() ConstraintKind   { return c.Type }

func (c *StateConstraint) Operands() []Ref    { return []Ref{c.A, c.B} }
func (c *SnapConstraint) Operands() []Ref     { return c.Refs }
func (c *AngleConstraint) Operands() []Ref    { return []Ref{c.A, c.B} }
func (c *DistanceConstraint) Operands() []Ref { return c.Refs }
func (c *RadiusConstraint) Operands() []Ref   { return []Ref{c.Ref} }

func (*StateConstraint) isConstraint()    {}
func (*SnapConstraint) isConstraint()     {}
func (*AngleConstraint) isConstraint()    {}
func (*DistanceConstraint) isConstraint() {}
func (*RadiusConstraint) isConstraint()   {}

// IsState reports whether k is one of the valueless two-operand relations.
func (k ConstraintKind) IsState() bool {
	switch k {
	default:
		return false
	case ConstraintKindCoincident, ConstraintKindEqual, ConstraintKindParallel,
		ConstraintKindPerpendicular, ConstraintKindTangent:
		return true
	}
}

// IsDistance reports whether k is one of the distance kinds.
func (k ConstraintKind) IsDistance() bool {
	switch k {
	default:
		return false
	case ConstraintKindDistance, ConstraintKindHorizontalDistance, ConstraintKindVerticalDistance:
		return true
	}
}
