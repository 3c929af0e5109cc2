package model

import "cad-translator/internal/common"

// GeometryKind enumerates the sketch geometry kinds.
type GeometryKind int

const (
	GeometryKindUnknown GeometryKind = iota
	GeometryKindPoint
	GeometryKindLineSegment
	GeometryKindCircle
	GeometryKindCircularArc
	GeometryKindEllipse
)

// String returns a human-readable geometry kind name.
func (k GeometryKind) String() string {
	switch k {
	case GeometryKindPoint:
		return "point"
	case GeometryKindLineSegment:
		return "line_segment"
	case GeometryKindCircle:
		return "circle"
	case GeometryKindCircularArc:
		return "circular_arc"
	case GeometryKindEllipse:
		return "ellipse"
	default:
		return common.UnknownStr
	}
}

// Geometry is a 2D element of a sketch.
type Geometry interface {
	Entity
	Kind() GeometryKind
	isGeometry()
}

// Point is a free sketch point.
type Point struct {
	base
	Position Vec2
}

// LineSegment runs from Start to End.
type LineSegment struct {
	base
	Start Vec2
	End   Vec2
}

// Circle is a full circle.
type Circle struct {
	base
	Center Vec2
	Radius float64
}

// CircularArc is the counter-clockwise arc of a circle from StartAngle to
// EndAngle, both in radians.
type CircularArc struct {
	base
	Center     Vec2
	Radius     float64
	StartAngle float64
	EndAngle   float64
}

// Ellipse has its major axis rotated by Angle radians from the sketch x axis.
type Ellipse struct {
	base
	Center    Vec2
	SemiMajor float64
	SemiMinor float64
	Angle     float64
}

func NewPoint(x, y float64) *Point {
	return &Point{base: newBase(), Position: Vec2{x, y}}
}

func NewLineSegment(start, end Vec2) *LineSegment {
	return &LineSegment{base: newBase(), Start: start, End: end}
}

func NewCircle(center Vec2, radius float64) *Circle {
	return &Circle{base: newBase(), Center: center, Radius: radius}
}

func NewCircularArc(center Vec2, radius, startAngle, endAngle float64) *CircularArc {
	return &CircularArc{base: newBase(), Center: center, Radius: radius, StartAngle: startAngle, EndAngle: endAngle}
}

func NewEllipse(center Vec2, semiMajor, semiMinor, angle float64) *Ellipse {
	return &Ellipse{base: newBase(), Center: center, SemiMajor: semiMajor, SemiMinor: semiMinor, Angle: angle}
}

func (*Point) Kind() GeometryKind       { return GeometryKindPoint }
func (*LineSegment) Kind() GeometryKind { return GeometryKindLineSegment }
func (*Circle) Kind() GeometryKind      { return GeometryKindCircle }
func (*CircularArc) Kind() GeometryKind { return GeometryKindCircularArc }
func (*Ellipse) Kind() GeometryKind     { return GeometryKindEllipse }

func (*Point) isGeometry()       {}
func (*LineSegment) isGeometry() {}
func (*Circle) isGeometry()      {}
func (*CircularArc) isGeometry() {}
func (*Ellipse) isGeometry()     {}

// References lists the sub-parts a geometry kind can expose, CORE first.
func References(k GeometryKind) []ConstraintReference {
	switch k {
	case GeometryKindPoint:
		return []ConstraintReference{ReferenceCore}
	case GeometryKindLineSegment:
		return []ConstraintReference{ReferenceCore, ReferenceStart, ReferenceEnd}
	case GeometryKindCircle:
		return []ConstraintReference{ReferenceCore, ReferenceCenter}
	case GeometryKindCircularArc:
		return []ConstraintReference{ReferenceCore, ReferenceStart, ReferenceEnd, ReferenceCenter}
	case GeometryKindEllipse:
		return []ConstraintReference{
			ReferenceCore, ReferenceCenter,
			ReferenceX, ReferenceXMax, ReferenceXMin,
			ReferenceY, ReferenceYMax, ReferenceYMin,
			ReferenceFocalPlus, ReferenceFocalMinus,
		}
	default:
		return nil
	}
}

// Supports reports whether kind k exposes reference r.
func Supports(k GeometryKind, r ConstraintReference) bool {
	for _, candidate := range References(k) {
		if candidate == r {
			return true
		}
	}

	return false
}
