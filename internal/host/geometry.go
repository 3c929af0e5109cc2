package host

import (
	"fmt"
	"math"
)

// GeometryType is the host type name of a sketch geometry element.
type GeometryType string

const (
	GeomPoint       GeometryType = "Part::GeomPoint"
	GeomLineSegment GeometryType = "Part::GeomLineSegment"
	GeomCircle      GeometryType = "Part::GeomCircle"
	GeomArcOfCircle GeometryType = "Part::GeomArcOfCircle"
	GeomEllipse     GeometryType = "Part::GeomEllipse"
)

// Geometry is one element of a sketch geometry list. Only the fields of the
// element's Type are meaningful.
type Geometry struct {
	Type         GeometryType `yaml:"type"`
	Construction bool         `yaml:"construction,omitempty"`
	// GeomPoint
	Point Vector `yaml:"point,omitempty"`
	// GeomLineSegment
	StartPoint Vector `yaml:"start,omitempty"`
	EndPoint   Vector `yaml:"end,omitempty"`
	// GeomCircle, GeomArcOfCircle, GeomEllipse
	Center Vector  `yaml:"center,omitempty"`
	Radius float64 `yaml:"radius,omitempty"`
	// GeomArcOfCircle, counter-clockwise, radians
	FirstParameter float64 `yaml:"first_parameter,omitempty"`
	LastParameter  float64 `yaml:"last_parameter,omitempty"`
	// GeomEllipse, AngleXU is the major axis direction in radians
	MajorRadius float64 `yaml:"major_radius,omitempty"`
	MinorRadius float64 `yaml:"minor_radius,omitempty"`
	AngleXU     float64 `yaml:"angle_xu,omitempty"`
}

// validate checks the element is well formed for its type.
func (g Geometry) validate() error {
	switch g.Type {
	case GeomPoint:
		return nil
	case GeomLineSegment:
		if g.StartPoint == g.EndPoint {
			return fmt.Errorf("%w: degenerate line segment", ErrInvalidArgument)
		}
	case GeomCircle, GeomArcOfCircle:
		if g.Radius <= 0 {
			return fmt.Errorf("%w: %s radius must be positive", ErrInvalidArgument, g.Type)
		}
	case GeomEllipse:
		if g.MinorRadius <= 0 || g.MajorRadius < g.MinorRadius {
			return fmt.Errorf("%w: ellipse needs 0 < minor <= major radius", ErrInvalidArgument)
		}
	default:
		return fmt.Errorf("%w: unknown geometry type %q", ErrInvalidArgument, g.Type)
	}

	return nil
}

// axis builds one of the implicit sketch axes.
func axis(dx, dy float64) Geometry {
	return Geometry{
		Type:       GeomLineSegment,
		StartPoint: Vector{},
		EndPoint:   Vector{X: dx, Y: dy},
	}
}

// ellipseFrame returns the unit major and minor directions and the focal distance.
func ellipseFrame(e Geometry) (u, v Vector, c float64) {
	u = Vector{X: math.Cos(e.AngleXU), Y: math.Sin(e.AngleXU)}
	v = Vector{X: -u.Y, Y: u.X}
	c = math.Sqrt(e.MajorRadius*e.MajorRadius - e.MinorRadius*e.MinorRadius)

	return u, v, c
}

func offset(p, dir Vector, k float64) Vector {
	return Vector{X: p.X + dir.X*k, Y: p.Y + dir.Y*k, Z: p.Z + dir.Z*k}
}
