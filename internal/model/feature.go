package model

import "cad-translator/internal/common"

// FeatureKind enumerates top-level CAD features.
type FeatureKind int

const (
	FeatureKindUnknown FeatureKind = iota
	FeatureKindCoordinateSystem
	FeatureKindSketch
	FeatureKindExtrude
	FeatureKindContainer
)

// String returns a human-readable feature kind name.
func (k FeatureKind) String() string {
	switch k {
	case FeatureKindCoordinateSystem:
		return "coordinate_system"
	case FeatureKindSketch:
		return "sketch"
	case FeatureKindExtrude:
		return "extrude"
	case FeatureKindContainer:
		return "container"
	default:
		return common.UnknownStr
	}
}

// Feature is a top-level CAD object.
type Feature interface {
	Entity
	Kind() FeatureKind
	Label() string
	isFeature()
}

// CoordinateSystem is a right-handed frame; Z is derived from X and Y.
type CoordinateSystem struct {
	base
	Name   string
	Origin Vec3
	XAxis  Vec3
	YAxis  Vec3
}

// NewCoordinateSystem returns an unrotated frame at the model origin.
func NewCoordinateSystem(name string) *CoordinateSystem {
	return &CoordinateSystem{
		base:  newBase(),
		Name:  name,
		XAxis: Vec3{X: 1},
		YAxis: Vec3{Y: 1},
	}
}

// ZAxis returns XAxis × YAxis.
func (c *CoordinateSystem) ZAxis() Vec3 {
	return c.XAxis.Cross(c.YAxis)
}

// Sketch holds planar geometry and the constraints between it. The sketch
// frame is given by CoordinateSystem; Support optionally names the plane of
// another feature the sketch is attached to.
type Sketch struct {
	base
	Name             string
	CoordinateSystem *CoordinateSystem
	Support          *Ref
	Geometry         []Geometry
	Constraints      []Constraint
}

// NewSketch returns an empty sketch with an unrotated frame.
func NewSketch(name string) *Sketch {
	return &Sketch{
		base:             newBase(),
		Name:             name,
		CoordinateSystem: NewCoordinateSystem(name + "_frame"),
	}
}

// AddGeometry appends g and returns it for chaining into constraint refs.
func (s *Sketch) AddGeometry(g Geometry) Geometry {
	s.Geometry = append(s.Geometry, g)
	return g
}

// AddConstraint appends c.
func (s *Sketch) AddConstraint(c Constraint) Constraint {
	s.Constraints = append(s.Constraints, c)
	return c
}

// Extrude sweeps the closed profile of a sketch along its normal.
type Extrude struct {
	base
	Name     string
	Profile  *Sketch
	Length   float64
	Midplane bool
	Reversed bool
}

// NewExtrude returns an extrude of profile by length.
func NewExtrude(name string, profile *Sketch, length float64) *Extrude {
	return &Extrude{base: newBase(), Name: name, Profile: profile, Length: length}
}

// FeatureContainer groups features into one body.
type FeatureContainer struct {
	base
	Name     string
	Features []Feature
}

// NewFeatureContainer returns an empty container.
func NewFeatureContainer(name string) *FeatureContainer {
	return &FeatureContainer{base: newBase(), Name: name}
}

// Add appends f to the container.
func (c *FeatureContainer) Add(f Feature) Feature {
	c.Features = append(c.Features, f)
	return f
}

func (*CoordinateSystem) Kind() FeatureKind { return FeatureKindCoordinateSystem }
func (*Sketch) Kind() FeatureKind           { return FeatureKindSketch }
func (*Extrude) Kind() FeatureKind          { return FeatureKindExtrude }
func (*FeatureContainer) Kind() FeatureKind { return FeatureKindContainer }

func (c *CoordinateSystem) Label() string { return c.Name }
func (s *Sketch) Label() string           { return s.Name }
func (e *Extrude) Label() string          { return e.Name }
func (c *FeatureContainer) Label() string { return c.Name }

func (*CoordinateSystem) isFeature() {}
func (*Sketch) isFeature()           {}
func (*Extrude) isFeature()          {}
func (*FeatureContainer) isFeature() {}

// Dependencies returns the features f must follow when translated in order.
func Dependencies(f Feature) []Feature {
	switch f := f.(type) {
	case *Sketch:
		if f.Support != nil {
			if dep, ok := f.Support.Entity.(Feature); ok {
				return []Feature{dep}
			}
		}
	case *Extrude:
		if f.Profile != nil {
			return []Feature{f.Profile}
		}
	}

	return nil
}
