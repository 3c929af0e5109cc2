package modelfile

import "cad-translator/internal/model"

// File is the root of a model file.
type File struct {
	// Version of the model file schema.
	Version string `yaml:"version,omitempty"`

	// Features in declaration order.
	Features []Feature `yaml:"features"`
}

// Feature is one feature of any kind. Which fields apply depends on Kind.
type Feature struct {
	ID   string `yaml:"id"`
	Kind string `yaml:"kind"`
	// Name is the feature label; it defaults to ID.
	Name string `yaml:"name,omitempty"`

	// coordinate_system; for a sketch, its frame
	Frame *Frame `yaml:"frame,omitempty"`

	// sketch
	Support     string       `yaml:"support,omitempty"`
	Geometry    []Geometry   `yaml:"geometry,omitempty"`
	Constraints []Constraint `yaml:"constraints,omitempty"`

	// extrude
	Profile  string  `yaml:"profile,omitempty"`
	Length   float64 `yaml:"length,omitempty"`
	Midplane bool    `yaml:"midplane,omitempty"`
	Reversed bool    `yaml:"reversed,omitempty"`

	// container
	Members []string `yaml:"members,omitempty"`
}

// Frame positions a coordinate system. Missing axes default to the model axes.
type Frame struct {
	Origin Vec3 `yaml:"origin,flow"`
	XAxis  Vec3 `yaml:"x_axis,flow"`
	YAxis  Vec3 `yaml:"y_axis,flow"`
}

// Geometry is one sketch element of any kind.
type Geometry struct {
	ID   string `yaml:"id"`
	Kind string `yaml:"kind"`

	// point
	Position *Vec2 `yaml:"position,omitempty,flow"`
	// line_segment
	Start *Vec2 `yaml:"start,omitempty,flow"`
	End   *Vec2 `yaml:"end,omitempty,flow"`
	// circle, circular_arc, ellipse
	Center *Vec2   `yaml:"center,omitempty,flow"`
	Radius float64 `yaml:"radius,omitempty"`
	// circular_arc, radians counter-clockwise
	StartAngle float64 `yaml:"start_angle,omitempty"`
	EndAngle   float64 `yaml:"end_angle,omitempty"`
	// ellipse
	SemiMajor float64 `yaml:"semi_major,omitempty"`
	SemiMinor float64 `yaml:"semi_minor,omitempty"`
	Angle     float64 `yaml:"angle,omitempty"`
}

// Constraint is one sketch constraint of any kind.
type Constraint struct {
	Kind     string   `yaml:"kind"`
	Refs     []string `yaml:"refs,flow"`
	Value    float64  `yaml:"value,omitempty"`
	Quadrant int      `yaml:"quadrant,omitempty"`
}

// Vec2 is a [x, y] pair.
type Vec2 [2]float64

// Vec3 is a [x, y, z] triple.
type Vec3 [3]float64

func (v Vec2) model() model.Vec2 { return model.Vec2{X: v[0], Y: v[1]} }
func (v Vec3) model() model.Vec3 { return model.Vec3{X: v[0], Y: v[1], Z: v[2]} }

func vec2Of(v model.Vec2) *Vec2 { return &Vec2{v.X, v.Y} }
func vec3Of(v model.Vec3) Vec3  { return Vec3{v.X, v.Y, v.Z} }

func (v *Vec2) orZero() model.Vec2 {
	if v == nil {
		return model.Vec2{}
	}

	return v.model()
}

var (
	featureKinds = kindNames(
		model.FeatureKindCoordinateSystem, model.FeatureKindSketch,
		model.FeatureKindExtrude, model.FeatureKindContainer)
	geometryKinds = kindNames(
		model.GeometryKindPoint, model.GeometryKindLineSegment, model.GeometryKindCircle,
		model.GeometryKindCircularArc, model.GeometryKindEllipse)
	constraintKinds = kindNames(
		model.ConstraintKindCoincident, model.ConstraintKindEqual, model.ConstraintKindParallel,
		model.ConstraintKindPerpendicular, model.ConstraintKindTangent,
		model.ConstraintKindHorizontal, model.ConstraintKindVertical, model.ConstraintKindAngle,
		model.ConstraintKindDistance, model.ConstraintKindHorizontalDistance, model.ConstraintKindVerticalDistance,
		model.ConstraintKindRadius, model.ConstraintKindDiameter)
)

type namedKind interface {
	comparable
	String() string
}

// kindNames maps the String form of every kind to the kind.
func kindNames[K namedKind](kinds ...K) map[string]K {
	out := make(map[string]K, len(kinds))
	for _, k := range kinds {
		out[k.String()] = k
	}

	return out
}

func names[K any](m map[string]K) []string {
	out := make([]string, 0, len(m))
	for name := range m {
		out = append(out, name)
	}

	return out
}
