package host

import (
	"errors"

	"cad-translator/internal/ident"
)

// ErrInvalidArgument is returned when the host rejects a call.
var ErrInvalidArgument = errors.New("host: invalid argument")

// ErrNoSuchObject is returned for an unknown object id.
var ErrNoSuchObject = errors.New("host: no such object")

// TypeTag is the host type name of a document object.
type TypeTag string

const (
	TypeBody   TypeTag = "PartDesign::Body"
	TypeOrigin TypeTag = "App::Origin"
	TypeLine   TypeTag = "App::Line"
	TypePlane  TypeTag = "App::Plane"
	TypeSketch TypeTag = "Sketcher::SketchObject"
	TypePad    TypeTag = "PartDesign::Pad"
)

// Roles of the sub-objects an origin generates.
const (
	RoleXAxis   = "X_Axis"
	RoleYAxis   = "Y_Axis"
	RoleZAxis   = "Z_Axis"
	RoleXYPlane = "XY_Plane"
	RoleXZPlane = "XZ_Plane"
	RoleYZPlane = "YZ_Plane"
)

// OriginRoles lists origin sub-object roles in creation order.
var OriginRoles = []string{RoleXAxis, RoleYAxis, RoleZAxis, RoleXYPlane, RoleXZPlane, RoleYZPlane}

// Vector is a host 3D vector. Sketch geometry lives in z = 0.
type Vector struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Placement positions an object: Base is the origin, XAxis and YAxis the
// in-plane directions. The zero Placement is treated as identity.
type Placement struct {
	Base  Vector `yaml:"base"`
	XAxis Vector `yaml:"x_axis"`
	YAxis Vector `yaml:"y_axis"`
}

// IdentityPlacement returns the unrotated placement at the document origin.
func IdentityPlacement() Placement {
	return Placement{XAxis: Vector{X: 1}, YAxis: Vector{Y: 1}}
}

// Attachment binds a sketch to a planar sub-object of another feature.
type Attachment struct {
	Object ident.FeatureID `yaml:"object"`
	Mode   string          `yaml:"mode"`
}

// Object is a host document object.
type Object struct {
	ID        ident.FeatureID   `yaml:"id"`
	Name      string            `yaml:"name"`
	Label     string            `yaml:"label"`
	Type      TypeTag           `yaml:"type"`
	Role      string            `yaml:"role,omitempty"`
	Placement Placement         `yaml:"placement"`
	Parent    ident.FeatureID   `yaml:"parent,omitempty"`
	Group     []ident.FeatureID `yaml:"group,omitempty"`
	Origin    ident.FeatureID   `yaml:"origin,omitempty"`
	Support   *Attachment       `yaml:"support,omitempty"`
	Profile   ident.FeatureID   `yaml:"profile,omitempty"`
	Length    float64           `yaml:"length,omitempty"`
	Midplane  bool              `yaml:"midplane,omitempty"`
	Reversed  bool              `yaml:"reversed,omitempty"`

	sketch *Sketch
}

// IsSketch reports whether the object carries sketch data.
func (o *Object) IsSketch() bool {
	return o.sketch != nil
}
