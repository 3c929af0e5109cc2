package host

import (
	"fmt"

	"cad-translator/internal/ident"
)

// Document is the host document API the translators drive. Implementations
// are not safe for concurrent use.
type Document interface {
	// AddObject creates an object of the given type. name is a stem; the
	// host makes it unique.
	AddObject(tag TypeTag, name string) (*Object, error)
	// Object returns the object with the given id.
	Object(id ident.FeatureID) (*Object, error)
	// Objects returns every object in creation order.
	Objects() []*Object
	// Sketch returns the sketch data of a sketch object.
	Sketch(id ident.FeatureID) (*Sketch, error)
	// SubObject returns the generated sub-object of owner with the given role.
	SubObject(owner ident.FeatureID, role string) (ident.FeatureID, error)
	// AddToGroup makes child a member of the body parent.
	AddToGroup(parent, child ident.FeatureID) error
}

// MemoryDocument is an in-memory Document.
type MemoryDocument struct {
	Name string

	objects []*Object
	byID    map[ident.FeatureID]*Object
	names   map[string]struct{}
	stems   map[string]*nameStem
	nextID  ident.FeatureID
}

var _ Document = (*MemoryDocument)(nil)

// NewMemoryDocument returns an empty document.
func NewMemoryDocument(name string) *MemoryDocument {
	return &MemoryDocument{
		Name:   name,
		byID:   make(map[ident.FeatureID]*Object),
		names:  make(map[string]struct{}),
		stems:  make(map[string]*nameStem),
		nextID: 1,
	}
}

// AddObject implements Document.
func (d *MemoryDocument) AddObject(tag TypeTag, name string) (*Object, error) {
	switch tag {
	case TypeBody, TypePad:
	case TypeSketch:
		obj := d.newObject(tag, name)
		obj.sketch = newSketch()

		return obj, nil
	case TypeOrigin:
		return d.newOrigin(name), nil
	case TypeLine, TypePlane:
		return nil, fmt.Errorf("%w: %s objects are generated by an origin", ErrInvalidArgument, tag)
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidArgument, tag)
	}

	return d.newObject(tag, name), nil
}

func (d *MemoryDocument) newObject(tag TypeTag, name string) *Object {
	if name == "" {
		name = defaultName(tag)
	}

	stem, ok := d.stems[name]
	if !ok {
		stem = newStem(name, d.names)
		d.stems[name] = stem
	}

	unique := stem.Next()
	obj := &Object{
		ID:        d.nextID,
		Name:      unique,
		Label:     unique,
		Type:      tag,
		Placement: IdentityPlacement(),
	}

	d.nextID++
	d.objects = append(d.objects, obj)
	d.byID[obj.ID] = obj

	return obj
}

func (d *MemoryDocument) newOrigin(name string) *Object {
	origin := d.newObject(TypeOrigin, name)

	for _, role := range OriginRoles {
		tag := TypeLine
		if role == RoleXYPlane || role == RoleXZPlane || role == RoleYZPlane {
			tag = TypePlane
		}

		child := d.newObject(tag, role)
		child.Role = role
		child.Parent = origin.ID
		child.Placement = rolePlacement(role)
		origin.Group = append(origin.Group, child.ID)
	}

	return origin
}

func rolePlacement(role string) Placement {
	x, y, z := Vector{X: 1}, Vector{Y: 1}, Vector{Z: 1}

	switch role {
	case RoleYAxis:
		return Placement{XAxis: y, YAxis: Vector{X: -1}}
	case RoleZAxis:
		return Placement{XAxis: z, YAxis: y}
	case RoleXZPlane:
		return Placement{XAxis: x, YAxis: z}
	case RoleYZPlane:
		return Placement{XAxis: y, YAxis: z}
	default:
		return Placement{XAxis: x, YAxis: y}
	}
}

func defaultName(tag TypeTag) string {
	switch tag {
	case TypeBody:
		return "Body"
	case TypeOrigin:
		return "Origin"
	case TypeSketch:
		return "Sketch"
	case TypePad:
		return "Pad"
	default:
		return "Object"
	}
}

// Object implements Document.
func (d *MemoryDocument) Object(id ident.FeatureID) (*Object, error) {
	obj, ok := d.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchObject, id)
	}

	return obj, nil
}

// Objects implements Document.
func (d *MemoryDocument) Objects() []*Object {
	return append([]*Object(nil), d.objects...)
}

// Sketch implements Document.
func (d *MemoryDocument) Sketch(id ident.FeatureID) (*Sketch, error) {
	obj, err := d.Object(id)
	if err != nil {
		return nil, err
	}

	if obj.sketch == nil {
		return nil, fmt.Errorf("%w: %s (%s) is not a sketch", ErrInvalidArgument, obj.Name, obj.Type)
	}

	return obj.sketch, nil
}

// SubObject implements Document.
func (d *MemoryDocument) SubObject(owner ident.FeatureID, role string) (ident.FeatureID, error) {
	obj, err := d.Object(owner)
	if err != nil {
		return 0, err
	}

	for _, id := range obj.Group {
		if child := d.byID[id]; child != nil && child.Role == role {
			return id, nil
		}
	}

	return 0, fmt.Errorf("%w: %s has no %s", ErrNoSuchObject, obj.Name, role)
}

// AddToGroup implements Document.
func (d *MemoryDocument) AddToGroup(parent, child ident.FeatureID) error {
	p, err := d.Object(parent)
	if err != nil {
		return err
	}

	if p.Type != TypeBody {
		return fmt.Errorf("%w: %s cannot hold other objects", ErrInvalidArgument, p.Type)
	}

	c, err := d.Object(child)
	if err != nil {
		return err
	}

	if c.Parent != 0 {
		return fmt.Errorf("%w: %s already belongs to %s", ErrInvalidArgument, c.Name, c.Parent)
	}

	c.Parent = parent
	p.Group = append(p.Group, child)

	if c.Type == TypeOrigin && p.Origin == 0 {
		p.Origin = child
	}

	return nil
}
