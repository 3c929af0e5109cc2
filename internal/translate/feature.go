package translate

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"cad-translator/internal/diagnostic"
	"cad-translator/internal/host"
	"cad-translator/internal/ident"
	"cad-translator/internal/model"
	"cad-translator/internal/registry"
)

// attachMode is the host attachment mode of a sketch on a plane.
const attachMode = "FlatFace"

// originReferences pairs the coordinate-system references with the origin
// sub-object roles that provide them.
var originReferences = []struct {
	ref  model.ConstraintReference
	role string
}{
	{model.ReferenceX, host.RoleXAxis},
	{model.ReferenceY, host.RoleYAxis},
	{model.ReferenceZ, host.RoleZAxis},
	{model.ReferenceXY, host.RoleXYPlane},
	{model.ReferenceXZ, host.RoleXZPlane},
	{model.ReferenceYZ, host.RoleYZPlane},
}

func placement(cs *model.CoordinateSystem) host.Placement {
	return host.Placement{
		Base:  host.Vector(cs.Origin),
		XAxis: host.Vector(cs.XAxis),
		YAxis: host.Vector(cs.YAxis),
	}
}

func applyPlacement(cs *model.CoordinateSystem, p host.Placement) {
	if p == (host.Placement{}) {
		p = host.IdentityPlacement()
	}

	cs.Origin = model.Vec3(p.Base)
	cs.XAxis = model.Vec3(p.XAxis)
	cs.YAxis = model.Vec3(p.YAxis)
}

// ExportFeature creates the host object of f and links it. Features f
// depends on (see model.Dependencies, and the children of a container)
// must already be exported.
func (c *Context) ExportFeature(f model.Feature) (ident.FeatureID, error) {
	if id, err := c.Features.FeatureID(f); err == nil {
		return 0, diagnostic.InvariantViolation("feature %q is already linked to %s", f.Label(), id)
	}

	switch f := f.(type) {
	case *model.CoordinateSystem:
		return c.exportCoordinateSystem(f)
	case *model.Sketch:
		return c.exportSketch(f)
	case *model.Extrude:
		return c.exportExtrude(f)
	case *model.FeatureContainer:
		return c.exportContainer(f)
	default:
		return 0, diagnostic.TypeMismatch("feature export", f.Kind())
	}
}

// ImportFeature builds and links the internal feature of a host object.
// Objects the feature refers to must already be imported. Origin
// sub-objects are not features and yield a TypeMismatch.
func (c *Context) ImportFeature(id ident.FeatureID) (model.Feature, error) {
	obj, err := c.Doc.Object(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", diagnostic.ErrLookupFailure, err)
	}

	switch obj.Type {
	case host.TypeOrigin:
		return c.importCoordinateSystem(obj)
	case host.TypeSketch:
		return c.importSketch(obj)
	case host.TypePad:
		return c.importExtrude(obj)
	case host.TypeBody:
		return c.importContainer(obj)
	default:
		return nil, diagnostic.TypeMismatch("feature import", obj.Type)
	}
}

func (c *Context) linkFeature(f model.Feature, id ident.FeatureID, table *registry.FeatureTable) error {
	if err := c.Features.Link(f, id, table); err != nil {
		return err
	}

	c.Log.Debug("linked feature",
		zap.String("feature", f.Label()),
		zap.Stringer("kind", f.Kind()),
		zap.Stringer("id", id),
		zap.Int("references", table.Len()))

	return nil
}

func (c *Context) originTable(origin ident.FeatureID) (*registry.FeatureTable, error) {
	table := ident.NewTable[ident.HostID](origin).Set(model.ReferenceOrigin, origin)

	for _, or := range originReferences {
		sub, err := c.Doc.SubObject(origin, or.role)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", diagnostic.ErrLookupFailure, err)
		}

		table.Set(or.ref, sub)
	}

	return table, nil
}

func (c *Context) exportCoordinateSystem(cs *model.CoordinateSystem) (ident.FeatureID, error) {
	obj, err := c.Doc.AddObject(host.TypeOrigin, cs.Name)
	if err != nil {
		return 0, fmt.Errorf("export coordinate system %q: %w", cs.Name, err)
	}

	obj.Placement = placement(cs)

	table, err := c.originTable(obj.ID)
	if err != nil {
		return obj.ID, err
	}

	return obj.ID, c.linkFeature(cs, obj.ID, table)
}

func (c *Context) importCoordinateSystem(obj *host.Object) (model.Feature, error) {
	cs := model.NewCoordinateSystem(obj.Label)
	applyPlacement(cs, obj.Placement)

	table, err := c.originTable(obj.ID)
	if err != nil {
		return nil, err
	}

	return cs, c.linkFeature(cs, obj.ID, table)
}

// sketchTable maps a sketch's frame references onto its implicit axes.
func sketchTable(id ident.FeatureID) *registry.FeatureTable {
	hAxis := ident.External(id, 0)
	vAxis := ident.External(id, 1)

	return ident.NewTable[ident.HostID](id).
		Set(model.ReferenceOrigin, hAxis.Sub(model.ReferenceStart)).
		Set(model.ReferenceX, hAxis.Sub(model.ReferenceCore)).
		Set(model.ReferenceY, vAxis.Sub(model.ReferenceCore))
}

func (c *Context) exportSketch(s *model.Sketch) (ident.FeatureID, error) {
	obj, err := c.Doc.AddObject(host.TypeSketch, s.Name)
	if err != nil {
		return 0, fmt.Errorf("export sketch %q: %w", s.Name, err)
	}

	if s.CoordinateSystem != nil {
		obj.Placement = placement(s.CoordinateSystem)
	}

	if s.Support != nil {
		support, err := c.supportObject(*s.Support)
		if err != nil {
			return obj.ID, fmt.Errorf("sketch %q: %w", s.Name, err)
		}

		obj.Support = &host.Attachment{Object: support, Mode: attachMode}
	}

	if err := c.linkFeature(s, obj.ID, sketchTable(obj.ID)); err != nil {
		return obj.ID, err
	}

	for _, g := range s.Geometry {
		if _, err := c.ExportGeometry(obj.ID, g); err != nil {
			return obj.ID, fmt.Errorf("sketch %q: %w", s.Name, err)
		}
	}

	for _, con := range s.Constraints {
		if _, err := c.ExportConstraint(obj.ID, con); err != nil {
			return obj.ID, fmt.Errorf("sketch %q: %w", s.Name, err)
		}
	}

	return obj.ID, nil
}

// supportObject resolves a sketch support reference to a host object id.
func (c *Context) supportObject(ref model.Ref) (ident.FeatureID, error) {
	f, ok := ref.Entity.(model.Feature)
	if !ok {
		return 0, diagnostic.TypeMismatch("sketch support", fmt.Sprintf("%T", ref.Entity))
	}

	id, err := c.Features.HostID(f, ref.Reference)
	if err != nil {
		return 0, err
	}

	fid, ok := id.(ident.FeatureID)
	if !ok {
		return 0, diagnostic.InvariantViolation("support %s of %q is not a host object", ref.Reference, f.Label())
	}

	return fid, nil
}

func (c *Context) importSketch(obj *host.Object) (model.Feature, error) {
	s := model.NewSketch(obj.Label)
	applyPlacement(s.CoordinateSystem, obj.Placement)

	if obj.Support != nil {
		f, ref, err := c.Features.Internal(obj.Support.Object)
		if err != nil {
			return nil, fmt.Errorf("sketch %q support: %w", obj.Label, err)
		}

		s.Support = &model.Ref{Entity: f, Reference: ref}
	}

	if err := c.linkFeature(s, obj.ID, sketchTable(obj.ID)); err != nil {
		return nil, err
	}

	hs, err := c.Doc.Sketch(obj.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", diagnostic.ErrLookupFailure, err)
	}

	if err := c.Constraints.AssignInternalConstraints(obj.ID); err != nil {
		return nil, err
	}

	for i := range hs.GeometryCount() {
		g, err := c.ImportGeometry(ident.Element(obj.ID, i))
		if err != nil {
			return nil, fmt.Errorf("sketch %q: %w", obj.Label, err)
		}

		if g != nil {
			s.AddGeometry(g)
		}
	}

	aligned := 0

	for i, hc := range hs.Constraints() {
		if hc.Type == host.InternalAlignment {
			aligned++
			continue
		}

		con, err := c.ImportConstraint(ident.ConstraintID{Sketch: obj.ID, Index: i})
		if err != nil {
			if !c.StrictConstraints && errors.Is(err, diagnostic.ErrUnsupportedFeature) {
				c.Diagnostics.AddWarning(diagnostic.Code(err), err.Error(), obj.Label, fmt.Sprintf("constraint %d", i))
				c.Log.Warn("skipped host constraint", zap.String("sketch", obj.Label), zap.Int("index", i), zap.Error(err))

				continue
			}

			return nil, fmt.Errorf("sketch %q: %w", obj.Label, err)
		}

		s.AddConstraint(con)
	}

	if aligned > 0 {
		c.Diagnostics.AddInfo("internal_alignment",
			fmt.Sprintf("%d internal alignment records folded into their curves", aligned), obj.Label, "")
	}

	return s, nil
}

func (c *Context) exportExtrude(e *model.Extrude) (ident.FeatureID, error) {
	if e.Profile == nil {
		return 0, diagnostic.InvariantViolation("extrude %q has no profile", e.Name)
	}

	profile, err := c.Features.FeatureID(e.Profile)
	if err != nil {
		return 0, fmt.Errorf("extrude %q profile: %w", e.Name, err)
	}

	obj, err := c.Doc.AddObject(host.TypePad, e.Name)
	if err != nil {
		return 0, fmt.Errorf("export extrude %q: %w", e.Name, err)
	}

	obj.Profile = profile
	obj.Length = e.Length
	obj.Midplane = e.Midplane
	obj.Reversed = e.Reversed

	return obj.ID, c.linkFeature(e, obj.ID, ident.NewTable[ident.HostID](obj.ID))
}

func (c *Context) importExtrude(obj *host.Object) (model.Feature, error) {
	f, _, err := c.Features.Internal(obj.Profile)
	if err != nil {
		return nil, fmt.Errorf("extrude %q profile: %w", obj.Label, err)
	}

	profile, ok := f.(*model.Sketch)
	if !ok {
		return nil, diagnostic.TypeMismatch("extrude profile", f.Kind())
	}

	e := model.NewExtrude(obj.Label, profile, obj.Length)
	e.Midplane = obj.Midplane
	e.Reversed = obj.Reversed

	return e, c.linkFeature(e, obj.ID, ident.NewTable[ident.HostID](obj.ID))
}

func (c *Context) exportContainer(fc *model.FeatureContainer) (ident.FeatureID, error) {
	children := make([]ident.FeatureID, 0, len(fc.Features))

	for _, child := range fc.Features {
		id, err := c.Features.FeatureID(child)
		if err != nil {
			return 0, fmt.Errorf("container %q member: %w", fc.Name, err)
		}

		children = append(children, id)
	}

	obj, err := c.Doc.AddObject(host.TypeBody, fc.Name)
	if err != nil {
		return 0, fmt.Errorf("export container %q: %w", fc.Name, err)
	}

	for _, child := range children {
		if err := c.Doc.AddToGroup(obj.ID, child); err != nil {
			return obj.ID, fmt.Errorf("container %q: %w", fc.Name, err)
		}
	}

	return obj.ID, c.linkFeature(fc, obj.ID, ident.NewTable[ident.HostID](obj.ID))
}

func (c *Context) importContainer(obj *host.Object) (model.Feature, error) {
	fc := model.NewFeatureContainer(obj.Label)

	for _, child := range obj.Group {
		f, _, err := c.Features.Internal(child)
		if err != nil {
			return nil, fmt.Errorf("container %q member: %w", obj.Label, err)
		}

		fc.Add(f)
	}

	return fc, c.linkFeature(fc, obj.ID, ident.NewTable[ident.HostID](obj.ID))
}
