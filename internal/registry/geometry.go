package registry

import (
	"cad-translator/internal/diagnostic"
	"cad-translator/internal/host"
	"cad-translator/internal/ident"
	"cad-translator/internal/model"
)

// GeometryTable is the sub-reference table of a sketch geometry element.
type GeometryTable = ident.Table[ident.SubGeometryID]

type geometryEntry struct {
	geometry model.Geometry
	id       ident.SketchElementID
	table    *GeometryTable
}

// GeometryRegistry maps internal sketch geometry to host sketch elements.
type GeometryRegistry struct {
	byUID     map[string]*geometryEntry
	byElement map[ident.SketchElementID]Correspondence[model.Geometry]
	reverse   map[ident.SubGeometryID]Correspondence[model.Geometry]
}

// NewGeometryRegistry returns an empty registry.
func NewGeometryRegistry() *GeometryRegistry {
	return &GeometryRegistry{
		byUID:     make(map[string]*geometryEntry),
		byElement: make(map[ident.SketchElementID]Correspondence[model.Geometry]),
		reverse:   make(map[ident.SubGeometryID]Correspondence[model.Geometry]),
	}
}

// DefaultTable is the table of a geometry that maps one-to-one: CORE at its
// own element. Points are addressed by the host through their start position.
func DefaultTable(g model.Geometry, id ident.SketchElementID) (*GeometryTable, error) {
	switch g.Kind() {
	case model.GeometryKindPoint:
		return ident.NewTable(id.Sub(model.ReferenceStart)), nil
	case model.GeometryKindLineSegment, model.GeometryKindCircle,
		model.GeometryKindCircularArc, model.GeometryKindEllipse:
		return ident.NewTable(id.Sub(model.ReferenceCore)), nil
	default:
		return nil, diagnostic.TypeMismatch("geometry registry", g.Kind())
	}
}

// Link records that g is the host element id with the given table.
func (r *GeometryRegistry) Link(g model.Geometry, id ident.SketchElementID, table *GeometryTable) error {
	if g.Kind() == model.GeometryKindUnknown {
		return diagnostic.TypeMismatch("geometry registry", g.Kind())
	}

	if err := table.Validate(); err != nil {
		return err
	}

	if core, _ := table.Core(); core.Element != id {
		return diagnostic.InvariantViolation("%s: CORE entry %s is not on %s", g.Kind(), core, id)
	}

	if _, dup := r.byUID[g.UID()]; dup {
		return diagnostic.InvariantViolation("%s %s is already linked", g.Kind(), g.UID())
	}

	if prev, dup := r.byElement[id]; dup {
		return diagnostic.InvariantViolation("host element %s is already linked to a %s", id, prev.Entity.Kind())
	}

	entry := &geometryEntry{geometry: g, id: id, table: table}
	r.byUID[g.UID()] = entry
	r.byElement[id] = Correspondence[model.Geometry]{Entity: g, Reference: model.ReferenceCore}

	for _, e := range table.Distinct() {
		r.addReverse(e.ID, g, e.Reference)
	}

	return nil
}

func (r *GeometryRegistry) addReverse(sub ident.SubGeometryID, g model.Geometry, ref model.ConstraintReference) {
	if _, taken := r.reverse[sub]; taken {
		return
	}

	r.reverse[sub] = Correspondence[model.Geometry]{Entity: g, Reference: ref}
}

// alignmentReferences lists, per alignment type, the references the
// auxiliary element provides. The first one is primary.
var alignmentReferences = map[host.AlignmentType][]struct {
	ref model.ConstraintReference
	sub model.ConstraintReference
}{
	host.EllipseMajorDiameter: {
		{model.ReferenceX, model.ReferenceCore},
		{model.ReferenceXMax, model.ReferenceEnd},
		{model.ReferenceXMin, model.ReferenceStart},
	},
	host.EllipseMinorDiameter: {
		{model.ReferenceY, model.ReferenceCore},
		{model.ReferenceYMax, model.ReferenceEnd},
		{model.ReferenceYMin, model.ReferenceStart},
	},
	host.EllipseFocus1: {{model.ReferenceFocalPlus, model.ReferenceStart}},
	host.EllipseFocus2: {{model.ReferenceFocalMinus, model.ReferenceStart}},
}

// LinkEllipse links an ellipse at id: CORE and CENTER on its own element,
// then one group of references per exposed auxiliary element.
func (r *GeometryRegistry) LinkEllipse(e *model.Ellipse, id ident.SketchElementID, aux map[host.AlignmentType]int) error {
	table := ident.NewTable(id.Sub(model.ReferenceCore)).
		Set(model.ReferenceCenter, id.Sub(model.ReferenceCenter))

	if err := r.Link(e, id, table); err != nil {
		return err
	}

	for _, alignment := range host.EllipseAlignments {
		index, ok := aux[alignment]
		if !ok {
			continue
		}

		if err := r.AddAuxiliary(e, alignment, ident.Element(id.Feature, index)); err != nil {
			return err
		}
	}

	return nil
}

// AddAuxiliary extends a linked ellipse's table with the references of one
// auxiliary element and maps that element back to the ellipse.
func (r *GeometryRegistry) AddAuxiliary(e *model.Ellipse, alignment host.AlignmentType, auxID ident.SketchElementID) error {
	entry, ok := r.byUID[e.UID()]
	if !ok {
		return diagnostic.LookupFailure("ellipse", e.UID())
	}

	refs, ok := alignmentReferences[alignment]
	if !ok {
		return diagnostic.InvariantViolation("alignment %s does not belong to an ellipse", alignment)
	}

	if auxID.Feature != entry.id.Feature {
		return diagnostic.InvariantViolation("auxiliary element %s is outside sketch %s", auxID, entry.id.Feature)
	}

	if prev, dup := r.byElement[auxID]; dup {
		return diagnostic.InvariantViolation("host element %s is already linked to a %s", auxID, prev.Entity.Kind())
	}

	if _, has := entry.table.Get(refs[0].ref); has {
		return diagnostic.InvariantViolation("ellipse %s already has %s", e.UID(), refs[0].ref)
	}

	for _, rs := range refs {
		sub := auxID.Sub(rs.sub)
		entry.table.Set(rs.ref, sub)
		r.addReverse(sub, e, rs.ref)
	}

	r.byElement[auxID] = Correspondence[model.Geometry]{Entity: e, Reference: refs[0].ref}

	return nil
}

func (r *GeometryRegistry) entry(g model.Geometry) (*geometryEntry, error) {
	if g == nil {
		return nil, diagnostic.LookupFailure("geometry", nil)
	}

	e, ok := r.byUID[g.UID()]
	if !ok {
		return nil, diagnostic.LookupFailure(g.Kind().String(), g.UID())
	}

	return e, nil
}

// ElementID returns the host element of g.
func (r *GeometryRegistry) ElementID(g model.Geometry) (ident.SketchElementID, error) {
	e, err := r.entry(g)
	if err != nil {
		return ident.SketchElementID{}, err
	}

	return e.id, nil
}

// HostID returns the host sub-geometry g exposes at ref. References not in
// the table fall back to the same sub-part of g's own element when the kind
// supports it.
func (r *GeometryRegistry) HostID(g model.Geometry, ref model.ConstraintReference) (ident.SubGeometryID, error) {
	e, err := r.entry(g)
	if err != nil {
		return ident.SubGeometryID{}, err
	}

	if sub, ok := e.table.Get(ref); ok {
		return sub, nil
	}

	if !model.Supports(g.Kind(), ref) {
		return ident.SubGeometryID{}, diagnostic.InvariantViolation("%s has no %s reference", g.Kind(), ref)
	}

	if _, err := ident.SubpartOf(ref); err != nil {
		return ident.SubGeometryID{}, diagnostic.InvariantViolation(
			"%s %s is not exposed on the host", g.Kind(), ref)
	}

	return e.id.Sub(ref), nil
}

// References returns the references that resolve to element id: the whole
// table for an element's own id, or the entries of the owning geometry that
// live on id for an auxiliary element.
func (r *GeometryRegistry) References(id ident.SketchElementID) ([]model.ConstraintReference, error) {
	c, ok := r.byElement[id]
	if !ok {
		return nil, diagnostic.LookupFailure("host element", id)
	}

	entry := r.byUID[c.Entity.UID()]
	if entry.id == id {
		return entry.table.References(), nil
	}

	var refs []model.ConstraintReference

	for _, e := range entry.table.Entries() {
		if e.ID.Element == id {
			refs = append(refs, e.Reference)
		}
	}

	return refs, nil
}

// Internal returns the geometry and reference a host sub-geometry stands for.
func (r *GeometryRegistry) Internal(sub ident.SubGeometryID) (model.Geometry, model.ConstraintReference, error) {
	if c, ok := r.reverse[sub]; ok {
		return c.Entity, c.Reference, nil
	}

	c, ok := r.byElement[sub.Element]
	if !ok {
		return nil, model.ReferenceCore, diagnostic.LookupFailure("host element", sub.Element)
	}

	if c.Reference != model.ReferenceCore {
		return nil, model.ReferenceCore, diagnostic.InvariantViolation(
			"%s is auxiliary geometry of a %s and has no %s", sub.Element, c.Entity.Kind(), sub.Reference)
	}

	if !model.Supports(c.Entity.Kind(), sub.Reference) {
		return nil, model.ReferenceCore, diagnostic.InvariantViolation(
			"%s has no %s reference", c.Entity.Kind(), sub.Reference)
	}

	return c.Entity, sub.Reference, nil
}

// InternalElement returns the geometry owning a host element and the
// element's primary reference.
func (r *GeometryRegistry) InternalElement(id ident.SketchElementID) (model.Geometry, model.ConstraintReference, error) {
	c, ok := r.byElement[id]
	if !ok {
		return nil, model.ReferenceCore, diagnostic.LookupFailure("host element", id)
	}

	return c.Entity, c.Reference, nil
}

// Len returns the number of linked geometries.
func (r *GeometryRegistry) Len() int {
	return len(r.byUID)
}
