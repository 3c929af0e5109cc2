package registry

import (
	"fmt"

	"cad-translator/internal/common"
	"cad-translator/internal/diagnostic"
	"cad-translator/internal/host"
	"cad-translator/internal/ident"
	"cad-translator/internal/model"
)

// SketchSource gives read access to host sketches. host.Document satisfies it.
type SketchSource interface {
	Sketch(id ident.FeatureID) (*host.Sketch, error)
}

type constraintEntry struct {
	constraint model.Constraint
	operands   []ident.SubGeometryID
}

// alignmentTable is the internal-alignment table of one sketch, as of the
// constraint count it was scanned at.
type alignmentTable struct {
	scannedAt int
	byParent  map[int]map[host.AlignmentType]int
	parentOf  map[int]int
}

// ConstraintRegistry maps internal constraints to host constraint records
// and tracks which sketch elements are auxiliary geometry of another.
type ConstraintRegistry struct {
	source     SketchSource
	byUID      map[string]ident.ConstraintID
	byHost     map[ident.ConstraintID]constraintEntry
	alignments map[ident.FeatureID]*alignmentTable
}

// NewConstraintRegistry returns an empty registry reading sketches from source.
func NewConstraintRegistry(source SketchSource) *ConstraintRegistry {
	return &ConstraintRegistry{
		source:     source,
		byUID:      make(map[string]ident.ConstraintID),
		byHost:     make(map[ident.ConstraintID]constraintEntry),
		alignments: make(map[ident.FeatureID]*alignmentTable),
	}
}

// Link records that c is the host constraint id, whose operands resolved to
// the given sub-geometries.
func (r *ConstraintRegistry) Link(c model.Constraint, id ident.ConstraintID, operands []ident.SubGeometryID) error {
	if c.Kind() == model.ConstraintKindUnknown {
		return diagnostic.TypeMismatch("constraint registry", c.Kind())
	}

	if _, dup := r.byUID[c.UID()]; dup {
		return diagnostic.InvariantViolation("%s constraint %s is already linked", c.Kind(), c.UID())
	}

	if prev, dup := r.byHost[id]; dup {
		return diagnostic.InvariantViolation("host constraint %s is already linked to a %s", id, prev.constraint.Kind())
	}

	r.byUID[c.UID()] = id
	r.byHost[id] = constraintEntry{constraint: c, operands: append([]ident.SubGeometryID(nil), operands...)}

	return nil
}

// HostID returns the host constraint id of c.
func (r *ConstraintRegistry) HostID(c model.Constraint) (ident.ConstraintID, error) {
	id, ok := r.byUID[c.UID()]
	if !ok {
		return ident.ConstraintID{}, diagnostic.LookupFailure(c.Kind().String()+" constraint", c.UID())
	}

	return id, nil
}

// Internal returns the internal constraint linked to id.
func (r *ConstraintRegistry) Internal(id ident.ConstraintID) (model.Constraint, error) {
	e, ok := r.byHost[id]
	if !ok {
		return nil, diagnostic.LookupFailure("host constraint", id)
	}

	return e.constraint, nil
}

// Operands returns the sub-geometries recorded when id was linked.
func (r *ConstraintRegistry) Operands(id ident.ConstraintID) ([]ident.SubGeometryID, error) {
	e, ok := r.byHost[id]
	if !ok {
		return nil, diagnostic.LookupFailure("host constraint", id)
	}

	return append([]ident.SubGeometryID(nil), e.operands...), nil
}

// Len returns the number of linked constraints.
func (r *ConstraintRegistry) Len() int {
	return len(r.byHost)
}

func (r *ConstraintRegistry) record(id ident.ConstraintID) (host.Constraint, error) {
	sketch, err := r.source.Sketch(id.Sketch)
	if err != nil {
		return host.Constraint{}, fmt.Errorf("%w: %w", diagnostic.ErrLookupFailure, err)
	}

	c, err := sketch.ConstraintAt(id.Index)
	if err != nil {
		return host.Constraint{}, fmt.Errorf("%w: %w", diagnostic.ErrLookupFailure, err)
	}

	return c, nil
}

// ConstrainedIDs returns the elements the host constraint id refers to, read
// from its raw arguments up to the first unused slot.
func (r *ConstraintRegistry) ConstrainedIDs(id ident.ConstraintID) ([]ident.SketchElementID, error) {
	c, err := r.record(id)
	if err != nil {
		return nil, err
	}

	args := common.TakeUntil(c.Args(), ident.UnusedArg)
	out := make([]ident.SketchElementID, 0, len(args))

	for _, arg := range args {
		e, err := ident.ElementFromArg(id.Sketch, arg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", id, err)
		}

		out = append(out, e)
	}

	return out, nil
}

// ConstrainedSubparts returns the subpart tags matching ConstrainedIDs.
func (r *ConstraintRegistry) ConstrainedSubparts(id ident.ConstraintID) ([]ident.Subpart, error) {
	c, err := r.record(id)
	if err != nil {
		return nil, err
	}

	n := len(common.TakeUntil(c.Args(), ident.UnusedArg))

	return c.Positions()[:n], nil
}

// Constrained pairs ConstrainedIDs with ConstrainedSubparts.
func (r *ConstraintRegistry) Constrained(id ident.ConstraintID) ([]ident.SubGeometryID, error) {
	ids, err := r.ConstrainedIDs(id)
	if err != nil {
		return nil, err
	}

	subparts, err := r.ConstrainedSubparts(id)
	if err != nil {
		return nil, err
	}

	out := make([]ident.SubGeometryID, len(ids))

	for i := range ids {
		ref, err := subparts[i].Reference()
		if err != nil {
			return nil, fmt.Errorf("%s operand %d: %w", id, i, err)
		}

		out[i] = ids[i].Sub(ref)
	}

	return out, nil
}

// AssignInternalConstraints rebuilds the internal-alignment table of sketch
// from its InternalAlignment constraints. It must be called again after
// auxiliary geometry is exposed; queries on a table scanned before the last
// constraint was added fail.
func (r *ConstraintRegistry) AssignInternalConstraints(sketch ident.FeatureID) error {
	s, err := r.source.Sketch(sketch)
	if err != nil {
		return fmt.Errorf("%w: %w", diagnostic.ErrLookupFailure, err)
	}

	constraints := s.Constraints()
	table := &alignmentTable{
		scannedAt: len(constraints),
		byParent:  make(map[int]map[host.AlignmentType]int),
		parentOf:  make(map[int]int),
	}

	for i, c := range constraints {
		if c.Type != host.InternalAlignment {
			continue
		}

		payload, err := host.DecodeContent(c.Content())
		if err != nil {
			return fmt.Errorf("%s constraint %d: %w", sketch, i, err)
		}

		aux, err := geometryIndex(payload.First)
		if err != nil {
			return fmt.Errorf("%s constraint %d: %w", sketch, i, err)
		}

		parent, err := geometryIndex(payload.Second)
		if err != nil {
			return fmt.Errorf("%s constraint %d: %w", sketch, i, err)
		}

		if table.byParent[parent] == nil {
			table.byParent[parent] = make(map[host.AlignmentType]int)
		}

		table.byParent[parent][payload.AlignmentType] = aux
		table.parentOf[aux] = parent
	}

	r.alignments[sketch] = table

	return nil
}

func geometryIndex(arg int) (int, error) {
	list, index, err := ident.ToInternalIndex(arg)
	if err != nil {
		return 0, err
	}

	if list != ident.ListGeometry {
		return 0, diagnostic.InvariantViolation("internal alignment on external geometry %d", arg)
	}

	return index, nil
}

func (r *ConstraintRegistry) alignment(sketch ident.FeatureID) (*alignmentTable, error) {
	table, ok := r.alignments[sketch]
	if !ok {
		return nil, diagnostic.LookupFailure("internal-alignment table of sketch", sketch)
	}

	s, err := r.source.Sketch(sketch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", diagnostic.ErrLookupFailure, err)
	}

	if n := len(s.Constraints()); n != table.scannedAt {
		return nil, diagnostic.InvariantViolation(
			"internal-alignment table of %s is stale (%d constraints scanned, %d present)", sketch, table.scannedAt, n)
	}

	return table, nil
}

// InternalGeometry returns the auxiliary element indices of the geometry
// at id, keyed by alignment type.
func (r *ConstraintRegistry) InternalGeometry(id ident.SketchElementID) (map[host.AlignmentType]int, error) {
	table, err := r.alignment(id.Feature)
	if err != nil {
		return nil, err
	}

	out := make(map[host.AlignmentType]int)
	if id.List != ident.ListGeometry {
		return out, nil
	}

	for k, v := range table.byParent[id.Index] {
		out[k] = v
	}

	return out, nil
}

// IsInternalGeometry reports whether id is auxiliary geometry of another element.
func (r *ConstraintRegistry) IsInternalGeometry(id ident.SketchElementID) (bool, error) {
	table, err := r.alignment(id.Feature)
	if err != nil {
		return false, err
	}

	if id.List != ident.ListGeometry {
		return false, nil
	}

	_, ok := table.parentOf[id.Index]

	return ok, nil
}

// ParentGeometryID returns the element id is auxiliary geometry of.
func (r *ConstraintRegistry) ParentGeometryID(id ident.SketchElementID) (ident.SketchElementID, error) {
	table, err := r.alignment(id.Feature)
	if err != nil {
		return ident.SketchElementID{}, err
	}

	parent, ok := table.parentOf[id.Index]
	if !ok || id.List != ident.ListGeometry {
		return ident.SketchElementID{}, diagnostic.LookupFailure("parent geometry of", id)
	}

	return ident.Element(id.Feature, parent), nil
}
