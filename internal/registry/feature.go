package registry

import (
	"cad-translator/internal/diagnostic"
	"cad-translator/internal/ident"
	"cad-translator/internal/model"
)

// FeatureTable is the sub-reference table of a feature.
type FeatureTable = ident.Table[ident.HostID]

type featureEntry struct {
	feature model.Feature
	id      ident.FeatureID
	table   *FeatureTable
}

// FeatureRegistry maps internal features to host objects.
type FeatureRegistry struct {
	byUID   map[string]*featureEntry
	byHost  map[ident.FeatureID]*featureEntry
	reverse map[ident.HostID]Correspondence[model.Feature]
	order   []*featureEntry
}

// NewFeatureRegistry returns an empty registry.
func NewFeatureRegistry() *FeatureRegistry {
	return &FeatureRegistry{
		byUID:   make(map[string]*featureEntry),
		byHost:  make(map[ident.FeatureID]*featureEntry),
		reverse: make(map[ident.HostID]Correspondence[model.Feature]),
	}
}

// requiredReferences lists the references a feature kind's table must have
// besides CORE.
func requiredReferences(k model.FeatureKind) ([]model.ConstraintReference, error) {
	switch k {
	case model.FeatureKindCoordinateSystem:
		return []model.ConstraintReference{
			model.ReferenceOrigin,
			model.ReferenceX, model.ReferenceY, model.ReferenceZ,
			model.ReferenceXY, model.ReferenceXZ, model.ReferenceYZ,
		}, nil
	case model.FeatureKindSketch:
		return []model.ConstraintReference{model.ReferenceOrigin, model.ReferenceX, model.ReferenceY}, nil
	case model.FeatureKindExtrude, model.FeatureKindContainer:
		return nil, nil
	default:
		return nil, diagnostic.TypeMismatch("feature registry", k)
	}
}

// Link records that f is the host object id with the given sub-reference table.
func (r *FeatureRegistry) Link(f model.Feature, id ident.FeatureID, table *FeatureTable) error {
	required, err := requiredReferences(f.Kind())
	if err != nil {
		return err
	}

	if err := table.Validate(); err != nil {
		return err
	}

	if core, _ := table.Core(); core != ident.HostID(id) {
		return diagnostic.InvariantViolation("feature %q: CORE entry %s is not %s", f.Label(), core, id)
	}

	for _, ref := range required {
		if _, ok := table.Get(ref); !ok {
			return diagnostic.InvariantViolation("%s %q: table has no %s entry", f.Kind(), f.Label(), ref)
		}
	}

	if len(required) == 0 && table.Len() != 1 {
		return diagnostic.InvariantViolation("%s %q: table must hold only CORE", f.Kind(), f.Label())
	}

	if _, dup := r.byUID[f.UID()]; dup {
		return diagnostic.InvariantViolation("feature %q is already linked", f.Label())
	}

	if prev, dup := r.byHost[id]; dup {
		return diagnostic.InvariantViolation("host object %s is already linked to %q", id, prev.feature.Label())
	}

	entry := &featureEntry{feature: f, id: id, table: table}
	r.byUID[f.UID()] = entry
	r.byHost[id] = entry
	r.order = append(r.order, entry)

	for _, e := range table.Distinct() {
		if _, taken := r.reverse[e.ID]; taken {
			continue
		}

		r.reverse[e.ID] = Correspondence[model.Feature]{Entity: f, Reference: e.Reference}
	}

	return nil
}

func (r *FeatureRegistry) entry(f model.Feature) (*featureEntry, error) {
	if f == nil {
		return nil, diagnostic.LookupFailure("feature", nil)
	}

	e, ok := r.byUID[f.UID()]
	if !ok {
		return nil, diagnostic.LookupFailure("feature", f.Label())
	}

	return e, nil
}

// FeatureID returns the host object id of f.
func (r *FeatureRegistry) FeatureID(f model.Feature) (ident.FeatureID, error) {
	e, err := r.entry(f)
	if err != nil {
		return 0, err
	}

	return e.id, nil
}

// HostID returns the host id f exposes at ref.
func (r *FeatureRegistry) HostID(f model.Feature, ref model.ConstraintReference) (ident.HostID, error) {
	e, err := r.entry(f)
	if err != nil {
		return nil, err
	}

	id, ok := e.table.Get(ref)
	if !ok {
		return nil, diagnostic.InvariantViolation("%s %q has no %s reference", f.Kind(), f.Label(), ref)
	}

	return id, nil
}

// References returns the references linked for a host object, in table order.
func (r *FeatureRegistry) References(id ident.FeatureID) ([]model.ConstraintReference, error) {
	e, ok := r.byHost[id]
	if !ok {
		return nil, diagnostic.LookupFailure("host feature", id)
	}

	return e.table.References(), nil
}

// HostObjectAt resolves a sub-feature id to the host id it stands for.
func (r *FeatureRegistry) HostObjectAt(sub ident.SubFeatureID) (ident.HostID, error) {
	e, ok := r.byHost[sub.Feature]
	if !ok {
		return nil, diagnostic.LookupFailure("host feature", sub.Feature)
	}

	id, ok := e.table.Get(sub.Reference)
	if !ok {
		return nil, diagnostic.LookupFailure("sub-feature", sub)
	}

	return id, nil
}

// Internal returns the feature and reference a host id corresponds to.
func (r *FeatureRegistry) Internal(id ident.HostID) (model.Feature, model.ConstraintReference, error) {
	if sub, ok := id.(ident.SubFeatureID); ok {
		e, linked := r.byHost[sub.Feature]
		if !linked {
			return nil, model.ReferenceCore, diagnostic.LookupFailure("host feature", sub.Feature)
		}

		if _, has := e.table.Get(sub.Reference); !has {
			return nil, model.ReferenceCore, diagnostic.LookupFailure("sub-feature", sub)
		}

		return e.feature, sub.Reference, nil
	}

	c, ok := r.reverse[id]
	if !ok {
		return nil, model.ReferenceCore, diagnostic.LookupFailure("host id", id)
	}

	return c.Entity, c.Reference, nil
}

// Linked is one registry row, as reported by Entries.
type Linked struct {
	Feature model.Feature
	ID      ident.FeatureID
	Table   []ident.Entry[ident.HostID]
}

// Entries returns every linked feature in link order.
func (r *FeatureRegistry) Entries() []Linked {
	out := make([]Linked, 0, len(r.order))
	for _, e := range r.order {
		out = append(out, Linked{Feature: e.feature, ID: e.id, Table: e.table.Entries()})
	}

	return out
}

// Len returns the number of linked features.
func (r *FeatureRegistry) Len() int {
	return len(r.order)
}
