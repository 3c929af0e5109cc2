// Package registry holds the correspondences between internal model
// entities and host identifiers.
//
// There are three registries, none of which depends on another:
//   - FeatureRegistry: internal feature ↔ host object, plus the feature's
//     sub-reference table (origin axes and planes, sketch axes)
//   - GeometryRegistry: internal sketch geometry ↔ host sketch element,
//     including the one-to-many ellipse expansion
//   - ConstraintRegistry: internal constraint ↔ host constraint record, the
//     raw-argument readers and the per-sketch internal-alignment table
//
// A correspondence is created once by Link. Linking an entity or a host id a
// second time is rejected with diagnostic.ErrInvariantViolation; the only
// later mutation is GeometryRegistry.AddAuxiliary.
package registry

import "cad-translator/internal/model"

// Correspondence is the internal side of a host lookup: the entity and the
// sub-part of it the host id stands for.
type Correspondence[E model.Entity] struct {
	Entity    E
	Reference model.ConstraintReference
}
