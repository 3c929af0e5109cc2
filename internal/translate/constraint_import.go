package translate

import (
	"fmt"

	"go.uber.org/zap"

	"cad-translator/internal/common"
	"cad-translator/internal/diagnostic"
	"cad-translator/internal/host"
	"cad-translator/internal/ident"
	"cad-translator/internal/model"
	"cad-translator/utils"
)

// constraintClass groups host constraint types by how they import.
type constraintClass int

const (
	classUnsupported constraintClass = iota
	classState
	classSnap
	classOneGeometryDistance
	classTwoGeometryDistance
	classAngle
	classInternal
)

var importKinds = map[host.ConstraintType]struct {
	class constraintClass
	kind  model.ConstraintKind
}{
	host.Coincident:        {classState, model.ConstraintKindCoincident},
	host.PointOnObject:     {classState, model.ConstraintKindCoincident},
	host.Equal:             {classState, model.ConstraintKindEqual},
	host.Parallel:          {classState, model.ConstraintKindParallel},
	host.Perpendicular:     {classState, model.ConstraintKindPerpendicular},
	host.Tangent:           {classState, model.ConstraintKindTangent},
	host.Horizontal:        {classSnap, model.ConstraintKindHorizontal},
	host.Vertical:          {classSnap, model.ConstraintKindVertical},
	host.Radius:            {classOneGeometryDistance, model.ConstraintKindRadius},
	host.Diameter:          {classOneGeometryDistance, model.ConstraintKindDiameter},
	host.Distance:          {classTwoGeometryDistance, model.ConstraintKindDistance},
	host.DistanceX:         {classTwoGeometryDistance, model.ConstraintKindHorizontalDistance},
	host.DistanceY:         {classTwoGeometryDistance, model.ConstraintKindVerticalDistance},
	host.Angle:             {classAngle, model.ConstraintKindAngle},
	host.InternalAlignment: {classInternal, model.ConstraintKindUnknown},
}

// ImportConstraint builds and links the internal constraint of host
// constraint id. InternalAlignment records are not constraints of the model
// and are rejected; callers skip them.
func (c *Context) ImportConstraint(id ident.ConstraintID) (model.Constraint, error) {
	s, err := c.Doc.Sketch(id.Sketch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", diagnostic.ErrLookupFailure, err)
	}

	rec, err := s.ConstraintAt(id.Index)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", diagnostic.ErrLookupFailure, err)
	}

	subs, err := c.Constraints.Constrained(id)
	if err != nil {
		return nil, err
	}

	refs := make([]model.Ref, len(subs))

	for i, sub := range subs {
		ref, err := c.internalOperand(sub)
		if err != nil {
			return nil, fmt.Errorf("%s operand %d: %w", id, i, err)
		}

		refs[i] = ref
	}

	con, err := constraintFromHost(rec, refs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}

	if err := c.Constraints.Link(con, id, subs); err != nil {
		return nil, err
	}

	c.Log.Debug("imported constraint", zap.Stringer("constraint", id), zap.Stringer("kind", con.Kind()))

	return con, nil
}

func constraintFromHost(rec host.Constraint, refs []model.Ref) (model.Constraint, error) {
	entry, ok := importKinds[rec.Type]
	if !ok {
		return nil, diagnostic.UnsupportedFeature("host constraint type %s", rec.Type)
	}

	switch entry.class {
	case classState:
		if !common.IsPair(refs) {
			return nil, diagnostic.InvariantViolation("%s with %d operands", rec.Type, len(refs))
		}

		a, b := utils.Unpack2(refs)
		if entry.kind == model.ConstraintKindTangent && isWholeLine(a) && isWholeLine(b) {
			return nil, diagnostic.UnsupportedFeature("tangent between two lines")
		}

		return model.NewState(entry.kind, a, b), nil
	case classSnap:
		return model.NewSnap(entry.kind, refs...), nil
	case classOneGeometryDistance:
		r, ok := common.First(refs)
		if !ok || !common.IsSingle(refs) {
			return nil, diagnostic.InvariantViolation("%s with %d operands", rec.Type, len(refs))
		}

		return model.NewRadiusOf(entry.kind, r, rec.Value), nil
	case classTwoGeometryDistance:
		if common.IsPair(refs) {
			a, b := utils.Unpack2(refs)
			if isDefectForm(entry.kind, a, b) {
				return model.NewDistance(rec.Value, model.Core(a.Entity), b), nil
			}
		}

		return model.NewDistanceOf(entry.kind, rec.Value, refs...), nil
	case classAngle:
		return angleFromHost(rec, refs)
	case classInternal:
		return nil, diagnostic.InvariantViolation("internal alignment is not a sketch constraint")
	case classUnsupported:
		fallthrough
	default:
		return nil, diagnostic.UnsupportedFeature("host constraint type %s", rec.Type)
	}
}

// angleFromHost reads a four argument Angle through the quadrant table. The
// two-edge form carries no placement and reads as quadrant 1.
func angleFromHost(rec host.Constraint, refs []model.Ref) (model.Constraint, error) {
	if !common.IsPair(refs) {
		return nil, diagnostic.UnsupportedFeature("angle with %d operands", len(refs))
	}

	first, second := utils.Unpack2(refs)
	if !isLine(first) || !isLine(second) {
		return nil, diagnostic.UnsupportedFeature("angle between a %T and a %T", first.Entity, second.Entity)
	}

	degrees := radToDeg(rec.Value)

	if rec.FirstPos == ident.SubpartEdge && rec.SecondPos == ident.SubpartEdge {
		return model.NewAngle(model.Core(first.Entity), model.Core(second.Entity), degrees, 1), nil
	}

	quadrant, firstIsA, err := quadrantOf(rec.FirstPos, rec.SecondPos)
	if err != nil {
		return nil, err
	}

	a, b := first.Entity, second.Entity
	if !firstIsA {
		a, b = b, a
	}

	return model.NewAngle(model.Core(a), model.Core(b), degrees, quadrant), nil
}
