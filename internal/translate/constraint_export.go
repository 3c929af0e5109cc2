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

var hostTypes = map[model.ConstraintKind]host.ConstraintType{
	model.ConstraintKindCoincident:         host.Coincident,
	model.ConstraintKindEqual:              host.Equal,
	model.ConstraintKindParallel:           host.Parallel,
	model.ConstraintKindPerpendicular:      host.Perpendicular,
	model.ConstraintKindTangent:            host.Tangent,
	model.ConstraintKindHorizontal:         host.Horizontal,
	model.ConstraintKindVertical:           host.Vertical,
	model.ConstraintKindAngle:              host.Angle,
	model.ConstraintKindDistance:           host.Distance,
	model.ConstraintKindHorizontalDistance: host.DistanceX,
	model.ConstraintKindVerticalDistance:   host.DistanceY,
	model.ConstraintKindRadius:             host.Radius,
	model.ConstraintKindDiameter:           host.Diameter,
}

// ExportConstraint adds the host constraint for con to sketch and links it.
// Every operand must already be linked.
func (c *Context) ExportConstraint(sketch ident.FeatureID, con model.Constraint) (ident.ConstraintID, error) {
	if id, err := c.Constraints.HostID(con); err == nil {
		return ident.ConstraintID{}, diagnostic.InvariantViolation("%s constraint is already linked to %s", con.Kind(), id)
	}

	refs := con.Operands()
	ops := make([]operand, len(refs))

	for i, r := range refs {
		op, err := c.hostOperand(sketch, r)
		if err != nil {
			return ident.ConstraintID{}, fmt.Errorf("%s operand %d: %w", con.Kind(), i, err)
		}

		ops[i] = op
	}

	args, err := constraintArgs(con, refs, ops)
	if err != nil {
		return ident.ConstraintID{}, err
	}

	s, err := c.Doc.Sketch(sketch)
	if err != nil {
		return ident.ConstraintID{}, fmt.Errorf("%w: %w", diagnostic.ErrLookupFailure, err)
	}

	index, err := s.AddConstraint(args)
	if err != nil {
		return ident.ConstraintID{}, fmt.Errorf("%w: %s: %w", diagnostic.ErrInvariantViolation, con.Kind(), err)
	}

	id := ident.ConstraintID{Sketch: sketch, Index: index}
	subs := make([]ident.SubGeometryID, len(ops))

	for i, op := range ops {
		subs[i] = op.sub
	}

	if err := c.Constraints.Link(con, id, subs); err != nil {
		return id, err
	}

	c.Log.Debug("exported constraint",
		zap.Stringer("kind", con.Kind()),
		zap.Stringer("constraint", id),
		zap.Ints("args", args.Args))

	return id, nil
}

// constraintArgs builds the host creation request for con. Dispatch is on
// the concrete type; a kind outside its type's family is a type mismatch.
func constraintArgs(con model.Constraint, refs []model.Ref, ops []operand) (host.ConstraintArgs, error) {
	typ, ok := hostTypes[con.Kind()]
	if !ok {
		return host.ConstraintArgs{}, diagnostic.TypeMismatch("constraint export", con.Kind())
	}

	req := host.ConstraintArgs{Type: typ}

	var err error

	switch con := con.(type) {
	case *model.StateConstraint:
		switch con.Type {
		case model.ConstraintKindCoincident:
			req.Type, req.Args, err = coincidentArgs(ops)
		case model.ConstraintKindEqual, model.ConstraintKindParallel:
			req.Args, err = edgeArgs(con.Type, ops)
		case model.ConstraintKindPerpendicular:
			req.Args, err = edgeOrEndArgs(con.Type, ops)
		case model.ConstraintKindTangent:
			if isWholeLine(con.A) && isWholeLine(con.B) {
				return req, diagnostic.UnsupportedFeature("tangent between two lines")
			}

			req.Args, err = edgeOrEndArgs(con.Type, ops)
		default:
			return req, diagnostic.TypeMismatch("state constraint export", con.Type)
		}
	case *model.SnapConstraint:
		if con.Type != model.ConstraintKindHorizontal && con.Type != model.ConstraintKindVertical {
			return req, diagnostic.TypeMismatch("snap constraint export", con.Type)
		}

		req.Args, err = snapArgs(con.Type, ops)
	case *model.AngleConstraint:
		req.Args, err = angleArgs(con, ops)
		req = req.WithValue(degToRad(con.Value))
	case *model.DistanceConstraint:
		if !con.Type.IsDistance() {
			return req, diagnostic.TypeMismatch("distance constraint export", con.Type)
		}

		req.Args, err = distanceArgs(con.Type, refs, ops)
		req = req.WithValue(con.Value)
	case *model.RadiusConstraint:
		if con.Type != model.ConstraintKindRadius && con.Type != model.ConstraintKindDiameter {
			return req, diagnostic.TypeMismatch("radius constraint export", con.Type)
		}

		req.Args, err = radiusArgs(con, ops)
		req = req.WithValue(con.Value)
	default:
		return req, diagnostic.TypeMismatch("constraint export", fmt.Sprintf("%T", con))
	}

	return req, err
}

func pairArgs(a, b operand) []int {
	return []int{a.arg, int(a.pos), b.arg, int(b.pos)}
}

func requirePair(kind model.ConstraintKind, ops []operand) (operand, operand, error) {
	if !common.IsPair(ops) {
		return operand{}, operand{}, diagnostic.InvariantViolation("%s needs 2 operands, got %d", kind, len(ops))
	}

	a, b := utils.Unpack2(ops)

	return a, b, nil
}

// coincidentArgs emits Coincident for two points and PointOnObject, point
// first, for a point and an edge.
func coincidentArgs(ops []operand) (host.ConstraintType, []int, error) {
	a, b, err := requirePair(model.ConstraintKindCoincident, ops)
	if err != nil {
		return "", nil, err
	}

	switch {
	case !a.isEdge() && !b.isEdge():
		return host.Coincident, pairArgs(a, b), nil
	case !a.isEdge():
		return host.PointOnObject, []int{a.arg, int(a.pos), b.arg}, nil
	case !b.isEdge():
		return host.PointOnObject, []int{b.arg, int(b.pos), a.arg}, nil
	default:
		return "", nil, diagnostic.UnsupportedFeature("coincident between two edges")
	}
}

func edgeArgs(kind model.ConstraintKind, ops []operand) ([]int, error) {
	a, b, err := requirePair(kind, ops)
	if err != nil {
		return nil, err
	}

	if !a.isEdge() || !b.isEdge() {
		return nil, diagnostic.InvariantViolation("%s relates whole edges, got %s and %s", kind, a.sub, b.sub)
	}

	return []int{a.arg, b.arg}, nil
}

// edgeOrEndArgs accepts two edges or two endpoints.
func edgeOrEndArgs(kind model.ConstraintKind, ops []operand) ([]int, error) {
	a, b, err := requirePair(kind, ops)
	if err != nil {
		return nil, err
	}

	switch {
	case a.isEdge() && b.isEdge():
		return []int{a.arg, b.arg}, nil
	case !a.isEdge() && !b.isEdge():
		return pairArgs(a, b), nil
	default:
		return nil, diagnostic.UnsupportedFeature("%s between an edge and a point", kind)
	}
}

// snapArgs emits the one-edge form or the two-point relative form.
func snapArgs(kind model.ConstraintKind, ops []operand) ([]int, error) {
	switch len(ops) {
	case 1:
		if !ops[0].isEdge() {
			return nil, diagnostic.InvariantViolation("%s of one operand needs an edge, got %s", kind, ops[0].sub)
		}

		return []int{ops[0].arg}, nil
	case 2:
		a, b := utils.Unpack2(ops)
		if a.isEdge() || b.isEdge() {
			return nil, diagnostic.InvariantViolation("%s of two operands needs points, got %s and %s", kind, a.sub, b.sub)
		}

		return pairArgs(a, b), nil
	default:
		return nil, diagnostic.InvariantViolation("%s needs 1 or 2 operands, got %d", kind, len(ops))
	}
}

func angleArgs(con *model.AngleConstraint, ops []operand) ([]int, error) {
	a, b, err := requirePair(model.ConstraintKindAngle, ops)
	if err != nil {
		return nil, err
	}

	if !isWholeLine(con.A) || !isWholeLine(con.B) {
		return nil, diagnostic.UnsupportedFeature("angle needs two whole lines")
	}

	return quadrantArgs(con.Quadrant, a.sub.Element, b.sub.Element)
}

// distanceArgs emits the length form for one edge and a point-first pair
// otherwise. A trailing edge subpart is redundant and is dropped, which only
// Distance accepts.
func distanceArgs(kind model.ConstraintKind, refs []model.Ref, ops []operand) ([]int, error) {
	if common.IsSingle(ops) {
		if !ops[0].isEdge() || !isWholeLine(refs[0]) {
			return nil, diagnostic.InvariantViolation("%s of one operand needs a whole line, got %s", kind, ops[0].sub)
		}

		return []int{ops[0].arg}, nil
	}

	a, b, err := requirePair(kind, ops)
	if err != nil {
		return nil, err
	}

	if isLineToLineDistance(kind, refs[0], refs[1]) {
		return lineToLineDistanceArgs(a, b), nil
	}

	if a.isEdge() {
		a, b = b, a
	}

	switch {
	case a.isEdge():
		return nil, diagnostic.UnsupportedFeature("%s between two edges", kind)
	case !b.isEdge():
		return pairArgs(a, b), nil
	case kind == model.ConstraintKindDistance:
		return pairArgs(a, b)[:3], nil
	default:
		return nil, diagnostic.UnsupportedFeature("%s from a point to an edge", kind)
	}
}

func radiusArgs(con *model.RadiusConstraint, ops []operand) ([]int, error) {
	if !common.IsSingle(ops) || !ops[0].isEdge() {
		return nil, diagnostic.InvariantViolation("%s needs one whole curve", con.Type)
	}

	switch con.Ref.Entity.(type) {
	case *model.Circle, *model.CircularArc:
		return []int{ops[0].arg}, nil
	default:
		return nil, diagnostic.InvariantViolation("%s of a %T", con.Type, con.Ref.Entity)
	}
}
