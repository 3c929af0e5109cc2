package translate

import (
	"fmt"

	"cad-translator/internal/diagnostic"
	"cad-translator/internal/ident"
	"cad-translator/internal/model"
)

// operand is one constraint operand in host form.
type operand struct {
	sub ident.SubGeometryID
	arg int
	pos ident.Subpart
}

func (o operand) isEdge() bool {
	return o.pos == ident.SubpartEdge
}

func newOperand(sub ident.SubGeometryID) (operand, error) {
	pos, err := sub.Subpart()
	if err != nil {
		return operand{}, err
	}

	return operand{sub: sub, arg: sub.Element.Arg(), pos: pos}, nil
}

// hostOperand resolves an internal operand of a constraint in sketch.
// Geometry resolves through the geometry registry; the sketch itself
// resolves its ORIGIN, X and Y through its implicit axes.
func (c *Context) hostOperand(sketch ident.FeatureID, r model.Ref) (operand, error) {
	var sub ident.SubGeometryID

	switch e := r.Entity.(type) {
	case model.Geometry:
		id, err := c.Geometry.HostID(e, r.Reference)
		if err != nil {
			return operand{}, err
		}

		sub = id
	case model.Feature:
		id, err := c.Features.HostID(e, r.Reference)
		if err != nil {
			return operand{}, err
		}

		geom, ok := id.(ident.SubGeometryID)
		if !ok {
			return operand{}, diagnostic.UnsupportedFeature(
				"constraint on %s %s of %q needs external geometry", e.Kind(), r.Reference, e.Label())
		}

		sub = geom
	case nil:
		return operand{}, diagnostic.InvariantViolation("constraint operand is empty")
	default:
		return operand{}, diagnostic.TypeMismatch("constraint operand", fmt.Sprintf("%T", r.Entity))
	}

	if sub.Element.Feature != sketch {
		return operand{}, diagnostic.InvariantViolation("operand %s is outside sketch %s", sub, sketch)
	}

	return newOperand(sub)
}

// internalOperand resolves a host operand back to the internal model.
// External elements resolve through the owning sketch's table; auxiliary
// elements resolve to the geometry they belong to.
func (c *Context) internalOperand(sub ident.SubGeometryID) (model.Ref, error) {
	if sub.Element.List == ident.ListExternal {
		f, ref, err := c.Features.Internal(sub)
		if err != nil {
			return model.Ref{}, err
		}

		return model.At(f, ref), nil
	}

	aux, err := c.Constraints.IsInternalGeometry(sub.Element)
	if err != nil {
		return model.Ref{}, err
	}

	if aux {
		parent, err := c.Constraints.ParentGeometryID(sub.Element)
		if err != nil {
			return model.Ref{}, err
		}

		if _, _, err := c.Geometry.InternalElement(parent); err != nil {
			return model.Ref{}, fmt.Errorf("auxiliary %s: %w", sub.Element, err)
		}
	}

	g, ref, err := c.Geometry.Internal(sub)
	if err != nil {
		return model.Ref{}, err
	}

	return model.At(g, ref), nil
}

func isLine(r model.Ref) bool {
	_, ok := r.Entity.(*model.LineSegment)
	return ok
}

// isWholeLine reports whether r is a line segment at CORE.
func isWholeLine(r model.Ref) bool {
	return isLine(r) && r.Reference == model.ReferenceCore
}
