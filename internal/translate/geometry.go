package translate

import (
	"fmt"

	"go.uber.org/zap"

	"cad-translator/internal/diagnostic"
	"cad-translator/internal/host"
	"cad-translator/internal/ident"
	"cad-translator/internal/model"
	"cad-translator/internal/registry"
)

func vec2(v host.Vector) model.Vec2 {
	return model.Vec2{X: v.X, Y: v.Y}
}

func vector(v model.Vec2) host.Vector {
	return host.Vector{X: v.X, Y: v.Y}
}

// GeometryToHost builds the host sketch element for g.
func GeometryToHost(g model.Geometry) (host.Geometry, error) {
	switch g := g.(type) {
	case *model.Point:
		return host.Geometry{Type: host.GeomPoint, Point: vector(g.Position)}, nil
	case *model.LineSegment:
		return host.Geometry{Type: host.GeomLineSegment, StartPoint: vector(g.Start), EndPoint: vector(g.End)}, nil
	case *model.Circle:
		return host.Geometry{Type: host.GeomCircle, Center: vector(g.Center), Radius: g.Radius}, nil
	case *model.CircularArc:
		return host.Geometry{
			Type:           host.GeomArcOfCircle,
			Center:         vector(g.Center),
			Radius:         g.Radius,
			FirstParameter: g.StartAngle,
			LastParameter:  g.EndAngle,
		}, nil
	case *model.Ellipse:
		return host.Geometry{
			Type:        host.GeomEllipse,
			Center:      vector(g.Center),
			MajorRadius: g.SemiMajor,
			MinorRadius: g.SemiMinor,
			AngleXU:     g.Angle,
		}, nil
	default:
		return host.Geometry{}, diagnostic.TypeMismatch("geometry export", g.Kind())
	}
}

// GeometryToInternal builds the internal geometry for a host sketch element.
func GeometryToInternal(g host.Geometry) (model.Geometry, error) {
	switch g.Type {
	case host.GeomPoint:
		return model.NewPoint(g.Point.X, g.Point.Y), nil
	case host.GeomLineSegment:
		return model.NewLineSegment(vec2(g.StartPoint), vec2(g.EndPoint)), nil
	case host.GeomCircle:
		return model.NewCircle(vec2(g.Center), g.Radius), nil
	case host.GeomArcOfCircle:
		return model.NewCircularArc(vec2(g.Center), g.Radius, g.FirstParameter, g.LastParameter), nil
	case host.GeomEllipse:
		return model.NewEllipse(vec2(g.Center), g.MajorRadius, g.MinorRadius, g.AngleXU), nil
	default:
		return nil, diagnostic.TypeMismatch("geometry import", g.Type)
	}
}

// LinkGeometry records g as the host element id. Ellipses pick up whatever
// auxiliary geometry the sketch's internal-alignment table lists for id, so
// the table must be current.
func (c *Context) LinkGeometry(g model.Geometry, id ident.SketchElementID) error {
	if e, ok := g.(*model.Ellipse); ok {
		aux, err := c.Constraints.InternalGeometry(id)
		if err != nil {
			return fmt.Errorf("link ellipse %s: %w", id, err)
		}

		if err := c.Geometry.LinkEllipse(e, id, aux); err != nil {
			return err
		}

		c.Log.Debug("linked ellipse",
			zap.Stringer("element", id),
			zap.Int("auxiliary", len(aux)))

		return nil
	}

	table, err := registry.DefaultTable(g, id)
	if err != nil {
		return err
	}

	if err := c.Geometry.Link(g, id, table); err != nil {
		return err
	}

	c.Log.Debug("linked geometry", zap.Stringer("kind", g.Kind()), zap.Stringer("element", id))

	return nil
}

// ExportGeometry appends g to the host sketch and links it. An exported
// ellipse has its auxiliary geometry exposed first when the context asks for it.
func (c *Context) ExportGeometry(sketch ident.FeatureID, g model.Geometry) (ident.SketchElementID, error) {
	if id, err := c.Geometry.ElementID(g); err == nil {
		return ident.SketchElementID{}, diagnostic.InvariantViolation("%s is already linked to %s", g.Kind(), id)
	}

	hg, err := GeometryToHost(g)
	if err != nil {
		return ident.SketchElementID{}, err
	}

	s, err := c.Doc.Sketch(sketch)
	if err != nil {
		return ident.SketchElementID{}, fmt.Errorf("%w: %w", diagnostic.ErrLookupFailure, err)
	}

	index, err := s.AddGeometry(hg)
	if err != nil {
		return ident.SketchElementID{}, fmt.Errorf("export %s: %w", g.Kind(), err)
	}

	id := ident.Element(sketch, index)

	if g.Kind() == model.GeometryKindEllipse {
		if c.ExposeInternalGeometry {
			if _, err := s.ExposeInternalGeometry(index); err != nil {
				return id, fmt.Errorf("expose internal geometry of %s: %w", id, err)
			}
		}

		if err := c.Constraints.AssignInternalConstraints(sketch); err != nil {
			return id, err
		}
	}

	return id, c.LinkGeometry(g, id)
}

// ImportGeometry builds and links the internal geometry of host element id.
// Auxiliary elements are not imported on their own; they return nil and are
// reachable through the ellipse they belong to.
func (c *Context) ImportGeometry(id ident.SketchElementID) (model.Geometry, error) {
	aux, err := c.Constraints.IsInternalGeometry(id)
	if err != nil {
		return nil, err
	}

	if aux {
		return nil, nil
	}

	s, err := c.Doc.Sketch(id.Feature)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", diagnostic.ErrLookupFailure, err)
	}

	hg, err := s.GeometryAt(id.List, id.Index)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", diagnostic.ErrLookupFailure, err)
	}

	g, err := GeometryToInternal(hg)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", id, err)
	}

	return g, c.LinkGeometry(g, id)
}
