package host

import (
	"fmt"

	"cad-translator/internal/ident"
)

// Sketch is the geometry and constraint data of a Sketcher::SketchObject.
type Sketch struct {
	geometry    []Geometry
	external    []Geometry
	constraints []Constraint
}

func newSketch() *Sketch {
	return &Sketch{
		external: []Geometry{axis(1, 0), axis(0, 1)},
	}
}

// Geometry returns a copy of the geometry list.
func (s *Sketch) Geometry() []Geometry {
	return append([]Geometry(nil), s.geometry...)
}

// ExternalGeometry returns a copy of the external geometry list; index 0 is
// the horizontal axis and index 1 the vertical axis.
func (s *Sketch) ExternalGeometry() []Geometry {
	return append([]Geometry(nil), s.external...)
}

// Constraints returns a copy of the constraint list.
func (s *Sketch) Constraints() []Constraint {
	return append([]Constraint(nil), s.constraints...)
}

// GeometryCount returns the length of the geometry list.
func (s *Sketch) GeometryCount() int {
	return len(s.geometry)
}

// GeometryAt returns one element of either list.
func (s *Sketch) GeometryAt(list ident.GeometryList, index int) (Geometry, error) {
	var src []Geometry

	switch list {
	case ident.ListGeometry:
		src = s.geometry
	case ident.ListExternal:
		src = s.external
	default:
		return Geometry{}, fmt.Errorf("%w: unknown geometry list %d", ErrInvalidArgument, list)
	}

	if index < 0 || index >= len(src) {
		return Geometry{}, fmt.Errorf("%w: %s index %d out of range", ErrInvalidArgument, list, index)
	}

	return src[index], nil
}

// ConstraintAt returns one constraint record.
func (s *Sketch) ConstraintAt(index int) (Constraint, error) {
	if index < 0 || index >= len(s.constraints) {
		return Constraint{}, fmt.Errorf("%w: constraint index %d out of range", ErrInvalidArgument, index)
	}

	return s.constraints[index], nil
}

// AddGeometry appends g to the geometry list and returns its index.
func (s *Sketch) AddGeometry(g Geometry) (int, error) {
	if err := g.validate(); err != nil {
		return 0, err
	}

	s.geometry = append(s.geometry, g)

	return len(s.geometry) - 1, nil
}

// AddConstraint appends a constraint built from args and returns its index.
func (s *Sketch) AddConstraint(args ConstraintArgs) (int, error) {
	c, err := args.interpret()
	if err != nil {
		return 0, err
	}

	for _, arg := range c.Args() {
		if arg == ident.UnusedArg {
			continue
		}

		if err := s.checkArg(arg); err != nil {
			return 0, fmt.Errorf("%s: %w", args.Type, err)
		}
	}

	s.constraints = append(s.constraints, c)

	return len(s.constraints) - 1, nil
}

func (s *Sketch) checkArg(arg int) error {
	list, index, err := ident.ToInternalIndex(arg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	_, err = s.GeometryAt(list, index)

	return err
}

// ExposeInternalGeometry adds the missing auxiliary geometry of the ellipse
// at index: major and minor axis lines and the two foci, each tied back to
// the ellipse by an InternalAlignment constraint. It returns the number of
// elements added.
func (s *Sketch) ExposeInternalGeometry(index int) (int, error) {
	e, err := s.GeometryAt(ident.ListGeometry, index)
	if err != nil {
		return 0, err
	}

	if e.Type != GeomEllipse {
		return 0, fmt.Errorf("%w: %s has no internal geometry", ErrInvalidArgument, e.Type)
	}

	present := make(map[AlignmentType]bool)

	for _, c := range s.constraints {
		if c.Type == InternalAlignment && c.Second == index {
			present[c.AlignmentType] = true
		}
	}

	u, v, focal := ellipseFrame(e)
	added := 0

	for _, alignment := range EllipseAlignments {
		if present[alignment] {
			continue
		}

		var aux Geometry

		switch alignment {
		case EllipseMajorDiameter:
			aux = Geometry{
				Type:       GeomLineSegment,
				StartPoint: offset(e.Center, u, -e.MajorRadius),
				EndPoint:   offset(e.Center, u, e.MajorRadius),
			}
		case EllipseMinorDiameter:
			aux = Geometry{
				Type:       GeomLineSegment,
				StartPoint: offset(e.Center, v, -e.MinorRadius),
				EndPoint:   offset(e.Center, v, e.MinorRadius),
			}
		case EllipseFocus1:
			aux = Geometry{Type: GeomPoint, Point: offset(e.Center, u, focal)}
		case EllipseFocus2:
			aux = Geometry{Type: GeomPoint, Point: offset(e.Center, u, -focal)}
		}

		aux.Construction = true
		s.geometry = append(s.geometry, aux)

		if _, err := s.AddConstraint(ConstraintArgs{
			Type:      InternalAlignment,
			Args:      []int{len(s.geometry) - 1, index},
			Alignment: alignment,
		}); err != nil {
			return added, err
		}

		added++
	}

	return added, nil
}
