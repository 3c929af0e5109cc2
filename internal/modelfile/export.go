package modelfile

import (
	"fmt"
	"strings"
	"unicode"

	"cad-translator/internal/diagnostic"
	"cad-translator/internal/model"
)

// exporter assigns a local id to every entity it writes.
type exporter struct {
	ids   map[string]string
	taken map[string]bool
	count map[string]int
}

// FromModel writes a model as a model file. Members are listed before the
// container that holds them.
func FromModel(m *model.Model) (*File, error) {
	e := &exporter{
		ids:   make(map[string]string),
		taken: make(map[string]bool),
		count: make(map[string]int),
	}

	// Ids first, so supports and profiles may refer forward.
	if err := m.Walk(func(f model.Feature) error {
		e.assign(f, f.Label(), f.Kind().String())

		if s, ok := f.(*model.Sketch); ok {
			for _, g := range s.Geometry {
				e.assign(g, "", shortKind(g.Kind()))
			}
		}

		return nil
	}); err != nil {
		return nil, err
	}

	mf := &File{Version: CurrentVersion}

	var emit func(features []model.Feature) error

	emit = func(features []model.Feature) error {
		for _, f := range features {
			if c, ok := f.(*model.FeatureContainer); ok {
				if err := emit(c.Features); err != nil {
					return err
				}
			}

			out, err := e.feature(f)
			if err != nil {
				return fmt.Errorf("feature %s: %w", f.Label(), err)
			}

			mf.Features = append(mf.Features, out)
		}

		return nil
	}

	if err := emit(m.Features()); err != nil {
		return nil, err
	}

	return mf, nil
}

// assign picks a unique id from the label, falling back to kind plus a counter.
func (e *exporter) assign(ent model.Entity, label, kind string) {
	id := slug(label)
	if id == "" || e.taken[id] {
		for {
			e.count[kind]++

			id = fmt.Sprintf("%s%d", kind, e.count[kind])
			if !e.taken[id] {
				break
			}
		}
	}

	e.taken[id] = true
	e.ids[ent.UID()] = id
}

func (e *exporter) ref(r model.Ref) (string, error) {
	id, ok := e.ids[r.Entity.UID()]
	if !ok {
		return "", diagnostic.LookupFailure("entity outside the model", r.Entity.UID())
	}

	return formatRef(id, r.Reference), nil
}

func (e *exporter) feature(f model.Feature) (Feature, error) {
	out := Feature{ID: e.ids[f.UID()], Kind: f.Kind().String()}
	if f.Label() != out.ID {
		out.Name = f.Label()
	}

	switch f := f.(type) {
	case *model.CoordinateSystem:
		out.Frame = frameOf(f)
	case *model.Sketch:
		out.Frame = frameOf(f.CoordinateSystem)

		if f.Support != nil {
			support, err := e.ref(*f.Support)
			if err != nil {
				return out, err
			}

			out.Support = support
		}

		for _, g := range f.Geometry {
			out.Geometry = append(out.Geometry, geometryOf(e.ids[g.UID()], g))
		}

		for _, c := range f.Constraints {
			con, err := e.constraint(c)
			if err != nil {
				return out, err
			}

			out.Constraints = append(out.Constraints, con)
		}
	case *model.Extrude:
		if f.Profile != nil {
			profile, err := e.ref(model.Core(f.Profile))
			if err != nil {
				return out, err
			}

			out.Profile = profile
		}

		out.Length = f.Length
		out.Midplane = f.Midplane
		out.Reversed = f.Reversed
	case *model.FeatureContainer:
		for _, member := range f.Features {
			out.Members = append(out.Members, e.ids[member.UID()])
		}
	default:
		return out, diagnostic.TypeMismatch("model file export", f.Kind())
	}

	return out, nil
}

// frameOf omits the frame of an unrotated coordinate system at the origin.
func frameOf(cs *model.CoordinateSystem) *Frame {
	if cs == nil {
		return nil
	}

	fr := &Frame{Origin: vec3Of(cs.Origin), XAxis: vec3Of(cs.XAxis), YAxis: vec3Of(cs.YAxis)}
	if *fr == (Frame{XAxis: Vec3{1, 0, 0}, YAxis: Vec3{0, 1, 0}}) {
		return nil
	}

	return fr
}

func geometryOf(id string, g model.Geometry) Geometry {
	out := Geometry{ID: id, Kind: g.Kind().String()}

	switch g := g.(type) {
	case *model.Point:
		out.Position = vec2Of(g.Position)
	case *model.LineSegment:
		out.Start = vec2Of(g.Start)
		out.End = vec2Of(g.End)
	case *model.Circle:
		out.Center = vec2Of(g.Center)
		out.Radius = g.Radius
	case *model.CircularArc:
		out.Center = vec2Of(g.Center)
		out.Radius = g.Radius
		out.StartAngle = g.StartAngle
		out.EndAngle = g.EndAngle
	case *model.Ellipse:
		out.Center = vec2Of(g.Center)
		out.SemiMajor = g.SemiMajor
		out.SemiMinor = g.SemiMinor
		out.Angle = g.Angle
	}

	return out
}

func (e *exporter) constraint(c model.Constraint) (Constraint, error) {
	out := Constraint{Kind: c.Kind().String()}

	for _, op := range c.Operands() {
		ref, err := e.ref(op)
		if err != nil {
			return out, err
		}

		out.Refs = append(out.Refs, ref)
	}

	switch c := c.(type) {
	case *model.AngleConstraint:
		out.Value = c.Value
		out.Quadrant = c.Quadrant
	case *model.DistanceConstraint:
		out.Value = c.Value
	case *model.RadiusConstraint:
		out.Value = c.Value
	}

	return out, nil
}

func shortKind(k model.GeometryKind) string {
	switch k {
	case model.GeometryKindLineSegment:
		return "line"
	case model.GeometryKindCircularArc:
		return "arc"
	default:
		return k.String()
	}
}

// slug turns a label into an id: letters, digits and '_' only.
func slug(label string) string {
	var b strings.Builder

	for _, r := range strings.TrimSpace(label) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '.':
			b.WriteRune('_')
		}
	}

	return b.String()
}
