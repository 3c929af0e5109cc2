package modelfile

import (
	"fmt"

	"cad-translator/internal/diagnostic"
	"cad-translator/internal/model"
)

// builder resolves local ids to model entities.
type builder struct {
	features map[string]model.Feature
	geometry map[string]model.Geometry
}

// Build validates a model file and turns it into a model.
func Build(mf *File) (*model.Model, error) {
	if res := Validate(mf); res.HasErrors() {
		return nil, res.Error()
	}

	b := &builder{
		features: make(map[string]model.Feature, len(mf.Features)),
		geometry: make(map[string]model.Geometry),
	}

	// Create every feature first so that references may point forward.
	for i := range mf.Features {
		b.features[mf.Features[i].ID] = b.newFeature(&mf.Features[i])
	}

	members := make(map[string]bool)

	for i := range mf.Features {
		if err := b.resolve(&mf.Features[i]); err != nil {
			return nil, fmt.Errorf("feature %s: %w", mf.Features[i].ID, err)
		}

		for _, id := range mf.Features[i].Members {
			members[id] = true
		}
	}

	m := model.New()

	for i := range mf.Features {
		if id := mf.Features[i].ID; !members[id] {
			m.Add(b.features[id])
		}
	}

	return m, nil
}

func (b *builder) newFeature(f *Feature) model.Feature {
	name := f.Name
	if name == "" {
		name = f.ID
	}

	switch featureKinds[f.Kind] {
	case model.FeatureKindCoordinateSystem:
		cs := model.NewCoordinateSystem(name)
		applyFrame(cs, f.Frame)

		return cs
	case model.FeatureKindSketch:
		s := model.NewSketch(name)
		applyFrame(s.CoordinateSystem, f.Frame)

		for i := range f.Geometry {
			g := newGeometry(&f.Geometry[i])
			b.geometry[f.Geometry[i].ID] = g
			s.AddGeometry(g)
		}

		return s
	case model.FeatureKindExtrude:
		e := model.NewExtrude(name, nil, f.Length)
		e.Midplane = f.Midplane
		e.Reversed = f.Reversed

		return e
	default:
		return model.NewFeatureContainer(name)
	}
}

func applyFrame(cs *model.CoordinateSystem, fr *Frame) {
	if fr == nil {
		return
	}

	cs.Origin = fr.Origin.model()
	cs.XAxis = fr.XAxis.model()
	cs.YAxis = fr.YAxis.model()
}

func newGeometry(g *Geometry) model.Geometry {
	switch geometryKinds[g.Kind] {
	case model.GeometryKindPoint:
		p := g.Position.orZero()
		return model.NewPoint(p.X, p.Y)
	case model.GeometryKindLineSegment:
		return model.NewLineSegment(g.Start.orZero(), g.End.orZero())
	case model.GeometryKindCircle:
		return model.NewCircle(g.Center.orZero(), g.Radius)
	case model.GeometryKindCircularArc:
		return model.NewCircularArc(g.Center.orZero(), g.Radius, g.StartAngle, g.EndAngle)
	default:
		return model.NewEllipse(g.Center.orZero(), g.SemiMajor, g.SemiMinor, g.Angle)
	}
}

// resolve wires the cross-feature references of f.
func (b *builder) resolve(f *Feature) error {
	switch target := b.features[f.ID].(type) {
	case *model.Sketch:
		if f.Support != "" {
			ref, err := b.featureRef(f.Support)
			if err != nil {
				return err
			}

			target.Support = &ref
		}

		for i := range f.Constraints {
			c, err := b.newConstraint(target, &f.Constraints[i])
			if err != nil {
				return err
			}

			target.AddConstraint(c)
		}
	case *model.Extrude:
		ref, err := b.featureRef(f.Profile)
		if err != nil {
			return err
		}

		profile, ok := ref.Entity.(*model.Sketch)
		if !ok {
			return diagnostic.TypeMismatch("extrude profile", ref.Entity)
		}

		target.Profile = profile
	case *model.FeatureContainer:
		for _, id := range f.Members {
			target.Add(b.features[id])
		}
	}

	return nil
}

func (b *builder) featureRef(raw string) (model.Ref, error) {
	ref, err := parseRef(raw)
	if err != nil {
		return model.Ref{}, err
	}

	f, ok := b.features[ref.ID]
	if !ok {
		return model.Ref{}, diagnostic.LookupFailure("feature", ref.ID)
	}

	return model.At(f, ref.Reference), nil
}

// operand resolves a constraint operand to sketch geometry or to the sketch.
func (b *builder) operand(sketch *model.Sketch, raw string) (model.Ref, error) {
	ref, err := parseRef(raw)
	if err != nil {
		return model.Ref{}, err
	}

	if g, ok := b.geometry[ref.ID]; ok {
		return model.At(g, ref.Reference), nil
	}

	if f, ok := b.features[ref.ID]; ok && f == model.Feature(sketch) {
		return model.At(sketch, ref.Reference), nil
	}

	return model.Ref{}, diagnostic.LookupFailure("operand", raw)
}

func (b *builder) newConstraint(sketch *model.Sketch, c *Constraint) (model.Constraint, error) {
	refs := make([]model.Ref, 0, len(c.Refs))

	for _, raw := range c.Refs {
		ref, err := b.operand(sketch, raw)
		if err != nil {
			return nil, err
		}

		refs = append(refs, ref)
	}

	kind := constraintKinds[c.Kind]

	switch {
	case kind.IsState():
		return model.NewState(kind, refs[0], refs[1]), nil
	case kind == model.ConstraintKindHorizontal || kind == model.ConstraintKindVertical:
		return model.NewSnap(kind, refs...), nil
	case kind == model.ConstraintKindAngle:
		quadrant := c.Quadrant
		if quadrant == 0 {
			quadrant = 1
		}

		return model.NewAngle(refs[0], refs[1], c.Value, quadrant), nil
	case kind.IsDistance():
		return model.NewDistanceOf(kind, c.Value, refs...), nil
	case kind == model.ConstraintKindRadius || kind == model.ConstraintKindDiameter:
		return model.NewRadiusOf(kind, refs[0], c.Value), nil
	default:
		return nil, diagnostic.TypeMismatch("model file constraint", c.Kind)
	}
}
