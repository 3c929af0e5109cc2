package model

// Model is the root of an internal CAD document.
type Model struct {
	features []Feature
}

// New returns an empty model.
func New() *Model {
	return &Model{}
}

// Add appends a top-level feature.
func (m *Model) Add(f Feature) Feature {
	m.features = append(m.features, f)
	return f
}

// Features returns the top-level features in insertion order.
func (m *Model) Features() []Feature {
	return m.features
}

// Walk visits every feature depth-first, containers before their children.
func (m *Model) Walk(fn func(Feature) error) error {
	return walk(m.features, fn)
}

func walk(features []Feature, fn func(Feature) error) error {
	for _, f := range features {
		if err := fn(f); err != nil {
			return err
		}

		if c, ok := f.(*FeatureContainer); ok {
			if err := walk(c.Features, fn); err != nil {
				return err
			}
		}
	}

	return nil
}

// Sketches returns every sketch in the model.
func (m *Model) Sketches() []*Sketch {
	var out []*Sketch

	_ = m.Walk(func(f Feature) error {
		if s, ok := f.(*Sketch); ok {
			out = append(out, s)
		}

		return nil
	})

	return out
}
