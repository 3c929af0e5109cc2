package modelfile

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"cad-translator/internal/host"
	"cad-translator/internal/model"
	"cad-translator/internal/session"
)

func loadBracket(t *testing.T) *File {
	t.Helper()

	mf, err := LoadFile(filepath.Join("testdata", "bracket.yaml"))
	require.NoError(t, err)

	return mf
}

func TestBuildBracket(t *testing.T) {
	m, err := Build(loadBracket(t))
	require.NoError(t, err)

	// Only the container is top level.
	require.Len(t, m.Features(), 1)
	body, ok := m.Features()[0].(*model.FeatureContainer)
	require.True(t, ok)
	assert.Equal(t, "Bracket", body.Name)
	require.Len(t, body.Features, 3)

	origin, ok := body.Features[0].(*model.CoordinateSystem)
	require.True(t, ok)

	sketch, ok := body.Features[1].(*model.Sketch)
	require.True(t, ok)
	require.NotNil(t, sketch.Support)
	assert.Same(t, origin, sketch.Support.Entity)
	assert.Equal(t, model.ReferenceXY, sketch.Support.Reference)

	pad, ok := body.Features[2].(*model.Extrude)
	require.True(t, ok)
	assert.Same(t, sketch, pad.Profile)
	assert.InDelta(t, 5.0, pad.Length, 1e-12)

	require.Len(t, sketch.Geometry, 4)
	require.Len(t, sketch.Constraints, 7)

	base := sketch.Geometry[0]
	pin, ok := sketch.Constraints[0].(*model.StateConstraint)
	require.True(t, ok)
	assert.Equal(t, model.ConstraintKindCoincident, pin.Kind())
	assert.Equal(t, model.At(base, model.ReferenceStart), pin.A)
	assert.Equal(t, model.At(sketch, model.ReferenceOrigin), pin.B)

	angle, ok := sketch.Constraints[5].(*model.AngleConstraint)
	require.True(t, ok)
	assert.Equal(t, 2, angle.Quadrant)
	assert.InDelta(t, 90.0, angle.Value, 1e-12)
}

func TestBuildRejectsInvalid(t *testing.T) {
	_, err := Build(parse(t, `
features:
  - {id: p, kind: extrude, profile: nowhere, length: 1}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), CodeUnknownID)
}

func TestBuildDefaultQuadrant(t *testing.T) {
	m, err := Build(parse(t, `
features:
  - id: s
    kind: sketch
    geometry:
      - {id: a, kind: line_segment, start: [0, 0], end: [1, 0]}
      - {id: b, kind: line_segment, start: [0, 0], end: [0, 1]}
    constraints:
      - {kind: angle, refs: [a, b], value: 45}
`))
	require.NoError(t, err)

	angle, ok := m.Sketches()[0].Constraints[0].(*model.AngleConstraint)
	require.True(t, ok)
	assert.Equal(t, 1, angle.Quadrant)
}

func TestFromModelRoundTrip(t *testing.T) {
	m, err := Build(loadBracket(t))
	require.NoError(t, err)

	first, err := FromModel(m)
	require.NoError(t, err)
	require.True(t, Validate(first).IsValid())

	ids := make([]string, 0, len(first.Features))
	for _, f := range first.Features {
		ids = append(ids, f.ID)
	}

	assert.Equal(t, []string{"origin", "profile", "pad", "Bracket"}, ids)

	again, err := Build(first)
	require.NoError(t, err)

	second, err := FromModel(again)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("model file changed on rebuild (-first +second):\n%s", diff)
		t.Log(spew.Sdump(second))
	}
}

func TestFromModelForeignOperand(t *testing.T) {
	m := model.New()
	sketch := model.NewSketch("s")
	m.Add(sketch)

	stray := model.NewLineSegment(model.Vec2{}, model.Vec2{X: 1})
	sketch.AddConstraint(model.NewHorizontal(model.Core(stray)))

	_, err := FromModel(m)
	require.Error(t, err)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "Base_Plate", slug(" Base Plate "))
	assert.Equal(t, "a_b", slug("a.b"))
	assert.Equal(t, "", slug("#!"))
}

// TestBracketThroughHost exports the built model and rebuilds a model file
// from what the host document holds.
func TestBracketThroughHost(t *testing.T) {
	ctx := context.Background()

	m, err := Build(loadBracket(t))
	require.NoError(t, err)

	doc := host.NewMemoryDocument(t.Name())
	out := session.New(doc, m, session.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, out.Export(ctx))

	in := session.New(doc, nil, session.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, in.Import(ctx))

	mf, err := FromModel(in.Model())
	require.NoError(t, err)
	require.True(t, Validate(mf).IsValid(), "%v", Validate(mf).Errors)

	var sketch *Feature

	for i := range mf.Features {
		if mf.Features[i].Kind == model.FeatureKindSketch.String() {
			sketch = &mf.Features[i]
		}
	}

	require.NotNil(t, sketch)

	kinds := func(f *Feature) (geometry, constraints []string) {
		for _, g := range f.Geometry {
			geometry = append(geometry, g.Kind)
		}

		for _, c := range f.Constraints {
			constraints = append(constraints, c.Kind)
		}

		return geometry, constraints
	}

	wantGeometry, wantConstraints := kinds(&loadBracket(t).Features[1])
	gotGeometry, gotConstraints := kinds(sketch)
	assert.Equal(t, wantGeometry, gotGeometry)
	assert.Equal(t, wantConstraints, gotConstraints)
}
