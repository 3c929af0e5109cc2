package translate

import (
	"errors"
	"math"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cad-translator/internal/diagnostic"
	"cad-translator/internal/host"
	"cad-translator/internal/ident"
	"cad-translator/internal/model"
)

// shape is a constraint described through host ids, comparable across
// contexts that share a document.
type shape struct {
	Kind     model.ConstraintKind
	Operands []ident.SubGeometryID
	Value    float64
	Quadrant int
}

func shapeOf(t *testing.T, ctx *Context, sid ident.FeatureID, c model.Constraint) shape {
	t.Helper()

	s := shape{Kind: c.Kind()}

	for _, r := range c.Operands() {
		op, err := ctx.hostOperand(sid, r)
		require.NoError(t, err, spew.Sdump(r))

		s.Operands = append(s.Operands, op.sub)
	}

	switch c := c.(type) {
	case *model.AngleConstraint:
		s.Value, s.Quadrant = c.Value, c.Quadrant
	case *model.DistanceConstraint:
		s.Value = c.Value
	case *model.RadiusConstraint:
		s.Value = c.Value
	}

	return s
}

func requireSameConstraints(t *testing.T, out, in *Context, sid ident.FeatureID, want, got []model.Constraint) {
	t.Helper()

	require.Len(t, got, len(want))

	for i := range want {
		w, g := shapeOf(t, out, sid, want[i]), shapeOf(t, in, sid, got[i])
		if diff := cmp.Diff(w, g, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Errorf("constraint %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func lastHostConstraint(t *testing.T, ctx *Context, id ident.ConstraintID) host.Constraint {
	t.Helper()

	hs, err := ctx.Doc.Sketch(id.Sketch)
	require.NoError(t, err)

	rec, err := hs.ConstraintAt(id.Index)
	require.NoError(t, err)

	return rec
}

func TestHorizontalLineRoundTrip(t *testing.T) {
	out, sketch, sid := newSketchContext(t)
	line := sketch.AddGeometry(model.NewLineSegment(model.Vec2{}, model.Vec2{X: 1}))
	sketch.AddConstraint(model.NewHorizontal(model.Core(line)))
	exportAll(t, out, sketch, sid)

	in := reimport(t, out)
	got := onlySketch(t, in)

	require.Len(t, got.Geometry, 1)
	if diff := cmp.Diff(line, got.Geometry[0], geometryOpts); diff != "" {
		t.Errorf("line mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, got.Constraints, 1)
	h, ok := got.Constraints[0].(*model.SnapConstraint)
	require.True(t, ok)
	assert.Equal(t, model.ConstraintKindHorizontal, h.Type)
	require.Len(t, h.Refs, 1)
	assert.Same(t, got.Geometry[0], h.Refs[0].Entity)
	assert.Equal(t, model.ReferenceCore, h.Refs[0].Reference)
}

func TestDistanceDefect(t *testing.T) {
	out, sketch, sid := newSketchContext(t)
	a := sketch.AddGeometry(model.NewLineSegment(model.Vec2{}, model.Vec2{X: 4}))
	b := sketch.AddGeometry(model.NewLineSegment(model.Vec2{Y: 3}, model.Vec2{X: 4, Y: 3}))
	p := sketch.AddGeometry(model.NewPoint(1, 1))
	q := sketch.AddGeometry(model.NewPoint(2, 2))

	tests := []struct {
		name  string
		con   model.Constraint
		nargs int
		want  host.Constraint
	}{
		{
			name:  "two whole lines",
			con:   model.NewDistance(3, model.Core(a), model.Core(b)),
			nargs: 2,
			want:  host.Constraint{First: 0, FirstPos: ident.SubpartStart, Second: 1, Third: ident.UnusedArg},
		},
		{
			name:  "two points",
			con:   model.NewDistance(1.5, model.Core(p), model.Core(q)),
			nargs: 2,
			want: host.Constraint{
				First: 2, FirstPos: ident.SubpartStart, Second: 3, SecondPos: ident.SubpartStart, Third: ident.UnusedArg,
			},
		},
		{
			name:  "line end to point",
			con:   model.NewDistance(2, model.At(a, model.ReferenceEnd), model.Core(q)),
			nargs: 2,
			want: host.Constraint{
				First: 0, FirstPos: ident.SubpartEnd, Second: 3, SecondPos: ident.SubpartStart, Third: ident.UnusedArg,
			},
		},
		{
			name:  "point to line drops the edge subpart",
			con:   model.NewDistance(2, model.Core(p), model.Core(b)),
			nargs: 2,
			want:  host.Constraint{First: 2, FirstPos: ident.SubpartStart, Second: 1, Third: ident.UnusedArg},
		},
		{
			name:  "line length",
			con:   model.NewDistance(4, model.Core(a)),
			nargs: 1,
			want:  host.Constraint{First: 0, Second: ident.UnusedArg, Third: ident.UnusedArg},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := out.ExportConstraint(sid, tt.con)
			require.NoError(t, err)

			rec := lastHostConstraint(t, out, id)
			assert.Equal(t, host.Distance, rec.Type)
			assert.Equal(t, tt.want.First, rec.First)
			assert.Equal(t, tt.want.FirstPos, rec.FirstPos)
			assert.Equal(t, tt.want.Second, rec.Second)
			assert.Equal(t, tt.want.SecondPos, rec.SecondPos)
			assert.Equal(t, tt.want.Third, rec.Third)

			ids, err := out.Constraints.ConstrainedIDs(id)
			require.NoError(t, err)
			assert.Len(t, ids, tt.nargs)
		})
	}

	in := reimport(t, out)
	imported := onlySketch(t, in)

	want := make([]model.Constraint, 0, len(tests))
	for _, tt := range tests {
		want = append(want, tt.con)
	}

	requireSameConstraints(t, out, in, sid, want, imported.Constraints)
}

func TestDistanceArgCount(t *testing.T) {
	line := func() model.Ref { return model.Core(model.NewLineSegment(model.Vec2{}, model.Vec2{X: 1})) }
	edge := operand{arg: 4, pos: ident.SubpartEdge}
	other := operand{arg: 5, pos: ident.SubpartEdge}

	args, err := distanceArgs(model.ConstraintKindDistance, []model.Ref{line(), line()}, []operand{edge, other})
	require.NoError(t, err)
	assert.Equal(t, []int{4, int(ident.SubpartStart), 5}, args)

	assert.True(t, isLineToLineDistance(model.ConstraintKindDistance, line(), line()))
	assert.False(t, isLineToLineDistance(model.ConstraintKindHorizontalDistance, line(), line()))
	assert.False(t, isLineToLineDistance(model.ConstraintKindDistance, line(), model.Core(model.NewPoint(0, 0))))

	_, err = distanceArgs(model.ConstraintKindHorizontalDistance, []model.Ref{line(), line()}, []operand{edge, other})
	assert.True(t, errors.Is(err, diagnostic.ErrUnsupportedFeature))

	point := operand{arg: 6, pos: ident.SubpartStart}
	args, err = distanceArgs(model.ConstraintKindVerticalDistance,
		[]model.Ref{model.Core(model.NewPoint(0, 0)), model.Core(model.NewPoint(0, 1))},
		[]operand{point, {arg: 7, pos: ident.SubpartStart}})
	require.NoError(t, err)
	assert.Len(t, args, 4)

	args, err = distanceArgs(model.ConstraintKindDistance,
		[]model.Ref{line(), model.Core(model.NewPoint(0, 0))}, []operand{edge, point})
	require.NoError(t, err)
	assert.Equal(t, []int{6, int(ident.SubpartStart), 4}, args)
}

func TestCoincidentForms(t *testing.T) {
	out, sketch, sid := newSketchContext(t)
	a := sketch.AddGeometry(model.NewLineSegment(model.Vec2{}, model.Vec2{X: 1}))
	b := sketch.AddGeometry(model.NewLineSegment(model.Vec2{X: 1}, model.Vec2{X: 1, Y: 1}))
	p := sketch.AddGeometry(model.NewPoint(0.5, 0))
	sketch.AddConstraint(model.NewCoincident(model.At(a, model.ReferenceEnd), model.At(b, model.ReferenceStart)))
	sketch.AddConstraint(model.NewCoincident(model.Core(p), model.Core(a)))
	sketch.AddConstraint(model.NewCoincident(model.Core(p), model.At(sketch, model.ReferenceX)))
	sketch.AddConstraint(model.NewCoincident(model.At(a, model.ReferenceStart), model.At(sketch, model.ReferenceOrigin)))
	exportAll(t, out, sketch, sid)

	hs, err := out.Doc.Sketch(sid)
	require.NoError(t, err)

	types := make([]host.ConstraintType, 0, 4)
	for _, c := range hs.Constraints() {
		types = append(types, c.Type)
	}

	assert.Equal(t, []host.ConstraintType{host.Coincident, host.PointOnObject, host.PointOnObject, host.Coincident}, types)
	assert.Equal(t, -1, hs.Constraints()[2].Second)

	in := reimport(t, out)
	got := onlySketch(t, in)
	requireSameConstraints(t, out, in, sid, sketch.Constraints, got.Constraints)

	axis := got.Constraints[2].Operands()[1]
	assert.Same(t, got, axis.Entity)
	assert.Equal(t, model.ReferenceX, axis.Reference)

	_, err = out.ExportConstraint(sid, model.NewCoincident(model.Core(a), model.Core(b)))
	assert.True(t, errors.Is(err, diagnostic.ErrUnsupportedFeature))
}

func TestAngleQuadrants(t *testing.T) {
	for quadrant := 1; quadrant <= 4; quadrant++ {
		out, sketch, sid := newSketchContext(t)
		a := sketch.AddGeometry(model.NewLineSegment(model.Vec2{}, model.Vec2{X: 1}))
		b := sketch.AddGeometry(model.NewLineSegment(model.Vec2{}, model.Vec2{X: 1, Y: 1}))
		con := sketch.AddConstraint(model.NewAngle(model.Core(a), model.Core(b), 45, quadrant))
		exportAll(t, out, sketch, sid)

		hs, err := out.Doc.Sketch(sid)
		require.NoError(t, err)

		rec := hs.Constraints()[0]
		assert.InDelta(t, math.Pi/4, rec.Value, 1e-12)

		in := reimport(t, out)
		got := onlySketch(t, in)
		requireSameConstraints(t, out, in, sid, []model.Constraint{con}, got.Constraints)
	}
}

func TestQuadrantTable(t *testing.T) {
	a, b := ident.Element(1, 0), ident.Element(1, 1)

	for quadrant := 1; quadrant <= 4; quadrant++ {
		args, err := quadrantArgs(quadrant, a, b)
		require.NoError(t, err)
		require.Len(t, args, 4)

		q, firstIsA, err := quadrantOf(ident.Subpart(args[1]), ident.Subpart(args[3]))
		require.NoError(t, err)
		assert.Equal(t, quadrant, q)
		assert.Equal(t, args[0] == a.Arg(), firstIsA)
	}

	args, err := quadrantArgs(2, a, b)
	require.NoError(t, err)
	assert.Equal(t, []int{1, int(ident.SubpartStart), 0, int(ident.SubpartEnd)}, args)

	_, err = quadrantArgs(0, a, b)
	assert.True(t, errors.Is(err, diagnostic.ErrInvariantViolation))

	_, _, err = quadrantOf(ident.SubpartMid, ident.SubpartStart)
	assert.True(t, errors.Is(err, diagnostic.ErrInvariantViolation))
}

func TestStateAndValueConstraints(t *testing.T) {
	out, sketch, sid := newSketchContext(t)
	a := sketch.AddGeometry(model.NewLineSegment(model.Vec2{}, model.Vec2{X: 1}))
	b := sketch.AddGeometry(model.NewLineSegment(model.Vec2{Y: 1}, model.Vec2{X: 1, Y: 1}))
	c := sketch.AddGeometry(model.NewCircle(model.Vec2{X: 3}, 1))
	arc := sketch.AddGeometry(model.NewCircularArc(model.Vec2{X: 6}, 2, 0, math.Pi))
	sketch.AddConstraint(model.NewParallel(model.Core(a), model.Core(b)))
	sketch.AddConstraint(model.NewEqual(model.Core(a), model.Core(b)))
	sketch.AddConstraint(model.NewPerpendicular(model.Core(a), model.Core(sketch.Geometry[1])))
	sketch.AddConstraint(model.NewTangent(model.Core(b), model.Core(c)))
	sketch.AddConstraint(model.NewVertical(model.At(a, model.ReferenceStart), model.At(b, model.ReferenceStart)))
	sketch.AddConstraint(model.NewRadius(model.Core(c), 1))
	sketch.AddConstraint(model.NewDiameter(model.Core(arc), 4))
	sketch.AddConstraint(model.NewHorizontalDistance(6, model.At(c, model.ReferenceCenter), model.At(arc, model.ReferenceCenter)))
	exportAll(t, out, sketch, sid)

	in := reimport(t, out)
	requireSameConstraints(t, out, in, sid, sketch.Constraints, onlySketch(t, in).Constraints)
}

func TestExportRejects(t *testing.T) {
	ctx, sketch, sid := newSketchContext(t)
	a := sketch.AddGeometry(model.NewLineSegment(model.Vec2{}, model.Vec2{X: 1}))
	b := sketch.AddGeometry(model.NewLineSegment(model.Vec2{Y: 1}, model.Vec2{X: 1, Y: 1}))
	p := sketch.AddGeometry(model.NewPoint(0, 0))
	exportAll(t, ctx, sketch, sid)

	tests := []struct {
		name string
		con  model.Constraint
		want error
	}{
		{"tangent lines", model.NewTangent(model.Core(a), model.Core(b)), diagnostic.ErrUnsupportedFeature},
		{"parallel endpoints", model.NewParallel(model.At(a, model.ReferenceEnd), model.Core(b)), diagnostic.ErrInvariantViolation},
		{"radius of a line", model.NewRadius(model.Core(a), 1), diagnostic.ErrInvariantViolation},
		{"angle quadrant", model.NewAngle(model.Core(a), model.Core(b), 10, 5), diagnostic.ErrInvariantViolation},
		{"angle on a point", model.NewAngle(model.Core(a), model.Core(p), 10, 1), diagnostic.ErrUnsupportedFeature},
		{"unlinked operand", model.NewHorizontal(model.Core(model.NewLineSegment(model.Vec2{}, model.Vec2{X: 1}))), diagnostic.ErrLookupFailure},
		{"bad reference", model.NewHorizontal(model.At(a, model.ReferenceFocalPlus)), diagnostic.ErrInvariantViolation},
		{"snap of three", model.NewHorizontal(model.Core(a), model.Core(b), model.Core(p)), diagnostic.ErrInvariantViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ctx.ExportConstraint(sid, tt.con)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), err.Error())
		})
	}
}

func TestExportKindMismatch(t *testing.T) {
	ctx, sketch, sid := newSketchContext(t)
	a := sketch.AddGeometry(model.NewLineSegment(model.Vec2{}, model.Vec2{X: 1}))
	b := sketch.AddGeometry(model.NewLineSegment(model.Vec2{Y: 1}, model.Vec2{X: 1, Y: 1}))
	c := sketch.AddGeometry(model.NewCircle(model.Vec2{X: 3}, 1))
	exportAll(t, ctx, sketch, sid)

	hs, err := ctx.Doc.Sketch(sid)
	require.NoError(t, err)

	tests := []struct {
		name string
		con  model.Constraint
	}{
		{"snap carrying angle", model.NewSnap(model.ConstraintKindAngle, model.Core(a), model.Core(b))},
		{"snap carrying tangent", model.NewSnap(model.ConstraintKindTangent, model.Core(a))},
		{"state carrying horizontal", model.NewState(model.ConstraintKindHorizontal, model.Core(a), model.Core(b))},
		{"state carrying distance", model.NewState(model.ConstraintKindDistance, model.Core(a), model.Core(b))},
		{"distance carrying radius", model.NewDistanceOf(model.ConstraintKindRadius, 1, model.Core(c))},
		{"radius carrying distance", model.NewRadiusOf(model.ConstraintKindDistance, model.Core(c), 1)},
		{"radius carrying coincident", model.NewRadiusOf(model.ConstraintKindCoincident, model.Core(c), 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error

			require.NotPanics(t, func() { _, err = ctx.ExportConstraint(sid, tt.con) })
			require.Error(t, err)
			assert.True(t, errors.Is(err, diagnostic.ErrTypeMismatch), err.Error())
			assert.Empty(t, hs.Constraints())
		})
	}
}

func TestExportConstraintTwice(t *testing.T) {
	ctx, sketch, sid := newSketchContext(t)
	a := sketch.AddGeometry(model.NewLineSegment(model.Vec2{}, model.Vec2{X: 1}))
	h := sketch.AddConstraint(model.NewHorizontal(model.Core(a)))
	exportAll(t, ctx, sketch, sid)

	hs, err := ctx.Doc.Sketch(sid)
	require.NoError(t, err)
	require.Len(t, hs.Constraints(), 1)

	_, err = ctx.ExportConstraint(sid, h)
	require.Error(t, err)
	assert.True(t, errors.Is(err, diagnostic.ErrInvariantViolation), err.Error())
	assert.Len(t, hs.Constraints(), 1)

	id, err := ctx.Constraints.HostID(h)
	require.NoError(t, err)
	assert.Equal(t, 0, id.Index)
}

func TestEllipseAuxiliaryOperand(t *testing.T) {
	out, sketch, sid := newSketchContext(t)
	e := sketch.AddGeometry(model.NewEllipse(model.Vec2{}, 2, 1, 0))
	p := sketch.AddGeometry(model.NewPoint(5, 0))
	sketch.AddConstraint(model.NewHorizontal(model.At(e, model.ReferenceX)))
	sketch.AddConstraint(model.NewCoincident(model.Core(p), model.At(e, model.ReferenceX)))
	sketch.AddConstraint(model.NewDistance(1.7, model.At(e, model.ReferenceFocalPlus), model.At(e, model.ReferenceCenter)))
	exportAll(t, out, sketch, sid)

	in := reimport(t, out)
	got := onlySketch(t, in)

	require.Len(t, got.Geometry, 2, "auxiliary elements are not imported as geometry")
	requireSameConstraints(t, out, in, sid, sketch.Constraints, got.Constraints)

	h := got.Constraints[0].Operands()[0]
	assert.Same(t, got.Geometry[0], h.Entity)
	assert.Equal(t, model.ReferenceX, h.Reference)
}

func TestNonStrictImport(t *testing.T) {
	out, sketch, sid := newSketchContext(t)
	a := sketch.AddGeometry(model.NewLineSegment(model.Vec2{}, model.Vec2{X: 1}))
	b := sketch.AddGeometry(model.NewLineSegment(model.Vec2{Y: 1}, model.Vec2{X: 1, Y: 1}))
	sketch.AddConstraint(model.NewParallel(model.Core(a), model.Core(b)))
	exportAll(t, out, sketch, sid)

	hs, err := out.Doc.Sketch(sid)
	require.NoError(t, err)

	_, err = hs.AddConstraint(host.ConstraintArgs{Type: host.Tangent, Args: []int{0, 1}})
	require.NoError(t, err)
	_, err = hs.AddConstraint(host.ConstraintArgs{Type: host.Block, Args: []int{0}})
	require.NoError(t, err)

	strict := NewContext(out.Doc, model.New(), nil)
	_, err = strict.ImportFeature(sid)
	assert.True(t, errors.Is(err, diagnostic.ErrUnsupportedFeature))

	lenient := NewContext(out.Doc, model.New(), nil)
	lenient.StrictConstraints = false

	f, err := lenient.ImportFeature(sid)
	require.NoError(t, err)
	assert.Len(t, f.(*model.Sketch).Constraints, 1)
	assert.Len(t, lenient.Diagnostics.Warnings, 2)
	assert.Equal(t, "unsupported_feature", lenient.Diagnostics.Warnings[0].Code)
}
