package translate

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"cad-translator/internal/diagnostic"
	"cad-translator/internal/host"
	"cad-translator/internal/model"
)

var geometryOpts = cmp.Options{
	cmpopts.IgnoreUnexported(model.Point{}, model.LineSegment{}, model.Circle{}, model.CircularArc{}, model.Ellipse{}),
	cmpopts.EquateApprox(0, 1e-9),
}

func drawVec(t *rapid.T, label string) model.Vec2 {
	return model.Vec2{
		X: rapid.Float64Range(-1e3, 1e3).Draw(t, label+".x"),
		Y: rapid.Float64Range(-1e3, 1e3).Draw(t, label+".y"),
	}
}

func drawGeometry(t *rapid.T) model.Geometry {
	switch rapid.IntRange(0, 4).Draw(t, "kind") {
	case 0:
		p := drawVec(t, "p")
		return model.NewPoint(p.X, p.Y)
	case 1:
		start := drawVec(t, "start")
		return model.NewLineSegment(start, start.Add(model.Vec2{X: 1}))
	case 2:
		return model.NewCircle(drawVec(t, "c"), rapid.Float64Range(0.1, 100).Draw(t, "r"))
	case 3:
		return model.NewCircularArc(drawVec(t, "c"), rapid.Float64Range(0.1, 100).Draw(t, "r"),
			rapid.Float64Range(0, 3).Draw(t, "a0"), rapid.Float64Range(3, 6).Draw(t, "a1"))
	default:
		minor := rapid.Float64Range(0.1, 10).Draw(t, "minor")
		return model.NewEllipse(drawVec(t, "c"), minor+rapid.Float64Range(0, 10).Draw(t, "extra"), minor,
			rapid.Float64Range(-3, 3).Draw(t, "angle"))
	}
}

func TestGeometryRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		g := drawGeometry(rt)

		hg, err := GeometryToHost(g)
		if err != nil {
			rt.Fatalf("to host: %v", err)
		}

		back, err := GeometryToInternal(hg)
		if err != nil {
			rt.Fatalf("to internal: %v", err)
		}

		if diff := cmp.Diff(g, back, geometryOpts); diff != "" {
			rt.Fatalf("round trip mismatch (-want +got):\n%s", diff)
		}
	})
}

type strayGeometry struct{ model.Geometry }

func (strayGeometry) Kind() model.GeometryKind { return model.GeometryKindUnknown }

func TestGeometryTypeMismatch(t *testing.T) {
	_, err := GeometryToHost(strayGeometry{})
	assert.True(t, errors.Is(err, diagnostic.ErrTypeMismatch))

	_, err = GeometryToInternal(host.Geometry{Type: "Part::GeomBSplineCurve"})
	assert.True(t, errors.Is(err, diagnostic.ErrTypeMismatch))
}

func TestExportEllipseExposesAuxiliary(t *testing.T) {
	ctx, sketch, sid := newSketchContext(t)
	e := sketch.AddGeometry(model.NewEllipse(model.Vec2{}, 2, 1, 0)).(*model.Ellipse)

	id, err := ctx.ExportGeometry(sid, e)
	require.NoError(t, err)

	hs, err := ctx.Doc.Sketch(sid)
	require.NoError(t, err)
	assert.Equal(t, 5, hs.GeometryCount())
	assert.Len(t, hs.Constraints(), 4)

	for _, ref := range model.References(model.GeometryKindEllipse) {
		sub, err := ctx.Geometry.HostID(e, ref)
		require.NoError(t, err, ref)

		back, backRef, err := ctx.Geometry.Internal(sub)
		require.NoError(t, err, ref)
		assert.Same(t, e, back)
		assert.Equal(t, ref, backRef)
	}

	major, err := ctx.Geometry.HostID(e, model.ReferenceXMax)
	require.NoError(t, err)

	line, err := hs.GeometryAt(major.Element.List, major.Element.Index)
	require.NoError(t, err)
	assert.True(t, line.Construction)
	assert.InDelta(t, 2, line.EndPoint.X, 1e-12)
	assert.NotEqual(t, id, major.Element)
}

func TestExportEllipseWithoutExposure(t *testing.T) {
	ctx, sketch, sid := newSketchContext(t)
	ctx.ExposeInternalGeometry = false
	e := sketch.AddGeometry(model.NewEllipse(model.Vec2{}, 2, 1, 0))

	_, err := ctx.ExportGeometry(sid, e)
	require.NoError(t, err)

	_, err = ctx.Geometry.HostID(e, model.ReferenceCenter)
	require.NoError(t, err)

	_, err = ctx.Geometry.HostID(e, model.ReferenceFocalPlus)
	assert.True(t, errors.Is(err, diagnostic.ErrInvariantViolation))
}

func TestExportGeometryTwice(t *testing.T) {
	ctx, sketch, sid := newSketchContext(t)
	e := sketch.AddGeometry(model.NewEllipse(model.Vec2{}, 2, 1, 0))
	exportAll(t, ctx, sketch, sid)

	hs, err := ctx.Doc.Sketch(sid)
	require.NoError(t, err)

	geometry, constraints := hs.GeometryCount(), len(hs.Constraints())

	_, err = ctx.ExportGeometry(sid, e)
	require.Error(t, err)
	assert.True(t, errors.Is(err, diagnostic.ErrInvariantViolation), err.Error())
	assert.Equal(t, geometry, hs.GeometryCount())
	assert.Len(t, hs.Constraints(), constraints)
}
