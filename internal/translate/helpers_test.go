package translate

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"cad-translator/internal/host"
	"cad-translator/internal/ident"
	"cad-translator/internal/model"
)

func newContext(t *testing.T) *Context {
	t.Helper()

	return NewContext(host.NewMemoryDocument(t.Name()), model.New(), zaptest.NewLogger(t))
}

// newSketchContext returns a context holding one exported, empty sketch.
func newSketchContext(t *testing.T) (*Context, *model.Sketch, ident.FeatureID) {
	t.Helper()

	ctx := newContext(t)
	sketch := model.NewSketch("sketch")
	ctx.Model.Add(sketch)

	sid, err := ctx.ExportFeature(sketch)
	require.NoError(t, err)

	return ctx, sketch, sid
}

// reimport imports every object of ctx's document into a fresh context.
func reimport(t *testing.T, ctx *Context) *Context {
	t.Helper()

	in := NewContext(ctx.Doc, model.New(), zaptest.NewLogger(t))

	for _, obj := range ctx.Doc.Objects() {
		if obj.Type == host.TypeLine || obj.Type == host.TypePlane {
			continue
		}

		f, err := in.ImportFeature(obj.ID)
		require.NoError(t, err, obj.Name)

		in.Model.Add(f)
	}

	return in
}

func exportAll(t *testing.T, ctx *Context, sketch *model.Sketch, sid ident.FeatureID) {
	t.Helper()

	for _, g := range sketch.Geometry {
		_, err := ctx.ExportGeometry(sid, g)
		require.NoError(t, err)
	}

	for _, c := range sketch.Constraints {
		_, err := ctx.ExportConstraint(sid, c)
		require.NoError(t, err, c.Kind())
	}
}

func onlySketch(t *testing.T, ctx *Context) *model.Sketch {
	t.Helper()

	sketches := ctx.Model.Sketches()
	require.Len(t, sketches, 1)

	return sketches[0]
}
