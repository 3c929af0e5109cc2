package host

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"cad-translator/internal/ident"
)

func TestAddObjectNamesAreUnique(t *testing.T) {
	doc := NewMemoryDocument("test")

	a, err := doc.AddObject(TypeSketch, "")
	require.NoError(t, err)
	b, err := doc.AddObject(TypeSketch, "Sketch")
	require.NoError(t, err)
	c, err := doc.AddObject(TypeSketch, "Sketch")
	require.NoError(t, err)

	assert.Equal(t, "Sketch", a.Name)
	assert.Equal(t, "Sketch001", b.Name)
	assert.Equal(t, "Sketch002", c.Name)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestAddObjectRejectsGeneratedTypes(t *testing.T) {
	doc := NewMemoryDocument("test")

	_, err := doc.AddObject(TypeLine, "")
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = doc.AddObject("Part::Box", "")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestOriginGeneratesSubObjects(t *testing.T) {
	doc := NewMemoryDocument("test")

	origin, err := doc.AddObject(TypeOrigin, "")
	require.NoError(t, err)
	require.Len(t, origin.Group, 6)

	for _, role := range OriginRoles {
		id, err := doc.SubObject(origin.ID, role)
		require.NoError(t, err, role)

		obj, err := doc.Object(id)
		require.NoError(t, err)
		assert.Equal(t, origin.ID, obj.Parent)
		assert.Equal(t, role, obj.Role)
	}

	_, err = doc.SubObject(origin.ID, "W_Axis")
	assert.True(t, errors.Is(err, ErrNoSuchObject))
}

func TestAddToGroup(t *testing.T) {
	doc := NewMemoryDocument("test")
	body, _ := doc.AddObject(TypeBody, "")
	origin, _ := doc.AddObject(TypeOrigin, "")
	sketch, _ := doc.AddObject(TypeSketch, "")

	require.NoError(t, doc.AddToGroup(body.ID, origin.ID))
	require.NoError(t, doc.AddToGroup(body.ID, sketch.ID))
	assert.Equal(t, []ident.FeatureID{origin.ID, sketch.ID}, body.Group)
	assert.Equal(t, origin.ID, body.Origin)

	assert.True(t, errors.Is(doc.AddToGroup(body.ID, sketch.ID), ErrInvalidArgument))
	assert.True(t, errors.Is(doc.AddToGroup(sketch.ID, origin.ID), ErrInvalidArgument))
}

func TestSketchHasImplicitAxes(t *testing.T) {
	doc := NewMemoryDocument("test")
	obj, _ := doc.AddObject(TypeSketch, "")
	sketch, err := doc.Sketch(obj.ID)
	require.NoError(t, err)

	ext := sketch.ExternalGeometry()
	require.Len(t, ext, 2)
	assert.Equal(t, Vector{X: 1}, ext[0].EndPoint)
	assert.Equal(t, Vector{Y: 1}, ext[1].EndPoint)

	_, err = doc.Sketch(999)
	assert.True(t, errors.Is(err, ErrNoSuchObject))
}

func newTestSketch(t *testing.T) *Sketch {
	t.Helper()

	doc := NewMemoryDocument("test")
	obj, err := doc.AddObject(TypeSketch, "")
	require.NoError(t, err)

	sketch, err := doc.Sketch(obj.ID)
	require.NoError(t, err)

	return sketch
}

func line(x0, y0, x1, y1 float64) Geometry {
	return Geometry{Type: GeomLineSegment, StartPoint: Vector{X: x0, Y: y0}, EndPoint: Vector{X: x1, Y: y1}}
}

func TestExposeInternalGeometry(t *testing.T) {
	sketch := newTestSketch(t)

	idx, err := sketch.AddGeometry(Geometry{
		Type: GeomEllipse, MajorRadius: 2, MinorRadius: 1,
	})
	require.NoError(t, err)

	added, err := sketch.ExposeInternalGeometry(idx)
	require.NoError(t, err)
	assert.Equal(t, 4, added)
	assert.Equal(t, 5, sketch.GeometryCount())

	geo := sketch.Geometry()
	assert.Equal(t, Vector{X: -2}, geo[1].StartPoint)
	assert.Equal(t, Vector{X: 2}, geo[1].EndPoint)
	assert.Equal(t, Vector{Y: 1}, geo[2].EndPoint)
	assert.InDelta(t, math.Sqrt(3), geo[3].Point.X, 1e-12)
	assert.InDelta(t, -math.Sqrt(3), geo[4].Point.X, 1e-12)

	for _, g := range geo[1:] {
		assert.True(t, g.Construction)
	}

	constraints := sketch.Constraints()
	require.Len(t, constraints, 4)

	for i, c := range constraints {
		assert.Equal(t, InternalAlignment, c.Type)
		assert.Equal(t, idx+1+i, c.First)
		assert.Equal(t, idx, c.Second)
		assert.Equal(t, EllipseAlignments[i], c.AlignmentType)
	}

	again, err := sketch.ExposeInternalGeometry(idx)
	require.NoError(t, err)
	assert.Zero(t, again)

	_, err = sketch.ExposeInternalGeometry(1)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestAddConstraintInterpretation(t *testing.T) {
	sketch := newTestSketch(t)
	_, err := sketch.AddGeometry(line(0, 0, 1, 0))
	require.NoError(t, err)
	_, err = sketch.AddGeometry(line(0, 1, 1, 1))
	require.NoError(t, err)

	tests := []struct {
		name    string
		args    ConstraintArgs
		wantErr bool
		check   func(t *testing.T, c Constraint)
	}{
		{
			name: "horizontal one edge",
			args: ConstraintArgs{Type: Horizontal, Args: []int{0}},
			check: func(t *testing.T, c Constraint) {
				assert.Equal(t, []int{0, ident.UnusedArg, ident.UnusedArg}, c.Args())
			},
		},
		{
			name: "coincident on the root point",
			args: ConstraintArgs{Type: Coincident, Args: []int{0, 1, -1, 1}},
			check: func(t *testing.T, c Constraint) {
				assert.Equal(t, -1, c.Second)
				assert.Equal(t, ident.SubpartStart, c.SecondPos)
			},
		},
		{
			name: "point to line distance",
			args: ConstraintArgs{Type: Distance, Args: []int{0, 1, 1}}.WithValue(1),
			check: func(t *testing.T, c Constraint) {
				assert.Equal(t, ident.SubpartStart, c.FirstPos)
				assert.Equal(t, 1, c.Second)
				assert.Equal(t, ident.SubpartEdge, c.SecondPos)
				assert.Equal(t, ident.UnusedArg, c.Third)
			},
		},
		{
			name:    "edge to edge distance is rejected",
			args:    ConstraintArgs{Type: Distance, Args: []int{0, 0, 1, 0}}.WithValue(1),
			wantErr: true,
		},
		{
			name:    "radius without value",
			args:    ConstraintArgs{Type: Radius, Args: []int{0}},
			wantErr: true,
		},
		{
			name:    "unknown geometry",
			args:    ConstraintArgs{Type: Parallel, Args: []int{0, 7}},
			wantErr: true,
		},
		{
			name:    "unknown external geometry",
			args:    ConstraintArgs{Type: Parallel, Args: []int{0, -3}},
			wantErr: true,
		},
		{
			name:    "subpart out of range",
			args:    ConstraintArgs{Type: Coincident, Args: []int{0, 1, 1, 9}},
			wantErr: true,
		},
		{
			name: "symmetric",
			args: ConstraintArgs{Type: Symmetric, Args: []int{0, 1, 0, 2, 1}},
			check: func(t *testing.T, c Constraint) {
				assert.Equal(t, 1, c.Third)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(sketch.Constraints())

			idx, err := sketch.AddConstraint(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidArgument))
				assert.Len(t, sketch.Constraints(), before)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, before, idx)

			c, err := sketch.ConstraintAt(idx)
			require.NoError(t, err)
			tt.check(t, c)
		})
	}
}

func TestContentRoundTrip(t *testing.T) {
	c := Constraint{
		Type:          InternalAlignment,
		First:         3,
		FirstPos:      ident.SubpartStart,
		Second:        0,
		Third:         ident.UnusedArg,
		AlignmentType: EllipseFocus1,
	}

	content := c.Content()
	assert.Contains(t, content, `Type="15"`)
	assert.Contains(t, content, `InternalAlignmentType="3"`)

	back, err := DecodeContent(content)
	require.NoError(t, err)
	assert.Equal(t, c, back)

	_, err = DecodeContent(`<Constrain Type="99" Value="0"/>`)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = DecodeContent(`not xml`)
	assert.Error(t, err)
}

func TestMarshalSnapshot(t *testing.T) {
	doc := NewMemoryDocument("snap")
	obj, _ := doc.AddObject(TypeSketch, "")
	sketch, _ := doc.Sketch(obj.ID)
	_, err := sketch.AddGeometry(line(0, 0, 1, 0))
	require.NoError(t, err)
	_, err = sketch.AddConstraint(ConstraintArgs{Type: Horizontal, Args: []int{0}})
	require.NoError(t, err)

	data, err := doc.Marshal()
	require.NoError(t, err)

	var snap Snapshot
	require.NoError(t, yaml.Unmarshal(data, &snap))
	require.Len(t, snap.Objects, 1)
	assert.Equal(t, "Sketch", snap.Objects[0].Name)
	require.Len(t, snap.Objects[0].Constraints, 1)
	assert.Equal(t, Horizontal, snap.Objects[0].Constraints[0].Type)
	assert.Contains(t, snap.Objects[0].Constraints[0].Content, `Type="2"`)
}
