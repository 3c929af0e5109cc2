package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConstraintReference(t *testing.T) {
	tests := []struct {
		in   string
		want ConstraintReference
	}{
		{"", ReferenceCore},
		{"core", ReferenceCore},
		{"X_MAX", ReferenceXMax},
		{"focal-plus", ReferenceFocalPlus},
		{" yz ", ReferenceYZ},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseConstraintReference(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseConstraintReference("diagonal")
	assert.Error(t, err)
}

func TestConstraintReferenceStringRoundTrip(t *testing.T) {
	for r := range ConstraintReference(ReferenceTotal) {
		parsed, err := ParseConstraintReference(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}

	assert.Equal(t, "ConstraintReference(99)", ConstraintReference(99).String())
}

func TestSupports(t *testing.T) {
	assert.True(t, Supports(GeometryKindLineSegment, ReferenceStart))
	assert.False(t, Supports(GeometryKindCircle, ReferenceStart))
	assert.True(t, Supports(GeometryKindEllipse, ReferenceFocalMinus))
	assert.False(t, Supports(GeometryKindPoint, ReferenceCenter))
	assert.Nil(t, References(GeometryKindUnknown))
}

func TestModelWalk(t *testing.T) {
	m := New()
	body := NewFeatureContainer("Body")
	m.Add(body)

	sketch := NewSketch("Sketch")
	body.Add(sketch)
	line := sketch.AddGeometry(NewLineSegment(Vec2{}, Vec2{X: 1}))
	horizontal := sketch.AddConstraint(NewHorizontal(Core(line)))
	pad := body.Add(NewExtrude("Pad", sketch, 5))

	var seen []string
	require.NoError(t, m.Walk(func(f Feature) error {
		seen = append(seen, f.Label())
		return nil
	}))
	assert.Equal(t, []string{"Body", "Sketch", "Pad"}, seen)

	assert.Equal(t, []Geometry{line}, sketch.Geometry)
	assert.Equal(t, []Constraint{horizontal}, sketch.Constraints)
	assert.Len(t, m.Sketches(), 1)
	assert.Equal(t, []Feature{sketch}, Dependencies(pad.(*Extrude)))
}

func TestCoordinateSystemZAxis(t *testing.T) {
	cs := NewCoordinateSystem("cs")
	assert.Equal(t, Vec3{Z: 1}, cs.ZAxis())
}

func ExampleConstraintKind_Unit() {
	fmt.Println(ConstraintKindAngle.Unit(), ConstraintKindRadius.Unit(), ConstraintKindEqual.Unit() == "")
	// Output: deg mm true
}
