package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cad-translator/internal/diagnostic"
	"cad-translator/internal/ident"
	"cad-translator/internal/model"
)

func originTable(origin ident.FeatureID) *FeatureTable {
	table := ident.NewTable[ident.HostID](origin).Set(model.ReferenceOrigin, origin)
	refs := []model.ConstraintReference{
		model.ReferenceX, model.ReferenceY, model.ReferenceZ,
		model.ReferenceXY, model.ReferenceXZ, model.ReferenceYZ,
	}

	for i, ref := range refs {
		table.Set(ref, origin+ident.FeatureID(i+1))
	}

	return table
}

func TestFeatureRegistryCoordinateSystem(t *testing.T) {
	r := NewFeatureRegistry()
	cs := model.NewCoordinateSystem("origin")

	require.NoError(t, r.Link(cs, 10, originTable(10)))

	id, err := r.FeatureID(cs)
	require.NoError(t, err)
	assert.Equal(t, ident.FeatureID(10), id)

	refs, err := r.References(10)
	require.NoError(t, err)
	assert.Len(t, refs, 8)

	// ORIGIN shares the core host id, so the seven distinct ids are CORE plus six sub-objects.
	distinct := make(map[ident.HostID]struct{})
	for _, e := range r.Entries()[0].Table {
		distinct[e.ID] = struct{}{}
	}
	assert.Len(t, distinct, 7)

	zAxis, err := r.HostID(cs, model.ReferenceZ)
	require.NoError(t, err)
	assert.Equal(t, ident.HostID(ident.FeatureID(13)), zAxis)

	f, ref, err := r.Internal(ident.FeatureID(13))
	require.NoError(t, err)
	assert.Same(t, cs, f)
	assert.Equal(t, model.ReferenceZ, ref)

	f, ref, err = r.Internal(ident.FeatureID(10))
	require.NoError(t, err)
	assert.Same(t, cs, f)
	assert.Equal(t, model.ReferenceCore, ref)

	at, err := r.HostObjectAt(ident.FeatureID(10).Sub(model.ReferenceXY))
	require.NoError(t, err)
	assert.Equal(t, ident.HostID(ident.FeatureID(14)), at)
}

func TestFeatureRegistrySketch(t *testing.T) {
	r := NewFeatureRegistry()
	sketch := model.NewSketch("profile")
	table := ident.NewTable[ident.HostID](ident.FeatureID(3)).
		Set(model.ReferenceOrigin, ident.External(3, 0).Sub(model.ReferenceStart)).
		Set(model.ReferenceX, ident.External(3, 0).Sub(model.ReferenceCore)).
		Set(model.ReferenceY, ident.External(3, 1).Sub(model.ReferenceCore))

	require.NoError(t, r.Link(sketch, 3, table))

	y, err := r.HostID(sketch, model.ReferenceY)
	require.NoError(t, err)
	assert.Equal(t, ident.HostID(ident.External(3, 1).Sub(model.ReferenceCore)), y)

	f, ref, err := r.Internal(ident.External(3, 0).Sub(model.ReferenceCore))
	require.NoError(t, err)
	assert.Same(t, sketch, f)
	assert.Equal(t, model.ReferenceX, ref)

	_, err = r.HostID(sketch, model.ReferenceXY)
	assert.True(t, errors.Is(err, diagnostic.ErrInvariantViolation))
}

func TestFeatureRegistryRejects(t *testing.T) {
	r := NewFeatureRegistry()
	pad := model.NewExtrude("pad", nil, 5)

	t.Run("lookup before link", func(t *testing.T) {
		_, err := r.FeatureID(pad)
		assert.True(t, errors.Is(err, diagnostic.ErrLookupFailure))

		_, err = r.References(99)
		assert.True(t, errors.Is(err, diagnostic.ErrLookupFailure))

		_, _, err = r.Internal(ident.FeatureID(99))
		assert.True(t, errors.Is(err, diagnostic.ErrLookupFailure))
	})

	t.Run("missing core", func(t *testing.T) {
		var table FeatureTable
		table.Set(model.ReferenceX, ident.FeatureID(4))

		err := r.Link(pad, 4, &table)
		assert.True(t, errors.Is(err, diagnostic.ErrInvariantViolation))
	})

	t.Run("extra entries on an extrude", func(t *testing.T) {
		table := ident.NewTable[ident.HostID](ident.FeatureID(4)).Set(model.ReferenceX, ident.FeatureID(5))

		err := r.Link(pad, 4, table)
		assert.True(t, errors.Is(err, diagnostic.ErrInvariantViolation))
	})

	t.Run("sketch without axes", func(t *testing.T) {
		err := r.Link(model.NewSketch("bare"), 6, ident.NewTable[ident.HostID](ident.FeatureID(6)))
		assert.True(t, errors.Is(err, diagnostic.ErrInvariantViolation))
	})

	t.Run("relink", func(t *testing.T) {
		require.NoError(t, r.Link(pad, 4, ident.NewTable[ident.HostID](ident.FeatureID(4))))

		err := r.Link(pad, 7, ident.NewTable[ident.HostID](ident.FeatureID(7)))
		assert.True(t, errors.Is(err, diagnostic.ErrInvariantViolation))

		other := model.NewFeatureContainer("body")
		err = r.Link(other, 4, ident.NewTable[ident.HostID](ident.FeatureID(4)))
		assert.True(t, errors.Is(err, diagnostic.ErrInvariantViolation))
		assert.Equal(t, 1, r.Len())
	})
}

type unknownFeature struct{ model.Feature }

func (unknownFeature) Kind() model.FeatureKind { return model.FeatureKindUnknown }

func TestFeatureRegistryTypeMismatch(t *testing.T) {
	r := NewFeatureRegistry()

	err := r.Link(unknownFeature{}, 1, ident.NewTable[ident.HostID](ident.FeatureID(1)))
	assert.True(t, errors.Is(err, diagnostic.ErrTypeMismatch))
}
