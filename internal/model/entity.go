package model

import "github.com/google/uuid"

// Entity is anything with a stable unique id inside the model.
type Entity interface {
	UID() string
}

type base struct {
	uid string
}

func newBase() base {
	return base{uid: uuid.NewString()}
}

// UID returns the entity unique id.
func (b base) UID() string {
	return b.uid
}

// Ref names an entity together with the sub-part that takes part in a
// constraint or correspondence.
type Ref struct {
	Entity    Entity
	Reference ConstraintReference
}

// At builds a Ref for the given entity and reference.
func At(e Entity, r ConstraintReference) Ref {
	return Ref{Entity: e, Reference: r}
}

// Core builds a Ref to the whole entity.
func Core(e Entity) Ref {
	return Ref{Entity: e, Reference: ReferenceCore}
}

// IsZero reports whether the ref points at nothing.
func (r Ref) IsZero() bool {
	return r.Entity == nil
}
