package ident

import (
	"cad-translator/internal/diagnostic"
	"cad-translator/internal/model"
)

// Table maps ConstraintReference to a host id, keeping insertion order. The
// first reference set for a given host id is its primary reference.
type Table[V comparable] struct {
	refs []model.ConstraintReference
	ids  map[model.ConstraintReference]V
}

// NewTable returns a table whose CORE entry is core.
func NewTable[V comparable](core V) *Table[V] {
	t := &Table[V]{}
	t.Set(model.ReferenceCore, core)

	return t
}

// Set maps r to v. Re-setting r keeps its original position.
func (t *Table[V]) Set(r model.ConstraintReference, v V) *Table[V] {
	if t.ids == nil {
		t.ids = make(map[model.ConstraintReference]V)
	}

	if _, exists := t.ids[r]; !exists {
		t.refs = append(t.refs, r)
	}

	t.ids[r] = v

	return t
}

// Get returns the host id for r.
func (t *Table[V]) Get(r model.ConstraintReference) (V, bool) {
	v, ok := t.ids[r]
	return v, ok
}

// Core returns the CORE entry.
func (t *Table[V]) Core() (V, bool) {
	return t.Get(model.ReferenceCore)
}

// References returns the references in insertion order.
func (t *Table[V]) References() []model.ConstraintReference {
	out := make([]model.ConstraintReference, len(t.refs))
	copy(out, t.refs)

	return out
}

// Len returns the number of references.
func (t *Table[V]) Len() int {
	return len(t.refs)
}

// Distinct returns the host ids in order with duplicates removed, each
// paired with its primary reference.
func (t *Table[V]) Distinct() []Entry[V] {
	seen := make(map[V]struct{}, len(t.refs))
	out := make([]Entry[V], 0, len(t.refs))

	for _, r := range t.refs {
		v := t.ids[r]
		if _, dup := seen[v]; dup {
			continue
		}

		seen[v] = struct{}{}
		out = append(out, Entry[V]{Reference: r, ID: v})
	}

	return out
}

// Entries returns every (reference, id) pair in order.
func (t *Table[V]) Entries() []Entry[V] {
	out := make([]Entry[V], 0, len(t.refs))
	for _, r := range t.refs {
		out = append(out, Entry[V]{Reference: r, ID: t.ids[r]})
	}

	return out
}

// Validate checks that the table has a CORE entry.
func (t *Table[V]) Validate() error {
	if t == nil {
		return diagnostic.InvariantViolation("sub-reference table is nil")
	}

	if _, ok := t.Core(); !ok {
		return diagnostic.InvariantViolation("sub-reference table has no %s entry", model.ReferenceCore)
	}

	return nil
}

// Entry is one row of a Table.
type Entry[V comparable] struct {
	Reference model.ConstraintReference
	ID        V
}
