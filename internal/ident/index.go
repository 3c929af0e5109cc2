package ident

import "cad-translator/internal/diagnostic"

// UnusedArg marks an unused geometry argument slot of a host constraint.
// Arguments after the first UnusedArg carry no meaning.
const UnusedArg = -2000

// ToInternalIndex splits a host geometry argument into a list and an index.
// Non-negative arguments address the geometry list; negative ones address
// the external list, -1 being external index 0.
func ToInternalIndex(arg int) (GeometryList, int, error) {
	switch {
	case arg == UnusedArg:
		return ListGeometry, 0, diagnostic.InvariantViolation("argument slot is unused")
	case arg < UnusedArg:
		return ListGeometry, 0, diagnostic.InvariantViolation("argument %d is out of range", arg)
	case arg >= 0:
		return ListGeometry, arg, nil
	default:
		return ListExternal, -(arg + 1), nil
	}
}

// ToHostIndex is the inverse of ToInternalIndex.
func ToHostIndex(list GeometryList, index int) int {
	if list == ListExternal {
		return -index - 1
	}

	return index
}

// ElementFromArg resolves a host argument to an element of sketch.
func ElementFromArg(sketch FeatureID, arg int) (SketchElementID, error) {
	list, index, err := ToInternalIndex(arg)
	if err != nil {
		return SketchElementID{}, err
	}

	return SketchElementID{Feature: sketch, List: list, Index: index}, nil
}

// Arg returns the host argument addressing e.
func (id SketchElementID) Arg() int {
	return ToHostIndex(id.List, id.Index)
}
