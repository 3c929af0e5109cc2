package translate

import (
	"cad-translator/internal/ident"
	"cad-translator/internal/model"
)

// The host's Distance between two whole lines does not measure line to
// line. It measures from the first line's start point to the second line's
// edge. A four argument request for that pair is therefore rewritten to the
// three argument point-to-edge form the host actually evaluates, and the
// same form is read back as a line-to-line distance.

// isLineToLineDistance reports whether a Distance between a and b hits the
// host defect.
func isLineToLineDistance(kind model.ConstraintKind, a, b model.Ref) bool {
	return kind == model.ConstraintKindDistance && isWholeLine(a) && isWholeLine(b)
}

// lineToLineDistanceArgs is the argument list emitted for the defect.
func lineToLineDistanceArgs(a, b operand) []int {
	return []int{a.arg, int(ident.SubpartStart), b.arg}
}

// isDefectForm reports whether imported Distance operands are the shape
// lineToLineDistanceArgs produces: a line's START and another line's edge.
func isDefectForm(kind model.ConstraintKind, a, b model.Ref) bool {
	return kind == model.ConstraintKindDistance &&
		isLine(a) && a.Reference == model.ReferenceStart &&
		isWholeLine(b) && a.Entity != b.Entity
}
