package translate

import (
	"cad-translator/internal/diagnostic"
	"cad-translator/internal/ident"
	"cad-translator/utils"
)

// angleEnd names one endpoint operand of a four argument host Angle: which
// line (0 for A, 1 for B) and which end.
type angleEnd struct {
	line int
	end  ident.Subpart
}

// quadrants lists, per quadrant, the operand order a user placing the angle
// clockwise from A's start would produce. The end pairs are unique, so the
// quadrant can be read back from the subparts alone.
var quadrants = [4][2]angleEnd{
	{{0, ident.SubpartStart}, {1, ident.SubpartStart}},
	{{1, ident.SubpartStart}, {0, ident.SubpartEnd}},
	{{0, ident.SubpartEnd}, {1, ident.SubpartEnd}},
	{{1, ident.SubpartEnd}, {0, ident.SubpartStart}},
}

// quadrantArgs returns the host arguments of an angle between lines a and b
// in the given quadrant.
func quadrantArgs(quadrant int, a, b ident.SketchElementID) ([]int, error) {
	if !utils.IsInRange(1, quadrant, len(quadrants)) {
		return nil, diagnostic.InvariantViolation("angle quadrant %d is not in 1..4", quadrant)
	}

	lines := [2]ident.SketchElementID{a, b}
	order := quadrants[quadrant-1]

	return []int{
		lines[order[0].line].Arg(), int(order[0].end),
		lines[order[1].line].Arg(), int(order[1].end),
	}, nil
}

// quadrantOf recovers the quadrant from the subparts of a host Angle and
// reports whether the first operand is line A.
func quadrantOf(first, second ident.Subpart) (quadrant int, firstIsA bool, err error) {
	for i, q := range quadrants {
		if q[0].end == first && q[1].end == second {
			return i + 1, q[0].line == 0, nil
		}
	}

	return 0, false, diagnostic.InvariantViolation("angle subparts %s, %s name no quadrant", first, second)
}
