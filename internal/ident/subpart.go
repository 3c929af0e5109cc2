package ident

import (
	"cad-translator/internal/common"
	"cad-translator/internal/diagnostic"
	"cad-translator/internal/model"
)

// Subpart is the host's position tag for a constraint operand.
type Subpart int

const (
	SubpartEdge  Subpart = 0
	SubpartStart Subpart = 1
	SubpartEnd   Subpart = 2
	SubpartMid   Subpart = 3
)

// String returns a human-readable subpart name.
func (s Subpart) String() string {
	switch s {
	case SubpartEdge:
		return "edge"
	case SubpartStart:
		return "start"
	case SubpartEnd:
		return "end"
	case SubpartMid:
		return "mid"
	default:
		return common.UnknownStr
	}
}

// SubpartOf maps an element-level reference to the host subpart tag.
// Only CORE, START, END and CENTER exist at element level.
func SubpartOf(r model.ConstraintReference) (Subpart, error) {
	switch r {
	case model.ReferenceCore:
		return SubpartEdge, nil
	case model.ReferenceStart:
		return SubpartStart, nil
	case model.ReferenceEnd:
		return SubpartEnd, nil
	case model.ReferenceCenter:
		return SubpartMid, nil
	default:
		return SubpartEdge, diagnostic.InvariantViolation("reference %s has no host subpart", r)
	}
}

// Reference maps a host subpart tag back to an element-level reference.
func (s Subpart) Reference() (model.ConstraintReference, error) {
	switch s {
	case SubpartEdge:
		return model.ReferenceCore, nil
	case SubpartStart:
		return model.ReferenceStart, nil
	case SubpartEnd:
		return model.ReferenceEnd, nil
	case SubpartMid:
		return model.ReferenceCenter, nil
	default:
		return model.ReferenceCore, diagnostic.InvariantViolation("unknown host subpart %d", int(s))
	}
}

// Subpart returns the host tag of a sub-geometry id.
func (id SubGeometryID) Subpart() (Subpart, error) {
	return SubpartOf(id.Reference)
}
