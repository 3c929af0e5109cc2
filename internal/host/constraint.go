package host

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"cad-translator/internal/common"
	"cad-translator/internal/ident"
)

// ConstraintType is the host name of a sketch constraint type.
type ConstraintType string

const (
	Coincident        ConstraintType = "Coincident"
	Horizontal        ConstraintType = "Horizontal"
	Vertical          ConstraintType = "Vertical"
	Parallel          ConstraintType = "Parallel"
	Tangent           ConstraintType = "Tangent"
	Distance          ConstraintType = "Distance"
	DistanceX         ConstraintType = "DistanceX"
	DistanceY         ConstraintType = "DistanceY"
	Angle             ConstraintType = "Angle"
	Perpendicular     ConstraintType = "Perpendicular"
	Radius            ConstraintType = "Radius"
	Equal             ConstraintType = "Equal"
	PointOnObject     ConstraintType = "PointOnObject"
	Symmetric         ConstraintType = "Symmetric"
	InternalAlignment ConstraintType = "InternalAlignment"
	SnellsLaw         ConstraintType = "SnellsLaw"
	Block             ConstraintType = "Block"
	Diameter          ConstraintType = "Diameter"
	Weight            ConstraintType = "Weight"
)

// typeCodes are the numeric type codes the host writes into Content.
var typeCodes = map[ConstraintType]int{
	Coincident:        1,
	Horizontal:        2,
	Vertical:          3,
	Parallel:          4,
	Tangent:           5,
	Distance:          6,
	DistanceX:         7,
	DistanceY:         8,
	Angle:             9,
	Perpendicular:     10,
	Radius:            11,
	Equal:             12,
	PointOnObject:     13,
	Symmetric:         14,
	InternalAlignment: 15,
	SnellsLaw:         16,
	Block:             17,
	Diameter:          18,
	Weight:            19,
}

// TypeFromCode returns the constraint type of a numeric Content code.
func TypeFromCode(code int) (ConstraintType, bool) {
	for t, c := range typeCodes {
		if c == code {
			return t, true
		}
	}

	return "", false
}

// AlignmentType identifies what an InternalAlignment constraint ties.
type AlignmentType int

const (
	AlignmentUndef AlignmentType = iota
	EllipseMajorDiameter
	EllipseMinorDiameter
	EllipseFocus1
	EllipseFocus2
)

// EllipseAlignments lists the alignment types an ellipse exposes, in the
// order the host creates them.
var EllipseAlignments = []AlignmentType{
	EllipseMajorDiameter, EllipseMinorDiameter, EllipseFocus1, EllipseFocus2,
}

// String returns the host name of the alignment type.
func (a AlignmentType) String() string {
	switch a {
	case AlignmentUndef:
		return "Undef"
	case EllipseMajorDiameter:
		return "EllipseMajorDiameter"
	case EllipseMinorDiameter:
		return "EllipseMinorDiameter"
	case EllipseFocus1:
		return "EllipseFocus1"
	case EllipseFocus2:
		return "EllipseFocus2"
	default:
		return common.UnknownStr
	}
}

// Constraint is a host sketch constraint record. Unused geometry slots hold
// ident.UnusedArg.
type Constraint struct {
	Type          ConstraintType `yaml:"type"`
	Name          string         `yaml:"name,omitempty"`
	First         int            `yaml:"first"`
	FirstPos      ident.Subpart  `yaml:"first_pos"`
	Second        int            `yaml:"second"`
	SecondPos     ident.Subpart  `yaml:"second_pos"`
	Third         int            `yaml:"third"`
	ThirdPos      ident.Subpart  `yaml:"third_pos"`
	Value         float64        `yaml:"value,omitempty"`
	AlignmentType AlignmentType  `yaml:"alignment,omitempty"`
}

// Args returns the raw geometry arguments in slot order.
func (c Constraint) Args() []int {
	return []int{c.First, c.Second, c.Third}
}

// Positions returns the raw subpart tags in slot order.
func (c Constraint) Positions() []ident.Subpart {
	return []ident.Subpart{c.FirstPos, c.SecondPos, c.ThirdPos}
}

// ConstraintArgs is a constraint creation request as the scripting API takes
// it: a type, geometry indices interleaved with subpart tags, and a value.
// How Args is read depends on the type and on len(Args).
type ConstraintArgs struct {
	Type      ConstraintType
	Args      []int
	Value     float64
	HasValue  bool
	Alignment AlignmentType
}

// WithValue returns a copy carrying value.
func (a ConstraintArgs) WithValue(value float64) ConstraintArgs {
	a.Value = value
	a.HasValue = true

	return a
}

func (a ConstraintArgs) invalid(reason string) error {
	return fmt.Errorf("%w: %s with %d arguments: %s", ErrInvalidArgument, a.Type, len(a.Args), reason)
}

// interpret turns creation arguments into a constraint record the way the
// host does. Geometry indices are checked by the caller.
func (a ConstraintArgs) interpret() (Constraint, error) {
	c := Constraint{
		Type:   a.Type,
		First:  ident.UnusedArg,
		Second: ident.UnusedArg,
		Third:  ident.UnusedArg,
		Value:  a.Value,
	}

	n := len(a.Args)
	args := a.Args
	pos := func(i int) ident.Subpart { return ident.Subpart(args[i]) }

	oneEdge := func() { c.First = args[0] }
	twoEdges := func() { c.First, c.Second = args[0], args[1] }
	twoPoints := func() { c.First, c.FirstPos, c.Second, c.SecondPos = args[0], pos(1), args[2], pos(3) }
	pointEdge := func() { c.First, c.FirstPos, c.Second = args[0], pos(1), args[2] }

	needsValue := false

	switch a.Type {
	case Coincident:
		if n != 4 {
			return c, a.invalid("expected 4")
		}

		twoPoints()

		if c.FirstPos == ident.SubpartEdge || c.SecondPos == ident.SubpartEdge {
			return c, a.invalid("coincident operands must be points")
		}
	case PointOnObject:
		if n != 3 {
			return c, a.invalid("expected 3")
		}

		pointEdge()
	case Horizontal, Vertical:
		switch n {
		case 1:
			oneEdge()
		case 4:
			twoPoints()
		default:
			return c, a.invalid("expected 1 or 4")
		}
	case Parallel, Equal:
		if n != 2 {
			return c, a.invalid("expected 2")
		}

		twoEdges()
	case Tangent, Perpendicular:
		switch n {
		case 2:
			twoEdges()
		case 4:
			twoPoints()
		default:
			return c, a.invalid("expected 2 or 4")
		}
	case Radius, Diameter, Weight:
		if n != 1 {
			return c, a.invalid("expected 1")
		}

		oneEdge()

		needsValue = true
	case Distance, DistanceX, DistanceY:
		switch n {
		case 1:
			oneEdge()
		case 2:
			c.First, c.FirstPos = args[0], pos(1)
		case 3:
			if a.Type != Distance {
				return c, a.invalid("point to line distance is only defined for Distance")
			}

			pointEdge()
		case 4:
			twoPoints()

			if c.FirstPos == ident.SubpartEdge {
				return c, a.invalid("first operand must be a point")
			}

			if a.Type == Distance && c.SecondPos == ident.SubpartEdge {
				return c, a.invalid("use the 3 argument form for point to line")
			}
		default:
			return c, a.invalid("expected 1 to 4")
		}

		needsValue = true
	case Angle:
		switch n {
		case 1:
			oneEdge()
		case 2:
			twoEdges()
		case 4:
			twoPoints()
		default:
			return c, a.invalid("expected 1, 2 or 4")
		}

		needsValue = true
	case Symmetric:
		switch n {
		case 5:
			twoPoints()
			c.Third = args[4]
		case 6:
			twoPoints()
			c.Third, c.ThirdPos = args[4], pos(5)
		default:
			return c, a.invalid("expected 5 or 6")
		}
	case Block:
		if n != 1 {
			return c, a.invalid("expected 1")
		}

		oneEdge()
	case InternalAlignment:
		if n != 2 || a.Alignment == AlignmentUndef {
			return c, a.invalid("expected aux and parent with an alignment type")
		}

		twoEdges()
		c.AlignmentType = a.Alignment

		if a.Alignment == EllipseFocus1 || a.Alignment == EllipseFocus2 {
			c.FirstPos = ident.SubpartStart
		}
	default:
		return c, fmt.Errorf("%w: unknown constraint type %q", ErrInvalidArgument, a.Type)
	}

	if needsValue && !a.HasValue {
		return c, a.invalid("missing value")
	}

	for _, p := range c.Positions() {
		if p < ident.SubpartEdge || p > ident.SubpartMid {
			return c, a.invalid("subpart out of range")
		}
	}

	return c, nil
}

// contentXML mirrors the host's serialized constraint element.
type contentXML struct {
	XMLName               xml.Name `xml:"Constrain"`
	Name                  string   `xml:"Name,attr"`
	Type                  int      `xml:"Type,attr"`
	Value                 string   `xml:"Value,attr"`
	First                 int      `xml:"First,attr"`
	FirstPos              int      `xml:"FirstPos,attr"`
	Second                int      `xml:"Second,attr"`
	SecondPos             int      `xml:"SecondPos,attr"`
	Third                 int      `xml:"Third,attr"`
	ThirdPos              int      `xml:"ThirdPos,attr"`
	InternalAlignmentType int      `xml:"InternalAlignmentType,attr"`
}

// Content returns the raw payload the host exposes for the constraint.
func (c Constraint) Content() string {
	out, err := xml.Marshal(contentXML{
		Name:                  c.Name,
		Type:                  typeCodes[c.Type],
		Value:                 strconv.FormatFloat(c.Value, 'g', -1, 64),
		First:                 c.First,
		FirstPos:              int(c.FirstPos),
		Second:                c.Second,
		SecondPos:             int(c.SecondPos),
		Third:                 c.Third,
		ThirdPos:              int(c.ThirdPos),
		InternalAlignmentType: int(c.AlignmentType),
	})
	if err != nil {
		// contentXML has only scalar fields
		panic(err)
	}

	return string(out)
}

// DecodeContent parses a payload produced by Content.
func DecodeContent(content string) (Constraint, error) {
	var raw contentXML
	if err := xml.Unmarshal([]byte(content), &raw); err != nil {
		return Constraint{}, fmt.Errorf("failed to decode constraint content: %w", err)
	}

	typ, ok := TypeFromCode(raw.Type)
	if !ok {
		return Constraint{}, fmt.Errorf("%w: unknown constraint type code %d", ErrInvalidArgument, raw.Type)
	}

	value, err := strconv.ParseFloat(raw.Value, 64)
	if err != nil {
		return Constraint{}, fmt.Errorf("failed to decode constraint value %q: %w", raw.Value, err)
	}

	return Constraint{
		Type:          typ,
		Name:          raw.Name,
		First:         raw.First,
		FirstPos:      ident.Subpart(raw.FirstPos),
		Second:        raw.Second,
		SecondPos:     ident.Subpart(raw.SecondPos),
		Third:         raw.Third,
		ThirdPos:      ident.Subpart(raw.ThirdPos),
		Value:         value,
		AlignmentType: AlignmentType(raw.InternalAlignmentType),
	}, nil
}
