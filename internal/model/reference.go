package model

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=ConstraintReference -linecomment -output=reference_string.go

// ConstraintReference names the sub-part of an entity that takes part in a
// constraint or a correspondence. The zero value is the whole entity.
type ConstraintReference int

const (
	ReferenceCore       ConstraintReference = iota // CORE
	ReferenceStart                                 // START
	ReferenceEnd                                   // END
	ReferenceCenter                                // CENTER
	ReferenceOrigin                                // ORIGIN
	ReferenceX                                     // X
	ReferenceY                                     // Y
	ReferenceZ                                     // Z
	ReferenceXY                                    // XY
	ReferenceXZ                                    // XZ
	ReferenceYZ                                    // YZ
	ReferenceXMin                                  // X_MIN
	ReferenceXMax                                  // X_MAX
	ReferenceYMin                                  // Y_MIN
	ReferenceYMax                                  // Y_MAX
	ReferenceFocalPlus                             // FOCAL_PLUS
	ReferenceFocalMinus                            // FOCAL_MINUS

	// ReferenceTotal is the number of references defined.
	ReferenceTotal = int(iota)
)

// ParseConstraintReference accepts the String() form in any case, with
// either '_' or '-' as separator.
func ParseConstraintReference(s string) (ConstraintReference, error) {
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	if norm == "" {
		return ReferenceCore, nil
	}

	for r := range ConstraintReference(ReferenceTotal) {
		if r.String() == norm {
			return r, nil
		}
	}

	return ReferenceCore, fmt.Errorf("unknown constraint reference %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (r ConstraintReference) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *ConstraintReference) UnmarshalText(text []byte) error {
	parsed, err := ParseConstraintReference(string(text))
	if err != nil {
		return err
	}

	*r = parsed

	return nil
}
