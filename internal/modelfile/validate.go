package modelfile

import (
	"fmt"
	"strings"

	"cad-translator/internal/diagnostic"
	"cad-translator/internal/model"
)

// Diagnostic codes reported by Validate.
const (
	CodeUnsupportedVersion = "unsupported_version"
	CodeDuplicateID        = "duplicate_id"
	CodeUnknownKind        = "unknown_kind"
	CodeUnknownID          = "unknown_id"
	CodeUnknownReference   = "unknown_reference"
	CodeMissingField       = "missing_field"
	CodeInvalidValue       = "invalid_value"
	CodeArity              = "arity"
	CodeMembership         = "membership"
)

// featureReferences lists what a feature of each kind exposes by id.
var featureReferences = map[model.FeatureKind][]model.ConstraintReference{
	model.FeatureKindCoordinateSystem: {
		model.ReferenceCore, model.ReferenceOrigin,
		model.ReferenceX, model.ReferenceY, model.ReferenceZ,
		model.ReferenceXY, model.ReferenceXZ, model.ReferenceYZ,
	},
	model.FeatureKindSketch:    {model.ReferenceCore, model.ReferenceOrigin, model.ReferenceX, model.ReferenceY},
	model.FeatureKindExtrude:   {model.ReferenceCore},
	model.FeatureKindContainer: {model.ReferenceCore},
}

// operand arity bounds per constraint kind, inclusive.
var constraintArity = map[model.ConstraintKind][2]int{
	model.ConstraintKindCoincident:         {2, 2},
	model.ConstraintKindEqual:              {2, 2},
	model.ConstraintKindParallel:           {2, 2},
	model.ConstraintKindPerpendicular:      {2, 2},
	model.ConstraintKindTangent:            {2, 2},
	model.ConstraintKindHorizontal:         {1, 2},
	model.ConstraintKindVertical:           {1, 2},
	model.ConstraintKindAngle:              {2, 2},
	model.ConstraintKindDistance:           {1, 2},
	model.ConstraintKindHorizontalDistance: {1, 2},
	model.ConstraintKindVerticalDistance:   {1, 2},
	model.ConstraintKindRadius:             {1, 1},
	model.ConstraintKindDiameter:           {1, 1},
}

// validator holds the id tables built while checking a file.
type validator struct {
	res      *diagnostic.Diagnostics
	features map[string]model.FeatureKind
	parents  map[string]string
}

// Validate checks a model file and returns every problem found.
func Validate(mf *File) *diagnostic.Diagnostics {
	v := &validator{
		res:      &diagnostic.Diagnostics{},
		features: make(map[string]model.FeatureKind),
		parents:  make(map[string]string),
	}

	if mf.Version != CurrentVersion {
		v.res.AddError(CodeUnsupportedVersion,
			fmt.Sprintf("unsupported schema version %q, expected %q", mf.Version, CurrentVersion), "", "")
	}

	v.collectIDs(mf)

	for i := range mf.Features {
		f := &mf.Features[i]

		kind, ok := featureKinds[f.Kind]
		if !ok {
			continue
		}

		switch kind {
		case model.FeatureKindSketch:
			v.validateSketch(f)
		case model.FeatureKindExtrude:
			v.validateExtrude(f)
		case model.FeatureKindContainer:
			v.validateContainer(f)
		}
	}

	v.validateMembership()

	return v.res
}

// collectIDs registers every feature and geometry id, reporting duplicates
// and unknown kinds. Feature and geometry ids share one namespace.
func (v *validator) collectIDs(mf *File) {
	seen := make(map[string]bool)

	claim := func(id, feature string) {
		switch {
		case id == "":
			v.res.AddError(CodeMissingField, "id is required", feature, "")
		case seen[id]:
			v.res.AddError(CodeDuplicateID, fmt.Sprintf("id %q is declared more than once", id), feature, id)
		default:
			seen[id] = true
		}
	}

	for i := range mf.Features {
		f := &mf.Features[i]
		claim(f.ID, f.ID)

		kind, ok := featureKinds[f.Kind]
		if !ok {
			v.res.AddError(CodeUnknownKind, fmt.Sprintf("unknown feature kind %q", f.Kind), f.ID, "",
				suggest(f.Kind, names(featureKinds))...)

			continue
		}

		if f.ID != "" {
			v.features[f.ID] = kind
		}

		for j := range f.Geometry {
			claim(f.Geometry[j].ID, f.ID)
		}
	}
}

func (v *validator) validateSketch(f *Feature) {
	if f.Support != "" {
		v.checkFeatureRef(f.ID, f.Support, model.FeatureKindCoordinateSystem, model.FeatureKindSketch)
	}

	local := map[string]model.GeometryKind{}

	for i := range f.Geometry {
		g := &f.Geometry[i]

		kind, ok := geometryKinds[g.Kind]
		if !ok {
			v.res.AddError(CodeUnknownKind, fmt.Sprintf("unknown geometry kind %q", g.Kind), f.ID, g.ID,
				suggest(g.Kind, names(geometryKinds))...)

			continue
		}

		local[g.ID] = kind
		v.validateGeometry(f.ID, g, kind)
	}

	for i := range f.Constraints {
		v.validateConstraint(f, &f.Constraints[i], local)
	}
}

func (v *validator) validateGeometry(feature string, g *Geometry, kind model.GeometryKind) {
	missing := func(field string) {
		v.res.AddError(CodeMissingField, fmt.Sprintf("%s requires %s", kind, field), feature, g.ID)
	}

	positive := func(field string, value float64) {
		if value <= 0 {
			v.res.AddError(CodeInvalidValue, fmt.Sprintf("%s must be positive, got %g", field, value), feature, g.ID)
		}
	}

	switch kind {
	case model.GeometryKindPoint:
		if g.Position == nil {
			missing("position")
		}
	case model.GeometryKindLineSegment:
		if g.Start == nil {
			missing("start")
		}

		if g.End == nil {
			missing("end")
		}

		if g.Start != nil && g.End != nil && *g.Start == *g.End {
			v.res.AddError(CodeInvalidValue, "line_segment has zero length", feature, g.ID)
		}
	case model.GeometryKindCircle, model.GeometryKindCircularArc:
		if g.Center == nil {
			missing("center")
		}

		positive("radius", g.Radius)

		if kind == model.GeometryKindCircularArc && g.StartAngle == g.EndAngle {
			v.res.AddError(CodeInvalidValue, "circular_arc has zero sweep", feature, g.ID)
		}
	case model.GeometryKindEllipse:
		if g.Center == nil {
			missing("center")
		}

		positive("semi_major", g.SemiMajor)
		positive("semi_minor", g.SemiMinor)

		if g.SemiMinor > g.SemiMajor {
			v.res.AddError(CodeInvalidValue,
				fmt.Sprintf("semi_minor %g exceeds semi_major %g", g.SemiMinor, g.SemiMajor), feature, g.ID)
		}
	}
}

func (v *validator) validateConstraint(f *Feature, c *Constraint, local map[string]model.GeometryKind) {
	kind, ok := constraintKinds[c.Kind]
	if !ok {
		v.res.AddError(CodeUnknownKind, fmt.Sprintf("unknown constraint kind %q", c.Kind), f.ID, "",
			suggest(c.Kind, names(constraintKinds))...)

		return
	}

	if bounds := constraintArity[kind]; len(c.Refs) < bounds[0] || len(c.Refs) > bounds[1] {
		v.res.AddError(CodeArity,
			fmt.Sprintf("%s takes %d to %d operands, got %d", kind, bounds[0], bounds[1], len(c.Refs)), f.ID, c.Kind)
	}

	for _, raw := range c.Refs {
		v.checkOperand(f.ID, raw, local)
	}

	switch kind {
	case model.ConstraintKindAngle:
		if c.Quadrant < 0 || c.Quadrant > 4 {
			v.res.AddError(CodeInvalidValue, fmt.Sprintf("quadrant must be 1 to 4, got %d", c.Quadrant), f.ID, c.Kind)
		}
	case model.ConstraintKindRadius, model.ConstraintKindDiameter:
		if c.Value <= 0 {
			v.res.AddError(CodeInvalidValue, fmt.Sprintf("%s must be positive, got %g", kind, c.Value), f.ID, c.Kind)
		}
	}
}

// checkOperand resolves a constraint operand against the sketch's own
// geometry and the sketch itself.
func (v *validator) checkOperand(sketch, raw string, local map[string]model.GeometryKind) {
	ref, err := parseRef(raw)
	if err != nil {
		v.res.AddError(CodeUnknownReference, err.Error(), sketch, raw, suggest(refName(raw), referenceNames())...)
		return
	}

	var supported []model.ConstraintReference

	if ref.ID == sketch {
		supported = featureReferences[model.FeatureKindSketch]
	} else if kind, ok := local[ref.ID]; ok {
		supported = model.References(kind)
	} else {
		candidates := []string{sketch}
		for id := range local {
			candidates = append(candidates, id)
		}

		v.res.AddError(CodeUnknownID, fmt.Sprintf("operand %q names no geometry of this sketch", ref.ID), sketch, raw,
			suggest(ref.ID, candidates)...)

		return
	}

	v.checkSupported(sketch, raw, ref.Reference, supported)
}

// checkFeatureRef resolves "id" or "id.REFERENCE" against the feature ids.
func (v *validator) checkFeatureRef(feature, raw string, allowed ...model.FeatureKind) {
	ref, err := parseRef(raw)
	if err != nil {
		v.res.AddError(CodeUnknownReference, err.Error(), feature, raw, suggest(refName(raw), referenceNames())...)
		return
	}

	kind, ok := v.features[ref.ID]
	if !ok {
		v.res.AddError(CodeUnknownID, fmt.Sprintf("feature %q is not declared", ref.ID), feature, raw,
			suggest(ref.ID, names(v.features))...)

		return
	}

	if !kindIn(kind, allowed) {
		v.res.AddError(CodeInvalidValue, fmt.Sprintf("feature %q is a %s", ref.ID, kind), feature, raw)
		return
	}

	v.checkSupported(feature, raw, ref.Reference, featureReferences[kind])
}

func (v *validator) checkSupported(feature, raw string, r model.ConstraintReference, supported []model.ConstraintReference) {
	for _, s := range supported {
		if s == r {
			return
		}
	}

	candidates := make([]string, 0, len(supported))
	for _, s := range supported {
		candidates = append(candidates, s.String())
	}

	v.res.AddError(CodeUnknownReference, fmt.Sprintf("%s is not exposed here", r), feature, raw,
		suggest(r.String(), candidates)...)
}

func (v *validator) validateExtrude(f *Feature) {
	if f.Profile == "" {
		v.res.AddError(CodeMissingField, "extrude requires profile", f.ID, "")
	} else {
		v.checkFeatureRef(f.ID, f.Profile, model.FeatureKindSketch)
	}

	if f.Length <= 0 {
		v.res.AddError(CodeInvalidValue, fmt.Sprintf("length must be positive, got %g", f.Length), f.ID, "")
	}
}

func (v *validator) validateContainer(f *Feature) {
	for _, member := range f.Members {
		if _, ok := v.features[member]; !ok {
			v.res.AddError(CodeUnknownID, fmt.Sprintf("member %q is not declared", member), f.ID, member,
				suggest(member, names(v.features))...)

			continue
		}

		if member == f.ID {
			v.res.AddError(CodeMembership, "container lists itself as a member", f.ID, member)
			continue
		}

		if prev, ok := v.parents[member]; ok {
			v.res.AddError(CodeMembership, fmt.Sprintf("%q is already a member of %q", member, prev), f.ID, member)
			continue
		}

		v.parents[member] = f.ID
	}
}

// validateMembership rejects containers nested inside themselves.
func (v *validator) validateMembership() {
	for id := range v.parents {
		seen := map[string]bool{id: true}

		for p, ok := v.parents[id]; ok; p, ok = v.parents[p] {
			if seen[p] {
				v.res.AddError(CodeMembership, fmt.Sprintf("container cycle through %q", p), p, id)
				break
			}

			seen[p] = true
		}
	}
}

func kindIn(k model.FeatureKind, allowed []model.FeatureKind) bool {
	for _, a := range allowed {
		if a == k {
			return true
		}
	}

	return false
}

func refName(raw string) string {
	_, name, _ := strings.Cut(raw, ".")
	return name
}
