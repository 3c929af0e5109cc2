package ident

import (
	"fmt"

	"cad-translator/internal/common"
	"cad-translator/internal/model"
)

// HostID is any host identifier. The set of implementations is closed.
type HostID interface {
	fmt.Stringer
	hostID()
}

// FeatureID is the integer id of a host document object. Zero is never assigned.
type FeatureID int

// GeometryList selects one of the two geometry lists of a host sketch.
type GeometryList int

const (
	// ListGeometry holds user-authored sketch geometry.
	ListGeometry GeometryList = iota
	// ListExternal holds the implicit axes followed by any external references.
	ListExternal
)

// String returns the host name of the list.
func (l GeometryList) String() string {
	switch l {
	case ListGeometry:
		return "Geometry"
	case ListExternal:
		return "ExternalGeometry"
	default:
		return common.UnknownStr
	}
}

// SketchElementID addresses one element of a sketch geometry list.
type SketchElementID struct {
	Feature FeatureID
	List    GeometryList
	Index   int
}

// SubGeometryID addresses a sub-part of a sketch element.
type SubGeometryID struct {
	Element   SketchElementID
	Reference model.ConstraintReference
}

// SubFeatureID addresses a sub-object of a feature by reference.
type SubFeatureID struct {
	Feature   FeatureID
	Reference model.ConstraintReference
}

// ConstraintID addresses one entry of a sketch's constraint list.
type ConstraintID struct {
	Sketch FeatureID
	Index  int
}

func (FeatureID) hostID()       {}
func (SketchElementID) hostID() {}
func (SubGeometryID) hostID()   {}
func (SubFeatureID) hostID()    {}

func (id FeatureID) String() string {
	return fmt.Sprintf("#%d", int(id))
}

func (id SketchElementID) String() string {
	return fmt.Sprintf("%s.%s[%d]", id.Feature, id.List, id.Index)
}

func (id SubGeometryID) String() string {
	return fmt.Sprintf("%s.%s", id.Element, id.Reference)
}

func (id SubFeatureID) String() string {
	return fmt.Sprintf("%s.%s", id.Feature, id.Reference)
}

func (id ConstraintID) String() string {
	return fmt.Sprintf("%s.Constraints[%d]", id.Sketch, id.Index)
}

// Element builds a geometry-list element id.
func Element(sketch FeatureID, index int) SketchElementID {
	return SketchElementID{Feature: sketch, List: ListGeometry, Index: index}
}

// External builds an external-list element id.
func External(sketch FeatureID, index int) SketchElementID {
	return SketchElementID{Feature: sketch, List: ListExternal, Index: index}
}

// Sub builds the sub-geometry id of e at reference r.
func (id SketchElementID) Sub(r model.ConstraintReference) SubGeometryID {
	return SubGeometryID{Element: id, Reference: r}
}

// Sub builds the sub-feature id of f at reference r.
func (id FeatureID) Sub(r model.ConstraintReference) SubFeatureID {
	return SubFeatureID{Feature: id, Reference: r}
}

// OwnerFeature returns the feature a host id belongs to.
func OwnerFeature(id HostID) FeatureID {
	switch id := id.(type) {
	case FeatureID:
		return id
	case SketchElementID:
		return id.Feature
	case SubGeometryID:
		return id.Element.Feature
	case SubFeatureID:
		return id.Feature
	default:
		return 0
	}
}
