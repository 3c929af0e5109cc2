// Package ident provides the host identifier types and the index rules host
// constraints use to address sketch geometry.
//
// Host identifiers come at four granularities:
//   - FeatureID: a host document object
//   - SketchElementID: (feature, list, index) inside a sketch
//   - SubGeometryID: a sketch element plus the ConstraintReference of its sub-part
//   - SubFeatureID: a feature plus a ConstraintReference (e.g. an origin's X axis)
//
// All four implement the sealed HostID union. Table is the ordered
// ConstraintReference → host id table attached to every linked entity.
//
// Host constraint arguments are small integers: N >= 0 addresses geometry
// index N, M < 0 addresses external index -(M+1), and UnusedArg marks an
// unused slot. ToHostIndex and ToInternalIndex are exact inverses.
package ident
