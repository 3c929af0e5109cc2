// Package model provides the application-neutral CAD model that the
// translator reads on export and populates on import.
//
// Every kind is a sealed sum type: a closed set of structs behind an
// interface with an unexported marker method, plus a Kind() enum so that
// dispatch sites can switch exhaustively and report the default case as a
// type mismatch.
//
// Key types:
//   - Geometry: Point, LineSegment, Circle, CircularArc, Ellipse
//   - Feature: CoordinateSystem, Sketch, Extrude, FeatureContainer
//   - Constraint: StateConstraint, SnapConstraint, AngleConstraint,
//     DistanceConstraint, RadiusConstraint
//   - ConstraintReference: which sub-part of an entity participates
//   - Ref: an (entity, reference) operand
package model
