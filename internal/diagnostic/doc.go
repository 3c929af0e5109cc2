// Package diagnostic provides the translation error taxonomy and a
// structured report of warnings and errors for model files and imports.
//
// Key capabilities:
//   - Sentinel errors for lookup failures, type mismatches, invariant
//     violations and unsupported features, matched with errors.Is
//   - Diagnostics collection with per-feature/per-entity context
//   - "did you mean" suggestions attached to unresolved names
package diagnostic
