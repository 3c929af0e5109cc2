// Package translate holds the per-kind translators between the internal
// model and the host document.
//
// Every geometry, feature and constraint kind has a to-host constructor, a
// to-internal constructor and a linker that records the correspondence in
// the registries carried by Context. Dispatch is an exhaustive switch over
// the kind enums; a kind without a case is a diagnostic.ErrTypeMismatch.
//
// Translators fail fast. A failed call may leave earlier links registered.
package translate
