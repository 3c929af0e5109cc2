// Package session is the facade over one (host document, internal model)
// pair. A Session owns the translation context with its three registries,
// sequences whole-feature and whole-model translation in dependency order
// and answers correspondence lookups in both directions.
//
// A Session is not safe for concurrent use.
package session
