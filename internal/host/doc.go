// Package host models the scripting object model of the CAD host
// application: typed document objects, sketch geometry lists and sketch
// constraint records.
//
// Document is the interface translators drive. MemoryDocument implements it
// in memory with the host's observable behavior:
//   - App::Origin generates six sub-objects (three axes, three planes)
//   - every sketch has the horizontal and vertical axes at external
//     indices 0 and 1 (host arguments -1 and -2)
//   - ExposeInternalGeometry adds an ellipse's axis lines and foci, tied
//     back to it by InternalAlignment pseudo-constraints
//   - constraint arguments are interpreted by count, as the host does; a
//     four-argument Distance must name two points
//
// Constraint records expose their raw payload through Content(), the same
// XML the host writes into its documents.
package host
