// Package modelfile provides the YAML schema, parsing, validation and
// model building for internal model files.
//
// A model file names every feature and sketch geometry by a local id and
// writes constraint operands as "id" or "id.REFERENCE".
//
// # Schema Overview
//
//	version: "1"
//	features:
//	  - id: origin
//	    kind: coordinate_system
//	  - id: profile
//	    kind: sketch
//	    support: origin.XY
//	    geometry:
//	      - id: base
//	        kind: line_segment
//	        start: [0, 0]
//	        end: [10, 0]
//	      - id: hole
//	        kind: circle
//	        center: [5, 3]
//	        radius: 1
//	    constraints:
//	      - kind: horizontal
//	        refs: [base]
//	      - kind: distance
//	        refs: [base.START, hole.CENTER]
//	        value: 5.83
//	      - kind: coincident
//	        refs: [base.START, profile.ORIGIN]
//	  - id: pad
//	    kind: extrude
//	    profile: profile
//	    length: 4
//	  - id: body
//	    kind: container
//	    members: [origin, profile, pad]
//
// Angles are in degrees, lengths in millimetres. Arc and ellipse rotation
// angles are in radians, as in the model. Features listed as members of a
// container are not top-level.
//
// Validation collects every problem into diagnostic.Diagnostics and offers
// "did you mean" suggestions for misspelt ids, kinds and references.
package modelfile
