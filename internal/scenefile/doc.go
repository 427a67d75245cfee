// Package scenefile decodes simulation documents into an entity.Document.
//
// Two encodings share one schema: YAML (gopkg.in/yaml.v3, strict fields) and
// CUE (cuelang.org/go), the latter unified with an embedded #Document
// definition so that type and enum errors carry file positions.
//
// Entities are identified by keys. A key that parses as a UUID is used as-is;
// any other key maps to a name-derived UUID (see entity.KeyID). Rigid bodies
// and geometries get an implicit frame each. A "parent" key names a frame
// declared under frames, or a body or geometry, meaning that entity's frame.
//
// Example:
//
//	frames:
//	  - id: rig
//	    position: [0, 0, 1]
//	materials:
//	  - id: steel
//	    density: 7800
//	bodies:
//	  - id: box
//	    name: Box
//	    parent: rig
//	    mass: 2
//	geometries:
//	  - id: box-shape
//	    body: box
//	    material: steel
//	    shapes:
//	      - type: box
//	        half_extents: [0.5, 0.5, 0.5]
package scenefile
