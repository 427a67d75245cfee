// Package generator materializes a reconstructed tree into a host scene.
//
// The generator visits nodes in pre-order, parents before children, and
// creates exactly one host object per node. Root categories are generated in
// dependency order: materials, contact materials, generic roots (assemblies,
// bodies, free geometries), then constraints. Every object that references
// another (a geometry its material, a constraint its bodies) is therefore
// created after its target.
//
// Per-pass state (host, top-level container, used names) lives in an
// explicit Context rather than in package globals.
package generator
