// Package tree reconstructs a hierarchical, de-duplicated node tree from a
// flat, UUID-addressed entity source.
//
// ARCHITECTURE:
//
// The Tree is a node registry: it owns every Node in an identifier-keyed
// index and keeps four disjoint root lists (generic, constraint, material,
// contact material). Nodes never point at each other. Parent, child and
// reference links are entity identifiers resolved through the Tree, so the
// structural graph (parent/child) and the associative graph (references)
// carry no ownership.
//
// Parse builds a Tree in ordered stages:
//  1. Rigid bodies, each under its assembly (or as a generic root), with the
//     geometries attached to it as children.
//  2. Free geometries, under their assembly or as generic roots.
//  3. Geometry -> material references, added whenever a geometry node is created.
//  4. Constraints, referencing the body nodes they attach.
//  5. Contact materials, referencing both material nodes of their pair.
//
// Later stages may reference nodes created by earlier ones, never the reverse.
//
// ERROR HANDLING:
//
// Structural violations (double parenting, duplicate roots) are returned as
// *StructuralError and abort the pass. Classification inconsistencies are
// logged, recorded as Diagnostics, and processing continues without the
// affected entity. Missing optional links (a constraint whose body was
// filtered out) are tolerated silently.
//
// A Tree serves exactly one reconstruction pass and is not safe for
// concurrent use.
package tree
