package entity

import "errors"

// ErrSourceUnavailable reports that an entity source could not be opened or read.
// Open functions wrap it so callers can test with errors.Is.
var ErrSourceUnavailable = errors.New("entity source unavailable")

// Source is a read-only provider of entities for one reconstruction pass.
//
// Enumeration methods return entities in a stable order; reconstruction is
// deterministic given the same source. Lookups return false when the
// identifier is unknown.
//
// The source owns every entity it returns. Close releases any resources
// behind it and must be called exactly once when the pass is over,
// including when it aborts.
type Source interface {
	Bodies() []RigidBody
	Geometries() []Geometry
	Constraints() []Constraint
	Materials() []Material
	LinkedStructures() []LinkedStructure

	Frame(id ID) (Frame, bool)
	Material(id ID) (Material, bool)

	// FrameOwner returns the rigid body that owns frame, if any.
	FrameOwner(frame ID) (ID, bool)

	// BodyGeometries returns the geometries attached to body.
	BodyGeometries(body ID) []Geometry

	// ContactMaterial returns the contact material for an unordered pair.
	ContactMaterial(a, b ID) (ContactMaterial, bool)

	// WorldTransform composes frame with all of its ancestors.
	WorldTransform(frame ID) Transform

	Close() error
}
