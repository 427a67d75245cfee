package testutil

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/roach88/simgraph/internal/entity"
)

// Builder assembles an entity.Document from keyed entities.
//
// Builder methods panic on invalid input (duplicate keys); it is meant for
// tests where a malformed fixture is a programming error.
type Builder struct {
	doc *entity.Document
}

// NewBuilder creates an empty fixture builder.
func NewBuilder() *Builder {
	return &Builder{doc: entity.NewDocument()}
}

// ID returns the identifier for key.
func ID(key string) entity.ID {
	return entity.KeyID(key)
}

// FrameID returns the identifier of the frame created for an entity key.
func FrameID(key string) entity.ID {
	return entity.KeyID(key + "#frame")
}

// Frame adds a plain frame named key under the frame parent ("" for none).
func (b *Builder) Frame(key, parent string) entity.ID {
	return b.FrameAt(key, parent, mgl64.Vec3{})
}

// FrameAt adds a plain frame translated by pos relative to parent.
func (b *Builder) FrameAt(key, parent string, pos mgl64.Vec3) entity.ID {
	id := ID(key)
	must(b.doc.AddFrame(entity.Frame{
		ID:     id,
		Name:   key,
		Parent: ID(parent),
		Local:  entity.Transform{Position: pos, Rotation: mgl64.QuatIdent()},
	}))
	return id
}

// Body adds a dynamic rigid body whose frame sits under the frame parent
// ("" for none). Use the key of a Frame to place the body in an assembly.
func (b *Builder) Body(key, name, parent string) entity.ID {
	frame := FrameID(key)
	must(b.doc.AddFrame(entity.Frame{ID: frame, Name: key, Parent: ID(parent), Local: entity.Identity()}))
	id := ID(key)
	must(b.doc.AddBody(entity.RigidBody{
		ID:            id,
		Name:          name,
		Frame:         frame,
		MotionControl: entity.MotionDynamics,
		Mass:          1,
	}))
	return id
}

// Geometry adds a box geometry attached to body with an optional material
// ("" for none).
func (b *Builder) Geometry(key, name, body, material string) entity.ID {
	frame := FrameID(key)
	must(b.doc.AddFrame(entity.Frame{ID: frame, Name: key, Parent: FrameID(body), Local: entity.Identity()}))
	return b.addGeometry(key, name, frame, ID(body), material)
}

// FreeGeometry adds a geometry without a body, its frame under the frame
// parent ("" for none).
func (b *Builder) FreeGeometry(key, name, parent, material string) entity.ID {
	frame := FrameID(key)
	must(b.doc.AddFrame(entity.Frame{ID: frame, Name: key, Parent: ID(parent), Local: entity.Identity()}))
	return b.addGeometry(key, name, frame, entity.Nil, material)
}

func (b *Builder) addGeometry(key, name string, frame, body entity.ID, material string) entity.ID {
	id := ID(key)
	must(b.doc.AddGeometry(entity.Geometry{
		ID:                id,
		Name:              name,
		Frame:             frame,
		Body:              body,
		Material:          ID(material),
		CollisionsEnabled: true,
		Shapes: []entity.Shape{
			{Type: entity.ShapeBox, HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5}},
		},
	}))
	return id
}

// Material adds a material.
func (b *Builder) Material(key, name string) entity.ID {
	id := ID(key)
	must(b.doc.AddMaterial(entity.Material{ID: id, Name: name, Density: 1000}))
	return id
}

// Constraint adds a hinge between body1 and body2 ("" attaches to the world).
func (b *Builder) Constraint(key, name, body1, body2 string) entity.ID {
	id := ID(key)
	must(b.doc.AddConstraint(entity.Constraint{
		ID:      id,
		Name:    name,
		Type:    entity.ConstraintHinge,
		Bodies:  [2]entity.ID{ID(body1), ID(body2)},
		Enabled: true,
	}))
	return id
}

// ContactMaterial adds a contact material for the pair (a, b).
func (b *Builder) ContactMaterial(key, name, a, c string) entity.ID {
	id := ID(key)
	must(b.doc.AddContactMaterial(entity.ContactMaterial{
		ID:        id,
		Name:      name,
		Materials: [2]entity.ID{ID(a), ID(c)},
		Friction:  0.5,
	}))
	return id
}

// Cable adds a cable structure owning bodies.
func (b *Builder) Cable(key string, bodies ...string) entity.ID {
	id := ID(key)
	ids := make([]entity.ID, 0, len(bodies))
	for _, k := range bodies {
		ids = append(ids, ID(k))
	}
	must(b.doc.AddLinkedStructure(entity.LinkedStructure{
		ID:     id,
		Name:   key,
		Type:   entity.LinkedCable,
		Bodies: ids,
	}))
	return id
}

// Document returns the built document.
func (b *Builder) Document() *entity.Document {
	return b.doc
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
