package entity

import (
	"bytes"
	"fmt"
)

// Document is an in-memory Source. Decoders and the store fill it; the
// reconstruction core only reads it.
//
// Entities keep insertion order. Adding two entities with the same ID is
// an error regardless of kind.
type Document struct {
	frames           []Frame
	bodies           []RigidBody
	geometries       []Geometry
	constraints      []Constraint
	materials        []Material
	contactMaterials []ContactMaterial
	linked           []LinkedStructure

	ids           map[ID]string // id -> kind, for collision detection
	frameIdx      map[ID]int
	bodyIdx       map[ID]int
	geometryIdx   map[ID]int
	materialIdx   map[ID]int
	frameOwner    map[ID]ID
	bodyGeoms     map[ID][]int
	contactByPair map[[2]ID]int

	closer func() error
	closed bool
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		ids:           make(map[ID]string),
		frameIdx:      make(map[ID]int),
		bodyIdx:       make(map[ID]int),
		geometryIdx:   make(map[ID]int),
		materialIdx:   make(map[ID]int),
		frameOwner:    make(map[ID]ID),
		bodyGeoms:     make(map[ID][]int),
		contactByPair: make(map[[2]ID]int),
	}
}

// OnClose registers fn to run when the document is closed. Used by sources
// that hold external resources while the pass runs.
func (d *Document) OnClose(fn func() error) {
	d.closer = fn
}

// Close releases resources registered with OnClose. Subsequent calls are no-ops.
func (d *Document) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	if d.closer != nil {
		return d.closer()
	}
	return nil
}

func (d *Document) claim(id ID, kind string) error {
	if id == Nil {
		return fmt.Errorf("add %s: nil id", kind)
	}
	if prev, ok := d.ids[id]; ok {
		return fmt.Errorf("add %s %s: id already used by %s", kind, id, prev)
	}
	d.ids[id] = kind
	return nil
}

// AddFrame adds a coordinate frame.
func (d *Document) AddFrame(f Frame) error {
	if err := d.claim(f.ID, "frame"); err != nil {
		return err
	}
	d.frameIdx[f.ID] = len(d.frames)
	d.frames = append(d.frames, f)
	return nil
}

// AddBody adds a rigid body. The body's frame becomes owned by it.
func (d *Document) AddBody(b RigidBody) error {
	if err := d.claim(b.ID, "rigid body"); err != nil {
		return err
	}
	if b.Frame != Nil {
		if owner, ok := d.frameOwner[b.Frame]; ok {
			return fmt.Errorf("add rigid body %s: frame %s already owned by %s", b.ID, b.Frame, owner)
		}
		d.frameOwner[b.Frame] = b.ID
	}
	d.bodyIdx[b.ID] = len(d.bodies)
	d.bodies = append(d.bodies, b)
	return nil
}

// AddGeometry adds a geometry. Attached geometries are indexed under their body.
func (d *Document) AddGeometry(g Geometry) error {
	if err := d.claim(g.ID, "geometry"); err != nil {
		return err
	}
	idx := len(d.geometries)
	d.geometryIdx[g.ID] = idx
	d.geometries = append(d.geometries, g)
	if g.Body != Nil {
		d.bodyGeoms[g.Body] = append(d.bodyGeoms[g.Body], idx)
	}
	return nil
}

// AddConstraint adds a constraint.
func (d *Document) AddConstraint(c Constraint) error {
	if err := d.claim(c.ID, "constraint"); err != nil {
		return err
	}
	d.constraints = append(d.constraints, c)
	return nil
}

// AddMaterial adds a material.
func (d *Document) AddMaterial(m Material) error {
	if err := d.claim(m.ID, "material"); err != nil {
		return err
	}
	d.materialIdx[m.ID] = len(d.materials)
	d.materials = append(d.materials, m)
	return nil
}

// AddContactMaterial adds a contact material. Only one record may exist per
// unordered material pair.
func (d *Document) AddContactMaterial(c ContactMaterial) error {
	key := pairKey(c.Materials[0], c.Materials[1])
	if prev, ok := d.contactByPair[key]; ok {
		return fmt.Errorf("add contact material %s: pair already described by %s", c.ID, d.contactMaterials[prev].ID)
	}
	if err := d.claim(c.ID, "contact material"); err != nil {
		return err
	}
	d.contactByPair[key] = len(d.contactMaterials)
	d.contactMaterials = append(d.contactMaterials, c)
	return nil
}

// AddLinkedStructure adds a specialized linear structure (cable, wire).
func (d *Document) AddLinkedStructure(l LinkedStructure) error {
	if err := d.claim(l.ID, "linked structure"); err != nil {
		return err
	}
	d.linked = append(d.linked, l)
	return nil
}

func (d *Document) Frames() []Frame { return d.frames }
func (d *Document) Bodies() []RigidBody { return d.bodies }
func (d *Document) Geometries() []Geometry { return d.geometries }
func (d *Document) Constraints() []Constraint { return d.constraints }
func (d *Document) Materials() []Material { return d.materials }
func (d *Document) ContactMaterials() []ContactMaterial { return d.contactMaterials }
func (d *Document) LinkedStructures() []LinkedStructure { return d.linked }

// Frame looks up a frame by ID.
func (d *Document) Frame(id ID) (Frame, bool) {
	i, ok := d.frameIdx[id]
	if !ok {
		return Frame{}, false
	}
	return d.frames[i], true
}

// Body looks up a rigid body by ID.
func (d *Document) Body(id ID) (RigidBody, bool) {
	i, ok := d.bodyIdx[id]
	if !ok {
		return RigidBody{}, false
	}
	return d.bodies[i], true
}

// Geometry looks up a geometry by ID.
func (d *Document) Geometry(id ID) (Geometry, bool) {
	i, ok := d.geometryIdx[id]
	if !ok {
		return Geometry{}, false
	}
	return d.geometries[i], true
}

// Material looks up a material by ID.
func (d *Document) Material(id ID) (Material, bool) {
	i, ok := d.materialIdx[id]
	if !ok {
		return Material{}, false
	}
	return d.materials[i], true
}

// FrameOwner returns the rigid body owning frame.
func (d *Document) FrameOwner(frame ID) (ID, bool) {
	id, ok := d.frameOwner[frame]
	return id, ok
}

// BodyGeometries returns the geometries attached to body, in insertion order.
func (d *Document) BodyGeometries(body ID) []Geometry {
	idx := d.bodyGeoms[body]
	out := make([]Geometry, 0, len(idx))
	for _, i := range idx {
		out = append(out, d.geometries[i])
	}
	return out
}

// ContactMaterial returns the contact material for the unordered pair (a, b).
func (d *Document) ContactMaterial(a, b ID) (ContactMaterial, bool) {
	i, ok := d.contactByPair[pairKey(a, b)]
	if !ok {
		return ContactMaterial{}, false
	}
	return d.contactMaterials[i], true
}

// WorldTransform composes frame with its ancestors. Unknown frames resolve
// to the identity; a cycle in the parent chain stops at the repeated frame.
func (d *Document) WorldTransform(frame ID) Transform {
	var chain []Frame
	seen := make(map[ID]bool)
	for id := frame; id != Nil && !seen[id]; {
		f, ok := d.Frame(id)
		if !ok {
			break
		}
		seen[id] = true
		chain = append(chain, f)
		id = f.Parent
	}

	world := Identity()
	for i := len(chain) - 1; i >= 0; i-- {
		world = world.Compose(chain[i].Local)
	}
	return world
}

func pairKey(a, b ID) [2]ID {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return [2]ID{a, b}
}
