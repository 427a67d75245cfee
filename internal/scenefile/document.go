package scenefile

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/roach88/simgraph/internal/entity"
)

// File is the decoded form of a simulation document.
type File struct {
	Name             string            `yaml:"name,omitempty" json:"name,omitempty"`
	Frames           []Frame           `yaml:"frames,omitempty" json:"frames,omitempty"`
	Materials        []Material        `yaml:"materials,omitempty" json:"materials,omitempty"`
	ContactMaterials []ContactMaterial `yaml:"contact_materials,omitempty" json:"contact_materials,omitempty"`
	Bodies           []Body            `yaml:"bodies,omitempty" json:"bodies,omitempty"`
	Geometries       []Geometry        `yaml:"geometries,omitempty" json:"geometries,omitempty"`
	Constraints      []Constraint      `yaml:"constraints,omitempty" json:"constraints,omitempty"`
	LinkedStructures []LinkedStructure `yaml:"linked_structures,omitempty" json:"linked_structures,omitempty"`
}

// Placement positions an entity's frame relative to its parent frame.
// Rotation is a quaternion [w, x, y, z]; omitted means identity.
type Placement struct {
	Parent   string    `yaml:"parent,omitempty" json:"parent,omitempty"`
	Position []float64 `yaml:"position,omitempty" json:"position,omitempty"`
	Rotation []float64 `yaml:"rotation,omitempty" json:"rotation,omitempty"`
}

// Frame declares a plain coordinate frame, a candidate assembly.
type Frame struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	Placement `yaml:",inline"`
}

type Material struct {
	ID            string  `yaml:"id" json:"id"`
	Name          string  `yaml:"name,omitempty" json:"name,omitempty"`
	Density       float64 `yaml:"density,omitempty" json:"density,omitempty"`
	YoungsModulus float64 `yaml:"youngs_modulus,omitempty" json:"youngs_modulus,omitempty"`
	Roughness     float64 `yaml:"roughness,omitempty" json:"roughness,omitempty"`
	Restitution   float64 `yaml:"restitution,omitempty" json:"restitution,omitempty"`
}

type ContactMaterial struct {
	ID            string   `yaml:"id" json:"id"`
	Name          string   `yaml:"name,omitempty" json:"name,omitempty"`
	Materials     []string `yaml:"materials" json:"materials"`
	Friction      float64  `yaml:"friction,omitempty" json:"friction,omitempty"`
	Restitution   float64  `yaml:"restitution,omitempty" json:"restitution,omitempty"`
	YoungsModulus float64  `yaml:"youngs_modulus,omitempty" json:"youngs_modulus,omitempty"`
}

// Body declares a rigid body. Its frame is implicit.
type Body struct {
	ID              string    `yaml:"id" json:"id"`
	Name            string    `yaml:"name,omitempty" json:"name,omitempty"`
	MotionControl   string    `yaml:"motion_control,omitempty" json:"motion_control,omitempty"`
	Mass            float64   `yaml:"mass,omitempty" json:"mass,omitempty"`
	LinearVelocity  []float64 `yaml:"linear_velocity,omitempty" json:"linear_velocity,omitempty"`
	AngularVelocity []float64 `yaml:"angular_velocity,omitempty" json:"angular_velocity,omitempty"`

	Placement `yaml:",inline"`
}

// Geometry declares a collision geometry. Without a parent, its frame sits
// under the frame of Body.
type Geometry struct {
	ID         string  `yaml:"id" json:"id"`
	Name       string  `yaml:"name,omitempty" json:"name,omitempty"`
	Body       string  `yaml:"body,omitempty" json:"body,omitempty"`
	Material   string  `yaml:"material,omitempty" json:"material,omitempty"`
	Collisions *bool   `yaml:"collisions,omitempty" json:"collisions,omitempty"`
	Shapes     []Shape `yaml:"shapes,omitempty" json:"shapes,omitempty"`

	Placement `yaml:",inline"`
}

type Shape struct {
	Type        string    `yaml:"type" json:"type"`
	HalfExtents []float64 `yaml:"half_extents,omitempty" json:"half_extents,omitempty"`
	Radius      float64   `yaml:"radius,omitempty" json:"radius,omitempty"`
	Height      float64   `yaml:"height,omitempty" json:"height,omitempty"`
	VertexCount int       `yaml:"vertex_count,omitempty" json:"vertex_count,omitempty"`
}

// Constraint declares a constraint. One body attaches it to the world.
type Constraint struct {
	ID       string   `yaml:"id" json:"id"`
	Name     string   `yaml:"name,omitempty" json:"name,omitempty"`
	Type     string   `yaml:"type" json:"type"`
	Bodies   []string `yaml:"bodies" json:"bodies"`
	Disabled bool     `yaml:"disabled,omitempty" json:"disabled,omitempty"`
}

type LinkedStructure struct {
	ID         string   `yaml:"id" json:"id"`
	Name       string   `yaml:"name,omitempty" json:"name,omitempty"`
	Type       string   `yaml:"type" json:"type"`
	Bodies     []string `yaml:"bodies,omitempty" json:"bodies,omitempty"`
	Geometries []string `yaml:"geometries,omitempty" json:"geometries,omitempty"`
}

// frameSuffix derives the implicit frame key of a body or geometry.
const frameSuffix = "#frame"

// Build converts f into a Document.
func (f *File) Build() (*entity.Document, error) {
	b := &docBuilder{
		doc:   entity.NewDocument(),
		owned: make(map[string]bool),
	}
	for _, body := range f.Bodies {
		b.owned[body.ID] = true
	}
	for _, g := range f.Geometries {
		b.owned[g.ID] = true
	}

	for i, fr := range f.Frames {
		field := fmt.Sprintf("frames[%d]", i)
		if err := b.frame(field, fr.ID, fr.ID, fr.Name, fr.Placement); err != nil {
			return nil, err
		}
	}
	for i, m := range f.Materials {
		field := fmt.Sprintf("materials[%d]", i)
		if err := b.require(field, m.ID); err != nil {
			return nil, err
		}
		err := b.doc.AddMaterial(entity.Material{
			ID:            entity.KeyID(m.ID),
			Name:          m.Name,
			Density:       m.Density,
			YoungsModulus: m.YoungsModulus,
			Roughness:     m.Roughness,
			Restitution:   m.Restitution,
		})
		if err != nil {
			return nil, invalid(field, err)
		}
	}
	for i, cm := range f.ContactMaterials {
		field := fmt.Sprintf("contact_materials[%d]", i)
		if err := b.require(field, cm.ID); err != nil {
			return nil, err
		}
		if len(cm.Materials) != 2 {
			return nil, &DecodeError{Field: field + ".materials", Message: "exactly two materials are required"}
		}
		err := b.doc.AddContactMaterial(entity.ContactMaterial{
			ID:            entity.KeyID(cm.ID),
			Name:          cm.Name,
			Materials:     [2]entity.ID{entity.KeyID(cm.Materials[0]), entity.KeyID(cm.Materials[1])},
			Friction:      cm.Friction,
			Restitution:   cm.Restitution,
			YoungsModulus: cm.YoungsModulus,
		})
		if err != nil {
			return nil, invalid(field, err)
		}
	}
	for i, body := range f.Bodies {
		if err := b.body(fmt.Sprintf("bodies[%d]", i), body); err != nil {
			return nil, err
		}
	}
	for i, g := range f.Geometries {
		if err := b.geometry(fmt.Sprintf("geometries[%d]", i), g); err != nil {
			return nil, err
		}
	}
	for i, c := range f.Constraints {
		field := fmt.Sprintf("constraints[%d]", i)
		if err := b.require(field, c.ID); err != nil {
			return nil, err
		}
		if len(c.Bodies) > 2 {
			return nil, &DecodeError{Field: field + ".bodies", Message: "at most two bodies are allowed"}
		}
		var bodies [2]entity.ID
		for j, key := range c.Bodies {
			bodies[j] = entity.KeyID(key)
		}
		err := b.doc.AddConstraint(entity.Constraint{
			ID:      entity.KeyID(c.ID),
			Name:    c.Name,
			Type:    entity.ConstraintType(c.Type),
			Bodies:  bodies,
			Enabled: !c.Disabled,
		})
		if err != nil {
			return nil, invalid(field, err)
		}
	}
	for i, l := range f.LinkedStructures {
		field := fmt.Sprintf("linked_structures[%d]", i)
		if err := b.require(field, l.ID); err != nil {
			return nil, err
		}
		err := b.doc.AddLinkedStructure(entity.LinkedStructure{
			ID:         entity.KeyID(l.ID),
			Name:       l.Name,
			Type:       entity.LinkedStructureType(l.Type),
			Bodies:     keyIDs(l.Bodies),
			Geometries: keyIDs(l.Geometries),
		})
		if err != nil {
			return nil, invalid(field, err)
		}
	}
	return b.doc, nil
}

type docBuilder struct {
	doc *entity.Document

	// owned holds keys of entities that carry an implicit frame.
	owned map[string]bool
}

func (b *docBuilder) require(field, id string) error {
	if id == "" {
		return &DecodeError{Field: field + ".id", Message: "id is required"}
	}
	return nil
}

// frameKey resolves a parent key to the key of the frame it designates.
func (b *docBuilder) frameKey(key string) string {
	if key == "" {
		return ""
	}
	if b.owned[key] {
		return key + frameSuffix
	}
	return key
}

func (b *docBuilder) frame(field, id, key, name string, p Placement) error {
	if err := b.require(field, id); err != nil {
		return err
	}
	local, err := placement(field, p)
	if err != nil {
		return err
	}
	err = b.doc.AddFrame(entity.Frame{
		ID:     entity.KeyID(key),
		Name:   name,
		Parent: entity.KeyID(b.frameKey(p.Parent)),
		Local:  local,
	})
	if err != nil {
		return invalid(field, err)
	}
	return nil
}

func (b *docBuilder) body(field string, body Body) error {
	if err := b.frame(field, body.ID, body.ID+frameSuffix, body.Name, body.Placement); err != nil {
		return err
	}
	linear, err := vec3(field+".linear_velocity", body.LinearVelocity)
	if err != nil {
		return err
	}
	angular, err := vec3(field+".angular_velocity", body.AngularVelocity)
	if err != nil {
		return err
	}
	motion := entity.MotionControl(body.MotionControl)
	if motion == "" {
		motion = entity.MotionDynamics
	}
	err = b.doc.AddBody(entity.RigidBody{
		ID:              entity.KeyID(body.ID),
		Name:            body.Name,
		Frame:           entity.KeyID(body.ID + frameSuffix),
		MotionControl:   motion,
		Mass:            body.Mass,
		LinearVelocity:  linear,
		AngularVelocity: angular,
	})
	if err != nil {
		return invalid(field, err)
	}
	return nil
}

func (b *docBuilder) geometry(field string, g Geometry) error {
	p := g.Placement
	if p.Parent == "" {
		p.Parent = g.Body
	}
	if err := b.frame(field, g.ID, g.ID+frameSuffix, g.Name, p); err != nil {
		return err
	}

	shapes := make([]entity.Shape, 0, len(g.Shapes))
	for i, s := range g.Shapes {
		half, err := vec3(fmt.Sprintf("%s.shapes[%d].half_extents", field, i), s.HalfExtents)
		if err != nil {
			return err
		}
		shapes = append(shapes, entity.Shape{
			Type:        entity.ShapeType(s.Type),
			HalfExtents: half,
			Radius:      s.Radius,
			Height:      s.Height,
			VertexCount: s.VertexCount,
		})
	}

	collisions := true
	if g.Collisions != nil {
		collisions = *g.Collisions
	}
	err := b.doc.AddGeometry(entity.Geometry{
		ID:                entity.KeyID(g.ID),
		Name:              g.Name,
		Frame:             entity.KeyID(g.ID + frameSuffix),
		Body:              entity.KeyID(g.Body),
		Material:          entity.KeyID(g.Material),
		CollisionsEnabled: collisions,
		Shapes:            shapes,
	})
	if err != nil {
		return invalid(field, err)
	}
	return nil
}

func placement(field string, p Placement) (entity.Transform, error) {
	pos, err := vec3(field+".position", p.Position)
	if err != nil {
		return entity.Transform{}, err
	}
	switch len(p.Rotation) {
	case 0:
		return entity.Transform{Position: pos, Rotation: mgl64.QuatIdent()}, nil
	case 4:
		r := p.Rotation
		return entity.NewTransform(pos, r[0], r[1], r[2], r[3]), nil
	default:
		return entity.Transform{}, &DecodeError{
			Field:   field + ".rotation",
			Message: fmt.Sprintf("expected [w, x, y, z], got %d values", len(p.Rotation)),
		}
	}
}

func vec3(field string, v []float64) (mgl64.Vec3, error) {
	switch len(v) {
	case 0:
		return mgl64.Vec3{}, nil
	case 3:
		return mgl64.Vec3{v[0], v[1], v[2]}, nil
	default:
		return mgl64.Vec3{}, &DecodeError{Field: field, Message: fmt.Sprintf("expected [x, y, z], got %d values", len(v))}
	}
}

func keyIDs(keys []string) []entity.ID {
	ids := make([]entity.ID, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, entity.KeyID(k))
	}
	return ids
}

func invalid(field string, err error) error {
	return &DecodeError{Field: field, Message: err.Error()}
}
