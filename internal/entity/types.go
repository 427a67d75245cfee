package entity

import "github.com/go-gl/mathgl/mgl64"

// Entity is implemented by every entity kind the source provides.
type Entity interface {
	EntityID() ID
	EntityName() string
}

// Frame is a coordinate frame. Frames form a forest through Parent.
type Frame struct {
	ID     ID
	Name   string
	Parent ID // Nil for a top-level frame
	Local  Transform
}

// MotionControl selects how a rigid body is driven.
type MotionControl string

const (
	MotionDynamics   MotionControl = "dynamics"
	MotionKinematics MotionControl = "kinematics"
	MotionStatic     MotionControl = "static"
)

// RigidBody is a simulated body. Its Frame is owned by the body.
type RigidBody struct {
	ID              ID
	Name            string
	Frame           ID
	MotionControl   MotionControl
	Mass            float64
	LinearVelocity  mgl64.Vec3
	AngularVelocity mgl64.Vec3
}

// ShapeType enumerates collision primitive types.
type ShapeType string

const (
	ShapeBox      ShapeType = "box"
	ShapeSphere   ShapeType = "sphere"
	ShapeCapsule  ShapeType = "capsule"
	ShapeCylinder ShapeType = "cylinder"
	ShapePlane    ShapeType = "plane"
	ShapeTrimesh  ShapeType = "trimesh"
)

// Shape is one collision primitive of a geometry.
type Shape struct {
	Type        ShapeType
	HalfExtents mgl64.Vec3 // box
	Radius      float64    // sphere, capsule, cylinder
	Height      float64    // capsule, cylinder
	VertexCount int        // trimesh
}

// Geometry is a collision geometry, either attached to a body or free.
type Geometry struct {
	ID                ID
	Name              string
	Frame             ID
	Body              ID // Nil when free
	Material          ID // Nil when unassigned
	CollisionsEnabled bool
	Shapes            []Shape
}

// ConstraintType enumerates supported constraint types.
type ConstraintType string

const (
	ConstraintHinge       ConstraintType = "hinge"
	ConstraintPrismatic   ConstraintType = "prismatic"
	ConstraintLock        ConstraintType = "lock"
	ConstraintBall        ConstraintType = "ball"
	ConstraintCylindrical ConstraintType = "cylindrical"
	ConstraintDistance    ConstraintType = "distance"
	ConstraintAngularLock ConstraintType = "angular_lock"
)

// Constraint couples one or two bodies. A second body of Nil attaches the
// constraint to the world.
type Constraint struct {
	ID      ID
	Name    string
	Type    ConstraintType
	Bodies  [2]ID
	Enabled bool
}

// BodyCount returns the number of non-nil attached bodies.
func (c Constraint) BodyCount() int {
	n := 0
	for _, id := range c.Bodies {
		if id != Nil {
			n++
		}
	}
	return n
}

// Material holds bulk surface properties shared by geometries.
type Material struct {
	ID            ID
	Name          string
	Density       float64
	YoungsModulus float64
	Roughness     float64
	Restitution   float64
}

// ContactMaterial describes the interaction between two materials.
// The pair is unordered.
type ContactMaterial struct {
	ID            ID
	Name          string
	Materials     [2]ID
	Friction      float64
	Restitution   float64
	YoungsModulus float64
}

// LinkedStructureType names the specialized subsystem owning a structure.
type LinkedStructureType string

const (
	LinkedCable LinkedStructureType = "cable"
	LinkedWire  LinkedStructureType = "wire"
)

// LinkedStructure is a specialized linear structure (cable, wire) whose
// member bodies and geometries are reconstructed by a dedicated subsystem.
type LinkedStructure struct {
	ID         ID
	Name       string
	Type       LinkedStructureType
	Bodies     []ID
	Geometries []ID
}

func (f Frame) EntityID() ID { return f.ID }
func (f Frame) EntityName() string { return f.Name }
func (b RigidBody) EntityID() ID { return b.ID }
func (b RigidBody) EntityName() string { return b.Name }
func (g Geometry) EntityID() ID { return g.ID }
func (g Geometry) EntityName() string { return g.Name }
func (c Constraint) EntityID() ID { return c.ID }
func (c Constraint) EntityName() string { return c.Name }
func (m Material) EntityID() ID { return m.ID }
func (m Material) EntityName() string { return m.Name }
func (c ContactMaterial) EntityID() ID { return c.ID }
func (c ContactMaterial) EntityName() string { return c.Name }
