package generator

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/roach88/simgraph/internal/entity"
	"github.com/roach88/simgraph/internal/scene"
	"github.com/roach88/simgraph/internal/tree"
)

// strategy builds the host object spec for one node kind. Name is filled in
// by the generator.
type strategy func(g *Generator, n *tree.Node, e entity.Entity) (scene.ObjectSpec, error)

// strategies maps each materializable kind to its construction strategy.
var strategies = map[tree.Kind]strategy{
	tree.KindAssembly:        buildAssembly,
	tree.KindRigidBody:       buildRigidBody,
	tree.KindGeometry:        buildGeometry,
	tree.KindConstraint:      buildConstraint,
	tree.KindMaterial:        buildMaterial,
	tree.KindContactMaterial: buildContactMaterial,
}

func buildAssembly(g *Generator, n *tree.Node, e entity.Entity) (scene.ObjectSpec, error) {
	frame, ok := e.(entity.Frame)
	if !ok {
		return scene.ObjectSpec{}, backingError(n, e)
	}
	return scene.ObjectSpec{
		Kind:  tree.KindAssembly.String(),
		World: g.src.WorldTransform(frame.ID),
	}, nil
}

func buildRigidBody(g *Generator, n *tree.Node, e entity.Entity) (scene.ObjectSpec, error) {
	body, ok := e.(entity.RigidBody)
	if !ok {
		return scene.ObjectSpec{}, backingError(n, e)
	}
	return scene.ObjectSpec{
		Kind:  tree.KindRigidBody.String(),
		World: g.src.WorldTransform(body.Frame),
		Components: []scene.Component{{
			Type: "RigidBody",
			Properties: map[string]any{
				"motion_control":   string(body.MotionControl),
				"mass":             body.Mass,
				"linear_velocity":  vec(body.LinearVelocity),
				"angular_velocity": vec(body.AngularVelocity),
			},
		}},
	}, nil
}

func buildGeometry(g *Generator, n *tree.Node, e entity.Entity) (scene.ObjectSpec, error) {
	geom, ok := e.(entity.Geometry)
	if !ok {
		return scene.ObjectSpec{}, backingError(n, e)
	}

	components := make([]scene.Component, 0, len(geom.Shapes)+1)
	components = append(components, scene.Component{
		Type:       "Collisions",
		Properties: map[string]any{"enabled": geom.CollisionsEnabled},
	})
	for _, s := range geom.Shapes {
		components = append(components, shapeComponent(s))
	}

	return scene.ObjectSpec{
		Kind:       tree.KindGeometry.String(),
		World:      g.src.WorldTransform(geom.Frame),
		Components: components,
		References: g.referencedOutputs(n, tree.KindMaterial),
	}, nil
}

func shapeComponent(s entity.Shape) scene.Component {
	props := map[string]any{"type": string(s.Type)}
	switch s.Type {
	case entity.ShapeBox:
		props["half_extents"] = vec(s.HalfExtents)
	case entity.ShapeSphere:
		props["radius"] = s.Radius
	case entity.ShapeCapsule, entity.ShapeCylinder:
		props["radius"] = s.Radius
		props["height"] = s.Height
	case entity.ShapeTrimesh:
		props["vertex_count"] = s.VertexCount
	}
	return scene.Component{Type: "Shape", Properties: props}
}

func buildConstraint(g *Generator, n *tree.Node, e entity.Entity) (scene.ObjectSpec, error) {
	c, ok := e.(entity.Constraint)
	if !ok {
		return scene.ObjectSpec{}, backingError(n, e)
	}
	return scene.ObjectSpec{
		Kind:  tree.KindConstraint.String(),
		World: entity.Identity(),
		Components: []scene.Component{{
			Type: "Constraint",
			Properties: map[string]any{
				"type":    string(c.Type),
				"enabled": c.Enabled,
			},
		}},
		References: g.referencedOutputs(n, tree.KindRigidBody),
	}, nil
}

func buildMaterial(g *Generator, n *tree.Node, e entity.Entity) (scene.ObjectSpec, error) {
	m, ok := e.(entity.Material)
	if !ok {
		return scene.ObjectSpec{}, backingError(n, e)
	}
	return scene.ObjectSpec{
		Kind:  tree.KindMaterial.String(),
		World: entity.Identity(),
		Components: []scene.Component{{
			Type: "Material",
			Properties: map[string]any{
				"density":        m.Density,
				"youngs_modulus": m.YoungsModulus,
				"roughness":      m.Roughness,
				"restitution":    m.Restitution,
			},
		}},
	}, nil
}

func buildContactMaterial(g *Generator, n *tree.Node, e entity.Entity) (scene.ObjectSpec, error) {
	cm, ok := e.(entity.ContactMaterial)
	if !ok {
		return scene.ObjectSpec{}, backingError(n, e)
	}
	return scene.ObjectSpec{
		Kind:  tree.KindContactMaterial.String(),
		World: entity.Identity(),
		Components: []scene.Component{{
			Type: "ContactMaterial",
			Properties: map[string]any{
				"friction":       cm.Friction,
				"restitution":    cm.Restitution,
				"youngs_modulus": cm.YoungsModulus,
			},
		}},
		References: g.referencedOutputs(n, tree.KindMaterial),
	}, nil
}

func backingError(n *tree.Node, e entity.Entity) error {
	return fmt.Errorf("%s node %s is backed by %T", n.Kind(), n.ID(), e)
}

func vec(v mgl64.Vec3) []float64 {
	return []float64{v[0], v[1], v[2]}
}
