package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/simgraph/internal/entity"
)

// Entities enumerates every entity of a document. *entity.Document
// implements it.
type Entities interface {
	Frames() []entity.Frame
	Materials() []entity.Material
	ContactMaterials() []entity.ContactMaterial
	Bodies() []entity.RigidBody
	Geometries() []entity.Geometry
	Constraints() []entity.Constraint
	LinkedStructures() []entity.LinkedStructure
}

// tables lists entity tables in load order.
var tables = []string{
	"frames",
	"materials",
	"contact_materials",
	"bodies",
	"geometries",
	"constraints",
	"linked_structures",
}

// Save replaces the stored document with doc in one transaction.
func (s *Store) Save(ctx context.Context, doc Entities) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save: begin: %w", err)
	}
	defer tx.Rollback()

	for _, table := range tables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("save: clear %s: %w", table, err)
		}
	}

	writers := []func(context.Context, *sql.Tx, Entities) error{
		writeFrames,
		writeMaterials,
		writeContactMaterials,
		writeBodies,
		writeGeometries,
		writeConstraints,
		writeLinkedStructures,
	}
	for _, w := range writers {
		if err := w(ctx, tx, doc); err != nil {
			return fmt.Errorf("save: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save: commit: %w", err)
	}
	return nil
}

func writeFrames(ctx context.Context, tx *sql.Tx, doc Entities) error {
	for _, f := range doc.Frames() {
		p, q := f.Local.Position, f.Local.Rotation
		_, err := tx.ExecContext(ctx, `
			INSERT INTO frames (id, name, parent_id, px, py, pz, qw, qx, qy, qz)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, f.ID.String(), f.Name, nullID(f.Parent), p[0], p[1], p[2], q.W, q.V[0], q.V[1], q.V[2])
		if err != nil {
			return fmt.Errorf("write frame %s: %w", f.ID, err)
		}
	}
	return nil
}

func writeMaterials(ctx context.Context, tx *sql.Tx, doc Entities) error {
	for _, m := range doc.Materials() {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO materials (id, name, density, youngs_modulus, roughness, restitution)
			VALUES (?, ?, ?, ?, ?, ?)
		`, m.ID.String(), m.Name, m.Density, m.YoungsModulus, m.Roughness, m.Restitution)
		if err != nil {
			return fmt.Errorf("write material %s: %w", m.ID, err)
		}
	}
	return nil
}

func writeContactMaterials(ctx context.Context, tx *sql.Tx, doc Entities) error {
	for _, c := range doc.ContactMaterials() {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO contact_materials
			(id, name, material1_id, material2_id, friction, restitution, youngs_modulus)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, c.ID.String(), c.Name, nullID(c.Materials[0]), nullID(c.Materials[1]),
			c.Friction, c.Restitution, c.YoungsModulus)
		if err != nil {
			return fmt.Errorf("write contact material %s: %w", c.ID, err)
		}
	}
	return nil
}

func writeBodies(ctx context.Context, tx *sql.Tx, doc Entities) error {
	for _, b := range doc.Bodies() {
		linear, err := marshalVec3(b.LinearVelocity)
		if err != nil {
			return fmt.Errorf("write body %s: %w", b.ID, err)
		}
		angular, err := marshalVec3(b.AngularVelocity)
		if err != nil {
			return fmt.Errorf("write body %s: %w", b.ID, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO bodies
			(id, name, frame_id, motion_control, mass, linear_velocity, angular_velocity)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, b.ID.String(), b.Name, nullID(b.Frame), string(b.MotionControl), b.Mass, linear, angular)
		if err != nil {
			return fmt.Errorf("write body %s: %w", b.ID, err)
		}
	}
	return nil
}

func writeGeometries(ctx context.Context, tx *sql.Tx, doc Entities) error {
	for _, g := range doc.Geometries() {
		shapes, err := marshalShapes(g.Shapes)
		if err != nil {
			return fmt.Errorf("write geometry %s: %w", g.ID, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO geometries
			(id, name, frame_id, body_id, material_id, collisions, shapes)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, g.ID.String(), g.Name, nullID(g.Frame), nullID(g.Body), nullID(g.Material),
			g.CollisionsEnabled, shapes)
		if err != nil {
			return fmt.Errorf("write geometry %s: %w", g.ID, err)
		}
	}
	return nil
}

func writeConstraints(ctx context.Context, tx *sql.Tx, doc Entities) error {
	for _, c := range doc.Constraints() {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO constraints (id, name, type, body1_id, body2_id, enabled)
			VALUES (?, ?, ?, ?, ?, ?)
		`, c.ID.String(), c.Name, string(c.Type), nullID(c.Bodies[0]), nullID(c.Bodies[1]), c.Enabled)
		if err != nil {
			return fmt.Errorf("write constraint %s: %w", c.ID, err)
		}
	}
	return nil
}

func writeLinkedStructures(ctx context.Context, tx *sql.Tx, doc Entities) error {
	for _, l := range doc.LinkedStructures() {
		bodies, err := marshalIDs(l.Bodies)
		if err != nil {
			return fmt.Errorf("write linked structure %s: %w", l.ID, err)
		}
		geoms, err := marshalIDs(l.Geometries)
		if err != nil {
			return fmt.Errorf("write linked structure %s: %w", l.ID, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO linked_structures (id, name, type, bodies, geometries)
			VALUES (?, ?, ?, ?, ?)
		`, l.ID.String(), l.Name, string(l.Type), bodies, geoms)
		if err != nil {
			return fmt.Errorf("write linked structure %s: %w", l.ID, err)
		}
	}
	return nil
}
