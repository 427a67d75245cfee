package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/roach88/simgraph/internal/entity"
)

// Load reads the stored document. Entities come back in saved order.
func (s *Store) Load(ctx context.Context) (*entity.Document, error) {
	doc := entity.NewDocument()
	readers := []func(context.Context, *entity.Document) error{
		s.readFrames,
		s.readMaterials,
		s.readContactMaterials,
		s.readBodies,
		s.readGeometries,
		s.readConstraints,
		s.readLinkedStructures,
	}
	for _, r := range readers {
		if err := r(ctx, doc); err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}
	}
	return doc, nil
}

// OpenSource opens the packed store at path as an entity source for one
// reconstruction pass. The database stays open until the source is closed.
//
// Errors wrap entity.ErrSourceUnavailable.
func OpenSource(ctx context.Context, path string) (*entity.Document, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrSourceUnavailable, err)
	}
	s, err := Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrSourceUnavailable, err)
	}
	doc, err := s.Load(ctx)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("%w: %w", entity.ErrSourceUnavailable, err)
	}
	doc.OnClose(s.Close)
	return doc, nil
}

// scanner is implemented by *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// each runs query and calls fn for every row, ORDER BY seq ASC.
func (s *Store) each(ctx context.Context, table, columns string, fn func(scanner) error) error {
	rows, err := s.db.QueryContext(ctx, "SELECT "+columns+" FROM "+table+" ORDER BY seq ASC")
	if err != nil {
		return fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := fn(rows); err != nil {
			return fmt.Errorf("scan %s: %w", table, err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate %s: %w", table, err)
	}
	return nil
}

func (s *Store) readFrames(ctx context.Context, doc *entity.Document) error {
	return s.each(ctx, "frames", "id, name, parent_id, px, py, pz, qw, qx, qy, qz", func(row scanner) error {
		var (
			id     string
			f      entity.Frame
			parent sql.NullString
			p      mgl64.Vec3
			q      mgl64.Quat
		)
		if err := row.Scan(&id, &f.Name, &parent, &p[0], &p[1], &p[2], &q.W, &q.V[0], &q.V[1], &q.V[2]); err != nil {
			return err
		}
		var err error
		if f.ID, err = entity.ParseID(id); err != nil {
			return err
		}
		if f.Parent, err = scanID(parent); err != nil {
			return err
		}
		f.Local = entity.Transform{Position: p, Rotation: q}
		return doc.AddFrame(f)
	})
}

func (s *Store) readMaterials(ctx context.Context, doc *entity.Document) error {
	return s.each(ctx, "materials", "id, name, density, youngs_modulus, roughness, restitution", func(row scanner) error {
		var (
			id string
			m  entity.Material
		)
		if err := row.Scan(&id, &m.Name, &m.Density, &m.YoungsModulus, &m.Roughness, &m.Restitution); err != nil {
			return err
		}
		var err error
		if m.ID, err = entity.ParseID(id); err != nil {
			return err
		}
		return doc.AddMaterial(m)
	})
}

func (s *Store) readContactMaterials(ctx context.Context, doc *entity.Document) error {
	columns := "id, name, material1_id, material2_id, friction, restitution, youngs_modulus"
	return s.each(ctx, "contact_materials", columns, func(row scanner) error {
		var (
			id     string
			c      entity.ContactMaterial
			m1, m2 sql.NullString
		)
		if err := row.Scan(&id, &c.Name, &m1, &m2, &c.Friction, &c.Restitution, &c.YoungsModulus); err != nil {
			return err
		}
		var err error
		if c.ID, err = entity.ParseID(id); err != nil {
			return err
		}
		if c.Materials[0], err = scanID(m1); err != nil {
			return err
		}
		if c.Materials[1], err = scanID(m2); err != nil {
			return err
		}
		return doc.AddContactMaterial(c)
	})
}

func (s *Store) readBodies(ctx context.Context, doc *entity.Document) error {
	columns := "id, name, frame_id, motion_control, mass, linear_velocity, angular_velocity"
	return s.each(ctx, "bodies", columns, func(row scanner) error {
		var (
			id, motion, linear, angular string
			b                           entity.RigidBody
			frame                       sql.NullString
		)
		if err := row.Scan(&id, &b.Name, &frame, &motion, &b.Mass, &linear, &angular); err != nil {
			return err
		}
		var err error
		if b.ID, err = entity.ParseID(id); err != nil {
			return err
		}
		if b.Frame, err = scanID(frame); err != nil {
			return err
		}
		b.MotionControl = entity.MotionControl(motion)
		if b.LinearVelocity, err = unmarshalVec3(linear); err != nil {
			return err
		}
		if b.AngularVelocity, err = unmarshalVec3(angular); err != nil {
			return err
		}
		return doc.AddBody(b)
	})
}

func (s *Store) readGeometries(ctx context.Context, doc *entity.Document) error {
	columns := "id, name, frame_id, body_id, material_id, collisions, shapes"
	return s.each(ctx, "geometries", columns, func(row scanner) error {
		var (
			id, shapes            string
			g                     entity.Geometry
			frame, body, material sql.NullString
		)
		if err := row.Scan(&id, &g.Name, &frame, &body, &material, &g.CollisionsEnabled, &shapes); err != nil {
			return err
		}
		var err error
		if g.ID, err = entity.ParseID(id); err != nil {
			return err
		}
		if g.Frame, err = scanID(frame); err != nil {
			return err
		}
		if g.Body, err = scanID(body); err != nil {
			return err
		}
		if g.Material, err = scanID(material); err != nil {
			return err
		}
		if g.Shapes, err = unmarshalShapes(shapes); err != nil {
			return err
		}
		return doc.AddGeometry(g)
	})
}

func (s *Store) readConstraints(ctx context.Context, doc *entity.Document) error {
	return s.each(ctx, "constraints", "id, name, type, body1_id, body2_id, enabled", func(row scanner) error {
		var (
			id, typ      string
			c            entity.Constraint
			body1, body2 sql.NullString
		)
		if err := row.Scan(&id, &c.Name, &typ, &body1, &body2, &c.Enabled); err != nil {
			return err
		}
		var err error
		if c.ID, err = entity.ParseID(id); err != nil {
			return err
		}
		c.Type = entity.ConstraintType(typ)
		if c.Bodies[0], err = scanID(body1); err != nil {
			return err
		}
		if c.Bodies[1], err = scanID(body2); err != nil {
			return err
		}
		return doc.AddConstraint(c)
	})
}

func (s *Store) readLinkedStructures(ctx context.Context, doc *entity.Document) error {
	return s.each(ctx, "linked_structures", "id, name, type, bodies, geometries", func(row scanner) error {
		var (
			id, typ, bodies, geoms string
			l                      entity.LinkedStructure
		)
		if err := row.Scan(&id, &l.Name, &typ, &bodies, &geoms); err != nil {
			return err
		}
		var err error
		if l.ID, err = entity.ParseID(id); err != nil {
			return err
		}
		l.Type = entity.LinkedStructureType(typ)
		if l.Bodies, err = unmarshalIDs(bodies); err != nil {
			return err
		}
		if l.Geometries, err = unmarshalIDs(geoms); err != nil {
			return err
		}
		return doc.AddLinkedStructure(l)
	})
}
