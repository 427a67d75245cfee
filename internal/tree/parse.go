package tree

import (
	"fmt"
	"log/slog"

	"github.com/roach88/simgraph/internal/entity"
)

// Option configures Parse.
type Option func(*builder)

// WithLogger sets the logger for build progress and absorbed inconsistencies.
// Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(b *builder) {
		b.logger = l
	}
}

// WithFilter replaces the validity filter derived from the source's linked
// structures.
func WithFilter(f *Filter) Option {
	return func(b *builder) {
		b.filter = f
	}
}

type builder struct {
	src    entity.Source
	tree   *Tree
	filter *Filter
	logger *slog.Logger
}

// Parse builds a Tree from src.
//
// The source is borrowed for the duration of the call; the tree keeps only
// identifiers and the entity values stashed on first creation. On a
// structural error no tree is returned and the caller should abort the pass.
func Parse(src entity.Source, opts ...Option) (*Tree, error) {
	b := &builder{
		src:    src,
		tree:   New(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.filter == nil {
		b.filter = NewFilter(src.LinkedStructures())
	}

	stages := []struct {
		name string
		run  func() error
	}{
		{"bodies", b.parseBodies},
		{"free geometries", b.parseFreeGeometries},
		{"constraints", b.parseConstraints},
		{"contact materials", b.parseContactMaterials},
	}
	for _, stage := range stages {
		if err := stage.run(); err != nil {
			b.logger.Error("tree build aborted", "stage", stage.name, "error", err)
			return nil, fmt.Errorf("parse %s: %w", stage.name, err)
		}
		b.logger.Debug("tree stage complete", "stage", stage.name, "nodes", b.tree.Len())
	}

	return b.tree, nil
}

func (b *builder) parseBodies() error {
	for _, body := range b.src.Bodies() {
		if !b.filter.ValidBody(body) {
			b.logger.Debug("skipping body owned by linked structure", "uuid", body.ID, "name", body.Name)
			continue
		}

		parent, err := b.assemblyParent(body.Frame, nil)
		if err != nil {
			return err
		}
		node, err := b.tree.GetOrCreate(KindRigidBody, body.ID, parent == nil, func() {
			b.tree.Stash(body)
		})
		if err != nil {
			return err
		}
		if parent != nil {
			if err := b.tree.AddChild(parent, node); err != nil {
				return err
			}
		}

		for _, geom := range b.src.BodyGeometries(body.ID) {
			if !b.filter.ValidGeometry(geom) {
				continue
			}
			if err := b.geometry(geom, node); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *builder) parseFreeGeometries() error {
	for _, geom := range b.src.Geometries() {
		if !b.filter.ValidGeometry(geom) {
			continue
		}

		// Attached geometries were handled with their body.
		if geom.Body != entity.Nil {
			if _, ok := b.tree.Node(geom.ID); !ok {
				b.warn(DiagOrphanGeometry, geom.ID,
					fmt.Sprintf("geometry %q is attached to body %s, which was not reconstructed", geom.Name, geom.Body))
			}
			continue
		}

		parent, err := b.assemblyParent(geom.Frame, nil)
		if err != nil {
			return err
		}
		if err := b.geometry(geom, parent); err != nil {
			return err
		}
	}
	return nil
}

// geometry creates the node for geom under parent (or as a generic root when
// parent is nil) and links its material.
func (b *builder) geometry(geom entity.Geometry, parent *Node) error {
	node, err := b.tree.GetOrCreate(KindGeometry, geom.ID, parent == nil, func() {
		b.tree.Stash(geom)
	})
	if err != nil {
		return err
	}
	if parent != nil {
		if err := b.tree.AddChild(parent, node); err != nil {
			return err
		}
	}

	if geom.Material == entity.Nil {
		return nil
	}
	mat, ok := b.src.Material(geom.Material)
	if !ok {
		b.warn(DiagMissingMaterial, geom.ID,
			fmt.Sprintf("geometry %q references unknown material %s", geom.Name, geom.Material))
		return nil
	}
	matNode, err := b.material(mat)
	if err != nil {
		return err
	}
	b.tree.AddReference(node, matNode)
	return nil
}

func (b *builder) material(mat entity.Material) (*Node, error) {
	return b.tree.GetOrCreate(KindMaterial, mat.ID, true, func() {
		b.tree.Stash(mat)
	})
}

func (b *builder) parseConstraints() error {
	for _, c := range b.src.Constraints() {
		if !b.filter.ValidConstraint(c) {
			b.logger.Debug("skipping constraint without bodies", "uuid", c.ID, "name", c.Name)
			continue
		}

		node, err := b.tree.GetOrCreate(KindConstraint, c.ID, true, func() {
			b.tree.Stash(c)
		})
		if err != nil {
			return err
		}

		// A body filtered out earlier simply has no node to reference.
		for _, bodyID := range c.Bodies {
			if bodyID == entity.Nil {
				continue
			}
			bodyNode, ok := b.tree.Node(bodyID)
			if !ok || bodyNode.Kind() != KindRigidBody {
				continue
			}
			b.tree.AddReference(node, bodyNode)
		}
	}
	return nil
}

func (b *builder) parseContactMaterials() error {
	materials := b.src.Materials()
	for i := range materials {
		for j := i; j < len(materials); j++ {
			cm, ok := b.src.ContactMaterial(materials[i].ID, materials[j].ID)
			if !ok {
				continue
			}

			node, err := b.tree.GetOrCreate(KindContactMaterial, cm.ID, true, func() {
				b.tree.Stash(cm)
			})
			if err != nil {
				return err
			}
			for _, mat := range []entity.Material{materials[i], materials[j]} {
				matNode, err := b.material(mat)
				if err != nil {
					return err
				}
				b.tree.AddReference(node, matNode)
			}
		}
	}
	return nil
}

// assemblyParent resolves the assembly node that groups the frame child.
//
// There is none when child has no parent frame, or when the parent frame is
// owned by a rigid body (child is then structurally part of that body).
// Otherwise the parent frame becomes an Assembly node, itself resolved
// against its own parent frame so groupings nest. Any unresolvable link
// falls back to "no assembly", leaving the caller a generic root.
func (b *builder) assemblyParent(child entity.ID, visiting map[entity.ID]bool) (*Node, error) {
	frame, ok := b.src.Frame(child)
	if !ok || frame.Parent == entity.Nil {
		return nil, nil
	}
	if _, owned := b.src.FrameOwner(frame.Parent); owned {
		return nil, nil
	}
	parent, ok := b.src.Frame(frame.Parent)
	if !ok {
		return nil, nil
	}
	if n, ok := b.tree.Node(parent.ID); ok {
		if n.Kind() != KindAssembly {
			return nil, structuralf(ErrCodeKindMismatch, parent.ID, "frame is registered as %s, not an assembly", n.Kind())
		}
		return n, nil
	}

	if visiting == nil {
		visiting = make(map[entity.ID]bool)
	}
	visiting[child] = true
	if visiting[parent.ID] {
		b.warn(DiagFrameCycle, parent.ID,
			fmt.Sprintf("frame %q is its own ancestor; treating it as a root", parent.Name))
		return nil, nil
	}
	visiting[parent.ID] = true

	grand, err := b.assemblyParent(parent.ID, visiting)
	if err != nil {
		return nil, err
	}
	node, err := b.tree.GetOrCreate(KindAssembly, parent.ID, grand == nil, func() {
		b.tree.Stash(parent)
	})
	if err != nil {
		return nil, err
	}
	if grand != nil {
		if err := b.tree.AddChild(grand, node); err != nil {
			return nil, err
		}
	}
	return node, nil
}

func (b *builder) warn(code DiagnosticCode, id entity.ID, msg string) {
	b.logger.Warn("classification inconsistency", "code", string(code), "uuid", id, "message", msg)
	b.tree.AddDiagnostic(Diagnostic{Code: code, ID: id, Message: msg})
}
