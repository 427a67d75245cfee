package tree

import "github.com/roach88/simgraph/internal/entity"

// Filter decides which entities are eligible for generic reconstruction.
//
// Members of specialized linked structures (cables, wires) are reconstructed
// by their own subsystem and are excluded here. The filter is immutable once
// built; its predicates have no side effects.
type Filter struct {
	bodies     map[entity.ID]struct{}
	geometries map[entity.ID]struct{}
}

// NewFilter builds a filter from the specialized structures of a source.
func NewFilter(structures []entity.LinkedStructure) *Filter {
	f := &Filter{
		bodies:     make(map[entity.ID]struct{}),
		geometries: make(map[entity.ID]struct{}),
	}
	for _, s := range structures {
		for _, id := range s.Bodies {
			f.bodies[id] = struct{}{}
		}
		for _, id := range s.Geometries {
			f.geometries[id] = struct{}{}
		}
	}
	return f
}

// ValidBody reports whether b is not part of a specialized structure.
func (f *Filter) ValidBody(b entity.RigidBody) bool {
	_, linked := f.bodies[b.ID]
	return !linked
}

// ValidGeometry reports whether g is not owned by a specialized structure,
// either directly or through the body it is attached to.
func (f *Filter) ValidGeometry(g entity.Geometry) bool {
	if _, linked := f.geometries[g.ID]; linked {
		return false
	}
	if g.Body != entity.Nil {
		if _, linked := f.bodies[g.Body]; linked {
			return false
		}
	}
	return true
}

// ValidConstraint reports whether c attaches at least one body.
func (f *Filter) ValidConstraint(c entity.Constraint) bool {
	return c.BodyCount() > 0
}
