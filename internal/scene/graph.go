package scene

import (
	"fmt"
	"io"
	"strings"

	"github.com/roach88/simgraph/internal/entity"
)

// Object is one node of the in-memory scene graph.
type Object struct {
	Handle     Handle
	Name       string
	Kind       string
	Parent     Handle
	Children   []Handle
	World      entity.Transform
	Local      entity.Transform
	Components []Component
	References []Handle
}

// Graph is an in-memory Host.
//
// Not safe for concurrent use; one reconstruction pass writes it.
type Graph struct {
	clock   handleClock
	objects map[Handle]*Object
	roots   []Handle
}

// NewGraph creates an empty scene graph.
func NewGraph() *Graph {
	return &Graph{
		objects: make(map[Handle]*Object),
	}
}

// CreateContainer creates a grouping object.
func (g *Graph) CreateContainer(name string, parent Handle, world entity.Transform) (Handle, error) {
	return g.CreateObject(ObjectSpec{Name: name, Kind: ContainerKind, World: world}, parent)
}

// CreateObject creates a representation object under parent.
func (g *Graph) CreateObject(spec ObjectSpec, parent Handle) (Handle, error) {
	local := spec.World
	var p *Object
	if parent != NoHandle {
		var ok bool
		p, ok = g.objects[parent]
		if !ok {
			return NoHandle, fmt.Errorf("create %q under %d: %w", spec.Name, parent, ErrUnknownHandle)
		}
		local = spec.World.RelativeTo(p.World)
	}
	for _, ref := range spec.References {
		if _, ok := g.objects[ref]; !ok {
			return NoHandle, fmt.Errorf("create %q referencing %d: %w", spec.Name, ref, ErrUnknownHandle)
		}
	}

	h := g.clock.next()
	obj := &Object{
		Handle:     h,
		Name:       spec.Name,
		Kind:       spec.Kind,
		Parent:     parent,
		World:      spec.World,
		Local:      local,
		Components: spec.Components,
		References: append([]Handle(nil), spec.References...),
	}
	g.objects[h] = obj
	if p != nil {
		p.Children = append(p.Children, h)
	} else {
		g.roots = append(g.roots, h)
	}
	return h, nil
}

// Object returns the object addressed by h.
func (g *Graph) Object(h Handle) (*Object, bool) {
	o, ok := g.objects[h]
	return o, ok
}

// Len returns the number of objects.
func (g *Graph) Len() int {
	return len(g.objects)
}

// Roots returns the top-level objects in creation order.
func (g *Graph) Roots() []*Object {
	out := make([]*Object, 0, len(g.roots))
	for _, h := range g.roots {
		out = append(out, g.objects[h])
	}
	return out
}

// Children returns o's children in creation order.
func (g *Graph) Children(o *Object) []*Object {
	out := make([]*Object, 0, len(o.Children))
	for _, h := range o.Children {
		out = append(out, g.objects[h])
	}
	return out
}

// FindByName returns the first object, in handle order, named name.
func (g *Graph) FindByName(name string) (*Object, bool) {
	for h := Handle(1); h <= g.clock.last(); h++ {
		if o, ok := g.objects[h]; ok && o.Name == name {
			return o, true
		}
	}
	return nil, false
}

// Walk visits every object depth-first, parents before children.
// Returning an error from fn stops the walk.
func (g *Graph) Walk(fn func(o *Object, depth int) error) error {
	var visit func(o *Object, depth int) error
	visit = func(o *Object, depth int) error {
		if err := fn(o, depth); err != nil {
			return err
		}
		for _, c := range g.Children(o) {
			if err := visit(c, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	for _, r := range g.Roots() {
		if err := visit(r, 0); err != nil {
			return err
		}
	}
	return nil
}

// Fprint writes an indented outline of the graph, one object per line.
func (g *Graph) Fprint(w io.Writer) error {
	return g.Walk(func(o *Object, depth int) error {
		line := fmt.Sprintf("%s%s [%s]", strings.Repeat("  ", depth), o.Name, o.Kind)
		if len(o.References) > 0 {
			names := make([]string, 0, len(o.References))
			for _, h := range o.References {
				names = append(names, g.objects[h].Name)
			}
			line += " -> " + strings.Join(names, ", ")
		}
		_, err := fmt.Fprintln(w, line)
		return err
	})
}
