package snapshot

import (
	"github.com/roach88/simgraph/internal/entity"
	"github.com/roach88/simgraph/internal/scene"
)

// Marshal returns the canonical JSON snapshot of g.
//
// The snapshot is {"objects": [...]}, one entry per top-level object, each
// nesting its children. Objects carry their local transform, components and
// the names of the objects they reference.
func Marshal(g *scene.Graph) ([]byte, error) {
	return MarshalCanonical(Tree(g))
}

// Tree converts g into the map form that Marshal serializes.
func Tree(g *scene.Graph) map[string]any {
	roots := g.Roots()
	objects := make([]any, 0, len(roots))
	for _, o := range roots {
		objects = append(objects, object(g, o))
	}
	return map[string]any{"objects": objects}
}

func object(g *scene.Graph, o *scene.Object) map[string]any {
	m := map[string]any{
		"name":  o.Name,
		"kind":  o.Kind,
		"local": transform(o.Local),
	}

	if len(o.Components) > 0 {
		components := make([]any, 0, len(o.Components))
		for _, c := range o.Components {
			comp := map[string]any{"type": c.Type}
			if len(c.Properties) > 0 {
				comp["properties"] = c.Properties
			}
			components = append(components, comp)
		}
		m["components"] = components
	}

	if len(o.References) > 0 {
		refs := make([]string, 0, len(o.References))
		for _, h := range o.References {
			if r, ok := g.Object(h); ok {
				refs = append(refs, r.Name)
			}
		}
		m["references"] = refs
	}

	if children := g.Children(o); len(children) > 0 {
		list := make([]any, 0, len(children))
		for _, c := range children {
			list = append(list, object(g, c))
		}
		m["children"] = list
	}
	return m
}

func transform(t entity.Transform) map[string]any {
	q := t.Rotation
	if q.W == 0 && q.V.Len() == 0 {
		q = entity.Identity().Rotation
	}
	return map[string]any{
		"position": []float64{t.Position[0], t.Position[1], t.Position[2]},
		"rotation": []float64{q.W, q.V[0], q.V[1], q.V[2]},
	}
}
