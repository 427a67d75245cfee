package tree

import (
	"errors"

	"github.com/roach88/simgraph/internal/entity"
)

// Tree is the node registry of one reconstruction pass.
//
// INVARIANTS:
//   - At most one Node per identifier (get-or-create).
//   - The four root lists are pairwise disjoint.
//   - A root has no parent; every other node has exactly one.
//   - References are symmetric at all times.
type Tree struct {
	nodes map[entity.ID]*Node
	order []entity.ID // registration order

	roots  [rootCategoryCount][]entity.ID
	rootOf map[entity.ID]RootCategory

	// backing holds the entities captured on first creation, for attribute
	// lookup by the generator. Borrowed from the source, never mutated.
	backing map[entity.ID]entity.Entity

	diagnostics []Diagnostic
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{
		nodes:   make(map[entity.ID]*Node),
		rootOf:  make(map[entity.ID]RootCategory),
		backing: make(map[entity.ID]entity.Entity),
	}
}

// GetOrCreate returns the node registered under id, creating it if needed.
//
// An existing node is returned unchanged. Otherwise onFirstCreate (if not nil)
// runs first, so the caller can stash the backing entity, then a node of kind
// is registered and, when isRoot is set, appended to the root list matching
// kind.
//
// Returns a StructuralError if an existing node has a different kind, or if
// the new root collides with an existing root.
func (t *Tree) GetOrCreate(kind Kind, id entity.ID, isRoot bool, onFirstCreate func()) (*Node, error) {
	if n, ok := t.nodes[id]; ok {
		if n.kind != kind {
			return nil, structuralf(ErrCodeKindMismatch, id, "registered as %s, requested as %s", n.kind, kind)
		}
		return n, nil
	}

	if onFirstCreate != nil {
		onFirstCreate()
	}

	n := newNode(kind, id)
	t.nodes[id] = n
	t.order = append(t.order, id)

	if isRoot {
		if err := t.addRoot(n); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func (t *Tree) addRoot(n *Node) error {
	cat := categoryOf(n.kind)
	if prev, ok := t.rootOf[n.id]; ok {
		if prev == GenericRoots && cat == GenericRoots {
			return structuralf(ErrCodeDuplicateRoot, n.id, "%s is already a generic root", n.kind)
		}
		return structuralf(ErrCodeDuplicateRoot, n.id, "%s is already a %s root", n.kind, prev)
	}
	if n.hasParent {
		return structuralf(ErrCodeRootedChild, n.id, "%s has parent %s and cannot be a root", n.kind, n.parent)
	}
	t.rootOf[n.id] = cat
	t.roots[cat] = append(t.roots[cat], n.id)
	return nil
}

// AddChild makes child a child of parent.
//
// Fails with a StructuralError if child already has a parent, is a root, or
// is parent itself.
func (t *Tree) AddChild(parent, child *Node) error {
	if cat, ok := t.rootOf[child.id]; ok {
		return structuralf(ErrCodeRootedChild, child.id, "%s is a %s root and cannot be parented", child.kind, cat)
	}
	if err := child.setParent(parent); err != nil {
		return err
	}
	parent.children = append(parent.children, child.id)
	return nil
}

// AddReference adds a symmetric reference edge between a and b.
// Adding an existing edge is a no-op. References never imply ownership.
func (t *Tree) AddReference(a, b *Node) {
	if a.id == b.id {
		return
	}
	a.addRef(b.id)
	b.addRef(a.id)
}

// Node returns the node registered under id.
func (t *Tree) Node(id entity.ID) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Len returns the number of registered nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Nodes returns all nodes in registration order.
func (t *Tree) Nodes() []*Node {
	return t.resolve(t.order)
}

// Roots returns the nodes of one root list, in insertion order.
func (t *Tree) Roots(cat RootCategory) []*Node {
	if cat < 0 || cat >= rootCategoryCount {
		return nil
	}
	return t.resolve(t.roots[cat])
}

// RootCategoryOf reports which root list holds id, if any.
func (t *Tree) RootCategoryOf(id entity.ID) (RootCategory, bool) {
	cat, ok := t.rootOf[id]
	return cat, ok
}

// Parent returns n's parent node, or nil for a root.
func (t *Tree) Parent(n *Node) *Node {
	if !n.hasParent {
		return nil
	}
	return t.nodes[n.parent]
}

// Children returns n's child nodes in insertion order.
func (t *Tree) Children(n *Node) []*Node {
	return t.resolve(n.children)
}

// References returns the nodes n references, in insertion order.
func (t *Tree) References(n *Node) []*Node {
	return t.resolve(n.refs)
}

// Backing returns the entity captured when the node for id was created.
func (t *Tree) Backing(id entity.ID) (entity.Entity, bool) {
	e, ok := t.backing[id]
	return e, ok
}

// Stash records e as the backing entity of its identifier.
// Intended for GetOrCreate's onFirstCreate callback.
func (t *Tree) Stash(e entity.Entity) {
	t.backing[e.EntityID()] = e
}

// Diagnostics returns the inconsistencies absorbed while building the tree.
func (t *Tree) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(t.diagnostics))
	copy(out, t.diagnostics)
	return out
}

// AddDiagnostic records an absorbed inconsistency.
func (t *Tree) AddDiagnostic(d Diagnostic) {
	t.diagnostics = append(t.diagnostics, d)
}

func (t *Tree) resolve(ids []entity.ID) []*Node {
	out := make([]*Node, 0, len(ids))
	for _, id := range ids {
		if n, ok := t.nodes[id]; ok {
			out = append(out, n)
		}
	}
	return out
}

// Validate checks every tree invariant and returns all violations joined.
// A nil result means the tree is safe to generate from.
func (t *Tree) Validate() error {
	var errs []error

	seen := make(map[entity.ID]RootCategory)
	for cat := RootCategory(0); cat < rootCategoryCount; cat++ {
		for _, id := range t.roots[cat] {
			if prev, ok := seen[id]; ok {
				errs = append(errs, structuralf(ErrCodeInvariant, id, "listed in both %s and %s roots", prev, cat))
				continue
			}
			seen[id] = cat
			n, ok := t.nodes[id]
			if !ok {
				errs = append(errs, structuralf(ErrCodeInvariant, id, "%s root is not registered", cat))
				continue
			}
			if n.hasParent {
				errs = append(errs, structuralf(ErrCodeInvariant, id, "%s root has parent %s", cat, n.parent))
			}
		}
	}

	for _, id := range t.order {
		n := t.nodes[id]
		if n.hasParent {
			p, ok := t.nodes[n.parent]
			switch {
			case !ok:
				errs = append(errs, structuralf(ErrCodeInvariant, id, "parent %s is not registered", n.parent))
			case !containsID(p.children, id):
				errs = append(errs, structuralf(ErrCodeInvariant, id, "parent %s does not list it as a child", n.parent))
			}
		} else if _, ok := t.rootOf[id]; !ok {
			errs = append(errs, structuralf(ErrCodeInvariant, id, "%s is neither a root nor a child", n.kind))
		}

		for _, cid := range n.children {
			c, ok := t.nodes[cid]
			if !ok || !c.hasParent || c.parent != id {
				errs = append(errs, structuralf(ErrCodeInvariant, id, "child %s does not point back", cid))
			}
		}

		for _, rid := range n.refs {
			r, ok := t.nodes[rid]
			if !ok {
				errs = append(errs, structuralf(ErrCodeInvariant, id, "reference %s is not registered", rid))
				continue
			}
			if !r.HasReference(id) {
				errs = append(errs, structuralf(ErrCodeInvariant, id, "reference to %s is not symmetric", rid))
			}
		}
	}

	if len(errs) == 0 {
		if err := t.checkReachable(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// checkReachable walks every parent chain to a root, catching parent cycles.
func (t *Tree) checkReachable() error {
	reached := make(map[entity.ID]bool, len(t.nodes))
	for _, id := range t.order {
		var chain []entity.ID
		cur := id
		for !reached[cur] {
			if containsID(chain, cur) {
				return structuralf(ErrCodeInvariant, id, "parent chain loops at %s", cur)
			}
			chain = append(chain, cur)
			n := t.nodes[cur]
			if !n.hasParent {
				break
			}
			cur = n.parent
		}
		for _, c := range chain {
			reached[c] = true
		}
	}
	return nil
}

func containsID(ids []entity.ID, id entity.ID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
