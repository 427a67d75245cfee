package tree

import (
	"github.com/roach88/simgraph/internal/entity"
	"github.com/roach88/simgraph/internal/scene"
)

// Node is the structural wrapper around one entity.
//
// Links to other nodes are identifiers, resolved through the owning Tree.
// A node has at most one parent, an ordered list of children, and a
// symmetric set of references. Output is the host object materialized for
// the node; it is unset until the generator visits the node and is never
// reassigned.
type Node struct {
	kind Kind
	id   entity.ID

	parent    entity.ID
	hasParent bool
	children  []entity.ID

	refs   []entity.ID // insertion order
	refSet map[entity.ID]struct{}

	output scene.Handle
}

func newNode(kind Kind, id entity.ID) *Node {
	return &Node{
		kind:   kind,
		id:     id,
		refSet: make(map[entity.ID]struct{}),
	}
}

// Kind returns the node's kind.
func (n *Node) Kind() Kind { return n.kind }

// ID returns the identifier of the backing entity.
func (n *Node) ID() entity.ID { return n.id }

// Parent returns the parent's identifier, if the node has one.
func (n *Node) Parent() (entity.ID, bool) {
	return n.parent, n.hasParent
}

// Children returns child identifiers in insertion order.
func (n *Node) Children() []entity.ID {
	out := make([]entity.ID, len(n.children))
	copy(out, n.children)
	return out
}

// References returns referenced identifiers in insertion order.
func (n *Node) References() []entity.ID {
	out := make([]entity.ID, len(n.refs))
	copy(out, n.refs)
	return out
}

// HasReference reports whether n references id.
func (n *Node) HasReference(id entity.ID) bool {
	_, ok := n.refSet[id]
	return ok
}

// Output returns the materialized host object, or scene.NoHandle.
func (n *Node) Output() scene.Handle { return n.output }

// HasOutput reports whether the node has been materialized.
func (n *Node) HasOutput() bool { return n.output != scene.NoHandle }

// SetOutput records the materialized host object. It fails if an output is
// already set or h is NoHandle.
func (n *Node) SetOutput(h scene.Handle) error {
	if h == scene.NoHandle {
		return structuralf(ErrCodeOutputReassigned, n.id, "%s output set to no handle", n.kind)
	}
	if n.HasOutput() {
		return structuralf(ErrCodeOutputReassigned, n.id, "%s output already set to %d", n.kind, n.output)
	}
	n.output = h
	return nil
}

func (n *Node) setParent(p *Node) error {
	if p.id == n.id {
		return structuralf(ErrCodeSelfParent, n.id, "%s cannot be its own parent", n.kind)
	}
	if n.hasParent {
		return structuralf(ErrCodeDoubleParent, n.id, "%s already has parent %s, refusing %s", n.kind, n.parent, p.id)
	}
	n.parent = p.id
	n.hasParent = true
	return nil
}

func (n *Node) addRef(id entity.ID) {
	if _, ok := n.refSet[id]; ok {
		return
	}
	n.refSet[id] = struct{}{}
	n.refs = append(n.refs, id)
}
