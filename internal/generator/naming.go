package generator

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/simgraph/internal/tree"
)

// Names hands out display names that are unique within one pass.
//
// Uniqueness is decided on the NFC form, so canonically equivalent spellings
// collide, but names are returned as declared.
type Names struct {
	used map[string]struct{}
}

// NewNames creates an empty name registry.
func NewNames() *Names {
	return &Names{used: make(map[string]struct{})}
}

// Claim picks a unique name for an entity of kind declared as declared.
//
// The candidate is the declared name, or the kind's tag when empty. A taken
// candidate gets " (n)" appended for the smallest free n >= 1.
func (n *Names) Claim(declared string, kind tree.Kind) string {
	if declared == "" {
		declared = kind.String()
	}
	return n.ClaimExact(declared)
}

// ClaimExact claims candidate, suffixed if already used.
func (n *Names) ClaimExact(candidate string) string {
	name := candidate
	for i := 1; n.Used(name); i++ {
		name = fmt.Sprintf("%s (%d)", candidate, i)
	}
	n.used[norm.NFC.String(name)] = struct{}{}
	return name
}

// Used reports whether name, or a canonically equivalent spelling, has been
// claimed.
func (n *Names) Used(name string) bool {
	_, ok := n.used[norm.NFC.String(name)]
	return ok
}
