package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/simgraph/internal/tree"
)

func TestNames_EmptyNameFallsBackToKind(t *testing.T) {
	n := NewNames()

	assert.Equal(t, "RigidBody", n.Claim("", tree.KindRigidBody))
	assert.Equal(t, "RigidBody (1)", n.Claim("", tree.KindRigidBody))
	assert.Equal(t, "Geometry", n.Claim("", tree.KindGeometry))
}

func TestNames_DuplicateDeclaredNames(t *testing.T) {
	n := NewNames()

	assert.Equal(t, "Wheel", n.Claim("Wheel", tree.KindRigidBody))
	assert.Equal(t, "Wheel (1)", n.Claim("Wheel", tree.KindRigidBody))
	assert.Equal(t, "Wheel (2)", n.Claim("Wheel", tree.KindGeometry))
}

func TestNames_SuffixSkipsTakenNames(t *testing.T) {
	n := NewNames()

	n.ClaimExact("Arm (1)")
	assert.Equal(t, "Arm", n.Claim("Arm", tree.KindRigidBody))
	assert.Equal(t, "Arm (2)", n.Claim("Arm", tree.KindRigidBody))
}

func TestNames_EquivalentSpellingsCollide(t *testing.T) {
	n := NewNames()

	composed := "Caf\u00e9"
	decomposed := "Cafe\u0301"

	assert.Equal(t, composed, n.Claim(composed, tree.KindMaterial))
	assert.Equal(t, decomposed+" (1)", n.Claim(decomposed, tree.KindMaterial),
		"the suffix goes on the declared spelling")
	assert.True(t, n.Used(decomposed))
}

func TestNames_KeepsDeclaredSpelling(t *testing.T) {
	n := NewNames()

	decomposed := "Cafe\u0301"
	assert.Equal(t, decomposed, n.Claim(decomposed, tree.KindMaterial))
	assert.True(t, n.Used("Caf\u00e9"))
}

func TestNames_ContainersClaimFirst(t *testing.T) {
	n := NewNames()
	n.ClaimExact(DefaultRootName)
	n.ClaimExact("Materials")

	assert.Equal(t, "Materials (1)", n.Claim("Materials", tree.KindRigidBody))
	assert.Equal(t, DefaultRootName+" (1)", n.Claim(DefaultRootName, tree.KindAssembly))
}
