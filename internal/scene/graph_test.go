package scene

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/simgraph/internal/entity"
)

func at(x, y, z float64) entity.Transform {
	return entity.Transform{Position: mgl64.Vec3{x, y, z}, Rotation: mgl64.QuatIdent()}
}

func TestGraph_HandlesAreSequential(t *testing.T) {
	g := NewGraph()

	a, err := g.CreateContainer("a", NoHandle, entity.Identity())
	require.NoError(t, err)
	b, err := g.CreateContainer("b", NoHandle, entity.Identity())
	require.NoError(t, err)

	assert.Equal(t, Handle(1), a)
	assert.Equal(t, Handle(2), b)
	assert.Equal(t, 2, g.Len())
	require.Len(t, g.Roots(), 2)
}

func TestGraph_LocalTransformRelativeToParent(t *testing.T) {
	g := NewGraph()
	parentRot := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})
	parent, err := g.CreateContainer("parent", NoHandle, entity.Transform{Position: mgl64.Vec3{10, 0, 0}, Rotation: parentRot})
	require.NoError(t, err)

	child, err := g.CreateObject(ObjectSpec{Name: "child", Kind: "RigidBody", World: at(10, 1, 0)}, parent)
	require.NoError(t, err)

	obj, ok := g.Object(child)
	require.True(t, ok)
	assert.True(t, obj.Local.Position.ApproxEqualThreshold(mgl64.Vec3{1, 0, 0}, 1e-9), "local %v", obj.Local.Position)
	assert.Equal(t, parent, obj.Parent)

	p, _ := g.Object(parent)
	assert.Equal(t, []Handle{child}, p.Children)
}

func TestGraph_UnknownParent(t *testing.T) {
	g := NewGraph()
	_, err := g.CreateObject(ObjectSpec{Name: "x"}, Handle(42))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownHandle))
	assert.Equal(t, 0, g.Len())
}

func TestGraph_UnknownReference(t *testing.T) {
	g := NewGraph()
	_, err := g.CreateObject(ObjectSpec{Name: "x", References: []Handle{7}}, NoHandle)
	require.ErrorIs(t, err, ErrUnknownHandle)
}

func TestGraph_FprintOutline(t *testing.T) {
	g := NewGraph()
	root, _ := g.CreateContainer("scene", NoHandle, entity.Identity())
	mat, _ := g.CreateObject(ObjectSpec{Name: "steel", Kind: "Material"}, root)
	body, _ := g.CreateObject(ObjectSpec{Name: "box", Kind: "RigidBody"}, root)
	_, err := g.CreateObject(ObjectSpec{Name: "shape", Kind: "Geometry", References: []Handle{mat}}, body)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, g.Fprint(&buf))

	want := "scene [Container]\n" +
		"  steel [Material]\n" +
		"  box [RigidBody]\n" +
		"    shape [Geometry] -> steel\n"
	assert.Equal(t, want, buf.String())

	found, ok := g.FindByName("shape")
	require.True(t, ok)
	assert.Equal(t, body, found.Parent)
}
