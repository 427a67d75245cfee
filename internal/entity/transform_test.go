package entity

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

func TestTransform_ZeroValueIsIdentity(t *testing.T) {
	var zero Transform
	local := NewTransform(mgl64.Vec3{1, 2, 3}, 1, 0, 0, 0)

	assert.True(t, zero.Compose(local).ApproxEqual(local, eps))
}

func TestTransform_Compose(t *testing.T) {
	// Parent rotated 90 degrees about Z, translated along X.
	q := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})
	parent := Transform{Position: mgl64.Vec3{10, 0, 0}, Rotation: q}
	local := Transform{Position: mgl64.Vec3{1, 0, 0}, Rotation: mgl64.QuatIdent()}

	world := parent.Compose(local)

	assert.True(t, world.Position.ApproxEqualThreshold(mgl64.Vec3{10, 1, 0}, eps), "got %v", world.Position)
}

func TestTransform_RelativeToRoundTrip(t *testing.T) {
	parent := Transform{
		Position: mgl64.Vec3{1, -2, 3},
		Rotation: mgl64.QuatRotate(0.7, mgl64.Vec3{1, 1, 0}.Normalize()),
	}
	local := Transform{
		Position: mgl64.Vec3{0.5, 0.25, -4},
		Rotation: mgl64.QuatRotate(-1.1, mgl64.Vec3{0, 0, 1}),
	}

	world := parent.Compose(local)
	back := world.RelativeTo(parent)

	assert.True(t, back.ApproxEqual(local, 1e-9), "got %+v want %+v", back, local)
}

func TestTransform_NewTransformNormalizes(t *testing.T) {
	tr := NewTransform(mgl64.Vec3{}, 2, 0, 0, 0)
	assert.InDelta(t, 1.0, tr.Rotation.W, eps)

	zero := NewTransform(mgl64.Vec3{}, 0, 0, 0, 0)
	assert.True(t, zero.ApproxEqual(Identity(), eps))
}
