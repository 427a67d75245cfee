package entity

import "github.com/go-gl/mathgl/mgl64"

// Transform is a rigid transform: rotation followed by translation.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{Rotation: mgl64.QuatIdent()}
}

// NewTransform builds a transform from a position and a (w, x, y, z) quaternion.
// The rotation is normalized; a zero quaternion becomes the identity.
func NewTransform(position mgl64.Vec3, w, x, y, z float64) Transform {
	q := mgl64.Quat{W: w, V: mgl64.Vec3{x, y, z}}
	if q.Len() == 0 {
		q = mgl64.QuatIdent()
	}
	return Transform{Position: position, Rotation: q.Normalize()}
}

// Compose returns t applied after local, i.e. local expressed in t's parent space.
func (t Transform) Compose(local Transform) Transform {
	return Transform{
		Position: t.Position.Add(t.rotation().Rotate(local.Position)),
		Rotation: t.rotation().Mul(local.rotation()),
	}
}

// Inverse returns the transform that undoes t.
func (t Transform) Inverse() Transform {
	inv := t.rotation().Inverse()
	return Transform{
		Position: inv.Rotate(t.Position).Mul(-1),
		Rotation: inv,
	}
}

// RelativeTo expresses world transform t in the space of parent.
func (t Transform) RelativeTo(parent Transform) Transform {
	return parent.Inverse().Compose(t)
}

// ApproxEqual reports whether t and o agree within epsilon.
func (t Transform) ApproxEqual(o Transform, epsilon float64) bool {
	if !t.Position.ApproxEqualThreshold(o.Position, epsilon) {
		return false
	}
	// q and -q encode the same rotation.
	a, b := t.rotation(), o.rotation()
	return a.ApproxEqualThreshold(b, epsilon) || a.ApproxEqualThreshold(b.Scale(-1), epsilon)
}

// rotation treats the zero value as the identity so that Transform{} is usable.
func (t Transform) rotation() mgl64.Quat {
	if t.Rotation.W == 0 && t.Rotation.V == (mgl64.Vec3{}) {
		return mgl64.QuatIdent()
	}
	return t.Rotation
}
