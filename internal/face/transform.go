package face

import "github.com/Faultbox/fukuwarai/pkg/math"

// TRS is a decomposed transform.
type TRS struct {
	Position   math.Vec3
	Quaternion math.Quat
	Scale      math.Vec3
}

// TRSFromMatrix decomposes m.
func TRSFromMatrix(m math.Mat4) TRS {
	p, q, s := m.Decompose()
	return TRS{Position: p, Quaternion: q, Scale: s}
}

// Matrix composes translation * rotation * scale.
func (t TRS) Matrix() math.Mat4 {
	return math.Compose(t.Position, t.Quaternion, t.Scale)
}

// Transform is a node in a small transform hierarchy. The local TRS is
// public; the world matrix accumulates parents.
type Transform struct {
	TRS
	parent *Transform
}

// NewTransform returns an identity transform.
func NewTransform() *Transform {
	return &Transform{TRS: TRS{
		Quaternion: math.QuatIdentity(),
		Scale:      math.Vec3{X: 1, Y: 1, Z: 1},
	}}
}

// SetMatrix replaces the local TRS with the decomposition of m.
func (t *Transform) SetMatrix(m math.Mat4) {
	t.TRS = TRSFromMatrix(m)
}

// SetParent attaches t below parent. A nil parent detaches it.
func (t *Transform) SetParent(parent *Transform) {
	t.parent = parent
}

// Parent returns the parent transform, or nil.
func (t *Transform) Parent() *Transform {
	return t.parent
}

// WorldMatrix returns the local matrix premultiplied by every ancestor.
func (t *Transform) WorldMatrix() math.Mat4 {
	m := t.Matrix()
	for p := t.parent; p != nil; p = p.parent {
		m = p.Matrix().Mul(m)
	}
	return m
}
