// Package geometry converts rigid transforms between the representation used
// inside the simulator and the vector, quaternion and pose types of a
// simulation backend.
package geometry

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrNotUnit is returned when a rotation quaternion is not normalized.
var ErrNotUnit = errors.New("geometry: rotation is not a unit quaternion")

const unitTolerance = 1e-6

// Transform is a rigid transform: a rotation followed by a translation.
// Rotation must be a unit quaternion.
type Transform struct {
	Translation r3.Vec
	Rotation    quat.Number
}

// Identity returns the transform that changes nothing.
func Identity() Transform {
	return Transform{Rotation: quat.Number{Real: 1}}
}

// NewTransform creates a Transform and checks that the rotation is
// normalized.
func NewTransform(translation r3.Vec, rotation quat.Number) (Transform, error) {
	if n := quat.Abs(rotation); math.Abs(n-1) > unitTolerance {
		return Transform{}, fmt.Errorf("%w: norm %g", ErrNotUnit, n)
	}

	return Transform{Translation: translation, Rotation: rotation}, nil
}

// Translation returns a pure translation.
func Translation(v r3.Vec) Transform {
	tf := Identity()
	tf.Translation = v

	return tf
}

// Apply maps a point through the transform.
func (t Transform) Apply(p r3.Vec) r3.Vec {
	return r3.Add(rotate(t.Rotation, p), t.Translation)
}

// Compose returns the transform that applies o first and then t.
func (t Transform) Compose(o Transform) Transform {
	return Transform{
		Translation: t.Apply(o.Translation),
		Rotation:    quat.Mul(t.Rotation, o.Rotation),
	}
}

// Inverse returns the transform that undoes t.
func (t Transform) Inverse() Transform {
	inv := quat.Conj(t.Rotation)

	return Transform{
		Translation: rotate(inv, r3.Scale(-1, t.Translation)),
		Rotation:    inv,
	}
}

// Matrix returns the 4x4 homogeneous matrix of the transform.
func (t Transform) Matrix() *mat.Dense {
	w, x, y, z := t.Rotation.Real, t.Rotation.Imag, t.Rotation.Jmag, t.Rotation.Kmag

	return mat.NewDense(4, 4, []float64{
		1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y), t.Translation.X,
		2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x), t.Translation.Y,
		2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y), t.Translation.Z,
		0, 0, 0, 1,
	})
}

func rotate(q quat.Number, p r3.Vec) r3.Vec {
	v := quat.Number{Imag: p.X, Jmag: p.Y, Kmag: p.Z}
	r := quat.Mul(quat.Mul(q, v), quat.Conj(q))

	return r3.Vec{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}
