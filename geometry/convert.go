package geometry

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Vector3 is a backend vector that exposes its components.
type Vector3 interface {
	X() float64
	Y() float64
	Z() float64
}

// Quaternion is a backend quaternion that exposes its components. It is
// expected to be normalized.
type Quaternion interface {
	W() float64
	X() float64
	Y() float64
	Z() float64
}

// Pose is a backend pose made of a position and an orientation.
type Pose interface {
	Pos() Vector3
	Rot() Quaternion
}

// Backend holds the constructors of the vector, quaternion and pose types of
// one simulation backend.
type Backend[V Vector3, Q Quaternion, P Pose] struct {
	Vector     func(x, y, z float64) V
	Quaternion func(w, x, y, z float64) Q
	Pose       func(pos V, rot Q) P
}

// VectorFrom converts a backend vector.
func VectorFrom(v Vector3) r3.Vec {
	return r3.Vec{X: v.X(), Y: v.Y(), Z: v.Z()}
}

// QuaternionFrom converts a backend quaternion.
func QuaternionFrom(q Quaternion) quat.Number {
	return quat.Number{Real: q.W(), Imag: q.X(), Jmag: q.Y(), Kmag: q.Z()}
}

// TransformFrom converts a backend pose.
func TransformFrom(p Pose) Transform {
	return Transform{
		Translation: VectorFrom(p.Pos()),
		Rotation:    QuaternionFrom(p.Rot()),
	}
}

// ToVector creates a backend vector.
func ToVector[V Vector3, Q Quaternion, P Pose](
	b Backend[V, Q, P],
	v r3.Vec,
) V {
	return b.Vector(v.X, v.Y, v.Z)
}

// ToQuaternion creates a backend quaternion.
func ToQuaternion[V Vector3, Q Quaternion, P Pose](
	b Backend[V, Q, P],
	q quat.Number,
) Q {
	return b.Quaternion(q.Real, q.Imag, q.Jmag, q.Kmag)
}

// ToPose creates a backend pose.
func ToPose[V Vector3, Q Quaternion, P Pose](
	b Backend[V, Q, P],
	tf Transform,
) P {
	return b.Pose(ToVector(b, tf.Translation), ToQuaternion(b, tf.Rotation))
}
