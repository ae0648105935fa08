package geometry

import (
	geor3 "github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// GeoVector adapts a golang/geo vector.
type GeoVector struct {
	V geor3.Vector `json:"xyz"`
}

// X returns the x component.
func (v GeoVector) X() float64 { return v.V.X }

// Y returns the y component.
func (v GeoVector) Y() float64 { return v.V.Y }

// Z returns the z component.
func (v GeoVector) Z() float64 { return v.V.Z }

// GeoQuaternion adapts a gonum quaternion to the backend accessors.
type GeoQuaternion struct {
	Q quat.Number `json:"wxyz"`
}

// W returns the real part.
func (q GeoQuaternion) W() float64 { return q.Q.Real }

// X returns the i component.
func (q GeoQuaternion) X() float64 { return q.Q.Imag }

// Y returns the j component.
func (q GeoQuaternion) Y() float64 { return q.Q.Jmag }

// Z returns the k component.
func (q GeoQuaternion) Z() float64 { return q.Q.Kmag }

// GeoPose is a pose on golang/geo vectors.
type GeoPose struct {
	Position    GeoVector     `json:"position"`
	Orientation GeoQuaternion `json:"orientation"`
}

// Pos returns the position.
func (p GeoPose) Pos() Vector3 { return p.Position }

// Rot returns the orientation.
func (p GeoPose) Rot() Quaternion { return p.Orientation }

// GeoBackend creates golang/geo based values.
var GeoBackend = Backend[GeoVector, GeoQuaternion, GeoPose]{
	Vector: func(x, y, z float64) GeoVector {
		return GeoVector{V: geor3.Vector{X: x, Y: y, Z: z}}
	},
	Quaternion: func(w, x, y, z float64) GeoQuaternion {
		return GeoQuaternion{Q: quat.Number{Real: w, Imag: x, Jmag: y, Kmag: z}}
	},
	Pose: func(pos GeoVector, rot GeoQuaternion) GeoPose {
		return GeoPose{Position: pos, Orientation: rot}
	},
}
