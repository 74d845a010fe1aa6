package space

import (
	"fmt"
	"math"
)

// Vector3 is a point or direction in simulation space.
type Vector3 struct {
	X, Y, Z float64
}

func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vector3) Scale(f float64) Vector3 {
	return Vector3{v.X * f, v.Y * f, v.Z * f}
}

func (v Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func (v Vector3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// LessOrEqual reports whether v <= o on every axis.
func (v Vector3) LessOrEqual(o Vector3) bool {
	return v.X <= o.X && v.Y <= o.Y && v.Z <= o.Z
}

func (v Vector3) String() string {
	return fmt.Sprintf("%g,%g,%g", v.X, v.Y, v.Z)
}

// Quaternion is a rotation. Use NewQuaternion or Normalize to keep it unit length.
type Quaternion struct {
	W, X, Y, Z float64
}

// IdentityQuaternion is the zero rotation.
var IdentityQuaternion = Quaternion{W: 1}

func NewQuaternion(w, x, y, z float64) Quaternion {
	return Quaternion{w, x, y, z}.Normalize()
}

// Normalize returns q scaled to unit length. The zero quaternion maps to identity.
func (q Quaternion) Normalize() Quaternion {
	n := math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if n == 0 {
		return IdentityQuaternion
	}
	return Quaternion{q.W / n, q.X / n, q.Y / n, q.Z / n}
}

func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{q.W, -q.X, -q.Y, -q.Z}
}

// Mul returns the Hamilton product q*o (apply o, then q).
func (q Quaternion) Mul(o Quaternion) Quaternion {
	return Quaternion{
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
	}
}

// Rotate applies q to v.
func (q Quaternion) Rotate(v Vector3) Vector3 {
	p := q.Mul(Quaternion{0, v.X, v.Y, v.Z}).Mul(q.Conjugate())
	return Vector3{p.X, p.Y, p.Z}
}

// FromEulerAngles builds a rotation from angles in radians, applied Z first,
// then Y, then X.
func FromEulerAngles(z, y, x float64) Quaternion {
	cz, sz := math.Cos(z/2), math.Sin(z/2)
	cy, sy := math.Cos(y/2), math.Sin(y/2)
	cx, sx := math.Cos(x/2), math.Sin(x/2)
	return Quaternion{
		W: cz*cy*cx + sz*sy*sx,
		X: cz*cy*sx - sz*sy*cx,
		Y: cz*sy*cx + sz*cy*sx,
		Z: sz*cy*cx - cz*sy*sx,
	}.Normalize()
}

// OrientationFromDegrees reads v as (Z, Y, X) Euler angles in degrees, which is
// how orientation generators and body configs express rotations.
func OrientationFromDegrees(v Vector3) Quaternion {
	const toRad = math.Pi / 180
	return FromEulerAngles(v.X*toRad, v.Y*toRad, v.Z*toRad)
}

// AABB is an axis aligned box.
type AABB struct {
	Min, Max Vector3
}

// Contains reports whether p lies in the box, borders included.
func (b AABB) Contains(p Vector3) bool {
	return b.Min.LessOrEqual(p) && p.LessOrEqual(b.Max)
}

// Overlaps reports whether the interiors of b and o intersect. Touching faces
// do not count.
func (b AABB) Overlaps(o AABB) bool {
	return b.Min.X < o.Max.X && o.Min.X < b.Max.X &&
		b.Min.Y < o.Max.Y && o.Min.Y < b.Max.Y &&
		b.Min.Z < o.Max.Z && o.Min.Z < b.Max.Z
}

func (b AABB) Center() Vector3 {
	return b.Min.Add(b.Max).Scale(0.5)
}
