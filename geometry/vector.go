package geometry

import "math"

// Vec3 is a 3D vector in metres. All operations return new values and
// never mutate the receiver.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return Vec3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// Magnitude returns the Euclidean norm of the vector.
func (v Vec3) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Magnitude2 returns the squared norm, avoiding the sqrt when only
// relative distances matter.
func (v Vec3) Magnitude2() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Normalized returns the unit vector in the direction of v. Vectors with
// magnitude below 1e-10 normalize to the zero vector instead of blowing
// up the division.
func (v Vec3) Normalized() Vec3 {
	mag := v.Magnitude()
	if mag < 1e-10 {
		return Vec3{}
	}
	return v.Scale(1 / mag)
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product v x other.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// ToSpherical returns the azimuth and elevation of the vector in radians.
// Azimuth is the angle from +X in the XY plane, elevation the angle from
// the XY plane (positive up).
func (v Vec3) ToSpherical() (azimuthRad, elevationRad float64) {
	azimuthRad = math.Atan2(v.Y, v.X)
	elevationRad = math.Atan2(v.Z, math.Sqrt(v.X*v.X+v.Y*v.Y))
	return
}

// FromSpherical returns the unit vector pointing at the given azimuth and
// elevation (radians).
func FromSpherical(azimuthRad, elevationRad float64) Vec3 {
	cosEl := math.Cos(elevationRad)
	return Vec3{
		X: cosEl * math.Cos(azimuthRad),
		Y: cosEl * math.Sin(azimuthRad),
		Z: math.Sin(elevationRad),
	}
}

// RotateX rotates the vector about the X axis by angleRad.
func (v Vec3) RotateX(angleRad float64) Vec3 {
	c, s := math.Cos(angleRad), math.Sin(angleRad)
	return Vec3{
		X: v.X,
		Y: v.Y*c - v.Z*s,
		Z: v.Y*s + v.Z*c,
	}
}

// RotateY rotates the vector about the Y axis by angleRad.
func (v Vec3) RotateY(angleRad float64) Vec3 {
	c, s := math.Cos(angleRad), math.Sin(angleRad)
	return Vec3{
		X: v.X*c + v.Z*s,
		Y: v.Y,
		Z: -v.X*s + v.Z*c,
	}
}

// RotateZ rotates the vector about the Z axis by angleRad.
func (v Vec3) RotateZ(angleRad float64) Vec3 {
	c, s := math.Cos(angleRad), math.Sin(angleRad)
	return Vec3{
		X: v.X*c - v.Y*s,
		Y: v.X*s + v.Y*c,
		Z: v.Z,
	}
}
