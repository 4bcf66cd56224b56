package mathutil

import "github.com/chewxy/math32"

// RotX returns a 3×3 rotation matrix around the X axis. Angle in radians.
func RotX(a float32) Mat3 {
	c, s := math32.Cos(a), math32.Sin(a)
	return Mat3{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}
}

// RotY returns a 3×3 rotation matrix around the Y axis.
func RotY(a float32) Mat3 {
	c, s := math32.Cos(a), math32.Sin(a)
	return Mat3{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}
}

// RotZ returns a 3×3 rotation matrix around the Z axis.
func RotZ(a float32) Mat3 {
	c, s := math32.Cos(a), math32.Sin(a)
	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float32) float32 {
	return d * math32.Pi / 180
}

// OrbitView returns the view rotation for a camera orbiting the model:
// yaw about the model Z axis (simulation decks are Z-up), then pitch about the
// screen X axis. Angles in degrees.
func OrbitView(yawDeg, pitchDeg float32) Mat3 {
	zUpToYUp := RotX(-math32.Pi / 2)
	return Mat3Mul(RotX(Deg2Rad(pitchDeg)), Mat3Mul(zUpToYUp, RotZ(Deg2Rad(yawDeg))))
}
