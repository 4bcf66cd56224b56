package raster

import (
	"math"

	"fe-shell-renderer/internal/mathutil"
)

// LightConfig holds a key light, a rim light and the display transfer
// curve. Build one with DefaultLightConfig and change the gamma only through
// SetGamma, which keeps the lookup tables in step.
type LightConfig struct {
	Key  mathutil.Vec3 // unit direction towards the key light, view space
	Rim  mathutil.Vec3 // unit direction towards the rim light, view space
	Half mathutil.Vec3 // Blinn-Phong half vector of the key light

	Ambient  float64
	Hemi     float64
	Direct   float64
	RimGain  float64
	SpecInt  float64
	SpecPow  float64
	Exposure float64

	gamma    float64
	invGamma float64
	toLinear [256]float64
}

// DefaultLightConfig returns key and rim lighting for a camera looking down
// -Z, with a 2.2 display gamma.
func DefaultLightConfig() LightConfig {
	key := mathutil.Vec3{180, 260, 140}.Normalize()
	eye := mathutil.Vec3{0, -110, -400}.Normalize()

	lc := LightConfig{
		Key:      key,
		Rim:      mathutil.Vec3{-160, 130, -210}.Normalize(),
		Half:     key.Sub(eye).Normalize(),
		Ambient:  0.55,
		Hemi:     0.50,
		Direct:   1.50,
		RimGain:  0.60,
		SpecInt:  0.45,
		SpecPow:  12.0,
		Exposure: 1.05,
	}
	lc.SetGamma(2.2)
	return lc
}

// SetGamma sets the sRGB decode/encode exponent. Values <= 0 reset it to 2.2.
func (lc *LightConfig) SetGamma(g float64) {
	if g <= 0 {
		g = 2.2
	}
	lc.gamma = g
	lc.invGamma = 1 / g
	for i := range lc.toLinear {
		lc.toLinear[i] = math.Pow(float64(i)/255, g)
	}
}

// Gamma returns the display gamma in use.
func (lc *LightConfig) Gamma() float64 { return lc.gamma }

// linear maps an 8-bit sRGB channel to linear light.
func (lc *LightConfig) linear(c uint8) float64 { return lc.toLinear[c] }

// encode maps linear light back to an 8-bit display value, tone mapping first.
func (lc *LightConfig) encode(x float64) uint8 {
	return clamp255(math.Pow(ACESTonemap(x), lc.invGamma) * 255)
}

// ComputeShade returns the lighting scalar for a unit view-space face normal.
// Both faces of a shell receive the same light.
func (lc *LightConfig) ComputeShade(normal mathutil.Vec3) float64 {
	key := math.Abs(float64(normal.Dot(lc.Key)))
	rim := math.Abs(float64(normal.Dot(lc.Rim)))
	hemi := ((1-math.Abs(float64(normal[1])))*0.5 + 0.5) * lc.Hemi
	spec := math.Pow(math.Abs(float64(normal.Dot(lc.Half))), lc.SpecPow) * lc.SpecInt

	return lc.Ambient + hemi + key*lc.Direct + rim*lc.RimGain + spec
}

// ACESTonemap applies the ACES filmic curve to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}
