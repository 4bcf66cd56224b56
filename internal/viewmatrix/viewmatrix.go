package viewmatrix

import (
	"math"

	"fe-shell-renderer/internal/mathutil"
	"fe-shell-renderer/internal/vertexbuf"
)

// DefaultFOV is the vertical field of view, in degrees, used when a
// perspective camera does not set one.
const DefaultFOV = 35.0

// Camera maps model-space positions to pixel coordinates of a square
// render target. Screen Y grows downward; larger Z is nearer the viewer.
type Camera struct {
	R      mathutil.Mat3
	Center [3]float64
	Scale  float64
	Half   float64

	Perspective  bool
	perspDist    float64
	perspZCenter float64
}

// Options controls how Fit frames a model.
type Options struct {
	Yaw, Pitch  float32 // degrees
	RenderSize  int
	Margin      int
	Perspective bool
	FOV         float64 // degrees, DefaultFOV if zero
}

// Fit builds a camera that frames every vertex of bufs, packed vertex buffers
// as produced by vertexbuf.
func Fit(bufs [][]float32, o Options) Camera {
	R := mathutil.OrbitView(o.Yaw, o.Pitch)

	allMin := [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	allMax := [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, buf := range bufs {
		for i := 0; i < vertexbuf.VertexCount(buf); i++ {
			tv := R.MulVec3(vertexbuf.At(buf, i).Pos)
			for k := 0; k < 3; k++ {
				allMin[k] = math.Min(allMin[k], float64(tv[k]))
				allMax[k] = math.Max(allMax[k], float64(tv[k]))
			}
		}
	}
	if math.IsInf(allMin[0], 1) {
		allMin, allMax = [3]float64{}, [3]float64{}
	}

	center := [3]float64{
		(allMin[0] + allMax[0]) / 2,
		(allMin[1] + allMax[1]) / 2,
		(allMin[2] + allMax[2]) / 2,
	}
	span := math.Max(allMax[0]-allMin[0], allMax[1]-allMin[1])
	if span < 0.001 {
		span = 0.001
	}

	c := Camera{
		R:      R,
		Center: center,
		Scale:  float64(o.RenderSize-2*o.Margin) / span,
		Half:   float64(o.RenderSize) / 2,
	}

	if o.Perspective {
		fov := o.FOV
		if fov == 0 {
			fov = DefaultFOV
		}
		halfFOV := fov / 2 * math.Pi / 180
		xyMax := math.Max(span/2, 0.001)
		c.Perspective = true
		c.perspDist = xyMax / math.Tan(halfFOV)
		c.perspZCenter = center[2]
	}
	return c
}

// Project returns the screen position and depth of model-space point p.
func (c *Camera) Project(p mathutil.Vec3) (x, y, z float64) {
	t := c.R.MulVec3(p)
	tx, ty, tz := float64(t[0]), float64(t[1]), float64(t[2])

	if c.Perspective {
		zOff := tz - c.perspZCenter
		depth := math.Max(c.perspDist-zOff, 0.1)
		factor := c.perspDist / depth
		tx = (tx-c.Center[0])*factor + c.Center[0]
		ty = (ty-c.Center[1])*factor + c.Center[1]
	}

	x = (tx-c.Center[0])*c.Scale + c.Half
	y = -(ty-c.Center[1])*c.Scale + c.Half
	return x, y, tz
}

// Rotate brings a model-space direction into view space.
func (c *Camera) Rotate(d mathutil.Vec3) mathutil.Vec3 {
	return c.R.MulVec3(d)
}
