package raster

import (
	"math"

	"fe-shell-renderer/internal/palette"
)

// ScreenVertex is a projected vertex: pixel position, depth and color.
type ScreenVertex struct {
	X, Y, Z float64
	Color   palette.RGB
}

// RasterizeTriangle fills a triangle into fb with z-buffering, interpolating
// vertex colors across the face. Colors are decoded from sRGB with lc's
// gamma, lit in linear space by shade, then tone mapped and re-encoded.
//
// This is the HOT PATH: no allocation in the pixel loop.
func RasterizeTriangle(fb *FrameBuffer, v [3]ScreenVertex, shade float64, lc *LightConfig) {
	x0, y0, z0 := v[0].X, v[0].Y, v[0].Z
	x1, y1, z1 := v[1].X, v[1].Y, v[1].Z
	x2, y2, z2 := v[2].X, v[2].Y, v[2].Z

	// Bounding box
	minX := int(math.Min(math.Min(x0, x1), x2))
	maxX := int(math.Max(math.Max(x0, x1), x2)) + 1
	minY := int(math.Min(math.Min(y0, y1), y2))
	maxY := int(math.Max(math.Max(y0, y1), y2)) + 1

	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	// Precompute edge deltas
	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	// Per-vertex linear color, lit and exposed once per triangle.
	var lin [3][3]float64
	k := shade * lc.Exposure
	for i := range v {
		for c := 0; c < 3; c++ {
			lin[i][c] = lc.linear(clamp255(float64(v[i].Color[c])*255)) * k
		}
	}

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}
			fb.ZBuf[zIdx] = z

			sr := w0*lin[0][0] + w1*lin[1][0] + w2*lin[2][0]
			sg := w0*lin[0][1] + w1*lin[1][1] + w2*lin[2][1]
			sb := w0*lin[0][2] + w1*lin[1][2] + w2*lin[2][2]

			pxIdx := zIdx * 4
			fb.Color[pxIdx] = lc.encode(sr)
			fb.Color[pxIdx+1] = lc.encode(sg)
			fb.Color[pxIdx+2] = lc.encode(sb)
			fb.Color[pxIdx+3] = 255
		}
	}
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
