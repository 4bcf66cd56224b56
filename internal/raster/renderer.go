package raster

import (
	"image"

	"fe-shell-renderer/internal/mathutil"
	"fe-shell-renderer/internal/vertexbuf"
	"fe-shell-renderer/internal/viewmatrix"
)

// Background is the clear color of rendered frames.
var Background = [4]uint8{0, 0, 0, 0}

// RenderParts rasterizes packed vertex buffers, one per part, to an NRGBA
// image of size*supersample pixels square. Each run of three vertices is a
// triangle; its packed face normal is normalized here before shading.
// gamma <= 0 selects the default 2.2.
func RenderParts(parts [][]float32, view viewmatrix.Options, size, supersample int, gamma float64) *image.NRGBA {
	renderSize := size * supersample
	view.RenderSize = renderSize
	view.Margin = 16 * supersample
	cam := viewmatrix.Fit(parts, view)

	fb := NewFrameBuffer(renderSize, renderSize)
	fb.Clear(Background)
	lc := DefaultLightConfig()
	lc.SetGamma(gamma)
	DrawParts(fb, parts, &cam, &lc)

	img := image.NewNRGBA(image.Rect(0, 0, renderSize, renderSize))
	copy(img.Pix, fb.Color)
	return img
}

// DrawParts rasterizes packed vertex buffers into fb through cam.
func DrawParts(fb *FrameBuffer, parts [][]float32, cam *viewmatrix.Camera, lc *LightConfig) {
	var tri [3]ScreenVertex
	for _, buf := range parts {
		n := vertexbuf.VertexCount(buf)
		for i := 0; i+2 < n; i += 3 {
			for k := 0; k < 3; k++ {
				vx := vertexbuf.At(buf, i+k)
				tri[k].X, tri[k].Y, tri[k].Z = cam.Project(vx.Pos)
				tri[k].Color = vx.Color
			}
			normal := cam.Rotate(vertexbuf.At(buf, i).Normal).Normalize()
			if normal == (mathutil.Vec3{}) {
				continue
			}
			RasterizeTriangle(fb, tri, lc.ComputeShade(normal), lc)
		}
	}
}
