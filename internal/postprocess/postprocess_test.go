package postprocess

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fe-shell-renderer/internal/contour"
	"fe-shell-renderer/internal/palette"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestDownsampleKeepsOpaqueColor(t *testing.T) {
	c := color.NRGBA{R: 200, G: 40, B: 10, A: 255}
	out := Downsample(solid(64, 48, c), 2)
	assert.Equal(t, image.Rect(0, 0, 32, 24), out.Bounds())
	got := out.NRGBAAt(16, 12)
	assert.InDelta(t, c.R, got.R, 1)
	assert.InDelta(t, c.G, got.G, 1)
	assert.InDelta(t, c.B, got.B, 1)
	assert.InDelta(t, 255, got.A, 1)
}

func TestDownsampleNoHaloAtTransparentEdge(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 16; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	out := Downsample(img, 2)
	edge := out.NRGBAAt(8, 8)
	if edge.A > 0 {
		// Unpremultiplied edge pixels keep their brightness.
		assert.Greater(t, edge.R, uint8(240))
	}
}

func TestDownsampleFactorOne(t *testing.T) {
	img := solid(4, 4, color.NRGBA{A: 255})
	assert.Same(t, img, Downsample(img, 1))
}

func TestContourEntries(t *testing.T) {
	e := ContourEntries(contour.Spread(23))
	require.Len(t, e, palette.Levels)
	assert.Equal(t, palette.BinColor(palette.Levels-1), e[0].Color)
	assert.Equal(t, ">= 22", e[0].Label)
	assert.Equal(t, "< 22", e[1].Label)
	assert.Equal(t, "< 0", e[palette.Levels-1].Label)
	assert.Equal(t, palette.BinColor(0), e[palette.Levels-1].Color)
}

func TestDrawLegendWidensImage(t *testing.T) {
	img := solid(40, 64, color.NRGBA{R: 9, A: 255})
	out := DrawLegend(img, PartEntries([]int{0, 1, 2}, nil))
	assert.Greater(t, out.Bounds().Dx(), 40)
	assert.Equal(t, 64, out.Bounds().Dy())
	assert.Equal(t, color.NRGBA{R: 9, A: 255}, out.NRGBAAt(10, 10))

	// First swatch is part 1's color.
	x := 40 + legendPad + legendSwatch/2
	assert.Equal(t, palette.PartColor(0).NRGBA(), out.NRGBAAt(x, legendPad+1+legendSwatch/2))

	// A contour bar is taller than a small render.
	tall := DrawLegend(img, ContourEntries(contour.Spread(1)))
	assert.Equal(t, palette.Levels*legendRow+2*legendPad, tall.Bounds().Dy())

	// Three rows need 54px, so a short render grows to fit them.
	short := DrawLegend(solid(40, 40, color.NRGBA{A: 255}), PartEntries([]int{0, 1, 2}, nil))
	assert.Equal(t, 3*legendRow+2*legendPad, short.Bounds().Dy())
}

func TestDrawLegendEmpty(t *testing.T) {
	img := solid(4, 4, color.NRGBA{A: 255})
	assert.Same(t, img, DrawLegend(img, nil))
}

func TestPartEntriesLabels(t *testing.T) {
	got := PartEntries([]int{0, 4}, nil)
	assert.Equal(t, "part 1", got[0].Label)
	assert.Equal(t, "part 5", got[1].Label)
	assert.Equal(t, palette.PartColor(4), got[1].Color)

	named := PartEntries([]int{2}, func(p int) string { return map[int]string{2: "roof"}[p] })
	assert.Equal(t, "roof", named[0].Label)
}
