package postprocess

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"fe-shell-renderer/internal/contour"
	"fe-shell-renderer/internal/palette"
)

// LegendEntry is one swatch of a legend panel.
type LegendEntry struct {
	Color palette.RGB
	Label string
}

const (
	legendRow    = 14
	legendSwatch = 12
	legendPad    = 6
)

var (
	legendBG   = color.NRGBA{R: 24, G: 24, B: 28, A: 255}
	legendText = color.NRGBA{R: 235, G: 235, B: 235, A: 255}
)

// ContourEntries lists the contour bins from the highest down, each labelled
// with the threshold its values stay below. The last bin also holds values
// past the top threshold.
func ContourEntries(l contour.Levels) []LegendEntry {
	out := make([]LegendEntry, 0, palette.Levels)
	for k := palette.Levels - 1; k >= 0; k-- {
		label := fmt.Sprintf("< %.4g", l[k])
		if k == palette.Levels-1 {
			label = fmt.Sprintf(">= %.4g", l[k-1])
		}
		out = append(out, LegendEntry{Color: palette.BinColor(k), Label: label})
	}
	return out
}

// PartEntries lists the colors of 0-based part ids, labelled by name.
func PartEntries(parts []int, name func(p int) string) []LegendEntry {
	out := make([]LegendEntry, len(parts))
	for i, p := range parts {
		label := fmt.Sprintf("part %d", p+1)
		if name != nil {
			label = name(p)
		}
		out[i] = LegendEntry{Color: palette.PartColor(p), Label: label}
	}
	return out
}

// DrawLegend returns img widened by a panel on its right listing entries.
func DrawLegend(img *image.NRGBA, entries []LegendEntry) *image.NRGBA {
	if len(entries) == 0 {
		return img
	}
	face := basicfont.Face7x13

	labelW := 0
	for _, e := range entries {
		if w := font.MeasureString(face, e.Label).Ceil(); w > labelW {
			labelW = w
		}
	}
	panelW := legendPad + legendSwatch + legendPad + labelW + legendPad

	b := img.Bounds()
	h := b.Dy()
	if need := len(entries)*legendRow + 2*legendPad; need > h {
		h = need
	}
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx()+panelW, h))
	draw.Draw(out, b.Sub(b.Min), img, b.Min, draw.Src)

	panel := image.Rect(b.Dx(), 0, b.Dx()+panelW, h)
	draw.Draw(out, panel, image.NewUniform(legendBG), image.Point{}, draw.Src)

	d := &font.Drawer{Dst: out, Src: image.NewUniform(legendText), Face: face}
	x0 := panel.Min.X + legendPad
	for i, e := range entries {
		y := legendPad + i*legendRow
		sw := image.Rect(x0, y+1, x0+legendSwatch, y+1+legendSwatch)
		draw.Draw(out, sw, image.NewUniform(e.Color.NRGBA()), image.Point{}, draw.Src)

		d.Dot = fixed.P(x0+legendSwatch+legendPad, y+face.Ascent)
		d.DrawString(e.Label)
	}
	return out
}
