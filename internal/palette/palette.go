// Package palette maps parts and contour values to colors.
//
// Both tables are fixed literals; the contour ramp is reproduced exactly so
// plots match the legacy viewer bit for bit.
package palette

import (
	"image/color"
	"sort"
)

// RGB is a color with components in [0, 1].
type RGB [3]float32

// NRGBA converts c to an opaque 8-bit color.
func (c RGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: to8(c[0]), G: to8(c[1]), B: to8(c[2]), A: 255}
}

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// PartCount is the size of the part palette; part ids wrap around it.
const PartCount = 13

var partColors = [PartCount]RGB{
	{1.0, 0.0, 0.0},
	{0.0, 1.0, 0.0},
	{0.0, 0.0, 1.0},
	{0.0, 1.0, 1.0},
	{1.0, 0.0, 1.0},
	{1.0, 1.0, 0.0},
	{1.0, 0.0, 0.58},
	{1.0, 0.75, 0.0},
	{0.66, 1.0, 0.0},
	{0.0, 1.0, 0.66},
	{0.0, 0.5, 1.0},
	{1.0, 0.5, 0.0},
	{0.0, 0.75, 1.0},
}

// PartColor returns the default color of 0-based part id.
func PartColor(part int) RGB {
	i := part % PartCount
	if i < 0 {
		i += PartCount
	}
	return partColors[i]
}

// Levels is the number of contour thresholds and color bins.
const Levels = 24

var contourColors = [Levels]RGB{
	{0.0, 0.0, 1.0},
	{0.0, 0.25, 1.0},
	{0.0, 0.5, 1.0},
	{0.0, 0.625, 1.0},
	{0.0, 0.75, 1.0},
	{0.0, 0.875, 1.0},
	{0.0, 1.0, 1.0},
	{0.0, 1.0, 0.88},
	{0.0, 1.0, 0.66},
	{0.0, 1.0, 0.33},
	{0.0, 1.0, 0.0},
	{0.375, 1.0, 0.0},
	{0.75, 1.0, 0.0},
	{0.875, 1.0, 0.0},
	{1.0, 1.0, 0.0},
	{1.0, 0.875, 0.0},
	{1.0, 0.75, 0.0},
	{1.0, 0.625, 0.0},
	{1.0, 0.5, 0.0},
	{1.0, 0.25, 0.0},
	{1.0, 0.0, 0.0},
	{1.0, 0.0, 0.29},
	{1.0, 0.0, 0.58},
	{1.0, 0.0, 1.0},
}

// ContourBin returns the index of the first threshold that v is strictly
// below, or the last bin when no threshold exceeds v. thresholds must be
// non-decreasing, which makes the binary search equivalent to a linear scan.
func ContourBin(v float32, thresholds *[Levels]float32) int {
	k := sort.Search(Levels, func(i int) bool { return v < thresholds[i] })
	if k == Levels {
		return Levels - 1
	}
	return k
}

// ContourColor returns the ramp color for v.
func ContourColor(v float32, thresholds *[Levels]float32) RGB {
	return contourColors[ContourBin(v, thresholds)]
}

// BinColor returns the ramp color of bin k.
func BinColor(k int) RGB {
	return contourColors[k]
}
