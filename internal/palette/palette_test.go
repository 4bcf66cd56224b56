package palette

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartColorTable(t *testing.T) {
	assert.Equal(t, RGB{1, 0, 0}, PartColor(0))
	assert.Equal(t, RGB{1, 0, 0.58}, PartColor(6))
	assert.Equal(t, RGB{0, 0.75, 1}, PartColor(12))
	// Ids wrap modulo 13.
	assert.Equal(t, PartColor(0), PartColor(13))
	assert.Equal(t, PartColor(5), PartColor(5+13*7))
	assert.Equal(t, PartColor(12), PartColor(-1))
}

func TestContourBinStrictLess(t *testing.T) {
	var zero [Levels]float32
	// 0 < 0 is false, so even a zero value falls through every bin.
	assert.Equal(t, Levels-1, ContourBin(0, &zero))
	assert.Equal(t, Levels-1, ContourBin(1, &zero))
	assert.Equal(t, RGB{1, 0, 1}, ContourColor(0, &zero))
}

func ramp(max float32) [Levels]float32 {
	var th [Levels]float32
	inc := max / (Levels - 1)
	var v float32
	for i := range th {
		th[i] = v
		v += inc
	}
	return th
}

func TestContourBinLinearScanEquivalence(t *testing.T) {
	th := ramp(23)
	linear := func(v float32) int {
		for k := 0; k < Levels; k++ {
			if v < th[k] {
				return k
			}
		}
		return Levels - 1
	}
	for v := float32(-2); v < 26; v += 0.25 {
		assert.Equal(t, linear(v), ContourBin(v, &th), "v=%v", v)
	}
	assert.Equal(t, Levels-1, ContourBin(float32(math.NaN()), &th))
}

func TestContourBinBoundaries(t *testing.T) {
	th := ramp(23) // 0, 1, 2, ... 23
	assert.Equal(t, 0, ContourBin(-0.5, &th))
	assert.Equal(t, 1, ContourBin(0, &th))
	assert.Equal(t, 2, ContourBin(1, &th))
	assert.Equal(t, 2, ContourBin(1.5, &th))
	assert.Equal(t, Levels-1, ContourBin(22.5, &th))
	assert.Equal(t, Levels-1, ContourBin(1000, &th))
}

func TestContourBinMonotonic(t *testing.T) {
	th := ramp(4.2)
	prev := ContourBin(-1, &th)
	for v := float32(-1); v < 6; v += 0.01 {
		k := ContourBin(v, &th)
		assert.GreaterOrEqual(t, k, prev)
		prev = k
	}
}

func TestContourColorTableEnds(t *testing.T) {
	assert.Equal(t, RGB{0, 0, 1}, BinColor(0))
	assert.Equal(t, RGB{0, 1, 1}, BinColor(6))
	assert.Equal(t, RGB{0.375, 1, 0}, BinColor(11))
	assert.Equal(t, RGB{1, 1, 0}, BinColor(14))
	assert.Equal(t, RGB{1, 0, 0}, BinColor(20))
	assert.Equal(t, RGB{1, 0, 1}, BinColor(Levels-1))
}

func TestNRGBA(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 255, G: 191, B: 0, A: 255}, RGB{1, 0.75, 0}.NRGBA())
	assert.Equal(t, color.NRGBA{R: 0, G: 0, B: 255, A: 255}, RGB{-1, 0, 2}.NRGBA())
}
