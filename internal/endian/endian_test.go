package endian

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwap4RoundTrip(t *testing.T) {
	for _, w := range [][4]byte{
		{0x01, 0x02, 0x03, 0x04},
		{0x00, 0x00, 0x80, 0x3f},
		{0xff, 0x00, 0xff, 0x00},
	} {
		orig := w
		Swap4(&w)
		assert.Equal(t, [4]byte{orig[3], orig[2], orig[1], orig[0]}, w)
		Swap4(&w)
		assert.Equal(t, orig, w)
	}
}

func TestSwap4InterpretsAsOtherOrder(t *testing.T) {
	var w [4]byte
	binary.BigEndian.PutUint32(w[:], math.Float32bits(1.5))
	Swap4(&w)
	assert.Equal(t, float32(1.5), math.Float32frombits(binary.LittleEndian.Uint32(w[:])))

	binary.BigEndian.PutUint32(w[:], 42)
	Swap4(&w)
	assert.Equal(t, uint32(42), binary.LittleEndian.Uint32(w[:]))
}

func TestSwapScalars(t *testing.T) {
	assert.Equal(t, uint32(0x04030201), SwapUint32(0x01020304))
	assert.Equal(t, float32(-3.25), SwapFloat32(SwapFloat32(-3.25)))
}

func TestNeedsSwap(t *testing.T) {
	host := HostOrder()
	assert.False(t, NeedsSwap(host))
	if host == binary.LittleEndian {
		assert.True(t, NeedsSwap(binary.BigEndian))
	} else {
		assert.True(t, NeedsSwap(binary.LittleEndian))
	}
}

func TestParse(t *testing.T) {
	o, ok := Parse("big")
	require.True(t, ok)
	assert.Equal(t, binary.BigEndian, o)

	o, ok = Parse("")
	require.True(t, ok)
	assert.Equal(t, HostOrder(), o)

	_, ok = Parse("middle")
	assert.False(t, ok)
}
