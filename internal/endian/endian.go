// Package endian reverses the byte order of 4-byte scalars read from
// simulation buffers written on a machine of the other byte order.
package endian

import (
	"encoding/binary"
	"math"
	"math/bits"
)

// Swap4 reverses the byte order of a 4-byte window in place. The caller decides
// whether the window holds an int32 or a float32.
func Swap4(w *[4]byte) {
	w[0], w[1], w[2], w[3] = w[3], w[2], w[1], w[0]
}

// SwapUint32 returns v with its bytes reversed.
func SwapUint32(v uint32) uint32 {
	return bits.ReverseBytes32(v)
}

// SwapFloat32 returns f with the bytes of its IEEE-754 representation reversed.
func SwapFloat32(f float32) float32 {
	return math.Float32frombits(bits.ReverseBytes32(math.Float32bits(f)))
}

// HostOrder returns the byte order of the running machine.
func HostOrder() binary.ByteOrder {
	var probe [2]byte
	binary.NativeEndian.PutUint16(probe[:], 1)
	if probe[0] == 1 {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// NeedsSwap reports whether words stored in src order must be swapped before
// the host can interpret them.
func NeedsSwap(src binary.ByteOrder) bool {
	return src.String() != HostOrder().String()
}

// Parse maps a configured byte order name to a binary.ByteOrder.
// "native" (or empty) resolves to the host order.
func Parse(name string) (binary.ByteOrder, bool) {
	switch name {
	case "", "native":
		return HostOrder(), true
	case "little", "le":
		return binary.LittleEndian, true
	case "big", "be":
		return binary.BigEndian, true
	}
	return nil, false
}
