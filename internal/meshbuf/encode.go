package meshbuf

import (
	"encoding/binary"
	"math"

	"fe-shell-renderer/internal/mathutil"
)

// EncodeCoords writes node positions in the given byte order.
func EncodeCoords(order binary.ByteOrder, nodes []mathutil.Vec3) Coords {
	buf := make(Coords, 0, len(nodes)*CoordStride)
	for _, p := range nodes {
		for k := 0; k < 3; k++ {
			buf = appendWord(buf, order, math.Float32bits(p[k]))
		}
	}
	return buf
}

// EncodeTopology writes shells in the given byte order, shifting the 0-based
// references and part ids of s to the 1-based storage convention.
func EncodeTopology(order binary.ByteOrder, shells []Shell) Topology {
	buf := make(Topology, 0, len(shells)*ShellStride)
	for _, s := range shells {
		for _, c := range s.Corners {
			buf = appendWord(buf, order, uint32(c+1))
		}
		buf = appendWord(buf, order, uint32(s.Part+1))
	}
	return buf
}

func appendWord(buf []byte, order binary.ByteOrder, v uint32) []byte {
	var w [WordSize]byte
	order.PutUint32(w[:], v)
	return append(buf, w[:]...)
}
