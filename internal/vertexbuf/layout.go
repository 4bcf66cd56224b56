package vertexbuf

import (
	"encoding/binary"
	"fmt"
	"math"

	"fe-shell-renderer/internal/mathutil"
	"fe-shell-renderer/internal/palette"
)

// Vertex is one decoded record of a packed buffer.
type Vertex struct {
	Pos    mathutil.Vec3
	Normal mathutil.Vec3
	Color  palette.RGB
}

// At returns vertex v of a packed buffer.
func At(buf []float32, v int) Vertex {
	r := buf[v*FloatsPerVertex : (v+1)*FloatsPerVertex]
	return Vertex{
		Pos:    mathutil.Vec3{r[0], r[1], r[2]},
		Normal: mathutil.Vec3{r[3], r[4], r[5]},
		Color:  palette.RGB{r[6], r[7], r[8]},
	}
}

// VertexCount returns the number of whole vertices in buf.
func VertexCount(buf []float32) int { return len(buf) / FloatsPerVertex }

// Marshal serializes a packed buffer into bytes in the given order, ready for
// upload or storage.
func Marshal(buf []float32, order binary.ByteOrder) []byte {
	out := make([]byte, 4*len(buf))
	for i, f := range buf {
		order.PutUint32(out[4*i:], math.Float32bits(f))
	}
	return out
}

// Unmarshal decodes bytes written by Marshal.
func Unmarshal(b []byte, order binary.ByteOrder) ([]float32, error) {
	if len(b)%(4*FloatsPerVertex) != 0 {
		return nil, fmt.Errorf("vertexbuf: %d bytes is not a whole number of vertices", len(b))
	}
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(order.Uint32(b[4*i:]))
	}
	return out, nil
}
