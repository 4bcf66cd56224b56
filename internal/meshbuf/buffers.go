// Package meshbuf gives typed, read-only access to the raw simulation buffers
// a frame is drawn from: node coordinates, shell topology and part selections.
//
// Coordinate and topology buffers are sequences of 4-byte words exactly as the
// simulation wrote them. Words are decoded (byte swapped when requested, then
// interpreted) only by a Decoder, once per read; nothing downstream of a
// Decoder ever sees a raw word.
package meshbuf

import (
	"encoding/binary"
	"fmt"
	"math"

	"fe-shell-renderer/internal/endian"
	"fe-shell-renderer/internal/mathutil"
)

const (
	// WordSize is the size in bytes of every scalar in the source buffers.
	WordSize = 4

	// CoordWords is the number of words per node: X, Y, Z.
	CoordWords = 3
	// CoordStride is the size in bytes of one node record.
	CoordStride = CoordWords * WordSize

	// ShellWords is the number of words per shell: four corners and a part id.
	ShellWords = 5
	// ShellStride is the size in bytes of one shell record.
	ShellStride = ShellWords * WordSize
)

// Coords holds node coordinates, one (X, Y, Z) float32 triple per node.
// The node id is the record index.
type Coords []byte

// NodeCount returns the number of whole node records in c.
func (c Coords) NodeCount() int { return len(c) / CoordStride }

// Check returns a *BufferAccessError if c is missing or holds a partial record.
func (c Coords) Check(name string) error {
	return checkRecords(name, len(c), c == nil, CoordStride)
}

// Topology holds shell elements, one (c0, c1, c2, c3, part) int32 record per
// element. Node references and part ids are stored 1-based.
type Topology []byte

// ElementCount returns the number of whole element records in t.
func (t Topology) ElementCount() int { return len(t) / ShellStride }

// Check returns a *BufferAccessError if t is missing or holds a partial record.
func (t Topology) Check(name string) error {
	return checkRecords(name, len(t), t == nil, ShellStride)
}

// Selection lists 0-based element indices into a Topology. It is produced by
// the host process and is always in host byte order.
type Selection []int32

func checkRecords(name string, n int, missing bool, stride int) error {
	if missing {
		return &BufferAccessError{Buffer: name, Reason: "buffer is nil"}
	}
	if n%stride != 0 {
		return &BufferAccessError{
			Buffer: name,
			Reason: fmt.Sprintf("length %d is not a multiple of the %d-byte record", n, stride),
		}
	}
	return nil
}

// Shell is a decoded shell element with 0-based node references and part id.
type Shell struct {
	Corners [4]int32
	Part    int32
}

// rawWord is a 4-byte scalar exactly as stored in a source buffer.
type rawWord [WordSize]byte

// Decoder turns raw buffer words into host values. Swap is set when the
// buffers were written in the other byte order; it applies to every word a
// Decoder reads and to nothing else.
type Decoder struct {
	Swap bool
}

// NewDecoder returns a Decoder for buffers written in the given byte order.
func NewDecoder(src binary.ByteOrder) Decoder {
	return Decoder{Swap: endian.NeedsSwap(src)}
}

func (d Decoder) decode(w rawWord) uint32 {
	if d.Swap {
		endian.Swap4((*[4]byte)(&w))
	}
	return binary.NativeEndian.Uint32(w[:])
}

func (d Decoder) wordAt(b []byte, i int) uint32 {
	off := i * WordSize
	return d.decode(rawWord(b[off : off+WordSize]))
}

// Float returns word i of b as a float32.
func (d Decoder) Float(b []byte, i int) float32 {
	return math.Float32frombits(d.wordAt(b, i))
}

// Int returns word i of b as an int32.
func (d Decoder) Int(b []byte, i int) int32 {
	return int32(d.wordAt(b, i))
}

// Node returns the position of node n. n must be in [0, c.NodeCount()).
func (d Decoder) Node(c Coords, n int) mathutil.Vec3 {
	base := n * CoordWords
	return mathutil.Vec3{
		d.Float(c, base),
		d.Float(c, base+1),
		d.Float(c, base+2),
	}
}

// Shell returns element el with references and part id shifted to 0-based.
// el must be in [0, t.ElementCount()).
func (d Decoder) Shell(t Topology, el int) Shell {
	base := el * ShellWords
	var s Shell
	for j := 0; j < 4; j++ {
		s.Corners[j] = d.Int(t, base+j) - 1
	}
	s.Part = d.Int(t, base+4) - 1
	return s
}
