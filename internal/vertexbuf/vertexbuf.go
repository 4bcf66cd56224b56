// Package vertexbuf packs selected shell elements into an interleaved,
// GPU-ready vertex buffer.
//
// Each element becomes two triangles over its corners in fan order
// (0,1,2) (2,3,0). Every vertex is nine float32 values:
//
//	px py pz  nx ny nz  r g b
//
// The normal is the unnormalized diagonal cross product of the element; the
// consumer normalizes it before shading.
package vertexbuf

import (
	"fmt"
	"math"

	"fe-shell-renderer/internal/contour"
	"fe-shell-renderer/internal/field"
	"fe-shell-renderer/internal/mathutil"
	"fe-shell-renderer/internal/meshbuf"
	"fe-shell-renderer/internal/palette"
)

const (
	FloatsPerVertex    = 9
	VerticesPerElement = 6
	FloatsPerElement   = FloatsPerVertex * VerticesPerElement
)

// fanOrder lists the corner emitted for each of the six vertices of an element.
var fanOrder = [VerticesPerElement]int{0, 1, 2, 2, 3, 0}

// Mode selects how vertices are colored.
type Mode int

const (
	// ColorByPart gives every vertex of an element its part color.
	ColorByPart Mode = iota
	// ColorByContour colors each corner by its resultant displacement.
	ColorByContour
)

func (m Mode) String() string {
	switch m {
	case ColorByPart:
		return "part"
	case ColorByContour:
		return "contour"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps "part" or "contour" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "part":
		return ColorByPart, nil
	case "contour":
		return ColorByContour, nil
	}
	return 0, fmt.Errorf("vertexbuf: unknown color mode %q", s)
}

// Input groups the raw buffers one pack reads from.
type Input struct {
	Undeformed meshbuf.Coords
	Current    meshbuf.Coords
	Topology   meshbuf.Topology
}

// Required returns the number of floats needed to pack n elements.
func Required(n int) int { return n * FloatsPerElement }

// Packer turns element selections into vertex data. Its scratch space is
// reused across calls, so a Packer must not be used concurrently.
type Packer struct {
	shells []meshbuf.Shell
}

// Pack writes the vertices of every element in sel to out, element i at
// offset Required(i), and returns the number of vertices written.
//
// All buffers, indices and node references are validated before anything is
// written; on error out is left untouched. levels is only read in
// ColorByContour mode, where nil means all-zero levels.
func (p *Packer) Pack(sel meshbuf.Selection, in Input, out []float32, mode Mode, levels *contour.Levels, d meshbuf.Decoder) (int, error) {
	if err := p.resolve(sel, in, out, mode, d); err != nil {
		return 0, err
	}
	if levels == nil {
		levels = &contour.Levels{}
	}

	var (
		corners  [4]mathutil.Vec3
		colors   [4]palette.RGB
		lastPart int32 = -1
	)
	for i, s := range p.shells {
		for j, n := range s.Corners {
			corners[j] = d.Node(in.Current, int(n))
		}
		normal := mathutil.QuadNormal(corners[0], corners[1], corners[2], corners[3])

		switch mode {
		case ColorByContour:
			for j, n := range s.Corners {
				u := d.Node(in.Undeformed, int(n))
				colors[j] = levels.Color(field.Resultant(corners[j], u))
			}
		default:
			if s.Part != lastPart {
				c := palette.PartColor(int(s.Part))
				colors = [4]palette.RGB{c, c, c, c}
				lastPart = s.Part
			}
		}

		dst := out[Required(i):Required(i+1)]
		for v, j := range fanOrder {
			putVertex(dst[v*FloatsPerVertex:], corners[j], normal, colors[j])
		}
	}
	return len(p.shells) * VerticesPerElement, nil
}

func putVertex(dst []float32, pos, normal mathutil.Vec3, c palette.RGB) {
	_ = dst[FloatsPerVertex-1]
	dst[0], dst[1], dst[2] = pos[0], pos[1], pos[2]
	dst[3], dst[4], dst[5] = normal[0], normal[1], normal[2]
	dst[6], dst[7], dst[8] = c[0], c[1], c[2]
}

// resolve checks every input and decodes the selected shells into scratch.
func (p *Packer) resolve(sel meshbuf.Selection, in Input, out []float32, mode Mode, d meshbuf.Decoder) error {
	if mode != ColorByPart && mode != ColorByContour {
		return fmt.Errorf("vertexbuf: unknown color mode %d", int(mode))
	}
	if err := in.Undeformed.Check("undeformed"); err != nil {
		return err
	}
	if err := in.Current.Check("current"); err != nil {
		return err
	}
	if err := in.Topology.Check("topology"); err != nil {
		return err
	}
	if need := Required(len(sel)); len(out) < need {
		return &meshbuf.CapacityError{Buffer: "output", Need: need, Have: len(out), Element: -1}
	}

	elements := in.Topology.ElementCount()
	curNodes := in.Current.NodeCount()
	undefNodes := in.Undeformed.NodeCount()

	p.shells = p.shells[:0]
	for i, el := range sel {
		if el < 0 || int(el) >= elements {
			return &meshbuf.CapacityError{Buffer: "topology", Need: int(el), Have: elements, Element: i}
		}
		s := d.Shell(in.Topology, int(el))
		for _, n := range s.Corners {
			if n < 0 || int(n) >= curNodes {
				return &meshbuf.CapacityError{Buffer: "current", Need: int(n), Have: curNodes, Element: i}
			}
			if mode == ColorByContour && int(n) >= undefNodes {
				return &meshbuf.CapacityError{Buffer: "undeformed", Need: int(n), Have: undefNodes, Element: i}
			}
		}
		if s.Part < 0 {
			return &meshbuf.CapacityError{Buffer: "part", Need: int(s.Part), Have: math.MaxInt32, Element: i}
		}
		p.shells = append(p.shells, s)
	}
	return nil
}
