package dataset

import (
	"encoding/binary"
	"fmt"

	"github.com/chewxy/math32"

	"fe-shell-renderer/internal/mathutil"
	"fe-shell-renderer/internal/meshbuf"
)

// PlateSpec describes a synthetic flat plate meshed with nx by ny shells in
// the XY plane, split into Parts bands along X, bending out of plane over
// Steps states.
type PlateSpec struct {
	NX, NY        int
	Width, Height float32
	Parts         int
	Steps         int
	Amplitude     float32
}

// Plate builds a dataset from spec, encoded in order. State k (1-based)
// lifts each node by Amplitude*k/Steps*sin(pi x/W)*sin(pi y/H).
func Plate(spec PlateSpec, order binary.ByteOrder) (*Dataset, error) {
	if spec.NX <= 0 || spec.NY <= 0 {
		return nil, fmt.Errorf("dataset: plate needs a positive grid, got %dx%d", spec.NX, spec.NY)
	}
	if spec.Parts <= 0 {
		spec.Parts = 1
	}
	if spec.Width == 0 {
		spec.Width = 1
	}
	if spec.Height == 0 {
		spec.Height = 1
	}

	cols, rows := spec.NX+1, spec.NY+1
	nodes := make([]mathutil.Vec3, 0, cols*rows)
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			nodes = append(nodes, mathutil.Vec3{
				spec.Width * float32(i) / float32(spec.NX),
				spec.Height * float32(j) / float32(spec.NY),
				0,
			})
		}
	}

	shells := make([]meshbuf.Shell, 0, spec.NX*spec.NY)
	for j := 0; j < spec.NY; j++ {
		for i := 0; i < spec.NX; i++ {
			n0 := int32(j*cols + i)
			shells = append(shells, meshbuf.Shell{
				Corners: [4]int32{n0, n0 + 1, n0 + 1 + int32(cols), n0 + int32(cols)},
				Part:    int32(i * spec.Parts / spec.NX),
			})
		}
	}

	ds := &Dataset{
		Undeformed: meshbuf.EncodeCoords(order, nodes),
		Topology:   meshbuf.EncodeTopology(order, shells),
		Order:      order,
		Decoder:    meshbuf.NewDecoder(order),
	}

	cur := make([]mathutil.Vec3, len(nodes))
	for k := 1; k <= spec.Steps; k++ {
		scale := spec.Amplitude * float32(k) / float32(spec.Steps)
		for n, p := range nodes {
			lift := scale * math32.Sin(math32.Pi*p[0]/spec.Width) * math32.Sin(math32.Pi*p[1]/spec.Height)
			cur[n] = mathutil.Vec3{p[0], p[1], p[2] + lift}
		}
		name := fmt.Sprintf("state%03d", k)
		if err := ds.AddState(name, meshbuf.EncodeCoords(order, cur)); err != nil {
			return nil, err
		}
	}
	return ds, nil
}
