// Package shellview is the call surface a renderer drives once per frame:
// refresh the contour levels for a state, then pack each visible part.
package shellview

import (
	"log/slog"
	"sync"

	"fe-shell-renderer/internal/contour"
	"fe-shell-renderer/internal/meshbuf"
	"fe-shell-renderer/internal/vertexbuf"
)

// View owns the contour levels shared by every pack of a frame. It is safe for
// concurrent use: level updates are published atomically and each pack runs on
// its own Packer.
type View struct {
	levels  contour.Store
	packers sync.Pool
	log     *slog.Logger
}

// Option configures a View.
type Option func(*View)

// WithLogger sets the logger used for entry-point debug records.
func WithLogger(l *slog.Logger) Option {
	return func(v *View) { v.log = l }
}

// New returns a View whose levels are all zero until the first update.
func New(opts ...Option) *View {
	v := &View{log: slog.Default()}
	v.packers.New = func() any { return new(vertexbuf.Packer) }
	for _, o := range opts {
		o(v)
	}
	return v
}

// PopulatePartVertexData packs the first numEls entries of elsInPart into out
// and returns the number of vertices written. contourMode colors corners by
// resultant displacement against the current levels; otherwise elements take
// their part color. swap is set when the buffers need byte swapping.
func (v *View) PopulatePartVertexData(numEls int, undef, cur meshbuf.Coords, top meshbuf.Topology,
	elsInPart meshbuf.Selection, out []float32, contourMode, swap bool) (int, error) {
	v.log.Debug("populate part vertex data",
		"elements", numEls, "contour", contourMode, "swap", swap)

	if elsInPart == nil {
		return 0, &meshbuf.BufferAccessError{Buffer: "selection", Reason: "buffer is nil"}
	}
	if out == nil {
		return 0, &meshbuf.BufferAccessError{Buffer: "output", Reason: "buffer is nil"}
	}
	if numEls < 0 || numEls > len(elsInPart) {
		return 0, &meshbuf.CapacityError{Buffer: "selection", Need: numEls, Have: len(elsInPart), Element: -1}
	}

	mode := vertexbuf.ColorByPart
	if contourMode {
		mode = vertexbuf.ColorByContour
	}
	in := vertexbuf.Input{Undeformed: undef, Current: cur, Topology: top}
	levels := v.levels.Load()
	return v.Pack(elsInPart[:numEls], in, out, mode, &levels, meshbuf.Decoder{Swap: swap})
}

// Pack packs sel with the given levels on a pooled Packer. Pass the snapshot
// returned by Levels when the result is keyed or labelled by its levels.
func (v *View) Pack(sel meshbuf.Selection, in vertexbuf.Input, out []float32, mode vertexbuf.Mode,
	levels *contour.Levels, d meshbuf.Decoder) (int, error) {
	p := v.packers.Get().(*vertexbuf.Packer)
	defer v.packers.Put(p)
	return p.Pack(sel, in, out, mode, levels, d)
}

// UpdateContourLimits recomputes the contour levels from the first numNodes
// nodes. On error the previous levels stay in effect.
func (v *View) UpdateContourLimits(undef, cur meshbuf.Coords, numNodes int, swap bool) error {
	v.log.Debug("update contour limits", "nodes", numNodes, "swap", swap)

	l, err := contour.Compute(undef, cur, numNodes, meshbuf.Decoder{Swap: swap})
	if err != nil {
		return err
	}
	v.levels.Set(l)
	return nil
}

// Levels returns the levels currently in effect.
func (v *View) Levels() contour.Levels {
	return v.levels.Load()
}
