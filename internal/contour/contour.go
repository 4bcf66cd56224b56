// Package contour computes the displacement contour levels used to color a
// mesh by resultant nodal displacement.
package contour

import (
	"sync/atomic"

	"fe-shell-renderer/internal/field"
	"fe-shell-renderer/internal/meshbuf"
	"fe-shell-renderer/internal/palette"
)

// Levels holds the ascending contour thresholds. The last bin also catches
// every value at or above the largest threshold.
type Levels [palette.Levels]float32

// Bin returns the contour bin of v.
func (l *Levels) Bin(v float32) int {
	return palette.ContourBin(v, (*[palette.Levels]float32)(l))
}

// Color returns the contour color of v.
func (l *Levels) Color(v float32) palette.RGB {
	return palette.ContourColor(v, (*[palette.Levels]float32)(l))
}

// Max returns the largest threshold.
func (l *Levels) Max() float32 {
	return l[len(l)-1]
}

// Spread returns levels spanning [0, max] in equal steps of max/23. The steps
// are accumulated in float32 so thresholds match the legacy viewer exactly.
func Spread(max float32) Levels {
	var l Levels
	inc := max / (palette.Levels - 1)
	var v float32
	for i := range l {
		l[i] = v
		v += inc
	}
	return l
}

// Compute scans nodes [0, nodeCount) and returns levels spanning zero to the
// largest resultant displacement. A mesh that has not moved yields all-zero
// levels, which puts every value in the last bin.
func Compute(undef, cur meshbuf.Coords, nodeCount int, d meshbuf.Decoder) (Levels, error) {
	if err := undef.Check("undeformed"); err != nil {
		return Levels{}, err
	}
	if err := cur.Check("current"); err != nil {
		return Levels{}, err
	}
	if nodeCount < 0 {
		return Levels{}, &meshbuf.CapacityError{Buffer: "current", Need: nodeCount, Have: 0, Element: -1}
	}
	if n := cur.NodeCount(); nodeCount > n {
		return Levels{}, &meshbuf.CapacityError{Buffer: "current", Need: nodeCount, Have: n, Element: -1}
	}
	if n := undef.NodeCount(); nodeCount > n {
		return Levels{}, &meshbuf.CapacityError{Buffer: "undeformed", Need: nodeCount, Have: n, Element: -1}
	}

	var max float32
	for i := 0; i < nodeCount; i++ {
		if v := field.Resultant(d.Node(cur, i), d.Node(undef, i)); v > max {
			max = v
		}
	}
	return Spread(max), nil
}

// Store publishes Levels for concurrent readers. A Load always returns a
// complete set written by a single Set.
type Store struct {
	p atomic.Pointer[Levels]
}

// Set replaces the published levels.
func (s *Store) Set(l Levels) {
	s.p.Store(&l)
}

// Load returns the published levels, or all zeros if none were set yet.
func (s *Store) Load() Levels {
	if l := s.p.Load(); l != nil {
		return *l
	}
	return Levels{}
}

// Loaded reports whether Set has been called.
func (s *Store) Loaded() bool {
	return s.p.Load() != nil
}
