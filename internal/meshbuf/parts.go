package meshbuf

import (
	"fmt"

	"fe-shell-renderer/internal/mathutil"
)

// MaxParts bounds the number of part lists PartLists builds. Part ids of real
// models stay far below it; ids past it come from a wrong byte order or a
// corrupt topology word.
const MaxParts = 1 << 16

// PartLists groups element indices by 0-based part id, preserving topology
// order within each part. Elements whose part id falls outside [0, numParts)
// are left out. If numParts <= 0 the count is taken from the largest part id.
// A count above MaxParts, given or inferred, is a *CapacityError.
func PartLists(t Topology, d Decoder, numParts int) ([]Selection, error) {
	n := t.ElementCount()
	if numParts > MaxParts {
		return nil, &CapacityError{Buffer: "part", Need: numParts, Have: MaxParts, Element: -1}
	}
	if numParts <= 0 {
		for el := 0; el < n; el++ {
			p := int(d.Int(t, el*ShellWords+4))
			if p > MaxParts {
				return nil, fmt.Errorf("meshbuf: element %d: %w", el,
					&CapacityError{Buffer: "part", Need: p, Have: MaxParts, Element: -1})
			}
			if p > numParts {
				numParts = p
			}
		}
	}
	if numParts <= 0 {
		return nil, nil
	}

	counts := make([]int, numParts)
	for el := 0; el < n; el++ {
		if p := int(d.Int(t, el*ShellWords+4)) - 1; p >= 0 && p < numParts {
			counts[p]++
		}
	}

	lists := make([]Selection, numParts)
	for p := range lists {
		lists[p] = make(Selection, 0, counts[p])
	}
	for el := 0; el < n; el++ {
		if p := int(d.Int(t, el*ShellWords+4)) - 1; p >= 0 && p < numParts {
			lists[p] = append(lists[p], int32(el))
		}
	}
	return lists, nil
}

// Bounds returns the axis-aligned bounding box of all nodes in c.
// ok is false when c holds no nodes.
func Bounds(c Coords, d Decoder) (lo, hi mathutil.Vec3, ok bool) {
	n := c.NodeCount()
	if n == 0 {
		return lo, hi, false
	}
	lo = d.Node(c, 0)
	hi = lo
	for i := 1; i < n; i++ {
		p := d.Node(c, i)
		lo = lo.Min(p)
		hi = hi.Max(p)
	}
	return lo, hi, true
}
