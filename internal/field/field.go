// Package field evaluates nodal displacement quantities from current and
// undeformed node positions.
package field

import (
	"fmt"

	"github.com/chewxy/math32"

	"fe-shell-renderer/internal/mathutil"
)

// Component selects the displacement quantity to evaluate.
type Component int

const (
	DispX Component = iota
	DispY
	DispZ
	// DispResultant is the length of the displacement vector.
	DispResultant
)

var componentNames = [...]string{"dx", "dy", "dz", "dr"}

func (c Component) String() string {
	if c < 0 || int(c) >= len(componentNames) {
		return fmt.Sprintf("Component(%d)", int(c))
	}
	return componentNames[c]
}

// ParseComponent maps a component name ("dx", "dy", "dz", "dr") to a Component.
func ParseComponent(name string) (Component, error) {
	for i, n := range componentNames {
		if n == name {
			return Component(i), nil
		}
	}
	return 0, &InvalidComponentError{Name: name}
}

// InvalidComponentError is returned for a Component outside the known set.
type InvalidComponentError struct {
	Component Component
	Name      string
}

func (e *InvalidComponentError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("field: unknown component %q", e.Name)
	}
	return fmt.Sprintf("field: unknown component %d", int(e.Component))
}

// Evaluate returns component c of the displacement of a node from undef to cur.
// Both positions must already be decoded. Unknown components return 0 and an
// *InvalidComponentError.
func Evaluate(cur, undef mathutil.Vec3, c Component) (float32, error) {
	switch c {
	case DispX, DispY, DispZ:
		return cur[c] - undef[c], nil
	case DispResultant:
		return Resultant(cur, undef), nil
	}
	return 0, &InvalidComponentError{Component: c}
}

// Resultant returns the Euclidean distance between cur and undef.
func Resultant(cur, undef mathutil.Vec3) float32 {
	dx := cur[0] - undef[0]
	dy := cur[1] - undef[1]
	dz := cur[2] - undef[2]
	return math32.Sqrt(dx*dx + dy*dy + dz*dz)
}
