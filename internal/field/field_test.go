package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fe-shell-renderer/internal/mathutil"
)

func TestEvaluateComponents(t *testing.T) {
	undef := mathutil.Vec3{1, 2, 3}
	cur := mathutil.Vec3{4, 6, 3}

	tests := []struct {
		c    Component
		want float32
	}{
		{DispX, 3},
		{DispY, 4},
		{DispZ, 0},
		{DispResultant, 5},
	}
	for _, tt := range tests {
		got, err := Evaluate(cur, undef, tt.c)
		require.NoError(t, err, tt.c.String())
		assert.Equal(t, tt.want, got, tt.c.String())
	}
}

func TestEvaluateZeroDisplacement(t *testing.T) {
	for _, p := range []mathutil.Vec3{{0, 0, 0}, {-7.5, 1e6, 3}, {1e-20, 0, -1e-20}} {
		got, err := Evaluate(p, p, DispResultant)
		require.NoError(t, err)
		assert.Zero(t, got)
	}
}

func TestEvaluateUnknownComponent(t *testing.T) {
	got, err := Evaluate(mathutil.Vec3{1, 1, 1}, mathutil.Vec3{}, Component(9))
	assert.Zero(t, got)
	var ice *InvalidComponentError
	require.ErrorAs(t, err, &ice)
	assert.Equal(t, Component(9), ice.Component)
	assert.Equal(t, "Component(9)", Component(9).String())
}

func TestParseComponent(t *testing.T) {
	c, err := ParseComponent("dr")
	require.NoError(t, err)
	assert.Equal(t, DispResultant, c)

	_, err = ParseComponent("vm")
	assert.EqualError(t, err, `field: unknown component "vm"`)
}
