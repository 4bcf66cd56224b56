package meshbuf

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fe-shell-renderer/internal/endian"
	"fe-shell-renderer/internal/mathutil"
)

func otherOrder() binary.ByteOrder {
	if endian.HostOrder() == binary.LittleEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

var nodes = []mathutil.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}, {2, -1, 3.5}}

var shells = []Shell{
	{Corners: [4]int32{0, 1, 2, 3}, Part: 0},
	{Corners: [4]int32{1, 4, 2, 0}, Part: 2},
	{Corners: [4]int32{3, 2, 4, 1}, Part: 0},
}

func TestDecodeHostOrder(t *testing.T) {
	c := EncodeCoords(endian.HostOrder(), nodes)
	top := EncodeTopology(endian.HostOrder(), shells)
	d := NewDecoder(endian.HostOrder())
	require.False(t, d.Swap)

	require.Equal(t, len(nodes), c.NodeCount())
	require.Equal(t, len(shells), top.ElementCount())
	for i, want := range nodes {
		assert.Equal(t, want, d.Node(c, i))
	}
	for i, want := range shells {
		assert.Equal(t, want, d.Shell(top, i))
	}
}

func TestDecodeSwapped(t *testing.T) {
	c := EncodeCoords(otherOrder(), nodes)
	top := EncodeTopology(otherOrder(), shells)
	d := NewDecoder(otherOrder())
	require.True(t, d.Swap)

	for i, want := range nodes {
		assert.Equal(t, want, d.Node(c, i))
	}
	for i, want := range shells {
		assert.Equal(t, want, d.Shell(top, i))
	}

	// The same bytes read without swapping are not the same values.
	assert.NotEqual(t, nodes[4], Decoder{}.Node(c, 4))
}

func TestDecodeDoesNotMutateInput(t *testing.T) {
	c := EncodeCoords(otherOrder(), nodes)
	orig := append(Coords(nil), c...)
	d := Decoder{Swap: true}
	for i := range nodes {
		d.Node(c, i)
	}
	assert.Equal(t, orig, c)
}

func TestCheck(t *testing.T) {
	var missing Coords
	err := missing.Check("undeformed")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBufferAccess))
	var bae *BufferAccessError
	require.ErrorAs(t, err, &bae)
	assert.Equal(t, "undeformed", bae.Buffer)

	err = Topology(make([]byte, ShellStride+3)).Check("topology")
	assert.ErrorIs(t, err, ErrBufferAccess)

	assert.NoError(t, Coords{}.Check("current"))
	assert.NoError(t, EncodeCoords(binary.LittleEndian, nodes).Check("current"))
}

func TestCapacityErrorMessage(t *testing.T) {
	err := error(&CapacityError{Buffer: "output", Need: 108, Have: 54, Element: -1})
	assert.ErrorIs(t, err, ErrCapacity)
	assert.NotErrorIs(t, err, ErrBufferAccess)
	assert.Equal(t, "meshbuf: output buffer: need 108, have 54", err.Error())

	err = &CapacityError{Buffer: "current", Need: 9, Have: 5, Element: 2}
	assert.Contains(t, err.Error(), "selection entry 2")
}

func TestPartLists(t *testing.T) {
	top := EncodeTopology(binary.BigEndian, shells)
	d := NewDecoder(binary.BigEndian)

	lists, err := PartLists(top, d, 0)
	require.NoError(t, err)
	require.Len(t, lists, 3)
	assert.Equal(t, Selection{0, 2}, lists[0])
	assert.Empty(t, lists[1])
	assert.Equal(t, Selection{1}, lists[2])

	// An explicit count drops out-of-range parts.
	lists, err = PartLists(top, d, 1)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, Selection{0, 2}, lists[0])

	lists, err = PartLists(Topology{}, d, 0)
	require.NoError(t, err)
	assert.Nil(t, lists)
}

func TestPartListsRejectsHugePartIDs(t *testing.T) {
	// Part id 1 stored in the other byte order reads back as 1<<24.
	top := EncodeTopology(otherOrder(), []Shell{{Corners: [4]int32{0, 1, 2, 3}, Part: 0}})

	lists, err := PartLists(top, Decoder{}, 0)
	var ce *CapacityError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "part", ce.Buffer)
	assert.Equal(t, 1<<24, ce.Need)
	assert.Equal(t, MaxParts, ce.Have)
	assert.Contains(t, err.Error(), "element 0")
	assert.Nil(t, lists)

	// Decoded in the right order the same topology is fine.
	lists, err = PartLists(top, NewDecoder(otherOrder()), 0)
	require.NoError(t, err)
	assert.Equal(t, []Selection{{0}}, lists)

	_, err = PartLists(top, NewDecoder(otherOrder()), MaxParts+1)
	assert.ErrorIs(t, err, ErrCapacity)
}

func TestBounds(t *testing.T) {
	c := EncodeCoords(binary.BigEndian, nodes)
	lo, hi, ok := Bounds(c, NewDecoder(binary.BigEndian))
	require.True(t, ok)
	assert.Equal(t, mathutil.Vec3{0, -1, 0}, lo)
	assert.Equal(t, mathutil.Vec3{2, 1, 3.5}, hi)

	_, _, ok = Bounds(Coords{}, Decoder{})
	assert.False(t, ok)
}
