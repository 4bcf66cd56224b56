package contour

import (
	"encoding/binary"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fe-shell-renderer/internal/meshbuf"
	"fe-shell-renderer/internal/mathutil"
)

var undefNodes = []mathutil.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}

func encode(nodes []mathutil.Vec3) meshbuf.Coords {
	return meshbuf.EncodeCoords(binary.BigEndian, nodes)
}

func TestComputeUnmovedMeshIsAllZero(t *testing.T) {
	c := encode(undefNodes)
	l, err := Compute(c, c, len(undefNodes), meshbuf.NewDecoder(binary.BigEndian))
	require.NoError(t, err)
	assert.Equal(t, Levels{}, l)
}

func TestComputeSpread(t *testing.T) {
	cur := append([]mathutil.Vec3(nil), undefNodes...)
	cur[2] = cur[2].Add(mathutil.Vec3{0, 0, 2.3})
	cur[3] = cur[3].Add(mathutil.Vec3{0.3, 0.4, 0})

	l, err := Compute(encode(undefNodes), encode(cur), len(cur), meshbuf.NewDecoder(binary.BigEndian))
	require.NoError(t, err)

	assert.Zero(t, l[0])
	assert.InDelta(t, 0.1, l[1], 1e-6)
	assert.InDelta(t, 2.3, l.Max(), 1e-5)
	for i := 1; i < len(l); i++ {
		assert.GreaterOrEqual(t, l[i], l[i-1])
	}
}

func TestComputeIgnoresNodesPastCount(t *testing.T) {
	cur := append([]mathutil.Vec3(nil), undefNodes...)
	cur[3] = mathutil.Vec3{50, 50, 50}
	l, err := Compute(encode(undefNodes), encode(cur), 3, meshbuf.NewDecoder(binary.BigEndian))
	require.NoError(t, err)
	assert.Equal(t, Levels{}, l)
}

func TestComputeErrors(t *testing.T) {
	c := encode(undefNodes)
	d := meshbuf.Decoder{}

	_, err := Compute(nil, c, 4, d)
	assert.ErrorIs(t, err, meshbuf.ErrBufferAccess)

	_, err = Compute(c, c, 5, d)
	var ce *meshbuf.CapacityError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 5, ce.Need)
	assert.Equal(t, 4, ce.Have)

	_, err = Compute(c[:meshbuf.CoordStride*2], c, 3, d)
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "undeformed", ce.Buffer)

	_, err = Compute(c, c, -1, d)
	assert.ErrorIs(t, err, meshbuf.ErrCapacity)

	l, err := Compute(c, c, 0, d)
	require.NoError(t, err)
	assert.Equal(t, Levels{}, l)
}

func TestLevelsColor(t *testing.T) {
	l := Spread(23)
	assert.Equal(t, 0, l.Bin(-1))
	assert.Equal(t, 23, l.Bin(23))
	assert.Equal(t, l.Color(23), l.Color(1e9))
}

func TestStoreReadsCompleteSnapshots(t *testing.T) {
	var s Store
	assert.False(t, s.Loaded())
	assert.Equal(t, Levels{}, s.Load())

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 1; i <= 2000; i++ {
			s.Set(Spread(float32(i)))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 2000; i++ {
			l := s.Load()
			// Every snapshot must be one whole Spread result.
			assert.Equal(t, Spread(float32(math.Round(float64(l.Max())))), l)
		}
	}()
	wg.Wait()
	assert.True(t, s.Loaded())
	assert.Equal(t, Spread(2000), s.Load())
}
