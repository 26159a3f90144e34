package growable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsureCapacityPreservesData(t *testing.T) {
	s := Make[int32](2)
	d := s.Data()
	d[0], d[1] = 7, 9

	assert.True(t, s.EnsureCapacity(5))
	assert.Equal(t, 1, s.Reallocs())
	assert.GreaterOrEqual(t, s.Len(), 5)
	assert.Equal(t, []int32{7, 9}, s.Data()[:2])
}

func TestEnsureCapacityNoShrink(t *testing.T) {
	s := Make[float32](8)
	assert.False(t, s.EnsureCapacity(3))
	assert.False(t, s.EnsureCapacity(8))
	assert.Equal(t, 8, s.Len())
	assert.Equal(t, 0, s.Reallocs())
}

func TestEnsureCapacityDoubles(t *testing.T) {
	s := Make[byte](4)
	s.EnsureCapacity(5)
	assert.Equal(t, 8, s.Len())
	s.EnsureCapacity(6)
	assert.Equal(t, 1, s.Reallocs())
}

func TestZeroValue(t *testing.T) {
	var s Slice[int]
	assert.Equal(t, 0, s.Len())
	assert.True(t, s.EnsureCapacity(1))
	assert.Equal(t, 1, s.Len())
}
