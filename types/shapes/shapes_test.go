package shapes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	s := Make(2, 3, 4)
	require.Equal(t, 3, s.Rank())
	require.Equal(t, []int64{2, 3, 4}, s.Dimensions)
	require.Equal(t, int64(24), s.Size())

	// Zero-sized dimensions are valid (empty tensors)...
	require.Equal(t, int64(0), Make(2, 0).Size())

	// ... but negative ones are a construction error.
	require.Panics(t, func() { Make(2, -1) })
}

func TestDim(t *testing.T) {
	s := Make(2, 3, 4)
	require.Equal(t, int64(2), s.Dim(0))
	require.Equal(t, int64(4), s.Dim(2))
	require.Equal(t, int64(4), s.Dim(-1))
	require.Equal(t, int64(2), s.Dim(-3))
	require.Panics(t, func() { s.Dim(3) })
	require.Panics(t, func() { s.Dim(-4) })
}

func TestEqualCloneString(t *testing.T) {
	s := Make(2, 3)
	require.True(t, s.Equal(Make(2, 3)))
	require.False(t, s.Equal(Make(3, 2)))
	require.False(t, s.Equal(Make(2, 3, 1)))

	// Clone must not share the backing array.
	c := s.Clone()
	c.Dimensions[0] = 7
	require.Equal(t, int64(2), s.Dim(0))

	require.Equal(t, "[2 3]", s.String())
	require.Equal(t, "[]", Shape{}.String())
	require.Equal(t, "[1]", Scalar().String())
}
