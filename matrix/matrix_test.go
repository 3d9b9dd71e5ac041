package matrix

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewIsInvalidFilled(t *testing.T) {
	m := New(2, 3)
	for r := 0; r < 2; r++ {
		for c := 0; c < 3; c++ {
			require.Equal(t, Invalid, m.At(r, c))
		}
	}
}

func TestSetAndAt(t *testing.T) {
	m := New(2, 2)
	m.Set(0, 1, 5)
	require.Equal(t, uint(5), m.At(0, 1))
	require.Equal(t, Invalid, m.At(1, 0))
}

func TestNewRowAppendsInvalidFilledRow(t *testing.T) {
	m := New(1, 2)
	m.Set(0, 0, 9)
	row := m.NewRow()
	require.Equal(t, 1, row)
	require.Equal(t, 2, m.Rows())
	require.Equal(t, Invalid, m.At(1, 0))
	require.Equal(t, uint(9), m.At(0, 0))
}

func TestEqual(t *testing.T) {
	a := New(2, 2)
	b := New(2, 2)
	require.True(t, a.Equal(b))
	a.Set(0, 0, 1)
	require.False(t, a.Equal(b))
}

func TestClone(t *testing.T) {
	a := New(2, 2)
	a.Set(1, 1, 7)
	b := a.Clone()
	require.True(t, a.Equal(b))
	b.Set(0, 0, 3)
	require.False(t, a.Equal(b))
}

func TestAtOutOfBoundsPanics(t *testing.T) {
	m := New(1, 1)
	require.Panics(t, func() { m.At(1, 0) })
	require.Panics(t, func() { m.At(0, -1) })
}
