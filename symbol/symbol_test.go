package symbol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromRune(t *testing.T) {
	require.Equal(t, Symbol('a'), FromRune('a'))
	require.Equal(t, Symbol(0x4e2d), FromRune('中'))
}

func TestRangeContains(t *testing.T) {
	r := NewRange(FromRune('a'), FromRune('z'))
	require.True(t, r.Contains(FromRune('m')))
	require.False(t, r.Contains(FromRune('A')))
}

func TestNextAfterHi(t *testing.T) {
	r := NewRange(FromRune('a'), FromRune('z'))
	next, ok := r.NextAfterHi()
	require.True(t, ok)
	require.Equal(t, FromRune('z')+1, next)

	eofRange := NewRange(Null, EOF)
	_, ok = eofRange.NextAfterHi()
	require.False(t, ok)
}

func TestSingle(t *testing.T) {
	r := Single(FromRune('x'))
	require.Equal(t, FromRune('x'), r.Lo)
	require.Equal(t, FromRune('x'), r.Hi)
}

func TestOrdering(t *testing.T) {
	require.True(t, Null.Less(EOF))
	require.False(t, EOF.Less(Null))
}
