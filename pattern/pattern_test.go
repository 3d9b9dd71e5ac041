package pattern

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/lexforge/lexcore/symbol"
)

func TestOrFlattensNestedOr(t *testing.T) {
	p := Or(Or(Char('a'), Char('b')), Char('c'))
	require.Equal(t, KindOr, p.Kind())
	require.Len(t, p.List(), 3)
	for _, sub := range p.List() {
		require.NotEqual(t, KindOr, sub.Kind())
	}
}

func TestSeqFlattensNestedSeq(t *testing.T) {
	p := Seq(Seq(Char('a'), Char('b')), Char('c'))
	require.Equal(t, KindSeq, p.Kind())
	require.Len(t, p.List(), 3)
}

func TestLiteralBuildsSeqOfChars(t *testing.T) {
	p := Literal("ab")
	require.Equal(t, KindSeq, p.Kind())
	require.Len(t, p.List(), 2)
	require.Equal(t, symbol.Single(symbol.FromRune('a')), p.List()[0].Range())
	require.Equal(t, symbol.Single(symbol.FromRune('b')), p.List()[1].Range())
}

func TestLiteralSingleCharIsNotWrappedInSeq(t *testing.T) {
	p := Literal("a")
	require.Equal(t, KindRange, p.Kind())
}

func TestMany1IsCharFollowedByMany(t *testing.T) {
	p := Many1(Char('a'))
	require.Equal(t, KindSeq, p.Kind())
	require.Len(t, p.List(), 2)
	require.Equal(t, KindMany, p.List()[1].Kind())
}

func TestOptIsOrWithAlways(t *testing.T) {
	p := Opt(Char('a'))
	require.Equal(t, KindOr, p.Kind())
	require.Equal(t, KindAlways, p.List()[1].Kind())
}

func TestAnyOfBuildsAlternation(t *testing.T) {
	p := AnyOf("abc")
	require.Equal(t, KindOr, p.Kind())
	require.Len(t, p.List(), 3)
}

func TestNoneOfExcludesGivenRunes(t *testing.T) {
	p := NoneOf('a', 'e', "c")
	require.Equal(t, KindOr, p.Kind())
	// a-b, d-e : two ranges
	require.Len(t, p.List(), 2)
	require.Equal(t, symbol.NewRange(symbol.FromRune('a'), symbol.FromRune('b')), p.List()[0].Range())
	require.Equal(t, symbol.NewRange(symbol.FromRune('d'), symbol.FromRune('e')), p.List()[1].Range())
}

func TestRepeatExactCount(t *testing.T) {
	p := Repeat(Char('a'), 3)
	require.Equal(t, KindSeq, p.Kind())
	require.Len(t, p.List(), 3)
}

func TestRepeatZeroIsAlways(t *testing.T) {
	p := Repeat(Char('a'), 0)
	require.Equal(t, KindAlways, p.Kind())
}

func TestRepeatBetweenUnbounded(t *testing.T) {
	p := RepeatBetween(Char('a'), 1, -1)
	require.Equal(t, KindSeq, p.Kind())
	// head (1 rep) Seq Many(p)
	require.Len(t, p.List(), 2)
	require.Equal(t, KindMany, p.List()[1].Kind())
}

func TestEOFIsSingleEOFSymbol(t *testing.T) {
	p := EOF()
	require.Equal(t, KindRange, p.Kind())
	require.Equal(t, symbol.Single(symbol.EOF), p.Range())
}

func TestNotExcludesOnlyGivenRange(t *testing.T) {
	p := Not(symbol.NewRange(symbol.FromRune('b'), symbol.FromRune('b')))
	require.Equal(t, KindOr, p.Kind())
	require.Len(t, p.List(), 2)
}
