package nfa

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/lexforge/lexcore/matrix"
	"github.com/lexforge/lexcore/pattern"
	"github.com/lexforge/lexcore/symbol"
)

func TestNewHasSingleStartState(t *testing.T) {
	n := New()
	require.Len(t, n.States, 1)
	require.Equal(t, Start, 0)
}

func TestInsertRangeExtendsSegmentation(t *testing.T) {
	n := New()
	n.Insert(Start, pattern.CharRange('a', 'z'))
	require.Equal(t, 3, n.Segmentation.Len())
}

func TestInsertAlwaysReturnsSource(t *testing.T) {
	n := New()
	end := n.Insert(Start, pattern.Always())
	require.Equal(t, Start, end)
}

func TestInsertNeverCreatesUnreachableState(t *testing.T) {
	n := New()
	end := n.Insert(Start, pattern.Never())
	require.NotEqual(t, Start, end)
	require.Empty(t, n.States[end].Transitions)
	require.Empty(t, n.States[end].Eps)
}

func TestEpsClosureOfAlwaysIncludesNamedState(t *testing.T) {
	n := New()
	end := n.Insert(Start, pattern.Always())
	n.Bind(end, "rule", "code")
	closures := n.EpsClosures()
	found := false
	for _, id := range closures[Start] {
		if n.States[id].Name == "rule" {
			found = true
		}
	}
	require.True(t, found)
}

func TestSeqBuildsChain(t *testing.T) {
	n := New()
	end := n.Insert(Start, pattern.Literal("ad"))
	closures := n.EpsClosures()
	require.NotEmpty(t, closures[end])
}

func TestOrProducesCommonEnd(t *testing.T) {
	n := New()
	p := pattern.Or(pattern.Char('a'), pattern.Char('d'))
	end := n.Insert(Start, p)
	require.NotEqual(t, Start, end)
}

func TestManyGadgetLoopsBack(t *testing.T) {
	n := New()
	end := n.Insert(Start, pattern.Many(pattern.Char('a')))
	closures := n.EpsClosures()
	// The closure of the Many end must loop back to a state that can
	// re-enter the body, i.e. it must reach a state with an 'a' transition.
	hasLoop := false
	for _, id := range closures[end] {
		for _, tr := range n.States[id].Transitions {
			if tr.Range.Contains(symbol.FromRune('a')) {
				hasLoop = true
			}
		}
	}
	require.True(t, hasLoop)
}

func TestMatrixRangeScenario(t *testing.T) {
	n := New()
	end := n.Insert(Start, pattern.CharRange('a', 'z'))
	n.Bind(end, "rule", "code")
	m := n.Matrix()
	require.Equal(t, 3, m.Cols())
	// class 1 is [a, z]; some state must transition on it.
	found := false
	for r := 0; r < m.Rows(); r++ {
		if m.At(r, 1) != matrix.Invalid {
			found = true
		}
	}
	require.True(t, found)
}
