package dot

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/lexforge/lexcore/automata/dfa"
	"github.com/lexforge/lexcore/automata/nfa"
	"github.com/lexforge/lexcore/pattern"
)

func TestWriteNFAMarksAcceptingStates(t *testing.T) {
	n := nfa.New()
	end := n.Insert(nfa.Start, pattern.CharRange('a', 'z'))
	n.Bind(end, "rule", "code")

	var buf bytes.Buffer
	WriteNFA(&buf, n, "NFA_0")

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "digraph NFA_0 {"))
	require.Contains(t, out, "style=filled,color=green")
	require.Contains(t, out, "a-z")
}

func TestWriteDFAMarksAcceptingStates(t *testing.T) {
	n := nfa.New()
	end := n.Insert(nfa.Start, pattern.Char('a'))
	n.Bind(end, "rule", "code")
	d := dfa.Build(n)

	var buf bytes.Buffer
	WriteDFA(&buf, d, "DFA_0")

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "digraph DFA_0 {"))
	require.Contains(t, out, "style=filled,color=green")
}
