// Package dot renders NFA and DFA snapshots as Graphviz DOT source, the way
// a developer would pipe it into `dot -Tps input.dot -o output.ps`. It
// reads only the fields the core already exposes; it is a thin consumer,
// not part of the core's correctness surface.
package dot

import (
	"fmt"
	"io"
	"strconv"

	"github.com/lexforge/lexcore/automata/dfa"
	"github.com/lexforge/lexcore/automata/nfa"
	"github.com/lexforge/lexcore/matrix"
	"github.com/lexforge/lexcore/symbol"
)

// WriteNFA renders n's states and transitions as a DOT digraph named id.
func WriteNFA(out io.Writer, n *nfa.NFA, id string) {
	fmt.Fprintf(out, "digraph %s {\n  0 [shape=box];\n", id)
	for state, st := range n.States {
		if st.Name != "" {
			fmt.Fprintf(out, "  %d [style=filled,color=green];\n", state)
		}
		for _, eps := range st.Eps {
			fmt.Fprintf(out, "  %d -> %d [style=dashed];\n", state, eps)
		}
		for _, tr := range st.Transitions {
			fmt.Fprintf(out, "  %d -> %d [label=%q];\n", state, tr.Target, rangeLabel(tr.Range))
		}
	}
	fmt.Fprintln(out, "}")
}

// WriteDFA renders d's transition matrix as a DOT digraph named id.
// Transitions are grouped per (source, target) pair so parallel edges over
// many alphabet classes collapse into one labeled arrow.
func WriteDFA(out io.Writer, d *dfa.DFA, id string) {
	fmt.Fprintf(out, "digraph %s {\n  0 [shape=box];\n", id)
	for state := 0; state < d.NumStates(); state++ {
		if d.HasRuleFor(state) {
			fmt.Fprintf(out, "  %d [style=filled,color=green];\n", state)
		}
		labels := map[uint][]string{}
		for class := 0; class < d.Links.Cols(); class++ {
			target := d.Links.At(state, class)
			if target == matrix.Invalid {
				continue
			}
			labels[target] = append(labels[target], fmt.Sprintf("#%d", class))
		}
		for target, ls := range labels {
			fmt.Fprintf(out, "  %d -> %d [label=%q];\n", state, target, joinLabels(ls))
		}
	}
	fmt.Fprintln(out, "}")
}

func rangeLabel(r symbol.Range) string {
	if r.Lo == r.Hi {
		return symLabel(r.Lo)
	}
	return symLabel(r.Lo) + "-" + symLabel(r.Hi)
}

func symLabel(s symbol.Symbol) string {
	if s == symbol.EOF {
		return "EOF"
	}
	r := rune(s)
	if strconv.IsPrint(r) {
		return string(r)
	}
	return fmt.Sprintf("U+%X", uint32(s))
}

func joinLabels(ls []string) string {
	out := ls[0]
	for _, l := range ls[1:] {
		out += "," + l
	}
	return out
}
