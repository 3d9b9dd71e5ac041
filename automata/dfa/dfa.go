// Package dfa builds a deterministic finite automaton from an NFA by subset
// construction over ε-closures: the standard algorithm building a DFA whose
// states are ε-closed subsets of NFA states. No minimisation is performed;
// this is an explicit non-goal inherited from the core.
package dfa

import (
	"sort"
	"strconv"
	"strings"

	"github.com/lexforge/lexcore/alphabet"
	"github.com/lexforge/lexcore/automata/nfa"
	"github.com/lexforge/lexcore/matrix"
)

// Callback is the (priority, code) pair bound to an accepting DFA state.
//
// Priority is, verbatim per the core's load-bearing (if surprising)
// contract with downstream codegen, the total DFA state count at the
// moment callbacks were populated for this compilation — not a per-state
// precedence value. Every accepting state produced by a single DFA shares
// this same value; precedence within one compilation is instead resolved
// by NFA-set ordering (see Build). Do not "fix" this without confirming
// with the codegen layer that depends on it.
type Callback struct {
	Priority int
	Code     string
}

// DFA is a transition matrix plus per-accepting-state callback bindings,
// built by subset construction over an NFA. Its segmentation is inherited
// from that NFA.
type DFA struct {
	Segmentation *alphabet.Segmentation
	Links        *matrix.Matrix
	Callbacks    []*Callback
}

// NumStates reports the number of DFA states.
func (d *DFA) NumStates() int {
	return d.Links.Rows()
}

// HasRuleFor reports whether state carries a bound callback.
func (d *DFA) HasRuleFor(state int) bool {
	return state >= 0 && state < len(d.Callbacks) && d.Callbacks[state] != nil
}

// Start is the DFA's start state id, always 0.
const Start = 0

func setKey(set []int) string {
	parts := make([]string, len(set))
	for i, id := range set {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

func unionClosure(set []int, m *matrix.Matrix, closures [][]int, class int) []int {
	seen := map[int]bool{}
	for _, s := range set {
		target := m.At(s, class)
		if target == matrix.Invalid {
			continue
		}
		for _, id := range closures[int(target)] {
			seen[id] = true
		}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]int, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Build runs subset construction over n, using n's precomputed
// non-ε transition matrix and ε-closure map.
func Build(n *nfa.NFA) *DFA {
	nfaMatrix := n.Matrix()
	closures := n.EpsClosures()
	numClasses := n.Segmentation.Len()

	type pending struct {
		id  int
		set []int
	}

	setToID := map[string]int{}
	var dfaSets [][]int
	var worklist []pending

	startSet := closures[nfa.Start]
	startKey := setKey(startSet)
	setToID[startKey] = 0
	dfaSets = append(dfaSets, startSet)
	worklist = append(worklist, pending{id: 0, set: startSet})

	links := matrix.New(0, numClasses)
	links.NewRow()

	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]

		for c := 0; c < numClasses; c++ {
			target := unionClosure(cur.set, nfaMatrix, closures, c)
			if len(target) == 0 {
				continue
			}
			key := setKey(target)
			id, ok := setToID[key]
			if !ok {
				id = len(dfaSets)
				setToID[key] = id
				dfaSets = append(dfaSets, target)
				links.NewRow()
				worklist = append(worklist, pending{id: id, set: target})
			}
			links.Set(cur.id, c, uint(id))
		}
	}

	callbacks := make([]*Callback, len(dfaSets))
	priority := len(dfaSets)
	for id, set := range dfaSets {
		for _, nfaID := range set {
			st := n.States[nfaID]
			if st.Name != "" {
				callbacks[id] = &Callback{Priority: priority, Code: st.Code}
				break
			}
		}
	}

	return &DFA{
		Segmentation: n.Segmentation,
		Links:        links,
		Callbacks:    callbacks,
	}
}
