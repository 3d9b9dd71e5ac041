// Package nfa builds a non-deterministic finite automaton with
// ε-transitions from a pattern.Pattern tree, following Thompson's
// construction extended for symbol ranges. Rule identity survives
// construction via named accepting states.
package nfa

import (
	"sort"

	"github.com/lexforge/lexcore/alphabet"
	"github.com/lexforge/lexcore/matrix"
	"github.com/lexforge/lexcore/pattern"
	"github.com/lexforge/lexcore/symbol"
)

// Transition is a single non-ε edge: matching a symbol in Range steps to
// Target.
type Transition struct {
	Range  symbol.Range
	Target int
}

// State is one NFA node: its ε-targets, its symbol-range transitions, and
// — for accepting states that identify a rule — a Name and callback Code.
type State struct {
	Eps         []int
	Transitions []Transition
	Name        string
	Code        string
}

// NFA is a segmentation plus an ordered vector of states. State id 0 is the
// global start state, created before any pattern is inserted.
type NFA struct {
	Segmentation *alphabet.Segmentation
	States       []State
}

// New returns an NFA with only its start state (id 0) present.
func New() *NFA {
	n := &NFA{Segmentation: alphabet.New()}
	n.newState()
	return n
}

// Start is the id of the global start state.
const Start = 0

func (n *NFA) newState() int {
	n.States = append(n.States, State{})
	return len(n.States) - 1
}

func (n *NFA) epsLink(from, to int) {
	n.States[from].Eps = append(n.States[from].Eps, to)
}

// NewState allocates a fresh, unconnected state and returns its id. Callers
// outside this package use it to build the shared end state a rule group
// links its rules' accepting states to (see registry.ToNFA).
func (n *NFA) NewState() int {
	return n.newState()
}

// EpsLink adds an ε-transition from -> to.
func (n *NFA) EpsLink(from, to int) {
	n.epsLink(from, to)
}

// Insert builds the sub-automaton for p starting at source and returns the
// end state representing its accepting frontier. It is the single entry
// point the registry and the pattern combinators drive construction
// through.
func (n *NFA) Insert(source int, p pattern.Pattern) int {
	switch p.Kind() {
	case pattern.KindRange:
		r := p.Range()
		cur := n.newState()
		n.epsLink(source, cur)
		end := n.newState()
		n.States[cur].Transitions = append(n.States[cur].Transitions, Transition{Range: r, Target: end})
		n.Segmentation.Insert(r)
		return end

	case pattern.KindSeq:
		acc := source
		for _, sub := range p.List() {
			acc = n.Insert(acc, sub)
		}
		return acc

	case pattern.KindOr:
		ends := make([]int, 0, len(p.List()))
		for _, sub := range p.List() {
			ends = append(ends, n.Insert(source, sub))
		}
		end := n.newState()
		for _, e := range ends {
			n.epsLink(e, end)
		}
		return end

	case pattern.KindMany:
		s1 := n.newState()
		s2 := n.newState()
		s3 := n.newState()
		n.epsLink(source, s1)
		bodyEnd := n.Insert(s1, *p.Inner())
		n.epsLink(bodyEnd, s2)
		n.epsLink(source, s3)
		n.epsLink(s2, s3)
		n.epsLink(s3, s1)
		return s3

	case pattern.KindAlways:
		return source

	case pattern.KindNever:
		s := n.newState()
		n.epsLink(source, s)
		return s

	default:
		panic("nfa: unrecognized pattern kind")
	}
}

// Bind attaches a rule's name and callback code to its accepting state.
func (n *NFA) Bind(state int, name, code string) {
	n.States[state].Name = name
	n.States[state].Code = code
}

// Matrix materializes the direct (non-ε) transition function as a dense
// states x classes matrix. When a state's ranges overlap a given division
// point, the range with the lower start claims the cell: the segmentation
// guarantees no cell straddles two ranges of the same state, so this
// tie-break is sufficient, never ambiguous.
func (n *NFA) Matrix() *matrix.Matrix {
	classes := n.Segmentation.Len()
	m := matrix.New(len(n.States), classes)
	for id, st := range n.States {
		if len(st.Transitions) == 0 {
			continue
		}
		trs := make([]Transition, len(st.Transitions))
		copy(trs, st.Transitions)
		sort.Slice(trs, func(i, j int) bool { return trs[i].Range.Lo < trs[j].Range.Lo })
		for c := 0; c < classes; c++ {
			if m.At(id, c) != matrix.Invalid {
				continue
			}
			point := n.Segmentation.DivisionsAsVec()[c].Point
			for _, tr := range trs {
				if tr.Range.Contains(point) {
					m.Set(id, c, uint(tr.Target))
					break
				}
			}
		}
	}
	return m
}

// EpsClosures returns, per state, its ε-closure: a sorted set of state ids
// including itself. The ordering is total, giving subset construction a
// canonical hash key.
func (n *NFA) EpsClosures() [][]int {
	closures := make([][]int, len(n.States))
	computed := make([]bool, len(n.States))
	for id := range n.States {
		n.closureOf(id, closures, computed)
	}
	return closures
}

func (n *NFA) closureOf(id int, closures [][]int, computed []bool) []int {
	if computed[id] {
		return closures[id]
	}
	visited := make(map[int]bool)
	var stack []int
	stack = append(stack, id)
	visited[id] = true
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range n.States[cur].Eps {
			if visited[next] {
				continue
			}
			visited[next] = true
			stack = append(stack, next)
		}
	}
	set := make([]int, 0, len(visited))
	for s := range visited {
		set = append(set, s)
	}
	sort.Ints(set)
	closures[id] = set
	computed[id] = true
	return set
}
