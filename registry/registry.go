// Package registry aggregates rules into groups, supports group
// inheritance through a parent link, and drives the pattern -> NFA -> DFA
// construction pipeline for a group.
package registry

import (
	"fmt"

	"github.com/lexforge/lexcore/automata/dfa"
	"github.com/lexforge/lexcore/automata/nfa"
	"github.com/lexforge/lexcore/pattern"
)

// Rule is a pattern paired with an opaque callback payload. The registry
// never parses, validates, or executes Code.
type Rule struct {
	Pattern pattern.Pattern
	Code    string
}

// Group holds an ordered list of rules, a stable id, a display name, and an
// optional parent group id.
type Group struct {
	ID       int
	Name     string
	ParentID *int
	Rules    []Rule
}

// Registry owns groups in insertion order. Group ids form a DAG: a cycle in
// the parent link is an error condition surfaced by RulesFor/ToNFA/Compile.
type Registry struct {
	Groups []*Group
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{}
}

// DefineGroup creates a new group with the given name and optional parent
// id, assigns it the next sequential id, and returns that id. The parent id
// is not validated here; an unknown or cyclic parent surfaces when the
// group is later compiled.
func (r *Registry) DefineGroup(name string, parent *int) int {
	g := &Group{ID: len(r.Groups), Name: name, ParentID: parent}
	r.Groups = append(r.Groups, g)
	return g.ID
}

// AddGroup appends an already-constructed group, assigning it the next
// sequential id (overwriting whatever id it was constructed with).
func (r *Registry) AddGroup(g *Group) int {
	g.ID = len(r.Groups)
	r.Groups = append(r.Groups, g)
	return g.ID
}

// CreateRule appends a new rule to the group gid and returns its index
// within that group.
func (r *Registry) CreateRule(gid int, p pattern.Pattern, code string) (int, error) {
	g, err := r.group(gid)
	if err != nil {
		return 0, err
	}
	idx := len(g.Rules)
	g.Rules = append(g.Rules, Rule{Pattern: p, Code: code})
	return idx, nil
}

// AddRule appends rule to the group gid and returns its index within that
// group.
func (r *Registry) AddRule(gid int, rule Rule) (int, error) {
	g, err := r.group(gid)
	if err != nil {
		return 0, err
	}
	idx := len(g.Rules)
	g.Rules = append(g.Rules, rule)
	return idx, nil
}

func (r *Registry) group(gid int) (*Group, error) {
	if gid < 0 || gid >= len(r.Groups) {
		return nil, fmt.Errorf("group %d: %w", gid, ErrUnknownGroup)
	}
	return r.Groups[gid], nil
}

// RuleRef names a rule by the group that defines it and its index within
// that group's own rule list — the pair RuleName formats into the
// accepting state's canonical name.
type RuleRef struct {
	GroupID int
	Index   int
	Rule    Rule
}

// RuleName formats the canonical accepting-state name for a rule.
func RuleName(gid, idx int) string {
	return fmt.Sprintf("group_%d_rule_%d", gid, idx)
}

// RulesFor returns gid's rules followed by its ancestors' rules, walked via
// ParentID. If the walk reaches a group it has already visited (gid itself
// or any ancestor), it fails with ErrCycleInParents.
func (r *Registry) RulesFor(gid int) ([]RuleRef, error) {
	var out []RuleRef
	visited := map[int]bool{}
	cur := gid
	for {
		if visited[cur] {
			return nil, fmt.Errorf("group %d: %w", gid, ErrCycleInParents)
		}
		visited[cur] = true

		g, err := r.group(cur)
		if err != nil {
			return nil, err
		}
		for idx, rule := range g.Rules {
			out = append(out, RuleRef{GroupID: cur, Index: idx, Rule: rule})
		}
		if g.ParentID == nil {
			return out, nil
		}
		cur = *g.ParentID
	}
}

// ToNFA constructs a fresh NFA for gid: the NFA start state, then for each
// rule (own rules first, then inherited ones) its pattern sub-automaton, a
// shared group-end state every rule's accepting state ε-links to, and the
// rule's code and canonical name bound to its own accepting state.
func (r *Registry) ToNFA(gid int) (*nfa.NFA, error) {
	refs, err := r.RulesFor(gid)
	if err != nil {
		return nil, err
	}

	n := nfa.New()
	groupEnd := n.NewState()
	for _, ref := range refs {
		patEnd := n.Insert(nfa.Start, ref.Rule.Pattern)
		// Always matches only the empty string and Never matches nothing:
		// for a top-level rule, Insert returns the start state itself (or
		// a state reachable from it by ε alone), so binding a name here
		// would graft a callback onto — or into the ε-closure of — the
		// shared start state rather than onto a state that actually
		// distinguishes a match. Neither pattern yields a named state.
		switch ref.Rule.Pattern.Kind() {
		case pattern.KindAlways, pattern.KindNever:
		default:
			n.Bind(patEnd, RuleName(ref.GroupID, ref.Index), ref.Rule.Code)
		}
		n.EpsLink(patEnd, groupEnd)
	}
	return n, nil
}

// Compile builds gid's NFA and converts it to a DFA by subset construction.
func (r *Registry) Compile(gid int) (*dfa.DFA, error) {
	n, err := r.ToNFA(gid)
	if err != nil {
		return nil, err
	}
	return dfa.Build(n), nil
}
