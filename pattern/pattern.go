// Package pattern defines an immutable, closed algebra of regex
// combinators. The automata builders in automata/nfa dispatch on this
// closed set of constructors rather than parsing a regex string, so new
// constructors must not be added without also extending every consumer.
package pattern

import (
	"github.com/lexforge/lexcore/symbol"
)

// Kind identifies which of the six primitive constructors a Pattern holds.
type Kind int

const (
	KindRange Kind = iota
	KindOr
	KindSeq
	KindMany
	KindAlways
	KindNever
)

// Pattern is an immutable node in a regex tree. Exactly one of its fields is
// meaningful, selected by Kind; callers build patterns with the
// constructors below rather than composite-literal construction.
type Pattern struct {
	kind  Kind
	rng   symbol.Range
	list  []Pattern // Or, Seq
	inner *Pattern  // Many
}

// Kind reports which primitive constructor built p.
func (p Pattern) Kind() Kind { return p.kind }

// Range returns the symbol range of a KindRange pattern. Only valid when
// p.Kind() == KindRange.
func (p Pattern) Range() symbol.Range { return p.rng }

// List returns the operand list of a KindOr or KindSeq pattern. Only valid
// for those kinds.
func (p Pattern) List() []Pattern { return p.list }

// Inner returns the body of a KindMany pattern. Only valid for that kind.
func (p Pattern) Inner() *Pattern { return p.inner }

// RangePattern matches one symbol in [lo, hi].
func RangePattern(r symbol.Range) Pattern {
	return Pattern{kind: KindRange, rng: r}
}

// Always matches the empty input (ε).
func Always() Pattern {
	return Pattern{kind: KindAlways}
}

// Never matches nothing (∅).
func Never() Pattern {
	return Pattern{kind: KindNever}
}

// Or builds an alternation. If either operand is itself an Or, its operand
// list is flattened into the result; an Or is never nested inside an Or.
func Or(a, b Pattern) Pattern {
	var list []Pattern
	if a.kind == KindOr {
		list = append(list, a.list...)
	} else {
		list = append(list, a)
	}
	if b.kind == KindOr {
		list = append(list, b.list...)
	} else {
		list = append(list, b)
	}
	return Pattern{kind: KindOr, list: list}
}

// Seq builds a concatenation, flattened the same way Or is.
func Seq(a, b Pattern) Pattern {
	var list []Pattern
	if a.kind == KindSeq {
		list = append(list, a.list...)
	} else {
		list = append(list, a)
	}
	if b.kind == KindSeq {
		list = append(list, b.list...)
	} else {
		list = append(list, b)
	}
	return Pattern{kind: KindSeq, list: list}
}

// Many is the Kleene star: zero or more repetitions of p.
func Many(p Pattern) Pattern {
	inner := p
	return Pattern{kind: KindMany, inner: &inner}
}

// OrAll flattens a variadic alternation through Or.
func OrAll(ps ...Pattern) Pattern {
	if len(ps) == 0 {
		return Never()
	}
	acc := ps[0]
	for _, p := range ps[1:] {
		acc = Or(acc, p)
	}
	return acc
}

// SeqAll flattens a variadic concatenation through Seq.
func SeqAll(ps ...Pattern) Pattern {
	if len(ps) == 0 {
		return Always()
	}
	acc := ps[0]
	for _, p := range ps[1:] {
		acc = Seq(acc, p)
	}
	return acc
}

// Many1 matches one or more repetitions of p: p followed by Many(p).
func Many1(p Pattern) Pattern {
	return Seq(p, Many(p))
}

// Opt matches zero or one occurrence of p.
func Opt(p Pattern) Pattern {
	return Or(p, Always())
}

// Literal matches the exact rune sequence s.
func Literal(s string) Pattern {
	runes := []rune(s)
	ps := make([]Pattern, len(runes))
	for i, r := range runes {
		ps[i] = Char(r)
	}
	return SeqAll(ps...)
}

// Char matches a single rune.
func Char(r rune) Pattern {
	return RangePattern(symbol.Single(symbol.FromRune(r)))
}

// CharRange matches a single rune in [lo, hi].
func CharRange(lo, hi rune) Pattern {
	return RangePattern(symbol.NewRange(symbol.FromRune(lo), symbol.FromRune(hi)))
}

// AnyOf matches any one of the given runes.
func AnyOf(runes string) Pattern {
	rs := []rune(runes)
	ps := make([]Pattern, len(rs))
	for i, r := range rs {
		ps[i] = Char(r)
	}
	return OrAll(ps...)
}

// NoneOf matches any rune in [lo, hi] except those listed in exclude.
func NoneOf(lo, hi rune, exclude string) Pattern {
	excluded := make(map[rune]bool, len(exclude))
	for _, r := range exclude {
		excluded[r] = true
	}
	var ranges []Pattern
	inRun := false
	var runLo rune
	flush := func(runHi rune) {
		if inRun {
			ranges = append(ranges, CharRange(runLo, runHi))
			inRun = false
		}
	}
	for r := lo; r <= hi; r++ {
		if excluded[r] {
			flush(r - 1)
			continue
		}
		if !inRun {
			inRun = true
			runLo = r
		}
		if r == hi {
			flush(r)
		}
	}
	return OrAll(ranges...)
}

// Repeat matches exactly n repetitions of p.
func Repeat(p Pattern, n int) Pattern {
	if n <= 0 {
		return Always()
	}
	ps := make([]Pattern, n)
	for i := range ps {
		ps[i] = p
	}
	return SeqAll(ps...)
}

// RepeatBetween matches between min and max (inclusive) repetitions of p.
// A negative max means unbounded, equivalent to Repeat(p, min) followed by
// Many(p).
func RepeatBetween(p Pattern, min, max int) Pattern {
	head := Repeat(p, min)
	if max < 0 {
		return Seq(head, Many(p))
	}
	for i := 0; i < max-min; i++ {
		head = Seq(head, Opt(p))
	}
	return head
}

// Any matches any single symbol below EOF.
func Any() Pattern {
	return RangePattern(symbol.NewRange(symbol.Null, symbol.EOF-1))
}

// EOF matches only the end-of-input sentinel. Rules must include this
// explicitly: the registry never synthesizes an implicit EOF transition.
func EOF() Pattern {
	return RangePattern(symbol.Single(symbol.EOF))
}

// Not matches any single symbol not in r, excluding EOF. It does not negate
// compound patterns, only single-range ones, which is all the NFA builder
// needs to support it.
func Not(r symbol.Range) Pattern {
	var ranges []Pattern
	if r.Lo > symbol.Null {
		ranges = append(ranges, RangePattern(symbol.NewRange(symbol.Null, r.Lo-1)))
	}
	if next, ok := r.NextAfterHi(); ok && next < symbol.EOF {
		ranges = append(ranges, RangePattern(symbol.NewRange(next, symbol.EOF-1)))
	}
	return OrAll(ranges...)
}
