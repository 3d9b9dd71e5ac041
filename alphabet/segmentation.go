// Package alphabet partitions the symbol space into the minimal set of
// equivalence classes required by a collection of patterns. Every
// transition matrix built downstream (NFA snapshot, DFA links) is indexed
// by the class ids this package assigns.
package alphabet

import (
	"sort"

	"github.com/lexforge/lexcore/symbol"
)

// Segmentation is an ordered set of division points over the symbol space.
// Division points {d0 < d1 < ... < dn} induce intervals [di, di+1) plus a
// tail [dn, EOF]. Segmentation always contains the division at symbol.Null,
// so the first interval begins at the bottom of the space.
type Segmentation struct {
	divisions []symbol.Symbol
}

// New returns a Segmentation containing only the mandatory Null division.
func New() *Segmentation {
	return &Segmentation{divisions: []symbol.Symbol{symbol.Null}}
}

// Insert mutates the partition so that the endpoints of r become division
// boundaries: both r.Lo and r.Hi+1 are inserted, except r.Hi+1 is skipped
// when r.Hi is symbol.EOF (inserting it would overflow the symbol space).
func (s *Segmentation) Insert(r symbol.Range) {
	s.insertPoint(r.Lo)
	if next, ok := r.NextAfterHi(); ok {
		s.insertPoint(next)
	}
}

func (s *Segmentation) insertPoint(p symbol.Symbol) {
	i := sort.Search(len(s.divisions), func(i int) bool { return s.divisions[i] >= p })
	if i < len(s.divisions) && s.divisions[i] == p {
		return
	}
	s.divisions = append(s.divisions, symbol.Null)
	copy(s.divisions[i+1:], s.divisions[i:])
	s.divisions[i] = p
}

// Division pairs a division point with its 0-based index, the alphabet
// class id used as a transition-matrix column.
type Division struct {
	Class int
	Point symbol.Symbol
}

// DivisionsAsVec enumerates divisions in ascending order, each paired with
// its alphabet-class id.
func (s *Segmentation) DivisionsAsVec() []Division {
	out := make([]Division, len(s.divisions))
	for i, p := range s.divisions {
		out[i] = Division{Class: i, Point: p}
	}
	return out
}

// Len reports the cardinality of the division set, i.e. the number of
// alphabet classes (columns in every transition matrix for this
// segmentation).
func (s *Segmentation) Len() int {
	return len(s.divisions)
}

// ClassOf returns the alphabet-class id of the interval containing sym: the
// index of the greatest division point <= sym.
func (s *Segmentation) ClassOf(sym symbol.Symbol) int {
	i := sort.Search(len(s.divisions), func(i int) bool { return s.divisions[i] > sym })
	return i - 1
}

// ClassesOf returns every alphabet-class id whose interval intersects r.
func (s *Segmentation) ClassesOf(r symbol.Range) []int {
	lo := s.ClassOf(r.Lo)
	hi := s.ClassOf(r.Hi)
	classes := make([]int, 0, hi-lo+1)
	for c := lo; c <= hi; c++ {
		classes = append(classes, c)
	}
	return classes
}
