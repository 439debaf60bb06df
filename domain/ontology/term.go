package ontology

import "sort"

// Term identifies a functional category, e.g. a GO ID
type Term string

// String returns the string representation
func (t Term) String() string {
	return string(t)
}

// TermSet is an unordered set of terms
type TermSet map[Term]struct{}

// NewTermSet creates a set holding the given terms
func NewTermSet(terms ...Term) TermSet {
	s := make(TermSet, len(terms))
	for _, t := range terms {
		s[t] = struct{}{}
	}
	return s
}

// Add inserts t into the set
func (s TermSet) Add(t Term) {
	s[t] = struct{}{}
}

// AddAll inserts every member of other into the set
func (s TermSet) AddAll(other TermSet) {
	for t := range other {
		s[t] = struct{}{}
	}
}

// Has reports whether t is in the set
func (s TermSet) Has(t Term) bool {
	_, ok := s[t]
	return ok
}

// Sorted returns the members in lexical order
func (s TermSet) Sorted() []Term {
	out := make([]Term, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Union folds the given sets into a new set. No sets yields an empty set.
func Union(sets ...TermSet) TermSet {
	out := make(TermSet)
	for _, s := range sets {
		out.AddAll(s)
	}
	return out
}
