package annotation

import (
	"sort"

	"gobayes/domain/ontology"
)

// Gene identifies a gene, e.g. a symbol or accession
type Gene string

// String returns the string representation
func (g Gene) String() string {
	return string(g)
}

// GeneSet is an unordered set of genes. A module is a GeneSet.
type GeneSet map[Gene]struct{}

// NewGeneSet creates a set holding the given genes; duplicates collapse
func NewGeneSet(genes ...Gene) GeneSet {
	s := make(GeneSet, len(genes))
	for _, g := range genes {
		s[g] = struct{}{}
	}
	return s
}

// Add inserts g into the set
func (s GeneSet) Add(g Gene) {
	s[g] = struct{}{}
}

// Has reports whether g is in the set
func (s GeneSet) Has(g Gene) bool {
	_, ok := s[g]
	return ok
}

// Sorted returns the members in lexical order
func (s GeneSet) Sorted() []Gene {
	out := make([]Gene, 0, len(s))
	for g := range s {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Row is one record of an annotation table
type Row []string

// Pair is a single gene to term annotation
type Pair struct {
	Gene Gene
	Term ontology.Term
}

// Columns selects the gene and term positions within a Row. The two must
// differ.
type Columns struct {
	Gene int
	Term int
}

// DefaultColumns matches the GAF layout: DB object symbol and GO ID
func DefaultColumns() Columns {
	return Columns{Gene: 2, Term: 4}
}

// width is the minimum row length the columns need
func (c Columns) width() int {
	if c.Gene > c.Term {
		return c.Gene + 1
	}
	return c.Term + 1
}

// Canonicalizer maps a raw term identifier to its canonical form
type Canonicalizer func(raw string) ontology.Term

// Identity is the Canonicalizer that keeps identifiers as they are
func Identity(raw string) ontology.Term {
	return ontology.Term(raw)
}

// FromMap builds a Canonicalizer from an alias map. Identifiers missing
// from the map are kept as they are.
func FromMap(m map[string]ontology.Term) Canonicalizer {
	return func(raw string) ontology.Term {
		if t, ok := m[raw]; ok {
			return t
		}
		return ontology.Term(raw)
	}
}

// Options controls how an Index is built
type Options struct {
	Columns Columns

	// Canonicalize collapses alternate IDs; nil means Identity.
	Canonicalize Canonicalizer

	// Closure propagates annotations to ancestor terms; nil disables
	// propagation.
	Closure *ontology.Closure
}

// DefaultOptions returns GAF columns, identity IDs and no propagation
func DefaultOptions() Options {
	return Options{
		Columns:      DefaultColumns(),
		Canonicalize: Identity,
	}
}
