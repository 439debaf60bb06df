package annotation

import (
	"fmt"
	"sort"
	"strings"

	"gobayes/domain/core"
	"gobayes/domain/ontology"
)

// Index holds the gene -> terms annotations, including terms inferred
// through the ontology, and the exact inverse term -> genes. It is
// immutable once built and safe for concurrent readers.
type Index struct {
	forward  map[Gene]ontology.TermSet
	inverse  map[ontology.Term]GeneSet
	untraced ontology.TermSet
}

// Build indexes an annotation table. Every row must reach the configured
// gene and term columns and carry non-empty values there.
func Build(rows []Row, opts Options) (*Index, error) {
	cols := opts.Columns
	if cols.Gene < 0 || cols.Term < 0 || cols.Gene == cols.Term {
		return nil, fmt.Errorf("%w: invalid columns gene=%d term=%d", core.ErrMalformedRow, cols.Gene, cols.Term)
	}

	pairs := make([]Pair, 0, len(rows))
	for i, row := range rows {
		if len(row) < cols.width() {
			return nil, core.NewMalformedRowError(i+1, len(row), cols.width())
		}
		gene, term := strings.TrimSpace(row[cols.Gene]), strings.TrimSpace(row[cols.Term])
		if gene == "" || term == "" {
			return nil, fmt.Errorf("%w: row %d has an empty gene or term", core.ErrMalformedRow, i+1)
		}
		pairs = append(pairs, Pair{Gene: Gene(gene), Term: ontology.Term(term)})
	}
	return BuildFromPairs(pairs, opts)
}

// BuildFromPairs indexes annotations that are already split into pairs.
// Pair terms are passed through the canonicalizer like table rows.
func BuildFromPairs(pairs []Pair, opts Options) (*Index, error) {
	canon := opts.Canonicalize
	if canon == nil {
		canon = Identity
	}

	idx := &Index{
		forward:  make(map[Gene]ontology.TermSet),
		inverse:  make(map[ontology.Term]GeneSet),
		untraced: make(ontology.TermSet),
	}
	for i, p := range pairs {
		if p.Gene == "" || p.Term == "" {
			return nil, fmt.Errorf("%w: pair %d has an empty gene or term", core.ErrMalformedRow, i+1)
		}
		term := canon(string(p.Term))
		terms, ok := idx.forward[p.Gene]
		if !ok {
			terms = make(ontology.TermSet)
			idx.forward[p.Gene] = terms
		}
		terms.Add(term)
		if opts.Closure != nil {
			if !opts.Closure.Has(term) {
				idx.untraced.Add(term)
			}
			terms.AddAll(opts.Closure.Of(term))
		}
	}

	for gene, terms := range idx.forward {
		for term := range terms {
			genes, ok := idx.inverse[term]
			if !ok {
				genes = make(GeneSet)
				idx.inverse[term] = genes
			}
			genes.Add(gene)
		}
	}
	return idx, nil
}

// Len returns the size of the gene universe
func (idx *Index) Len() int {
	return len(idx.forward)
}

// Has reports whether g is part of the universe
func (idx *Index) Has(g Gene) bool {
	_, ok := idx.forward[g]
	return ok
}

// TermsOf returns the terms annotated to g. The set must not be modified.
func (idx *Index) TermsOf(g Gene) ontology.TermSet {
	return idx.forward[g]
}

// GenesOf returns the genes annotated with t. The set must not be modified.
func (idx *Index) GenesOf(t ontology.Term) GeneSet {
	return idx.inverse[t]
}

// Count returns the number of genes in the universe annotated with t
func (idx *Index) Count(t ontology.Term) int {
	return len(idx.inverse[t])
}

// Genes returns the universe in lexical order
func (idx *Index) Genes() []Gene {
	out := make([]Gene, 0, len(idx.forward))
	for g := range idx.forward {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Terms returns every annotated term in lexical order
func (idx *Index) Terms() []ontology.Term {
	out := make([]ontology.Term, 0, len(idx.inverse))
	for t := range idx.inverse {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Untraced returns the annotated terms the closure did not know about.
// They are indexed without ancestors.
func (idx *Index) Untraced() []ontology.Term {
	return idx.untraced.Sorted()
}

// Fingerprint hashes the forward map in a canonical order. Two indexes
// with equal fingerprints hold the same annotations.
func (idx *Index) Fingerprint() core.Hash {
	var b strings.Builder
	for _, g := range idx.Genes() {
		b.WriteString(string(g))
		for _, t := range idx.forward[g].Sorted() {
			b.WriteByte('\t')
			b.WriteString(string(t))
		}
		b.WriteByte('\n')
	}
	return core.NewHash([]byte(b.String()))
}

// Validate checks that the inverse map is the exact inverse of the
// forward map.
func (idx *Index) Validate() error {
	for g, terms := range idx.forward {
		for t := range terms {
			if !idx.inverse[t].Has(g) {
				return fmt.Errorf("index inconsistent: %s -> %s has no inverse", g, t)
			}
		}
	}
	for t, genes := range idx.inverse {
		for g := range genes {
			if !idx.forward[g].Has(t) {
				return fmt.Errorf("index inconsistent: %s -> %s has no forward entry", t, g)
			}
		}
	}
	return nil
}
