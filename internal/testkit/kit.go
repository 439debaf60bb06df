// Package testkit provides in-memory sources and synthetic annotation data
// for tests and benchmarks.
package testkit

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"gobayes/domain/annotation"
	"gobayes/domain/ontology"
)

// MemoryOntology implements ports.OntologySource over an edge map
type MemoryOntology struct {
	Edges   ontology.EdgeMap
	Aliases map[string]ontology.Term

	mu    sync.Mutex
	loads int
}

// LoadOntology implements ports.OntologySource
func (s *MemoryOntology) LoadOntology(ctx context.Context) (ontology.Graph, annotation.Canonicalizer, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	s.mu.Lock()
	s.loads++
	s.mu.Unlock()
	return s.Edges, annotation.FromMap(s.Aliases), nil
}

// Loads reports how many times the ontology was read
func (s *MemoryOntology) Loads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads
}

// MemoryAnnotations implements ports.AnnotationSource over fixed rows
type MemoryAnnotations struct {
	Rows []annotation.Row
}

// LoadAnnotations implements ports.AnnotationSource
func (s *MemoryAnnotations) LoadAnnotations(ctx context.Context) ([]annotation.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Rows, nil
}

// GAFRow returns a row with gene and term in the default GAF columns
func GAFRow(gene, term string) annotation.Row {
	return annotation.Row{"DB", gene + "_id", gene, "", term, "PMID:0", "EXP"}
}

// Universe is a synthetic ontology with annotations
type Universe struct {
	Ontology    *MemoryOntology
	Annotations *MemoryAnnotations
	Genes       []annotation.Gene
	Terms       []ontology.Term
}

// RandomUniverse builds a random forest over terms terms (each term after
// the first few gets one or two earlier parents) and annotates every one of
// genes genes with one to three random terms. The result depends only on
// seed.
func RandomUniverse(genes, terms int, seed uint64) *Universe {
	rng := rand.New(rand.NewPCG(seed, 0x9e3779b97f4a7c15))

	u := &Universe{
		Ontology:    &MemoryOntology{Edges: make(ontology.EdgeMap)},
		Annotations: &MemoryAnnotations{},
	}
	for i := 0; i < terms; i++ {
		t := ontology.Term(fmt.Sprintf("GO:%07d", i))
		u.Terms = append(u.Terms, t)
		u.Ontology.Edges[t] = nil
		if i < 3 {
			continue
		}
		u.Ontology.Edges[t] = append(u.Ontology.Edges[t], u.Terms[rng.IntN(i)])
		if rng.IntN(4) == 0 {
			if p := u.Terms[rng.IntN(i)]; p != u.Ontology.Edges[t][0] {
				u.Ontology.Edges[t] = append(u.Ontology.Edges[t], p)
			}
		}
	}

	for i := 0; i < genes; i++ {
		g := annotation.Gene(fmt.Sprintf("gene%05d", i))
		u.Genes = append(u.Genes, g)
		for n := 1 + rng.IntN(3); n > 0; n-- {
			t := u.Terms[rng.IntN(terms)]
			u.Annotations.Rows = append(u.Annotations.Rows, GAFRow(string(g), string(t)))
		}
	}
	return u
}

// Index traces the universe's ontology and builds its annotation index
func (u *Universe) Index() (*annotation.Index, error) {
	closure, err := ontology.Trace(u.Ontology.Edges)
	if err != nil {
		return nil, err
	}
	opts := annotation.DefaultOptions()
	opts.Closure = closure
	return annotation.Build(u.Annotations.Rows, opts)
}
