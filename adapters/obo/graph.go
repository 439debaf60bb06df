package obo

import (
	"fmt"

	"gobayes/domain/annotation"
	"gobayes/domain/ontology"
)

// Graph builds the ontology DAG with an edge from each term to the targets
// of its relationships of the given types (DefaultRelationships if none).
func (d *Document) Graph(relationships ...string) (*ontology.DAG, error) {
	if len(relationships) == 0 {
		relationships = DefaultRelationships()
	}
	keep := make(map[string]bool, len(relationships))
	for _, r := range relationships {
		keep[r] = true
	}

	dag := ontology.NewDAG()
	for _, t := range d.Terms {
		dag.AddTerm(ontology.Term(t.ID))
	}
	for _, t := range d.Terms {
		for _, rel := range t.Relationships {
			if !keep[rel.Type] {
				continue
			}
			if err := dag.AddEdge(ontology.Term(t.ID), ontology.Term(rel.Target)); err != nil {
				return nil, fmt.Errorf("term %s %s %s: %w", t.ID, rel.Type, rel.Target, err)
			}
		}
	}
	return dag, nil
}

// CanonicalIDs maps every term ID and alt_id to the term's primary ID
func (d *Document) CanonicalIDs() map[string]ontology.Term {
	m := make(map[string]ontology.Term, len(d.Terms))
	for _, t := range d.Terms {
		m[t.ID] = ontology.Term(t.ID)
		for _, alt := range t.AltIDs {
			m[alt] = ontology.Term(t.ID)
		}
	}
	return m
}

// Canonicalizer resolves alternate IDs to primary IDs; other IDs pass through
func (d *Document) Canonicalizer() annotation.Canonicalizer {
	return annotation.FromMap(d.CanonicalIDs())
}

// TransitiveRelationships returns the typedef IDs flagged is_transitive
func (d *Document) TransitiveRelationships() []string {
	var out []string
	for _, td := range d.Typedefs {
		if td.IsTransitive {
			out = append(out, td.ID)
		}
	}
	return out
}
