package ontology

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"

	"gobayes/domain/core"
)

// Closure maps each term to every term reachable from it along parent
// edges. With edges stored child -> parent, those are the term's ancestors,
// the terms an annotation to it propagates to.
type Closure struct {
	reach map[Term]TermSet
}

// Of returns the terms reachable from t. Isolated and unknown terms yield an
// empty set. The returned set must not be modified.
func (c *Closure) Of(t Term) TermSet {
	if s, ok := c.reach[t]; ok {
		return s
	}
	return TermSet{}
}

// Has reports whether t was part of the traced graph
func (c *Closure) Has(t Term) bool {
	_, ok := c.reach[t]
	return ok
}

// Len returns the number of traced terms
func (c *Closure) Len() int {
	return len(c.reach)
}

// Terms returns the traced terms in lexical order
func (c *Closure) Terms() []Term {
	out := make([]Term, 0, len(c.reach))
	for t := range c.reach {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Trace computes the closure of every term in g. A cycle along parent edges
// is a malformed ontology and fails with core.ErrCyclicOntology.
func Trace(g Graph) (*Closure, error) {
	d, err := Mirror(g)
	if err != nil {
		return nil, err
	}
	order, err := sortTerms(d)
	if err != nil {
		return nil, err
	}

	// Children sort before parents, so walking backwards every parent's
	// closure is complete before any of its children need it.
	reach := make(map[Term]TermSet, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i].ID()
		t := d.terms[id]
		s := make(TermSet)
		parents := d.g.From(id)
		for parents.Next() {
			p := d.terms[parents.Node().ID()]
			s.Add(p)
			s.AddAll(reach[p])
		}
		reach[t] = s
	}
	return &Closure{reach: reach}, nil
}

// DescendantsOf returns every term reachable from t following parent edges,
// excluding t itself.
func DescendantsOf(g Graph, t Term) (TermSet, error) {
	d, err := Mirror(g)
	if err != nil {
		return nil, err
	}
	if _, err := sortTerms(d); err != nil {
		return nil, err
	}
	id, ok := d.ids[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownTerm, t)
	}

	reached := make(TermSet)
	df := traverse.DepthFirst{
		Visit: func(n graph.Node) {
			if n.ID() != id {
				reached.Add(d.terms[n.ID()])
			}
		},
	}
	df.Walk(d.g, d.g.Node(id), nil)
	return reached, nil
}

// sortTerms orders the graph topologically and turns a cycle into a
// configuration error naming the terms involved.
func sortTerms(d *DAG) ([]graph.Node, error) {
	order, err := topo.SortStabilized(d.g, byID)
	if err == nil {
		return order, nil
	}
	var cycles topo.Unorderable
	if errors.As(err, &cycles) && len(cycles) > 0 {
		var names []string
		for _, n := range cycles[0] {
			names = append(names, string(d.terms[n.ID()]))
		}
		sort.Strings(names)
		return nil, core.NewCycleError(names)
	}
	return nil, fmt.Errorf("%w: %v", core.ErrCyclicOntology, err)
}

func byID(nodes []graph.Node) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })
}
