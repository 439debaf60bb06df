package ontology

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"

	"gobayes/domain/core"
)

// DAG is an in-memory ontology graph. Terms are nodes of a gonum directed
// graph and every edge points from a child term to one of its parents.
type DAG struct {
	g     *simple.DirectedGraph
	ids   map[Term]int64
	terms []Term // indexed by node ID
}

// NewDAG creates an empty ontology graph
func NewDAG() *DAG {
	return &DAG{
		g:   simple.NewDirectedGraph(),
		ids: make(map[Term]int64),
	}
}

// AddTerm adds t as a node if it is not present yet
func (d *DAG) AddTerm(t Term) {
	d.node(t)
}

// AddEdge records that child is_a / part_of parent. Both terms are added
// if needed. A self edge is a cycle and is rejected.
func (d *DAG) AddEdge(child, parent Term) error {
	if child == parent {
		return core.NewCycleError([]string{string(child)})
	}
	c, p := d.node(child), d.node(parent)
	if d.g.HasEdgeFromTo(c.ID(), p.ID()) {
		return nil
	}
	d.g.SetEdge(d.g.NewEdge(c, p))
	return nil
}

// Has reports whether t is a node of the graph
func (d *DAG) Has(t Term) bool {
	_, ok := d.ids[t]
	return ok
}

// Len returns the number of terms
func (d *DAG) Len() int {
	return len(d.terms)
}

// Terms implements Graph, returning terms in lexical order
func (d *DAG) Terms() []Term {
	out := make([]Term, len(d.terms))
	copy(out, d.terms)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Parents implements Graph, returning parents in lexical order
func (d *DAG) Parents(t Term) []Term {
	id, ok := d.ids[t]
	if !ok {
		return nil
	}
	return d.termsOf(d.g.From(id))
}

// Children returns the terms that list t as a parent
func (d *DAG) Children(t Term) []Term {
	id, ok := d.ids[t]
	if !ok {
		return nil
	}
	return d.termsOf(d.g.To(id))
}

// Roots returns the terms without parents, in lexical order
func (d *DAG) Roots() []Term {
	var roots []Term
	for id, t := range d.terms {
		if d.g.From(int64(id)).Len() == 0 {
			roots = append(roots, t)
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })
	return roots
}

func (d *DAG) node(t Term) graph.Node {
	if id, ok := d.ids[t]; ok {
		return d.g.Node(id)
	}
	n := simple.Node(len(d.terms))
	d.g.AddNode(n)
	d.ids[t] = n.ID()
	d.terms = append(d.terms, t)
	return n
}

func (d *DAG) termsOf(it graph.Nodes) []Term {
	out := make([]Term, 0, it.Len())
	for it.Next() {
		out = append(out, d.terms[it.Node().ID()])
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Mirror copies any Graph into a DAG. A *DAG is returned unchanged.
func Mirror(g Graph) (*DAG, error) {
	if d, ok := g.(*DAG); ok {
		return d, nil
	}
	d := NewDAG()
	for _, t := range g.Terms() {
		d.AddTerm(t)
		for _, p := range g.Parents(t) {
			if err := d.AddEdge(t, p); err != nil {
				return nil, err
			}
		}
	}
	return d, nil
}
