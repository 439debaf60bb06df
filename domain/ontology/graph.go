package ontology

// Graph is the capability the closure needs from an ontology: enumerate the
// terms and, for each term, its parents. Edges run child -> parent, so a
// term's parents are the less specific terms it is_a / part_of.
type Graph interface {
	Terms() []Term
	Parents(t Term) []Term
}

// Adapter exposes any external graph structure as a Graph
type Adapter struct {
	TermsFunc   func() []Term
	ParentsFunc func(Term) []Term
}

// Terms implements Graph
func (a Adapter) Terms() []Term {
	if a.TermsFunc == nil {
		return nil
	}
	return a.TermsFunc()
}

// Parents implements Graph
func (a Adapter) Parents(t Term) []Term {
	if a.ParentsFunc == nil {
		return nil
	}
	return a.ParentsFunc(t)
}

// EdgeMap adapts a plain child -> parents map
type EdgeMap map[Term][]Term

// Terms implements Graph. Terms appearing only as parents are included.
func (m EdgeMap) Terms() []Term {
	seen := make(TermSet, len(m))
	for child, parents := range m {
		seen.Add(child)
		for _, p := range parents {
			seen.Add(p)
		}
	}
	return seen.Sorted()
}

// Parents implements Graph
func (m EdgeMap) Parents(t Term) []Term {
	return m[t]
}
