// Package simulation draws synthetic gene modules from an annotation index
// and measures how the enrichment test responds to a planted signal.
package simulation

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/sampleuv"

	"gobayes/domain/annotation"
	"gobayes/domain/core"
	"gobayes/domain/ontology"
)

// GenerateModule samples size distinct genes from the universe of idx
// without replacement. Genes annotated with biased are weighted by bias and
// all others by 1, so bias 1 is a uniform draw. An empty biased term means
// no gene is favoured.
func GenerateModule(idx *annotation.Index, size int, biased ontology.Term, bias float64, src rand.Source) (annotation.GeneSet, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: module size %d", core.ErrInvalidParameters, size)
	}
	if bias <= 0 {
		return nil, fmt.Errorf("%w: bias %g must be positive", core.ErrInvalidParameters, bias)
	}
	universe := idx.Genes()
	if size > len(universe) {
		return nil, fmt.Errorf("%w: %d genes requested from a universe of %d", core.ErrModuleTooLarge, size, len(universe))
	}

	weights := make([]float64, len(universe))
	for i, g := range universe {
		weights[i] = 1
		if biased != "" && idx.TermsOf(g).Has(biased) {
			weights[i] = bias
		}
	}

	sampler := sampleuv.NewWeighted(weights, src)
	module := make(annotation.GeneSet, size)
	for len(module) < size {
		i, ok := sampler.Take()
		if !ok {
			break
		}
		module.Add(universe[i])
	}
	return module, nil
}
