package enrichment

import (
	"fmt"
	"math"
	"sort"

	"gobayes/domain/annotation"
	"gobayes/domain/core"
	"gobayes/domain/ontology"
)

// Result maps every term represented in a module to its p-value
type Result map[ontology.Term]float64

// TermResult carries the counts behind one term's p-value
type TermResult struct {
	Term      ontology.Term `json:"term"`
	Total     int           `json:"total"`     // N, genes in the universe
	Annotated int           `json:"annotated"` // K, universe genes annotated with Term
	Drawn     int           `json:"drawn"`     // n, genes in the module
	Hits      int           `json:"hits"`      // k, module genes annotated with Term
	PValue    float64       `json:"p_value"`
	LogPValue float64       `json:"log_p_value"`
}

// Test computes the overrepresentation p-value of every term annotated to
// at least one module gene. Terms absent from the module are not reported.
func Test(module annotation.GeneSet, idx *annotation.Index, mode Mode) (Result, error) {
	rows, err := Analyze(module, idx, mode)
	if err != nil {
		return nil, err
	}
	res := make(Result, len(rows))
	for _, r := range rows {
		res[r.Term] = r.PValue
	}
	return res, nil
}

// Analyze is Test with the per-term counts kept, ordered by ascending
// log p-value and then by term.
func Analyze(module annotation.GeneSet, idx *annotation.Index, mode Mode) ([]TermResult, error) {
	if len(module) == 0 || idx.Len() == 0 {
		return []TermResult{}, nil
	}

	genes := module.Sorted()
	sets := make([]ontology.TermSet, 0, len(genes))
	for _, g := range genes {
		if !idx.Has(g) {
			return nil, core.NewUnknownGeneError(string(g))
		}
		sets = append(sets, idx.TermsOf(g))
	}
	represented := ontology.Union(sets...)

	total, drawn := idx.Len(), len(genes)
	rows := make([]TermResult, 0, len(represented))
	for _, term := range represented.Sorted() {
		hits := 0
		for _, terms := range sets {
			if terms.Has(term) {
				hits++
			}
		}
		annotated := idx.Count(term)

		logP, err := LogPValue(total, annotated, drawn, hits, mode)
		if err != nil {
			return nil, fmt.Errorf("term %s: %w", term, err)
		}
		rows = append(rows, TermResult{
			Term:      term,
			Total:     total,
			Annotated: annotated,
			Drawn:     drawn,
			Hits:      hits,
			PValue:    probability(logP),
			LogPValue: logP,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].LogPValue != rows[j].LogPValue {
			return rows[i].LogPValue < rows[j].LogPValue
		}
		return rows[i].Term < rows[j].Term
	})
	return rows, nil
}

// PValue returns P(X >= hits) for X ~ Hypergeometric(total, annotated,
// drawn), divided by P(X >= 1) in Conditional mode. Attainable tails too
// small for a float64 are reported as math.SmallestNonzeroFloat64.
func PValue(total, annotated, drawn, hits int, mode Mode) (float64, error) {
	logP, err := LogPValue(total, annotated, drawn, hits, mode)
	if err != nil {
		return 0, err
	}
	return probability(logP), nil
}

// LogPValue is the natural logarithm of PValue without the floor
func LogPValue(total, annotated, drawn, hits int, mode Mode) (float64, error) {
	h, err := NewHypergeometric(total, annotated, drawn)
	if err != nil {
		return 0, err
	}
	logP := h.LogSurvival(hits - 1)
	if mode != Conditional {
		return logP, nil
	}

	logAtLeastOne := h.LogSurvival(0)
	if math.IsInf(logAtLeastOne, -1) || math.IsNaN(logAtLeastOne) {
		return 0, fmt.Errorf("%w: N=%d K=%d n=%d", core.ErrDegenerateConditional, total, annotated, drawn)
	}
	return math.Min(0, logP-logAtLeastOne), nil
}

// probability maps a log tail back to [0, 1], keeping attainable tails
// strictly positive
func probability(logP float64) float64 {
	if math.IsInf(logP, -1) {
		return 0
	}
	return math.Max(math.SmallestNonzeroFloat64, math.Exp(logP))
}
