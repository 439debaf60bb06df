package enrichment

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/combin"

	"gobayes/domain/core"
)

// Hypergeometric is the distribution of the number of annotated genes among
// Draws genes taken without replacement from a universe of Total genes, of
// which Successes are annotated.
type Hypergeometric struct {
	Total     int
	Successes int
	Draws     int
}

// NewHypergeometric validates the parameters
func NewHypergeometric(total, successes, draws int) (Hypergeometric, error) {
	h := Hypergeometric{Total: total, Successes: successes, Draws: draws}
	if total < 0 || successes < 0 || draws < 0 || successes > total || draws > total {
		return h, fmt.Errorf("%w: N=%d K=%d n=%d", core.ErrInvalidParameters, total, successes, draws)
	}
	return h, nil
}

// Support returns the smallest and largest attainable values
func (h Hypergeometric) Support() (lo, hi int) {
	lo = h.Draws - (h.Total - h.Successes)
	if lo < 0 {
		lo = 0
	}
	hi = h.Successes
	if h.Draws < hi {
		hi = h.Draws
	}
	return lo, hi
}

// LogPMF returns log P(X = x)
func (h Hypergeometric) LogPMF(x int) float64 {
	lo, hi := h.Support()
	if x < lo || x > hi {
		return math.Inf(-1)
	}
	return logChoose(h.Successes, x) +
		logChoose(h.Total-h.Successes, h.Draws-x) -
		logChoose(h.Total, h.Draws)
}

// PMF returns P(X = x)
func (h Hypergeometric) PMF(x int) float64 {
	return math.Exp(h.LogPMF(x))
}

// Survival returns P(X > x)
func (h Hypergeometric) Survival(x int) float64 {
	return math.Exp(h.LogSurvival(x))
}

// LogSurvival returns log P(X > x). The tail is summed term by term in log
// space, so it stays finite where Survival underflows to zero.
func (h Hypergeometric) LogSurvival(x int) float64 {
	lo, hi := h.Support()
	if x < lo {
		return 0
	}
	if x >= hi {
		return math.Inf(-1)
	}
	terms := make([]float64, 0, hi-x)
	for i := x + 1; i <= hi; i++ {
		terms = append(terms, h.LogPMF(i))
	}
	return math.Min(0, floats.LogSumExp(terms))
}

func logChoose(n, k int) float64 {
	return combin.LogGeneralizedBinomial(float64(n), float64(k))
}
