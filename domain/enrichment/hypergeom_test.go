package enrichment

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gobayes/domain/core"
)

// choose is an exact binomial coefficient for small arguments
func choose(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	r := 1.0
	for i := 1; i <= k; i++ {
		r = r * float64(n-k+i) / float64(i)
	}
	return r
}

func TestSurvival_ClosedForm(t *testing.T) {
	// N=10, K=4, n=3: P(X >= 2) = (C(4,2)C(6,1) + C(4,3)C(6,0)) / C(10,3) = 40/120
	h, err := NewHypergeometric(10, 4, 3)
	require.NoError(t, err)

	want := (choose(4, 2)*choose(6, 1) + choose(4, 3)*choose(6, 0)) / choose(10, 3)
	assert.InDelta(t, 1.0/3.0, want, 1e-15)
	assert.InDelta(t, want, h.Survival(1), 1e-12)
}

func TestSurvival_MatchesExactSums(t *testing.T) {
	cases := []struct{ total, successes, draws int }{
		{10, 4, 3},
		{20, 5, 10},
		{30, 29, 5},
		{50, 1, 50},
		{12, 12, 4},
		{40, 7, 0},
	}
	for _, c := range cases {
		h, err := NewHypergeometric(c.total, c.successes, c.draws)
		require.NoError(t, err)
		for x := -1; x <= c.draws+1; x++ {
			want := 0.0
			for i := x + 1; i <= c.draws; i++ {
				want += choose(c.successes, i) * choose(c.total-c.successes, c.draws-i) / choose(c.total, c.draws)
			}
			assert.InDelta(t, want, h.Survival(x), 1e-10, "N=%d K=%d n=%d x=%d", c.total, c.successes, c.draws, x)
		}
	}
}

func TestPMF_SumsToOne(t *testing.T) {
	h, err := NewHypergeometric(200, 37, 60)
	require.NoError(t, err)
	lo, hi := h.Support()
	assert.Equal(t, 0, lo)
	assert.Equal(t, 37, hi)

	sum := 0.0
	for x := lo; x <= hi; x++ {
		sum += h.PMF(x)
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.Equal(t, 0.0, h.PMF(hi+1))
	assert.True(t, math.IsInf(h.LogPMF(-1), -1))
}

func TestSupport_LowerBound(t *testing.T) {
	// Drawing 8 of 10 genes when only 3 are unannotated forces at least 5 hits.
	h, err := NewHypergeometric(10, 7, 8)
	require.NoError(t, err)
	lo, hi := h.Support()
	assert.Equal(t, 5, lo)
	assert.Equal(t, 7, hi)
	assert.Equal(t, 1.0, h.Survival(4))
	assert.Equal(t, 1.0, h.Survival(0))
}

func TestSurvival_SmallTailsKeepPrecision(t *testing.T) {
	// All 20 annotated genes drawn in a module of 20 from 5000.
	h, err := NewHypergeometric(5000, 20, 20)
	require.NoError(t, err)
	p := h.Survival(19)
	assert.Greater(t, p, 0.0)
	assert.InEpsilon(t, math.Exp(-logChoose(5000, 20)), p, 1e-8)
}

func TestNewHypergeometric_Invalid(t *testing.T) {
	for _, c := range []struct{ total, successes, draws int }{
		{-1, 0, 0},
		{10, 11, 2},
		{10, 2, 11},
		{10, -2, 1},
	} {
		_, err := NewHypergeometric(c.total, c.successes, c.draws)
		assert.ErrorIs(t, err, core.ErrInvalidParameters)
		assert.True(t, core.IsNumericError(err))
	}
}

func TestLogSurvival_BeyondUnderflow(t *testing.T) {
	h, err := NewHypergeometric(20000, 1000, 300)
	require.NoError(t, err)

	want := logChoose(1000, 300) - logChoose(20000, 300)
	assert.InEpsilon(t, want, h.LogSurvival(299), 1e-9)
	assert.Equal(t, 0.0, h.Survival(299))
	assert.Equal(t, 0.0, h.LogSurvival(-1))
	assert.True(t, math.IsInf(h.LogSurvival(300), -1))
}
