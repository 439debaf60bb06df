package enrichment

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gobayes/domain/annotation"
	"gobayes/internal/testkit"
)

func BenchmarkAnalyze(b *testing.B) {
	u := testkit.RandomUniverse(5000, 2000, 1)
	idx, err := u.Index()
	require.NoError(b, err)
	module := annotation.NewGeneSet(u.Genes[:200]...)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Analyze(module, idx, Conditional); err != nil {
			b.Fatal(err)
		}
	}
}

func TestAnalyze_RandomUniverse(t *testing.T) {
	u := testkit.RandomUniverse(300, 120, 11)
	idx, err := u.Index()
	require.NoError(t, err)

	module := annotation.NewGeneSet(u.Genes[10:40]...)
	for _, mode := range []Mode{Standard, Conditional} {
		rows, err := Analyze(module, idx, mode)
		require.NoError(t, err)
		require.NotEmpty(t, rows)
		for i, r := range rows {
			require.GreaterOrEqual(t, r.Hits, 1)
			require.LessOrEqual(t, r.Hits, r.Annotated)
			require.Greater(t, r.PValue, 0.0)
			require.LessOrEqual(t, r.PValue, 1.0)
			if i > 0 {
				require.LessOrEqual(t, rows[i-1].PValue, r.PValue)
			}
		}
	}
}
