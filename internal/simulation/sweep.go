package simulation

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/semaphore"

	"gobayes/domain/annotation"
	"gobayes/domain/core"
	"gobayes/domain/enrichment"
	"gobayes/domain/ontology"
	"gobayes/internal"
)

// SweepConfig describes a batch of simulated modules
type SweepConfig struct {
	Runs    int
	Size    int
	Term    ontology.Term // the biased term whose p-values are summarised
	Bias    float64
	Seed    uint64 // run i draws from PCG(Seed, i)
	Alpha   float64
	Workers int
}

// RunOutcome holds the biased term's p-values for one simulated module.
// A term missing from the module scores 1 in both modes.
type RunOutcome struct {
	Run         int
	Represented bool
	Standard    float64
	Conditional float64
}

// PValueSummary describes the p-values of one mode across all runs
type PValueSummary struct {
	Mean        float64 `json:"mean"`
	Median      float64 `json:"median"`
	P5          float64 `json:"p5"`
	P95         float64 `json:"p95"`
	Significant float64 `json:"significant"` // fraction at or below Alpha
}

// SweepSummary is the outcome of Sweep
type SweepSummary struct {
	RunID       core.RunID    `json:"run_id"`
	Config      SweepConfig   `json:"-"`
	Represented float64       `json:"represented"` // fraction of runs containing the term
	Standard    PValueSummary `json:"standard"`
	Conditional PValueSummary `json:"conditional"`
	Outcomes    []RunOutcome  `json:"-"`
}

// Sweep generates cfg.Runs modules and tests each one in both modes. Runs
// are independent and seeded by index, so the summary does not depend on
// the number of workers.
func Sweep(ctx context.Context, idx *annotation.Index, cfg SweepConfig, logger *internal.Logger) (*SweepSummary, error) {
	if cfg.Runs < 1 {
		return nil, fmt.Errorf("%w: runs must be at least 1", core.ErrInvalidParameters)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	runID := core.NewRunID()
	logger.Info("sweep %s: %d runs of %d genes, term %s bias %g", runID, cfg.Runs, cfg.Size, cfg.Term, cfg.Bias)

	outcomes := make([]RunOutcome, cfg.Runs)
	sem := semaphore.NewWeighted(int64(cfg.Workers))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for i := 0; i < cfg.Runs; i++ {
		if err := sem.Acquire(ctx, 1); err != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
			break
		}
		wg.Add(1)
		go func(run int) {
			defer wg.Done()
			defer sem.Release(1)

			outcome, err := simulateRun(idx, cfg, run)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("run %d: %w", run, err)
				}
				mu.Unlock()
				return
			}
			outcomes[run] = outcome
			logger.Trace("sweep %s run %d: represented=%t p=%g pc=%g", runID, run, outcome.Represented, outcome.Standard, outcome.Conditional)
		}(i)
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}

	summary, err := summarize(outcomes, cfg.Alpha)
	if err != nil {
		return nil, err
	}
	summary.RunID = runID
	summary.Config = cfg
	logger.Info("sweep %s: represented %.2f, median p %g, median conditional p %g",
		runID, summary.Represented, summary.Standard.Median, summary.Conditional.Median)
	return summary, nil
}

func simulateRun(idx *annotation.Index, cfg SweepConfig, run int) (RunOutcome, error) {
	src := rand.NewPCG(cfg.Seed, uint64(run))
	module, err := GenerateModule(idx, cfg.Size, cfg.Term, cfg.Bias, src)
	if err != nil {
		return RunOutcome{}, err
	}

	outcome := RunOutcome{Run: run, Standard: 1, Conditional: 1}
	standard, err := enrichment.Test(module, idx, enrichment.Standard)
	if err != nil {
		return RunOutcome{}, err
	}
	p, ok := standard[cfg.Term]
	if !ok {
		return outcome, nil
	}
	conditional, err := enrichment.Test(module, idx, enrichment.Conditional)
	if err != nil {
		return RunOutcome{}, err
	}
	outcome.Represented = true
	outcome.Standard = p
	outcome.Conditional = conditional[cfg.Term]
	return outcome, nil
}

func summarize(outcomes []RunOutcome, alpha float64) (*SweepSummary, error) {
	standard := make([]float64, len(outcomes))
	conditional := make([]float64, len(outcomes))
	represented := 0
	for i, o := range outcomes {
		standard[i] = o.Standard
		conditional[i] = o.Conditional
		if o.Represented {
			represented++
		}
	}

	s, err := summarizePValues(standard, alpha)
	if err != nil {
		return nil, err
	}
	c, err := summarizePValues(conditional, alpha)
	if err != nil {
		return nil, err
	}
	return &SweepSummary{
		Represented: float64(represented) / float64(len(outcomes)),
		Standard:    s,
		Conditional: c,
		Outcomes:    outcomes,
	}, nil
}

func summarizePValues(data []float64, alpha float64) (PValueSummary, error) {
	var out PValueSummary
	var err error

	if out.Mean, err = stats.Mean(data); err != nil {
		return out, err
	}
	if out.Median, err = stats.Median(data); err != nil {
		return out, err
	}
	if out.P5, err = stats.PercentileNearestRank(data, 5); err != nil {
		return out, err
	}
	if out.P95, err = stats.PercentileNearestRank(data, 95); err != nil {
		return out, err
	}

	below := 0
	for _, p := range data {
		if p <= alpha {
			below++
		}
	}
	out.Significant = float64(below) / float64(len(data))
	return out, nil
}
