package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"gobayes/domain/annotation"
	"gobayes/domain/core"
	"gobayes/domain/enrichment"
	"gobayes/domain/ontology"
	"gobayes/internal"
	"gobayes/ports"
)

// EnrichmentOptions controls how the index is built and modules are tested
type EnrichmentOptions struct {
	Columns annotation.Columns
	Trace   bool // propagate annotations to ancestor terms
	Workers int
}

// EnrichmentService loads the annotation index and tests gene modules
// against it
type EnrichmentService struct {
	ontologySource   ports.OntologySource
	annotationSource ports.AnnotationSource
	options          EnrichmentOptions
	logger           *internal.Logger
}

// NewEnrichmentService creates an enrichment service
func NewEnrichmentService(ontologySource ports.OntologySource, annotationSource ports.AnnotationSource, options EnrichmentOptions, logger *internal.Logger) *EnrichmentService {
	if options.Workers < 1 {
		options.Workers = 1
	}
	return &EnrichmentService{
		ontologySource:   ontologySource,
		annotationSource: annotationSource,
		options:          options,
		logger:           logger,
	}
}

// LoadClosure reads the ontology and traces its closure
func (s *EnrichmentService) LoadClosure(ctx context.Context) (*ontology.Closure, annotation.Canonicalizer, error) {
	graph, canon, err := s.ontologySource.LoadOntology(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load ontology: %w", err)
	}
	closure, err := ontology.Trace(graph)
	if err != nil {
		return nil, nil, fmt.Errorf("trace ontology: %w", err)
	}
	s.logger.Debug("traced %d ontology terms", closure.Len())
	if canon == nil {
		canon = annotation.Identity
	}
	return closure, canon, nil
}

// LoadIndex reads the annotation table and builds the index, propagating
// through the ontology closure when tracing is enabled
func (s *EnrichmentService) LoadIndex(ctx context.Context) (*annotation.Index, error) {
	start := time.Now()

	opts := annotation.Options{
		Columns:      s.options.Columns,
		Canonicalize: annotation.Identity,
	}
	if s.options.Trace {
		closure, canon, err := s.LoadClosure(ctx)
		if err != nil {
			return nil, err
		}
		opts.Closure = closure
		opts.Canonicalize = canon
	}

	rows, err := s.annotationSource.LoadAnnotations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load annotations: %w", err)
	}
	idx, err := annotation.Build(rows, opts)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	if untraced := idx.Untraced(); len(untraced) > 0 {
		s.logger.Warn("%d annotated terms are not in the ontology and were not propagated (first: %s)", len(untraced), untraced[0])
	}
	s.logger.Info("indexed %d genes over %d terms from %d rows in %v (fingerprint %s)",
		idx.Len(), len(idx.Terms()), len(rows), time.Since(start).Round(time.Millisecond), idx.Fingerprint().Short())
	return idx, nil
}

// TestModules tests every module against idx concurrently. Reports share one
// run ID and come back sorted by module name.
func (s *EnrichmentService) TestModules(ctx context.Context, idx *annotation.Index, modules map[string]annotation.GeneSet, mode enrichment.Mode) ([]enrichment.Report, error) {
	names := make([]string, 0, len(modules))
	for name := range modules {
		names = append(names, name)
	}
	sort.Strings(names)

	runID := core.NewRunID()
	fingerprint := idx.Fingerprint()
	reports := make([]enrichment.Report, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.options.Workers)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rows, err := enrichment.Analyze(modules[name], idx, mode)
			if err != nil {
				return fmt.Errorf("module %s: %w", name, err)
			}
			reports[i] = enrichment.Report{
				RunID:       runID,
				Module:      name,
				Mode:        mode,
				Fingerprint: fingerprint,
				Rows:        rows,
			}
			s.logger.Debug("module %s: %d genes, %d terms tested", name, len(modules[name]), len(rows))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("run %s: tested %d modules in %s mode", runID, len(reports), mode)
	return reports, nil
}
