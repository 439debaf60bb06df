package container

import (
	"fmt"

	"gobayes/adapters/files"
	"gobayes/app"
	"gobayes/domain/annotation"
	"gobayes/domain/enrichment"
	"gobayes/internal"
	"gobayes/internal/config"
	"gobayes/ports"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Sources
	OntologySource   ports.OntologySource
	AnnotationSource ports.AnnotationSource

	// Services
	Enrichment *app.EnrichmentService
}

// New creates a container backed by the files named in cfg
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	discard, err := cfg.Annotation.DiscardRules()
	if err != nil {
		return nil, fmt.Errorf("invalid discard rules: %w", err)
	}

	onto := files.OntologySource{
		Path:          cfg.Ontology.File,
		Format:        cfg.Ontology.Format,
		Separator:     cfg.Ontology.Separator,
		Relationships: cfg.Ontology.Relationships,
	}
	annots := files.AnnotationSource{
		Path:    cfg.Annotation.File,
		Discard: discard,
	}
	return NewWithSources(cfg, logger, onto, annots)
}

// NewWithSources creates a container around the given sources
func NewWithSources(cfg *config.Config, logger *internal.Logger, onto ports.OntologySource, annots ports.AnnotationSource) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config:           cfg,
		Logger:           logger,
		OntologySource:   onto,
		AnnotationSource: annots,
	}
	c.Enrichment = app.NewEnrichmentService(onto, annots, c.enrichmentOptions(), logger)

	logger.Debug("container initialized (ontology %s, annotations %s, workers %d)",
		cfg.Ontology.Format, cfg.Annotation.File, cfg.Analysis.Workers)
	return c, nil
}

func (c *Container) enrichmentOptions() app.EnrichmentOptions {
	return app.EnrichmentOptions{
		Columns: annotation.Columns{
			Gene: c.Config.Annotation.GeneColumn,
			Term: c.Config.Annotation.TermColumn,
		},
		Trace:   c.Config.Ontology.Trace,
		Workers: c.Config.Analysis.Workers,
	}
}

// Mode returns the configured enrichment mode
func (c *Container) Mode() enrichment.Mode {
	return enrichment.ParseMode(c.Config.Analysis.Mode)
}
