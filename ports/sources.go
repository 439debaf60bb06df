package ports

import (
	"context"
	"io"

	"gobayes/domain/annotation"
	"gobayes/domain/enrichment"
	"gobayes/domain/ontology"
)

// OntologySource provides the ontology graph and the ID canonicalizer that
// goes with it
type OntologySource interface {
	// LoadOntology returns the graph and a canonicalizer. Sources without
	// alternate IDs return annotation.Identity.
	LoadOntology(ctx context.Context) (ontology.Graph, annotation.Canonicalizer, error)
}

// AnnotationSource provides the raw annotation table, already filtered of
// discarded evidence codes
type AnnotationSource interface {
	LoadAnnotations(ctx context.Context) ([]annotation.Row, error)
}

// ReportWriter serialises enrichment reports
type ReportWriter interface {
	WriteReports(w io.Writer, reports []enrichment.Report) error
}
