// Package files implements the source ports over files on disk.
package files

import (
	"context"
	"fmt"
	"os"

	"gobayes/adapters/gaf"
	"gobayes/adapters/obo"
	"gobayes/adapters/pairs"
	"gobayes/domain/annotation"
	"gobayes/domain/ontology"
)

// Ontology formats understood by OntologySource
const (
	FormatOBO   = "obo"
	FormatPairs = "pairs"
)

// OntologySource reads an OBO file or a pair list
type OntologySource struct {
	Path          string
	Format        string
	Separator     string   // pairs only
	Relationships []string // obo only
}

// LoadOntology implements ports.OntologySource
func (s OntologySource) LoadOntology(ctx context.Context) (ontology.Graph, annotation.Canonicalizer, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	switch s.Format {
	case FormatOBO, "":
		doc, err := obo.Parse(f)
		if err != nil {
			return nil, nil, fmt.Errorf("parse %s: %w", s.Path, err)
		}
		g, err := doc.Graph(s.Relationships...)
		if err != nil {
			return nil, nil, fmt.Errorf("ontology %s: %w", s.Path, err)
		}
		return g, doc.Canonicalizer(), nil
	case FormatPairs:
		g, err := pairs.Read(f, s.Separator)
		if err != nil {
			return nil, nil, fmt.Errorf("parse %s: %w", s.Path, err)
		}
		return g, annotation.Identity, nil
	default:
		return nil, nil, fmt.Errorf("unknown ontology format %q", s.Format)
	}
}

// AnnotationSource reads a tab-separated annotation table
type AnnotationSource struct {
	Path    string
	Discard []gaf.Discard
}

// LoadAnnotations implements ports.AnnotationSource
func (s AnnotationSource) LoadAnnotations(ctx context.Context) ([]annotation.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := gaf.Read(f, s.Discard)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return rows, nil
}
