package container

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gobayes/adapters/files"
	"gobayes/domain/annotation"
	"gobayes/domain/enrichment"
	"gobayes/domain/ontology"
	"gobayes/internal/config"
	"gobayes/internal/testkit"
)

func TestNew_FileSources(t *testing.T) {
	cfg := config.Default()
	cfg.Annotation.File = "goa.gaf"
	cfg.Ontology.File = "go.obo"

	c, err := New(cfg, nil)
	require.NoError(t, err)

	onto, ok := c.OntologySource.(files.OntologySource)
	require.True(t, ok)
	assert.Equal(t, "go.obo", onto.Path)
	assert.Equal(t, []string{"is_a", "part_of"}, onto.Relationships)

	annots, ok := c.AnnotationSource.(files.AnnotationSource)
	require.True(t, ok)
	assert.Equal(t, "goa.gaf", annots.Path)
	require.Len(t, annots.Discard, 1)
	assert.Equal(t, enrichment.Standard, c.Mode())
}

func TestNew_Errors(t *testing.T) {
	_, err := New(nil, nil)
	assert.Error(t, err)

	cfg := config.Default()
	cfg.Annotation.Discard = "nocolumn"
	_, err = New(cfg, nil)
	assert.Error(t, err)
}

func TestContainer_EnrichmentWiring(t *testing.T) {
	cfg := config.Default()
	cfg.Analysis.Mode = "conditional"

	onto := &testkit.MemoryOntology{
		Edges:   ontology.EdgeMap{"T1": {"T2"}},
		Aliases: map[string]ontology.Term{"T1old": "T1"},
	}
	annots := &testkit.MemoryAnnotations{Rows: []annotation.Row{
		testkit.GAFRow("g1", "T1old"),
		testkit.GAFRow("g2", "T2"),
		testkit.GAFRow("g3", "T3"),
	}}
	c, err := NewWithSources(cfg, nil, onto, annots)
	require.NoError(t, err)
	assert.Equal(t, enrichment.Conditional, c.Mode())

	idx, err := c.Enrichment.LoadIndex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, onto.Loads())
	assert.Equal(t, 2, idx.Count("T2"))
	assert.Equal(t, []ontology.Term{"T3"}, idx.Untraced())

	reports, err := c.Enrichment.TestModules(context.Background(), idx,
		map[string]annotation.GeneSet{"m": annotation.NewGeneSet("g1")}, c.Mode())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, enrichment.Conditional, reports[0].Mode)
}
