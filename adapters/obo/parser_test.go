package obo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gobayes/domain/core"
	"gobayes/domain/ontology"
)

const sampleOBO = `format-version: 1.2
data-version: releases/2024-01-17
subsetdef: goslim_generic "Generic GO slim"
subsetdef: goslim_yeast "Yeast GO slim"

[Term]
id: GO:0005575
name: cellular_component
namespace: cellular_component

[Term]
id: GO:0016020
name: membrane
namespace: cellular_component
alt_id: GO:0016021
is_a: GO:0005575 ! cellular_component

[Term]
id: GO:0005743
name: mitochondrial inner membrane
namespace: cellular_component
is_a: GO:0016020 {source="GOC:x"} ! membrane
relationship: part_of GO:0005739 ! mitochondrion
relationship: has_part GO:0099999 ! something

[Term]
id: GO:0005739
name: mitochondrion
namespace: cellular_component
is_a: GO:0005575 ! cellular_component

[Term]
id: GO:0000000
name: obsolete thing
is_obsolete: true

[Typedef]
id: part_of
name: part of
is_transitive: true

[Typedef]
id: has_part
name: has part
`

func TestParse(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleOBO))
	require.NoError(t, err)

	assert.Equal(t, []string{"1.2"}, doc.Header["format-version"])
	assert.Len(t, doc.Header["subsetdef"], 2)
	require.Len(t, doc.Terms, 5)
	require.Len(t, doc.Typedefs, 2)

	inner := doc.Terms[2]
	assert.Equal(t, "GO:0005743", inner.ID)
	assert.Equal(t, "mitochondrial inner membrane", inner.Name)
	assert.Equal(t, []Relationship{
		{Type: "is_a", Target: "GO:0016020"},
		{Type: "part_of", Target: "GO:0005739"},
		{Type: "has_part", Target: "GO:0099999"},
	}, inner.Relationships)

	assert.Equal(t, []string{"GO:0016021"}, doc.Terms[1].AltIDs)
	assert.True(t, doc.Terms[4].IsObsolete)
	assert.Equal(t, []string{"part_of"}, doc.TransitiveRelationships())
}

func TestDocument_Graph(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleOBO))
	require.NoError(t, err)

	g, err := doc.Graph()
	require.NoError(t, err)
	assert.Equal(t, []ontology.Term{"GO:0005739", "GO:0016020"}, g.Parents("GO:0005743"))
	assert.False(t, g.Has("GO:0099999"), "has_part is not followed by default")

	c, err := ontology.Trace(g)
	require.NoError(t, err)
	assert.Equal(t,
		ontology.NewTermSet("GO:0016020", "GO:0005739", "GO:0005575"),
		c.Of("GO:0005743"))

	isaOnly, err := doc.Graph("is_a")
	require.NoError(t, err)
	assert.Equal(t, []ontology.Term{"GO:0016020"}, isaOnly.Parents("GO:0005743"))
}

func TestDocument_Canonicalizer(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleOBO))
	require.NoError(t, err)

	canon := doc.Canonicalizer()
	assert.Equal(t, ontology.Term("GO:0016020"), canon("GO:0016021"))
	assert.Equal(t, ontology.Term("GO:0016020"), canon("GO:0016020"))
	assert.Equal(t, ontology.Term("GO:1234567"), canon("GO:1234567"))
	assert.Len(t, doc.CanonicalIDs(), 6)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse(strings.NewReader("[Term]\nname: no id here\n"))
	assert.ErrorIs(t, err, core.ErrMalformedOBO)

	_, err = Parse(strings.NewReader("[Term]\nid: GO:1\nthis line has no separator\n"))
	assert.ErrorIs(t, err, core.ErrMalformedOBO)
}

func TestDocument_GraphRejectsSelfEdge(t *testing.T) {
	doc, err := Parse(strings.NewReader("[Term]\nid: GO:1\nis_a: GO:1 ! itself\n"))
	require.NoError(t, err)
	_, err = doc.Graph()
	assert.ErrorIs(t, err, core.ErrCyclicOntology)
}
