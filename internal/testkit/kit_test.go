package testkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomUniverse_Deterministic(t *testing.T) {
	a := RandomUniverse(50, 30, 7)
	b := RandomUniverse(50, 30, 7)
	assert.Equal(t, a.Annotations.Rows, b.Annotations.Rows)
	assert.Equal(t, a.Ontology.Edges, b.Ontology.Edges)

	idxA, err := a.Index()
	require.NoError(t, err)
	idxB, err := b.Index()
	require.NoError(t, err)
	assert.Equal(t, idxA.Fingerprint(), idxB.Fingerprint())
	assert.Equal(t, 50, idxA.Len())
	assert.Empty(t, idxA.Untraced())
	assert.NoError(t, idxA.Validate())
}

func TestMemorySources_Canceled(t *testing.T) {
	u := RandomUniverse(5, 5, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := u.Ontology.LoadOntology(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = u.Annotations.LoadAnnotations(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, u.Ontology.Loads())
}
