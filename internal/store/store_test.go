package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleDoc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	var missing sampleDoc
	assert.ErrorIs(t, s.Load(ctx, DatasetProducts, &missing), ErrNotFound)

	in := sampleDoc{Name: "vic", Count: 3}
	require.NoError(t, s.Save(ctx, DatasetProducts, in))

	var out sampleDoc
	require.NoError(t, s.Load(ctx, DatasetProducts, &out))
	assert.Equal(t, in, out)

	// Saves replace the document wholesale.
	require.NoError(t, s.Save(ctx, DatasetProducts, sampleDoc{Name: "nsw"}))
	require.NoError(t, s.Load(ctx, DatasetProducts, &out))
	assert.Equal(t, sampleDoc{Name: "nsw"}, out)
}

func TestFileStoreRejectsBadDatasetName(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	assert.Error(t, s.Save(context.Background(), "../escape", sampleDoc{}))
	assert.Error(t, s.Load(context.Background(), "no spaces", &sampleDoc{}))
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var missing sampleDoc
	assert.ErrorIs(t, s.Load(ctx, DatasetHubs, &missing), ErrNotFound)

	require.NoError(t, s.Save(ctx, DatasetHubs, sampleDoc{Name: "qld", Count: 1}))
	var out sampleDoc
	require.NoError(t, s.Load(ctx, DatasetHubs, &out))
	assert.Equal(t, sampleDoc{Name: "qld", Count: 1}, out)
}
