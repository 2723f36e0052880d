package catalog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []Entry {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []Entry{
		{
			Source: "recipes/tea.crumb", Title: "Tea", File: "output/Tea.pdf", Pages: 1,
			Ingredients: 1, Steps: 1, PrepMinutes: 5, Tags: []string{"drink", "hot"},
			Status: StatusConverted, ConvertedAt: at,
		},
		{
			Source: "recipes/broken.crumb", Status: StatusFailed,
			Error: "invalid character 'x'", ConvertedAt: at,
		},
	}
}

func TestStoreRecordAndQuery(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db", "catalog.db")
	store, err := NewStore(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Record(ctx, "run-1", sampleEntries()))
	require.NoError(t, store.Record(ctx, "run-2", sampleEntries()[:1]))

	got, err := store.Entries(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, sampleEntries()[0], got[0])
	assert.Equal(t, StatusFailed, got[1].Status)
	assert.Equal(t, "invalid character 'x'", got[1].Error)
	assert.Nil(t, got[1].Tags)

	got, err = store.Entries(ctx, "run-2")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestStoreKeepsTagsWithCommas(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	defer store.Close()

	entry := sampleEntries()[0]
	entry.Tags = []string{"salt, pepper", "quick"}
	require.NoError(t, store.Record(ctx, "run-1", []Entry{entry}))

	got, err := store.Entries(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"salt, pepper", "quick"}, got[0].Tags)
}

func TestStoreReopenKeepsRows(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Record(ctx, "run-1", sampleEntries()))
	require.NoError(t, store.Close())

	store, err = NewStore(path)
	require.NoError(t, err)
	defer store.Close()
	got, err := store.Entries(ctx, "run-1")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestReportRoundTrip(t *testing.T) {
	started := time.Date(2026, 3, 1, 11, 59, 0, 0, time.UTC)
	rep := NewReport("run-1", "Crouton_Recipes", "output", started, sampleEntries())
	assert.Equal(t, 1, rep.Converted)
	assert.Equal(t, 1, rep.Failed)

	path := filepath.Join(t.TempDir(), "reports", "run.yaml")
	require.NoError(t, WriteReport(path, rep))

	back, err := ReadReport(path)
	require.NoError(t, err)
	assert.Equal(t, rep.RunID, back.RunID)
	assert.Equal(t, rep.Converted, back.Converted)
	require.Len(t, back.Entries, 2)
	assert.Equal(t, "Tea", back.Entries[0].Title)
	assert.Equal(t, []string{"drink", "hot"}, back.Entries[0].Tags)
	assert.True(t, started.Equal(back.StartedAt))
}

func TestReadReportMissing(t *testing.T) {
	_, err := ReadReport(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}
