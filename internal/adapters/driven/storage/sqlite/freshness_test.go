package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FreshnessStore {
	t.Helper()
	store, err := NewFreshnessStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestFreshnessStore_TouchAndLookup(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	modified := time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC)
	require.NoError(t, store.Touch(ctx, "doc-1", modified))

	got, ok, err := store.ModifiedAt(ctx, "doc-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, modified, got)
}

func TestFreshnessStore_TouchOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	second := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Touch(ctx, "doc-1", first))
	require.NoError(t, store.Touch(ctx, "doc-1", second))

	got, ok, err := store.ModifiedAt(ctx, "doc-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, second, got)
}

func TestFreshnessStore_UnknownIDIsNotAnError(t *testing.T) {
	store := newTestStore(t)

	_, ok, err := store.ModifiedAt(context.Background(), "never-seen")

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFreshnessStore_RejectsEmptyID(t *testing.T) {
	store := newTestStore(t)

	err := store.Touch(context.Background(), "", time.Now())

	assert.Error(t, err)
}

func TestFreshnessStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	modified := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	store, err := NewFreshnessStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Touch(ctx, "doc-1", modified))
	require.NoError(t, store.Close())

	reopened, err := NewFreshnessStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, ok, err := reopened.ModifiedAt(ctx, "doc-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, modified, got)
}
