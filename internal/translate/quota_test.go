package translate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/phrasebook/internal/storage"
)

func TestQuota(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.March, 31, 23, 0, 0, 0, time.UTC)
	quota := NewQuota(storage.NewMemoryStore(), 2)
	quota.now = func() time.Time { return now }

	assert.Equal(t, Usage{Month: "2026-03"}, quota.Usage(ctx))
	require.NoError(t, quota.Check(ctx))

	usage, err := quota.Increment(ctx)
	require.NoError(t, err)
	assert.Equal(t, Usage{Month: "2026-03", Used: 1}, usage)
	require.NoError(t, quota.Check(ctx))

	_, err = quota.Increment(ctx)
	require.NoError(t, err)
	assert.ErrorIs(t, quota.Check(ctx), ErrQuotaExceeded)

	now = now.Add(2 * time.Hour)
	assert.Equal(t, Usage{Month: "2026-04"}, quota.Usage(ctx))
	require.NoError(t, quota.Check(ctx))

	usage, err = quota.Increment(ctx)
	require.NoError(t, err)
	assert.Equal(t, Usage{Month: "2026-04", Used: 1}, usage)
}

func TestQuota_Unreadable(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, storage.KeyImageUsage, []byte("{")))

	quota := NewQuota(store, DefaultImageMonthlyLimit)
	quota.now = func() time.Time { return time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC) }
	assert.Equal(t, Usage{Month: "2026-01"}, quota.Usage(ctx))
}

func TestSequencer(t *testing.T) {
	var s Sequencer
	first := s.Next()
	assert.True(t, s.IsLatest(first))

	second := s.Next()
	assert.False(t, s.IsLatest(first))
	assert.True(t, s.IsLatest(second))
}
