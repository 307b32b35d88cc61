package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/diacare/internal/models"
)

func TestCompleteAppendsRow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res, err := f.tr.Complete(ctx, "water", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "water", res.Task.HabitID)
	assert.Equal(t, "2024-01-01", res.Task.Date)
	assert.Equal(t, "2024-01-01T09:00:00.000Z", res.Task.CompletedAt)
	assert.False(t, res.PerfectDay)
	assert.False(t, res.StreakUpdated)

	assert.True(t, f.tr.IsCompleted(ctx, "water", "2024-01-01"))
	assert.False(t, f.tr.IsCompleted(ctx, "water", "2024-01-02"))
}

func TestCompleteTwiceWithoutDedupe(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.tr.Complete(ctx, "water", "2024-01-01")
	require.NoError(t, err)
	res, err := f.tr.Complete(ctx, "water", "2024-01-01")
	require.NoError(t, err)

	assert.False(t, res.Duplicate)
	assert.Len(t, f.tr.CompletionsForDate(ctx, "2024-01-01"), 2)
}

func TestCompleteTwiceWithDedupe(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, WithDedupedCompletions(true))

	_, err := f.tr.Complete(ctx, "water", "2024-01-01")
	require.NoError(t, err)
	res, err := f.tr.Complete(ctx, "water", "2024-01-01")
	require.NoError(t, err)

	assert.True(t, res.Duplicate)
	assert.Len(t, f.tr.CompletionsForDate(ctx, "2024-01-01"), 1)
}

func TestDuplicateRowsDoNotDoubleCountStreak(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.completeAll(t, "2024-01-01")
	_, err := f.tr.Complete(ctx, "water", "2024-01-01")
	require.NoError(t, err)

	s := f.tr.Streaks(ctx)
	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, 1, s.TotalCompletedDays)
}

func TestUncompleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for _, id := range []string{"water", "water", "meal"} {
		_, err := f.tr.Complete(ctx, id, "2024-01-01")
		require.NoError(t, err)
	}
	_, err := f.tr.Complete(ctx, "water", "2024-01-02")
	require.NoError(t, err)

	removed, err := f.tr.Uncomplete(ctx, "water", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	once := f.tr.AllCompletions(ctx)

	removed, err = f.tr.Uncomplete(ctx, "water", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
	assert.Equal(t, once, f.tr.AllCompletions(ctx))

	assert.Len(t, once, 2)
	assert.True(t, f.tr.IsCompleted(ctx, "water", "2024-01-02"), "other dates are untouched")
}

func TestMissedYesterday(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.tr.Complete(ctx, "medicine", "2024-01-01")
	require.NoError(t, err)
	_, err = f.tr.Complete(ctx, "water", "2024-01-01")
	require.NoError(t, err)

	f.clock.Advance(24 * time.Hour)
	assert.Equal(t, []string{"meal", "sugar", "exercise"}, f.tr.MissedYesterday(ctx))
}

func TestMissedYesterdayUsesTodaysEnabledSet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.clock.Advance(24 * time.Hour)

	disabled := false
	_, err := f.tr.UpdateHabit(ctx, "exercise", models.HabitPatch{Enabled: &disabled})
	require.NoError(t, err)

	assert.NotContains(t, f.tr.MissedYesterday(ctx), "exercise")
	assert.Len(t, f.tr.MissedYesterday(ctx), 4)
}
