package tracker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/diacare/internal/clock"
	"github.com/julianstephens/diacare/internal/constants"
	"github.com/julianstephens/diacare/internal/models"
)

func strPtr(s string) *string { return &s }

func TestFirstPerfectDay(t *testing.T) {
	f := newFixture(t)

	res := f.completeAll(t, "2024-01-01")
	assert.True(t, res.PerfectDay)
	assert.True(t, res.StreakUpdated)

	s := f.tr.Streaks(context.Background())
	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, 1, s.LongestStreak)
	assert.Equal(t, 1, s.TotalCompletedDays)
	assert.Equal(t, "2024-01-01", s.LastCompleted())
}

func TestConsecutivePerfectDay(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seed := models.StreakData{CurrentStreak: 1, LongestStreak: 1, LastCompletedDate: strPtr("2024-01-01"), TotalCompletedDays: 1}
	require.NoError(t, f.tr.writeDoc(ctx, constants.KeyStreaks, seed))

	f.completeAll(t, "2024-01-02")

	s := f.tr.Streaks(ctx)
	assert.Equal(t, 2, s.CurrentStreak)
	assert.Equal(t, 2, s.LongestStreak)
	assert.Equal(t, 2, s.TotalCompletedDays)
}

func TestGapRestartsStreak(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seed := models.StreakData{CurrentStreak: 4, LongestStreak: 4, LastCompletedDate: strPtr("2024-01-01"), TotalCompletedDays: 4}
	require.NoError(t, f.tr.writeDoc(ctx, constants.KeyStreaks, seed))

	f.completeAll(t, "2024-01-03")

	s := f.tr.Streaks(ctx)
	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, 4, s.LongestStreak, "longest survives a reset")
	assert.Equal(t, 5, s.TotalCompletedDays)
}

func TestBackfillEarlierDateRestartsStreak(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seed := models.StreakData{CurrentStreak: 3, LongestStreak: 3, LastCompletedDate: strPtr("2024-01-05"), TotalCompletedDays: 3}
	require.NoError(t, f.tr.writeDoc(ctx, constants.KeyStreaks, seed))

	f.completeAll(t, "2024-01-02")

	s := f.tr.Streaks(ctx)
	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, 3, s.LongestStreak)
	assert.Equal(t, "2024-01-02", s.LastCompleted())
}

func TestStreakAcrossMonthBoundary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seed := models.StreakData{CurrentStreak: 3, LongestStreak: 3, LastCompletedDate: strPtr("2024-02-29"), TotalCompletedDays: 3}
	require.NoError(t, f.tr.writeDoc(ctx, constants.KeyStreaks, seed))

	f.completeAll(t, "2024-03-01")
	assert.Equal(t, 4, f.tr.Streaks(ctx).CurrentStreak)
}

func TestAlreadyCountedDayChangesNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.completeAll(t, "2024-01-01")
	before := f.tr.Streaks(ctx)

	res, err := f.tr.Complete(ctx, "medicine", "2024-01-01")
	require.NoError(t, err)
	assert.True(t, res.PerfectDay)
	assert.False(t, res.StreakUpdated)
	assert.Equal(t, before, f.tr.Streaks(ctx))
}

func TestPartialDayDoesNotTouchStreak(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.tr.Complete(ctx, "water", "2024-01-01")
	require.NoError(t, err)

	keys, err := f.store.Keys(ctx)
	require.NoError(t, err)
	assert.NotContains(t, keys, constants.KeyStreaks)
}

func TestNoEnabledHabitsFreezesStreak(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.completeAll(t, "2024-01-01")

	require.NoError(t, f.tr.SetHabits(ctx, []models.Habit{{ID: "off", Name: "Off", Enabled: false}}))
	res, err := f.tr.Complete(ctx, "off", "2024-01-02")
	require.NoError(t, err)

	assert.False(t, res.PerfectDay)
	s := f.tr.Streaks(ctx)
	assert.Equal(t, 1, s.CurrentStreak, "streak freezes, it is not reset")
}

func TestDisabledHabitNotNeededForPerfectDay(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	off := false
	_, err := f.tr.UpdateHabit(ctx, "exercise", models.HabitPatch{Enabled: &off})
	require.NoError(t, err)

	res := f.completeAll(t, "2024-01-01")
	assert.True(t, res.PerfectDay)
	assert.Equal(t, 1, f.tr.Streaks(ctx).CurrentStreak)
}

func TestLongestStreakIsMonotonic(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// Runs of perfect days broken by gaps
	dates := []int{0, 1, 2, 5, 6, 10, 11, 12, 13, 20}
	longest := 0
	for _, offset := range dates {
		date, err := clock.AddDays("2024-01-01", offset)
		require.NoError(t, err)
		f.completeAll(t, date)

		s := f.tr.Streaks(ctx)
		assert.GreaterOrEqual(t, s.LongestStreak, longest, "longest streak dropped on %s", date)
		assert.GreaterOrEqual(t, s.LongestStreak, s.CurrentStreak)
		longest = s.LongestStreak
	}

	s := f.tr.Streaks(ctx)
	assert.Equal(t, 4, s.LongestStreak)
	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, len(dates), s.TotalCompletedDays)
}

func TestIsPerfectDay(t *testing.T) {
	enabled := []models.Habit{{ID: "a", Enabled: true}, {ID: "b", Enabled: true}}
	tests := []struct {
		name    string
		enabled []models.Habit
		done    []string
		want    bool
	}{
		{"all done", enabled, []string{"a", "b"}, true},
		{"one missing", enabled, []string{"a"}, false},
		{"extra rows", enabled, []string{"a", "b", "c", "a"}, true},
		{"no enabled habits", nil, []string{"a"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var done []models.CompletedTask
			for _, id := range tt.done {
				done = append(done, models.CompletedTask{HabitID: id, Date: "2024-01-01"})
			}
			assert.Equal(t, tt.want, isPerfectDay(tt.enabled, done))
		})
	}
}
