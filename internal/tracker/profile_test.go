package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/diacare/internal/constants"
	"github.com/julianstephens/diacare/internal/models"
)

func TestOnboardingFlag(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	assert.False(t, f.tr.OnboardingComplete(ctx))
	require.NoError(t, f.tr.SetOnboardingComplete(ctx))
	assert.True(t, f.tr.OnboardingComplete(ctx))

	raw, err := f.store.Get(ctx, constants.KeyOnboardingComplete)
	require.NoError(t, err)
	assert.Equal(t, "true", string(raw))
}

func TestNotificationSettingsDefault(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	assert.Equal(t, models.NotificationSettings{Enabled: true, SoundName: "default", Vibrate: true}, f.tr.NotificationSettings(ctx))

	off := models.NotificationSettings{Enabled: false, SoundName: "chime"}
	require.NoError(t, f.tr.SetNotificationSettings(ctx, off))
	assert.Equal(t, off, f.tr.NotificationSettings(ctx))
}

func TestResetAll(t *testing.T) {
	ctx := context.Background()
	obs := &recordingObserver{}
	f := newFixture(t, WithObserver(obs))

	f.completeAll(t, "2024-01-01")
	_, err := f.tr.AddPoints(ctx, 10)
	require.NoError(t, err)
	require.NoError(t, f.tr.SetOnboardingComplete(ctx))
	require.NoError(t, f.store.Set(ctx, "unrelated", []byte(`1`)))

	require.NoError(t, f.tr.ResetAll(ctx))

	keys, err := f.store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"unrelated"}, keys)
	assert.Equal(t, models.StreakData{}, f.tr.Streaks(ctx))
	assert.Len(t, obs.last(), 5)
}

func TestBloodSugarLogs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	old := f.tr.NewBloodSugarLog("old", 140, constants.UnitMgDL, constants.MealAfterMeal, "")
	f.clock.Advance(10 * 24 * time.Hour)
	morning := f.tr.NewBloodSugarLog("morning", 95, constants.UnitMgDL, constants.MealFasting, "")
	f.clock.Advance(3 * time.Hour)
	noon := f.tr.NewBloodSugarLog("noon", 6.1, constants.UnitMmolL, constants.MealBeforeMeal, "before lunch")

	for _, l := range []models.BloodSugarLog{old, morning, noon} {
		require.NoError(t, f.tr.AddBloodSugarLog(ctx, l))
	}

	assert.Len(t, f.tr.BloodSugarLogs(ctx), 3)
	assert.Len(t, f.tr.BloodSugarLogsForDate(ctx, "2024-01-11"), 2)

	recent := f.tr.RecentBloodSugarLogs(ctx, constants.DefaultRecentLog)
	require.Len(t, recent, 2)
	assert.Equal(t, "noon", recent[0].ID, "newest first")
	assert.Equal(t, "morning", recent[1].ID)
}
