package tracker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/diacare/internal/constants"
	"github.com/julianstephens/diacare/internal/models"
)

func TestSnoozeLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	assert.Equal(t, models.SnoozeStatus{}, f.tr.IsSnoozed(ctx, "water"))

	entry, err := f.tr.Snooze(ctx, "water", 5)
	require.NoError(t, err)
	assert.Equal(t, day1.Add(5*time.Minute).UnixMilli(), entry.SnoozeUntil)
	assert.Equal(t, models.SnoozeStatus{Snoozed: true, Expired: false}, f.tr.IsSnoozed(ctx, "water"))

	f.clock.Advance(5 * time.Minute)
	assert.Equal(t, models.SnoozeStatus{Snoozed: true, Expired: true}, f.tr.IsSnoozed(ctx, "water"), "expiry is inclusive")

	require.NoError(t, f.tr.ClearSnooze(ctx, "water"))
	assert.Equal(t, models.SnoozeStatus{}, f.tr.IsSnoozed(ctx, "water"))
}

func TestResnoozeOverwrites(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.tr.Snooze(ctx, "water", 5)
	require.NoError(t, err)
	f.clock.Advance(10 * time.Minute)
	_, err = f.tr.Snooze(ctx, "water", 5)
	require.NoError(t, err)

	snoozed := f.tr.Snoozed(ctx)
	require.Len(t, snoozed, 1)
	assert.Equal(t, day1.Add(15*time.Minute).UnixMilli(), snoozed[0].SnoozeUntil)
	assert.False(t, f.tr.IsSnoozed(ctx, "water").Expired)
}

func TestStaleSnoozesDropped(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.tr.Snooze(ctx, "water", 5)
	require.NoError(t, err)
	_, err = f.tr.Snooze(ctx, "meal", 5)
	require.NoError(t, err)

	f.clock.Advance(24 * time.Hour)
	assert.Empty(t, f.tr.Snoozed(ctx))
	assert.False(t, f.tr.IsSnoozed(ctx, "water").Snoozed)

	_, err = f.tr.Snooze(ctx, "sugar", 5)
	require.NoError(t, err)

	var stored []models.SnoozedTask
	raw, err := f.store.Get(ctx, constants.KeySnoozedTasks)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &stored))
	require.Len(t, stored, 1, "writes purge entries from earlier days")
	assert.Equal(t, "sugar", stored[0].HabitID)
	assert.Equal(t, "2024-01-02", stored[0].Date)
}

func TestClearSnoozeUnknownHabitDoesNotWrite(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.tr.ClearSnooze(ctx, "water"))
	keys, err := f.store.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}
