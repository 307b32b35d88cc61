package tracker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/diacare/internal/models"
)

func TestHabitsDefaults(t *testing.T) {
	f := newFixture(t)

	habits := f.tr.Habits(context.Background())
	require.Len(t, habits, 5)

	ids := make([]string, 0, len(habits))
	for _, h := range habits {
		ids = append(ids, h.ID)
		assert.True(t, h.Enabled)
		assert.Equal(t, models.FrequencyDaily, h.Frequency)
	}
	assert.Equal(t, []string{"medicine", "water", "meal", "sugar", "exercise"}, ids)
}

func TestAddHabit(t *testing.T) {
	ctx := context.Background()
	obs := &recordingObserver{}
	f := newFixture(t, WithObserver(obs))

	walk := models.Habit{ID: "walk", Name: "Evening Walk", Icon: "sun", Time: "19:30", Enabled: true, Frequency: models.FrequencyDaily}
	require.NoError(t, f.tr.AddHabit(ctx, walk))

	habits := f.tr.Habits(ctx)
	require.Len(t, habits, 6, "adding to the default set keeps the defaults")
	assert.Equal(t, walk, habits[5])

	got, ok := f.tr.Habit(ctx, "walk")
	assert.True(t, ok)
	assert.Equal(t, "Evening Walk", got.Name)

	assert.Len(t, obs.last(), 6)
}

func TestAddHabitAllowsDuplicateIDs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.tr.AddHabit(ctx, models.Habit{ID: "water", Name: "More Water", Enabled: true}))
	assert.Len(t, f.tr.Habits(ctx), 6)
}

func TestUpdateHabit(t *testing.T) {
	ctx := context.Background()
	obs := &recordingObserver{}
	f := newFixture(t, WithObserver(obs))

	disabled := false
	newTime := "07:15"
	found, err := f.tr.UpdateHabit(ctx, "medicine", models.HabitPatch{Enabled: &disabled, Time: &newTime})
	require.NoError(t, err)
	assert.True(t, found)

	h, ok := f.tr.Habit(ctx, "medicine")
	require.True(t, ok)
	assert.False(t, h.Enabled)
	assert.Equal(t, "07:15", h.Time)
	assert.Equal(t, "Take Medicine", h.Name, "unpatched fields are kept")

	assert.Len(t, f.tr.EnabledHabits(ctx), 4)
	assert.Len(t, obs.last(), 4)
}

func TestUpdateHabitNotFound(t *testing.T) {
	ctx := context.Background()
	obs := &recordingObserver{}
	f := newFixture(t, WithObserver(obs))

	name := "Ghost"
	found, err := f.tr.UpdateHabit(ctx, "ghost", models.HabitPatch{Name: &name})
	require.NoError(t, err)
	assert.False(t, found)

	keys, err := f.store.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys, "a miss must not write")
	assert.Empty(t, obs.calls)
}

func TestRemoveHabit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	found, err := f.tr.RemoveHabit(ctx, "sugar")
	require.NoError(t, err)
	assert.True(t, found)

	_, ok := f.tr.Habit(ctx, "sugar")
	assert.False(t, ok)
	assert.Len(t, f.tr.Habits(ctx), 4)

	found, err = f.tr.RemoveHabit(ctx, "sugar")
	require.NoError(t, err)
	assert.False(t, found, "second remove is a silent miss")
}

func TestSetHabitsEmptyIsNotDefaults(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.tr.SetHabits(ctx, nil))
	assert.Empty(t, f.tr.Habits(ctx), "an explicitly empty list is not replaced by defaults")
}
