package tracker

import (
	"context"
	"sort"
	"time"

	"github.com/julianstephens/diacare/internal/clock"
	"github.com/julianstephens/diacare/internal/constants"
	"github.com/julianstephens/diacare/internal/models"
)

func noBloodSugarLogs() []models.BloodSugarLog {
	return []models.BloodSugarLog{}
}

func (t *Tracker) BloodSugarLogs(ctx context.Context) []models.BloodSugarLog {
	return loadDoc(ctx, t, constants.KeyBloodSugarLogs, noBloodSugarLogs)
}

// AddBloodSugarLog appends entry. Values are validated by the caller.
func (t *Tracker) AddBloodSugarLog(ctx context.Context, entry models.BloodSugarLog) error {
	unlock := t.locks.lock(constants.KeyBloodSugarLogs)
	defer unlock()

	logs, err := readDoc(ctx, t, constants.KeyBloodSugarLogs, noBloodSugarLogs)
	if err != nil {
		return err
	}
	return t.writeDoc(ctx, constants.KeyBloodSugarLogs, append(logs, entry))
}

func (t *Tracker) BloodSugarLogsForDate(ctx context.Context, date string) []models.BloodSugarLog {
	out := []models.BloodSugarLog{}
	for _, l := range t.BloodSugarLogs(ctx) {
		if l.Date == date {
			out = append(out, l)
		}
	}
	return out
}

// RecentBloodSugarLogs returns readings dated within the last days days,
// newest first.
func (t *Tracker) RecentBloodSugarLogs(ctx context.Context, days int) []models.BloodSugarLog {
	cutoff := t.clock.Now().AddDate(0, 0, -days).Format(constants.DateFormat)

	out := []models.BloodSugarLog{}
	for _, l := range t.BloodSugarLogs(ctx) {
		if l.Date >= cutoff {
			out = append(out, l)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return loggedAt(out[i]).After(loggedAt(out[j]))
	})
	return out
}

func loggedAt(l models.BloodSugarLog) time.Time {
	ts, err := time.Parse(time.RFC3339, l.LoggedAt)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// NewBloodSugarLog stamps a reading with the current time and date.
func (t *Tracker) NewBloodSugarLog(id string, value float64, unit, mealContext, notes string) models.BloodSugarLog {
	return models.BloodSugarLog{
		ID:          id,
		Value:       value,
		Unit:        unit,
		MealContext: mealContext,
		Notes:       notes,
		LoggedAt:    t.now(),
		Date:        clock.Today(t.clock),
	}
}
