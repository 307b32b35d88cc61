package tracker

import (
	"context"

	"github.com/julianstephens/diacare/internal/clock"
	"github.com/julianstephens/diacare/internal/constants"
	"github.com/julianstephens/diacare/internal/models"
)

func (t *Tracker) defaultPoints() models.PointsData {
	return models.PointsData{LastUpdatedDate: clock.Today(t.clock)}
}

// rollover zeroes the daily counters when p was last touched on an
// earlier day and reports whether it did.
func (t *Tracker) rollover(p *models.PointsData) bool {
	if !clock.IsNewDay(p.LastUpdatedDate, t.clock) {
		return false
	}
	p.EarnedToday = 0
	p.LostToday = 0
	p.LastUpdatedDate = clock.Today(t.clock)
	return true
}

// Points returns the points record, applying and persisting the daily
// reset first. A failed reset write is logged, not returned.
func (t *Tracker) Points(ctx context.Context) models.PointsData {
	unlock := t.locks.lock(constants.KeyPoints)
	defer unlock()

	points := loadDoc(ctx, t, constants.KeyPoints, t.defaultPoints)
	if t.rollover(&points) {
		if err := t.writeDoc(ctx, constants.KeyPoints, points); err != nil {
			t.log.Warn("Failed to persist daily points reset", "error", err)
		}
	}
	return points
}

// mutatePoints runs fn on the rolled-over points record and saves it when
// fn reports a change or the day rolled over.
func (t *Tracker) mutatePoints(ctx context.Context, fn func(p *models.PointsData) bool) (models.PointsData, error) {
	unlock := t.locks.lock(constants.KeyPoints)
	defer unlock()

	points, err := readDoc(ctx, t, constants.KeyPoints, t.defaultPoints)
	if err != nil {
		return points, err
	}

	rolled := t.rollover(&points)
	changed := fn(&points)
	if !rolled && !changed {
		return points, nil
	}
	return points, t.writeDoc(ctx, constants.KeyPoints, points)
}

func (t *Tracker) AddPoints(ctx context.Context, amount int) (models.PointsData, error) {
	return t.mutatePoints(ctx, func(p *models.PointsData) bool {
		p.TotalPoints += amount
		p.EarnedToday += amount
		p.LastUpdatedDate = clock.Today(t.clock)
		return true
	})
}

// DeductPoints removes amount from the total, never going below zero.
// The full amount is still booked as lost and as pending recovery.
func (t *Tracker) DeductPoints(ctx context.Context, amount int) (models.PointsData, error) {
	return t.mutatePoints(ctx, func(p *models.PointsData) bool {
		p.TotalPoints = max(0, p.TotalPoints-amount)
		p.LostToday += amount
		p.PendingRecovery += amount
		p.LastUpdatedDate = clock.Today(t.clock)
		return true
	})
}

// RecoverPoints moves the whole pending recovery balance back into the
// total and today's earnings. It is a no-op when nothing is pending.
func (t *Tracker) RecoverPoints(ctx context.Context) (models.PointsData, error) {
	return t.mutatePoints(ctx, func(p *models.PointsData) bool {
		if p.PendingRecovery <= 0 {
			return false
		}
		p.TotalPoints += p.PendingRecovery
		p.EarnedToday += p.PendingRecovery
		p.PendingRecovery = 0
		return true
	})
}
