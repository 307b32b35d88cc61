// Package metrics exposes the tracker's state as Prometheus gauges,
// for a node_exporter textfile collector or any other scraper.
package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/julianstephens/diacare/internal/models"
)

const namespace = "diacare"

// Source is the read side of the tracker.
type Source interface {
	TodayDate() string
	Points(ctx context.Context) models.PointsData
	Streaks(ctx context.Context) models.StreakData
	Rewards(ctx context.Context) []models.Reward
	EnabledHabits(ctx context.Context) []models.Habit
	CompletionsForDate(ctx context.Context, date string) []models.CompletedTask
}

type Exporter struct {
	source   Source
	registry *prometheus.Registry

	points          *prometheus.GaugeVec
	streak          *prometheus.GaugeVec
	habitsEnabled   prometheus.Gauge
	completedToday  prometheus.Gauge
	rewardsUnlocked prometheus.Gauge
}

// New builds an exporter with its own registry so repeated use in one
// process never trips duplicate registration.
func New(source Source) *Exporter {
	e := &Exporter{
		source:   source,
		registry: prometheus.NewRegistry(),
		points: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "points",
				Help:      "Points balance and today's counters",
			},
			[]string{"kind"},
		),
		streak: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "streak_days",
				Help:      "Perfect-day streak counters",
			},
			[]string{"kind"},
		),
		habitsEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "habits_enabled",
			Help:      "Number of enabled habits",
		}),
		completedToday: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "habits_completed_today",
			Help:      "Distinct enabled habits completed today",
		}),
		rewardsUnlocked: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rewards_unlocked",
			Help:      "Number of unlocked rewards",
		}),
	}
	e.registry.MustRegister(e.points, e.streak, e.habitsEnabled, e.completedToday, e.rewardsUnlocked)
	return e
}

// Registry returns the registry holding the exporter's gauges.
func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

// Refresh reads the current state into the gauges.
func (e *Exporter) Refresh(ctx context.Context) {
	p := e.source.Points(ctx)
	e.points.WithLabelValues("total").Set(float64(p.TotalPoints))
	e.points.WithLabelValues("earned_today").Set(float64(p.EarnedToday))
	e.points.WithLabelValues("lost_today").Set(float64(p.LostToday))
	e.points.WithLabelValues("pending_recovery").Set(float64(p.PendingRecovery))

	s := e.source.Streaks(ctx)
	e.streak.WithLabelValues("current").Set(float64(s.CurrentStreak))
	e.streak.WithLabelValues("longest").Set(float64(s.LongestStreak))
	e.streak.WithLabelValues("total_perfect").Set(float64(s.TotalCompletedDays))

	enabled := e.source.EnabledHabits(ctx)
	e.habitsEnabled.Set(float64(len(enabled)))

	wanted := make(map[string]bool, len(enabled))
	for _, h := range enabled {
		wanted[h.ID] = true
	}
	done := make(map[string]bool)
	for _, c := range e.source.CompletionsForDate(ctx, e.source.TodayDate()) {
		if wanted[c.HabitID] {
			done[c.HabitID] = true
		}
	}
	e.completedToday.Set(float64(len(done)))

	e.rewardsUnlocked.Set(float64(len(e.source.Rewards(ctx))))
}

// WriteTextfile refreshes the gauges and writes them to path in the
// Prometheus text format. The file is replaced atomically.
func (e *Exporter) WriteTextfile(ctx context.Context, path string) error {
	e.Refresh(ctx)
	if err := prometheus.WriteToTextfile(path, e.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
