package reminder

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/julianstephens/diacare/internal/clock"
	"github.com/julianstephens/diacare/internal/constants"
	"github.com/julianstephens/diacare/internal/logger"
	"github.com/julianstephens/diacare/internal/models"
	"github.com/julianstephens/diacare/internal/notifier"
	"github.com/julianstephens/diacare/internal/tracker"
)

// Sender delivers a reminder message.
type Sender interface {
	Send(ctx context.Context, msg notifier.Message) error
}

// State is the part of the tracker the watcher reads.
type State interface {
	Clock() clock.Clock
	IsCompleted(ctx context.Context, habitID, date string) bool
	Snoozed(ctx context.Context) []models.SnoozedTask
	NotificationSettings(ctx context.Context) models.NotificationSettings
}

// Fired records one delivered reminder
type Fired struct {
	Reminder Reminder
	Prompt   tracker.PromptKind
}

type Watcher struct {
	planner  *Planner
	state    State
	sender   Sender
	limiter  *rate.Limiter
	interval time.Duration

	day         string
	fired       map[string]bool
	snoozeFired map[string]int64
}

type WatcherOption func(*Watcher)

// WithInterval sets the poll interval.
func WithInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.interval = d }
}

// WithLimiter replaces the delivery rate limiter.
func WithLimiter(l *rate.Limiter) WatcherOption {
	return func(w *Watcher) { w.limiter = l }
}

func NewWatcher(planner *Planner, state State, sender Sender, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		planner:     planner,
		state:       state,
		sender:      sender,
		interval:    constants.ReminderPollInterval,
		limiter:     rate.NewLimiter(rate.Every(time.Minute/constants.ReminderBurst), constants.ReminderBurst),
		fired:       make(map[string]bool),
		snoozeFired: make(map[string]int64),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run polls until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.Tick(ctx)

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Tick delivers every reminder that is due now. A habit is reminded once
// per day, and once more each time a snooze of it runs out. Completed
// habits and habits still inside a snooze are skipped.
func (w *Watcher) Tick(ctx context.Context) []Fired {
	settings := w.state.NotificationSettings(ctx)
	if !settings.Enabled {
		return nil
	}

	now := w.state.Clock().Now()
	today := now.Format(constants.DateFormat)
	if today != w.day {
		w.day = today
		clear(w.fired)
		clear(w.snoozeFired)
	}

	snoozes := make(map[string]int64)
	for _, s := range w.state.Snoozed(ctx) {
		snoozes[s.HabitID] = s.SnoozeUntil
	}

	var fired []Fired
	for _, r := range w.planner.Due(now) {
		if w.state.IsCompleted(ctx, r.HabitID, today) {
			continue
		}

		until, snoozed := snoozes[r.HabitID]
		switch {
		case snoozed && now.UnixMilli() < until:
			continue
		case snoozed:
			if w.snoozeFired[r.HabitID] == until {
				continue
			}
			if w.deliver(ctx, r, tracker.PromptCompletion, settings) {
				w.snoozeFired[r.HabitID] = until
				w.fired[r.HabitID] = true
				fired = append(fired, Fired{Reminder: r, Prompt: tracker.PromptCompletion})
			}
		case !w.fired[r.HabitID]:
			if w.deliver(ctx, r, tracker.PromptInitial, settings) {
				w.fired[r.HabitID] = true
				fired = append(fired, Fired{Reminder: r, Prompt: tracker.PromptInitial})
			}
		}
	}
	return fired
}

func (w *Watcher) deliver(ctx context.Context, r Reminder, prompt tracker.PromptKind, settings models.NotificationSettings) bool {
	if !w.limiter.Allow() {
		logger.Debug("Reminder throttled", "habit", r.HabitID)
		return false
	}

	msg := MessageFor(r, prompt)
	msg.Sound = settings.SoundName
	msg.Vibrate = settings.Vibrate

	if err := w.sender.Send(ctx, msg); err != nil {
		logger.Warn("Failed to deliver reminder", "habit", r.HabitID, "error", err)
		return false
	}
	logger.Info("Reminder delivered", "habit", r.HabitID, "prompt", prompt)
	return true
}

// MessageFor builds the text for a reminder prompt.
func MessageFor(r Reminder, prompt tracker.PromptKind) notifier.Message {
	if prompt == tracker.PromptCompletion {
		return notifier.Message{
			Title: "Have you done this?",
			Text:  r.Name + ": your health journey matters!",
		}
	}
	return notifier.Message{
		Title: "Time for your health task!",
		Text:  r.Name,
	}
}

// TestMessage is sent by "diacare notify test".
var TestMessage = notifier.Message{
	Title: "Diabetes Care Reminder",
	Text:  "This is a test notification. Your reminders are working!",
}
