// Package tracker holds the habit, completion, streak, points, snooze and
// reward state for a single user. All state lives in a storage.Provider
// under the namespaced keys in the constants package; a Tracker is only
// the explicit state holder in front of it.
//
// Reads never fail: a missing or unreadable document yields its default
// value and a warning is logged. Writes return their error, wrapped with
// storage.ErrUnavailable when the backend failed.
package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/julianstephens/diacare/internal/clock"
	"github.com/julianstephens/diacare/internal/logger"
	"github.com/julianstephens/diacare/internal/models"
	"github.com/julianstephens/diacare/internal/storage"
)

// HabitObserver is told about the enabled habit set after every
// successful registry mutation, so reminders can be rescheduled.
type HabitObserver interface {
	HabitsChanged(enabled []models.Habit)
}

// Option configures a Tracker
type Option func(*Tracker)

// WithClock overrides the system clock.
func WithClock(c clock.Clock) Option {
	return func(t *Tracker) { t.clock = c }
}

// WithLogger overrides the package logger.
func WithLogger(l *log.Logger) Option {
	return func(t *Tracker) { t.log = l }
}

// WithObserver registers a habit observer. May be given more than once.
func WithObserver(o HabitObserver) Option {
	return func(t *Tracker) { t.observers = append(t.observers, o) }
}

// WithDedupedCompletions makes a second completion of the same habit on
// the same date a no-op instead of a second ledger row.
func WithDedupedCompletions(enabled bool) Option {
	return func(t *Tracker) { t.dedupe = enabled }
}

type Tracker struct {
	store     storage.Provider
	clock     clock.Clock
	log       *log.Logger
	observers []HabitObserver
	dedupe    bool

	locks keyLocks
}

func New(store storage.Provider, opts ...Option) *Tracker {
	t := &Tracker{
		store: store,
		clock: clock.System(nil),
		log:   logger.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Clock returns the time source the tracker uses for "now" and "today".
func (t *Tracker) Clock() clock.Clock {
	return t.clock
}

// TodayDate returns the tracker's current calendar date.
func (t *Tracker) TodayDate() string {
	return clock.Today(t.clock)
}

// keyLocks serializes read-modify-write cycles per storage key.
// When more than one is held the order is completions, streaks, rewards.
type keyLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyLocks) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// readDoc decodes the document under key. A missing document yields def
// without error; any other failure is returned.
func readDoc[T any](ctx context.Context, t *Tracker, key string, def func() T) (T, error) {
	data, err := t.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return def(), nil
		}
		return def(), err
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return def(), fmt.Errorf("%w: corrupt document %s: %w", storage.ErrUnavailable, key, err)
	}
	return v, nil
}

// loadDoc is readDoc for read paths: failures degrade to def.
func loadDoc[T any](ctx context.Context, t *Tracker, key string, def func() T) T {
	v, err := readDoc(ctx, t, key, def)
	if err != nil {
		t.log.Warn("Falling back to default", "key", key, "error", err)
	}
	return v
}

func (t *Tracker) writeDoc(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := t.store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func (t *Tracker) now() string {
	return t.clock.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
