package models

// Frequency is how often a habit is expected to be done
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// Habit represents a recurring self-care task with a daily reminder time
type Habit struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Time      string    `json:"time"` // HH:MM format
	Enabled   bool      `json:"enabled"`
	Frequency Frequency `json:"frequency"`
}

// HabitPatch is a partial update for a Habit. Nil fields are left unchanged.
type HabitPatch struct {
	Name      *string    `json:"name,omitempty"`
	Icon      *string    `json:"icon,omitempty"`
	Time      *string    `json:"time,omitempty"`
	Enabled   *bool      `json:"enabled,omitempty"`
	Frequency *Frequency `json:"frequency,omitempty"`
}

// Apply returns a copy of h with every non-nil field of p applied.
func (p HabitPatch) Apply(h Habit) Habit {
	if p.Name != nil {
		h.Name = *p.Name
	}
	if p.Icon != nil {
		h.Icon = *p.Icon
	}
	if p.Time != nil {
		h.Time = *p.Time
	}
	if p.Enabled != nil {
		h.Enabled = *p.Enabled
	}
	if p.Frequency != nil {
		h.Frequency = *p.Frequency
	}
	return h
}

// IsEmpty reports whether the patch changes nothing.
func (p HabitPatch) IsEmpty() bool {
	return p.Name == nil && p.Icon == nil && p.Time == nil && p.Enabled == nil && p.Frequency == nil
}

// DefaultHabits returns the canonical first-run habit set.
func DefaultHabits() []Habit {
	return []Habit{
		{ID: "medicine", Name: "Take Medicine", Icon: "heart", Time: "08:00", Enabled: true, Frequency: FrequencyDaily},
		{ID: "water", Name: "Drink Water", Icon: "droplet", Time: "09:00", Enabled: true, Frequency: FrequencyDaily},
		{ID: "meal", Name: "Healthy Meal", Icon: "coffee", Time: "12:00", Enabled: true, Frequency: FrequencyDaily},
		{ID: "sugar", Name: "Check Sugar Level", Icon: "activity", Time: "14:00", Enabled: true, Frequency: FrequencyDaily},
		{ID: "exercise", Name: "Light Exercise", Icon: "zap", Time: "17:00", Enabled: true, Frequency: FrequencyDaily},
	}
}

// CompletedTask records that a habit was done on a calendar day.
// Entries are only ever inserted or removed, never modified.
type CompletedTask struct {
	HabitID     string `json:"habitId"`
	CompletedAt string `json:"completedAt"` // RFC 3339 timestamp
	Date        string `json:"date"`        // YYYY-MM-DD format
}
