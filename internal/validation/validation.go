package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/diacare/internal/constants"
	"github.com/julianstephens/diacare/internal/models"
	"github.com/julianstephens/diacare/internal/utils"
)

// Error is returned when user input is rejected before it reaches the tracker
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func newError(field, format string, args ...any) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

// HabitName rejects empty or whitespace-only names.
func HabitName(name string) error {
	if strings.TrimSpace(name) == "" {
		return newError("name", "habit name cannot be empty")
	}
	return nil
}

// ReminderTime requires a 24h HH:MM time.
func ReminderTime(value string) error {
	if !utils.ValidateTimeFormat(value) {
		return newError("time", "%q is not a valid HH:MM time", value)
	}
	return nil
}

func Date(value string) error {
	if !utils.ValidateDateFormat(value) {
		return newError("date", "%q is not a valid YYYY-MM-DD date", value)
	}
	return nil
}

func Frequency(value models.Frequency) error {
	switch value {
	case models.FrequencyDaily, models.FrequencyWeekly:
		return nil
	}
	return newError("frequency", "%q must be one of daily, weekly", value)
}

// Habit checks every user-editable field of h.
func Habit(h models.Habit) error {
	if err := HabitName(h.Name); err != nil {
		return err
	}
	if err := ReminderTime(h.Time); err != nil {
		return err
	}
	return Frequency(h.Frequency)
}

// HabitPatch checks only the fields the patch sets.
func HabitPatch(p models.HabitPatch) error {
	if p.IsEmpty() {
		return newError("update", "nothing to change")
	}
	if p.Name != nil {
		if err := HabitName(*p.Name); err != nil {
			return err
		}
	}
	if p.Time != nil {
		if err := ReminderTime(*p.Time); err != nil {
			return err
		}
	}
	if p.Frequency != nil {
		return Frequency(*p.Frequency)
	}
	return nil
}

// BloodSugar checks a reading before it is logged.
func BloodSugar(value float64, unit, mealContext string) error {
	if value <= 0 {
		return newError("value", "blood sugar must be greater than zero")
	}
	switch unit {
	case constants.UnitMgDL, constants.UnitMmolL:
	default:
		return newError("unit", "%q must be %s or %s", unit, constants.UnitMgDL, constants.UnitMmolL)
	}
	switch mealContext {
	case constants.MealFasting, constants.MealBeforeMeal, constants.MealAfterMeal, constants.MealBedtime:
	default:
		return newError("meal context", "%q must be one of fasting, before_meal, after_meal, bedtime", mealContext)
	}
	return nil
}

// SnoozeMinutes requires a positive snooze length of at most a day.
func SnoozeMinutes(minutes int) error {
	if minutes <= 0 || minutes > 24*60 {
		return newError("minutes", "snooze must be between 1 and 1440 minutes")
	}
	return nil
}

// ConflictType represents the type of problem found in a habit list
type ConflictType string

const (
	ConflictDuplicateID     ConflictType = "duplicate_habit_id"
	ConflictDuplicateName   ConflictType = "duplicate_habit_name"
	ConflictInvalidTime     ConflictType = "invalid_time"
	ConflictSameReminder    ConflictType = "same_reminder_time"
	ConflictNoEnabledHabits ConflictType = "no_enabled_habits"
)

// Conflict is one problem found in a habit list
type Conflict struct {
	Type        ConflictType
	Description string
	HabitIDs    []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// Validator checks a whole habit list for problems the tracker tolerates
// but the user probably did not intend.
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

func (v *Validator) ValidateHabits(habits []models.Habit) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	byID := make(map[string][]string)
	byName := make(map[string][]string)
	byTime := make(map[string][]string)
	enabled := 0

	for _, h := range habits {
		byID[h.ID] = append(byID[h.ID], h.Name)
		if name := strings.ToLower(strings.TrimSpace(h.Name)); name != "" {
			byName[name] = append(byName[name], h.ID)
		}
		if !utils.ValidateTimeFormat(h.Time) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTime,
				Description: fmt.Sprintf("Habit %q has invalid reminder time: %q", h.Name, h.Time),
				HabitIDs:    []string{h.ID},
			})
		}
		if h.Enabled {
			enabled++
			byTime[h.Time] = append(byTime[h.Time], h.ID)
		}
	}

	for _, id := range sortedKeys(byID) {
		if names := byID[id]; len(names) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateID,
				Description: fmt.Sprintf("Duplicate habit id %q (habits: %s)", id, strings.Join(names, ", ")),
				HabitIDs:    []string{id},
			})
		}
	}

	for _, name := range sortedKeys(byName) {
		if ids := byName[name]; len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateName,
				Description: fmt.Sprintf("Duplicate habit name %q (IDs: %v)", name, ids),
				HabitIDs:    ids,
			})
		}
	}

	for _, at := range sortedKeys(byTime) {
		if ids := byTime[at]; len(ids) > 1 && utils.ValidateTimeFormat(at) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictSameReminder,
				Description: fmt.Sprintf("%d enabled habits remind at %s", len(ids), at),
				HabitIDs:    ids,
			})
		}
	}

	if len(habits) > 0 && enabled == 0 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictNoEnabledHabits,
			Description: "No habits are enabled, so no day can count toward a streak",
		})
	}

	return result
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
