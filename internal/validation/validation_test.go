package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/diacare/internal/models"
)

func TestHabit(t *testing.T) {
	valid := models.Habit{ID: "walk", Name: "Walk", Time: "18:30", Enabled: true, Frequency: models.FrequencyDaily}

	tests := []struct {
		name      string
		mutate    func(h *models.Habit)
		wantField string
	}{
		{"valid", func(h *models.Habit) {}, ""},
		{"empty name", func(h *models.Habit) { h.Name = "   " }, "name"},
		{"bad time", func(h *models.Habit) { h.Time = "25:00" }, "time"},
		{"missing time", func(h *models.Habit) { h.Time = "" }, "time"},
		{"unknown frequency", func(h *models.Habit) { h.Frequency = "hourly" }, "frequency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := valid
			tt.mutate(&h)
			err := Habit(h)

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verr *Error
			if !errors.As(err, &verr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, verr.Field)
			}
		})
	}
}

func TestHabitPatch(t *testing.T) {
	name := "New"
	empty := ""
	badTime := "7pm"

	if err := HabitPatch(models.HabitPatch{}); err == nil {
		t.Error("expected error for empty patch")
	}
	if err := HabitPatch(models.HabitPatch{Name: &name}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := HabitPatch(models.HabitPatch{Name: &empty}); err == nil {
		t.Error("expected error for empty name")
	}
	if err := HabitPatch(models.HabitPatch{Time: &badTime}); err == nil {
		t.Error("expected error for bad time")
	}
}

func TestBloodSugar(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		unit    string
		meal    string
		wantErr bool
	}{
		{"valid mg/dL", 110, "mg/dL", "fasting", false},
		{"valid mmol/L", 5.4, "mmol/L", "bedtime", false},
		{"zero", 0, "mg/dL", "fasting", true},
		{"negative", -3, "mg/dL", "fasting", true},
		{"unknown unit", 100, "g/L", "fasting", true},
		{"unknown meal", 100, "mg/dL", "brunch", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := BloodSugar(tt.value, tt.unit, tt.meal)
			if (err != nil) != tt.wantErr {
				t.Errorf("BloodSugar() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDateAndSnooze(t *testing.T) {
	if err := Date("2024-02-30"); err == nil {
		t.Error("expected error for impossible date")
	}
	if err := Date("2024-02-29"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := SnoozeMinutes(0); err == nil {
		t.Error("expected error for zero minutes")
	}
	if err := SnoozeMinutes(15); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateHabits_Defaults(t *testing.T) {
	result := New().ValidateHabits(models.DefaultHabits())
	if result.HasConflicts() {
		t.Errorf("default habits should be clean, got: %s", result.FormatReport())
	}
	if result.FormatReport() != "No conflicts detected." {
		t.Errorf("unexpected report: %s", result.FormatReport())
	}
}

func TestValidateHabits_Conflicts(t *testing.T) {
	habits := []models.Habit{
		{ID: "1", Name: "Water", Time: "09:00", Enabled: true},
		{ID: "2", Name: "water ", Time: "09:00", Enabled: true},
		{ID: "2", Name: "Walk", Time: "9am", Enabled: false},
	}

	result := New().ValidateHabits(habits)

	found := make(map[ConflictType]bool)
	for _, c := range result.Conflicts {
		found[c.Type] = true
	}
	for _, want := range []ConflictType{ConflictDuplicateID, ConflictDuplicateName, ConflictInvalidTime, ConflictSameReminder} {
		if !found[want] {
			t.Errorf("expected conflict %s, got %+v", want, result.Conflicts)
		}
	}
	if !strings.HasPrefix(result.FormatReport(), "Conflicts detected:") {
		t.Errorf("unexpected report: %s", result.FormatReport())
	}
}

func TestValidateHabits_NoneEnabled(t *testing.T) {
	habits := []models.Habit{{ID: "1", Name: "Water", Time: "09:00", Enabled: false}}

	result := New().ValidateHabits(habits)
	if len(result.Conflicts) != 1 || result.Conflicts[0].Type != ConflictNoEnabledHabits {
		t.Errorf("expected a single no-enabled conflict, got %+v", result.Conflicts)
	}
}
