package tui

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/diacare/internal/validation"
)

var habitIcons = []string{"heart", "droplet", "coffee", "activity", "zap", "sun", "moon", "clipboard"}

func NewHabitForm(fm *HabitFormModel) *huh.Form {
	options := make([]huh.Option[string], len(habitIcons))
	for i, icon := range habitIcons {
		options[i] = huh.NewOption(icon, icon)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit").
				Value(&fm.Name).
				Validate(func(s string) error {
					return validation.HabitName(strings.TrimSpace(s))
				}),
			huh.NewInput().
				Title("Reminder time (HH:MM)").
				Value(&fm.Time).
				Validate(validation.ReminderTime),
			huh.NewSelect[string]().
				Title("Icon").
				Options(options...).
				Value(&fm.Icon),
		),
	).WithShowHelp(true)
}
