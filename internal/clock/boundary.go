package clock

import (
	"fmt"
	"time"

	"github.com/julianstephens/diacare/internal/constants"
)

// AddDays shifts a YYYY-MM-DD date by n calendar days.
func AddDays(date string, n int) (string, error) {
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t.AddDate(0, 0, n).Format(constants.DateFormat), nil
}

// PreviousDay returns the date before date.
func PreviousDay(date string) (string, error) {
	return AddDays(date, -1)
}

// IsNewDay reports whether a record last touched on last belongs to an
// earlier calendar day than the clock's today. This is the one place the
// "has the day rolled over" question is answered.
func IsNewDay(last string, c Clock) bool {
	return last != Today(c)
}

// IsToday reports whether date is the clock's current calendar day.
func IsToday(date string, c Clock) bool {
	return date == Today(c)
}
