package models

// StreakData is the singleton streak record
type StreakData struct {
	CurrentStreak      int     `json:"currentStreak"`
	LongestStreak      int     `json:"longestStreak"`
	LastCompletedDate  *string `json:"lastCompletedDate"` // YYYY-MM-DD, nil before the first perfect day
	TotalCompletedDays int     `json:"totalCompletedDays"`
}

// LastCompleted returns the last perfect day or "" if there is none.
func (s StreakData) LastCompleted() string {
	if s.LastCompletedDate == nil {
		return ""
	}
	return *s.LastCompletedDate
}

// PointsData is the singleton points record.
//
// TotalPoints never goes below zero. EarnedToday and LostToday are reset
// once per calendar day, the first time the record is touched on a new day.
type PointsData struct {
	TotalPoints     int    `json:"totalPoints"`
	EarnedToday     int    `json:"earnedToday"`
	LostToday       int    `json:"lostToday"`
	PendingRecovery int    `json:"pendingRecovery"`
	LastUpdatedDate string `json:"lastUpdatedDate"`
}

// SnoozedTask defers a habit reminder until SnoozeUntil
type SnoozedTask struct {
	HabitID     string `json:"habitId"`
	SnoozeUntil int64  `json:"snoozeUntil"` // unix milliseconds
	Date        string `json:"date"`
}

// SnoozeStatus is the result of a snooze lookup
type SnoozeStatus struct {
	Snoozed bool `json:"snoozed"`
	Expired bool `json:"expired"`
}

// RewardType identifies the artwork a reward unlocks
type RewardType string

const (
	RewardFlower1 RewardType = "flower-1"
	RewardFlower2 RewardType = "flower-2"
	RewardGem     RewardType = "gem"
)

// Reward is a one-time grant. Rewards are never revoked.
type Reward struct {
	ID          string     `json:"id"`
	Type        RewardType `json:"type"`
	Name        string     `json:"name"`
	UnlockedAt  string     `json:"unlockedAt"`
	Requirement string     `json:"requirement"`
}
