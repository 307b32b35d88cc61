package constants

const (
	// Points policy used by the reminder flow. Not user-configurable.
	PointsForCompletion = 10
	PointsForSkip       = 5

	DefaultSnoozeMinutes = 5

	// Reward thresholds
	StreakWeekThreshold  = 7
	StreakMonthThreshold = 30
	PerfectDaysThreshold = 7

	// Reward ids
	RewardStreak7  = "streak-7"
	RewardStreak30 = "streak-30"
	RewardTotal7   = "total-7"

	// Companion mood thresholds (fraction of today's habits completed)
	MoodHappyThreshold       = 0.8
	MoodEncouragingThreshold = 0.2
)
