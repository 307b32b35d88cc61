package tracker

import (
	"context"

	"github.com/julianstephens/diacare/internal/constants"
	"github.com/julianstephens/diacare/internal/models"
)

type rewardRule struct {
	id          string
	kind        models.RewardType
	name        string
	requirement string
	met         func(models.StreakData) bool
}

var rewardRules = []rewardRule{
	{
		id:          constants.RewardStreak7,
		kind:        models.RewardFlower1,
		name:        "Week Warrior",
		requirement: "7-day streak",
		met:         func(s models.StreakData) bool { return s.CurrentStreak >= constants.StreakWeekThreshold },
	},
	{
		id:          constants.RewardStreak30,
		kind:        models.RewardFlower2,
		name:        "Monthly Champion",
		requirement: "30-day streak",
		met:         func(s models.StreakData) bool { return s.CurrentStreak >= constants.StreakMonthThreshold },
	},
	{
		id:          constants.RewardTotal7,
		kind:        models.RewardGem,
		name:        "Care Gem",
		requirement: "7 perfect days",
		met:         func(s models.StreakData) bool { return s.TotalCompletedDays >= constants.PerfectDaysThreshold },
	},
}

// RewardStatus is one catalog entry with its unlock state
type RewardStatus struct {
	ID          string
	Type        models.RewardType
	Name        string
	Requirement string
	Unlocked    bool
	UnlockedAt  string
}

func noRewards() []models.Reward {
	return []models.Reward{}
}

// Rewards returns every reward granted so far.
func (t *Tracker) Rewards(ctx context.Context) []models.Reward {
	return loadDoc(ctx, t, constants.KeyRewards, noRewards)
}

// RewardCatalog lists every reward the tracker can grant, in rule order,
// marking the ones already unlocked.
func (t *Tracker) RewardCatalog(ctx context.Context) []RewardStatus {
	granted := make(map[string]models.Reward)
	for _, r := range t.Rewards(ctx) {
		granted[r.ID] = r
	}

	catalog := make([]RewardStatus, 0, len(rewardRules))
	for _, rule := range rewardRules {
		status := RewardStatus{
			ID:          rule.id,
			Type:        rule.kind,
			Name:        rule.name,
			Requirement: rule.requirement,
		}
		if r, ok := granted[rule.id]; ok {
			status.Unlocked = true
			status.UnlockedAt = r.UnlockedAt
		}
		catalog = append(catalog, status)
	}
	return catalog
}

// unlockRewards grants every rule streak satisfies that has not been
// granted before and returns the new grants. Rewards are never revoked.
func (t *Tracker) unlockRewards(ctx context.Context, streak models.StreakData) ([]models.Reward, error) {
	unlock := t.locks.lock(constants.KeyRewards)
	defer unlock()

	rewards, err := readDoc(ctx, t, constants.KeyRewards, noRewards)
	if err != nil {
		return nil, err
	}

	have := make(map[string]bool, len(rewards))
	for _, r := range rewards {
		have[r.ID] = true
	}

	var granted []models.Reward
	for _, rule := range rewardRules {
		if have[rule.id] || !rule.met(streak) {
			continue
		}
		granted = append(granted, models.Reward{
			ID:          rule.id,
			Type:        rule.kind,
			Name:        rule.name,
			UnlockedAt:  t.now(),
			Requirement: rule.requirement,
		})
	}
	if len(granted) == 0 {
		return nil, nil
	}

	if err := t.writeDoc(ctx, constants.KeyRewards, append(rewards, granted...)); err != nil {
		return nil, err
	}
	for _, r := range granted {
		t.log.Info("Reward unlocked", "id", r.ID, "name", r.Name)
	}
	return granted, nil
}
