package tracker

import (
	"context"
	"errors"

	"github.com/julianstephens/diacare/internal/constants"
	"github.com/julianstephens/diacare/internal/models"
	"github.com/julianstephens/diacare/internal/storage"
)

func (t *Tracker) defaultProfile() models.UserProfile {
	return models.UserProfile{
		Name:                 constants.DefaultProfileName,
		NotificationsEnabled: true,
		CreatedAt:            t.now(),
	}
}

func (t *Tracker) Profile(ctx context.Context) models.UserProfile {
	return loadDoc(ctx, t, constants.KeyUserProfile, t.defaultProfile)
}

func (t *Tracker) SetProfile(ctx context.Context, profile models.UserProfile) error {
	return t.writeDoc(ctx, constants.KeyUserProfile, profile)
}

func (t *Tracker) OnboardingComplete(ctx context.Context) bool {
	data, err := t.store.Get(ctx, constants.KeyOnboardingComplete)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			t.log.Warn("Falling back to default", "key", constants.KeyOnboardingComplete, "error", err)
		}
		return false
	}
	return string(data) == constants.OnboardingDoneValue
}

func (t *Tracker) SetOnboardingComplete(ctx context.Context) error {
	return t.store.Set(ctx, constants.KeyOnboardingComplete, []byte(constants.OnboardingDoneValue))
}

func defaultNotificationSettings() models.NotificationSettings {
	return models.NotificationSettings{
		Enabled:   true,
		SoundName: constants.DefaultSoundName,
		Vibrate:   true,
	}
}

func (t *Tracker) NotificationSettings(ctx context.Context) models.NotificationSettings {
	return loadDoc(ctx, t, constants.KeyNotificationSettings, defaultNotificationSettings)
}

func (t *Tracker) SetNotificationSettings(ctx context.Context, settings models.NotificationSettings) error {
	return t.writeDoc(ctx, constants.KeyNotificationSettings, settings)
}

// ResetAll deletes every document the application stores.
func (t *Tracker) ResetAll(ctx context.Context) error {
	if err := t.store.Delete(ctx, constants.AllKeys...); err != nil {
		return err
	}
	t.log.Info("All data reset")
	enabled := enabledOnly(models.DefaultHabits())
	for _, o := range t.observers {
		o.HabitsChanged(enabled)
	}
	return nil
}
