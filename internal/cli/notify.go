package cli

import (
	"fmt"

	"github.com/julianstephens/diacare/internal/notifier"
	"github.com/julianstephens/diacare/internal/reminder"
)

type NotifySettingsCmd struct {
	Enable  bool   `help:"Turn reminders on." xor:"toggle"`
	Disable bool   `help:"Turn reminders off." xor:"toggle"`
	Sound   string `help:"Notification sound name."`
	Vibrate string `help:"Vibrate with reminders: on or off." enum:",on,off" default:""`
}

func (c *NotifySettingsCmd) Run(ctx *Context) error {
	s := ctx.Tracker.NotificationSettings(ctx.Ctx)
	changed := false

	if c.Enable || c.Disable {
		s.Enabled = c.Enable
		changed = true
	}
	if c.Sound != "" {
		s.SoundName = c.Sound
		changed = true
	}
	if c.Vibrate != "" {
		s.Vibrate = c.Vibrate == "on"
		changed = true
	}

	if changed {
		if err := ctx.Tracker.SetNotificationSettings(ctx.Ctx, s); err != nil {
			return fmt.Errorf("failed to save notification settings: %w", err)
		}
	}

	ctx.printf("Enabled: %t\n", s.Enabled)
	ctx.printf("Sound:   %s\n", s.SoundName)
	ctx.printf("Vibrate: %t\n", s.Vibrate)
	return nil
}

type NotifyTestCmd struct{}

func (c *NotifyTestCmd) Run(ctx *Context) error {
	s := ctx.Tracker.NotificationSettings(ctx.Ctx)
	msg := reminder.TestMessage
	msg.Sound = s.SoundName
	msg.Vibrate = s.Vibrate

	if err := notifier.New().Send(ctx.Ctx, msg); err != nil {
		return fmt.Errorf("failed to send test notification: %w", err)
	}
	ctx.println("Test notification sent")
	return nil
}
