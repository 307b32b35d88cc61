package cli

import (
	"testing"

	"github.com/julianstephens/diacare/internal/models"
)

func TestProfileSetAndShow(t *testing.T) {
	env := newTestEnv(t)

	cmd := &ProfileSetCmd{
		Name:         "Sam",
		DiabetesType: "type2",
		Medication:   []string{"metformin", "insulin"},
		TargetMin:    80,
		TargetMax:    130,
	}
	if err := cmd.Run(env.ctx); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	p := env.ctx.Tracker.Profile(env.ctx.Ctx)
	if p.Name != "Sam" || p.DiabetesType != models.DiabetesType2 {
		t.Errorf("unexpected profile: %+v", p)
	}
	if p.TargetBloodSugar == nil || p.TargetBloodSugar.Max != 130 {
		t.Errorf("target range not saved: %+v", p.TargetBloodSugar)
	}
	env.reset()

	if err := (&ProfileShowCmd{}).Run(env.ctx); err != nil {
		t.Fatalf("show failed: %v", err)
	}
	out := env.reset()
	assertContains(t, out, "Name:          Sam")
	assertContains(t, out, "metformin, insulin")
	assertContains(t, out, "Target range:  80-130")
	assertContains(t, out, "Onboarded:     false")
}

func TestProfileSetRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		cmd  ProfileSetCmd
	}{
		{name: "bad diagnosis date", cmd: ProfileSetCmd{DiagnosisDate: "last year"}},
		{name: "inverted range", cmd: ProfileSetCmd{TargetMin: 150, TargetMax: 100}},
		{name: "half range", cmd: ProfileSetCmd{TargetMax: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			if err := tt.cmd.Run(env.ctx); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestOnboarding(t *testing.T) {
	env := newTestEnv(t)

	if err := (&OnboardingCmd{}).Run(env.ctx); err != nil {
		t.Fatalf("onboarding failed: %v", err)
	}
	assertContains(t, env.reset(), "Onboarding complete: false")

	if err := (&OnboardingCmd{Complete: true}).Run(env.ctx); err != nil {
		t.Fatalf("onboarding failed: %v", err)
	}
	if !env.ctx.Tracker.OnboardingComplete(env.ctx.Ctx) {
		t.Error("onboarding not marked complete")
	}
}

func TestNotifySettings(t *testing.T) {
	env := newTestEnv(t)

	cmd := &NotifySettingsCmd{Disable: true, Sound: "chime", Vibrate: "off"}
	if err := cmd.Run(env.ctx); err != nil {
		t.Fatalf("settings failed: %v", err)
	}

	s := env.ctx.Tracker.NotificationSettings(env.ctx.Ctx)
	if s.Enabled || s.SoundName != "chime" || s.Vibrate {
		t.Errorf("unexpected settings: %+v", s)
	}
	assertContains(t, env.reset(), "Enabled: false")

	if err := (&NotifySettingsCmd{Enable: true}).Run(env.ctx); err != nil {
		t.Fatalf("settings failed: %v", err)
	}
	if s := env.ctx.Tracker.NotificationSettings(env.ctx.Ctx); !s.Enabled || s.SoundName != "chime" {
		t.Errorf("unexpected settings: %+v", s)
	}
}

func TestRemindSchedule(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.ctx.Tracker.Complete(env.ctx.Ctx, "medicine", "2024-01-01"); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	if err := (&RemindScheduleCmd{}).Run(env.ctx); err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	out := env.reset()
	assertContains(t, out, "Take Medicine (done)")
	assertContains(t, out, "Next: Healthy Meal at Mon 12:00")
}

func TestResetAll(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.ctx.Tracker.AddPoints(env.ctx.Ctx, 30); err != nil {
		t.Fatalf("failed to seed points: %v", err)
	}

	if err := (&ResetCmd{}).Run(env.ctx); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	assertContains(t, env.reset(), "Reset cancelled.")
	if env.ctx.Tracker.Points(env.ctx.Ctx).TotalPoints != 30 {
		t.Fatal("points cleared without confirmation")
	}

	if err := (&ResetCmd{Yes: true}).Run(env.ctx); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if env.ctx.Tracker.Points(env.ctx.Ctx).TotalPoints != 0 {
		t.Error("points not cleared")
	}
	keys, _ := env.store.Keys(env.ctx.Ctx)
	if len(keys) != 0 {
		t.Errorf("keys left after reset: %v", keys)
	}
}
