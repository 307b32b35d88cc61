package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/diacare/internal/models"
	"github.com/julianstephens/diacare/internal/validation"
)

type ProfileShowCmd struct{}

func (c *ProfileShowCmd) Run(ctx *Context) error {
	p := ctx.Tracker.Profile(ctx.Ctx)
	ctx.printf("Name:          %s\n", p.Name)
	ctx.printf("Notifications: %t\n", p.NotificationsEnabled)
	if p.DiabetesType != "" {
		ctx.printf("Diabetes type: %s\n", p.DiabetesType)
	}
	if p.DiagnosisDate != "" {
		ctx.printf("Diagnosed:     %s\n", p.DiagnosisDate)
	}
	if len(p.Medications) > 0 {
		ctx.printf("Medications:   %s\n", strings.Join(p.Medications, ", "))
	}
	if p.DoctorName != "" {
		ctx.printf("Doctor:        %s\n", p.DoctorName)
	}
	if p.EmergencyContact != "" {
		ctx.printf("Emergency:     %s\n", p.EmergencyContact)
	}
	if p.TargetBloodSugar != nil {
		ctx.printf("Target range:  %g-%g\n", p.TargetBloodSugar.Min, p.TargetBloodSugar.Max)
	}
	ctx.printf("Onboarded:     %t\n", ctx.Tracker.OnboardingComplete(ctx.Ctx))
	return nil
}

type ProfileSetCmd struct {
	Name          string   `help:"Display name."`
	DiabetesType  string   `help:"type1, type2, prediabetes or gestational." enum:",type1,type2,prediabetes,gestational" default:""`
	DiagnosisDate string   `help:"Diagnosis date (YYYY-MM-DD)."`
	Medication    []string `help:"Medication, may be repeated. Replaces the list."`
	Doctor        string   `help:"Doctor's name."`
	Emergency     string   `help:"Emergency contact."`
	TargetMin     float64  `help:"Lower bound of the target blood sugar range."`
	TargetMax     float64  `help:"Upper bound of the target blood sugar range."`
}

func (c *ProfileSetCmd) Run(ctx *Context) error {
	p := ctx.Tracker.Profile(ctx.Ctx)

	if c.Name != "" {
		p.Name = strings.TrimSpace(c.Name)
	}
	if c.DiabetesType != "" {
		p.DiabetesType = models.DiabetesType(c.DiabetesType)
	}
	if c.DiagnosisDate != "" {
		if err := validation.Date(c.DiagnosisDate); err != nil {
			return err
		}
		p.DiagnosisDate = c.DiagnosisDate
	}
	if len(c.Medication) > 0 {
		p.Medications = c.Medication
	}
	if c.Doctor != "" {
		p.DoctorName = c.Doctor
	}
	if c.Emergency != "" {
		p.EmergencyContact = c.Emergency
	}
	if c.TargetMin != 0 || c.TargetMax != 0 {
		if c.TargetMin <= 0 || c.TargetMax <= c.TargetMin {
			return &validation.Error{Field: "target range", Message: "need 0 < --target-min < --target-max"}
		}
		p.TargetBloodSugar = &models.BloodSugarRange{Min: c.TargetMin, Max: c.TargetMax}
	}

	if err := ctx.Tracker.SetProfile(ctx.Ctx, p); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	ctx.println("Profile saved")
	return nil
}

type OnboardingCmd struct {
	Complete bool `help:"Mark onboarding as complete."`
}

func (c *OnboardingCmd) Run(ctx *Context) error {
	if c.Complete {
		if err := ctx.Tracker.SetOnboardingComplete(ctx.Ctx); err != nil {
			return fmt.Errorf("failed to save onboarding state: %w", err)
		}
		ctx.println("Onboarding complete")
		return nil
	}
	ctx.printf("Onboarding complete: %t\n", ctx.Tracker.OnboardingComplete(ctx.Ctx))
	return nil
}
