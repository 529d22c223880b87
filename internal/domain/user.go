package domain

import "time"

// User is the domain model for application members. Profile fields are
// optional; absence means the member has not filled them in yet.
type User struct {
	ID      string
	Email   *string
	Name    *string
	Surname *string
	Image   *string

	// Body and goals
	HeightCm       *float64
	TargetWeightKg *float64
	StartWeightKg  *float64
	BirthDate      *int64
	Gender         *string
	Goal           *string
	Intensity      *string
	ActivityLevel  *string

	// Dosing preferences
	DefaultSubstanceID    *string
	EnabledSubstances     []string
	CustomIntervalEnabled *bool
	InjectionIntervalDays *int
	HalfDayDosing         *bool
	InjectionDay          *string
	CurrentDoseMg         *float64
	WeeklyWeightLossKg    *float64

	// Nutrition targets
	ProteinGoalGrams    *float64
	WaterGoalMl         *float64
	CarbsPercent        *float64
	FatsPercent         *float64
	ProteinPercent      *float64
	ManualCalorieTarget *float64

	// Units and presentation
	ThemeMode    *string
	EnergyUnit   *string
	WeightUnit   *string
	FluidUnit    *string
	HeightUnit   *string
	IsUSMode     *bool
	ShowPeptides *bool

	OnboardingComplete bool

	// Authorization; empty means the least-privileged role.
	Role string

	// Entitlement. Effective premium status is always derived from these
	// fields plus the current instant, never stored.
	IsPremium        bool
	PremiumUntil     *int64
	PremiumPermanent bool
	TrialActivated   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName returns the member-facing author name, falling back to the
// email local part.
func (u *User) DisplayName() string {
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	if u.Email != nil && *u.Email != "" {
		email := *u.Email
		for i := 0; i < len(email); i++ {
			if email[i] == '@' {
				return email[:i]
			}
		}
		return email
	}
	return "Anonym"
}
