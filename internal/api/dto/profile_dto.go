package dto

import (
	"time"

	"github.com/glptrack/wellness-service/internal/domain"
)

// ProfileResponse is the member's own profile view.
type ProfileResponse struct {
	ID      string  `json:"id"`
	Email   *string `json:"email"`
	Name    *string `json:"name"`
	Surname *string `json:"surname"`
	Image   *string `json:"image"`

	HeightCm       *float64 `json:"heightCm"`
	TargetWeightKg *float64 `json:"targetWeightKg"`
	StartWeightKg  *float64 `json:"startWeightKg"`
	BirthDate      *int64   `json:"birthDate"`
	Gender         *string  `json:"gender"`
	Goal           *string  `json:"goal"`
	Intensity      *string  `json:"intensity"`
	ActivityLevel  *string  `json:"activityLevel"`

	DefaultSubstanceID    *string  `json:"defaultSubstanceId"`
	EnabledSubstances     []string `json:"enabledSubstances"`
	CustomIntervalEnabled *bool    `json:"customIntervalEnabled"`
	InjectionIntervalDays *int     `json:"injectionIntervalDays"`
	HalfDayDosing         *bool    `json:"halfDayDosing"`
	InjectionDay          *string  `json:"injectionDay"`
	CurrentDoseMg         *float64 `json:"currentDoseMg"`
	WeeklyWeightLossKg    *float64 `json:"weeklyWeightLossKg"`

	ProteinGoalGrams    *float64 `json:"proteinGoalGrams"`
	WaterGoalMl         *float64 `json:"waterGoalMl"`
	CarbsPercent        *float64 `json:"carbsPercent"`
	FatsPercent         *float64 `json:"fatsPercent"`
	ProteinPercent      *float64 `json:"proteinPercent"`
	ManualCalorieTarget *float64 `json:"manualCalorieTarget"`

	ThemeMode    *string `json:"themeMode"`
	EnergyUnit   *string `json:"energyUnit"`
	WeightUnit   *string `json:"weightUnit"`
	FluidUnit    *string `json:"fluidUnit"`
	HeightUnit   *string `json:"heightUnit"`
	IsUSMode     *bool   `json:"isUsMode"`
	ShowPeptides *bool   `json:"showPeptides"`

	OnboardingComplete bool   `json:"onboardingComplete"`
	Role               string `json:"role"`
	IsModerator        bool   `json:"isModerator"`
	IsAdmin            bool   `json:"isAdmin"`

	IsPremium      bool   `json:"isPremium"`
	PremiumUntil   *int64 `json:"premiumUntil"`
	TrialActivated bool   `json:"trialActivated"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewProfileResponse maps the domain model; Role carries the effective
// role, not the stored one.
func NewProfileResponse(user *domain.User, effectiveRole domain.Role) ProfileResponse {
	return ProfileResponse{
		ID:      user.ID,
		Email:   user.Email,
		Name:    user.Name,
		Surname: user.Surname,
		Image:   user.Image,

		HeightCm:       user.HeightCm,
		TargetWeightKg: user.TargetWeightKg,
		StartWeightKg:  user.StartWeightKg,
		BirthDate:      user.BirthDate,
		Gender:         user.Gender,
		Goal:           user.Goal,
		Intensity:      user.Intensity,
		ActivityLevel:  user.ActivityLevel,

		DefaultSubstanceID:    user.DefaultSubstanceID,
		EnabledSubstances:     user.EnabledSubstances,
		CustomIntervalEnabled: user.CustomIntervalEnabled,
		InjectionIntervalDays: user.InjectionIntervalDays,
		HalfDayDosing:         user.HalfDayDosing,
		InjectionDay:          user.InjectionDay,
		CurrentDoseMg:         user.CurrentDoseMg,
		WeeklyWeightLossKg:    user.WeeklyWeightLossKg,

		ProteinGoalGrams:    user.ProteinGoalGrams,
		WaterGoalMl:         user.WaterGoalMl,
		CarbsPercent:        user.CarbsPercent,
		FatsPercent:         user.FatsPercent,
		ProteinPercent:      user.ProteinPercent,
		ManualCalorieTarget: user.ManualCalorieTarget,

		ThemeMode:    user.ThemeMode,
		EnergyUnit:   user.EnergyUnit,
		WeightUnit:   user.WeightUnit,
		FluidUnit:    user.FluidUnit,
		HeightUnit:   user.HeightUnit,
		IsUSMode:     user.IsUSMode,
		ShowPeptides: user.ShowPeptides,

		OnboardingComplete: user.OnboardingComplete,
		Role:               string(effectiveRole),

		IsPremium:      user.IsPremium,
		PremiumUntil:   user.PremiumUntil,
		TrialActivated: user.TrialActivated,

		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// UpdateProfileRequest is a partial profile update; absent fields are left
// untouched.
type UpdateProfileRequest struct {
	Name    *string `json:"name"`
	Surname *string `json:"surname"`
	Image   *string `json:"image"`

	HeightCm       *float64 `json:"heightCm"`
	TargetWeightKg *float64 `json:"targetWeightKg"`
	StartWeightKg  *float64 `json:"startWeightKg"`
	BirthDate      *int64   `json:"birthDate"`
	Gender         *string  `json:"gender"`
	Goal           *string  `json:"goal"`
	Intensity      *string  `json:"intensity"`
	ActivityLevel  *string  `json:"activityLevel"`

	DefaultSubstanceID    *string  `json:"defaultSubstanceId"`
	EnabledSubstances     []string `json:"enabledSubstances"`
	CustomIntervalEnabled *bool    `json:"customIntervalEnabled"`
	InjectionIntervalDays *int     `json:"injectionIntervalDays"`
	HalfDayDosing         *bool    `json:"halfDayDosing"`
	InjectionDay          *string  `json:"injectionDay"`
	CurrentDoseMg         *float64 `json:"currentDoseMg"`
	WeeklyWeightLossKg    *float64 `json:"weeklyWeightLossKg"`

	ProteinGoalGrams    *float64 `json:"proteinGoalGrams"`
	WaterGoalMl         *float64 `json:"waterGoalMl"`
	CarbsPercent        *float64 `json:"carbsPercent"`
	FatsPercent         *float64 `json:"fatsPercent"`
	ProteinPercent      *float64 `json:"proteinPercent"`
	ManualCalorieTarget *float64 `json:"manualCalorieTarget"`

	ThemeMode    *string `json:"themeMode"`
	EnergyUnit   *string `json:"energyUnit"`
	WeightUnit   *string `json:"weightUnit"`
	FluidUnit    *string `json:"fluidUnit"`
	HeightUnit   *string `json:"heightUnit"`
	IsUSMode     *bool   `json:"isUsMode"`
	ShowPeptides *bool   `json:"showPeptides"`
}
