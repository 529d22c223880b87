package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/glptrack/wellness-service/internal/domain"
)

// ProfilePatch is a partial profile update; nil fields are left untouched.
type ProfilePatch struct {
	Name                  *string
	Surname               *string
	Image                 *string
	HeightCm              *float64
	TargetWeightKg        *float64
	StartWeightKg         *float64
	BirthDate             *int64
	Gender                *string
	Goal                  *string
	Intensity             *string
	ActivityLevel         *string
	DefaultSubstanceID    *string
	EnabledSubstances     []string
	CustomIntervalEnabled *bool
	InjectionIntervalDays *int
	HalfDayDosing         *bool
	InjectionDay          *string
	CurrentDoseMg         *float64
	WeeklyWeightLossKg    *float64
	ProteinGoalGrams      *float64
	WaterGoalMl           *float64
	CarbsPercent          *float64
	FatsPercent           *float64
	ProteinPercent        *float64
	ManualCalorieTarget   *float64
	ThemeMode             *string
	EnergyUnit            *string
	WeightUnit            *string
	FluidUnit             *string
	HeightUnit            *string
	IsUSMode              *bool
	ShowPeptides          *bool
}

// UserRepository defines persistence access for members.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, patch ProfilePatch) error
	CompleteOnboarding(ctx context.Context, id string, patch ProfilePatch) error
	SetRole(ctx context.Context, id string, role domain.Role) error
	// ActivateTrial flips trial_activated exactly once. The conditional
	// update is the idempotency guard: a repeat call reports
	// applied=false, a missing member reports pgx.ErrNoRows.
	ActivateTrial(ctx context.Context, id string, premiumUntil int64) (applied bool, err error)
	SetPermanentPremium(ctx context.Context, id string, permanent bool) error
	CountMembers(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `
        id, email, name, surname, image,
        height_cm, target_weight_kg, start_weight_kg, birth_date, gender, goal, intensity, activity_level,
        default_substance_id, enabled_substances, custom_interval_enabled, injection_interval_days,
        half_day_dosing, injection_day, current_dose_mg, weekly_weight_loss_kg,
        protein_goal_grams, water_goal_ml, carbs_percent, fats_percent, protein_percent, manual_calorie_target,
        theme_mode, energy_unit, weight_unit, fluid_unit, height_unit, is_us_mode, show_peptides,
        onboarding_complete, COALESCE(role, ''),
        is_premium, premium_until, premium_permanent, trial_activated,
        created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID, &user.Email, &user.Name, &user.Surname, &user.Image,
		&user.HeightCm, &user.TargetWeightKg, &user.StartWeightKg, &user.BirthDate, &user.Gender,
		&user.Goal, &user.Intensity, &user.ActivityLevel,
		&user.DefaultSubstanceID, &user.EnabledSubstances, &user.CustomIntervalEnabled, &user.InjectionIntervalDays,
		&user.HalfDayDosing, &user.InjectionDay, &user.CurrentDoseMg, &user.WeeklyWeightLossKg,
		&user.ProteinGoalGrams, &user.WaterGoalMl, &user.CarbsPercent, &user.FatsPercent,
		&user.ProteinPercent, &user.ManualCalorieTarget,
		&user.ThemeMode, &user.EnergyUnit, &user.WeightUnit, &user.FluidUnit, &user.HeightUnit,
		&user.IsUSMode, &user.ShowPeptides,
		&user.OnboardingComplete, &user.Role,
		&user.IsPremium, &user.PremiumUntil, &user.PremiumPermanent, &user.TrialActivated,
		&user.CreatedAt, &user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

// patchAssignments builds SET clauses for the non-nil patch fields.
func patchAssignments(patch ProfilePatch) ([]string, []any) {
	var sets []string
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Surname != nil {
		add("surname", *patch.Surname)
	}
	if patch.Image != nil {
		add("image", *patch.Image)
	}
	if patch.HeightCm != nil {
		add("height_cm", *patch.HeightCm)
	}
	if patch.TargetWeightKg != nil {
		add("target_weight_kg", *patch.TargetWeightKg)
	}
	if patch.StartWeightKg != nil {
		add("start_weight_kg", *patch.StartWeightKg)
	}
	if patch.BirthDate != nil {
		add("birth_date", *patch.BirthDate)
	}
	if patch.Gender != nil {
		add("gender", *patch.Gender)
	}
	if patch.Goal != nil {
		add("goal", *patch.Goal)
	}
	if patch.Intensity != nil {
		add("intensity", *patch.Intensity)
	}
	if patch.ActivityLevel != nil {
		add("activity_level", *patch.ActivityLevel)
	}
	if patch.DefaultSubstanceID != nil {
		add("default_substance_id", *patch.DefaultSubstanceID)
	}
	if patch.EnabledSubstances != nil {
		add("enabled_substances", patch.EnabledSubstances)
	}
	if patch.CustomIntervalEnabled != nil {
		add("custom_interval_enabled", *patch.CustomIntervalEnabled)
	}
	if patch.InjectionIntervalDays != nil {
		add("injection_interval_days", *patch.InjectionIntervalDays)
	}
	if patch.HalfDayDosing != nil {
		add("half_day_dosing", *patch.HalfDayDosing)
	}
	if patch.InjectionDay != nil {
		add("injection_day", *patch.InjectionDay)
	}
	if patch.CurrentDoseMg != nil {
		add("current_dose_mg", *patch.CurrentDoseMg)
	}
	if patch.WeeklyWeightLossKg != nil {
		add("weekly_weight_loss_kg", *patch.WeeklyWeightLossKg)
	}
	if patch.ProteinGoalGrams != nil {
		add("protein_goal_grams", *patch.ProteinGoalGrams)
	}
	if patch.WaterGoalMl != nil {
		add("water_goal_ml", *patch.WaterGoalMl)
	}
	if patch.CarbsPercent != nil {
		add("carbs_percent", *patch.CarbsPercent)
	}
	if patch.FatsPercent != nil {
		add("fats_percent", *patch.FatsPercent)
	}
	if patch.ProteinPercent != nil {
		add("protein_percent", *patch.ProteinPercent)
	}
	if patch.ManualCalorieTarget != nil {
		add("manual_calorie_target", *patch.ManualCalorieTarget)
	}
	if patch.ThemeMode != nil {
		add("theme_mode", *patch.ThemeMode)
	}
	if patch.EnergyUnit != nil {
		add("energy_unit", *patch.EnergyUnit)
	}
	if patch.WeightUnit != nil {
		add("weight_unit", *patch.WeightUnit)
	}
	if patch.FluidUnit != nil {
		add("fluid_unit", *patch.FluidUnit)
	}
	if patch.HeightUnit != nil {
		add("height_unit", *patch.HeightUnit)
	}
	if patch.IsUSMode != nil {
		add("is_us_mode", *patch.IsUSMode)
	}
	if patch.ShowPeptides != nil {
		add("show_peptides", *patch.ShowPeptides)
	}

	return sets, args
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, patch ProfilePatch) error {
	sets, args := patchAssignments(patch)
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at=NOW()")
	args = append(args, id)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id=$%d", strings.Join(sets, ", "), len(args))

	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) CompleteOnboarding(ctx context.Context, id string, patch ProfilePatch) error {
	sets, args := patchAssignments(patch)
	sets = append(sets, "onboarding_complete=TRUE", "updated_at=NOW()")
	args = append(args, id)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id=$%d", strings.Join(sets, ", "), len(args))

	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) SetRole(ctx context.Context, id string, role domain.Role) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE users SET role=$1, updated_at=NOW() WHERE id=$2`, string(role), id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) ActivateTrial(ctx context.Context, id string, premiumUntil int64) (bool, error) {
	const query = `
        UPDATE users
        SET trial_activated=TRUE, premium_until=$2, is_premium=TRUE, updated_at=NOW()
        WHERE id=$1 AND trial_activated=FALSE`

	cmd, err := r.pool.Exec(ctx, query, id, premiumUntil)
	if err != nil {
		return false, err
	}
	if cmd.RowsAffected() > 0 {
		return true, nil
	}

	// No row matched: either the trial was already used or the member is
	// gone. Only the former is a decline.
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id=$1)`, id).Scan(&exists); err != nil {
		return false, err
	}
	if !exists {
		return false, pgx.ErrNoRows
	}
	return false, nil
}

func (r *userRepository) SetPermanentPremium(ctx context.Context, id string, permanent bool) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE users SET premium_permanent=$1, is_premium=(is_premium OR $1), updated_at=NOW() WHERE id=$2`,
		permanent, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) CountMembers(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Delete removes the member row; owned records cascade at the schema level.
func (r *userRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
