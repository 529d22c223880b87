package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/glptrack/wellness-service/internal/api/dto"
	"github.com/glptrack/wellness-service/internal/auth"
	"github.com/glptrack/wellness-service/internal/domain"
	"github.com/glptrack/wellness-service/internal/repository"
	"github.com/glptrack/wellness-service/internal/service"
	apperrors "github.com/glptrack/wellness-service/pkg/util"
)

// ProfileHandler manages the member's own account endpoints.
type ProfileHandler struct {
	profiles *service.ProfileService
	presence *service.PresenceService
	authz    *service.AuthzService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(profiles *service.ProfileService, presence *service.PresenceService, authz *service.AuthzService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, presence: presence, authz: authz}
}

// Me GET /me.
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	profile, err := h.profiles.Get(c.Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.profileResponse(profile)})
}

// Update PATCH /me.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	updated, err := h.profiles.Update(c.Context(), user.ID, profilePatch(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.profileResponse(updated)})
}

// CompleteOnboarding POST /me/onboarding.
func (h *ProfileHandler) CompleteOnboarding(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	updated, err := h.profiles.CompleteOnboarding(c.Context(), user.ID, profilePatch(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.profileResponse(updated)})
}

// Delete DELETE /me.
func (h *ProfileHandler) Delete(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	if err := h.profiles.Delete(c.Context(), user); err != nil {
		return err
	}
	_ = h.presence.Forget(c.Context(), user.ID)
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// Heartbeat POST /me/heartbeat.
func (h *ProfileHandler) Heartbeat(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	if err := h.presence.Heartbeat(c.Context(), user.ID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CommunityStats GET /community/stats.
func (h *ProfileHandler) CommunityStats(c *fiber.Ctx) error {
	stats, err := h.presence.Stats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}

// profileResponse carries the effective role plus the privilege flags the
// client gates its UI on.
func (h *ProfileHandler) profileResponse(user *domain.User) dto.ProfileResponse {
	resp := dto.NewProfileResponse(user, h.authz.CurrentRole(user))
	resp.IsModerator = h.authz.IsModerator(user)
	resp.IsAdmin = h.authz.IsAdmin(user)
	return resp
}

func profilePatch(req dto.UpdateProfileRequest) repository.ProfilePatch {
	return repository.ProfilePatch{
		Name:                  req.Name,
		Surname:               req.Surname,
		Image:                 req.Image,
		HeightCm:              req.HeightCm,
		TargetWeightKg:        req.TargetWeightKg,
		StartWeightKg:         req.StartWeightKg,
		BirthDate:             req.BirthDate,
		Gender:                req.Gender,
		Goal:                  req.Goal,
		Intensity:             req.Intensity,
		ActivityLevel:         req.ActivityLevel,
		DefaultSubstanceID:    req.DefaultSubstanceID,
		EnabledSubstances:     req.EnabledSubstances,
		CustomIntervalEnabled: req.CustomIntervalEnabled,
		InjectionIntervalDays: req.InjectionIntervalDays,
		HalfDayDosing:         req.HalfDayDosing,
		InjectionDay:          req.InjectionDay,
		CurrentDoseMg:         req.CurrentDoseMg,
		WeeklyWeightLossKg:    req.WeeklyWeightLossKg,
		ProteinGoalGrams:      req.ProteinGoalGrams,
		WaterGoalMl:           req.WaterGoalMl,
		CarbsPercent:          req.CarbsPercent,
		FatsPercent:           req.FatsPercent,
		ProteinPercent:        req.ProteinPercent,
		ManualCalorieTarget:   req.ManualCalorieTarget,
		ThemeMode:             req.ThemeMode,
		EnergyUnit:            req.EnergyUnit,
		WeightUnit:            req.WeightUnit,
		FluidUnit:             req.FluidUnit,
		HeightUnit:            req.HeightUnit,
		IsUSMode:              req.IsUSMode,
		ShowPeptides:          req.ShowPeptides,
	}
}
