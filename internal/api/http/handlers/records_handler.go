package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/glptrack/wellness-service/internal/api/dto"
	"github.com/glptrack/wellness-service/internal/auth"
	"github.com/glptrack/wellness-service/internal/domain"
	"github.com/glptrack/wellness-service/internal/service"
	apperrors "github.com/glptrack/wellness-service/pkg/util"
)

// RecordsHandler manages per-member tracking record endpoints.
type RecordsHandler struct {
	records *service.RecordService
}

// NewRecordsHandler constructs handler.
func NewRecordsHandler(records *service.RecordService) *RecordsHandler {
	return &RecordsHandler{records: records}
}

// ListWeights GET /records/weights.
func (h *RecordsHandler) ListWeights(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	rng, err := parseDateRange(c)
	if err != nil {
		return err
	}
	records, err := h.records.ListWeights(c.Context(), user.ID, rng)
	if err != nil {
		return err
	}
	items := make([]dto.WeightResponse, 0, len(records))
	for _, record := range records {
		items = append(items, dto.NewWeightResponse(record))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateWeight POST /records/weights.
func (h *RecordsHandler) CreateWeight(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	var req dto.CreateWeightRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	record, err := h.records.CreateWeight(c.Context(), user.ID, req.Date, req.Kg)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewWeightResponse(*record)})
}

// DeleteWeight DELETE /records/weights/:id.
func (h *RecordsHandler) DeleteWeight(c *fiber.Ctx) error {
	return h.deleteOwned(c, h.records.DeleteWeight)
}

// ListInjections GET /records/injections.
func (h *RecordsHandler) ListInjections(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	rng, err := parseDateRange(c)
	if err != nil {
		return err
	}
	records, err := h.records.ListInjections(c.Context(), user.ID, rng)
	if err != nil {
		return err
	}
	items := make([]dto.InjectionResponse, 0, len(records))
	for _, record := range records {
		items = append(items, dto.NewInjectionResponse(record))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateInjection POST /records/injections.
func (h *RecordsHandler) CreateInjection(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	var req dto.CreateInjectionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	record, err := h.records.CreateInjection(c.Context(), user.ID, domain.InjectionRecord{
		Date:        req.Date,
		SubstanceID: req.SubstanceID,
		Mg:          req.Mg,
		Site:        req.Site,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewInjectionResponse(*record)})
}

// DeleteInjection DELETE /records/injections/:id.
func (h *RecordsHandler) DeleteInjection(c *fiber.Ctx) error {
	return h.deleteOwned(c, h.records.DeleteInjection)
}

// ListMeasures GET /records/measures.
func (h *RecordsHandler) ListMeasures(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	rng, err := parseDateRange(c)
	if err != nil {
		return err
	}
	records, err := h.records.ListMeasures(c.Context(), user.ID, rng)
	if err != nil {
		return err
	}
	items := make([]dto.MeasureResponse, 0, len(records))
	for _, record := range records {
		items = append(items, dto.NewMeasureResponse(record))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateMeasure POST /records/measures.
func (h *RecordsHandler) CreateMeasure(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	var req dto.CreateMeasureRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	record, err := h.records.CreateMeasure(c.Context(), user.ID, domain.MeasureRecord{
		Date:  req.Date,
		Neck:  req.Neck,
		Chest: req.Chest,
		Waist: req.Waist,
		Hips:  req.Hips,
		Thigh: req.Thigh,
		Calf:  req.Calf,
		Arm:   req.Arm,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewMeasureResponse(*record)})
}

// DeleteMeasure DELETE /records/measures/:id.
func (h *RecordsHandler) DeleteMeasure(c *fiber.Ctx) error {
	return h.deleteOwned(c, h.records.DeleteMeasure)
}

// ListMoods GET /records/moods.
func (h *RecordsHandler) ListMoods(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	rng, err := parseDateRange(c)
	if err != nil {
		return err
	}
	records, err := h.records.ListMoods(c.Context(), user.ID, rng)
	if err != nil {
		return err
	}
	items := make([]dto.MoodResponse, 0, len(records))
	for _, record := range records {
		items = append(items, dto.NewMoodResponse(record))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateMood POST /records/moods.
func (h *RecordsHandler) CreateMood(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	var req dto.CreateMoodRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	record, err := h.records.CreateMood(c.Context(), user.ID, domain.MoodRecord{
		Date:        req.Date,
		Rating:      req.Rating,
		SideEffects: req.SideEffects,
		Note:        req.Note,
		LevelAtTime: req.LevelAtTime,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewMoodResponse(*record)})
}

// DeleteMood DELETE /records/moods/:id.
func (h *RecordsHandler) DeleteMood(c *fiber.Ctx) error {
	return h.deleteOwned(c, h.records.DeleteMood)
}

// GetWater GET /records/water?date=.
func (h *RecordsHandler) GetWater(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	date, err := parseDateParam(c)
	if err != nil {
		return err
	}
	record, err := h.records.GetWater(c.Context(), user.ID, date)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewWaterResponse(record)})
}

// SetWater PUT /records/water.
func (h *RecordsHandler) SetWater(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	var req dto.SetWaterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	record, err := h.records.SetWater(c.Context(), user.ID, req.Date, req.Glasses)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewWaterResponse(record)})
}

// GetNutrition GET /records/nutrition?date=.
func (h *RecordsHandler) GetNutrition(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	date, err := parseDateParam(c)
	if err != nil {
		return err
	}
	record, err := h.records.GetNutrition(c.Context(), user.ID, date)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewNutritionResponse(record)})
}

// ListNutrition GET /records/nutrition/history.
func (h *RecordsHandler) ListNutrition(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	rng, err := parseDateRange(c)
	if err != nil {
		return err
	}
	records, err := h.records.ListNutrition(c.Context(), user.ID, rng)
	if err != nil {
		return err
	}
	items := make([]dto.NutritionResponse, 0, len(records))
	for i := range records {
		items = append(items, dto.NewNutritionResponse(&records[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// SetNutrition PUT /records/nutrition.
func (h *RecordsHandler) SetNutrition(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	var req dto.SetNutritionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	record, err := h.records.SetNutrition(c.Context(), user.ID, domain.NutritionRecord{
		Date:       req.Date,
		TotalGrams: req.TotalGrams,
		TotalKcal:  req.TotalKcal,
		TotalCarbs: req.TotalCarbs,
		TotalSugar: req.TotalSugar,
		TotalFiber: req.TotalFiber,
		Items:      req.Items,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewNutritionResponse(record)})
}

// ListStockItems GET /records/stock.
func (h *RecordsHandler) ListStockItems(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	items, err := h.records.ListStockItems(c.Context(), user.ID)
	if err != nil {
		return err
	}
	out := make([]dto.StockItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.NewStockItemResponse(item))
	}
	return c.JSON(fiber.Map{"data": out})
}

// CreateStockItem POST /records/stock.
func (h *RecordsHandler) CreateStockItem(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	var req dto.StockItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	item, err := h.records.CreateStockItem(c.Context(), user.ID, stockInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewStockItemResponse(*item)})
}

// UpdateStockItem PUT /records/stock/:id.
func (h *RecordsHandler) UpdateStockItem(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	var req dto.StockItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.records.UpdateStockItem(c.Context(), user.ID, c.Params("id"), stockInput(req)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"updated": true}})
}

// DeleteStockItem DELETE /records/stock/:id.
func (h *RecordsHandler) DeleteStockItem(c *fiber.Ctx) error {
	return h.deleteOwned(c, h.records.DeleteStockItem)
}

func stockInput(req dto.StockItemRequest) service.StockItemInput {
	return service.StockItemInput{
		Name:        req.Name,
		SubstanceID: req.SubstanceID,
		IsVial:      req.IsVial,
		TotalMg:     req.TotalMg,
		CurrentMg:   req.CurrentMg,
		VialMg:      req.VialMg,
		VialMl:      req.VialMl,
		PenType:     req.PenType,
		PenColor:    req.PenColor,
	}
}

func (h *RecordsHandler) deleteOwned(c *fiber.Ctx, del func(ctx context.Context, userID, id string) error) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	if err := del(c.Context(), user.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

func parseDateRange(c *fiber.Ctx) (service.DateRange, error) {
	var rng service.DateRange
	if fromStr := c.Query("from"); fromStr != "" {
		from, err := strconv.ParseInt(fromStr, 10, 64)
		if err != nil {
			return rng, apperrors.NewValidationError("from must be epoch milliseconds", nil)
		}
		rng.From = from
	}
	if toStr := c.Query("to"); toStr != "" {
		to, err := strconv.ParseInt(toStr, 10, 64)
		if err != nil {
			return rng, apperrors.NewValidationError("to must be epoch milliseconds", nil)
		}
		rng.To = to
	}
	return rng, nil
}

func parseDateParam(c *fiber.Ctx) (int64, error) {
	dateStr := c.Query("date")
	if dateStr == "" {
		return 0, apperrors.NewValidationError("date is required", nil)
	}
	date, err := strconv.ParseInt(dateStr, 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("date must be epoch milliseconds", nil)
	}
	return date, nil
}
