package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/glptrack/wellness-service/internal/domain"
	"github.com/glptrack/wellness-service/internal/repository"
	"github.com/glptrack/wellness-service/pkg/util"
)

// DateRange bounds record listings; zero values mean unbounded.
type DateRange struct {
	From int64
	To   int64
}

// StockItemInput describes stock create/update payloads.
type StockItemInput struct {
	Name        string
	SubstanceID string
	IsVial      bool
	TotalMg     float64
	CurrentMg   float64
	VialMg      *float64
	VialMl      *float64
	PenType     *string
	PenColor    *string
}

// RecordService manages a member's tracking records.
type RecordService struct {
	records repository.RecordRepository
}

// NewRecordService constructs the service.
func NewRecordService(records repository.RecordRepository) *RecordService {
	return &RecordService{records: records}
}

// ListWeights returns weight entries in the range, newest first.
func (s *RecordService) ListWeights(ctx context.Context, userID string, rng DateRange) ([]domain.WeightRecord, error) {
	out, err := s.records.ListWeights(ctx, userID, rng.From, rng.To)
	if err != nil {
		return nil, util.MapError(err)
	}
	return out, nil
}

// CreateWeight adds a weight entry.
func (s *RecordService) CreateWeight(ctx context.Context, userID string, date int64, kg float64) (*domain.WeightRecord, error) {
	if err := validateRecordDate(date); err != nil {
		return nil, err
	}
	if kg <= 0 || kg > 500 {
		return nil, util.NewValidationError("kg out of range", map[string]any{"kg": kg})
	}
	record := &domain.WeightRecord{UserID: userID, Date: date, Kg: kg}
	if err := s.records.CreateWeight(ctx, record); err != nil {
		return nil, util.MapError(err)
	}
	return record, nil
}

// DeleteWeight removes a weight entry. Owners only, enforced in SQL.
func (s *RecordService) DeleteWeight(ctx context.Context, userID, id string) error {
	return util.MapError(s.records.DeleteWeight(ctx, userID, id))
}

// ListInjections returns dose entries in the range.
func (s *RecordService) ListInjections(ctx context.Context, userID string, rng DateRange) ([]domain.InjectionRecord, error) {
	out, err := s.records.ListInjections(ctx, userID, rng.From, rng.To)
	if err != nil {
		return nil, util.MapError(err)
	}
	return out, nil
}

// CreateInjection adds a dose entry.
func (s *RecordService) CreateInjection(ctx context.Context, userID string, record domain.InjectionRecord) (*domain.InjectionRecord, error) {
	if err := validateRecordDate(record.Date); err != nil {
		return nil, err
	}
	if strings.TrimSpace(record.SubstanceID) == "" {
		return nil, util.NewValidationError("substanceId is required", nil)
	}
	if record.Mg <= 0 {
		return nil, util.NewValidationError("mg must be positive", nil)
	}
	record.UserID = userID
	if err := s.records.CreateInjection(ctx, &record); err != nil {
		return nil, util.MapError(err)
	}
	return &record, nil
}

// DeleteInjection removes a dose entry.
func (s *RecordService) DeleteInjection(ctx context.Context, userID, id string) error {
	return util.MapError(s.records.DeleteInjection(ctx, userID, id))
}

// ListMeasures returns body measurement entries in the range.
func (s *RecordService) ListMeasures(ctx context.Context, userID string, rng DateRange) ([]domain.MeasureRecord, error) {
	out, err := s.records.ListMeasures(ctx, userID, rng.From, rng.To)
	if err != nil {
		return nil, util.MapError(err)
	}
	return out, nil
}

// CreateMeasure adds a measurement entry; at least one field must be set.
func (s *RecordService) CreateMeasure(ctx context.Context, userID string, record domain.MeasureRecord) (*domain.MeasureRecord, error) {
	if err := validateRecordDate(record.Date); err != nil {
		return nil, err
	}
	if record.Neck == nil && record.Chest == nil && record.Waist == nil &&
		record.Hips == nil && record.Thigh == nil && record.Calf == nil && record.Arm == nil {
		return nil, util.NewValidationError("at least one measurement is required", nil)
	}
	record.UserID = userID
	if err := s.records.CreateMeasure(ctx, &record); err != nil {
		return nil, util.MapError(err)
	}
	return &record, nil
}

// DeleteMeasure removes a measurement entry.
func (s *RecordService) DeleteMeasure(ctx context.Context, userID, id string) error {
	return util.MapError(s.records.DeleteMeasure(ctx, userID, id))
}

// ListMoods returns mood entries in the range.
func (s *RecordService) ListMoods(ctx context.Context, userID string, rng DateRange) ([]domain.MoodRecord, error) {
	out, err := s.records.ListMoods(ctx, userID, rng.From, rng.To)
	if err != nil {
		return nil, util.MapError(err)
	}
	return out, nil
}

// CreateMood adds a mood journal entry.
func (s *RecordService) CreateMood(ctx context.Context, userID string, record domain.MoodRecord) (*domain.MoodRecord, error) {
	if err := validateRecordDate(record.Date); err != nil {
		return nil, err
	}
	if record.Rating < 1 || record.Rating > 5 {
		return nil, util.NewValidationError("rating must be between 1 and 5", map[string]any{"rating": record.Rating})
	}
	record.UserID = userID
	if err := s.records.CreateMood(ctx, &record); err != nil {
		return nil, util.MapError(err)
	}
	return &record, nil
}

// DeleteMood removes a mood entry.
func (s *RecordService) DeleteMood(ctx context.Context, userID, id string) error {
	return util.MapError(s.records.DeleteMood(ctx, userID, id))
}

// GetWater returns the day's water record, or an empty record when the
// member has not logged yet.
func (s *RecordService) GetWater(ctx context.Context, userID string, date int64) (*domain.WaterRecord, error) {
	record, err := s.records.GetWater(ctx, userID, date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.WaterRecord{UserID: userID, Date: date}, nil
		}
		return nil, util.MapError(err)
	}
	return record, nil
}

// SetWater upserts the day's glass count.
func (s *RecordService) SetWater(ctx context.Context, userID string, date int64, glasses int) (*domain.WaterRecord, error) {
	if err := validateRecordDate(date); err != nil {
		return nil, err
	}
	if glasses < 0 || glasses > 100 {
		return nil, util.NewValidationError("glasses out of range", map[string]any{"glasses": glasses})
	}
	record := &domain.WaterRecord{UserID: userID, Date: date, Glasses: glasses}
	if err := s.records.UpsertWater(ctx, record); err != nil {
		return nil, util.MapError(err)
	}
	return record, nil
}

// GetNutrition returns the day's nutrition record, or an empty record.
func (s *RecordService) GetNutrition(ctx context.Context, userID string, date int64) (*domain.NutritionRecord, error) {
	record, err := s.records.GetNutrition(ctx, userID, date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.NutritionRecord{UserID: userID, Date: date}, nil
		}
		return nil, util.MapError(err)
	}
	return record, nil
}

// ListNutrition returns daily nutrition records in the range.
func (s *RecordService) ListNutrition(ctx context.Context, userID string, rng DateRange) ([]domain.NutritionRecord, error) {
	out, err := s.records.ListNutrition(ctx, userID, rng.From, rng.To)
	if err != nil {
		return nil, util.MapError(err)
	}
	return out, nil
}

// SetNutrition upserts the day's intake totals and item list.
func (s *RecordService) SetNutrition(ctx context.Context, userID string, record domain.NutritionRecord) (*domain.NutritionRecord, error) {
	if err := validateRecordDate(record.Date); err != nil {
		return nil, err
	}
	for _, item := range record.Items {
		if strings.TrimSpace(item.Name) == "" {
			return nil, util.NewValidationError("item name is required", nil)
		}
		if item.Count < 0 {
			return nil, util.NewValidationError("item count must not be negative", nil)
		}
	}
	record.UserID = userID
	if err := s.records.UpsertNutrition(ctx, &record); err != nil {
		return nil, util.MapError(err)
	}
	return &record, nil
}

// ListStockItems returns the member's inventory.
func (s *RecordService) ListStockItems(ctx context.Context, userID string) ([]domain.StockItem, error) {
	out, err := s.records.ListStockItems(ctx, userID)
	if err != nil {
		return nil, util.MapError(err)
	}
	return out, nil
}

// CreateStockItem adds an inventory entry.
func (s *RecordService) CreateStockItem(ctx context.Context, userID string, input StockItemInput) (*domain.StockItem, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, util.NewValidationError("name is required", nil)
	}
	if input.TotalMg < 0 || input.CurrentMg < 0 || input.CurrentMg > input.TotalMg {
		return nil, util.NewValidationError("mg amounts out of range", nil)
	}

	item := &domain.StockItem{
		UserID:      userID,
		Name:        strings.TrimSpace(input.Name),
		SubstanceID: input.SubstanceID,
		IsVial:      input.IsVial,
		TotalMg:     input.TotalMg,
		CurrentMg:   input.CurrentMg,
		VialMg:      input.VialMg,
		VialMl:      input.VialMl,
		PenType:     input.PenType,
		PenColor:    input.PenColor,
	}
	if err := s.records.CreateStockItem(ctx, item); err != nil {
		return nil, util.MapError(err)
	}
	return item, nil
}

// UpdateStockItem rewrites an inventory entry. Owners only.
func (s *RecordService) UpdateStockItem(ctx context.Context, userID, id string, input StockItemInput) error {
	existing, err := s.records.GetStockItem(ctx, id)
	if err != nil {
		return util.MapError(err)
	}
	if existing.UserID != userID {
		return util.NewForbidden("cannot modify another member's stock")
	}
	if strings.TrimSpace(input.Name) == "" {
		return util.NewValidationError("name is required", nil)
	}

	item := &domain.StockItem{
		ID:          id,
		UserID:      userID,
		Name:        strings.TrimSpace(input.Name),
		SubstanceID: input.SubstanceID,
		IsVial:      input.IsVial,
		TotalMg:     input.TotalMg,
		CurrentMg:   input.CurrentMg,
		VialMg:      input.VialMg,
		VialMl:      input.VialMl,
		PenType:     input.PenType,
		PenColor:    input.PenColor,
	}
	return util.MapError(s.records.UpdateStockItem(ctx, item))
}

// DeleteStockItem removes an inventory entry.
func (s *RecordService) DeleteStockItem(ctx context.Context, userID, id string) error {
	return util.MapError(s.records.DeleteStockItem(ctx, userID, id))
}

func validateRecordDate(date int64) error {
	if date <= 0 {
		return util.NewValidationError("date is required", nil)
	}
	return nil
}
