package dto

import "github.com/glptrack/wellness-service/internal/domain"

// CatalogFoodRequest payload for catalog create/update.
type CatalogFoodRequest struct {
	Name         string   `json:"name"`
	Detail       string   `json:"detail"`
	Protein      float64  `json:"protein"`
	Carbs        float64  `json:"carbs"`
	Sugars       *float64 `json:"sugars"`
	Fiber        float64  `json:"fiber"`
	Kcal         float64  `json:"kcal"`
	Icon         string   `json:"icon"`
	ImageKey     *string  `json:"imageKey"`
	TabID        string   `json:"tabId"`
	CategoryName string   `json:"categoryName"`
	SortOrder    *int     `json:"sortOrder"`
}

// UserFoodRequest payload for personal food create/update.
type UserFoodRequest struct {
	Name     string   `json:"name"`
	Detail   string   `json:"detail"`
	Protein  float64  `json:"protein"`
	Carbs    float64  `json:"carbs"`
	Sugars   *float64 `json:"sugars"`
	Fiber    float64  `json:"fiber"`
	Kcal     float64  `json:"kcal"`
	Icon     *string  `json:"icon"`
	ImageKey *string  `json:"imageKey"`
}

// CatalogFoodResponse represents a catalog item.
type CatalogFoodResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Detail       string   `json:"detail"`
	Protein      float64  `json:"protein"`
	Carbs        float64  `json:"carbs"`
	Sugars       *float64 `json:"sugars"`
	Fiber        float64  `json:"fiber"`
	Kcal         float64  `json:"kcal"`
	Icon         string   `json:"icon"`
	ImageKey     *string  `json:"imageKey"`
	TabID        string   `json:"tabId"`
	CategoryName string   `json:"categoryName"`
	SortOrder    int      `json:"sortOrder"`
	IsActive     bool     `json:"isActive"`
}

// NewCatalogFoodResponse maps a catalog item.
func NewCatalogFoodResponse(f domain.CatalogFood) CatalogFoodResponse {
	return CatalogFoodResponse{
		ID:           f.ID,
		Name:         f.Name,
		Detail:       f.Detail,
		Protein:      f.Protein,
		Carbs:        f.Carbs,
		Sugars:       f.Sugars,
		Fiber:        f.Fiber,
		Kcal:         f.Kcal,
		Icon:         f.Icon,
		ImageKey:     f.ImageKey,
		TabID:        f.TabID,
		CategoryName: f.CategoryName,
		SortOrder:    f.SortOrder,
		IsActive:     f.IsActive,
	}
}

// UserFoodResponse represents a personal food.
type UserFoodResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Detail   string   `json:"detail"`
	Protein  float64  `json:"protein"`
	Carbs    float64  `json:"carbs"`
	Sugars   *float64 `json:"sugars"`
	Fiber    float64  `json:"fiber"`
	Kcal     float64  `json:"kcal"`
	Icon     *string  `json:"icon"`
	ImageKey *string  `json:"imageKey"`
}

// NewUserFoodResponse maps a personal food.
func NewUserFoodResponse(f domain.UserFood) UserFoodResponse {
	return UserFoodResponse{
		ID:       f.ID,
		Name:     f.Name,
		Detail:   f.Detail,
		Protein:  f.Protein,
		Carbs:    f.Carbs,
		Sugars:   f.Sugars,
		Fiber:    f.Fiber,
		Kcal:     f.Kcal,
		Icon:     f.Icon,
		ImageKey: f.ImageKey,
	}
}

// CreateWeightRequest payload.
type CreateWeightRequest struct {
	Date int64   `json:"date"`
	Kg   float64 `json:"kg"`
}

// CreateInjectionRequest payload.
type CreateInjectionRequest struct {
	Date        int64   `json:"date"`
	SubstanceID string  `json:"substanceId"`
	Mg          float64 `json:"mg"`
	Site        *string `json:"site"`
}

// CreateMeasureRequest payload.
type CreateMeasureRequest struct {
	Date  int64    `json:"date"`
	Neck  *float64 `json:"neck"`
	Chest *float64 `json:"chest"`
	Waist *float64 `json:"waist"`
	Hips  *float64 `json:"hips"`
	Thigh *float64 `json:"thigh"`
	Calf  *float64 `json:"calf"`
	Arm   *float64 `json:"arm"`
}

// CreateMoodRequest payload.
type CreateMoodRequest struct {
	Date        int64    `json:"date"`
	Rating      int      `json:"rating"`
	SideEffects []string `json:"sideEffects"`
	Note        *string  `json:"note"`
	LevelAtTime float64  `json:"levelAtTime"`
}

// SetWaterRequest payload.
type SetWaterRequest struct {
	Date    int64 `json:"date"`
	Glasses int   `json:"glasses"`
}

// SetNutritionRequest payload.
type SetNutritionRequest struct {
	Date       int64                  `json:"date"`
	TotalGrams float64                `json:"totalGrams"`
	TotalKcal  *float64               `json:"totalKcal"`
	TotalCarbs *float64               `json:"totalCarbs"`
	TotalSugar *float64               `json:"totalSugar"`
	TotalFiber *float64               `json:"totalFiber"`
	Items      []domain.NutritionItem `json:"items"`
}

// WeightResponse represents a weight entry.
type WeightResponse struct {
	ID   string  `json:"id"`
	Date int64   `json:"date"`
	Kg   float64 `json:"kg"`
}

// NewWeightResponse maps a weight record.
func NewWeightResponse(r domain.WeightRecord) WeightResponse {
	return WeightResponse{ID: r.ID, Date: r.Date, Kg: r.Kg}
}

// InjectionResponse represents a dose entry.
type InjectionResponse struct {
	ID          string  `json:"id"`
	Date        int64   `json:"date"`
	SubstanceID string  `json:"substanceId"`
	Mg          float64 `json:"mg"`
	Site        *string `json:"site"`
}

// NewInjectionResponse maps a dose record.
func NewInjectionResponse(r domain.InjectionRecord) InjectionResponse {
	return InjectionResponse{ID: r.ID, Date: r.Date, SubstanceID: r.SubstanceID, Mg: r.Mg, Site: r.Site}
}

// MeasureResponse represents a measurement entry.
type MeasureResponse struct {
	ID    string   `json:"id"`
	Date  int64    `json:"date"`
	Neck  *float64 `json:"neck"`
	Chest *float64 `json:"chest"`
	Waist *float64 `json:"waist"`
	Hips  *float64 `json:"hips"`
	Thigh *float64 `json:"thigh"`
	Calf  *float64 `json:"calf"`
	Arm   *float64 `json:"arm"`
}

// NewMeasureResponse maps a measurement record.
func NewMeasureResponse(r domain.MeasureRecord) MeasureResponse {
	return MeasureResponse{
		ID: r.ID, Date: r.Date,
		Neck: r.Neck, Chest: r.Chest, Waist: r.Waist, Hips: r.Hips,
		Thigh: r.Thigh, Calf: r.Calf, Arm: r.Arm,
	}
}

// MoodResponse represents a mood entry.
type MoodResponse struct {
	ID          string   `json:"id"`
	Date        int64    `json:"date"`
	Rating      int      `json:"rating"`
	SideEffects []string `json:"sideEffects"`
	Note        *string  `json:"note"`
	LevelAtTime float64  `json:"levelAtTime"`
}

// NewMoodResponse maps a mood record.
func NewMoodResponse(r domain.MoodRecord) MoodResponse {
	return MoodResponse{
		ID: r.ID, Date: r.Date, Rating: r.Rating,
		SideEffects: r.SideEffects, Note: r.Note, LevelAtTime: r.LevelAtTime,
	}
}

// WaterResponse represents a daily water record.
type WaterResponse struct {
	Date    int64 `json:"date"`
	Glasses int   `json:"glasses"`
}

// NewWaterResponse maps a water record.
func NewWaterResponse(r *domain.WaterRecord) WaterResponse {
	return WaterResponse{Date: r.Date, Glasses: r.Glasses}
}

// NutritionResponse represents a daily nutrition record.
type NutritionResponse struct {
	Date       int64                  `json:"date"`
	TotalGrams float64                `json:"totalGrams"`
	TotalKcal  *float64               `json:"totalKcal"`
	TotalCarbs *float64               `json:"totalCarbs"`
	TotalSugar *float64               `json:"totalSugar"`
	TotalFiber *float64               `json:"totalFiber"`
	Items      []domain.NutritionItem `json:"items"`
}

// NewNutritionResponse maps a nutrition record.
func NewNutritionResponse(r *domain.NutritionRecord) NutritionResponse {
	return NutritionResponse{
		Date:       r.Date,
		TotalGrams: r.TotalGrams,
		TotalKcal:  r.TotalKcal,
		TotalCarbs: r.TotalCarbs,
		TotalSugar: r.TotalSugar,
		TotalFiber: r.TotalFiber,
		Items:      r.Items,
	}
}

// StockItemResponse represents an inventory entry.
type StockItemResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	SubstanceID string   `json:"substanceId"`
	IsVial      bool     `json:"isVial"`
	TotalMg     float64  `json:"totalMg"`
	CurrentMg   float64  `json:"currentMg"`
	VialMg      *float64 `json:"vialMg"`
	VialMl      *float64 `json:"vialMl"`
	PenType     *string  `json:"penType"`
	PenColor    *string  `json:"penColor"`
}

// NewStockItemResponse maps an inventory entry.
func NewStockItemResponse(i domain.StockItem) StockItemResponse {
	return StockItemResponse{
		ID:          i.ID,
		Name:        i.Name,
		SubstanceID: i.SubstanceID,
		IsVial:      i.IsVial,
		TotalMg:     i.TotalMg,
		CurrentMg:   i.CurrentMg,
		VialMg:      i.VialMg,
		VialMl:      i.VialMl,
		PenType:     i.PenType,
		PenColor:    i.PenColor,
	}
}

// StockItemRequest payload.
type StockItemRequest struct {
	Name        string   `json:"name"`
	SubstanceID string   `json:"substanceId"`
	IsVial      bool     `json:"isVial"`
	TotalMg     float64  `json:"totalMg"`
	CurrentMg   float64  `json:"currentMg"`
	VialMg      *float64 `json:"vialMg"`
	VialMl      *float64 `json:"vialMl"`
	PenType     *string  `json:"penType"`
	PenColor    *string  `json:"penColor"`
}
