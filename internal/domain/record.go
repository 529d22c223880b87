package domain

// Per-user tracking records. Dates are epoch milliseconds; daily records
// (water, nutrition) use the start-of-day timestamp as their key.

// WeightRecord is a dated body-weight entry.
type WeightRecord struct {
	ID     string
	UserID string
	Date   int64
	Kg     float64
}

// InjectionRecord is a dated dose entry.
type InjectionRecord struct {
	ID          string
	UserID      string
	Date        int64
	SubstanceID string
	Mg          float64
	Site        *string
}

// MeasureRecord is a dated set of body measurements in centimeters.
type MeasureRecord struct {
	ID     string
	UserID string
	Date   int64
	Neck   *float64
	Chest  *float64
	Waist  *float64
	Hips   *float64
	Thigh  *float64
	Calf   *float64
	Arm    *float64
}

// MoodRecord is a dated journal entry with a 1-5 rating.
type MoodRecord struct {
	ID          string
	UserID      string
	Date        int64
	Rating      int
	SideEffects []string
	Note        *string
	LevelAtTime float64
}

// WaterRecord tracks glasses of water for one day.
type WaterRecord struct {
	ID      string
	UserID  string
	Date    int64
	Glasses int
}

// NutritionItem is one food entry inside a daily nutrition record.
type NutritionItem struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Count          float64  `json:"count"`
	ProteinPerUnit float64  `json:"proteinPerUnit"`
	KcalPerUnit    *float64 `json:"kcalPerUnit,omitempty"`
	CarbsPerUnit   *float64 `json:"carbsPerUnit,omitempty"`
	SugarsPerUnit  *float64 `json:"sugarsPerUnit,omitempty"`
	FiberPerUnit   *float64 `json:"fiberPerUnit,omitempty"`
}

// NutritionRecord tracks daily intake totals plus the item list.
type NutritionRecord struct {
	ID         string
	UserID     string
	Date       int64
	TotalGrams float64
	TotalKcal  *float64
	TotalCarbs *float64
	TotalSugar *float64
	TotalFiber *float64
	Items      []NutritionItem
}

// StockItem is a member's vial or pen inventory entry.
type StockItem struct {
	ID          string
	UserID      string
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
