package domain

// CatalogFood is an editor-curated food item shown to every member,
// organized by tab and category. Removal is a soft delete via IsActive.
type CatalogFood struct {
	ID           string
	Name         string
	Detail       string
	Protein      float64
	Carbs        float64
	Sugars       *float64
	Fiber        float64
	Kcal         float64
	Icon         string
	ImageKey     *string
	TabID        string
	CategoryName string
	SortOrder    int
	IsActive     bool
	CreatedAt    int64
	UpdatedAt    int64
}

// UserFood is a member's personal food item.
type UserFood struct {
	ID        string
	UserID    string
	Name      string
	Detail    string
	Protein   float64
	Carbs     float64
	Sugars    *float64
	Fiber     float64
	Kcal      float64
	Icon      *string
	ImageKey  *string
	CreatedAt int64
}
