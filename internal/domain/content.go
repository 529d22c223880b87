package domain

// ContentSection names one of the editorial content trees. All sections
// share the same category > topic > article shape.
type ContentSection string

const (
	SectionAcademy  ContentSection = "academy"
	SectionBiohack  ContentSection = "biohack"
	SectionMagazine ContentSection = "magazine"
	SectionStories  ContentSection = "stories"
)

// Valid reports whether the section is one of the known trees.
func (s ContentSection) Valid() bool {
	switch s {
	case SectionAcademy, SectionBiohack, SectionMagazine, SectionStories:
		return true
	}
	return false
}

// ContentCategory is a top-level grouping within a section.
type ContentCategory struct {
	ID          string
	Section     ContentSection
	Name        string
	Description *string
	Icon        *string
	Color       *string
	SortOrder   int
	CreatedAt   int64
	UpdatedAt   int64
}

// ContentTopic groups articles within a category.
type ContentTopic struct {
	ID          string
	CategoryID  string
	Name        string
	Description *string
	SortOrder   int
	CreatedAt   int64
	UpdatedAt   int64
}

// ContentArticle holds markdown content; premium-flagged article bodies
// are served only to premium members.
type ContentArticle struct {
	ID        string
	TopicID   string
	Title     string
	Content   string
	Summary   *string
	SortOrder int
	IsPremium bool
	Images    []string
	CreatedAt int64
	UpdatedAt int64
}

// NewsArticle is a flat dated article; pinned articles list first.
type NewsArticle struct {
	ID        string
	Title     string
	Content   string
	Summary   *string
	IsPinned  bool
	Images    []string
	CreatedAt int64
	UpdatedAt int64
}
