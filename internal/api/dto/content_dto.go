package dto

import (
	"github.com/glptrack/wellness-service/internal/domain"
	"github.com/glptrack/wellness-service/internal/service"
)

// CategoryRequest payload for category create/update.
type CategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Color       *string `json:"color"`
}

// ReorderRequest payload for category reordering.
type ReorderRequest struct {
	OrderedIDs []string `json:"orderedIds"`
}

// CategoryResponse represents a content category.
type CategoryResponse struct {
	ID          string  `json:"id"`
	Section     string  `json:"section"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Color       *string `json:"color"`
	SortOrder   int     `json:"sortOrder"`
	CreatedAt   int64   `json:"createdAt"`
	UpdatedAt   int64   `json:"updatedAt"`
}

// NewCategoryResponse maps a category.
func NewCategoryResponse(c domain.ContentCategory) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Section:     string(c.Section),
		Name:        c.Name,
		Description: c.Description,
		Icon:        c.Icon,
		Color:       c.Color,
		SortOrder:   c.SortOrder,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ContentTopicRequest payload for topic create/update.
type ContentTopicRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// ContentTopicResponse represents a content topic.
type ContentTopicResponse struct {
	ID          string  `json:"id"`
	CategoryID  string  `json:"categoryId"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	SortOrder   int     `json:"sortOrder"`
	CreatedAt   int64   `json:"createdAt"`
	UpdatedAt   int64   `json:"updatedAt"`
}

// NewContentTopicResponse maps a topic.
func NewContentTopicResponse(t domain.ContentTopic) ContentTopicResponse {
	return ContentTopicResponse{
		ID:          t.ID,
		CategoryID:  t.CategoryID,
		Name:        t.Name,
		Description: t.Description,
		SortOrder:   t.SortOrder,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// ArticleRequest payload for article create/update.
type ArticleRequest struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Summary   *string  `json:"summary"`
	SortOrder *int     `json:"sortOrder"`
	IsPremium bool     `json:"isPremium"`
	Images    []string `json:"images"`
}

// ArticleResponse represents an article prepared for the reader.
type ArticleResponse struct {
	ID          string   `json:"id"`
	TopicID     string   `json:"topicId"`
	Title       string   `json:"title"`
	Content     string   `json:"content,omitempty"`
	ContentHTML string   `json:"contentHtml,omitempty"`
	Summary     *string  `json:"summary"`
	SortOrder   int      `json:"sortOrder"`
	IsPremium   bool     `json:"isPremium"`
	Locked      bool     `json:"locked"`
	Images      []string `json:"images"`
	CreatedAt   int64    `json:"createdAt"`
	UpdatedAt   int64    `json:"updatedAt"`
}

// NewArticleResponse maps a reader-scoped article view.
func NewArticleResponse(view service.ArticleView) ArticleResponse {
	return ArticleResponse{
		ID:          view.ID,
		TopicID:     view.TopicID,
		Title:       view.Title,
		Content:     view.Content,
		ContentHTML: view.ContentHTML,
		Summary:     view.Summary,
		SortOrder:   view.SortOrder,
		IsPremium:   view.IsPremium,
		Locked:      view.Locked,
		Images:      view.Images,
		CreatedAt:   view.CreatedAt,
		UpdatedAt:   view.UpdatedAt,
	}
}

// NewsRequest payload for news create/update.
type NewsRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Summary *string  `json:"summary"`
	Images  []string `json:"images"`
}

// NewsResponse represents a news article.
type NewsResponse struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Summary   *string  `json:"summary"`
	IsPinned  bool     `json:"isPinned"`
	Images    []string `json:"images"`
	CreatedAt int64    `json:"createdAt"`
	UpdatedAt int64    `json:"updatedAt"`
}

// NewNewsResponse maps a news article.
func NewNewsResponse(a domain.NewsArticle) NewsResponse {
	return NewsResponse{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		Summary:   a.Summary,
		IsPinned:  a.IsPinned,
		Images:    a.Images,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
