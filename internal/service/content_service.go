package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/glptrack/wellness-service/internal/domain"
	"github.com/glptrack/wellness-service/internal/markdown"
	"github.com/glptrack/wellness-service/internal/repository"
	"github.com/glptrack/wellness-service/pkg/util"
)

// CategoryInput describes category create/update payloads.
type CategoryInput struct {
	Name        string
	Description *string
	Icon        *string
	Color       *string
}

// TopicInput describes topic create/update payloads.
type TopicInput struct {
	Name        string
	Description *string
}

// ArticleInput describes article create/update payloads.
type ArticleInput struct {
	Title     string
	Content   string
	Summary   *string
	SortOrder *int
	IsPremium bool
	Images    []string
}

// ArticleView is an article prepared for a specific reader. Premium bodies
// are blanked for non-premium readers and Locked is set instead.
type ArticleView struct {
	domain.ContentArticle
	ContentHTML string
	Locked      bool
}

// ContentService manages the editorial section trees.
type ContentService struct {
	content      repository.ContentRepository
	authz        *AuthzService
	entitlements *EntitlementService
	media        *MediaService
	logger       *zap.Logger
	now          func() int64
}

// NewContentService constructs the service.
func NewContentService(content repository.ContentRepository, authz *AuthzService, entitlements *EntitlementService, media *MediaService, logger *zap.Logger) *ContentService {
	return &ContentService{
		content:      content,
		authz:        authz,
		entitlements: entitlements,
		media:        media,
		logger:       logger,
		now:          func() int64 { return time.Now().UnixMilli() },
	}
}

// ListCategories returns the ordered categories of a section.
func (s *ContentService) ListCategories(ctx context.Context, section domain.ContentSection) ([]domain.ContentCategory, error) {
	if !section.Valid() {
		return nil, util.NewValidationError("unknown section", map[string]any{"section": string(section)})
	}
	categories, err := s.content.ListCategories(ctx, section)
	if err != nil {
		return nil, util.MapError(err)
	}
	return categories, nil
}

// CreateCategory appends a category at the end of the section's ordering.
func (s *ContentService) CreateCategory(ctx context.Context, actor *domain.User, section domain.ContentSection, input CategoryInput) (*domain.ContentCategory, error) {
	if _, err := s.authz.RequireAdminOrManager(actor); err != nil {
		return nil, err
	}
	if !section.Valid() {
		return nil, util.NewValidationError("unknown section", map[string]any{"section": string(section)})
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, util.NewValidationError("name is required", nil)
	}

	category := &domain.ContentCategory{
		Section:     section,
		Name:        name,
		Description: input.Description,
		Icon:        input.Icon,
		Color:       input.Color,
		CreatedAt:   s.now(),
	}
	if err := s.content.CreateCategory(ctx, category); err != nil {
		return nil, util.MapError(err)
	}
	category.UpdatedAt = category.CreatedAt
	return category, nil
}

// UpdateCategory edits name and presentation fields.
func (s *ContentService) UpdateCategory(ctx context.Context, actor *domain.User, section domain.ContentSection, id string, input CategoryInput) error {
	if _, err := s.authz.RequireAdminOrManager(actor); err != nil {
		return err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return util.NewValidationError("name is required", nil)
	}
	category := &domain.ContentCategory{
		ID:          id,
		Section:     section,
		Name:        name,
		Description: input.Description,
		Icon:        input.Icon,
		Color:       input.Color,
		UpdatedAt:   s.now(),
	}
	return util.MapError(s.content.UpdateCategory(ctx, category))
}

// DeleteCategory removes a category and its whole subtree.
func (s *ContentService) DeleteCategory(ctx context.Context, actor *domain.User, section domain.ContentSection, id string) error {
	if _, err := s.authz.RequireAdminOrManager(actor); err != nil {
		return err
	}
	s.purgeCategoryImages(ctx, id)
	return util.MapError(s.content.DeleteCategory(ctx, section, id))
}

// ReorderCategories rewrites the section's category ordering.
func (s *ContentService) ReorderCategories(ctx context.Context, actor *domain.User, section domain.ContentSection, orderedIDs []string) error {
	if _, err := s.authz.RequireAdminOrManager(actor); err != nil {
		return err
	}
	if !section.Valid() {
		return util.NewValidationError("unknown section", map[string]any{"section": string(section)})
	}
	if len(orderedIDs) == 0 {
		return util.NewValidationError("orderedIds is required", nil)
	}
	return util.MapError(s.content.ReorderCategories(ctx, section, orderedIDs, s.now()))
}

// ListTopics returns the ordered topics of a category.
func (s *ContentService) ListTopics(ctx context.Context, categoryID string) ([]domain.ContentTopic, error) {
	topics, err := s.content.ListTopics(ctx, categoryID)
	if err != nil {
		return nil, util.MapError(err)
	}
	return topics, nil
}

// CreateTopic appends a topic at the end of the category's ordering.
func (s *ContentService) CreateTopic(ctx context.Context, actor *domain.User, categoryID string, input TopicInput) (*domain.ContentTopic, error) {
	if _, err := s.authz.RequireAdminOrManager(actor); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, util.NewValidationError("name is required", nil)
	}

	topic := &domain.ContentTopic{
		CategoryID:  categoryID,
		Name:        name,
		Description: input.Description,
		CreatedAt:   s.now(),
	}
	if err := s.content.CreateTopic(ctx, topic); err != nil {
		return nil, util.MapError(err)
	}
	topic.UpdatedAt = topic.CreatedAt
	return topic, nil
}

// UpdateTopic edits a topic.
func (s *ContentService) UpdateTopic(ctx context.Context, actor *domain.User, id string, input TopicInput) error {
	if _, err := s.authz.RequireAdminOrManager(actor); err != nil {
		return err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return util.NewValidationError("name is required", nil)
	}
	topic := &domain.ContentTopic{
		ID:          id,
		Name:        name,
		Description: input.Description,
		UpdatedAt:   s.now(),
	}
	return util.MapError(s.content.UpdateTopic(ctx, topic))
}

// DeleteTopic removes a topic and its articles.
func (s *ContentService) DeleteTopic(ctx context.Context, actor *domain.User, id string) error {
	if _, err := s.authz.RequireAdminOrManager(actor); err != nil {
		return err
	}
	s.purgeTopicImages(ctx, id)
	return util.MapError(s.content.DeleteTopic(ctx, id))
}

// ListArticles returns the topic's articles without bodies rendered;
// premium bodies are blanked for non-premium readers.
func (s *ContentService) ListArticles(ctx context.Context, reader *domain.User, topicID string) ([]ArticleView, error) {
	articles, err := s.content.ListArticles(ctx, topicID)
	if err != nil {
		return nil, util.MapError(err)
	}

	premium := s.readerIsPremium(reader)
	views := make([]ArticleView, 0, len(articles))
	for _, article := range articles {
		view := ArticleView{ContentArticle: article}
		if article.IsPremium && !premium {
			view.Content = ""
			view.Locked = true
		}
		views = append(views, view)
	}
	return views, nil
}

// GetArticle returns one article with its rendered body. Premium bodies
// are withheld from non-premium readers.
func (s *ContentService) GetArticle(ctx context.Context, reader *domain.User, id string) (*ArticleView, error) {
	article, err := s.content.GetArticle(ctx, id)
	if err != nil {
		return nil, util.MapError(err)
	}

	view := &ArticleView{ContentArticle: *article}
	if article.IsPremium && !s.readerIsPremium(reader) {
		view.Content = ""
		view.Locked = true
		return view, nil
	}

	html, err := markdown.ToHTML(article.Content)
	if err != nil {
		s.logger.Warn("article render failed", zap.String("article_id", id), zap.Error(err))
	} else {
		view.ContentHTML = html
	}
	return view, nil
}

// CreateArticle appends an article; order defaults to end of topic.
func (s *ContentService) CreateArticle(ctx context.Context, actor *domain.User, topicID string, input ArticleInput) (*domain.ContentArticle, error) {
	if _, err := s.authz.RequireAdminOrManager(actor); err != nil {
		return nil, err
	}
	if err := validateArticleInput(input); err != nil {
		return nil, err
	}
	if _, err := s.content.GetTopic(ctx, topicID); err != nil {
		return nil, util.MapError(err)
	}

	sortOrder := 0
	if input.SortOrder != nil {
		sortOrder = *input.SortOrder
	} else {
		next, err := s.content.NextArticleOrder(ctx, topicID)
		if err != nil {
			return nil, util.MapError(err)
		}
		sortOrder = next
	}

	article := &domain.ContentArticle{
		TopicID:   topicID,
		Title:     strings.TrimSpace(input.Title),
		Content:   input.Content,
		Summary:   input.Summary,
		SortOrder: sortOrder,
		IsPremium: input.IsPremium,
		Images:    input.Images,
		CreatedAt: s.now(),
	}
	if err := s.content.CreateArticle(ctx, article); err != nil {
		return nil, util.MapError(err)
	}
	article.UpdatedAt = article.CreatedAt
	return article, nil
}

// UpdateArticle rewrites an article.
func (s *ContentService) UpdateArticle(ctx context.Context, actor *domain.User, id string, input ArticleInput) error {
	if _, err := s.authz.RequireAdminOrManager(actor); err != nil {
		return err
	}
	if err := validateArticleInput(input); err != nil {
		return err
	}

	existing, err := s.content.GetArticle(ctx, id)
	if err != nil {
		return util.MapError(err)
	}

	sortOrder := existing.SortOrder
	if input.SortOrder != nil {
		sortOrder = *input.SortOrder
	}
	article := &domain.ContentArticle{
		ID:        id,
		Title:     strings.TrimSpace(input.Title),
		Content:   input.Content,
		Summary:   input.Summary,
		SortOrder: sortOrder,
		IsPremium: input.IsPremium,
		Images:    input.Images,
		UpdatedAt: s.now(),
	}
	return util.MapError(s.content.UpdateArticle(ctx, article))
}

// DeleteArticle removes an article and garbage-collects its embedded
// images.
func (s *ContentService) DeleteArticle(ctx context.Context, actor *domain.User, id string) error {
	if _, err := s.authz.RequireAdminOrManager(actor); err != nil {
		return err
	}

	article, err := s.content.GetArticle(ctx, id)
	if err != nil {
		return util.MapError(err)
	}
	if err := s.content.DeleteArticle(ctx, id); err != nil {
		return util.MapError(err)
	}
	if s.media != nil {
		s.media.PurgeEmbedded(ctx, article.Content)
	}
	return nil
}

func (s *ContentService) readerIsPremium(reader *domain.User) bool {
	return s.entitlements.Status(reader).IsPremium
}

func (s *ContentService) purgeCategoryImages(ctx context.Context, categoryID string) {
	if s.media == nil {
		return
	}
	topics, err := s.content.ListTopics(ctx, categoryID)
	if err != nil {
		s.logger.Warn("image purge listing failed", zap.String("category_id", categoryID), zap.Error(err))
		return
	}
	for _, topic := range topics {
		s.purgeTopicImages(ctx, topic.ID)
	}
}

func (s *ContentService) purgeTopicImages(ctx context.Context, topicID string) {
	if s.media == nil {
		return
	}
	articles, err := s.content.ListArticles(ctx, topicID)
	if err != nil {
		s.logger.Warn("image purge listing failed", zap.String("topic_id", topicID), zap.Error(err))
		return
	}
	for _, article := range articles {
		s.media.PurgeEmbedded(ctx, article.Content)
	}
}

func validateArticleInput(input ArticleInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return util.NewValidationError("title is required", nil)
	}
	if strings.TrimSpace(input.Content) == "" {
		return util.NewValidationError("content is required", nil)
	}
	return nil
}
