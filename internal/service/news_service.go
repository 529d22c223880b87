package service

import (
	"context"
	"strings"
	"time"

	"github.com/glptrack/wellness-service/internal/domain"
	"github.com/glptrack/wellness-service/internal/repository"
	"github.com/glptrack/wellness-service/pkg/util"
)

// NewsInput describes news article create/update payloads.
type NewsInput struct {
	Title   string
	Content string
	Summary *string
	Images  []string
}

// NewsService manages the flat news feed.
type NewsService struct {
	news  repository.NewsRepository
	authz *AuthzService
	media *MediaService
	now   func() int64
}

// NewNewsService constructs the service.
func NewNewsService(news repository.NewsRepository, authz *AuthzService, media *MediaService) *NewsService {
	return &NewsService{
		news:  news,
		authz: authz,
		media: media,
		now:   func() int64 { return time.Now().UnixMilli() },
	}
}

// List returns all articles, pinned first, newest first within each group.
func (s *NewsService) List(ctx context.Context) ([]domain.NewsArticle, error) {
	articles, err := s.news.List(ctx)
	if err != nil {
		return nil, util.MapError(err)
	}
	return articles, nil
}

// Get returns one article.
func (s *NewsService) Get(ctx context.Context, id string) (*domain.NewsArticle, error) {
	article, err := s.news.Get(ctx, id)
	if err != nil {
		return nil, util.MapError(err)
	}
	return article, nil
}

// Create publishes a new article.
func (s *NewsService) Create(ctx context.Context, actor *domain.User, input NewsInput) (*domain.NewsArticle, error) {
	if _, err := s.authz.RequireAdminOrManager(actor); err != nil {
		return nil, err
	}
	if err := validateNewsInput(input); err != nil {
		return nil, err
	}

	article := &domain.NewsArticle{
		Title:     strings.TrimSpace(input.Title),
		Content:   input.Content,
		Summary:   input.Summary,
		Images:    input.Images,
		CreatedAt: s.now(),
	}
	if err := s.news.Create(ctx, article); err != nil {
		return nil, util.MapError(err)
	}
	article.UpdatedAt = article.CreatedAt
	return article, nil
}

// Update rewrites an article.
func (s *NewsService) Update(ctx context.Context, actor *domain.User, id string, input NewsInput) error {
	if _, err := s.authz.RequireAdminOrManager(actor); err != nil {
		return err
	}
	if err := validateNewsInput(input); err != nil {
		return err
	}

	existing, err := s.news.Get(ctx, id)
	if err != nil {
		return util.MapError(err)
	}

	article := &domain.NewsArticle{
		ID:        id,
		Title:     strings.TrimSpace(input.Title),
		Content:   input.Content,
		Summary:   input.Summary,
		IsPinned:  existing.IsPinned,
		Images:    input.Images,
		UpdatedAt: s.now(),
	}
	return util.MapError(s.news.Update(ctx, article))
}

// Delete removes an article and garbage-collects its embedded images.
func (s *NewsService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if _, err := s.authz.RequireAdminOrManager(actor); err != nil {
		return err
	}
	article, err := s.news.Get(ctx, id)
	if err != nil {
		return util.MapError(err)
	}
	if err := s.news.Delete(ctx, id); err != nil {
		return util.MapError(err)
	}
	if s.media != nil {
		s.media.PurgeEmbedded(ctx, article.Content)
	}
	return nil
}

// TogglePin flips the article's pinned flag.
func (s *NewsService) TogglePin(ctx context.Context, actor *domain.User, id string) error {
	if _, err := s.authz.RequireAdminOrManager(actor); err != nil {
		return err
	}
	return util.MapError(s.news.TogglePin(ctx, id, s.now()))
}

func validateNewsInput(input NewsInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return util.NewValidationError("title is required", nil)
	}
	if strings.TrimSpace(input.Content) == "" {
		return util.NewValidationError("content is required", nil)
	}
	return nil
}
