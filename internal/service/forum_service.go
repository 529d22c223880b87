package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/glptrack/wellness-service/internal/auth"
	"github.com/glptrack/wellness-service/internal/domain"
	"github.com/glptrack/wellness-service/internal/events"
	"github.com/glptrack/wellness-service/internal/repository"
	"github.com/glptrack/wellness-service/pkg/util"
)

// Topic listing filters.
const (
	ForumFilterNew     = "new"
	ForumFilterPinned  = "pinned"
	ForumFilterMine    = "my"
	ForumFilterUpdated = "updated"
)

const (
	forumNewWindowMs   = int64(24 * time.Hour / time.Millisecond)
	forumMaxTitleLen   = 200
	forumMaxBodyLen    = 10000
	forumDefaultLimit  = 50
	replyBodyPreviewAt = 120
)

// ForumListInput narrows topic listings.
type ForumListInput struct {
	Category string
	Filter   string
	Limit    int
}

// ForumPostItem is a post view annotated for the requesting member.
type ForumPostItem struct {
	repository.ForumPostView
	IsMine bool
	IsNew  bool
}

// TopicCreateInput describes a new topic.
type TopicCreateInput struct {
	Category string
	Title    string
	Text     string
}

// ForumService coordinates community forum workflows.
type ForumService struct {
	posts      repository.ForumRepository
	media      *MediaService
	resolver   *auth.Resolver
	dispatcher events.Dispatcher
	now        func() int64
}

// NewForumService constructs the service.
func NewForumService(posts repository.ForumRepository, media *MediaService, resolver *auth.Resolver, dispatcher events.Dispatcher) *ForumService {
	return &ForumService{
		posts:      posts,
		media:      media,
		resolver:   resolver,
		dispatcher: dispatcher,
		now:        func() int64 { return time.Now().UnixMilli() },
	}
}

// ListTopics returns topics for the given category and filter, annotated
// with per-viewer flags.
func (s *ForumService) ListTopics(ctx context.Context, viewer *domain.User, input ForumListInput) ([]ForumPostItem, error) {
	if viewer == nil {
		return nil, util.NewUnauthenticated("authentication required")
	}

	now := s.now()
	filter := repository.TopicFilter{
		Category: strings.TrimSpace(input.Category),
		Limit:    input.Limit,
	}
	if filter.Limit <= 0 {
		filter.Limit = forumDefaultLimit
	}

	switch input.Filter {
	case ForumFilterNew:
		filter.CreatedAfter = now - forumNewWindowMs
	case ForumFilterPinned:
		filter.PinnedOnly = true
	case ForumFilterMine:
		filter.AuthorID = viewer.ID
	case ForumFilterUpdated:
		filter.OrderUpdated = true
	case "":
	default:
		return nil, util.NewValidationError("unknown filter", map[string]any{"filter": input.Filter})
	}

	views, err := s.posts.ListTopics(ctx, viewer.ID, filter)
	if err != nil {
		return nil, util.MapError(err)
	}
	return s.annotate(viewer, views, now), nil
}

// GetTopic returns a topic with its replies and bumps the view counter.
func (s *ForumService) GetTopic(ctx context.Context, viewer *domain.User, topicID string) (*ForumPostItem, []ForumPostItem, error) {
	if viewer == nil {
		return nil, nil, util.NewUnauthenticated("authentication required")
	}

	topic, err := s.posts.GetPost(ctx, viewer.ID, topicID)
	if err != nil {
		return nil, nil, util.MapError(err)
	}
	if !topic.IsTopic() {
		return nil, nil, util.NewNotFound("topic", map[string]any{"id": topicID})
	}

	if err := s.posts.IncrementViews(ctx, topicID); err != nil && err != pgx.ErrNoRows {
		return nil, nil, util.MapError(err)
	}
	topic.Views++

	replies, err := s.posts.ListReplies(ctx, viewer.ID, topicID)
	if err != nil {
		return nil, nil, util.MapError(err)
	}

	now := s.now()
	items := s.annotate(viewer, []repository.ForumPostView{*topic}, now)
	return &items[0], s.annotate(viewer, replies, now), nil
}

// CreateTopic starts a new thread.
func (s *ForumService) CreateTopic(ctx context.Context, author *domain.User, input TopicCreateInput) (*domain.ForumPost, error) {
	if author == nil {
		return nil, util.NewUnauthenticated("authentication required")
	}

	title := strings.TrimSpace(input.Title)
	text := strings.TrimSpace(input.Text)
	category := strings.TrimSpace(input.Category)
	if title == "" || len(title) > forumMaxTitleLen {
		return nil, util.NewValidationError("title is required and must be at most 200 characters", nil)
	}
	if text == "" || len(text) > forumMaxBodyLen {
		return nil, util.NewValidationError("text is required and must be at most 10000 characters", nil)
	}
	if category == "" {
		return nil, util.NewValidationError("category is required", nil)
	}

	now := s.now()
	post := &domain.ForumPost{
		UserID:     author.ID,
		AuthorName: author.DisplayName(),
		Category:   category,
		Title:      &title,
		Text:       text,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, util.MapError(err)
	}

	s.publish(ctx, author.ID, events.EventForumTopicCreated, events.ForumTopicCreatedPayload{
		TopicID:  post.ID,
		Category: post.Category,
		Title:    title,
	})
	return post, nil
}

// CreateReply adds a reply and bumps the topic's updated time so it
// surfaces in recently-active listings.
func (s *ForumService) CreateReply(ctx context.Context, author *domain.User, topicID, text string) (*domain.ForumPost, error) {
	if author == nil {
		return nil, util.NewUnauthenticated("authentication required")
	}

	text = strings.TrimSpace(text)
	if text == "" || len(text) > forumMaxBodyLen {
		return nil, util.NewValidationError("text is required and must be at most 10000 characters", nil)
	}

	topic, err := s.posts.GetPost(ctx, author.ID, topicID)
	if err != nil {
		return nil, util.MapError(err)
	}
	if !topic.IsTopic() {
		return nil, util.NewValidationError("replies can only target topics", map[string]any{"id": topicID})
	}

	now := s.now()
	post := &domain.ForumPost{
		UserID:     author.ID,
		AuthorName: author.DisplayName(),
		Category:   topic.Category,
		Text:       text,
		ParentID:   &topic.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, util.MapError(err)
	}
	if err := s.posts.TouchTopic(ctx, topic.ID, now); err != nil {
		return nil, util.MapError(err)
	}

	preview := text
	if len(preview) > replyBodyPreviewAt {
		preview = preview[:replyBodyPreviewAt]
	}
	s.publish(ctx, author.ID, events.EventForumReplyCreated, events.ForumReplyCreatedPayload{
		TopicID:     topic.ID,
		ReplyID:     post.ID,
		TopicAuthor: topic.UserID,
		BodyPreview: preview,
	})
	return post, nil
}

// Delete removes a post. Authors can delete their own posts; moderators
// and above can delete any. Replies and embedded shortcode images go with
// the post.
func (s *ForumService) Delete(ctx context.Context, actor *domain.User, postID string) error {
	if actor == nil {
		return util.NewUnauthenticated("authentication required")
	}

	post, err := s.posts.GetPost(ctx, actor.ID, postID)
	if err != nil {
		return util.MapError(err)
	}
	if post.UserID != actor.ID && !s.resolver.IsAtLeast(actor, domain.RoleModerator) {
		return util.NewForbidden("cannot delete another member's post")
	}

	texts := []string{post.Text}
	if post.IsTopic() {
		replies, err := s.posts.ListReplies(ctx, actor.ID, postID)
		if err != nil {
			return util.MapError(err)
		}
		for _, reply := range replies {
			texts = append(texts, reply.Text)
		}
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		return util.MapError(err)
	}

	if s.media != nil {
		for _, text := range texts {
			s.media.PurgeEmbedded(ctx, text)
		}
	}
	return nil
}

// TogglePin flips a topic's pinned flag. Moderators and above.
func (s *ForumService) TogglePin(ctx context.Context, actor *domain.User, topicID string) error {
	if err := s.resolver.Require(actor, domain.RoleModerator); err != nil {
		return err
	}
	if err := s.posts.TogglePin(ctx, topicID); err != nil {
		return util.MapError(err)
	}
	return nil
}

// ToggleLike flips the member's like on a post.
func (s *ForumService) ToggleLike(ctx context.Context, actor *domain.User, postID string) (liked bool, count int, err error) {
	if actor == nil {
		return false, 0, util.NewUnauthenticated("authentication required")
	}
	if _, err := s.posts.GetPost(ctx, actor.ID, postID); err != nil {
		return false, 0, util.MapError(err)
	}
	liked, count, err = s.posts.ToggleLike(ctx, postID, actor.ID)
	if err != nil {
		return false, 0, util.MapError(err)
	}
	return liked, count, nil
}

func (s *ForumService) annotate(viewer *domain.User, views []repository.ForumPostView, now int64) []ForumPostItem {
	items := make([]ForumPostItem, 0, len(views))
	for _, view := range views {
		items = append(items, ForumPostItem{
			ForumPostView: view,
			IsMine:        view.UserID == viewer.ID,
			IsNew:         now-view.CreatedAt < forumNewWindowMs,
		})
	}
	return items
}

func (s *ForumService) publish(ctx context.Context, userID string, eventType events.EventType, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
