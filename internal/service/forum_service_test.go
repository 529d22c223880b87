package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/glptrack/wellness-service/internal/auth"
	"github.com/glptrack/wellness-service/internal/domain"
	"github.com/glptrack/wellness-service/internal/repository"
)

type fakeForumRepo struct {
	posts      map[string]*repository.ForumPostView
	nextID     int
	lastFilter repository.TopicFilter
	touched    map[string]int64
	deleted    []string
}

func newFakeForumRepo() *fakeForumRepo {
	return &fakeForumRepo{
		posts:   map[string]*repository.ForumPostView{},
		touched: map[string]int64{},
	}
}

func (f *fakeForumRepo) add(post domain.ForumPost) *repository.ForumPostView {
	view := &repository.ForumPostView{ForumPost: post}
	f.posts[post.ID] = view
	return view
}

func (f *fakeForumRepo) ListTopics(ctx context.Context, viewerID string, filter repository.TopicFilter) ([]repository.ForumPostView, error) {
	f.lastFilter = filter
	var out []repository.ForumPostView
	for _, v := range f.posts {
		if v.IsTopic() {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeForumRepo) GetPost(ctx context.Context, viewerID, id string) (*repository.ForumPostView, error) {
	v, ok := f.posts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *v
	return &copied, nil
}

func (f *fakeForumRepo) ListReplies(ctx context.Context, viewerID, topicID string) ([]repository.ForumPostView, error) {
	var out []repository.ForumPostView
	for _, v := range f.posts {
		if v.ParentID != nil && *v.ParentID == topicID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeForumRepo) Create(ctx context.Context, post *domain.ForumPost) error {
	f.nextID++
	post.ID = fmt.Sprintf("post-%d", f.nextID)
	f.add(*post)
	return nil
}

func (f *fakeForumRepo) TouchTopic(ctx context.Context, topicID string, updatedAt int64) error {
	f.touched[topicID] = updatedAt
	return nil
}

func (f *fakeForumRepo) Delete(ctx context.Context, id string) error {
	delete(f.posts, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeForumRepo) TogglePin(ctx context.Context, topicID string) error {
	v, ok := f.posts[topicID]
	if !ok {
		return pgx.ErrNoRows
	}
	v.IsPinned = !v.IsPinned
	return nil
}

func (f *fakeForumRepo) IncrementViews(ctx context.Context, topicID string) error {
	v, ok := f.posts[topicID]
	if !ok {
		return pgx.ErrNoRows
	}
	v.Views++
	return nil
}

func (f *fakeForumRepo) ToggleLike(ctx context.Context, postID, userID string) (bool, int, error) {
	return true, 1, nil
}

func newForumService(repo *fakeForumRepo, nowMs int64) *ForumService {
	svc := NewForumService(repo, nil, auth.NewResolver(""), nil)
	svc.now = func() int64 { return nowMs }
	return svc
}

func topicPost(id, userID string, createdAt int64) domain.ForumPost {
	title := "title"
	return domain.ForumPost{
		ID:         id,
		UserID:     userID,
		AuthorName: "author",
		Category:   "general",
		Title:      &title,
		Text:       "body",
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
}

func TestListTopicsFilterTranslation(t *testing.T) {
	now := int64(1_700_000_000_000)
	viewer := &domain.User{ID: "u1"}

	tests := []struct {
		name   string
		input  ForumListInput
		verify func(t *testing.T, f repository.TopicFilter)
	}{
		{"new window", ForumListInput{Filter: ForumFilterNew}, func(t *testing.T, f repository.TopicFilter) {
			if want := now - forumNewWindowMs; f.CreatedAfter != want {
				t.Errorf("createdAfter = %d, want %d", f.CreatedAfter, want)
			}
		}},
		{"pinned only", ForumListInput{Filter: ForumFilterPinned}, func(t *testing.T, f repository.TopicFilter) {
			if !f.PinnedOnly {
				t.Error("pinnedOnly should be set")
			}
		}},
		{"mine", ForumListInput{Filter: ForumFilterMine}, func(t *testing.T, f repository.TopicFilter) {
			if f.AuthorID != "u1" {
				t.Errorf("authorID = %q", f.AuthorID)
			}
		}},
		{"recently updated", ForumListInput{Filter: ForumFilterUpdated}, func(t *testing.T, f repository.TopicFilter) {
			if !f.OrderUpdated {
				t.Error("orderUpdated should be set")
			}
		}},
		{"default limit", ForumListInput{}, func(t *testing.T, f repository.TopicFilter) {
			if f.Limit != forumDefaultLimit {
				t.Errorf("limit = %d, want %d", f.Limit, forumDefaultLimit)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeForumRepo()
			svc := newForumService(repo, now)
			if _, err := svc.ListTopics(context.Background(), viewer, tt.input); err != nil {
				t.Fatalf("ListTopics failed: %v", err)
			}
			tt.verify(t, repo.lastFilter)
		})
	}
}

func TestListTopicsRejectsUnknownFilter(t *testing.T) {
	svc := newForumService(newFakeForumRepo(), 1_700_000_000_000)
	if _, err := svc.ListTopics(context.Background(), &domain.User{ID: "u1"}, ForumListInput{Filter: "trending"}); err == nil {
		t.Error("unknown filter should be rejected")
	}
	_, err := svc.ListTopics(context.Background(), nil, ForumListInput{})
	assertDomainCode(t, err, "UNAUTHENTICATED")
}

func TestListTopicsAnnotations(t *testing.T) {
	now := int64(1_700_000_000_000)
	repo := newFakeForumRepo()
	repo.add(topicPost("t1", "u1", now-forumNewWindowMs/2))
	svc := newForumService(repo, now)

	items, err := svc.ListTopics(context.Background(), &domain.User{ID: "u1"}, ForumListInput{})
	if err != nil {
		t.Fatalf("ListTopics failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items", len(items))
	}
	if !items[0].IsMine {
		t.Error("viewer's own topic should be flagged mine")
	}
	if !items[0].IsNew {
		t.Error("topic inside the 24h window should be flagged new")
	}

	items, err = svc.ListTopics(context.Background(), &domain.User{ID: "u2"}, ForumListInput{})
	if err != nil {
		t.Fatalf("ListTopics failed: %v", err)
	}
	if items[0].IsMine {
		t.Error("another member's topic must not be flagged mine")
	}
}

func TestCreateTopic(t *testing.T) {
	now := int64(1_700_000_000_000)
	repo := newFakeForumRepo()
	svc := newForumService(repo, now)
	email := "jane.doe@example.com"
	author := &domain.User{ID: "u1", Email: &email}

	post, err := svc.CreateTopic(context.Background(), author, TopicCreateInput{
		Category: "general",
		Title:    "  First post  ",
		Text:     "hello",
	})
	if err != nil {
		t.Fatalf("CreateTopic failed: %v", err)
	}
	if post.Title == nil || *post.Title != "First post" {
		t.Errorf("title not trimmed: %v", post.Title)
	}
	if post.AuthorName != "jane.doe" {
		t.Errorf("authorName = %q, want the email local part", post.AuthorName)
	}
	if post.CreatedAt != now || post.UpdatedAt != now {
		t.Errorf("timestamps = %d/%d, want %d", post.CreatedAt, post.UpdatedAt, now)
	}
	if !post.IsTopic() {
		t.Error("created post should be a topic")
	}
}

func TestCreateTopicValidation(t *testing.T) {
	svc := newForumService(newFakeForumRepo(), 1_700_000_000_000)
	author := &domain.User{ID: "u1"}
	longTitle := strings.Repeat("x", forumMaxTitleLen+1)
	longBody := strings.Repeat("x", forumMaxBodyLen+1)

	bad := []TopicCreateInput{
		{Category: "general", Title: "", Text: "body"},
		{Category: "general", Title: longTitle, Text: "body"},
		{Category: "general", Title: "t", Text: ""},
		{Category: "general", Title: "t", Text: longBody},
		{Category: "", Title: "t", Text: "body"},
	}
	for i, input := range bad {
		if _, err := svc.CreateTopic(context.Background(), author, input); err == nil {
			t.Errorf("case %d should fail validation", i)
		}
	}
}

func TestCreateReply(t *testing.T) {
	now := int64(1_700_000_000_000)
	repo := newFakeForumRepo()
	repo.add(topicPost("t1", "u1", now-dayMs))
	svc := newForumService(repo, now)

	reply, err := svc.CreateReply(context.Background(), &domain.User{ID: "u2"}, "t1", "me too")
	if err != nil {
		t.Fatalf("CreateReply failed: %v", err)
	}
	if reply.ParentID == nil || *reply.ParentID != "t1" {
		t.Errorf("parentID = %v, want t1", reply.ParentID)
	}
	if repo.touched["t1"] != now {
		t.Errorf("topic updatedAt = %d, want bumped to %d", repo.touched["t1"], now)
	}

	// replies cannot nest
	if _, err := svc.CreateReply(context.Background(), &domain.User{ID: "u3"}, reply.ID, "nested"); err == nil {
		t.Error("replying to a reply should be rejected")
	}
}

func TestDeletePost(t *testing.T) {
	now := int64(1_700_000_000_000)

	setup := func() (*fakeForumRepo, *ForumService) {
		repo := newFakeForumRepo()
		repo.add(topicPost("t1", "owner", now-dayMs))
		return repo, newForumService(repo, now)
	}

	repo, svc := setup()
	if err := svc.Delete(context.Background(), &domain.User{ID: "owner"}, "t1"); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if len(repo.deleted) != 1 {
		t.Error("post should be deleted")
	}

	_, svc = setup()
	err := svc.Delete(context.Background(), &domain.User{ID: "stranger"}, "t1")
	assertDomainCode(t, err, "FORBIDDEN")

	_, svc = setup()
	if err := svc.Delete(context.Background(), &domain.User{ID: "mod", Role: "moderator"}, "t1"); err != nil {
		t.Fatalf("moderator delete failed: %v", err)
	}
}

func TestTogglePinRequiresModerator(t *testing.T) {
	now := int64(1_700_000_000_000)
	repo := newFakeForumRepo()
	repo.add(topicPost("t1", "u1", now-dayMs))
	svc := newForumService(repo, now)

	err := svc.TogglePin(context.Background(), &domain.User{ID: "u1"}, "t1")
	assertDomainCode(t, err, "FORBIDDEN")

	if err := svc.TogglePin(context.Background(), &domain.User{ID: "m1", Role: "moderator"}, "t1"); err != nil {
		t.Fatalf("TogglePin failed: %v", err)
	}
	if !repo.posts["t1"].IsPinned {
		t.Error("topic should be pinned")
	}
}
