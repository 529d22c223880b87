package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/glptrack/wellness-service/internal/domain"
)

// TopicFilter narrows topic listings.
type TopicFilter struct {
	Category     string
	CreatedAfter int64
	PinnedOnly   bool
	AuthorID     string
	OrderUpdated bool
	Limit        int
}

// ForumPostView is a post plus the aggregates the forum surface needs.
type ForumPostView struct {
	domain.ForumPost
	ReplyCount int
	LikeCount  int
	LikedByMe  bool
}

// ForumRepository defines persistence access for forum posts.
type ForumRepository interface {
	ListTopics(ctx context.Context, viewerID string, filter TopicFilter) ([]ForumPostView, error)
	GetPost(ctx context.Context, viewerID, id string) (*ForumPostView, error)
	ListReplies(ctx context.Context, viewerID, topicID string) ([]ForumPostView, error)
	Create(ctx context.Context, post *domain.ForumPost) error
	TouchTopic(ctx context.Context, topicID string, updatedAt int64) error
	Delete(ctx context.Context, id string) error
	TogglePin(ctx context.Context, topicID string) error
	IncrementViews(ctx context.Context, topicID string) error
	ToggleLike(ctx context.Context, postID, userID string) (liked bool, count int, err error)
}

type forumRepository struct {
	pool *pgxpool.Pool
}

// NewForumRepository returns a Postgres-backed implementation.
func NewForumRepository(pool *pgxpool.Pool) ForumRepository {
	return &forumRepository{pool: pool}
}

const forumViewColumns = `
        p.id, p.user_id, p.author_name, p.category, p.title, p.body, p.parent_id,
        p.is_pinned, p.views, p.created_at, p.updated_at,
        (SELECT COUNT(*) FROM forum_posts r WHERE r.parent_id = p.id) AS reply_count,
        (SELECT COUNT(*) FROM forum_post_likes l WHERE l.post_id = p.id) AS like_count,
        EXISTS(SELECT 1 FROM forum_post_likes l WHERE l.post_id = p.id AND l.user_id = $1) AS liked_by_me`

func scanForumView(rows pgx.Row) (*ForumPostView, error) {
	var view ForumPostView
	if err := rows.Scan(
		&view.ID, &view.UserID, &view.AuthorName, &view.Category, &view.Title, &view.Text,
		&view.ParentID, &view.IsPinned, &view.Views, &view.CreatedAt, &view.UpdatedAt,
		&view.ReplyCount, &view.LikeCount, &view.LikedByMe,
	); err != nil {
		return nil, err
	}
	return &view, nil
}

func (r *forumRepository) ListTopics(ctx context.Context, viewerID string, filter TopicFilter) ([]ForumPostView, error) {
	conditions := []string{"p.parent_id IS NULL"}
	args := []any{viewerID}

	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("p.category=$%d", len(args)))
	}
	if filter.CreatedAfter > 0 {
		args = append(args, filter.CreatedAfter)
		conditions = append(conditions, fmt.Sprintf("p.created_at > $%d", len(args)))
	}
	if filter.PinnedOnly {
		conditions = append(conditions, "p.is_pinned")
	}
	if filter.AuthorID != "" {
		args = append(args, filter.AuthorID)
		conditions = append(conditions, fmt.Sprintf("p.user_id=$%d", len(args)))
	}

	order := "p.created_at DESC"
	if filter.OrderUpdated {
		order = "p.updated_at DESC"
	}

	query := fmt.Sprintf(`SELECT %s FROM forum_posts p WHERE %s ORDER BY %s`,
		forumViewColumns, strings.Join(conditions, " AND "), order)
	if filter.Limit > 0 {
		query = fmt.Sprintf("%s LIMIT %d", query, filter.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []ForumPostView
	for rows.Next() {
		view, err := scanForumView(rows)
		if err != nil {
			return nil, err
		}
		topics = append(topics, *view)
	}
	return topics, rows.Err()
}

func (r *forumRepository) GetPost(ctx context.Context, viewerID, id string) (*ForumPostView, error) {
	query := `SELECT ` + forumViewColumns + ` FROM forum_posts p WHERE p.id=$2`
	return scanForumView(r.pool.QueryRow(ctx, query, viewerID, id))
}

func (r *forumRepository) ListReplies(ctx context.Context, viewerID, topicID string) ([]ForumPostView, error) {
	query := `SELECT ` + forumViewColumns + ` FROM forum_posts p WHERE p.parent_id=$2 ORDER BY p.created_at ASC`

	rows, err := r.pool.Query(ctx, query, viewerID, topicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var replies []ForumPostView
	for rows.Next() {
		view, err := scanForumView(rows)
		if err != nil {
			return nil, err
		}
		replies = append(replies, *view)
	}
	return replies, rows.Err()
}

func (r *forumRepository) Create(ctx context.Context, post *domain.ForumPost) error {
	const query = `
        INSERT INTO forum_posts (user_id, author_name, category, title, body, parent_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		post.UserID,
		post.AuthorName,
		post.Category,
		post.Title,
		post.Text,
		post.ParentID,
		post.CreatedAt,
		post.UpdatedAt,
	).Scan(&post.ID)
}

func (r *forumRepository) TouchTopic(ctx context.Context, topicID string, updatedAt int64) error {
	_, err := r.pool.Exec(ctx, `UPDATE forum_posts SET updated_at=$1 WHERE id=$2`, updatedAt, topicID)
	return err
}

// Delete removes a post; replies and likes cascade at the schema level.
func (r *forumRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM forum_posts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *forumRepository) TogglePin(ctx context.Context, topicID string) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE forum_posts SET is_pinned = NOT is_pinned WHERE id=$1 AND parent_id IS NULL`, topicID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *forumRepository) IncrementViews(ctx context.Context, topicID string) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE forum_posts SET views = views + 1 WHERE id=$1 AND parent_id IS NULL`, topicID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *forumRepository) ToggleLike(ctx context.Context, postID, userID string) (bool, int, error) {
	cmd, err := r.pool.Exec(ctx,
		`INSERT INTO forum_post_likes (post_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		postID, userID)
	if err != nil {
		return false, 0, err
	}

	liked := cmd.RowsAffected() > 0
	if !liked {
		if _, err := r.pool.Exec(ctx,
			`DELETE FROM forum_post_likes WHERE post_id=$1 AND user_id=$2`, postID, userID); err != nil {
			return false, 0, err
		}
	}

	var count int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM forum_post_likes WHERE post_id=$1`, postID).Scan(&count); err != nil {
		return liked, 0, err
	}
	return liked, count, nil
}
