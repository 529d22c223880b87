package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/glptrack/wellness-service/internal/domain"
)

// ContentRepository defines persistence access for the editorial content
// trees. Every method is scoped to a section; the trees never mix.
type ContentRepository interface {
	ListCategories(ctx context.Context, section domain.ContentSection) ([]domain.ContentCategory, error)
	CreateCategory(ctx context.Context, category *domain.ContentCategory) error
	UpdateCategory(ctx context.Context, category *domain.ContentCategory) error
	DeleteCategory(ctx context.Context, section domain.ContentSection, id string) error
	ReorderCategories(ctx context.Context, section domain.ContentSection, orderedIDs []string, updatedAt int64) error

	ListTopics(ctx context.Context, categoryID string) ([]domain.ContentTopic, error)
	GetTopic(ctx context.Context, id string) (*domain.ContentTopic, error)
	CreateTopic(ctx context.Context, topic *domain.ContentTopic) error
	UpdateTopic(ctx context.Context, topic *domain.ContentTopic) error
	DeleteTopic(ctx context.Context, id string) error

	ListArticles(ctx context.Context, topicID string) ([]domain.ContentArticle, error)
	GetArticle(ctx context.Context, id string) (*domain.ContentArticle, error)
	CreateArticle(ctx context.Context, article *domain.ContentArticle) error
	UpdateArticle(ctx context.Context, article *domain.ContentArticle) error
	DeleteArticle(ctx context.Context, id string) error
	NextArticleOrder(ctx context.Context, topicID string) (int, error)
}

type contentRepository struct {
	pool *pgxpool.Pool
}

// NewContentRepository returns a Postgres-backed implementation.
func NewContentRepository(pool *pgxpool.Pool) ContentRepository {
	return &contentRepository{pool: pool}
}

func (r *contentRepository) ListCategories(ctx context.Context, section domain.ContentSection) ([]domain.ContentCategory, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, section, name, description, icon, color, sort_order, created_at, updated_at
        FROM content_categories WHERE section=$1 ORDER BY sort_order ASC`, string(section))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.ContentCategory
	for rows.Next() {
		var c domain.ContentCategory
		if err := rows.Scan(&c.ID, &c.Section, &c.Name, &c.Description, &c.Icon, &c.Color,
			&c.SortOrder, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *contentRepository) CreateCategory(ctx context.Context, category *domain.ContentCategory) error {
	const query = `
        INSERT INTO content_categories (section, name, description, icon, color, sort_order, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5,
                COALESCE((SELECT MAX(sort_order)+1 FROM content_categories WHERE section=$1), 0),
                $6, $6)
        RETURNING id, sort_order`

	return r.pool.QueryRow(ctx, query,
		string(category.Section),
		category.Name,
		category.Description,
		category.Icon,
		category.Color,
		category.CreatedAt,
	).Scan(&category.ID, &category.SortOrder)
}

func (r *contentRepository) UpdateCategory(ctx context.Context, category *domain.ContentCategory) error {
	cmd, err := r.pool.Exec(ctx, `
        UPDATE content_categories
        SET name=$1, description=$2, icon=$3, color=$4, updated_at=$5
        WHERE id=$6 AND section=$7`,
		category.Name, category.Description, category.Icon, category.Color,
		category.UpdatedAt, category.ID, string(category.Section))
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeleteCategory removes a category; topics and articles cascade.
func (r *contentRepository) DeleteCategory(ctx context.Context, section domain.ContentSection, id string) error {
	cmd, err := r.pool.Exec(ctx,
		`DELETE FROM content_categories WHERE id=$1 AND section=$2`, id, string(section))
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *contentRepository) ReorderCategories(ctx context.Context, section domain.ContentSection, orderedIDs []string, updatedAt int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	for position, id := range orderedIDs {
		if _, err := tx.Exec(ctx, `
            UPDATE content_categories SET sort_order=$1, updated_at=$2 WHERE id=$3 AND section=$4`,
			position, updatedAt, id, string(section)); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *contentRepository) ListTopics(ctx context.Context, categoryID string) ([]domain.ContentTopic, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, category_id, name, description, sort_order, created_at, updated_at
        FROM content_topics WHERE category_id=$1 ORDER BY sort_order ASC`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []domain.ContentTopic
	for rows.Next() {
		var t domain.ContentTopic
		if err := rows.Scan(&t.ID, &t.CategoryID, &t.Name, &t.Description,
			&t.SortOrder, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

func (r *contentRepository) GetTopic(ctx context.Context, id string) (*domain.ContentTopic, error) {
	var t domain.ContentTopic
	err := r.pool.QueryRow(ctx, `
        SELECT id, category_id, name, description, sort_order, created_at, updated_at
        FROM content_topics WHERE id=$1`, id).
		Scan(&t.ID, &t.CategoryID, &t.Name, &t.Description, &t.SortOrder, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *contentRepository) CreateTopic(ctx context.Context, topic *domain.ContentTopic) error {
	const query = `
        INSERT INTO content_topics (category_id, name, description, sort_order, created_at, updated_at)
        VALUES ($1, $2, $3,
                COALESCE((SELECT MAX(sort_order)+1 FROM content_topics WHERE category_id=$1), 0),
                $4, $4)
        RETURNING id, sort_order`

	return r.pool.QueryRow(ctx, query,
		topic.CategoryID,
		topic.Name,
		topic.Description,
		topic.CreatedAt,
	).Scan(&topic.ID, &topic.SortOrder)
}

func (r *contentRepository) UpdateTopic(ctx context.Context, topic *domain.ContentTopic) error {
	cmd, err := r.pool.Exec(ctx, `
        UPDATE content_topics SET name=$1, description=$2, updated_at=$3 WHERE id=$4`,
		topic.Name, topic.Description, topic.UpdatedAt, topic.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *contentRepository) DeleteTopic(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM content_topics WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const articleColumns = `id, topic_id, title, content, summary, sort_order, is_premium, images, created_at, updated_at`

func scanArticle(row pgx.Row) (*domain.ContentArticle, error) {
	var a domain.ContentArticle
	if err := row.Scan(&a.ID, &a.TopicID, &a.Title, &a.Content, &a.Summary,
		&a.SortOrder, &a.IsPremium, &a.Images, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *contentRepository) ListArticles(ctx context.Context, topicID string) ([]domain.ContentArticle, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+articleColumns+` FROM content_articles WHERE topic_id=$1 ORDER BY sort_order ASC`, topicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []domain.ContentArticle
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *article)
	}
	return articles, rows.Err()
}

func (r *contentRepository) GetArticle(ctx context.Context, id string) (*domain.ContentArticle, error) {
	query := `SELECT ` + articleColumns + ` FROM content_articles WHERE id=$1`
	return scanArticle(r.pool.QueryRow(ctx, query, id))
}

func (r *contentRepository) CreateArticle(ctx context.Context, article *domain.ContentArticle) error {
	const query = `
        INSERT INTO content_articles (topic_id, title, content, summary, sort_order, is_premium, images, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		article.TopicID,
		article.Title,
		article.Content,
		article.Summary,
		article.SortOrder,
		article.IsPremium,
		article.Images,
		article.CreatedAt,
	).Scan(&article.ID)
}

func (r *contentRepository) UpdateArticle(ctx context.Context, article *domain.ContentArticle) error {
	cmd, err := r.pool.Exec(ctx, `
        UPDATE content_articles
        SET title=$1, content=$2, summary=$3, sort_order=$4, is_premium=$5, images=$6, updated_at=$7
        WHERE id=$8`,
		article.Title, article.Content, article.Summary, article.SortOrder,
		article.IsPremium, article.Images, article.UpdatedAt, article.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *contentRepository) DeleteArticle(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM content_articles WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *contentRepository) NextArticleOrder(ctx context.Context, topicID string) (int, error) {
	var next int
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(sort_order)+1, 0) FROM content_articles WHERE topic_id=$1`, topicID).Scan(&next)
	if err != nil {
		return 0, err
	}
	return next, nil
}
