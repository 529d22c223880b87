package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/glptrack/wellness-service/internal/domain"
)

// NewsRepository defines persistence access for news articles.
type NewsRepository interface {
	List(ctx context.Context) ([]domain.NewsArticle, error)
	Get(ctx context.Context, id string) (*domain.NewsArticle, error)
	Create(ctx context.Context, article *domain.NewsArticle) error
	Update(ctx context.Context, article *domain.NewsArticle) error
	Delete(ctx context.Context, id string) error
	TogglePin(ctx context.Context, id string, updatedAt int64) error
}

type newsRepository struct {
	pool *pgxpool.Pool
}

// NewNewsRepository returns a Postgres-backed implementation.
func NewNewsRepository(pool *pgxpool.Pool) NewsRepository {
	return &newsRepository{pool: pool}
}

const newsColumns = `id, title, content, summary, is_pinned, images, created_at, updated_at`

func scanNews(row pgx.Row) (*domain.NewsArticle, error) {
	var a domain.NewsArticle
	if err := row.Scan(&a.ID, &a.Title, &a.Content, &a.Summary, &a.IsPinned,
		&a.Images, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns all articles, pinned first, then newest first.
func (r *newsRepository) List(ctx context.Context) ([]domain.NewsArticle, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+newsColumns+` FROM news_articles ORDER BY is_pinned DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []domain.NewsArticle
	for rows.Next() {
		article, err := scanNews(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *article)
	}
	return articles, rows.Err()
}

func (r *newsRepository) Get(ctx context.Context, id string) (*domain.NewsArticle, error) {
	query := `SELECT ` + newsColumns + ` FROM news_articles WHERE id=$1`
	return scanNews(r.pool.QueryRow(ctx, query, id))
}

func (r *newsRepository) Create(ctx context.Context, article *domain.NewsArticle) error {
	const query = `
        INSERT INTO news_articles (title, content, summary, is_pinned, images, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $6)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		article.Title,
		article.Content,
		article.Summary,
		article.IsPinned,
		article.Images,
		article.CreatedAt,
	).Scan(&article.ID)
}

func (r *newsRepository) Update(ctx context.Context, article *domain.NewsArticle) error {
	cmd, err := r.pool.Exec(ctx, `
        UPDATE news_articles
        SET title=$1, content=$2, summary=$3, is_pinned=$4, images=$5, updated_at=$6
        WHERE id=$7`,
		article.Title, article.Content, article.Summary, article.IsPinned,
		article.Images, article.UpdatedAt, article.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *newsRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM news_articles WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *newsRepository) TogglePin(ctx context.Context, id string, updatedAt int64) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE news_articles SET is_pinned = NOT is_pinned, updated_at=$1 WHERE id=$2`, updatedAt, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
