package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/glptrack/wellness-service/internal/domain"
)

// ShortcodeRepository defines persistence access for image shortcodes.
type ShortcodeRepository interface {
	Create(ctx context.Context, shortcode *domain.ImageShortcode) error
	GetByCode(ctx context.Context, code string) (*domain.ImageShortcode, error)
	// DeleteByCode removes the mapping and returns the storage key that
	// was behind it, so the caller can garbage-collect the object.
	DeleteByCode(ctx context.Context, code string) (storageKey string, err error)
}

type shortcodeRepository struct {
	pool *pgxpool.Pool
}

// NewShortcodeRepository returns a Postgres-backed implementation.
func NewShortcodeRepository(pool *pgxpool.Pool) ShortcodeRepository {
	return &shortcodeRepository{pool: pool}
}

func (r *shortcodeRepository) Create(ctx context.Context, shortcode *domain.ImageShortcode) error {
	const query = `
        INSERT INTO image_shortcodes (code, storage_key, created_at)
        VALUES ($1, $2, $3)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		shortcode.Code,
		shortcode.StorageKey,
		shortcode.CreatedAt,
	).Scan(&shortcode.ID)
}

func (r *shortcodeRepository) GetByCode(ctx context.Context, code string) (*domain.ImageShortcode, error) {
	var sc domain.ImageShortcode
	err := r.pool.QueryRow(ctx,
		`SELECT id, code, storage_key, created_at FROM image_shortcodes WHERE code=$1`, code).
		Scan(&sc.ID, &sc.Code, &sc.StorageKey, &sc.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

func (r *shortcodeRepository) DeleteByCode(ctx context.Context, code string) (string, error) {
	var storageKey string
	err := r.pool.QueryRow(ctx,
		`DELETE FROM image_shortcodes WHERE code=$1 RETURNING storage_key`, code).Scan(&storageKey)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", pgx.ErrNoRows
		}
		return "", err
	}
	return storageKey, nil
}
