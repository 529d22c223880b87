package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/glptrack/wellness-service/internal/domain"
)

// settingsKey is the single settings document.
const settingsKey = "global"

// SettingsRepository defines persistence access for the app settings
// singleton.
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.AppSettings, error)
	Upsert(ctx context.Context, settings *domain.AppSettings) error
}

type settingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository returns a Postgres-backed implementation.
func NewSettingsRepository(pool *pgxpool.Pool) SettingsRepository {
	return &settingsRepository{pool: pool}
}

// Get returns the settings document; a missing row yields permissive
// defaults rather than an error.
func (r *settingsRepository) Get(ctx context.Context) (*domain.AppSettings, error) {
	var s domain.AppSettings
	err := r.pool.QueryRow(ctx,
		`SELECT allow_us_mode, allow_peptides, allow_retatrutide, updated_at FROM app_settings WHERE key=$1`,
		settingsKey).Scan(&s.AllowUSMode, &s.AllowPeptides, &s.AllowRetatrutide, &s.UpdatedAt)
	if err == pgx.ErrNoRows {
		return &domain.AppSettings{AllowUSMode: true, AllowPeptides: true, AllowRetatrutide: true}, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, settings *domain.AppSettings) error {
	_, err := r.pool.Exec(ctx, `
        INSERT INTO app_settings (key, allow_us_mode, allow_peptides, allow_retatrutide, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (key) DO UPDATE SET
            allow_us_mode = EXCLUDED.allow_us_mode,
            allow_peptides = EXCLUDED.allow_peptides,
            allow_retatrutide = EXCLUDED.allow_retatrutide,
            updated_at = EXCLUDED.updated_at`,
		settingsKey, settings.AllowUSMode, settings.AllowPeptides, settings.AllowRetatrutide, settings.UpdatedAt)
	return err
}
