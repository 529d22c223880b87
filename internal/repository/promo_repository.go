package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/glptrack/wellness-service/internal/domain"
)

// PromoRepository defines persistence access for promo codes.
type PromoRepository interface {
	Create(ctx context.Context, promo *domain.PromoCode) error
	List(ctx context.Context) ([]domain.PromoCode, error)
	GetByCode(ctx context.Context, code string) (*domain.PromoCode, error)
	// Redeem marks the code used and extends the member's premium window
	// in one transaction. The conditional update on used_by is the
	// at-most-once guard: of two concurrent redemptions exactly one
	// matches the row, the other returns applied=false.
	Redeem(ctx context.Context, promoID, userID string, now, durationMs int64) (premiumUntil int64, applied bool, err error)
}

type promoRepository struct {
	pool *pgxpool.Pool
}

// NewPromoRepository returns a Postgres-backed implementation.
func NewPromoRepository(pool *pgxpool.Pool) PromoRepository {
	return &promoRepository{pool: pool}
}

const promoColumns = `id, code, duration_months, product_id, product_title, created_by, created_at, used_by, used_at`

func scanPromo(row pgx.Row) (*domain.PromoCode, error) {
	var promo domain.PromoCode
	if err := row.Scan(
		&promo.ID, &promo.Code, &promo.DurationMonths, &promo.ProductID, &promo.ProductTitle,
		&promo.CreatedBy, &promo.CreatedAt, &promo.UsedBy, &promo.UsedAt,
	); err != nil {
		return nil, err
	}
	return &promo, nil
}

func (r *promoRepository) Create(ctx context.Context, promo *domain.PromoCode) error {
	const query = `
        INSERT INTO promo_codes (code, duration_months, product_id, product_title, created_by, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		promo.Code,
		promo.DurationMonths,
		promo.ProductID,
		promo.ProductTitle,
		promo.CreatedBy,
		promo.CreatedAt,
	).Scan(&promo.ID)
}

func (r *promoRepository) List(ctx context.Context) ([]domain.PromoCode, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+promoColumns+` FROM promo_codes ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var promos []domain.PromoCode
	for rows.Next() {
		promo, err := scanPromo(rows)
		if err != nil {
			return nil, err
		}
		promos = append(promos, *promo)
	}
	return promos, rows.Err()
}

func (r *promoRepository) GetByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	query := `SELECT ` + promoColumns + ` FROM promo_codes WHERE code=$1`
	return scanPromo(r.pool.QueryRow(ctx, query, code))
}

func (r *promoRepository) Redeem(ctx context.Context, promoID, userID string, now, durationMs int64) (int64, bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, false, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// Lock the member row so concurrent redemptions of different codes by
	// the same member serialize their stacking arithmetic.
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT TRUE FROM users WHERE id=$1 FOR UPDATE`, userID).Scan(&exists); err != nil {
		return 0, false, err
	}

	cmd, err := tx.Exec(ctx,
		`UPDATE promo_codes SET used_by=$1, used_at=$2 WHERE id=$3 AND used_by IS NULL AND used_at IS NULL`,
		userID, now, promoID)
	if err != nil {
		return 0, false, err
	}
	if cmd.RowsAffected() == 0 {
		return 0, false, nil
	}

	// Stacking: extend from the unexpired window when one exists,
	// otherwise from now.
	var premiumUntil int64
	err = tx.QueryRow(ctx, `
        UPDATE users
        SET premium_until = GREATEST(COALESCE(premium_until, 0), $2) + $3,
            is_premium = TRUE,
            updated_at = NOW()
        WHERE id=$1
        RETURNING premium_until`,
		userID, now, durationMs).Scan(&premiumUntil)
	if err != nil {
		return 0, false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, false, err
	}
	return premiumUntil, true, nil
}
