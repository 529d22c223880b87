package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/glptrack/wellness-service/internal/domain"
)

// FoodRepository defines persistence access for the curated catalog and
// member-owned food items.
type FoodRepository interface {
	ListCatalog(ctx context.Context, activeOnly bool) ([]domain.CatalogFood, error)
	ListCatalogByTab(ctx context.Context, tabID string) ([]domain.CatalogFood, error)
	GetCatalog(ctx context.Context, id string) (*domain.CatalogFood, error)
	CreateCatalog(ctx context.Context, food *domain.CatalogFood) error
	UpdateCatalog(ctx context.Context, food *domain.CatalogFood) error
	DeactivateCatalog(ctx context.Context, id string, updatedAt int64) error
	DeleteCatalog(ctx context.Context, id string) error

	ListUserFoods(ctx context.Context, userID string) ([]domain.UserFood, error)
	GetUserFood(ctx context.Context, id string) (*domain.UserFood, error)
	CreateUserFood(ctx context.Context, food *domain.UserFood) error
	UpdateUserFood(ctx context.Context, food *domain.UserFood) error
	DeleteUserFood(ctx context.Context, id string) error
}

type foodRepository struct {
	pool *pgxpool.Pool
}

// NewFoodRepository returns a Postgres-backed implementation.
func NewFoodRepository(pool *pgxpool.Pool) FoodRepository {
	return &foodRepository{pool: pool}
}

const catalogColumns = `
        id, name, detail, protein, carbs, sugars, fiber, kcal, icon, image_key,
        tab_id, category_name, sort_order, is_active, created_at, updated_at`

func scanCatalogFood(row pgx.Row) (*domain.CatalogFood, error) {
	var f domain.CatalogFood
	if err := row.Scan(
		&f.ID, &f.Name, &f.Detail, &f.Protein, &f.Carbs, &f.Sugars, &f.Fiber, &f.Kcal,
		&f.Icon, &f.ImageKey, &f.TabID, &f.CategoryName, &f.SortOrder, &f.IsActive,
		&f.CreatedAt, &f.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *foodRepository) queryCatalog(ctx context.Context, query string, args ...any) ([]domain.CatalogFood, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var foods []domain.CatalogFood
	for rows.Next() {
		food, err := scanCatalogFood(rows)
		if err != nil {
			return nil, err
		}
		foods = append(foods, *food)
	}
	return foods, rows.Err()
}

func (r *foodRepository) ListCatalog(ctx context.Context, activeOnly bool) ([]domain.CatalogFood, error) {
	query := `SELECT ` + catalogColumns + ` FROM catalog_foods`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY tab_id, category_name, sort_order`
	return r.queryCatalog(ctx, query)
}

func (r *foodRepository) ListCatalogByTab(ctx context.Context, tabID string) ([]domain.CatalogFood, error) {
	query := `SELECT ` + catalogColumns + ` FROM catalog_foods WHERE tab_id=$1 AND is_active ORDER BY category_name, sort_order`
	return r.queryCatalog(ctx, query, tabID)
}

func (r *foodRepository) GetCatalog(ctx context.Context, id string) (*domain.CatalogFood, error) {
	query := `SELECT ` + catalogColumns + ` FROM catalog_foods WHERE id=$1`
	return scanCatalogFood(r.pool.QueryRow(ctx, query, id))
}

func (r *foodRepository) CreateCatalog(ctx context.Context, food *domain.CatalogFood) error {
	const query = `
        INSERT INTO catalog_foods (name, detail, protein, carbs, sugars, fiber, kcal, icon, image_key,
                                   tab_id, category_name, sort_order, is_active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
                COALESCE((SELECT MAX(sort_order)+1 FROM catalog_foods WHERE tab_id=$10 AND category_name=$11), 0),
                TRUE, $12, $12)
        RETURNING id, sort_order`

	return r.pool.QueryRow(ctx, query,
		food.Name, food.Detail, food.Protein, food.Carbs, food.Sugars, food.Fiber, food.Kcal,
		food.Icon, food.ImageKey, food.TabID, food.CategoryName, food.CreatedAt,
	).Scan(&food.ID, &food.SortOrder)
}

func (r *foodRepository) UpdateCatalog(ctx context.Context, food *domain.CatalogFood) error {
	cmd, err := r.pool.Exec(ctx, `
        UPDATE catalog_foods
        SET name=$1, detail=$2, protein=$3, carbs=$4, sugars=$5, fiber=$6, kcal=$7, icon=$8,
            image_key=$9, tab_id=$10, category_name=$11, sort_order=$12, is_active=$13, updated_at=$14
        WHERE id=$15`,
		food.Name, food.Detail, food.Protein, food.Carbs, food.Sugars, food.Fiber, food.Kcal,
		food.Icon, food.ImageKey, food.TabID, food.CategoryName, food.SortOrder, food.IsActive,
		food.UpdatedAt, food.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeactivateCatalog soft-deletes an item so past nutrition records keep
// resolving it.
func (r *foodRepository) DeactivateCatalog(ctx context.Context, id string, updatedAt int64) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE catalog_foods SET is_active=FALSE, updated_at=$1 WHERE id=$2`, updatedAt, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *foodRepository) DeleteCatalog(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM catalog_foods WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const userFoodColumns = `id, user_id, name, detail, protein, carbs, sugars, fiber, kcal, icon, image_key, created_at`

func scanUserFood(row pgx.Row) (*domain.UserFood, error) {
	var f domain.UserFood
	if err := row.Scan(
		&f.ID, &f.UserID, &f.Name, &f.Detail, &f.Protein, &f.Carbs, &f.Sugars,
		&f.Fiber, &f.Kcal, &f.Icon, &f.ImageKey, &f.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *foodRepository) ListUserFoods(ctx context.Context, userID string) ([]domain.UserFood, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userFoodColumns+` FROM user_foods WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var foods []domain.UserFood
	for rows.Next() {
		food, err := scanUserFood(rows)
		if err != nil {
			return nil, err
		}
		foods = append(foods, *food)
	}
	return foods, rows.Err()
}

func (r *foodRepository) GetUserFood(ctx context.Context, id string) (*domain.UserFood, error) {
	query := `SELECT ` + userFoodColumns + ` FROM user_foods WHERE id=$1`
	return scanUserFood(r.pool.QueryRow(ctx, query, id))
}

func (r *foodRepository) CreateUserFood(ctx context.Context, food *domain.UserFood) error {
	const query = `
        INSERT INTO user_foods (user_id, name, detail, protein, carbs, sugars, fiber, kcal, icon, image_key, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		food.UserID, food.Name, food.Detail, food.Protein, food.Carbs, food.Sugars,
		food.Fiber, food.Kcal, food.Icon, food.ImageKey, food.CreatedAt,
	).Scan(&food.ID)
}

func (r *foodRepository) UpdateUserFood(ctx context.Context, food *domain.UserFood) error {
	cmd, err := r.pool.Exec(ctx, `
        UPDATE user_foods
        SET name=$1, detail=$2, protein=$3, carbs=$4, sugars=$5, fiber=$6, kcal=$7, icon=$8, image_key=$9
        WHERE id=$10`,
		food.Name, food.Detail, food.Protein, food.Carbs, food.Sugars, food.Fiber, food.Kcal,
		food.Icon, food.ImageKey, food.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *foodRepository) DeleteUserFood(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM user_foods WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
