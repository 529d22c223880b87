package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/glptrack/wellness-service/internal/domain"
)

// RecordRepository defines persistence access for per-member tracking
// records. Range arguments are epoch milliseconds; zero means unbounded.
type RecordRepository interface {
	ListWeights(ctx context.Context, userID string, from, to int64) ([]domain.WeightRecord, error)
	CreateWeight(ctx context.Context, record *domain.WeightRecord) error
	DeleteWeight(ctx context.Context, userID, id string) error

	ListInjections(ctx context.Context, userID string, from, to int64) ([]domain.InjectionRecord, error)
	CreateInjection(ctx context.Context, record *domain.InjectionRecord) error
	DeleteInjection(ctx context.Context, userID, id string) error

	ListMeasures(ctx context.Context, userID string, from, to int64) ([]domain.MeasureRecord, error)
	CreateMeasure(ctx context.Context, record *domain.MeasureRecord) error
	DeleteMeasure(ctx context.Context, userID, id string) error

	ListMoods(ctx context.Context, userID string, from, to int64) ([]domain.MoodRecord, error)
	CreateMood(ctx context.Context, record *domain.MoodRecord) error
	DeleteMood(ctx context.Context, userID, id string) error

	// Daily records: one row per member per day, upserted in place.
	GetWater(ctx context.Context, userID string, date int64) (*domain.WaterRecord, error)
	UpsertWater(ctx context.Context, record *domain.WaterRecord) error
	UpsertNutrition(ctx context.Context, record *domain.NutritionRecord) error
	GetNutrition(ctx context.Context, userID string, date int64) (*domain.NutritionRecord, error)
	ListNutrition(ctx context.Context, userID string, from, to int64) ([]domain.NutritionRecord, error)

	ListStockItems(ctx context.Context, userID string) ([]domain.StockItem, error)
	GetStockItem(ctx context.Context, id string) (*domain.StockItem, error)
	CreateStockItem(ctx context.Context, item *domain.StockItem) error
	UpdateStockItem(ctx context.Context, item *domain.StockItem) error
	DeleteStockItem(ctx context.Context, userID, id string) error
}

type recordRepository struct {
	pool *pgxpool.Pool
}

// NewRecordRepository returns a Postgres-backed implementation.
func NewRecordRepository(pool *pgxpool.Pool) RecordRepository {
	return &recordRepository{pool: pool}
}

// rangeClause appends date-range conditions for the $2/$3 positions.
const rangeClause = ` AND ($2 = 0 OR date >= $2) AND ($3 = 0 OR date <= $3)`

func (r *recordRepository) ListWeights(ctx context.Context, userID string, from, to int64) ([]domain.WeightRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, date, kg FROM weight_records WHERE user_id=$1`+rangeClause+` ORDER BY date ASC`,
		userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.WeightRecord
	for rows.Next() {
		var rec domain.WeightRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Date, &rec.Kg); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *recordRepository) CreateWeight(ctx context.Context, record *domain.WeightRecord) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO weight_records (user_id, date, kg) VALUES ($1, $2, $3) RETURNING id`,
		record.UserID, record.Date, record.Kg).Scan(&record.ID)
}

func (r *recordRepository) DeleteWeight(ctx context.Context, userID, id string) error {
	return r.deleteOwned(ctx, "weight_records", userID, id)
}

func (r *recordRepository) ListInjections(ctx context.Context, userID string, from, to int64) ([]domain.InjectionRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, date, substance_id, mg, site FROM injection_records WHERE user_id=$1`+rangeClause+` ORDER BY date ASC`,
		userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.InjectionRecord
	for rows.Next() {
		var rec domain.InjectionRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Date, &rec.SubstanceID, &rec.Mg, &rec.Site); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *recordRepository) CreateInjection(ctx context.Context, record *domain.InjectionRecord) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO injection_records (user_id, date, substance_id, mg, site) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		record.UserID, record.Date, record.SubstanceID, record.Mg, record.Site).Scan(&record.ID)
}

func (r *recordRepository) DeleteInjection(ctx context.Context, userID, id string) error {
	return r.deleteOwned(ctx, "injection_records", userID, id)
}

func (r *recordRepository) ListMeasures(ctx context.Context, userID string, from, to int64) ([]domain.MeasureRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, date, neck, chest, waist, hips, thigh, calf, arm
         FROM measure_records WHERE user_id=$1`+rangeClause+` ORDER BY date ASC`,
		userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.MeasureRecord
	for rows.Next() {
		var rec domain.MeasureRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Date, &rec.Neck, &rec.Chest, &rec.Waist,
			&rec.Hips, &rec.Thigh, &rec.Calf, &rec.Arm); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *recordRepository) CreateMeasure(ctx context.Context, record *domain.MeasureRecord) error {
	return r.pool.QueryRow(ctx, `
        INSERT INTO measure_records (user_id, date, neck, chest, waist, hips, thigh, calf, arm)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id`,
		record.UserID, record.Date, record.Neck, record.Chest, record.Waist,
		record.Hips, record.Thigh, record.Calf, record.Arm).Scan(&record.ID)
}

func (r *recordRepository) DeleteMeasure(ctx context.Context, userID, id string) error {
	return r.deleteOwned(ctx, "measure_records", userID, id)
}

func (r *recordRepository) ListMoods(ctx context.Context, userID string, from, to int64) ([]domain.MoodRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, date, rating, side_effects, note, level_at_time
         FROM mood_records WHERE user_id=$1`+rangeClause+` ORDER BY date ASC`,
		userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.MoodRecord
	for rows.Next() {
		var rec domain.MoodRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Date, &rec.Rating, &rec.SideEffects,
			&rec.Note, &rec.LevelAtTime); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *recordRepository) CreateMood(ctx context.Context, record *domain.MoodRecord) error {
	return r.pool.QueryRow(ctx, `
        INSERT INTO mood_records (user_id, date, rating, side_effects, note, level_at_time)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id`,
		record.UserID, record.Date, record.Rating, record.SideEffects,
		record.Note, record.LevelAtTime).Scan(&record.ID)
}

func (r *recordRepository) DeleteMood(ctx context.Context, userID, id string) error {
	return r.deleteOwned(ctx, "mood_records", userID, id)
}

func (r *recordRepository) GetWater(ctx context.Context, userID string, date int64) (*domain.WaterRecord, error) {
	var rec domain.WaterRecord
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, date, glasses FROM water_records WHERE user_id=$1 AND date=$2`,
		userID, date).Scan(&rec.ID, &rec.UserID, &rec.Date, &rec.Glasses)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *recordRepository) UpsertWater(ctx context.Context, record *domain.WaterRecord) error {
	return r.pool.QueryRow(ctx, `
        INSERT INTO water_records (user_id, date, glasses)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id, date) DO UPDATE SET glasses = EXCLUDED.glasses
        RETURNING id`,
		record.UserID, record.Date, record.Glasses).Scan(&record.ID)
}

func (r *recordRepository) UpsertNutrition(ctx context.Context, record *domain.NutritionRecord) error {
	items, err := json.Marshal(record.Items)
	if err != nil {
		return err
	}
	return r.pool.QueryRow(ctx, `
        INSERT INTO nutrition_records (user_id, date, total_grams, total_kcal, total_carbs, total_sugars, total_fiber, items)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (user_id, date) DO UPDATE SET
            total_grams = EXCLUDED.total_grams,
            total_kcal = EXCLUDED.total_kcal,
            total_carbs = EXCLUDED.total_carbs,
            total_sugars = EXCLUDED.total_sugars,
            total_fiber = EXCLUDED.total_fiber,
            items = EXCLUDED.items
        RETURNING id`,
		record.UserID, record.Date, record.TotalGrams, record.TotalKcal, record.TotalCarbs,
		record.TotalSugar, record.TotalFiber, items).Scan(&record.ID)
}

func scanNutrition(row pgx.Row) (*domain.NutritionRecord, error) {
	var rec domain.NutritionRecord
	var items []byte
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.Date, &rec.TotalGrams, &rec.TotalKcal,
		&rec.TotalCarbs, &rec.TotalSugar, &rec.TotalFiber, &items); err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &rec.Items); err != nil {
			return nil, err
		}
	}
	return &rec, nil
}

const nutritionColumns = `id, user_id, date, total_grams, total_kcal, total_carbs, total_sugars, total_fiber, items`

func (r *recordRepository) GetNutrition(ctx context.Context, userID string, date int64) (*domain.NutritionRecord, error) {
	query := `SELECT ` + nutritionColumns + ` FROM nutrition_records WHERE user_id=$1 AND date=$2`
	return scanNutrition(r.pool.QueryRow(ctx, query, userID, date))
}

func (r *recordRepository) ListNutrition(ctx context.Context, userID string, from, to int64) ([]domain.NutritionRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+nutritionColumns+` FROM nutrition_records WHERE user_id=$1`+rangeClause+` ORDER BY date ASC`,
		userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.NutritionRecord
	for rows.Next() {
		rec, err := scanNutrition(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

const stockColumns = `id, user_id, name, substance_id, is_vial, total_mg, current_mg, vial_mg, vial_ml, pen_type, pen_color`

func scanStockItem(row pgx.Row) (*domain.StockItem, error) {
	var item domain.StockItem
	if err := row.Scan(&item.ID, &item.UserID, &item.Name, &item.SubstanceID, &item.IsVial,
		&item.TotalMg, &item.CurrentMg, &item.VialMg, &item.VialMl, &item.PenType, &item.PenColor); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *recordRepository) ListStockItems(ctx context.Context, userID string) ([]domain.StockItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+stockColumns+` FROM stock_items WHERE user_id=$1 ORDER BY name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.StockItem
	for rows.Next() {
		item, err := scanStockItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *recordRepository) GetStockItem(ctx context.Context, id string) (*domain.StockItem, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_items WHERE id=$1`
	return scanStockItem(r.pool.QueryRow(ctx, query, id))
}

func (r *recordRepository) CreateStockItem(ctx context.Context, item *domain.StockItem) error {
	return r.pool.QueryRow(ctx, `
        INSERT INTO stock_items (user_id, name, substance_id, is_vial, total_mg, current_mg, vial_mg, vial_ml, pen_type, pen_color)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id`,
		item.UserID, item.Name, item.SubstanceID, item.IsVial, item.TotalMg, item.CurrentMg,
		item.VialMg, item.VialMl, item.PenType, item.PenColor).Scan(&item.ID)
}

func (r *recordRepository) UpdateStockItem(ctx context.Context, item *domain.StockItem) error {
	cmd, err := r.pool.Exec(ctx, `
        UPDATE stock_items
        SET name=$1, substance_id=$2, is_vial=$3, total_mg=$4, current_mg=$5,
            vial_mg=$6, vial_ml=$7, pen_type=$8, pen_color=$9
        WHERE id=$10 AND user_id=$11`,
		item.Name, item.SubstanceID, item.IsVial, item.TotalMg, item.CurrentMg,
		item.VialMg, item.VialMl, item.PenType, item.PenColor, item.ID, item.UserID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *recordRepository) DeleteStockItem(ctx context.Context, userID, id string) error {
	return r.deleteOwned(ctx, "stock_items", userID, id)
}

// deleteOwned removes a row only when it belongs to the member; a miss on
// either condition surfaces as not found.
func (r *recordRepository) deleteOwned(ctx context.Context, table, userID, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM `+table+` WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
