// Package postgres stores year plans and financial data as one JSONB
// document per year. The year aggregate is always loaded and saved whole, so
// a single row per year keeps reads and writes to one round trip.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/planvida/planvida-backend/internal/domain"
)

type YearPlanRepository struct {
	pool *pgxpool.Pool
}

func NewYearPlanRepository(pool *pgxpool.Pool) *YearPlanRepository {
	return &YearPlanRepository{pool: pool}
}

func (r *YearPlanRepository) Load(year int) (*domain.YearPlan, error) {
	var data []byte
	err := r.pool.QueryRow(context.Background(),
		`SELECT data FROM year_plans WHERE year = $1`, year).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrYearPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load year plan %d: %w", year, err)
	}

	var plan domain.YearPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("decode year plan %d: %w", year, err)
	}
	return &plan, nil
}

func (r *YearPlanRepository) Save(plan *domain.YearPlan) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encode year plan %d: %w", plan.Year, err)
	}

	_, err = r.pool.Exec(context.Background(),
		`INSERT INTO year_plans (year, data, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (year) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		plan.Year, data)
	if err != nil {
		return fmt.Errorf("save year plan %d: %w", plan.Year, err)
	}
	return nil
}

func (r *YearPlanRepository) LoadAll() ([]*domain.YearPlan, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT data FROM year_plans ORDER BY year`)
	if err != nil {
		return nil, fmt.Errorf("load year plans: %w", err)
	}
	defer rows.Close()

	var plans []*domain.YearPlan
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan year plan: %w", err)
		}
		var plan domain.YearPlan
		if err := json.Unmarshal(data, &plan); err != nil {
			return nil, fmt.Errorf("decode year plan: %w", err)
		}
		plans = append(plans, &plan)
	}
	return plans, rows.Err()
}

func (r *YearPlanRepository) Delete(year int) error {
	_, err := r.pool.Exec(context.Background(),
		`DELETE FROM year_plans WHERE year = $1`, year)
	if err != nil {
		return fmt.Errorf("delete year plan %d: %w", year, err)
	}
	return nil
}
