// Package sqlite mirrors the postgres layout for single-file deployments:
// one TEXT document per year, loaded and saved whole.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/planvida/planvida-backend/internal/domain"
)

// Open returns a connection configured for a single writer, which is all
// this application needs.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`PRAGMA journal_mode = WAL; PRAGMA foreign_keys = ON;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure sqlite database: %w", err)
	}
	return db, nil
}

type YearPlanRepository struct {
	db *sql.DB
}

func NewYearPlanRepository(db *sql.DB) *YearPlanRepository {
	return &YearPlanRepository{db: db}
}

func (r *YearPlanRepository) Load(year int) (*domain.YearPlan, error) {
	var data []byte
	err := r.db.QueryRow(`SELECT data FROM year_plans WHERE year = ?`, year).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
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

	_, err = r.db.Exec(
		`INSERT INTO year_plans (year, data, updated_at)
		 VALUES (?, ?, datetime('now'))
		 ON CONFLICT (year) DO UPDATE SET data = excluded.data, updated_at = datetime('now')`,
		plan.Year, data)
	if err != nil {
		return fmt.Errorf("save year plan %d: %w", plan.Year, err)
	}
	return nil
}

func (r *YearPlanRepository) LoadAll() ([]*domain.YearPlan, error) {
	rows, err := r.db.Query(`SELECT data FROM year_plans ORDER BY year`)
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
	_, err := r.db.Exec(`DELETE FROM year_plans WHERE year = ?`, year)
	if err != nil {
		return fmt.Errorf("delete year plan %d: %w", year, err)
	}
	return nil
}
