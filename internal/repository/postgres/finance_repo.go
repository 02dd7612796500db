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

type FinanceRepository struct {
	pool *pgxpool.Pool
}

func NewFinanceRepository(pool *pgxpool.Pool) *FinanceRepository {
	return &FinanceRepository{pool: pool}
}

func (r *FinanceRepository) Load(year int) (*domain.FinancialData, error) {
	var data []byte
	err := r.pool.QueryRow(context.Background(),
		`SELECT data FROM financial_data WHERE year = $1`, year).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrFinanceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load financial data %d: %w", year, err)
	}

	var fin domain.FinancialData
	if err := json.Unmarshal(data, &fin); err != nil {
		return nil, fmt.Errorf("decode financial data %d: %w", year, err)
	}
	return &fin, nil
}

func (r *FinanceRepository) Save(fin *domain.FinancialData) error {
	data, err := json.Marshal(fin)
	if err != nil {
		return fmt.Errorf("encode financial data %d: %w", fin.Year, err)
	}

	_, err = r.pool.Exec(context.Background(),
		`INSERT INTO financial_data (year, data, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (year) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		fin.Year, data)
	if err != nil {
		return fmt.Errorf("save financial data %d: %w", fin.Year, err)
	}
	return nil
}

func (r *FinanceRepository) Delete(year int) error {
	_, err := r.pool.Exec(context.Background(),
		`DELETE FROM financial_data WHERE year = $1`, year)
	if err != nil {
		return fmt.Errorf("delete financial data %d: %w", year, err)
	}
	return nil
}
