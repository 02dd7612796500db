package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/planvida/planvida-backend/internal/domain"
)

type FinanceRepository struct {
	db *sql.DB
}

func NewFinanceRepository(db *sql.DB) *FinanceRepository {
	return &FinanceRepository{db: db}
}

func (r *FinanceRepository) Load(year int) (*domain.FinancialData, error) {
	var data []byte
	err := r.db.QueryRow(`SELECT data FROM financial_data WHERE year = ?`, year).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
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

	_, err = r.db.Exec(
		`INSERT INTO financial_data (year, data, updated_at)
		 VALUES (?, ?, datetime('now'))
		 ON CONFLICT (year) DO UPDATE SET data = excluded.data, updated_at = datetime('now')`,
		fin.Year, data)
	if err != nil {
		return fmt.Errorf("save financial data %d: %w", fin.Year, err)
	}
	return nil
}

func (r *FinanceRepository) Delete(year int) error {
	_, err := r.db.Exec(`DELETE FROM financial_data WHERE year = ?`, year)
	if err != nil {
		return fmt.Errorf("delete financial data %d: %w", year, err)
	}
	return nil
}
