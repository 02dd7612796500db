package export

import (
	"encoding/json"
	"fmt"

	"github.com/planvida/planvida-backend/internal/domain"
)

// Backup serializes the plan as an indented JSON snapshot suitable for a
// lossless restore
func Backup(plan *domain.YearPlan) ([]byte, error) {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal backup: %w", err)
	}
	return data, nil
}

// ImportBackup parses a snapshot produced by Backup and validates its
// structure as a whole before returning it. Anything short of a year number
// and twelve months numbered 1 through 12 is rejected.
func ImportBackup(data []byte) (*domain.YearPlan, error) {
	var plan domain.YearPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidBackup, err)
	}
	if plan.Year == 0 {
		return nil, fmt.Errorf("%w: missing year", domain.ErrInvalidBackup)
	}
	if len(plan.Months) != 12 {
		return nil, fmt.Errorf("%w: expected 12 months, got %d", domain.ErrInvalidBackup, len(plan.Months))
	}
	for i, month := range plan.Months {
		if month.ID != i+1 {
			return nil, fmt.Errorf("%w: month %d out of order", domain.ErrInvalidBackup, month.ID)
		}
	}
	return &plan, nil
}
