package export

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/planvida/planvida-backend/internal/domain"
)

func TestBackupRoundTrip(t *testing.T) {
	plan := domain.NewEmptyYearPlan(2026)
	plan.FindMonth(5).Goals = append(plan.FindMonth(5).Goals, &domain.Goal{
		ID:           domain.NewGoalID(),
		Title:        "Vacation",
		Type:         domain.GoalTypeTravel,
		TargetValue:  decimal.NewFromInt(3000),
		CurrentValue: decimal.NewFromInt(1200),
		Status:       domain.GoalStatusPartial,
		CreatedAt:    time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
	})
	plan.FindMonth(5).IsClosed = true

	data, err := Backup(plan)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	restored, err := ImportBackup(data)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if restored.Year != 2026 {
		t.Errorf("Expected year 2026, got %d", restored.Year)
	}
	month := restored.FindMonth(5)
	if !month.IsClosed {
		t.Error("Expected month to stay closed")
	}
	if len(month.Goals) != 1 {
		t.Fatalf("Expected one goal, got %d", len(month.Goals))
	}
	g := month.Goals[0]
	if g.Title != "Vacation" || !g.CurrentValue.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("Goal lost data: %+v", g)
	}
}

func TestImportBackup_RejectsMalformedJSON(t *testing.T) {
	_, err := ImportBackup([]byte("{not json"))
	if !errors.Is(err, domain.ErrInvalidBackup) {
		t.Errorf("Expected ErrInvalidBackup, got %v", err)
	}
}

func TestImportBackup_RejectsMissingYear(t *testing.T) {
	plan := domain.NewEmptyYearPlan(0)
	data, _ := Backup(plan)

	_, err := ImportBackup(data)
	if !errors.Is(err, domain.ErrInvalidBackup) {
		t.Errorf("Expected ErrInvalidBackup for year 0, got %v", err)
	}
}

func TestImportBackup_RejectsWrongMonthCount(t *testing.T) {
	plan := domain.NewEmptyYearPlan(2026)
	plan.Months = plan.Months[:11]
	data, _ := Backup(plan)

	_, err := ImportBackup(data)
	if !errors.Is(err, domain.ErrInvalidBackup) {
		t.Errorf("Expected ErrInvalidBackup for 11 months, got %v", err)
	}
}

func TestImportBackup_RejectsOutOfOrderMonths(t *testing.T) {
	plan := domain.NewEmptyYearPlan(2026)
	plan.Months[0], plan.Months[1] = plan.Months[1], plan.Months[0]
	data, _ := Backup(plan)

	_, err := ImportBackup(data)
	if !errors.Is(err, domain.ErrInvalidBackup) {
		t.Errorf("Expected ErrInvalidBackup for reordered months, got %v", err)
	}
}
