package export

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/planvida/planvida-backend/internal/domain"
)

func TestYearReport_RendersGoals(t *testing.T) {
	plan := domain.NewEmptyYearPlan(2026)
	plan.FindMonth(7).Goals = append(plan.FindMonth(7).Goals, &domain.Goal{
		ID:           domain.NewGoalID(),
		Title:        "Summer savings",
		Type:         domain.GoalTypeSavings,
		TargetValue:  decimal.NewFromInt(500),
		CurrentValue: decimal.NewFromInt(500),
		Status:       domain.GoalStatusCompleted,
		CreatedAt:    time.Now(),
	})

	html, err := YearReport(plan)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for _, want := range []string{"2026", "July", "Summer savings"} {
		if !strings.Contains(html, want) {
			t.Errorf("Report missing %q", want)
		}
	}
	// Months without goals are omitted
	if strings.Contains(html, "January") {
		t.Error("Report must skip empty months")
	}
}

func TestYearReport_EscapesGoalTitles(t *testing.T) {
	plan := domain.NewEmptyYearPlan(2026)
	plan.FindMonth(1).Goals = append(plan.FindMonth(1).Goals, &domain.Goal{
		ID:        domain.NewGoalID(),
		Title:     "<script>alert(1)</script>",
		Type:      domain.GoalTypeSavings,
		Status:    domain.GoalStatusPending,
		CreatedAt: time.Now(),
	})

	html, err := YearReport(plan)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if strings.Contains(html, "<script>alert(1)</script>") {
		t.Error("Goal titles must be HTML-escaped")
	}
}
