package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func goalWithStatus(status GoalStatus) *Goal {
	return &Goal{ID: NewGoalID(), Title: "g", Type: GoalTypeSavings, Status: status}
}

func TestSummarizeGoals_Empty(t *testing.T) {
	summary := SummarizeGoals(nil)

	if summary.TotalGoals != 0 {
		t.Errorf("Expected 0 total goals, got %d", summary.TotalGoals)
	}
	if summary.ProgressPercentage != 0 {
		t.Errorf("Expected 0%%, got %d%%", summary.ProgressPercentage)
	}
	if summary.Evaluation != EvaluationBehind {
		t.Errorf("Expected behind, got %s", summary.Evaluation)
	}
}

func TestSummarizeGoals_PendingCountsEverythingNotCompleted(t *testing.T) {
	goals := []*Goal{
		goalWithStatus(GoalStatusCompleted),
		goalWithStatus(GoalStatusPartial),
		goalWithStatus(GoalStatusPending),
		goalWithStatus(GoalStatusNotCompleted),
	}

	summary := SummarizeGoals(goals)

	if summary.CompletedGoals != 1 {
		t.Errorf("Expected 1 completed, got %d", summary.CompletedGoals)
	}
	// Partial and not_completed goals count as pending: pending is the
	// complement of completed, not the pending status alone
	if summary.PendingGoals != 3 {
		t.Errorf("Expected 3 pending, got %d", summary.PendingGoals)
	}
	if summary.ProgressPercentage != 25 {
		t.Errorf("Expected 25%%, got %d%%", summary.ProgressPercentage)
	}
}

func TestSummarizeGoals_PercentageRounds(t *testing.T) {
	goals := []*Goal{
		goalWithStatus(GoalStatusCompleted),
		goalWithStatus(GoalStatusCompleted),
		goalWithStatus(GoalStatusPending),
	}

	summary := SummarizeGoals(goals)

	// 2/3 rounds to 67
	if summary.ProgressPercentage != 67 {
		t.Errorf("Expected 67%%, got %d%%", summary.ProgressPercentage)
	}
}

func TestEvaluateProgress_Tiers(t *testing.T) {
	tests := []struct {
		percentage int
		want       Evaluation
	}{
		{100, EvaluationMet},
		{80, EvaluationMet},
		{79, EvaluationProgressing},
		{50, EvaluationProgressing},
		{49, EvaluationBehind},
		{0, EvaluationBehind},
	}

	for _, tt := range tests {
		if got := EvaluateProgress(tt.percentage); got != tt.want {
			t.Errorf("EvaluateProgress(%d) = %s, want %s", tt.percentage, got, tt.want)
		}
	}
}

func TestMonthIDByName(t *testing.T) {
	if got := MonthIDByName("March"); got != 3 {
		t.Errorf("Expected 3, got %d", got)
	}
	if got := MonthIDByName("  december "); got != 12 {
		t.Errorf("Expected 12, got %d", got)
	}
	// Unknown names fall back to January
	if got := MonthIDByName("Brumaire"); got != 1 {
		t.Errorf("Expected 1, got %d", got)
	}
}

func TestNewEmptyYearPlan(t *testing.T) {
	plan := NewEmptyYearPlan(2026)

	if plan.Year != 2026 {
		t.Errorf("Expected year 2026, got %d", plan.Year)
	}
	if len(plan.Months) != 12 {
		t.Fatalf("Expected 12 months, got %d", len(plan.Months))
	}
	for i, month := range plan.Months {
		if month.ID != i+1 {
			t.Errorf("Month %d has id %d", i, month.ID)
		}
		if month.Name != MonthNames[i] {
			t.Errorf("Month %d named %q, want %q", i, month.Name, MonthNames[i])
		}
		if month.IsClosed {
			t.Errorf("Month %d starts closed", month.ID)
		}
		if len(month.Goals) != 0 {
			t.Errorf("Month %d starts with goals", month.ID)
		}
	}
}

func TestYearPlanClone_DeepCopy(t *testing.T) {
	plan := NewEmptyYearPlan(2026)
	plan.Months[0].Goals = append(plan.Months[0].Goals, &Goal{
		ID:           NewGoalID(),
		Title:        "Emergency fund",
		Type:         GoalTypeSavings,
		TargetValue:  decimal.NewFromInt(1000),
		CurrentValue: decimal.NewFromInt(100),
	})

	clone := plan.Clone()
	clone.Months[0].Goals[0].Title = "Changed"
	clone.Months[0].IsClosed = true

	if plan.Months[0].Goals[0].Title != "Emergency fund" {
		t.Errorf("Clone mutation leaked into original goal title")
	}
	if plan.Months[0].IsClosed {
		t.Errorf("Clone mutation leaked into original month flag")
	}
}
