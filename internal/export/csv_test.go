package export

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/planvida/planvida-backend/internal/domain"
)

func planWithGoal(t *testing.T, monthID int, goal *domain.Goal) *domain.YearPlan {
	t.Helper()
	plan := domain.NewEmptyYearPlan(2026)
	month := plan.FindMonth(monthID)
	if month == nil {
		t.Fatalf("month %d not found", monthID)
	}
	month.Goals = append(month.Goals, goal)
	return plan
}

func TestYearCSV_OneRowPerGoal(t *testing.T) {
	plan := planWithGoal(t, 3, &domain.Goal{
		ID:           domain.NewGoalID(),
		Title:        "Emergency fund",
		Type:         domain.GoalTypeSavings,
		TargetValue:  decimal.NewFromInt(1000),
		CurrentValue: decimal.NewFromInt(400),
		Status:       domain.GoalStatusPartial,
		CreatedAt:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})

	out := YearCSV(plan)
	lines := strings.Split(strings.TrimSpace(out), "\n")

	if len(lines) != 2 {
		t.Fatalf("Expected header plus one row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Month,Year,Title,Type") {
		t.Errorf("Unexpected header: %s", lines[0])
	}
	row := lines[1]
	for _, want := range []string{"March", "2026", "Emergency fund", "savings", "1000", "400", "40", "partial"} {
		if !strings.Contains(row, want) {
			t.Errorf("Row missing %q: %s", want, row)
		}
	}
}

func TestYearCSV_LineItemsJoined(t *testing.T) {
	plan := planWithGoal(t, 1, &domain.Goal{
		ID:          domain.NewGoalID(),
		Title:       "Trip",
		Type:        domain.GoalTypeTravel,
		TargetValue: decimal.NewFromInt(2000),
		Status:      domain.GoalStatusPending,
		CreatedAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Expenses: []domain.ExpenseItem{
			{ID: "1", Name: "Flights", Cost: decimal.NewFromInt(600)},
			{ID: "2", Name: "Hotel", Cost: decimal.NewFromInt(900)},
		},
	})

	out := YearCSV(plan)

	if !strings.Contains(out, "Flights: 600 | Hotel: 900") {
		t.Errorf("Expected joined line items, got:\n%s", out)
	}
}

func TestMonthCSV_OmitsClosedColumn(t *testing.T) {
	plan := planWithGoal(t, 2, &domain.Goal{
		ID:        domain.NewGoalID(),
		Title:     "Goal",
		Type:      domain.GoalTypeSavings,
		Status:    domain.GoalStatusPending,
		CreatedAt: time.Now(),
	})

	out := MonthCSV(plan.FindMonth(2), plan.Year)

	if strings.Contains(out, "Month Closed") {
		t.Error("Month export must not include the Month Closed column")
	}
	if !strings.Contains(out, "February") {
		t.Errorf("Expected month name in rows:\n%s", out)
	}
}

func TestImportCSV_UpdatesExistingGoalByTitle(t *testing.T) {
	goal := &domain.Goal{
		ID:           domain.NewGoalID(),
		Title:        "Emergency fund",
		Type:         domain.GoalTypeSavings,
		TargetValue:  decimal.NewFromInt(1000),
		CurrentValue: decimal.NewFromInt(100),
		Status:       domain.GoalStatusPartial,
		CreatedAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	plan := planWithGoal(t, 1, goal)

	csv := "Month,Title,Type,Target,Current,Status\n" +
		"January,EMERGENCY FUND,savings,1000,1000,completed\n"

	imported, err := ImportCSV(plan, csv)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	got := imported.FindMonth(1).Goals[0]
	if got.ID != goal.ID {
		t.Error("Title match must preserve the goal id")
	}
	if !got.CreatedAt.Equal(goal.CreatedAt) {
		t.Error("Title match must preserve createdAt")
	}
	if !got.CurrentValue.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Expected currentValue 1000, got %s", got.CurrentValue)
	}
	if got.Status != domain.GoalStatusCompleted {
		t.Errorf("Expected completed, got %s", got.Status)
	}

	// The source plan is untouched
	if !goal.CurrentValue.Equal(decimal.NewFromInt(100)) {
		t.Error("Import must not mutate the source plan")
	}
}

func TestImportCSV_CreatesNewGoals(t *testing.T) {
	plan := domain.NewEmptyYearPlan(2026)

	csv := "Month,Title,Type,Target,Current,Status\n" +
		"April,New laptop,purchase,\"$1,500.00\",200,partial\n"

	imported, err := ImportCSV(plan, csv)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	goals := imported.FindMonth(4).Goals
	if len(goals) != 1 {
		t.Fatalf("Expected one new goal, got %d", len(goals))
	}
	g := goals[0]
	if g.Type != domain.GoalTypePurchase {
		t.Errorf("Expected purchase, got %s", g.Type)
	}
	// Currency formatting is stripped before parsing
	if !g.TargetValue.Equal(decimal.NewFromFloat(1500.00)) {
		t.Errorf("Expected target 1500, got %s", g.TargetValue)
	}
	if g.CarryOver {
		t.Error("Imported goals must not be carry-overs")
	}
}

func TestImportCSV_UnknownValuesFallBack(t *testing.T) {
	plan := domain.NewEmptyYearPlan(2026)

	csv := "Month,Title,Type,Target,Current,Status\n" +
		"Niemand,Mystery,spaceship,abc,xyz,unknown\n"

	imported, err := ImportCSV(plan, csv)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Unknown month resolves to January, unknown type to savings,
	// unknown status to pending, unparseable numbers to zero
	goals := imported.FindMonth(1).Goals
	if len(goals) != 1 {
		t.Fatalf("Expected goal in January, got %d", len(goals))
	}
	g := goals[0]
	if g.Type != domain.GoalTypeSavings {
		t.Errorf("Expected savings fallback, got %s", g.Type)
	}
	if g.Status != domain.GoalStatusPending {
		t.Errorf("Expected pending fallback, got %s", g.Status)
	}
	if !g.TargetValue.IsZero() {
		t.Errorf("Expected zero target, got %s", g.TargetValue)
	}
}

func TestImportCSV_MissingRequiredColumns(t *testing.T) {
	plan := domain.NewEmptyYearPlan(2026)

	_, err := ImportCSV(plan, "Month,Target,Current\nJanuary,100,50\n")
	if err == nil {
		t.Fatal("Expected error for missing Title and Type columns")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	plan := domain.NewEmptyYearPlan(2026)

	if _, err := ImportCSV(plan, ""); err == nil {
		t.Error("Expected error for empty file")
	}
	if _, err := ImportCSV(plan, "Month,Title,Type\n"); err == nil {
		t.Error("Expected error for header-only file")
	}
}

func TestImportCSV_SkipsBlankTitles(t *testing.T) {
	plan := domain.NewEmptyYearPlan(2026)

	csv := "Month,Title,Type,Target,Current,Status\n" +
		"January,,savings,100,0,pending\n" +
		"January,Kept,savings,100,0,pending\n"

	imported, err := ImportCSV(plan, csv)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(imported.FindMonth(1).Goals) != 1 {
		t.Errorf("Expected only the titled row imported, got %d goals", len(imported.FindMonth(1).Goals))
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	plan := planWithGoal(t, 6, &domain.Goal{
		ID:           domain.NewGoalID(),
		Title:        "Round trip",
		Type:         domain.GoalTypeSavings,
		TargetValue:  decimal.NewFromInt(800),
		CurrentValue: decimal.NewFromInt(350),
		Status:       domain.GoalStatusPartial,
		CreatedAt:    time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	})

	out := YearCSV(plan)
	imported, err := ImportCSV(domain.NewEmptyYearPlan(2026), out)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	goals := imported.FindMonth(6).Goals
	if len(goals) != 1 {
		t.Fatalf("Expected goal back in June, got %d", len(goals))
	}
	if goals[0].Title != "Round trip" || !goals[0].CurrentValue.Equal(decimal.NewFromInt(350)) {
		t.Errorf("Round trip lost data: %+v", goals[0])
	}
}
