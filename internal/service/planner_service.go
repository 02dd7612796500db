package service

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/planvida/planvida-backend/internal/domain"
	"github.com/planvida/planvida-backend/internal/export"
)

// PlannerService owns the active year plan and all goal mutations. The
// in-memory plan is authoritative for the session; every mutation persists
// best-effort afterwards, so a crash between mutation and save loses that
// mutation. Unresolvable month or goal ids make mutations silent no-ops.
type PlannerService struct {
	repo     domain.YearPlanRepository
	notifier Notifier
	plan     *domain.YearPlan
	loading  bool
}

// NewPlannerService creates a PlannerService with the stored plan for the
// given year, or a fresh twelve-month skeleton when none is stored
func NewPlannerService(repo domain.YearPlanRepository, notifier Notifier, year int) *PlannerService {
	s := &PlannerService{repo: repo, notifier: notifier}
	s.plan = s.loadPlan(year)
	return s
}

// Plan returns the active year plan
func (s *PlannerService) Plan() *domain.YearPlan {
	return s.plan
}

// IsLoading reports whether a year switch is currently fetching from
// storage. While loading the previous plan stays visible.
func (s *PlannerService) IsLoading() bool {
	return s.loading
}

// AddGoalInput holds the input for creating a goal
type AddGoalInput struct {
	Title        string
	Type         domain.GoalType
	TargetValue  decimal.Decimal
	CurrentValue decimal.Decimal

	Destination  *string
	TravelStatus *domain.TravelStatus
	Expenses     []domain.ExpenseItem

	Product        *string
	PurchaseStatus *domain.PurchaseStatus
	PurchaseItems  []domain.ExpenseItem

	IsDistributed bool
	StartMonth    *int
	EndMonth      *int
	MonthlyAmount *decimal.Decimal
}

// AddGoal creates a goal in the given month. Returns nil without mutating
// anything when the month does not exist.
func (s *PlannerService) AddGoal(monthID int, input AddGoalInput) *domain.Goal {
	month := s.plan.FindMonth(monthID)
	if month == nil {
		return nil
	}

	goal := &domain.Goal{
		ID:             domain.NewGoalID(),
		Title:          input.Title,
		Type:           input.Type,
		TargetValue:    input.TargetValue,
		CurrentValue:   input.CurrentValue,
		CarryOver:      false,
		CreatedAt:      time.Now().UTC(),
		Destination:    input.Destination,
		TravelStatus:   input.TravelStatus,
		Expenses:       input.Expenses,
		Product:        input.Product,
		PurchaseStatus: input.PurchaseStatus,
		PurchaseItems:  input.PurchaseItems,
		IsDistributed:  input.IsDistributed,
		StartMonth:     input.StartMonth,
		EndMonth:       input.EndMonth,
		MonthlyAmount:  input.MonthlyAmount,
	}
	goal.Evaluate()

	month.Goals = append(month.Goals, goal)
	s.persist()
	s.notify("goal", "created", goal)
	return goal
}

// DistributedGoalInput holds the input for splitting one target amount
// across a contiguous month range
type DistributedGoalInput struct {
	Title       string
	TotalAmount decimal.Decimal
	StartMonth  int
	EndMonth    int
}

// AddDistributedGoal creates one savings goal per month in the inclusive
// range, each targeting round(total/monthCount). Rounding drift is not
// redistributed, so the targets may sum to slightly more or less than the
// total. An inverted range produces no goals.
func (s *PlannerService) AddDistributedGoal(input DistributedGoalInput) []*domain.Goal {
	monthCount := input.EndMonth - input.StartMonth + 1
	if monthCount <= 0 {
		return nil
	}

	monthlyAmount := input.TotalAmount.DivRound(decimal.NewFromInt(int64(monthCount)), 0)

	var created []*domain.Goal
	for monthID := input.StartMonth; monthID <= input.EndMonth; monthID++ {
		startMonth := input.StartMonth
		endMonth := input.EndMonth
		amount := monthlyAmount
		goal := s.AddGoal(monthID, AddGoalInput{
			Title:         input.Title,
			Type:          domain.GoalTypeSavings,
			TargetValue:   monthlyAmount,
			CurrentValue:  decimal.Zero,
			IsDistributed: true,
			StartMonth:    &startMonth,
			EndMonth:      &endMonth,
			MonthlyAmount: &amount,
		})
		if goal != nil {
			created = append(created, goal)
		}
	}
	return created
}

// GoalUpdate holds a partial goal update. There is deliberately no Status
// field: status is always recomputed from the merged values, so anything a
// caller claims about status is discarded.
type GoalUpdate struct {
	Title        *string
	Type         *domain.GoalType
	TargetValue  *decimal.Decimal
	CurrentValue *decimal.Decimal
	CarryOver    *bool

	Destination  *string
	TravelStatus *domain.TravelStatus
	Expenses     []domain.ExpenseItem

	Product        *string
	PurchaseStatus *domain.PurchaseStatus
	PurchaseItems  []domain.ExpenseItem
}

// UpdateGoal merges the update onto the goal, preserving id and createdAt,
// and recomputes status. The first transition to completed stamps
// completedAt; the stamp is one-way and survives later regressions.
// Returns nil when the month or goal does not exist.
func (s *PlannerService) UpdateGoal(monthID int, goalID string, updates GoalUpdate) *domain.Goal {
	month := s.plan.FindMonth(monthID)
	if month == nil {
		return nil
	}
	goal := month.FindGoal(goalID)
	if goal == nil {
		return nil
	}

	if updates.Title != nil {
		goal.Title = *updates.Title
	}
	if updates.Type != nil {
		goal.Type = *updates.Type
	}
	if updates.TargetValue != nil {
		goal.TargetValue = *updates.TargetValue
	}
	if updates.CurrentValue != nil {
		goal.CurrentValue = *updates.CurrentValue
	}
	if updates.CarryOver != nil {
		goal.CarryOver = *updates.CarryOver
	}
	if updates.Destination != nil {
		goal.Destination = updates.Destination
	}
	if updates.TravelStatus != nil {
		goal.TravelStatus = updates.TravelStatus
	}
	if updates.Expenses != nil {
		goal.Expenses = updates.Expenses
	}
	if updates.Product != nil {
		goal.Product = updates.Product
	}
	if updates.PurchaseStatus != nil {
		goal.PurchaseStatus = updates.PurchaseStatus
	}
	if updates.PurchaseItems != nil {
		goal.PurchaseItems = updates.PurchaseItems
	}

	goal.Evaluate()
	if goal.Status == domain.GoalStatusCompleted && goal.CompletedAt == nil {
		now := time.Now().UTC()
		goal.CompletedAt = &now
	}

	s.persist()
	s.notify("goal", "updated", goal)
	return goal
}

// DeleteGoal removes the goal. Carry-over copies in later months are
// independent objects and are not touched. No-op when not found.
func (s *PlannerService) DeleteGoal(monthID int, goalID string) {
	month := s.plan.FindMonth(monthID)
	if month == nil {
		return
	}

	for i, g := range month.Goals {
		if g.ID == goalID {
			month.Goals = append(month.Goals[:i], month.Goals[i+1:]...)
			s.persist()
			s.notify("goal", "deleted", g)
			return
		}
	}
}

// CloseMonth re-evaluates every goal in the month, force-marks incomplete
// ones not_completed, carries each of them into the next month as a fresh
// independent goal, and marks the month closed. Closing the last month of
// the year or an unknown month is a no-op: there is no successor to carry
// into.
func (s *PlannerService) CloseMonth(monthID int) {
	idx := -1
	for i, m := range s.plan.Months {
		if m.ID == monthID {
			idx = i
			break
		}
	}
	if idx == -1 || idx == len(s.plan.Months)-1 {
		return
	}

	current := s.plan.Months[idx]
	next := s.plan.Months[idx+1]

	for _, goal := range current.Goals {
		goal.Evaluate()
	}

	for _, goal := range current.Goals {
		if goal.Status != domain.GoalStatusPending && goal.Status != domain.GoalStatusPartial {
			continue
		}

		// The historical record keeps the goal as not completed in this
		// month, distinct from goals that were deleted.
		goal.Status = domain.GoalStatusNotCompleted

		carried := goal.Clone()
		carried.ID = domain.NewGoalID()
		carried.CarryOver = true
		carried.CreatedAt = time.Now().UTC()
		carried.CompletedAt = nil
		carried.Evaluate()
		next.Goals = append(next.Goals, carried)
	}

	current.IsClosed = true
	s.persist()
	s.notify("month", "closed", current)
}

// ReopenMonth clears the closed flag so current-month data can be
// corrected. Carry-over copies already created in the next month stay;
// reopening does not undo propagation.
func (s *PlannerService) ReopenMonth(monthID int) {
	month := s.plan.FindMonth(monthID)
	if month == nil {
		return
	}
	month.IsClosed = false
	s.persist()
	s.notify("month", "reopened", month)
}

// ChangeYear swaps the active plan for the stored plan of the given year,
// or a fresh skeleton when storage has nothing for it
func (s *PlannerService) ChangeYear(year int) {
	s.loading = true
	s.plan = s.loadPlan(year)
	s.loading = false
	s.notify("yearplan", "changed", s.plan)
}

// ResetYear replaces the active plan with an empty skeleton for the same
// year
func (s *PlannerService) ResetYear() {
	s.plan = domain.NewEmptyYearPlan(s.plan.Year)
	s.persist()
	s.notify("yearplan", "reset", s.plan)
}

// GoalsByType returns all goals of the given type across the year
func (s *PlannerService) GoalsByType(goalType domain.GoalType) []*domain.Goal {
	return s.plan.GoalsByType(goalType)
}

// MonthSummary summarizes one month's goals. An unknown month summarizes
// as empty.
func (s *PlannerService) MonthSummary(monthID int) domain.MonthSummary {
	month := s.plan.FindMonth(monthID)
	if month == nil {
		return domain.SummarizeGoals(nil)
	}
	return month.Summary()
}

// YearSummary summarizes every goal in the year with the same tiering as
// single months
func (s *PlannerService) YearSummary() domain.MonthSummary {
	return domain.SummarizeGoals(s.plan.AllGoals())
}

// MonthlySavingsTotal sums currentValue over the month's savings goals
func (s *PlannerService) MonthlySavingsTotal(monthID int) decimal.Decimal {
	month := s.plan.FindMonth(monthID)
	if month == nil {
		return decimal.Zero
	}

	total := decimal.Zero
	for _, g := range month.Goals {
		if g.Type == domain.GoalTypeSavings {
			total = total.Add(g.CurrentValue)
		}
	}
	return total
}

// ListPlans returns every stored year plan
func (s *PlannerService) ListPlans() ([]*domain.YearPlan, error) {
	return s.repo.LoadAll()
}

// DeleteYear removes a stored year plan. Deleting the active year does not
// reset the in-memory plan; it stays authoritative for the session.
func (s *PlannerService) DeleteYear(year int) error {
	return s.repo.Delete(year)
}

// ImportCSV applies a CSV export onto a copy of the active plan and swaps
// it in only when the whole file parses. A malformed file leaves the plan
// untouched and returns a descriptive error.
func (s *PlannerService) ImportCSV(data string) error {
	imported, err := export.ImportCSV(s.plan, data)
	if err != nil {
		return err
	}
	s.plan = imported
	s.persist()
	s.notify("yearplan", "imported", s.plan)
	return nil
}

// RestoreBackup replaces the active plan with a previously exported
// snapshot after validating it as a whole
func (s *PlannerService) RestoreBackup(data []byte) error {
	plan, err := export.ImportBackup(data)
	if err != nil {
		return err
	}
	s.plan = plan
	s.persist()
	s.notify("yearplan", "restored", s.plan)
	return nil
}

func (s *PlannerService) loadPlan(year int) *domain.YearPlan {
	stored, err := s.repo.Load(year)
	if err != nil {
		if !errors.Is(err, domain.ErrYearPlanNotFound) {
			log.Error().Err(err).Int("year", year).Msg("Failed to load year plan")
		}
		return domain.NewEmptyYearPlan(year)
	}
	if stored.Year != year {
		return domain.NewEmptyYearPlan(year)
	}
	return stored
}

// persist saves best-effort: the in-memory plan stays authoritative and a
// failed save is logged, never returned to the caller
func (s *PlannerService) persist() {
	if err := s.repo.Save(s.plan); err != nil {
		log.Warn().Err(err).Int("year", s.plan.Year).Msg("Failed to save year plan")
	}
}

func (s *PlannerService) notify(entity, action string, payload interface{}) {
	if s.notifier != nil {
		s.notifier.Publish(entity, action, payload)
	}
}
