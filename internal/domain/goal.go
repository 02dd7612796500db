package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type GoalType string
type GoalStatus string
type TravelStatus string
type PurchaseStatus string

const (
	GoalTypeSavings  GoalType = "savings"
	GoalTypeTravel   GoalType = "travel"
	GoalTypePurchase GoalType = "purchase"
)

const (
	GoalStatusPending      GoalStatus = "pending"
	GoalStatusPartial      GoalStatus = "partial"
	GoalStatusCompleted    GoalStatus = "completed"
	GoalStatusNotCompleted GoalStatus = "not_completed"
)

const (
	TravelStatusPlanned TravelStatus = "planned"
	TravelStatusBooked  TravelStatus = "booked"
	TravelStatusDone    TravelStatus = "done"
)

const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusPurchased PurchaseStatus = "purchased"
)

// GoalTypeLabels maps goal types to display text
var GoalTypeLabels = map[GoalType]string{
	GoalTypeSavings:  "Savings",
	GoalTypeTravel:   "Travel",
	GoalTypePurchase: "Purchase",
}

// GoalStatusLabels maps goal statuses to display text
var GoalStatusLabels = map[GoalStatus]string{
	GoalStatusPending:      "Pending",
	GoalStatusPartial:      "Partial",
	GoalStatusCompleted:    "Completed",
	GoalStatusNotCompleted: "Not Completed",
}

// ExpenseItem is a named line item attached to travel or purchase goals
type ExpenseItem struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Cost decimal.Decimal `json:"cost"`
}

// Goal is a trackable objective within a month
type Goal struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Type         GoalType        `json:"type"`
	TargetValue  decimal.Decimal `json:"targetValue"`
	CurrentValue decimal.Decimal `json:"currentValue"`
	Status       GoalStatus      `json:"status"`
	CarryOver    bool            `json:"carryOver"`
	CreatedAt    time.Time       `json:"createdAt"`
	CompletedAt  *time.Time      `json:"completedAt,omitempty"`

	// Travel-specific fields
	Destination  *string       `json:"destination,omitempty"`
	TravelStatus *TravelStatus `json:"travelStatus,omitempty"`
	Expenses     []ExpenseItem `json:"expenses,omitempty"`

	// Purchase-specific fields
	Product        *string         `json:"product,omitempty"`
	PurchaseStatus *PurchaseStatus `json:"purchaseStatus,omitempty"`
	PurchaseItems  []ExpenseItem   `json:"purchaseItems,omitempty"`

	// Distribution fields, present only on goals created by the allocator
	IsDistributed bool             `json:"isDistributed,omitempty"`
	StartMonth    *int             `json:"startMonth,omitempty"`
	EndMonth      *int             `json:"endMonth,omitempty"`
	MonthlyAmount *decimal.Decimal `json:"monthlyAmount,omitempty"`
}

// EvaluateGoalStatus classifies progress into a status. It never produces
// not_completed; that status is assigned only by the month-close carry-over.
// A zero target counts as completed since there is nothing left to reach.
func EvaluateGoalStatus(currentValue, targetValue decimal.Decimal) GoalStatus {
	if currentValue.GreaterThanOrEqual(targetValue) {
		return GoalStatusCompleted
	}
	if currentValue.GreaterThan(decimal.Zero) {
		return GoalStatusPartial
	}
	return GoalStatusPending
}

// Evaluate recomputes the goal's status from its current progress
func (g *Goal) Evaluate() {
	g.Status = EvaluateGoalStatus(g.CurrentValue, g.TargetValue)
}

// LineItems returns whichever expense list the goal carries
func (g *Goal) LineItems() []ExpenseItem {
	if len(g.Expenses) > 0 {
		return g.Expenses
	}
	return g.PurchaseItems
}

// Clone returns a deep copy of the goal
func (g *Goal) Clone() *Goal {
	cp := *g
	if g.CompletedAt != nil {
		t := *g.CompletedAt
		cp.CompletedAt = &t
	}
	cp.Destination = cloneStringPtr(g.Destination)
	if g.TravelStatus != nil {
		v := *g.TravelStatus
		cp.TravelStatus = &v
	}
	cp.Expenses = cloneItems(g.Expenses)
	cp.Product = cloneStringPtr(g.Product)
	if g.PurchaseStatus != nil {
		v := *g.PurchaseStatus
		cp.PurchaseStatus = &v
	}
	cp.PurchaseItems = cloneItems(g.PurchaseItems)
	cp.StartMonth = cloneIntPtr(g.StartMonth)
	cp.EndMonth = cloneIntPtr(g.EndMonth)
	if g.MonthlyAmount != nil {
		v := *g.MonthlyAmount
		cp.MonthlyAmount = &v
	}
	return &cp
}

// NewGoalID generates a fresh opaque goal identifier
func NewGoalID() string {
	return uuid.New().String()
}

func cloneItems(items []ExpenseItem) []ExpenseItem {
	if items == nil {
		return nil
	}
	cp := make([]ExpenseItem, len(items))
	copy(cp, items)
	return cp
}

func cloneStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneIntPtr(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}
