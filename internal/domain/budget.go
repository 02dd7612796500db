package domain

import "github.com/shopspring/decimal"

// Budget is a monthly spending limit for one expense category. At most one
// budget exists per (category, month, year); creation upserts on collision.
// CurrentSpent is not kept live by the ledger; it is recomputed from
// transactions at query time.
type Budget struct {
	ID             string              `json:"id"`
	Category       TransactionCategory `json:"category"`
	MonthlyLimit   decimal.Decimal     `json:"monthlyLimit"`
	CurrentSpent   decimal.Decimal     `json:"currentSpent"`
	Month          int                 `json:"month"`
	Year           int                 `json:"year"`
	Alerts         bool                `json:"alerts"`
	AlertThreshold int                 `json:"alertThreshold"`
}

// BudgetStatus is a budget with spending recomputed from the month's
// transactions
type BudgetStatus struct {
	Budget
	Percentage   int             `json:"percentage"`
	Remaining    decimal.Decimal `json:"remaining"`
	IsOverBudget bool            `json:"isOverBudget"`
}
