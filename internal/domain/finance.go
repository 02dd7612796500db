package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FinancialData owns the year's transactions, accounts and budgets
type FinancialData struct {
	Year         int            `json:"year"`
	Transactions []*Transaction `json:"transactions"`
	Accounts     []*Account     `json:"accounts"`
	Budgets      []*Budget      `json:"budgets"`
}

// NewEmptyFinancialData builds a fresh year seeded with two default accounts
func NewEmptyFinancialData(year int) *FinancialData {
	now := time.Now().UTC()
	return &FinancialData{
		Year:         year,
		Transactions: []*Transaction{},
		Accounts: []*Account{
			{
				ID:        uuid.New().String(),
				Name:      "Cash",
				Type:      AccountTypeCash,
				Balance:   decimal.Zero,
				Currency:  "MXN",
				Color:     "#22c55e",
				Icon:      "cash",
				IsActive:  true,
				CreatedAt: now,
			},
			{
				ID:        uuid.New().String(),
				Name:      "Main Bank",
				Type:      AccountTypeBank,
				Balance:   decimal.Zero,
				Currency:  "MXN",
				Color:     "#3b82f6",
				Icon:      "bank",
				IsActive:  true,
				CreatedAt: now,
			},
		},
		Budgets: []*Budget{},
	}
}

// FindAccount returns the account with the given id, or nil
func (d *FinancialData) FindAccount(id string) *Account {
	for _, a := range d.Accounts {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// FindTransaction returns the transaction with the given id, or nil
func (d *FinancialData) FindTransaction(id string) *Transaction {
	for _, t := range d.Transactions {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// FindBudget returns the budget with the given id, or nil
func (d *FinancialData) FindBudget(id string) *Budget {
	for _, b := range d.Budgets {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// FinanceRepository is the persistence contract for financial data,
// keyed by year
type FinanceRepository interface {
	Load(year int) (*FinancialData, error)
	Save(data *FinancialData) error
	Delete(year int) error
}
