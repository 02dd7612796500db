package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeCash       AccountType = "cash"
	AccountTypeBank       AccountType = "bank"
	AccountTypeCredit     AccountType = "credit"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeSavings    AccountType = "savings"
)

// AccountTypeLabels maps account types to display text
var AccountTypeLabels = map[AccountType]string{
	AccountTypeCash:       "Cash",
	AccountTypeBank:       "Bank",
	AccountTypeCredit:     "Credit",
	AccountTypeInvestment: "Investment",
	AccountTypeSavings:    "Savings",
}

// Account holds a running balance. Credit accounts express debt as a
// negative balance.
type Account struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      AccountType     `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	Color     string          `json:"color"`
	Icon      string          `json:"icon"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ValidAccountType reports whether t is a known account type
func ValidAccountType(t AccountType) bool {
	_, ok := AccountTypeLabels[t]
	return ok
}
