package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single income, expense or transfer entry.
// AccountID is a non-owning reference to an Account; balance effects are
// applied and reversed by the finance service, not stored here.
type Transaction struct {
	ID            string              `json:"id"`
	Type          TransactionType     `json:"type"`
	Category      TransactionCategory `json:"category"`
	Amount        decimal.Decimal     `json:"amount"`
	Description   string              `json:"description"`
	Date          time.Time           `json:"date"`
	PaymentMethod PaymentMethod       `json:"paymentMethod"`
	AccountID     *string             `json:"accountId,omitempty"`
	Notes         *string             `json:"notes,omitempty"`
	Tags          []string            `json:"tags,omitempty"`
	IsRecurring   bool                `json:"isRecurring"`
	Recurrence    *RecurrenceType     `json:"recurrence,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     *time.Time          `json:"updatedAt,omitempty"`
}

// BalanceDelta returns the signed effect this transaction has on its linked
// account's balance. Transfers are balance-neutral at the single-account
// level; a two-sided transfer is pending product clarification.
func (t *Transaction) BalanceDelta() decimal.Decimal {
	switch t.Type {
	case TransactionTypeIncome:
		return t.Amount
	case TransactionTypeExpense:
		return t.Amount.Neg()
	}
	return decimal.Zero
}

// CategoryAmount pairs a category with an aggregated amount
type CategoryAmount struct {
	Category TransactionCategory `json:"category"`
	Amount   decimal.Decimal     `json:"amount"`
}
