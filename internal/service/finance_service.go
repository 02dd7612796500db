package service

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/planvida/planvida-backend/internal/domain"
)

// FinanceService owns the year's ledger: transactions, accounts and
// budgets. Transactions linked to an account carry their effect into the
// account balance; every mutation that touches a transaction reverses the
// old effect before applying the new one so balances stay symmetric.
// Unresolvable ids make mutations silent no-ops.
type FinanceService struct {
	repo     domain.FinanceRepository
	notifier Notifier
	data     *domain.FinancialData
}

// NewFinanceService creates a FinanceService with the stored ledger for the
// given year, or a fresh seeded one when none is stored
func NewFinanceService(repo domain.FinanceRepository, notifier Notifier, year int) *FinanceService {
	s := &FinanceService{repo: repo, notifier: notifier}
	s.data = s.loadData(year)
	return s
}

// Data returns the active financial data
func (s *FinanceService) Data() *domain.FinancialData {
	return s.data
}

// TransactionInput holds the input for creating a transaction
type TransactionInput struct {
	Type          domain.TransactionType
	Category      domain.TransactionCategory
	Amount        decimal.Decimal
	Description   string
	Date          time.Time
	PaymentMethod domain.PaymentMethod
	AccountID     *string
	Notes         *string
	Tags          []string
	IsRecurring   bool
	Recurrence    *domain.RecurrenceType
}

// AddTransaction appends a transaction and applies its balance effect to
// the linked account, if any
func (s *FinanceService) AddTransaction(input TransactionInput) *domain.Transaction {
	tx := &domain.Transaction{
		ID:            uuid.New().String(),
		Type:          input.Type,
		Category:      input.Category,
		Amount:        input.Amount,
		Description:   input.Description,
		Date:          input.Date,
		PaymentMethod: input.PaymentMethod,
		AccountID:     input.AccountID,
		Notes:         input.Notes,
		Tags:          input.Tags,
		IsRecurring:   input.IsRecurring,
		Recurrence:    input.Recurrence,
		CreatedAt:     time.Now().UTC(),
	}

	s.data.Transactions = append(s.data.Transactions, tx)
	s.applyBalance(tx)
	s.persist()
	s.notify("transaction", "created", tx)
	return tx
}

// TransactionUpdate holds a partial transaction update
type TransactionUpdate struct {
	Type          *domain.TransactionType
	Category      *domain.TransactionCategory
	Amount        *decimal.Decimal
	Description   *string
	Date          *time.Time
	PaymentMethod *domain.PaymentMethod
	AccountID     *string
	Notes         *string
	Tags          []string
	IsRecurring   *bool
	Recurrence    *domain.RecurrenceType
}

// UpdateTransaction merges the update onto the transaction. The old
// transaction's balance effect is reverted on its old account before the
// new effect is applied to the new account; the order matters because both
// can be the same account. Returns nil when the transaction does not exist.
func (s *FinanceService) UpdateTransaction(id string, updates TransactionUpdate) *domain.Transaction {
	tx := s.data.FindTransaction(id)
	if tx == nil {
		return nil
	}

	s.revertBalance(tx)

	if updates.Type != nil {
		tx.Type = *updates.Type
	}
	if updates.Category != nil {
		tx.Category = *updates.Category
	}
	if updates.Amount != nil {
		tx.Amount = *updates.Amount
	}
	if updates.Description != nil {
		tx.Description = *updates.Description
	}
	if updates.Date != nil {
		tx.Date = *updates.Date
	}
	if updates.PaymentMethod != nil {
		tx.PaymentMethod = *updates.PaymentMethod
	}
	if updates.AccountID != nil {
		tx.AccountID = updates.AccountID
	}
	if updates.Notes != nil {
		tx.Notes = updates.Notes
	}
	if updates.Tags != nil {
		tx.Tags = updates.Tags
	}
	if updates.IsRecurring != nil {
		tx.IsRecurring = *updates.IsRecurring
	}
	if updates.Recurrence != nil {
		tx.Recurrence = updates.Recurrence
	}
	now := time.Now().UTC()
	tx.UpdatedAt = &now

	s.applyBalance(tx)
	s.persist()
	s.notify("transaction", "updated", tx)
	return tx
}

// DeleteTransaction reverts the transaction's balance effect and removes
// it. No-op when not found.
func (s *FinanceService) DeleteTransaction(id string) {
	for i, tx := range s.data.Transactions {
		if tx.ID == id {
			s.revertBalance(tx)
			s.data.Transactions = append(s.data.Transactions[:i], s.data.Transactions[i+1:]...)
			s.persist()
			s.notify("transaction", "deleted", tx)
			return
		}
	}
}

// AccountInput holds the input for creating an account
type AccountInput struct {
	Name     string
	Type     domain.AccountType
	Balance  decimal.Decimal
	Currency string
	Color    string
	Icon     string
	IsActive bool
}

// AddAccount appends an account
func (s *FinanceService) AddAccount(input AccountInput) *domain.Account {
	account := &domain.Account{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Type:      input.Type,
		Balance:   input.Balance,
		Currency:  input.Currency,
		Color:     input.Color,
		Icon:      input.Icon,
		IsActive:  input.IsActive,
		CreatedAt: time.Now().UTC(),
	}
	s.data.Accounts = append(s.data.Accounts, account)
	s.persist()
	s.notify("account", "created", account)
	return account
}

// AccountUpdate holds a partial account update
type AccountUpdate struct {
	Name     *string
	Type     *domain.AccountType
	Balance  *decimal.Decimal
	Currency *string
	Color    *string
	Icon     *string
	IsActive *bool
}

// UpdateAccount merges the update onto the account, preserving id and
// createdAt. Returns nil when not found.
func (s *FinanceService) UpdateAccount(id string, updates AccountUpdate) *domain.Account {
	account := s.data.FindAccount(id)
	if account == nil {
		return nil
	}

	if updates.Name != nil {
		account.Name = *updates.Name
	}
	if updates.Type != nil {
		account.Type = *updates.Type
	}
	if updates.Balance != nil {
		account.Balance = *updates.Balance
	}
	if updates.Currency != nil {
		account.Currency = *updates.Currency
	}
	if updates.Color != nil {
		account.Color = *updates.Color
	}
	if updates.Icon != nil {
		account.Icon = *updates.Icon
	}
	if updates.IsActive != nil {
		account.IsActive = *updates.IsActive
	}

	s.persist()
	s.notify("account", "updated", account)
	return account
}

// DeleteAccount removes the account. Transactions keep their dangling
// account reference; their balance effects are already materialized.
func (s *FinanceService) DeleteAccount(id string) {
	for i, a := range s.data.Accounts {
		if a.ID == id {
			s.data.Accounts = append(s.data.Accounts[:i], s.data.Accounts[i+1:]...)
			s.persist()
			s.notify("account", "deleted", a)
			return
		}
	}
}

// BudgetInput holds the input for creating or upserting a budget
type BudgetInput struct {
	Category       domain.TransactionCategory
	MonthlyLimit   decimal.Decimal
	Month          int
	Year           int
	Alerts         bool
	AlertThreshold int
}

// AddBudget upserts on (category, month, year): an existing budget gets its
// limit and alert settings replaced in place, otherwise a new budget starts
// with zero spent
func (s *FinanceService) AddBudget(input BudgetInput) *domain.Budget {
	for _, b := range s.data.Budgets {
		if b.Category == input.Category && b.Month == input.Month && b.Year == input.Year {
			b.MonthlyLimit = input.MonthlyLimit
			b.Alerts = input.Alerts
			b.AlertThreshold = input.AlertThreshold
			s.persist()
			s.notify("budget", "updated", b)
			return b
		}
	}

	budget := &domain.Budget{
		ID:             uuid.New().String(),
		Category:       input.Category,
		MonthlyLimit:   input.MonthlyLimit,
		CurrentSpent:   decimal.Zero,
		Month:          input.Month,
		Year:           input.Year,
		Alerts:         input.Alerts,
		AlertThreshold: input.AlertThreshold,
	}
	s.data.Budgets = append(s.data.Budgets, budget)
	s.persist()
	s.notify("budget", "created", budget)
	return budget
}

// BudgetUpdate holds a partial budget update
type BudgetUpdate struct {
	MonthlyLimit   *decimal.Decimal
	Alerts         *bool
	AlertThreshold *int
}

// UpdateBudget merges the update onto the budget. Returns nil when not
// found.
func (s *FinanceService) UpdateBudget(id string, updates BudgetUpdate) *domain.Budget {
	budget := s.data.FindBudget(id)
	if budget == nil {
		return nil
	}

	if updates.MonthlyLimit != nil {
		budget.MonthlyLimit = *updates.MonthlyLimit
	}
	if updates.Alerts != nil {
		budget.Alerts = *updates.Alerts
	}
	if updates.AlertThreshold != nil {
		budget.AlertThreshold = *updates.AlertThreshold
	}

	s.persist()
	s.notify("budget", "updated", budget)
	return budget
}

// DeleteBudget removes the budget. No-op when not found.
func (s *FinanceService) DeleteBudget(id string) {
	for i, b := range s.data.Budgets {
		if b.ID == id {
			s.data.Budgets = append(s.data.Budgets[:i], s.data.Budgets[i+1:]...)
			s.persist()
			s.notify("budget", "deleted", b)
			return
		}
	}
}

// MonthlyTransactions returns the month's transactions sorted by date
// descending
func (s *FinanceService) MonthlyTransactions(month int) []*domain.Transaction {
	var result []*domain.Transaction
	for _, tx := range s.data.Transactions {
		if int(tx.Date.Month()) == month && tx.Date.Year() == s.data.Year {
			result = append(result, tx)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	return result
}

// MonthlyIncome sums the month's income transactions
func (s *FinanceService) MonthlyIncome(month int) decimal.Decimal {
	return s.sumMonthly(month, domain.TransactionTypeIncome)
}

// MonthlyExpenses sums the month's expense transactions
func (s *FinanceService) MonthlyExpenses(month int) decimal.Decimal {
	return s.sumMonthly(month, domain.TransactionTypeExpense)
}

// MonthlyBalance is income minus expenses for the month
func (s *FinanceService) MonthlyBalance(month int) decimal.Decimal {
	return s.MonthlyIncome(month).Sub(s.MonthlyExpenses(month))
}

// TotalBalance sums balances of active non-credit accounts
func (s *FinanceService) TotalBalance() decimal.Decimal {
	total := decimal.Zero
	for _, a := range s.data.Accounts {
		if a.IsActive && a.Type != domain.AccountTypeCredit {
			total = total.Add(a.Balance)
		}
	}
	return total
}

// TotalDebt sums the absolute balances of active credit accounts
func (s *FinanceService) TotalDebt() decimal.Decimal {
	total := decimal.Zero
	for _, a := range s.data.Accounts {
		if a.IsActive && a.Type == domain.AccountTypeCredit {
			total = total.Add(a.Balance.Abs())
		}
	}
	return total
}

// ExpensesByCategory groups the month's expenses by category, largest
// first
func (s *FinanceService) ExpensesByCategory(month int) []domain.CategoryAmount {
	return s.groupByCategory(month, domain.TransactionTypeExpense)
}

// IncomeByCategory groups the month's income by category, largest first
func (s *FinanceService) IncomeByCategory(month int) []domain.CategoryAmount {
	return s.groupByCategory(month, domain.TransactionTypeIncome)
}

// SavingsRate is the month's balance as a rounded percentage of income,
// zero when there is no income
func (s *FinanceService) SavingsRate(month int) int {
	income := s.MonthlyIncome(month)
	if income.IsZero() {
		return 0
	}
	rate := s.MonthlyBalance(month).Div(income).Mul(decimal.NewFromInt(100)).Round(0)
	return int(rate.IntPart())
}

// BudgetStatus recomputes spending for each of the month's budgets from
// the month's expense transactions
func (s *FinanceService) BudgetStatus(month int) []domain.BudgetStatus {
	transactions := s.MonthlyTransactions(month)

	var result []domain.BudgetStatus
	for _, b := range s.data.Budgets {
		if b.Month != month || b.Year != s.data.Year {
			continue
		}

		spent := decimal.Zero
		for _, tx := range transactions {
			if tx.Type == domain.TransactionTypeExpense && tx.Category == b.Category {
				spent = spent.Add(tx.Amount)
			}
		}

		percentage := 0
		if b.MonthlyLimit.GreaterThan(decimal.Zero) {
			percentage = int(spent.Div(b.MonthlyLimit).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
		}

		status := domain.BudgetStatus{
			Budget:       *b,
			Percentage:   percentage,
			Remaining:    b.MonthlyLimit.Sub(spent),
			IsOverBudget: spent.GreaterThan(b.MonthlyLimit),
		}
		status.CurrentSpent = spent
		result = append(result, status)
	}
	return result
}

// YearlyIncome sums all income transactions of the active year
func (s *FinanceService) YearlyIncome() decimal.Decimal {
	return s.sumYearly(domain.TransactionTypeIncome)
}

// YearlyExpenses sums all expense transactions of the active year
func (s *FinanceService) YearlyExpenses() decimal.Decimal {
	return s.sumYearly(domain.TransactionTypeExpense)
}

// TransactionsByDateRange returns transactions dated within the inclusive
// range
func (s *FinanceService) TransactionsByDateRange(start, end time.Time) []*domain.Transaction {
	var result []*domain.Transaction
	for _, tx := range s.data.Transactions {
		if !tx.Date.Before(start) && !tx.Date.After(end) {
			result = append(result, tx)
		}
	}
	return result
}

// ResetFinances replaces the ledger with a fresh seeded one for the same
// year
func (s *FinanceService) ResetFinances() {
	s.data = domain.NewEmptyFinancialData(s.data.Year)
	s.persist()
	s.notify("finances", "reset", s.data)
}

// ChangeYear swaps the active ledger for the stored one of the given year
func (s *FinanceService) ChangeYear(year int) {
	s.data = s.loadData(year)
	s.notify("finances", "changed", s.data)
}

func (s *FinanceService) applyBalance(tx *domain.Transaction) {
	if tx.AccountID == nil {
		return
	}
	account := s.data.FindAccount(*tx.AccountID)
	if account == nil {
		return
	}
	account.Balance = account.Balance.Add(tx.BalanceDelta())
}

func (s *FinanceService) revertBalance(tx *domain.Transaction) {
	if tx.AccountID == nil {
		return
	}
	account := s.data.FindAccount(*tx.AccountID)
	if account == nil {
		return
	}
	account.Balance = account.Balance.Sub(tx.BalanceDelta())
}

func (s *FinanceService) sumMonthly(month int, txType domain.TransactionType) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range s.data.Transactions {
		if tx.Type == txType && int(tx.Date.Month()) == month && tx.Date.Year() == s.data.Year {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

func (s *FinanceService) sumYearly(txType domain.TransactionType) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range s.data.Transactions {
		if tx.Type == txType && tx.Date.Year() == s.data.Year {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

func (s *FinanceService) groupByCategory(month int, txType domain.TransactionType) []domain.CategoryAmount {
	totals := make(map[domain.TransactionCategory]decimal.Decimal)
	for _, tx := range s.MonthlyTransactions(month) {
		if tx.Type == txType {
			totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
		}
	}

	result := make([]domain.CategoryAmount, 0, len(totals))
	for category, amount := range totals {
		result = append(result, domain.CategoryAmount{Category: category, Amount: amount})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Amount.Equal(result[j].Amount) {
			return result[i].Category < result[j].Category
		}
		return result[i].Amount.GreaterThan(result[j].Amount)
	})
	return result
}

func (s *FinanceService) loadData(year int) *domain.FinancialData {
	stored, err := s.repo.Load(year)
	if err != nil {
		if !errors.Is(err, domain.ErrFinanceNotFound) {
			log.Error().Err(err).Int("year", year).Msg("Failed to load financial data")
		}
		return domain.NewEmptyFinancialData(year)
	}
	if stored.Year != year {
		return domain.NewEmptyFinancialData(year)
	}
	return stored
}

func (s *FinanceService) persist() {
	if err := s.repo.Save(s.data); err != nil {
		log.Warn().Err(err).Int("year", s.data.Year).Msg("Failed to save financial data")
	}
}

func (s *FinanceService) notify(entity, action string, payload interface{}) {
	if s.notifier != nil {
		s.notifier.Publish(entity, action, payload)
	}
}
