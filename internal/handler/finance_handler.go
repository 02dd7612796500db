package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/planvida/planvida-backend/internal/domain"
	"github.com/planvida/planvida-backend/internal/service"
)

// FinanceHandler handles finance-related HTTP requests
type FinanceHandler struct {
	finance *service.FinanceService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(finance *service.FinanceService) *FinanceHandler {
	return &FinanceHandler{finance: finance}
}

// TransactionRequest represents a transaction create payload
type TransactionRequest struct {
	Type          string                 `json:"type"`
	Category      string                 `json:"category"`
	Amount        decimal.Decimal        `json:"amount"`
	Description   string                 `json:"description"`
	Date          time.Time              `json:"date"`
	PaymentMethod string                 `json:"paymentMethod"`
	AccountID     *string                `json:"accountId,omitempty"`
	Notes         *string                `json:"notes,omitempty"`
	Tags          []string               `json:"tags,omitempty"`
	IsRecurring   bool                   `json:"isRecurring"`
	Recurrence    *domain.RecurrenceType `json:"recurrence,omitempty"`
}

// TransactionUpdateRequest represents a partial transaction update payload
type TransactionUpdateRequest struct {
	Type          *string                `json:"type,omitempty"`
	Category      *string                `json:"category,omitempty"`
	Amount        *decimal.Decimal       `json:"amount,omitempty"`
	Description   *string                `json:"description,omitempty"`
	Date          *time.Time             `json:"date,omitempty"`
	PaymentMethod *string                `json:"paymentMethod,omitempty"`
	AccountID     *string                `json:"accountId,omitempty"`
	Notes         *string                `json:"notes,omitempty"`
	Tags          []string               `json:"tags,omitempty"`
	IsRecurring   *bool                  `json:"isRecurring,omitempty"`
	Recurrence    *domain.RecurrenceType `json:"recurrence,omitempty"`
}

// AccountRequest represents an account create payload
type AccountRequest struct {
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
	Color    string          `json:"color"`
	Icon     string          `json:"icon"`
	IsActive bool            `json:"isActive"`
}

// AccountUpdateRequest represents a partial account update payload
type AccountUpdateRequest struct {
	Name     *string          `json:"name,omitempty"`
	Type     *string          `json:"type,omitempty"`
	Balance  *decimal.Decimal `json:"balance,omitempty"`
	Currency *string          `json:"currency,omitempty"`
	Color    *string          `json:"color,omitempty"`
	Icon     *string          `json:"icon,omitempty"`
	IsActive *bool            `json:"isActive,omitempty"`
}

// BudgetRequest represents a budget create/upsert payload
type BudgetRequest struct {
	Category       string          `json:"category"`
	MonthlyLimit   decimal.Decimal `json:"monthlyLimit"`
	Month          int             `json:"month"`
	Year           int             `json:"year"`
	Alerts         bool            `json:"alerts"`
	AlertThreshold int             `json:"alertThreshold"`
}

// BudgetUpdateRequest represents a partial budget update payload
type BudgetUpdateRequest struct {
	MonthlyLimit   *decimal.Decimal `json:"monthlyLimit,omitempty"`
	Alerts         *bool            `json:"alerts,omitempty"`
	AlertThreshold *int             `json:"alertThreshold,omitempty"`
}

// MonthlySummaryResponse aggregates one month's financial figures
type MonthlySummaryResponse struct {
	Month              int                     `json:"month"`
	Income             decimal.Decimal         `json:"income"`
	Expenses           decimal.Decimal         `json:"expenses"`
	Balance            decimal.Decimal         `json:"balance"`
	SavingsRate        int                     `json:"savingsRate"`
	TotalBalance       decimal.Decimal         `json:"totalBalance"`
	TotalDebt          decimal.Decimal         `json:"totalDebt"`
	ExpensesByCategory []domain.CategoryAmount `json:"expensesByCategory"`
	IncomeByCategory   []domain.CategoryAmount `json:"incomeByCategory"`
}

// YearlySummaryResponse aggregates the active year's financial figures
type YearlySummaryResponse struct {
	Year     int             `json:"year"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

// GetFinances handles GET /api/v1/finances
func (h *FinanceHandler) GetFinances(c echo.Context) error {
	return c.JSON(http.StatusOK, h.finance.Data())
}

// GetTransactions handles GET /api/v1/finances/transactions
// Filters by ?month=N or by ?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *FinanceHandler) GetTransactions(c echo.Context) error {
	if startStr := c.QueryParam("start"); startStr != "" {
		start, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			return NewValidationError(c, "Invalid start date", []ValidationError{
				{Field: "start", Message: "Start date must be YYYY-MM-DD"},
			})
		}
		end, err := time.Parse("2006-01-02", c.QueryParam("end"))
		if err != nil {
			return NewValidationError(c, "Invalid end date", []ValidationError{
				{Field: "end", Message: "End date must be YYYY-MM-DD"},
			})
		}
		// Make the end of range inclusive for the whole day
		end = end.Add(24*time.Hour - time.Nanosecond)
		return c.JSON(http.StatusOK, emptyIfNil(h.finance.TransactionsByDateRange(start, end)))
	}

	month, ok := monthQuery(c)
	if !ok {
		return invalidMonthQueryError(c)
	}
	return c.JSON(http.StatusOK, emptyIfNil(h.finance.MonthlyTransactions(month)))
}

// CreateTransaction handles POST /api/v1/finances/transactions
func (h *FinanceHandler) CreateTransaction(c echo.Context) error {
	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if errs := validateTransactionRequest(req); len(errs) > 0 {
		return NewValidationError(c, "Invalid transaction", errs)
	}

	tx := h.finance.AddTransaction(service.TransactionInput{
		Type:          domain.TransactionType(req.Type),
		Category:      domain.TransactionCategory(req.Category),
		Amount:        req.Amount,
		Description:   req.Description,
		Date:          req.Date,
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		AccountID:     req.AccountID,
		Notes:         req.Notes,
		Tags:          req.Tags,
		IsRecurring:   req.IsRecurring,
		Recurrence:    req.Recurrence,
	})
	return c.JSON(http.StatusCreated, tx)
}

// UpdateTransaction handles PUT /api/v1/finances/transactions/:id
func (h *FinanceHandler) UpdateTransaction(c echo.Context) error {
	var req TransactionUpdateRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	existing := h.finance.Data().FindTransaction(c.Param("id"))
	if existing == nil {
		return NewNotFoundError(c, "Transaction not found")
	}

	update := service.TransactionUpdate{
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
		AccountID:   req.AccountID,
		Notes:       req.Notes,
		Tags:        req.Tags,
		IsRecurring: req.IsRecurring,
		Recurrence:  req.Recurrence,
	}

	// The type/category pairing must stay valid after the update, whichever
	// side of it changes
	effType := existing.Type
	if req.Type != nil {
		effType = domain.TransactionType(*req.Type)
		if !validTransactionType(effType) {
			return NewValidationError(c, "Invalid transaction type", []ValidationError{
				{Field: "type", Message: "Type must be income, expense or transfer"},
			})
		}
		update.Type = &effType
	}
	effCategory := existing.Category
	if req.Category != nil {
		effCategory = domain.TransactionCategory(*req.Category)
		update.Category = &effCategory
	}
	if (req.Type != nil || req.Category != nil) && !domain.ValidCategory(effType, effCategory) {
		return NewValidationError(c, "Invalid category", []ValidationError{
			{Field: "category", Message: "Category does not match transaction type"},
		})
	}

	if req.PaymentMethod != nil {
		method := domain.PaymentMethod(*req.PaymentMethod)
		update.PaymentMethod = &method
	}
	if req.Amount != nil && req.Amount.IsNegative() {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Amount cannot be negative"},
		})
	}

	tx := h.finance.UpdateTransaction(c.Param("id"), update)
	if tx == nil {
		return NewNotFoundError(c, "Transaction not found")
	}
	return c.JSON(http.StatusOK, tx)
}

// DeleteTransaction handles DELETE /api/v1/finances/transactions/:id
func (h *FinanceHandler) DeleteTransaction(c echo.Context) error {
	h.finance.DeleteTransaction(c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

// GetAccounts handles GET /api/v1/finances/accounts
func (h *FinanceHandler) GetAccounts(c echo.Context) error {
	return c.JSON(http.StatusOK, emptyIfNil(h.finance.Data().Accounts))
}

// CreateAccount handles POST /api/v1/finances/accounts
func (h *FinanceHandler) CreateAccount(c echo.Context) error {
	var req AccountRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var errs []ValidationError
	if req.Name == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "Name is required"})
	}
	if !domain.ValidAccountType(domain.AccountType(req.Type)) {
		errs = append(errs, ValidationError{Field: "type", Message: "Invalid account type"})
	}
	if len(errs) > 0 {
		return NewValidationError(c, "Invalid account", errs)
	}

	account := h.finance.AddAccount(service.AccountInput{
		Name:     req.Name,
		Type:     domain.AccountType(req.Type),
		Balance:  req.Balance,
		Currency: req.Currency,
		Color:    req.Color,
		Icon:     req.Icon,
		IsActive: req.IsActive,
	})
	return c.JSON(http.StatusCreated, account)
}

// UpdateAccount handles PUT /api/v1/finances/accounts/:id
func (h *FinanceHandler) UpdateAccount(c echo.Context) error {
	var req AccountUpdateRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	update := service.AccountUpdate{
		Name:     req.Name,
		Balance:  req.Balance,
		Currency: req.Currency,
		Color:    req.Color,
		Icon:     req.Icon,
		IsActive: req.IsActive,
	}
	if req.Type != nil {
		accountType := domain.AccountType(*req.Type)
		if !domain.ValidAccountType(accountType) {
			return NewValidationError(c, "Invalid account type", []ValidationError{
				{Field: "type", Message: "Invalid account type"},
			})
		}
		update.Type = &accountType
	}

	account := h.finance.UpdateAccount(c.Param("id"), update)
	if account == nil {
		return NewNotFoundError(c, "Account not found")
	}
	return c.JSON(http.StatusOK, account)
}

// DeleteAccount handles DELETE /api/v1/finances/accounts/:id
func (h *FinanceHandler) DeleteAccount(c echo.Context) error {
	h.finance.DeleteAccount(c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

// GetBudgets handles GET /api/v1/finances/budgets
func (h *FinanceHandler) GetBudgets(c echo.Context) error {
	return c.JSON(http.StatusOK, emptyIfNil(h.finance.Data().Budgets))
}

// CreateBudget handles POST /api/v1/finances/budgets
// Upserts on (category, month, year)
func (h *FinanceHandler) CreateBudget(c echo.Context) error {
	var req BudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var errs []ValidationError
	if !domain.ValidCategory(domain.TransactionTypeExpense, domain.TransactionCategory(req.Category)) {
		errs = append(errs, ValidationError{Field: "category", Message: "Invalid expense category"})
	}
	if req.Month < 1 || req.Month > 12 {
		errs = append(errs, ValidationError{Field: "month", Message: "Month must be between 1 and 12"})
	}
	if !req.MonthlyLimit.GreaterThan(decimal.Zero) {
		errs = append(errs, ValidationError{Field: "monthlyLimit", Message: "Monthly limit must be positive"})
	}
	if len(errs) > 0 {
		return NewValidationError(c, "Invalid budget", errs)
	}

	budget := h.finance.AddBudget(service.BudgetInput{
		Category:       domain.TransactionCategory(req.Category),
		MonthlyLimit:   req.MonthlyLimit,
		Month:          req.Month,
		Year:           req.Year,
		Alerts:         req.Alerts,
		AlertThreshold: req.AlertThreshold,
	})
	return c.JSON(http.StatusCreated, budget)
}

// UpdateBudget handles PUT /api/v1/finances/budgets/:id
func (h *FinanceHandler) UpdateBudget(c echo.Context) error {
	var req BudgetUpdateRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	budget := h.finance.UpdateBudget(c.Param("id"), service.BudgetUpdate{
		MonthlyLimit:   req.MonthlyLimit,
		Alerts:         req.Alerts,
		AlertThreshold: req.AlertThreshold,
	})
	if budget == nil {
		return NewNotFoundError(c, "Budget not found")
	}
	return c.JSON(http.StatusOK, budget)
}

// DeleteBudget handles DELETE /api/v1/finances/budgets/:id
func (h *FinanceHandler) DeleteBudget(c echo.Context) error {
	h.finance.DeleteBudget(c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

// GetBudgetStatus handles GET /api/v1/finances/budgets/status?month=N
func (h *FinanceHandler) GetBudgetStatus(c echo.Context) error {
	month, ok := monthQuery(c)
	if !ok {
		return invalidMonthQueryError(c)
	}
	return c.JSON(http.StatusOK, emptyIfNil(h.finance.BudgetStatus(month)))
}

// GetMonthlySummary handles GET /api/v1/finances/summary?month=N
func (h *FinanceHandler) GetMonthlySummary(c echo.Context) error {
	month, ok := monthQuery(c)
	if !ok {
		return invalidMonthQueryError(c)
	}

	return c.JSON(http.StatusOK, MonthlySummaryResponse{
		Month:              month,
		Income:             h.finance.MonthlyIncome(month),
		Expenses:           h.finance.MonthlyExpenses(month),
		Balance:            h.finance.MonthlyBalance(month),
		SavingsRate:        h.finance.SavingsRate(month),
		TotalBalance:       h.finance.TotalBalance(),
		TotalDebt:          h.finance.TotalDebt(),
		ExpensesByCategory: emptyIfNil(h.finance.ExpensesByCategory(month)),
		IncomeByCategory:   emptyIfNil(h.finance.IncomeByCategory(month)),
	})
}

// GetYearlySummary handles GET /api/v1/finances/summary/year
func (h *FinanceHandler) GetYearlySummary(c echo.Context) error {
	income := h.finance.YearlyIncome()
	expenses := h.finance.YearlyExpenses()
	return c.JSON(http.StatusOK, YearlySummaryResponse{
		Year:     h.finance.Data().Year,
		Income:   income,
		Expenses: expenses,
		Balance:  income.Sub(expenses),
	})
}

// ChangeYear handles PUT /api/v1/finances/year
func (h *FinanceHandler) ChangeYear(c echo.Context) error {
	var req struct {
		Year int `json:"year"`
	}
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.Year < 2000 || req.Year > 2100 {
		return NewValidationError(c, "Invalid year", []ValidationError{
			{Field: "year", Message: "Year must be between 2000 and 2100"},
		})
	}

	h.finance.ChangeYear(req.Year)
	return c.JSON(http.StatusOK, h.finance.Data())
}

// ResetFinances handles POST /api/v1/finances/reset
func (h *FinanceHandler) ResetFinances(c echo.Context) error {
	h.finance.ResetFinances()
	return c.JSON(http.StatusOK, h.finance.Data())
}

func monthQuery(c echo.Context) (int, bool) {
	month, err := strconv.Atoi(c.QueryParam("month"))
	if err != nil || month < 1 || month > 12 {
		return 0, false
	}
	return month, true
}

func invalidMonthQueryError(c echo.Context) error {
	return NewValidationError(c, "Invalid month", []ValidationError{
		{Field: "month", Message: "Month must be between 1 and 12"},
	})
}

func validTransactionType(t domain.TransactionType) bool {
	switch t {
	case domain.TransactionTypeIncome, domain.TransactionTypeExpense, domain.TransactionTypeTransfer:
		return true
	}
	return false
}

func validateTransactionRequest(req TransactionRequest) []ValidationError {
	var errs []ValidationError
	txType := domain.TransactionType(req.Type)
	if !validTransactionType(txType) {
		errs = append(errs, ValidationError{Field: "type", Message: "Type must be income, expense or transfer"})
	} else if !domain.ValidCategory(txType, domain.TransactionCategory(req.Category)) {
		errs = append(errs, ValidationError{Field: "category", Message: "Category does not match transaction type"})
	}
	if req.Amount.IsNegative() {
		errs = append(errs, ValidationError{Field: "amount", Message: "Amount cannot be negative"})
	}
	if req.Date.IsZero() {
		errs = append(errs, ValidationError{Field: "date", Message: "Date is required"})
	}
	return errs
}

// emptyIfNil keeps JSON list responses as [] instead of null
func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
