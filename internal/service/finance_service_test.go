package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/planvida/planvida-backend/internal/domain"
	"github.com/planvida/planvida-backend/internal/testutil"
)

func newFinanceService(year int) (*FinanceService, *testutil.MockFinanceRepository) {
	repo := testutil.NewMockFinanceRepository()
	return NewFinanceService(repo, nil, year), repo
}

func seedAccount(s *FinanceService, balance int64) *domain.Account {
	return s.AddAccount(AccountInput{
		Name:     "Checking",
		Type:     domain.AccountTypeBank,
		Balance:  decimal.NewFromInt(balance),
		Currency: "MXN",
		IsActive: true,
	})
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC)
}

func TestNewFinanceService_SeedsDefaultAccounts(t *testing.T) {
	s, _ := newFinanceService(2026)

	if len(s.Data().Accounts) != 2 {
		t.Fatalf("Expected 2 seeded accounts, got %d", len(s.Data().Accounts))
	}
	if s.Data().Accounts[0].Name != "Cash" || s.Data().Accounts[1].Name != "Main Bank" {
		t.Errorf("Unexpected seeded accounts: %s, %s", s.Data().Accounts[0].Name, s.Data().Accounts[1].Name)
	}
}

func TestAddTransaction_IncomeRaisesBalance(t *testing.T) {
	s, _ := newFinanceService(2026)
	account := seedAccount(s, 1000)

	s.AddTransaction(TransactionInput{
		Type:      domain.TransactionTypeIncome,
		Category:  domain.CategorySalary,
		Amount:    decimal.NewFromInt(500),
		Date:      date(2026, 3, 1),
		AccountID: &account.ID,
	})

	if !account.Balance.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("Expected balance 1500, got %s", account.Balance)
	}
}

func TestAddTransaction_ExpenseLowersBalance(t *testing.T) {
	s, _ := newFinanceService(2026)
	account := seedAccount(s, 1000)

	s.AddTransaction(TransactionInput{
		Type:      domain.TransactionTypeExpense,
		Category:  domain.CategoryGroceries,
		Amount:    decimal.NewFromInt(250),
		Date:      date(2026, 3, 2),
		AccountID: &account.ID,
	})

	if !account.Balance.Equal(decimal.NewFromInt(750)) {
		t.Errorf("Expected balance 750, got %s", account.Balance)
	}
}

func TestAddTransaction_TransferIsBalanceNeutral(t *testing.T) {
	s, _ := newFinanceService(2026)
	account := seedAccount(s, 1000)

	s.AddTransaction(TransactionInput{
		Type:      domain.TransactionTypeTransfer,
		Category:  domain.CategoryOtherExpense,
		Amount:    decimal.NewFromInt(300),
		Date:      date(2026, 3, 3),
		AccountID: &account.ID,
	})

	if !account.Balance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Transfers must not move the balance, got %s", account.Balance)
	}
}

func TestAddTransaction_NoAccountIsAbsorbed(t *testing.T) {
	s, _ := newFinanceService(2026)

	tx := s.AddTransaction(TransactionInput{
		Type:     domain.TransactionTypeExpense,
		Category: domain.CategoryGroceries,
		Amount:   decimal.NewFromInt(50),
		Date:     date(2026, 1, 10),
	})

	if tx == nil {
		t.Fatal("Expected transaction without account link")
	}
}

func TestUpdateTransaction_RevertsThenApplies(t *testing.T) {
	s, _ := newFinanceService(2026)
	account := seedAccount(s, 1000)
	tx := s.AddTransaction(TransactionInput{
		Type:      domain.TransactionTypeExpense,
		Category:  domain.CategoryGroceries,
		Amount:    decimal.NewFromInt(50),
		Date:      date(2026, 4, 5),
		AccountID: &account.ID,
	})
	// balance now 950

	amount := decimal.NewFromInt(80)
	s.UpdateTransaction(tx.ID, TransactionUpdate{Amount: &amount})

	// The 50 must come back before the 80 goes out
	if !account.Balance.Equal(decimal.NewFromInt(920)) {
		t.Errorf("Expected balance 920, got %s", account.Balance)
	}
	if tx.UpdatedAt == nil {
		t.Error("Expected updatedAt stamp")
	}
}

func TestUpdateTransaction_MoveBetweenAccounts(t *testing.T) {
	s, _ := newFinanceService(2026)
	from := seedAccount(s, 1000)
	to := s.AddAccount(AccountInput{Name: "Savings", Type: domain.AccountTypeSavings, Balance: decimal.NewFromInt(500), IsActive: true})

	tx := s.AddTransaction(TransactionInput{
		Type:      domain.TransactionTypeIncome,
		Category:  domain.CategorySalary,
		Amount:    decimal.NewFromInt(200),
		Date:      date(2026, 4, 1),
		AccountID: &from.ID,
	})
	// from: 1200

	s.UpdateTransaction(tx.ID, TransactionUpdate{AccountID: &to.ID})

	if !from.Balance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Expected old account back at 1000, got %s", from.Balance)
	}
	if !to.Balance.Equal(decimal.NewFromInt(700)) {
		t.Errorf("Expected new account at 700, got %s", to.Balance)
	}
}

func TestUpdateTransaction_NotFoundReturnsNil(t *testing.T) {
	s, repo := newFinanceService(2026)
	saves := repo.SaveCount

	if got := s.UpdateTransaction("missing", TransactionUpdate{}); got != nil {
		t.Errorf("Expected nil, got %+v", got)
	}
	if repo.SaveCount != saves {
		t.Error("Expected no save for missing transaction")
	}
}

func TestDeleteTransaction_RevertsBalance(t *testing.T) {
	s, _ := newFinanceService(2026)
	account := seedAccount(s, 500)
	tx := s.AddTransaction(TransactionInput{
		Type:      domain.TransactionTypeIncome,
		Category:  domain.CategorySalary,
		Amount:    decimal.NewFromInt(200),
		Date:      date(2026, 2, 1),
		AccountID: &account.ID,
	})
	// balance now 700

	s.DeleteTransaction(tx.ID)

	if !account.Balance.Equal(decimal.NewFromInt(500)) {
		t.Errorf("Expected balance back at 500, got %s", account.Balance)
	}
	if len(s.Data().Transactions) != 0 {
		t.Error("Expected transaction removed")
	}
}

func TestAddBudget_UpsertsOnCategoryMonthYear(t *testing.T) {
	s, _ := newFinanceService(2026)

	first := s.AddBudget(BudgetInput{
		Category:     domain.CategoryGroceries,
		MonthlyLimit: decimal.NewFromInt(400),
		Month:        3,
		Year:         2026,
	})
	second := s.AddBudget(BudgetInput{
		Category:     domain.CategoryGroceries,
		MonthlyLimit: decimal.NewFromInt(600),
		Month:        3,
		Year:         2026,
		Alerts:       true,
	})

	if first.ID != second.ID {
		t.Error("Expected upsert to reuse the existing budget")
	}
	if !second.MonthlyLimit.Equal(decimal.NewFromInt(600)) {
		t.Errorf("Expected limit 600, got %s", second.MonthlyLimit)
	}
	if !second.Alerts {
		t.Error("Expected alerts replaced")
	}
	if len(s.Data().Budgets) != 1 {
		t.Errorf("Expected one budget, got %d", len(s.Data().Budgets))
	}

	// A different month creates a new budget
	other := s.AddBudget(BudgetInput{
		Category:     domain.CategoryGroceries,
		MonthlyLimit: decimal.NewFromInt(400),
		Month:        4,
		Year:         2026,
	})
	if other.ID == first.ID {
		t.Error("Expected distinct budget for another month")
	}
}

func TestBudgetStatus_RecomputesSpentFromTransactions(t *testing.T) {
	s, _ := newFinanceService(2026)
	s.AddBudget(BudgetInput{
		Category:     domain.CategoryGroceries,
		MonthlyLimit: decimal.NewFromInt(200),
		Month:        5,
		Year:         2026,
	})
	s.AddTransaction(TransactionInput{
		Type: domain.TransactionTypeExpense, Category: domain.CategoryGroceries,
		Amount: decimal.NewFromInt(150), Date: date(2026, 5, 3),
	})
	s.AddTransaction(TransactionInput{
		Type: domain.TransactionTypeExpense, Category: domain.CategoryGroceries,
		Amount: decimal.NewFromInt(100), Date: date(2026, 5, 20),
	})
	// Different category, must not count
	s.AddTransaction(TransactionInput{
		Type: domain.TransactionTypeExpense, Category: domain.CategoryTransport,
		Amount: decimal.NewFromInt(40), Date: date(2026, 5, 10),
	})

	statuses := s.BudgetStatus(5)

	if len(statuses) != 1 {
		t.Fatalf("Expected one budget status, got %d", len(statuses))
	}
	status := statuses[0]
	if !status.CurrentSpent.Equal(decimal.NewFromInt(250)) {
		t.Errorf("Expected spent 250, got %s", status.CurrentSpent)
	}
	if status.Percentage != 125 {
		t.Errorf("Expected 125%%, got %d%%", status.Percentage)
	}
	if !status.IsOverBudget {
		t.Error("Expected over budget")
	}
	if !status.Remaining.Equal(decimal.NewFromInt(-50)) {
		t.Errorf("Expected remaining -50, got %s", status.Remaining)
	}
}

func TestMonthlyAggregates(t *testing.T) {
	s, _ := newFinanceService(2026)
	s.AddTransaction(TransactionInput{Type: domain.TransactionTypeIncome, Category: domain.CategorySalary, Amount: decimal.NewFromInt(1000), Date: date(2026, 6, 1)})
	s.AddTransaction(TransactionInput{Type: domain.TransactionTypeExpense, Category: domain.CategoryGroceries, Amount: decimal.NewFromInt(300), Date: date(2026, 6, 5)})
	s.AddTransaction(TransactionInput{Type: domain.TransactionTypeExpense, Category: domain.CategoryHousing, Amount: decimal.NewFromInt(400), Date: date(2026, 6, 10)})
	// Another month, must not count
	s.AddTransaction(TransactionInput{Type: domain.TransactionTypeIncome, Category: domain.CategorySalary, Amount: decimal.NewFromInt(9999), Date: date(2026, 7, 1)})

	if !s.MonthlyIncome(6).Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Expected income 1000, got %s", s.MonthlyIncome(6))
	}
	if !s.MonthlyExpenses(6).Equal(decimal.NewFromInt(700)) {
		t.Errorf("Expected expenses 700, got %s", s.MonthlyExpenses(6))
	}
	if !s.MonthlyBalance(6).Equal(decimal.NewFromInt(300)) {
		t.Errorf("Expected balance 300, got %s", s.MonthlyBalance(6))
	}
	// 300/1000 = 30%
	if s.SavingsRate(6) != 30 {
		t.Errorf("Expected savings rate 30, got %d", s.SavingsRate(6))
	}
}

func TestSavingsRate_NoIncome(t *testing.T) {
	s, _ := newFinanceService(2026)
	s.AddTransaction(TransactionInput{Type: domain.TransactionTypeExpense, Category: domain.CategoryGroceries, Amount: decimal.NewFromInt(100), Date: date(2026, 1, 2)})

	if got := s.SavingsRate(1); got != 0 {
		t.Errorf("Expected 0 without income, got %d", got)
	}
}

func TestExpensesByCategory_SortedDescending(t *testing.T) {
	s, _ := newFinanceService(2026)
	s.AddTransaction(TransactionInput{Type: domain.TransactionTypeExpense, Category: domain.CategoryGroceries, Amount: decimal.NewFromInt(100), Date: date(2026, 8, 1)})
	s.AddTransaction(TransactionInput{Type: domain.TransactionTypeExpense, Category: domain.CategoryHousing, Amount: decimal.NewFromInt(900), Date: date(2026, 8, 2)})
	s.AddTransaction(TransactionInput{Type: domain.TransactionTypeExpense, Category: domain.CategoryGroceries, Amount: decimal.NewFromInt(50), Date: date(2026, 8, 3)})

	byCategory := s.ExpensesByCategory(8)

	if len(byCategory) != 2 {
		t.Fatalf("Expected 2 categories, got %d", len(byCategory))
	}
	if byCategory[0].Category != domain.CategoryHousing || !byCategory[0].Amount.Equal(decimal.NewFromInt(900)) {
		t.Errorf("Expected housing 900 first, got %s %s", byCategory[0].Category, byCategory[0].Amount)
	}
	if byCategory[1].Category != domain.CategoryGroceries || !byCategory[1].Amount.Equal(decimal.NewFromInt(150)) {
		t.Errorf("Expected food 150 second, got %s %s", byCategory[1].Category, byCategory[1].Amount)
	}
}

func TestTotalBalanceAndDebt(t *testing.T) {
	s, _ := newFinanceService(2026)
	seedAccount(s, 1000)
	s.AddAccount(AccountInput{Name: "Card", Type: domain.AccountTypeCredit, Balance: decimal.NewFromInt(-350), IsActive: true})
	s.AddAccount(AccountInput{Name: "Closed", Type: domain.AccountTypeBank, Balance: decimal.NewFromInt(9999), IsActive: false})

	if !s.TotalBalance().Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Expected total balance 1000, got %s", s.TotalBalance())
	}
	if !s.TotalDebt().Equal(decimal.NewFromInt(350)) {
		t.Errorf("Expected total debt 350, got %s", s.TotalDebt())
	}
}

func TestTransactionsByDateRange_Inclusive(t *testing.T) {
	s, _ := newFinanceService(2026)
	s.AddTransaction(TransactionInput{Type: domain.TransactionTypeExpense, Category: domain.CategoryGroceries, Amount: decimal.NewFromInt(1), Date: date(2026, 2, 1)})
	s.AddTransaction(TransactionInput{Type: domain.TransactionTypeExpense, Category: domain.CategoryGroceries, Amount: decimal.NewFromInt(2), Date: date(2026, 2, 15)})
	s.AddTransaction(TransactionInput{Type: domain.TransactionTypeExpense, Category: domain.CategoryGroceries, Amount: decimal.NewFromInt(3), Date: date(2026, 3, 1)})

	got := s.TransactionsByDateRange(date(2026, 2, 1), date(2026, 2, 15))

	if len(got) != 2 {
		t.Errorf("Expected 2 transactions in range, got %d", len(got))
	}
}

func TestResetFinances_ReseedsAccounts(t *testing.T) {
	s, _ := newFinanceService(2026)
	s.AddTransaction(TransactionInput{Type: domain.TransactionTypeExpense, Category: domain.CategoryGroceries, Amount: decimal.NewFromInt(10), Date: date(2026, 1, 1)})

	s.ResetFinances()

	if len(s.Data().Transactions) != 0 {
		t.Error("Expected transactions cleared")
	}
	if len(s.Data().Accounts) != 2 {
		t.Errorf("Expected default accounts reseeded, got %d", len(s.Data().Accounts))
	}
	if s.Data().Year != 2026 {
		t.Errorf("Reset must keep the year, got %d", s.Data().Year)
	}
}

func TestChangeYear_Finance(t *testing.T) {
	s, _ := newFinanceService(2026)
	s.AddTransaction(TransactionInput{Type: domain.TransactionTypeIncome, Category: domain.CategorySalary, Amount: decimal.NewFromInt(100), Date: date(2026, 1, 1)})

	s.ChangeYear(2027)

	if s.Data().Year != 2027 {
		t.Errorf("Expected year 2027, got %d", s.Data().Year)
	}
	if len(s.Data().Transactions) != 0 {
		t.Error("Expected fresh ledger for new year")
	}

	s.ChangeYear(2026)
	if len(s.Data().Transactions) != 1 {
		t.Error("Expected 2026 ledger restored from storage")
	}
}
