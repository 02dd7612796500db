package domain

type TransactionType string
type TransactionCategory string
type PaymentMethod string
type RecurrenceType string

const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
)

// Income categories
const (
	CategorySalary      TransactionCategory = "salary"
	CategoryFreelance   TransactionCategory = "freelance"
	CategoryBusiness    TransactionCategory = "business"
	CategoryInvestments TransactionCategory = "investments"
	CategoryRental      TransactionCategory = "rental"
	CategoryBonus       TransactionCategory = "bonus"
	CategoryGifts       TransactionCategory = "gifts"
	CategoryRefunds     TransactionCategory = "refunds"
	CategorySales       TransactionCategory = "sales"
	CategoryOtherIncome TransactionCategory = "other_income"
)

// Expense categories
const (
	CategoryHousing       TransactionCategory = "housing"
	CategoryUtilities     TransactionCategory = "utilities"
	CategoryGroceries     TransactionCategory = "groceries"
	CategoryTransport     TransactionCategory = "transport"
	CategoryHealth        TransactionCategory = "health"
	CategoryEducation     TransactionCategory = "education"
	CategoryEntertainment TransactionCategory = "entertainment"
	CategoryDining        TransactionCategory = "dining"
	CategoryClothing      TransactionCategory = "clothing"
	CategoryTechnology    TransactionCategory = "technology"
	CategoryHome          TransactionCategory = "home"
	CategoryPets          TransactionCategory = "pets"
	CategoryPersonalCare  TransactionCategory = "personal_care"
	CategoryInsurance     TransactionCategory = "insurance"
	CategoryDebt          TransactionCategory = "debt"
	CategoryTaxes         TransactionCategory = "taxes"
	CategoryDonations     TransactionCategory = "donations"
	CategoryGiftsGiven    TransactionCategory = "gifts_given"
	CategoryTravelExpense TransactionCategory = "travel"
	CategorySubscriptions TransactionCategory = "subscriptions"
	CategorySavings       TransactionCategory = "savings_investment"
	CategoryOtherExpense  TransactionCategory = "other_expense"
)

const (
	RecurrenceOnce     RecurrenceType = "once"
	RecurrenceDaily    RecurrenceType = "daily"
	RecurrenceWeekly   RecurrenceType = "weekly"
	RecurrenceBiweekly RecurrenceType = "biweekly"
	RecurrenceMonthly  RecurrenceType = "monthly"
	RecurrenceYearly   RecurrenceType = "yearly"
)

const (
	PaymentMethodCash       PaymentMethod = "cash"
	PaymentMethodDebitCard  PaymentMethod = "debit_card"
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodTransfer   PaymentMethod = "transfer"
	PaymentMethodCheck      PaymentMethod = "check"
	PaymentMethodPaypal     PaymentMethod = "paypal"
	PaymentMethodOther      PaymentMethod = "other"
)

// IncomeCategoryLabels maps income categories to display text
var IncomeCategoryLabels = map[TransactionCategory]string{
	CategorySalary:      "Salary",
	CategoryFreelance:   "Freelance",
	CategoryBusiness:    "Business",
	CategoryInvestments: "Investments",
	CategoryRental:      "Rental",
	CategoryBonus:       "Bonus",
	CategoryGifts:       "Gifts",
	CategoryRefunds:     "Refunds",
	CategorySales:       "Sales",
	CategoryOtherIncome: "Other Income",
}

// ExpenseCategoryLabels maps expense categories to display text
var ExpenseCategoryLabels = map[TransactionCategory]string{
	CategoryHousing:       "Housing",
	CategoryUtilities:     "Utilities",
	CategoryGroceries:     "Groceries",
	CategoryTransport:     "Transport",
	CategoryHealth:        "Health",
	CategoryEducation:     "Education",
	CategoryEntertainment: "Entertainment",
	CategoryDining:        "Dining Out",
	CategoryClothing:      "Clothing",
	CategoryTechnology:    "Technology",
	CategoryHome:          "Home",
	CategoryPets:          "Pets",
	CategoryPersonalCare:  "Personal Care",
	CategoryInsurance:     "Insurance",
	CategoryDebt:          "Debt Payments",
	CategoryTaxes:         "Taxes",
	CategoryDonations:     "Donations",
	CategoryGiftsGiven:    "Gifts Given",
	CategoryTravelExpense: "Travel",
	CategorySubscriptions: "Subscriptions",
	CategorySavings:       "Savings & Investments",
	CategoryOtherExpense:  "Other Expenses",
}

// PaymentMethodLabels maps payment methods to display text
var PaymentMethodLabels = map[PaymentMethod]string{
	PaymentMethodCash:       "Cash",
	PaymentMethodDebitCard:  "Debit Card",
	PaymentMethodCreditCard: "Credit Card",
	PaymentMethodTransfer:   "Bank Transfer",
	PaymentMethodCheck:      "Check",
	PaymentMethodPaypal:     "PayPal",
	PaymentMethodOther:      "Other",
}

// RecurrenceLabels maps recurrence types to display text
var RecurrenceLabels = map[RecurrenceType]string{
	RecurrenceOnce:     "One Time",
	RecurrenceDaily:    "Daily",
	RecurrenceWeekly:   "Weekly",
	RecurrenceBiweekly: "Biweekly",
	RecurrenceMonthly:  "Monthly",
	RecurrenceYearly:   "Yearly",
}

// ValidCategory reports whether the category is valid for the transaction
// type. Transfers carry no category constraint.
func ValidCategory(txType TransactionType, category TransactionCategory) bool {
	switch txType {
	case TransactionTypeIncome:
		_, ok := IncomeCategoryLabels[category]
		return ok
	case TransactionTypeExpense:
		_, ok := ExpenseCategoryLabels[category]
		return ok
	case TransactionTypeTransfer:
		return true
	}
	return false
}

// CategoryLabel returns the display text for any known category
func CategoryLabel(category TransactionCategory) string {
	if label, ok := IncomeCategoryLabels[category]; ok {
		return label
	}
	if label, ok := ExpenseCategoryLabels[category]; ok {
		return label
	}
	return string(category)
}
