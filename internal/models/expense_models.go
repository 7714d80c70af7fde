package models

import "time"

// ExpenseCategory classifies an expense entry
type ExpenseCategory string

const (
	ExpenseCategoryUtilities ExpenseCategory = "Utilities"
	ExpenseCategoryRent      ExpenseCategory = "Rent"
	ExpenseCategorySalaries  ExpenseCategory = "Salaries"
	ExpenseCategorySupplies  ExpenseCategory = "Supplies"
	ExpenseCategoryMarketing ExpenseCategory = "Marketing"
	ExpenseCategoryOther     ExpenseCategory = "Other"
)

// IsValidExpenseCategory checks if the provided string is a valid ExpenseCategory.
func IsValidExpenseCategory(category string) bool {
	switch ExpenseCategory(category) {
	case ExpenseCategoryUtilities,
		ExpenseCategoryRent,
		ExpenseCategorySalaries,
		ExpenseCategorySupplies,
		ExpenseCategoryMarketing,
		ExpenseCategoryOther:
		return true
	default:
		return false
	}
}

// Expense is an entry of the append-only expense ledger
type Expense struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Category    ExpenseCategory `json:"category"`
	Date        time.Time       `json:"date"`
}
