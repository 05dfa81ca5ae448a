package models

import "time"

// ExpenseCategory classifies an operating expense
type ExpenseCategory string

const (
	ExpenseEnergy      ExpenseCategory = "energy"
	ExpenseInternet    ExpenseCategory = "internet"
	ExpenseWater       ExpenseCategory = "water"
	ExpenseSalary      ExpenseCategory = "salary"
	ExpenseMaintenance ExpenseCategory = "maintenance"
	ExpenseCleaning    ExpenseCategory = "cleaning"
	ExpenseSecurity    ExpenseCategory = "security"
	ExpenseTaxes       ExpenseCategory = "taxes"
	ExpenseOther       ExpenseCategory = "other"
)

// ExpenseCategories lists every valid expense category
var ExpenseCategories = []ExpenseCategory{
	ExpenseEnergy, ExpenseInternet, ExpenseWater, ExpenseSalary,
	ExpenseMaintenance, ExpenseCleaning, ExpenseSecurity, ExpenseTaxes,
	ExpenseOther,
}

// Valid reports whether c is a known expense category
func (c ExpenseCategory) Valid() bool {
	for _, v := range ExpenseCategories {
		if c == v {
			return true
		}
	}
	return false
}

// Expense represents one operating expense entry
type Expense struct {
	ID          int64           `json:"id"`
	Category    ExpenseCategory `json:"category"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Date        string          `json:"date"` // YYYY-MM-DD
	Recurring   bool            `json:"recurring"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ExpenseRequest represents the request body for creating or updating an expense
type ExpenseRequest struct {
	Category    ExpenseCategory `json:"category"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Date        string          `json:"date"` // YYYY-MM-DD
	Recurring   bool            `json:"recurring"`
}
