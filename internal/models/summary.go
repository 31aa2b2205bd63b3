package models

// Summary holds the dashboard totals for one user. All three values are pure
// read-side reductions over already-consistent rows.
type Summary struct {
	TotalBalance float64 `json:"total_balance"`
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
}
