package core

// PeriodTotals holds the aggregates for an inclusive date range, each
// quantized to two decimals. Expense is the sum of negative amounts and is
// itself negative or zero.
type PeriodTotals struct {
	Income  Money
	Expense Money
	Balance Money
}

// CategoryTotal is an amount summed per category. Name is empty when the
// referenced category no longer exists.
type CategoryTotal struct {
	CategoryID int64
	Name       string
	Amount     Money
}

// MonthBalance is the net sum for a "YYYY-MM" month.
type MonthBalance struct {
	Month string
	Net   Money
}
