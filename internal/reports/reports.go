// Package reports computes period aggregates over the ledger. It is pure
// read-side: all arithmetic happens on exact decimals in process, so any
// store implementing the ledger ports yields identical results.
package reports

import (
	"context"
	"fmt"
	"sort"

	"compta/internal/core"
	"compta/internal/ledger"
)

type Service struct {
	txs  ledger.TransactionStore
	cats ledger.CategoryStore
}

func New(txs ledger.TransactionStore, cats ledger.CategoryStore) *Service {
	return &Service{txs: txs, cats: cats}
}

// TotalsByPeriod sums the inclusive date range into income (positive
// amounts), expense (negative amounts, itself negative or zero) and net
// balance, each quantized to two decimals. An empty range yields all zeros.
func (s *Service) TotalsByPeriod(ctx context.Context, start, end string) (core.PeriodTotals, error) {
	txs, err := s.txs.TransactionsByDateRange(ctx, start, end)
	if err != nil {
		return core.PeriodTotals{}, fmt.Errorf("totals by period: %w", err)
	}

	var income, expense, balance core.Money
	for _, t := range txs {
		switch {
		case t.Amount.Sign() > 0:
			income = income.Add(t.Amount)
		case t.Amount.Sign() < 0:
			expense = expense.Add(t.Amount)
		}
		balance = balance.Add(t.Amount)
	}

	return core.PeriodTotals{
		Income:  income.Quantize(2),
		Expense: expense.Quantize(2),
		Balance: balance.Quantize(2),
	}, nil
}

// TotalsByCategory sums the inclusive date range per category, ordered by
// amount descending. Ties keep ascending category id order (stable).
// Transactions whose category was deleted aggregate under an empty name.
func (s *Service) TotalsByCategory(ctx context.Context, start, end string) ([]core.CategoryTotal, error) {
	txs, err := s.txs.TransactionsByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("totals by category: %w", err)
	}
	if len(txs) == 0 {
		return nil, nil
	}

	cats, err := s.cats.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("totals by category: %w", err)
	}
	names := make(map[int64]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}

	sums := map[int64]core.Money{}
	for _, t := range txs {
		sums[t.CategoryID] = sums[t.CategoryID].Add(t.Amount)
	}

	out := make([]core.CategoryTotal, 0, len(sums))
	for id, amount := range sums {
		out = append(out, core.CategoryTotal{CategoryID: id, Name: names[id], Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CategoryID < out[j].CategoryID })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Amount.Cmp(out[j].Amount) > 0 })
	return out, nil
}

// MonthlyBalance returns the net sum per "YYYY-MM" month of the given year,
// ascending, for months that have at least one transaction.
func (s *Service) MonthlyBalance(ctx context.Context, year int) ([]core.MonthBalance, error) {
	start := fmt.Sprintf("%04d-01-01", year)
	end := fmt.Sprintf("%04d-12-31", year)
	txs, err := s.txs.TransactionsByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("monthly balance: %w", err)
	}

	sums := map[string]core.Money{}
	for _, t := range txs {
		month := t.Date[:7]
		sums[month] = sums[month].Add(t.Amount)
	}

	out := make([]core.MonthBalance, 0, len(sums))
	for month, net := range sums {
		out = append(out, core.MonthBalance{Month: month, Net: net})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}
