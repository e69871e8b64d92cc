package memory

import (
	"context"
	"errors"
	"testing"

	"compta/internal/core"
)

func TestSeedAndInsert(t *testing.T) {
	s := New()
	ctx := context.Background()

	cats, err := s.ListCategories(ctx)
	if err != nil || len(cats) != 6 {
		t.Fatalf("expected 6 seed categories, got %d (err=%v)", len(cats), err)
	}

	id, err := s.InsertTransaction(ctx, core.Transaction{
		Date: "2024-01-01", Label: "Test", Amount: core.MustMoney("10.00"), CategoryID: cats[0].ID,
	})
	if err != nil || id == 0 {
		t.Fatalf("insert failed: id=%d err=%v", id, err)
	}

	_, err = s.InsertTransaction(ctx, core.Transaction{
		Date: "2024-01-01", Label: "Bad", Amount: core.MustMoney("10.00"), CategoryID: 999,
	})
	if !errors.Is(err, core.ErrValidation) {
		t.Fatalf("expected ErrValidation for dangling category, got %v", err)
	}
}

func TestBulkInsertAllOrNothing(t *testing.T) {
	s := New()
	ctx := context.Background()
	cats, _ := s.ListCategories(ctx)

	err := s.BulkInsertTransactions(ctx, []core.Transaction{
		{Date: "2024-01-01", Label: "ok", Amount: core.MustMoney("1"), CategoryID: cats[0].ID},
		{Date: "2024-01-02", Label: "bad", Amount: core.MustMoney("2"), CategoryID: 999},
	})
	if !errors.Is(err, core.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	txs, _ := s.ListTransactions(ctx, 10, 0)
	if len(txs) != 0 {
		t.Fatalf("failed bulk insert persisted %d rows", len(txs))
	}
}

func TestListOrdering(t *testing.T) {
	s := New()
	ctx := context.Background()
	cats, _ := s.ListCategories(ctx)

	for _, d := range []string{"2024-01-10", "2024-03-01", "2024-02-15"} {
		if _, err := s.InsertTransaction(ctx, core.Transaction{
			Date: d, Label: "t", Amount: core.MustMoney("1"), CategoryID: cats[0].ID,
		}); err != nil {
			t.Fatal(err)
		}
	}

	txs, _ := s.ListTransactions(ctx, 10, 0)
	if txs[0].Date != "2024-03-01" || txs[2].Date != "2024-01-10" {
		t.Fatalf("wrong list order: %v %v %v", txs[0].Date, txs[1].Date, txs[2].Date)
	}

	ranged, _ := s.TransactionsByDateRange(ctx, "2024-01-10", "2024-02-15")
	if len(ranged) != 2 || ranged[0].Date != "2024-01-10" {
		t.Fatalf("wrong range result: %v", ranged)
	}
}

func TestSettingsFallback(t *testing.T) {
	s := New()
	ctx := context.Background()

	v, err := s.Setting(ctx, "currency")
	if err != nil || v != "€" {
		t.Fatalf("default lookup: %q %v", v, err)
	}
	if err := s.SetSetting(ctx, "currency", "$"); err != nil {
		t.Fatal(err)
	}
	v, _ = s.Setting(ctx, "currency")
	if v != "$" {
		t.Fatalf("stored value should win, got %q", v)
	}
	if _, err := s.Setting(ctx, "bogus"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
