package core

import "testing"

func tx(id int64, amount string) Transaction {
	return Transaction{ID: id, Date: "2024-01-01", Label: "t", Amount: MustMoney(amount), CategoryID: 1}
}

func TestReconcileWithinTolerance(t *testing.T) {
	txs := []Transaction{tx(1, "100.00"), tx(2, "100.02")}
	got := Reconcile(txs, MustMoney("0.05"))
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("expected [2], got %v", got)
	}
}

func TestReconcileToleranceBoundary(t *testing.T) {
	// Exactly tolerance apart is a match, one cent more is not.
	match := Reconcile([]Transaction{tx(1, "100.00"), tx(2, "100.05")}, MustMoney("0.05"))
	if len(match) != 1 || match[0] != 2 {
		t.Fatalf("difference == tolerance should match, got %v", match)
	}
	miss := Reconcile([]Transaction{tx(1, "100.00"), tx(2, "100.06")}, MustMoney("0.05"))
	if len(miss) != 0 {
		t.Fatalf("difference > tolerance should not match, got %v", miss)
	}
}

func TestReconcileZeroToleranceExact(t *testing.T) {
	txs := []Transaction{tx(1, "10.00"), tx(2, "10.004"), tx(3, "10.01")}
	// 10.004 quantizes to 10.00 so it matches exactly; 10.01 does not.
	got := Reconcile(txs, MustMoney("0"))
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("expected [2], got %v", got)
	}
}

func TestReconcileGreedyFirstMatch(t *testing.T) {
	// The second transaction matches the first and is consumed; it does not
	// become a reference point, so the third matches the first as well.
	txs := []Transaction{tx(1, "50.00"), tx(2, "50.01"), tx(3, "49.99")}
	got := Reconcile(txs, MustMoney("0.02"))
	if len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Fatalf("expected [2 3], got %v", got)
	}
}

func TestReconcileSkipsUnpersisted(t *testing.T) {
	txs := []Transaction{tx(0, "75.00"), tx(5, "75.00"), tx(6, "75.00")}
	// The unpersisted transaction neither reports nor seeds the seen set:
	// id 5 becomes the reference, id 6 matches it.
	got := Reconcile(txs, MustMoney("0"))
	if len(got) != 1 || got[0] != 6 {
		t.Fatalf("expected [6], got %v", got)
	}
}

func TestReconcileDeterministicOrder(t *testing.T) {
	txs := []Transaction{tx(1, "20.00"), tx(2, "30.00"), tx(3, "20.00"), tx(4, "30.00")}
	for i := 0; i < 10; i++ {
		got := Reconcile(txs, MustMoney("0"))
		if len(got) != 2 || got[0] != 3 || got[1] != 4 {
			t.Fatalf("expected [3 4], got %v", got)
		}
	}
}

func TestReconcileEmpty(t *testing.T) {
	if got := Reconcile(nil, MustMoney("0.50")); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}
