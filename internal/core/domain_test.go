package core

import (
	"errors"
	"testing"
)

func TestValidDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2024-01-01", true},
		{"2024-12-31", true},
		{"2024-02-30", false},
		{"2024-1-1", false}, // must be zero-padded for lexicographic order
		{"01/02/2024", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidDate(tc.in); got != tc.ok {
			t.Fatalf("ValidDate(%q) = %v, want %v", tc.in, got, tc.ok)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{Date: "2024-03-15", Label: "Prestation", Amount: MustMoney("100.00"), CategoryID: 1}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	badDate := valid
	badDate.Date = "15/03/2024"
	if err := badDate.Validate(); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}

	noLabel := valid
	noLabel.Label = "  "
	if err := noLabel.Validate(); !errors.Is(err, ErrEmptyLabel) {
		t.Fatalf("expected ErrEmptyLabel, got %v", err)
	}

	noCategory := valid
	noCategory.CategoryID = 0
	if err := noCategory.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCategoryValidate(t *testing.T) {
	if err := (Category{Name: "Ventes", Kind: KindIncome}).Validate(); err != nil {
		t.Fatalf("valid category rejected: %v", err)
	}
	if err := (Category{Name: "", Kind: KindExpense}).Validate(); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if err := (Category{Name: "X", Kind: "misc"}).Validate(); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}
