package core

import (
	"errors"
	"strings"
	"time"
)

const (
	KindIncome  CategoryKind = "income"
	KindExpense CategoryKind = "expense"
)

type (
	CategoryKind string

	// Category tags transactions. Name is unique across all categories.
	// ID 0 means the category has not been persisted yet.
	Category struct {
		ID   int64
		Name string
		Kind CategoryKind
	}

	// Counterparty is the other party of a transaction. Name acts as the
	// natural key for upserts; Kind is free-form and optional.
	Counterparty struct {
		ID   int64
		Name string
		Kind string
	}

	// Transaction is a single ledger entry. It is a plain value with no
	// back-reference to storage; ID 0 means not persisted and
	// CounterpartyID 0 means no counterparty.
	Transaction struct {
		ID             int64
		Date           string // ISO-8601 calendar date, "2006-01-02"
		Label          string
		Amount         Money
		CategoryID     int64
		CounterpartyID int64
		PaymentMethod  string
		Note           string
		Attachment     string
		Reconciled     bool
		ExternalRef    string
	}

	// JoinedTransaction is the read-only projection consumed by export
	// collaborators: a transaction plus resolved category and counterparty
	// names (empty when the reference is missing).
	JoinedTransaction struct {
		Transaction
		CategoryName     string
		CounterpartyName string
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date, want YYYY-MM-DD")
	ErrEmptyLabel    = errors.New("empty label")
	ErrEmptyName     = errors.New("empty name")
	ErrInvalidKind   = errors.New("invalid category kind")

	// ErrNotFound reports an update or delete against an id that does not
	// exist in the store.
	ErrNotFound = errors.New("not found")
	// ErrValidation reports input the caller must fix, such as a missing
	// id on update or a dangling category reference.
	ErrValidation = errors.New("validation failed")
)

// ValidDate reports whether s is a canonical zero-padded ISO-8601 calendar
// date. Lexicographic order on such dates equals chronological order, which
// the range queries rely on.
func ValidDate(s string) bool {
	t, err := time.Parse("2006-01-02", s)
	return err == nil && t.Format("2006-01-02") == s
}

func (k CategoryKind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if !c.Kind.Valid() {
		return ErrInvalidKind
	}
	return nil
}

func (t Transaction) Validate() error {
	if !ValidDate(t.Date) {
		return ErrInvalidDate
	}
	if strings.TrimSpace(t.Label) == "" {
		return ErrEmptyLabel
	}
	if t.CategoryID <= 0 {
		return ErrValidation
	}
	return nil
}
