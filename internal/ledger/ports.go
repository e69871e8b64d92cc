// Package ledger defines the storage ports of the bookkeeping core. Any
// engine that preserves the stated ordering and atomicity guarantees can sit
// behind them; the module ships a SQLite store and an in-memory store.
package ledger

import (
	"context"

	"compta/internal/core"
)

// Default settings, merged under stored values on every lookup and export.
var DefaultSettings = map[string]string{
	"currency":                 "€",
	"tax_regime":               "auto-entrepreneur",
	"vat_threshold":            "36500",
	"reconciliation_tolerance": "0.50",
	"backup_directory":         "",
}

type (
	TransactionStore interface {
		// InsertTransaction persists a new transaction and returns its id.
		InsertTransaction(ctx context.Context, t core.Transaction) (int64, error)
		// UpdateTransaction replaces the whole record by id. It returns
		// core.ErrValidation when the id is zero and core.ErrNotFound when
		// no row has that id.
		UpdateTransaction(ctx context.Context, t core.Transaction) error
		DeleteTransaction(ctx context.Context, id int64) error
		// BulkInsertTransactions persists all records in one durable unit;
		// if any record is invalid none is persisted.
		BulkInsertTransactions(ctx context.Context, txs []core.Transaction) error
		// ListTransactions pages the ledger ordered by date descending then
		// id descending.
		ListTransactions(ctx context.Context, limit, offset int) ([]core.Transaction, error)
		// TransactionsByDateRange returns the transactions with
		// start <= date <= end ordered ascending by date then id.
		TransactionsByDateRange(ctx context.Context, start, end string) ([]core.Transaction, error)
		// MarkReconciled sets the reconciled flag for all ids in one
		// durable unit; an empty id set is a no-op.
		MarkReconciled(ctx context.Context, ids []int64) error
	}

	CategoryStore interface {
		ListCategories(ctx context.Context) ([]core.Category, error)
		CreateCategory(ctx context.Context, name string, kind core.CategoryKind) (int64, error)
		// DeleteCategory is a hard delete and deliberately does not guard
		// against transactions still referencing the category.
		DeleteCategory(ctx context.Context, id int64) error
	}

	CounterpartyStore interface {
		ListCounterparties(ctx context.Context) ([]core.Counterparty, error)
		// UpsertCounterparty keys on name: an existing counterparty has its
		// kind updated in place, otherwise a new row is created. Either way
		// the id is returned.
		UpsertCounterparty(ctx context.Context, name, kind string) (int64, error)
	}

	SettingsStore interface {
		// Setting returns the stored value for key, falling back to
		// DefaultSettings; core.ErrNotFound for an unknown key.
		Setting(ctx context.Context, key string) (string, error)
		SetSetting(ctx context.Context, key, value string) error
		// ExportSettings materializes the full merged view, including every
		// default key even if unset in storage.
		ExportSettings(ctx context.Context) (map[string]string, error)
		ImportSettings(ctx context.Context, values map[string]string) error
	}

	// RegisterReader provides the read-only projections consumed by the
	// export collaborators.
	RegisterReader interface {
		// ListTransactionsJoined returns every transaction with resolved
		// category and counterparty names, ordered ascending by date.
		ListTransactionsJoined(ctx context.Context) ([]core.JoinedTransaction, error)
		// ReceiptsByPeriod returns the positive-amount transactions of the
		// inclusive period, joined, ordered ascending by date.
		ReceiptsByPeriod(ctx context.Context, start, end string) ([]core.JoinedTransaction, error)
	}

	// Store is the full ledger surface.
	Store interface {
		TransactionStore
		CategoryStore
		CounterpartyStore
		SettingsStore
		RegisterReader
		Close() error
	}
)
