// Package sqlite implements the ledger ports on an embedded SQLite
// database. Every write runs inside a single durable transaction so a crash
// mid-operation leaves the store in its prior state.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"compta/internal/core"
	"compta/internal/ledger"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db *sql.DB
}

// Compile-time check that Repository implements the full ledger surface.
var _ ledger.Store = (*Repository)(nil)

// New opens (creating if needed) the database at dbPath and applies pending
// migrations. The parent directory is created when absent.
func New(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const transactionColumns = `id, date, label, amount, category_id, counterparty_id,
	payment_method, note, attachment, reconciled, external_ref`

const insertTransactionSQL = `
	INSERT INTO transactions(
		date, label, amount, category_id, counterparty_id, payment_method,
		note, attachment, reconciled, external_ref
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (r *Repository) InsertTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, insertTransactionSQL, transactionArgs(t)...)
	if err != nil {
		return 0, writeError("insert transaction", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert transaction id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction created", "id", id, "label", t.Label, "amount", t.Amount.String())
	return id, nil
}

func (r *Repository) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	if t.ID == 0 {
		return fmt.Errorf("update transaction without id: %w", core.ErrValidation)
	}
	if err := t.Validate(); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE transactions SET
			date=?, label=?, amount=?, category_id=?, counterparty_id=?,
			payment_method=?, note=?, attachment=?, reconciled=?, external_ref=?
		WHERE id=?`,
		append(transactionArgs(t), t.ID)...)
	if err != nil {
		return writeError("update transaction", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update transaction rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("transaction %d: %w", t.ID, core.ErrNotFound)
	}

	slog.InfoContext(ctx, "Transaction updated", "id", t.ID)
	return nil
}

func (r *Repository) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id=?`, id)
	if err != nil {
		return writeError("delete transaction", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transaction rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("transaction %d: %w", id, core.ErrNotFound)
	}

	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	return nil
}

// BulkInsertTransactions inserts the whole batch in one database
// transaction: if any record is invalid none is persisted.
func (r *Repository) BulkInsertTransactions(ctx context.Context, txs []core.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	for _, t := range txs {
		if err := t.Validate(); err != nil {
			return err
		}
	}

	dbtx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bulk insert: %w", err)
	}
	defer dbtx.Rollback()

	stmt, err := dbtx.PrepareContext(ctx, insertTransactionSQL)
	if err != nil {
		return fmt.Errorf("prepare bulk insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range txs {
		if _, err := stmt.ExecContext(ctx, transactionArgs(t)...); err != nil {
			return writeError("bulk insert transaction", err)
		}
	}

	if err := dbtx.Commit(); err != nil {
		return fmt.Errorf("commit bulk insert: %w", err)
	}

	slog.InfoContext(ctx, "Transactions bulk inserted", "count", len(txs))
	return nil
}

func (r *Repository) ListTransactions(ctx context.Context, limit, offset int) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		ORDER BY date DESC, id DESC
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func (r *Repository) TransactionsByDateRange(ctx context.Context, start, end string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE date BETWEEN ? AND ?
		ORDER BY date ASC, id ASC`, start, end)
	if err != nil {
		return nil, fmt.Errorf("transactions by date range: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func (r *Repository) MarkReconciled(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	if _, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET reconciled=1 WHERE id IN (`+placeholders+`)`, args...); err != nil {
		return writeError("mark reconciled", err)
	}

	slog.InfoContext(ctx, "Transactions marked reconciled", "count", len(ids))
	return nil
}

func transactionArgs(t core.Transaction) []any {
	return []any{
		t.Date,
		t.Label,
		t.Amount.String(),
		t.CategoryID,
		nullID(t.CounterpartyID),
		t.PaymentMethod,
		t.Note,
		nullString(t.Attachment),
		t.Reconciled,
		nullString(t.ExternalRef),
	}
}

func collectTransactions(rows *sql.Rows) ([]core.Transaction, error) {
	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTransaction(rows *sql.Rows) (core.Transaction, error) {
	var (
		t              core.Transaction
		amount         string
		counterpartyID sql.NullInt64
		attachment     sql.NullString
		externalRef    sql.NullString
	)
	if err := rows.Scan(&t.ID, &t.Date, &t.Label, &amount, &t.CategoryID,
		&counterpartyID, &t.PaymentMethod, &t.Note, &attachment,
		&t.Reconciled, &externalRef); err != nil {
		return core.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}

	m, err := core.NewMoney(amount)
	if err != nil {
		// Write paths only ever store canonical decimal text, so this is a
		// store integrity failure, not caller input.
		return core.Transaction{}, fmt.Errorf("corrupt stored amount %q for transaction %d: %w", amount, t.ID, err)
	}
	t.Amount = m
	t.CounterpartyID = counterpartyID.Int64
	t.Attachment = attachment.String
	t.ExternalRef = externalRef.String
	return t, nil
}

func nullID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// writeError maps constraint violations to the caller-fixable validation
// error; everything else surfaces as a storage failure.
func writeError(op string, err error) error {
	msg := err.Error()
	if strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "CHECK constraint failed") {
		return fmt.Errorf("%s: %s: %w", op, msg, core.ErrValidation)
	}
	return fmt.Errorf("%s: %w", op, err)
}
