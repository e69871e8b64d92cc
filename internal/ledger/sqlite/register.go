package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"compta/internal/core"
)

const joinedSelect = `
	SELECT t.id, t.date, t.label, t.amount, t.category_id, t.counterparty_id,
	       t.payment_method, t.note, t.attachment, t.reconciled, t.external_ref,
	       c.name, cp.name
	FROM transactions t
	LEFT JOIN categories c ON c.id = t.category_id
	LEFT JOIN counterparties cp ON cp.id = t.counterparty_id`

// ListTransactionsJoined returns the whole ledger with resolved category and
// counterparty names, ordered ascending by date. Dangling references resolve
// to empty names.
func (r *Repository) ListTransactionsJoined(ctx context.Context) ([]core.JoinedTransaction, error) {
	rows, err := r.db.QueryContext(ctx, joinedSelect+` ORDER BY t.date ASC, t.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list transactions joined: %w", err)
	}
	defer rows.Close()

	return collectJoined(rows)
}

// ReceiptsByPeriod returns the positive-amount transactions of the inclusive
// period, joined, for the receipts register. The sign filter happens on the
// decoded decimal, not in SQL, since amounts are stored as text.
func (r *Repository) ReceiptsByPeriod(ctx context.Context, start, end string) ([]core.JoinedTransaction, error) {
	rows, err := r.db.QueryContext(ctx, joinedSelect+`
		WHERE t.date BETWEEN ? AND ?
		ORDER BY t.date ASC, t.id ASC`, start, end)
	if err != nil {
		return nil, fmt.Errorf("receipts by period: %w", err)
	}
	defer rows.Close()

	joined, err := collectJoined(rows)
	if err != nil {
		return nil, err
	}

	receipts := joined[:0]
	for _, j := range joined {
		if j.Amount.Sign() > 0 {
			receipts = append(receipts, j)
		}
	}
	return receipts, nil
}

func collectJoined(rows *sql.Rows) ([]core.JoinedTransaction, error) {
	var out []core.JoinedTransaction
	for rows.Next() {
		var (
			j                core.JoinedTransaction
			amount           string
			counterpartyID   sql.NullInt64
			attachment       sql.NullString
			externalRef      sql.NullString
			categoryName     sql.NullString
			counterpartyName sql.NullString
		)
		if err := rows.Scan(&j.ID, &j.Date, &j.Label, &amount, &j.CategoryID,
			&counterpartyID, &j.PaymentMethod, &j.Note, &attachment,
			&j.Reconciled, &externalRef, &categoryName, &counterpartyName); err != nil {
			return nil, fmt.Errorf("scan joined transaction: %w", err)
		}

		m, err := core.NewMoney(amount)
		if err != nil {
			return nil, fmt.Errorf("corrupt stored amount %q for transaction %d: %w", amount, j.ID, err)
		}
		j.Amount = m
		j.CounterpartyID = counterpartyID.Int64
		j.Attachment = attachment.String
		j.ExternalRef = externalRef.String
		j.CategoryName = categoryName.String
		j.CounterpartyName = counterpartyName.String
		out = append(out, j)
	}
	return out, rows.Err()
}
