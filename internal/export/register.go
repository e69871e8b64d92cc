// Package export renders read-only ledger projections to CSV: the complete
// transaction dump and the receipts register ("livre des recettes"). PDF
// rendering is left to outer tooling; this package only owns the data rows.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"compta/internal/ledger"
)

type Service struct {
	reader ledger.RegisterReader
}

func New(reader ledger.RegisterReader) *Service {
	return &Service{reader: reader}
}

// WriteAllTransactionsCSV dumps the whole ledger with resolved category and
// counterparty names, oldest first.
func (s *Service) WriteAllTransactionsCSV(ctx context.Context, w io.Writer) error {
	rows, err := s.reader.ListTransactionsJoined(ctx)
	if err != nil {
		return fmt.Errorf("export transactions: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"date", "libellé", "montant", "catégorie", "tiers",
		"mode_paiement", "note", "pièce_jointe", "rapproché", "référence_externe",
	}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range rows {
		reconciled := "0"
		if r.Reconciled {
			reconciled = "1"
		}
		if err := cw.Write([]string{
			r.Date,
			r.Label,
			r.Amount.StringFixed(),
			r.CategoryName,
			r.CounterpartyName,
			r.PaymentMethod,
			r.Note,
			r.Attachment,
			reconciled,
			r.ExternalRef,
		}); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteReceiptsRegisterCSV renders the receipts register for the inclusive
// period: positive amounts only, fixed to two decimals, with the external
// reference carried as an opaque column.
func (s *Service) WriteReceiptsRegisterCSV(ctx context.Context, w io.Writer, start, end string) error {
	rows, err := s.reader.ReceiptsByPeriod(ctx, start, end)
	if err != nil {
		return fmt.Errorf("export receipts register: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"Date", "Client", "Libellé", "Montant TTC", "Mode de paiement", "Référence",
	}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range rows {
		if err := cw.Write([]string{
			r.Date,
			r.CounterpartyName,
			r.Label,
			r.Amount.StringFixed(),
			r.PaymentMethod,
			r.ExternalRef,
		}); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
