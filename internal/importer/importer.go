// Package importer converts rows of a delimited text source into canonical
// ledger transactions under a user-declared column mapping. Nothing here
// touches storage: callers submit the parsed batch explicitly, so a parse
// failure never leaves partial data in the store.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"

	"compta/internal/core"
)

// DefaultDelimiter matches the semicolon-separated exports most French
// banks produce.
const DefaultDelimiter = ';'

// ParseError reports the first row whose amount column failed decimal
// parsing. The rows parsed before it are still returned to the caller so
// the user can locate and fix the source file.
type ParseError struct {
	Line   int // 1-based line in the source, header included
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: column %q: cannot parse amount %q", e.Line, e.Column, e.Value)
}

func (e *ParseError) Unwrap() error { return e.Err }

type Importer struct {
	delimiter rune
}

func New(delimiter rune) *Importer {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	return &Importer{delimiter: delimiter}
}

// Preview returns up to limit raw rows keyed by header name, without any
// numeric parsing or validation. Mapping configuration UIs feed on this.
func (im *Importer) Preview(r io.Reader, limit int) ([]map[string]string, error) {
	reader := im.newReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var rows []map[string]string
	for len(rows) < limit {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		rows = append(rows, rowMap(header, record))
	}
	return rows, nil
}

// Parse converts every data row into an unpersisted transaction: id zero,
// no counterparty (name resolution is the caller's job via the counterparty
// upsert), reconciled false, empty external reference. The amount column is
// parsed as an exact decimal after comma normalization and negated when the
// mapping says so. On a malformed amount the successfully parsed prefix is
// returned together with a *ParseError.
func (im *Importer) Parse(r io.Reader, m Mapping) ([]core.Transaction, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	reader := im.newReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var txs []core.Transaction
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return txs, fmt.Errorf("read row: %w", err)
		}
		line++

		row := rowMap(header, record)
		amount, err := core.ParseAmount(row[m.AmountColumn])
		if err != nil {
			return txs, &ParseError{Line: line, Column: m.AmountColumn, Value: row[m.AmountColumn], Err: err}
		}
		if m.InvertAmount {
			amount = amount.Neg()
		}

		txs = append(txs, core.Transaction{
			Date:          row[m.DateColumn],
			Label:         row[m.LabelColumn],
			Amount:        amount,
			CategoryID:    m.CategoryID,
			PaymentMethod: row[m.PaymentMethodColumn],
			Note:          row[m.NoteColumn],
			Attachment:    row[m.AttachmentColumn],
		})
	}

	slog.Info("Import parsed", "rows", len(txs))
	return txs, nil
}

func (im *Importer) newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = im.delimiter
	reader.FieldsPerRecord = -1 // tolerate ragged rows, missing cells read as empty
	reader.TrimLeadingSpace = true
	return reader
}

// rowMap zips a record against the header. Missing cells and unmapped
// columns yield empty strings, never a missing-key failure.
func rowMap(header, record []string) map[string]string {
	row := make(map[string]string, len(header))
	for i, name := range header {
		if i < len(record) {
			row[name] = record[i]
		} else {
			row[name] = ""
		}
	}
	return row
}
