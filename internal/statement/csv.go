// Package statement exports account history as CSV.
package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agencia-dev/agencia/internal/model"
)

// Header is the CSV header for statement exports.
const Header = "reference,timestamp,kind,amount,note"

const (
	numFields    = 5
	colReference = 0
	colTimestamp = 1
	colKind      = 2
	colAmount    = 3
	colNote      = 4
)

// WriteHistory writes records to w (including header).
func WriteHistory(w io.Writer, records []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, t := range records {
		if err := cw.Write(MarshalTransaction(t)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadHistory reads records written by WriteHistory.
func ReadHistory(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement CSV: %w", err)
	}

	if len(rows) <= 1 {
		return nil, nil
	}

	var records []model.Transaction
	for i, row := range rows[1:] {
		t, err := UnmarshalTransaction(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, t)
	}
	return records, nil
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(t model.Transaction) []string {
	row := make([]string, numFields)
	row[colReference] = t.Reference
	row[colTimestamp] = t.Timestamp.Format(time.RFC3339)
	row[colKind] = string(t.Kind)
	row[colAmount] = t.Amount.StringFixed(2)
	row[colNote] = t.Note
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(row []string) (model.Transaction, error) {
	if len(row) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(row))
	}

	ts, err := time.Parse(time.RFC3339, row[colTimestamp])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing timestamp %q: %w", row[colTimestamp], err)
	}

	amount, err := decimal.NewFromString(row[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", row[colAmount], err)
	}

	return model.Transaction{
		Reference: row[colReference],
		Timestamp: ts,
		Kind:      model.TransactionKind(row[colKind]),
		Amount:    amount,
		Note:      row[colNote],
	}, nil
}

// Export writes the statement's history to path, creating parent
// directories as needed.
func Export(path string, st model.Statement) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if err := WriteHistory(f, st.Entries); err != nil {
		return fmt.Errorf("writing statement %s: %w", st.Number, err)
	}
	return nil
}
