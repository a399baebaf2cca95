package bank

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/agencia-dev/agencia/internal/id"
	"github.com/agencia-dev/agencia/internal/model"
)

// Recorder builds history records and appends them to accounts in the order
// operations are applied.
type Recorder struct {
	now func() time.Time
}

// NewRecorder creates a Recorder that stamps records with now.
func NewRecorder(now func() time.Time) *Recorder {
	if now == nil {
		now = time.Now
	}
	return &Recorder{now: now}
}

// Now reads the recorder's clock.
func (r *Recorder) Now() time.Time {
	return r.now()
}

// Record appends a record of kind to a, stamped at ts, and returns it.
func (r *Recorder) Record(a *model.Account, ts time.Time, kind model.TransactionKind, amount decimal.Decimal, note string) model.Transaction {
	t := model.Transaction{
		Reference: id.FormatRecordRef(a.Number, id.NextSeq(a.Len())),
		Timestamp: ts,
		Kind:      kind,
		Amount:    amount,
		Note:      note,
	}
	a.RecordTransaction(t)
	return t
}
