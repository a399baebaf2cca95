package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies a history record.
type TransactionKind string

const (
	KindDeposit             TransactionKind = "deposit"
	KindWithdrawal          TransactionKind = "withdrawal"
	KindTransferSent        TransactionKind = "transfer-sent"
	KindTransferReceived    TransactionKind = "transfer-received"
	KindKeyTransferSent     TransactionKind = "key-transfer-sent"
	KindKeyTransferReceived TransactionKind = "key-transfer-received"
)

var kindLabels = map[TransactionKind]string{
	KindDeposit:             "Deposit",
	KindWithdrawal:          "Withdrawal",
	KindTransferSent:        "Transfer Sent",
	KindTransferReceived:    "Transfer Received",
	KindKeyTransferSent:     "PIX Sent",
	KindKeyTransferReceived: "PIX Received",
}

// Label returns the statement label for the kind.
func (k TransactionKind) Label() string {
	if l, ok := kindLabels[k]; ok {
		return l
	}
	return string(k)
}

// Transaction is one immutable entry in an account's history.
type Transaction struct {
	Reference string // "<account>/<seq>"
	Timestamp time.Time
	Kind      TransactionKind
	Amount    decimal.Decimal
	Note      string
}
