package bank

import (
	"github.com/shopspring/decimal"

	"github.com/agencia-dev/agencia/internal/model"
)

// Status is the result of an attempted money movement.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
)

// Outcome reports what happened to a transfer or key payment that was
// attempted. From and To are the accounts after the operation; for a
// rejected outcome they are unchanged.
type Outcome struct {
	Status Status
	Reason error // why the movement was rejected
	Amount decimal.Decimal
	From   *model.Account
	To     *model.Account
}

// Completed reports whether the money moved.
func (o Outcome) Completed() bool {
	return o.Status == StatusCompleted
}
