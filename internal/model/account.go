package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInsufficientFunds is returned when a withdrawal would take an account
// below the floor its kind allows, or when the amount is not positive.
var ErrInsufficientFunds = errors.New("insufficient funds")

// OverdraftLimit is how far below zero a checking account may go.
var OverdraftLimit = decimal.NewFromInt(100)

// KindTag names an account variant.
type KindTag string

const (
	KindTagChecking KindTag = "checking"
	KindTagSavings  KindTag = "savings"
)

// Kind is an account variant together with its withdrawal parameters.
type Kind struct {
	Tag       KindTag
	Overdraft decimal.Decimal // zero for savings
}

// Checking returns the checking kind with the standard overdraft limit.
func Checking() Kind {
	return Kind{Tag: KindTagChecking, Overdraft: OverdraftLimit}
}

// Savings returns the savings kind (no overdraft).
func Savings() Kind {
	return Kind{Tag: KindTagSavings}
}

// ParseKind maps "checking" / "savings" to a Kind.
func ParseKind(s string) (Kind, error) {
	switch KindTag(s) {
	case KindTagChecking:
		return Checking(), nil
	case KindTagSavings:
		return Savings(), nil
	default:
		return Kind{}, fmt.Errorf("unknown account kind %q", s)
	}
}

// Label returns a human-readable name for the kind.
func (k Kind) Label() string {
	switch k.Tag {
	case KindTagChecking:
		return "Checking"
	case KindTagSavings:
		return "Savings"
	default:
		return string(k.Tag)
	}
}

// Floor is the lowest balance the kind permits.
func (k Kind) Floor() decimal.Decimal {
	return k.Overdraft.Neg()
}

// canWithdraw is the single eligibility rule for every kind: the amount must
// be positive and balance + overdraft must cover it.
func canWithdraw(k Kind, balance, amount decimal.Decimal) bool {
	if !amount.IsPositive() {
		return false
	}
	switch k.Tag {
	case KindTagChecking:
		return balance.Add(k.Overdraft).GreaterThanOrEqual(amount)
	default:
		return balance.GreaterThanOrEqual(amount)
	}
}

// Account is a bank account with its holder, balance and history.
type Account struct {
	Number  string
	Branch  string
	Holder  Holder
	Kind    Kind
	balance decimal.Decimal
	history []Transaction
}

// NewAccount creates an account with a zero balance and empty history.
func NewAccount(kind Kind, holder Holder, branch, number string) *Account {
	return &Account{
		Number:  number,
		Branch:  branch,
		Holder:  holder,
		Kind:    kind,
		balance: decimal.Zero,
	}
}

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	return a.balance
}

// History returns a copy of the recorded transactions in append order.
func (a *Account) History() []Transaction {
	out := make([]Transaction, len(a.history))
	copy(out, a.history)
	return out
}

// Len returns the number of recorded transactions.
func (a *Account) Len() int {
	return len(a.history)
}

// ApplyDeposit adds amount to the balance. Non-positive amounts are ignored;
// the return value reports whether the balance changed.
func (a *Account) ApplyDeposit(amount decimal.Decimal) bool {
	if !amount.IsPositive() {
		return false
	}
	a.balance = a.balance.Add(amount)
	return true
}

// ApplyWithdrawal subtracts amount from the balance if the account's kind
// allows it, otherwise it returns ErrInsufficientFunds and leaves the balance
// untouched.
func (a *Account) ApplyWithdrawal(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: withdrawal amount must be positive, got %s", ErrInsufficientFunds, amount.StringFixed(2))
	}
	if !canWithdraw(a.Kind, a.balance, amount) {
		return fmt.Errorf("%w: %s account %s has %s available, requested %s",
			ErrInsufficientFunds, a.Kind.Tag, a.Number, a.Available().StringFixed(2), amount.StringFixed(2))
	}
	a.balance = a.balance.Sub(amount)
	return nil
}

// Available is the largest amount that can currently be withdrawn.
func (a *Account) Available() decimal.Decimal {
	return a.balance.Sub(a.Kind.Floor())
}

// RecordTransaction appends t to the history.
func (a *Account) RecordTransaction(t Transaction) {
	a.history = append(a.history, t)
}

// Clone returns a deep copy that shares no history storage with a.
func (a *Account) Clone() *Account {
	cp := *a
	cp.history = a.History()
	return &cp
}
