// Package bank implements account operations: opening accounts, deposits,
// withdrawals, transfers, key payments and statements.
package bank

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agencia-dev/agencia/internal/model"
	"github.com/agencia-dev/agencia/internal/store"
)

const (
	noteDeposit    = "Deposit to account"
	noteWithdrawal = "Withdrawal at terminal/app"
)

// Option configures a service.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock sets the clock used to timestamp history records.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Service opens accounts and moves money between them.
type Service struct {
	store    store.Store
	recorder *Recorder
}

// NewService creates a Service backed by st.
func NewService(st store.Store, opts ...Option) *Service {
	o := buildOptions(opts)
	return &Service{store: st, recorder: NewRecorder(o.now)}
}

// OpenChecking opens a checking account.
func (s *Service) OpenChecking(holder model.Holder, branch, number string) (*model.Account, error) {
	return s.Open(model.Checking(), holder, branch, number)
}

// OpenSavings opens a savings account.
func (s *Service) OpenSavings(holder model.Holder, branch, number string) (*model.Account, error) {
	return s.Open(model.Savings(), holder, branch, number)
}

// Open opens an account of the given kind. It fails with ErrDuplicateAccount
// if the number is taken.
func (s *Service) Open(kind model.Kind, holder model.Holder, branch, number string) (*model.Account, error) {
	if _, ok := s.store.FindByNumber(number); ok {
		return nil, fmt.Errorf("opening account %s: %w", number, ErrDuplicateAccount)
	}
	a := model.NewAccount(kind, holder, branch, number)
	s.store.Save(a)
	return a, nil
}

// Deposit credits amount to the account and records it. A non-positive
// amount changes nothing and is not recorded.
func (s *Service) Deposit(number string, amount decimal.Decimal) (*model.Account, error) {
	a, err := s.find(number)
	if err != nil {
		return nil, err
	}
	if !a.ApplyDeposit(amount) {
		return a, nil
	}
	s.recorder.Record(a, s.recorder.Now(), model.KindDeposit, amount, noteDeposit)
	s.store.Save(a)
	return a, nil
}

// Withdraw debits amount from the account. ErrInsufficientFunds is returned
// unchanged from the account, in which case nothing is recorded or saved.
func (s *Service) Withdraw(number string, amount decimal.Decimal) (*model.Account, error) {
	a, err := s.find(number)
	if err != nil {
		return nil, err
	}
	if err := a.ApplyWithdrawal(amount); err != nil {
		return nil, fmt.Errorf("withdrawing from %s: %w", number, err)
	}
	s.recorder.Record(a, s.recorder.Now(), model.KindWithdrawal, amount, noteWithdrawal)
	s.store.Save(a)
	return a, nil
}

// Transfer moves amount from one account to another. Insufficient funds on
// the source is not an error: the returned Outcome is Rejected and neither
// account changes. Errors are reserved for operations that could not be
// attempted (missing account, self-transfer).
func (s *Service) Transfer(fromNumber, toNumber string, amount decimal.Decimal) (Outcome, error) {
	from, err := s.find(fromNumber)
	if err != nil {
		return Outcome{}, err
	}
	to, err := s.find(toNumber)
	if err != nil {
		return Outcome{}, err
	}
	if from.Number == to.Number {
		return Outcome{}, fmt.Errorf("transfer %s -> %s: %w", fromNumber, toNumber, ErrSelfTransfer)
	}

	return move(s.store, s.recorder, from, to, amount, legs{
		sent:         model.KindTransferSent,
		received:     model.KindTransferReceived,
		sentNote:     "To: " + to.Holder.Name,
		receivedNote: "From: " + from.Holder.Name,
	})
}

// Statement returns the account's statement.
func (s *Service) Statement(number string) (model.Statement, error) {
	a, err := s.find(number)
	if err != nil {
		return model.Statement{}, err
	}
	return a.Statement(), nil
}

// Accounts returns every account in store order.
func (s *Service) Accounts() []*model.Account {
	return s.store.List()
}

func (s *Service) find(number string) (*model.Account, error) {
	return findAccount(s.store, number)
}

func findAccount(st store.Store, number string) (*model.Account, error) {
	a, ok := st.FindByNumber(number)
	if !ok {
		return nil, fmt.Errorf("account %s: %w", number, ErrAccountNotFound)
	}
	return a, nil
}

// legs describes the two history records written by a money movement.
type legs struct {
	sent         model.TransactionKind
	received     model.TransactionKind
	sentNote     string
	receivedNote string
}

// move debits from, credits to, records both sides and saves both through
// one store unit: source first, then destination.
func move(st store.Store, rec *Recorder, from, to *model.Account, amount decimal.Decimal, l legs) (Outcome, error) {
	if err := from.ApplyWithdrawal(amount); err != nil {
		if errors.Is(err, model.ErrInsufficientFunds) {
			return Outcome{Status: StatusRejected, Reason: err, Amount: amount, From: from, To: to}, nil
		}
		return Outcome{}, err
	}
	to.ApplyDeposit(amount)

	ts := rec.Now()
	rec.Record(from, ts, l.sent, amount, l.sentNote)
	rec.Record(to, ts, l.received, amount, l.receivedNote)

	u := store.Begin(st)
	u.Save(from)
	u.Save(to)
	u.Commit()

	return Outcome{Status: StatusCompleted, Amount: amount, From: from, To: to}, nil
}
