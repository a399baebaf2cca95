package bank

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/agencia-dev/agencia/internal/model"
	"github.com/agencia-dev/agencia/internal/store"
)

// PayeeService performs transfers addressed by the payee's holder key.
type PayeeService struct {
	store    store.Store
	recorder *Recorder
}

// NewPayeeService creates a PayeeService backed by st.
func NewPayeeService(st store.Store, opts ...Option) *PayeeService {
	o := buildOptions(opts)
	return &PayeeService{store: st, recorder: NewRecorder(o.now)}
}

// Resolve returns the account a key pays into: the first account in store
// order whose holder has that key.
func (p *PayeeService) Resolve(key string) (*model.Account, error) {
	matches := p.store.FindByHolderKey(key)
	if len(matches) == 0 {
		return nil, fmt.Errorf("key %s: %w", key, ErrPayeeNotFound)
	}
	return matches[0], nil
}

// PayByKey moves amount from the source account to the account resolved
// from key. Like Service.Transfer, insufficient funds yields a Rejected
// Outcome rather than an error.
func (p *PayeeService) PayByKey(fromNumber, key string, amount decimal.Decimal) (Outcome, error) {
	from, err := findAccount(p.store, fromNumber)
	if err != nil {
		return Outcome{}, err
	}
	to, err := p.Resolve(key)
	if err != nil {
		return Outcome{}, err
	}
	if from.Number == to.Number {
		return Outcome{}, fmt.Errorf("key payment %s -> %s: %w", fromNumber, key, ErrSelfTransfer)
	}

	return move(p.store, p.recorder, from, to, amount, legs{
		sent:         model.KindKeyTransferSent,
		received:     model.KindKeyTransferReceived,
		sentNote:     "PIX to: " + to.Holder.Name,
		receivedNote: "PIX from: " + from.Holder.Name,
	})
}
