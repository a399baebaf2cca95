// Package store holds the authoritative copy of every account.
package store

import "github.com/agencia-dev/agencia/internal/model"

// Store is the account storage contract used by the services. Lookups hand
// out working copies; changes become visible only after Save.
type Store interface {
	// Save inserts or replaces an account keyed by its number.
	Save(a *model.Account)
	// FindByNumber returns the stored account, or false if absent.
	FindByNumber(number string) (*model.Account, bool)
	// FindByHolderKey returns every account whose holder tax ID equals key,
	// in store order.
	FindByHolderKey(key string) []*model.Account
	// List returns every account in store order.
	List() []*model.Account
	// Delete removes an account and reports whether it existed.
	Delete(number string) bool
}

// Unit groups the saves that belong to one business operation.
type Unit interface {
	Save(a *model.Account)
	Commit()
}

// Beginner is implemented by stores that can commit a Unit atomically.
type Beginner interface {
	Begin() Unit
}

// Begin opens a Unit on s. Stores that don't implement Beginner get a
// sequential unit: each staged account is saved on its own, in staging
// order, so a failure part way through leaves earlier saves in place.
func Begin(s Store) Unit {
	if b, ok := s.(Beginner); ok {
		return b.Begin()
	}
	return &sequentialUnit{store: s}
}

type sequentialUnit struct {
	store  Store
	staged []*model.Account
}

func (u *sequentialUnit) Save(a *model.Account) {
	u.staged = append(u.staged, a)
}

func (u *sequentialUnit) Commit() {
	for _, a := range u.staged {
		u.store.Save(a)
	}
	u.staged = nil
}
