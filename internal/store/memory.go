package store

import "github.com/agencia-dev/agencia/internal/model"

// Memory is an in-memory Store. It keeps accounts in the order they were
// first saved and never shares account values with callers.
type Memory struct {
	order    []string
	byNumber map[string]*model.Account
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{byNumber: make(map[string]*model.Account)}
}

// Save inserts or replaces a copy of a.
func (m *Memory) Save(a *model.Account) {
	if _, ok := m.byNumber[a.Number]; !ok {
		m.order = append(m.order, a.Number)
	}
	m.byNumber[a.Number] = a.Clone()
}

// FindByNumber returns a copy of the account with the given number.
func (m *Memory) FindByNumber(number string) (*model.Account, bool) {
	a, ok := m.byNumber[number]
	if !ok {
		return nil, false
	}
	return a.Clone(), true
}

// FindByHolderKey returns copies of every account held by key.
func (m *Memory) FindByHolderKey(key string) []*model.Account {
	var result []*model.Account
	for _, n := range m.order {
		if a := m.byNumber[n]; a.Holder.TaxID == key {
			result = append(result, a.Clone())
		}
	}
	return result
}

// List returns copies of all accounts.
func (m *Memory) List() []*model.Account {
	result := make([]*model.Account, 0, len(m.order))
	for _, n := range m.order {
		result = append(result, m.byNumber[n].Clone())
	}
	return result
}

// Delete removes the account with the given number.
func (m *Memory) Delete(number string) bool {
	if _, ok := m.byNumber[number]; !ok {
		return false
	}
	delete(m.byNumber, number)
	for i, n := range m.order {
		if n == number {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

// Len reports how many accounts are stored.
func (m *Memory) Len() int {
	return len(m.order)
}
