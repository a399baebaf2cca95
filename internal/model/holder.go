package model

// Holder identifies the person an account belongs to. TaxID doubles as the
// payee key for key-addressed transfers.
type Holder struct {
	Name  string
	TaxID string
}
