package model

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// DefaultCurrency is the symbol printed before amounts.
	DefaultCurrency = "R$"
	// DefaultTimeFormat is the timestamp layout used on statements.
	DefaultTimeFormat = "02/01/2006 15:04:05"
)

const rule = "--------------------------------------------------------------------------"

// Statement is a read-only view of an account's history and balance.
type Statement struct {
	HolderName string
	Branch     string
	Number     string
	Kind       Kind
	Entries    []Transaction
	Balance    decimal.Decimal
}

// Statement captures the account's current history and balance.
func (a *Account) Statement() Statement {
	return Statement{
		HolderName: a.Holder.Name,
		Branch:     a.Branch,
		Number:     a.Number,
		Kind:       a.Kind,
		Entries:    a.History(),
		Balance:    a.balance,
	}
}

// StatementFormat controls how a statement is rendered.
type StatementFormat struct {
	Currency   string
	TimeFormat string
}

// DefaultStatementFormat returns the format used when none is configured.
func DefaultStatementFormat() StatementFormat {
	return StatementFormat{Currency: DefaultCurrency, TimeFormat: DefaultTimeFormat}
}

// Render writes the statement as text.
func (s Statement) Render(w io.Writer, f StatementFormat) error {
	var b strings.Builder
	fmt.Fprintln(&b, "--- Account Statement ---")
	fmt.Fprintf(&b, "Holder: %s\n", s.HolderName)
	fmt.Fprintf(&b, "Branch: %s\n", s.Branch)
	fmt.Fprintf(&b, "Number: %s (%s)\n", s.Number, s.Kind.Label())
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "Transaction history:")
	if len(s.Entries) == 0 {
		fmt.Fprintln(&b, "(no transactions recorded)")
	}
	for _, t := range s.Entries {
		fmt.Fprintf(&b, "[%s] %-25s | %s %10s | %s\n",
			t.Timestamp.Format(f.TimeFormat), t.Kind.Label(), f.Currency, t.Amount.StringFixed(2), t.Note)
	}
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "CURRENT BALANCE: %s %s\n", f.Currency, s.Balance.StringFixed(2))
	fmt.Fprintln(&b, rule)

	_, err := io.WriteString(w, b.String())
	return err
}

func (s Statement) String() string {
	var b strings.Builder
	_ = s.Render(&b, DefaultStatementFormat())
	return b.String()
}
