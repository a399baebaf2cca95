// Package script parses and executes bank operations, one per row. It backs
// both the interactive shell and batch script runs.
package script

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Operation names.
const (
	OpOpenChecking = "open-checking"
	OpOpenSavings  = "open-savings"
	OpDeposit      = "deposit"
	OpWithdraw     = "withdraw"
	OpTransfer     = "transfer"
	OpPix          = "pix"
	OpStatement    = "statement"
	OpExport       = "export"
)

// arity is the number of arguments each operation takes.
var arity = map[string]int{
	OpOpenChecking: 4, // holder name, tax id, branch, number
	OpOpenSavings:  4,
	OpDeposit:      2, // number, amount
	OpWithdraw:     2,
	OpTransfer:     3, // from, to, amount
	OpPix:          3, // from, key, amount
	OpStatement:    1, // number
	OpExport:       2, // number, path
}

// ErrInvalidAmount is returned for amounts that are not positive numbers.
var ErrInvalidAmount = errors.New("amount must be a positive number")

// Op is one parsed operation.
type Op struct {
	Line int
	Name string
	Args []string
}

func (o Op) String() string {
	return strings.Join(append([]string{o.Name}, o.Args...), ",")
}

// Names returns the supported operation names, sorted.
func Names() []string {
	names := make([]string, 0, len(arity))
	for n := range arity {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NewOp builds an Op and checks its argument count.
func NewOp(line int, name string, args ...string) (Op, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	want, ok := arity[name]
	if !ok {
		return Op{}, fmt.Errorf("unknown operation %q", name)
	}
	if len(args) != want {
		return Op{}, fmt.Errorf("%s expects %d arguments, got %d", name, want, len(args))
	}
	trimmed := make([]string, len(args))
	for i, a := range args {
		trimmed[i] = strings.TrimSpace(a)
	}
	return Op{Line: line, Name: name, Args: trimmed}, nil
}

// Parse reads an operation script. Blank lines and lines starting with '#'
// are skipped.
func Parse(r io.Reader) ([]Op, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	var ops []Op
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading script: %w", err)
		}
		line, _ := cr.FieldPos(0)
		op, err := NewOp(line, rec[0], rec[1:]...)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// ParseAmount parses a positive decimal amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidAmount, d.String())
	}
	return d, nil
}
