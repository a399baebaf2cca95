package script

import (
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/agencia-dev/agencia/internal/bank"
	"github.com/agencia-dev/agencia/internal/model"
	"github.com/agencia-dev/agencia/internal/statement"
)

// ErrRejected marks a transfer or key payment that was attempted but did
// not move money.
var ErrRejected = errors.New("operation rejected")

// Runner executes operations against the bank services and writes
// user-facing messages to out.
type Runner struct {
	accounts      *bank.Service
	payees        *bank.PayeeService
	out           io.Writer
	log           *zap.Logger
	format        model.StatementFormat
	defaultBranch string
}

// RunnerParams holds the dependencies of a Runner.
type RunnerParams struct {
	Accounts      *bank.Service
	Payees        *bank.PayeeService
	Out           io.Writer
	Log           *zap.Logger
	Format        model.StatementFormat
	DefaultBranch string
}

// NewRunner creates a Runner.
func NewRunner(p RunnerParams) *Runner {
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		accounts:      p.Accounts,
		payees:        p.Payees,
		out:           p.Out,
		log:           log,
		format:        p.Format,
		defaultBranch: p.DefaultBranch,
	}
}

// Run executes ops in order and returns how many failed. With failFast the
// run stops at the first failure.
func (r *Runner) Run(ops []Op, failFast bool) int {
	failed := 0
	for _, op := range ops {
		if err := r.Exec(op); err != nil {
			failed++
			fmt.Fprintf(r.out, "line %d: %s failed: %v\n", op.Line, op.Name, err)
			if failFast {
				break
			}
		}
	}
	return failed
}

// Exec executes a single operation.
func (r *Runner) Exec(op Op) error {
	err := r.exec(op)
	fields := []zap.Field{zap.String("op", op.Name), zap.Strings("args", op.Args)}
	if op.Line > 0 {
		fields = append(fields, zap.Int("line", op.Line))
	}
	if err != nil {
		r.log.Warn("operation failed", append(fields, zap.Error(err))...)
	} else {
		r.log.Info("operation completed", fields...)
	}
	return err
}

func (r *Runner) exec(op Op) error {
	switch op.Name {
	case OpOpenChecking, OpOpenSavings:
		return r.open(op)
	case OpDeposit:
		return r.deposit(op)
	case OpWithdraw:
		return r.withdraw(op)
	case OpTransfer:
		return r.transfer(op)
	case OpPix:
		return r.pix(op)
	case OpStatement:
		return r.statement(op)
	case OpExport:
		return r.export(op)
	default:
		return fmt.Errorf("unknown operation %q", op.Name)
	}
}

func (r *Runner) open(op Op) error {
	holder := model.Holder{Name: op.Args[0], TaxID: op.Args[1]}
	branch := op.Args[2]
	if branch == "" {
		branch = r.defaultBranch
	}

	kind := model.Checking()
	if op.Name == OpOpenSavings {
		kind = model.Savings()
	}

	a, err := r.accounts.Open(kind, holder, branch, op.Args[3])
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "%s account %s opened for %s.\n", a.Kind.Label(), a.Number, a.Holder.Name)
	return nil
}

func (r *Runner) deposit(op Op) error {
	amount, err := ParseAmount(op.Args[1])
	if err != nil {
		return err
	}
	a, err := r.accounts.Deposit(op.Args[0], amount)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Deposit of %s completed. Balance: %s\n", r.money(amount), r.money(a.Balance()))
	return nil
}

func (r *Runner) withdraw(op Op) error {
	amount, err := ParseAmount(op.Args[1])
	if err != nil {
		return err
	}
	a, err := r.accounts.Withdraw(op.Args[0], amount)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Withdrawal of %s completed. Balance: %s\n", r.money(amount), r.money(a.Balance()))
	return nil
}

func (r *Runner) transfer(op Op) error {
	amount, err := ParseAmount(op.Args[2])
	if err != nil {
		return err
	}
	out, err := r.accounts.Transfer(op.Args[0], op.Args[1], amount)
	if err != nil {
		return err
	}
	return r.report("Transfer", out)
}

func (r *Runner) pix(op Op) error {
	amount, err := ParseAmount(op.Args[2])
	if err != nil {
		return err
	}
	out, err := r.payees.PayByKey(op.Args[0], op.Args[1], amount)
	if err != nil {
		return err
	}
	return r.report("PIX", out)
}

func (r *Runner) report(what string, out bank.Outcome) error {
	if !out.Completed() {
		fmt.Fprintf(r.out, "%s could not be completed: %v\n", what, out.Reason)
		return fmt.Errorf("%w: %v", ErrRejected, out.Reason)
	}
	fmt.Fprintf(r.out, "%s of %s from %s (%s) to %s (%s) completed.\n", what, r.money(out.Amount),
		out.From.Number, out.From.Holder.Name, out.To.Number, out.To.Holder.Name)
	return nil
}

func (r *Runner) statement(op Op) error {
	st, err := r.accounts.Statement(op.Args[0])
	if err != nil {
		return err
	}
	return st.Render(r.out, r.format)
}

func (r *Runner) export(op Op) error {
	st, err := r.accounts.Statement(op.Args[0])
	if err != nil {
		return err
	}
	if err := statement.Export(op.Args[1], st); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Statement for %s exported to %s (%d records).\n", st.Number, op.Args[1], len(st.Entries))
	return nil
}

func (r *Runner) money(d decimal.Decimal) string {
	return r.format.Currency + " " + d.StringFixed(2)
}
