package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agencia-dev/agencia/internal/script"
)

const menu = `
--- MAIN MENU ---
1. Open checking account
2. Open savings account
3. Deposit
4. Withdraw
5. Transfer (between accounts)
6. PIX payment (by tax ID)
7. Statement
8. List accounts
0. Exit`

func newShellCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive menu over an in-memory bank",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, configPath)
			if err != nil {
				return err
			}
			defer func() { _ = s.log.Sync() }()

			sh := &shell{
				session: s,
				in:      bufio.NewScanner(cmd.InOrStdin()),
				out:     cmd.OutOrStdout(),
			}
			return sh.loop()
		},
	}

	addConfigFlag(cmd, &configPath)

	return cmd
}

type shell struct {
	*session
	in  *bufio.Scanner
	out io.Writer
}

// errEOF ends the shell when input runs out mid-prompt.
var errEOF = errors.New("end of input")

func (sh *shell) loop() error {
	fmt.Fprintf(sh.out, "=== WELCOME TO %s ===\n", strings.ToUpper(sh.cfg.Bank.Name))
	for {
		fmt.Fprintln(sh.out, menu)
		choice, err := sh.ask("Choose an option: ")
		if err != nil {
			break
		}
		if choice == "0" {
			break
		}
		if err := sh.dispatch(choice); errors.Is(err, errEOF) {
			break
		}
	}
	fmt.Fprintln(sh.out, "\nThank you for banking with us. Goodbye!")
	if err := sh.in.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}

func (sh *shell) dispatch(choice string) error {
	var (
		op  script.Op
		err error
	)
	switch choice {
	case "1":
		op, err = sh.openOp(script.OpOpenChecking, "Open checking account")
	case "2":
		op, err = sh.openOp(script.OpOpenSavings, "Open savings account")
	case "3":
		op, err = sh.moneyOp(script.OpDeposit, "Deposit", "Account number: ")
	case "4":
		op, err = sh.moneyOp(script.OpWithdraw, "Withdraw", "Account number: ")
	case "5":
		op, err = sh.moneyOp(script.OpTransfer, "Transfer", "Source account number: ", "Destination account number: ")
	case "6":
		op, err = sh.moneyOp(script.OpPix, "PIX payment", "Source account number: ", "Destination tax ID (PIX key): ")
	case "7":
		op, err = sh.statementOp()
	case "8":
		sh.listAccounts()
		return nil
	default:
		fmt.Fprintln(sh.out, "Invalid option. Try again.")
		return nil
	}
	if err != nil {
		return err
	}

	if err := sh.runner.Exec(op); err != nil && !errors.Is(err, script.ErrRejected) {
		fmt.Fprintf(sh.out, "Error: %v\n", err)
	}
	return nil
}

func (sh *shell) openOp(name, title string) (script.Op, error) {
	fmt.Fprintf(sh.out, "\n--- %s ---\n", title)
	var args []string
	for _, prompt := range []string{
		"Holder name: ",
		"Holder tax ID: ",
		fmt.Sprintf("Branch (blank for %s): ", sh.cfg.Bank.DefaultBranch),
		"Account number: ",
	} {
		v, err := sh.ask(prompt)
		if err != nil {
			return script.Op{}, err
		}
		args = append(args, v)
	}
	return script.NewOp(0, name, args...)
}

func (sh *shell) moneyOp(name, title string, prompts ...string) (script.Op, error) {
	fmt.Fprintf(sh.out, "\n--- %s ---\n", title)
	var args []string
	for _, prompt := range prompts {
		v, err := sh.ask(prompt)
		if err != nil {
			return script.Op{}, err
		}
		args = append(args, v)
	}
	amount, err := sh.askAmount("Amount: ")
	if err != nil {
		return script.Op{}, err
	}
	return script.NewOp(0, name, append(args, amount)...)
}

func (sh *shell) statementOp() (script.Op, error) {
	fmt.Fprintln(sh.out, "\n--- Statement ---")
	number, err := sh.ask("Account number: ")
	if err != nil {
		return script.Op{}, err
	}
	return script.NewOp(0, script.OpStatement, number)
}

func (sh *shell) listAccounts() {
	accts := sh.accounts.Accounts()
	if len(accts) == 0 {
		fmt.Fprintln(sh.out, "(no accounts)")
		return
	}
	cur := sh.cfg.StatementFormat().Currency
	for _, a := range accts {
		fmt.Fprintf(sh.out, "%-12s %-8s %-20s %s %s\n", a.Number, a.Kind.Label(), a.Holder.Name, cur, a.Balance().StringFixed(2))
	}
}

func (sh *shell) ask(prompt string) (string, error) {
	fmt.Fprint(sh.out, prompt)
	if !sh.in.Scan() {
		return "", errEOF
	}
	return strings.TrimSpace(sh.in.Text()), nil
}

// askAmount repeats the prompt until it reads a positive number.
func (sh *shell) askAmount(prompt string) (string, error) {
	for {
		v, err := sh.ask(prompt)
		if err != nil {
			return "", err
		}
		if _, err := script.ParseAmount(v); err != nil {
			fmt.Fprintln(sh.out, "Invalid amount. Enter a positive number (e.g. 50.75).")
			continue
		}
		return v, nil
	}
}
