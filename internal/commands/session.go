package commands

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agencia-dev/agencia/internal/bank"
	"github.com/agencia-dev/agencia/internal/config"
	"github.com/agencia-dev/agencia/internal/logging"
	"github.com/agencia-dev/agencia/internal/model"
	"github.com/agencia-dev/agencia/internal/script"
	"github.com/agencia-dev/agencia/internal/store"
)

// session is one process's bank: config, services over a fresh store, and
// the runner that drives them.
type session struct {
	cfg      *config.Config
	log      *zap.Logger
	accounts *bank.Service
	runner   *script.Runner
}

func addConfigFlag(cmd *cobra.Command, path *string) {
	cmd.Flags().StringVar(path, "config", config.FileName, "path to config file")
}

// loadConfig reads path. A missing file is only an error when the user
// named it explicitly.
func loadConfig(path string, explicit bool) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return config.Default(""), nil
	}
	return nil, err
}

func newSession(cmd *cobra.Command, configPath string) (*session, error) {
	cfg, err := loadConfig(configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return nil, err
	}

	log := logging.New(cfg.Logging, cmd.ErrOrStderr())

	st := store.NewMemory()
	accounts := bank.NewService(st)
	payees := bank.NewPayeeService(st)

	if err := seedAccounts(accounts, cfg); err != nil {
		return nil, err
	}
	log.Debug("bank ready", zap.String("bank", cfg.Bank.Name), zap.Int("accounts", st.Len()))

	runner := script.NewRunner(script.RunnerParams{
		Accounts:      accounts,
		Payees:        payees,
		Out:           cmd.OutOrStdout(),
		Log:           log,
		Format:        cfg.StatementFormat(),
		DefaultBranch: cfg.Bank.DefaultBranch,
	})

	return &session{cfg: cfg, log: log, accounts: accounts, runner: runner}, nil
}

// seedAccounts opens the accounts listed in the config, depositing any
// opening balance.
func seedAccounts(svc *bank.Service, cfg *config.Config) error {
	for _, sa := range cfg.Accounts {
		kind, err := model.ParseKind(sa.Kind)
		if err != nil {
			return fmt.Errorf("seeding account %s: %w", sa.Number, err)
		}
		holder := model.Holder{Name: sa.HolderName, TaxID: sa.HolderTaxID}
		if _, err := svc.Open(kind, holder, sa.BranchOr(cfg.Bank.DefaultBranch), sa.Number); err != nil {
			return fmt.Errorf("seeding account %s: %w", sa.Number, err)
		}
		opening, err := sa.Opening()
		if err != nil {
			return fmt.Errorf("seeding account %s: %w", sa.Number, err)
		}
		if _, err := svc.Deposit(sa.Number, opening); err != nil {
			return fmt.Errorf("seeding account %s: %w", sa.Number, err)
		}
	}
	return nil
}
