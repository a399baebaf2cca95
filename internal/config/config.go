package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/agencia-dev/agencia/internal/model"
)

// FileName is the default config file name.
const FileName = "agencia.yaml"

// Config represents the top-level agencia.yaml configuration.
type Config struct {
	Bank     BankConfig    `yaml:"bank"`
	Display  DisplayConfig `yaml:"display"`
	Logging  LoggingConfig `yaml:"logging"`
	Accounts []SeedAccount `yaml:"accounts,omitempty"`
}

// BankConfig identifies the bank.
type BankConfig struct {
	Name          string `yaml:"name"`
	DefaultBranch string `yaml:"default_branch"`
}

// DisplayConfig controls how amounts and timestamps are printed.
type DisplayConfig struct {
	Currency   string `yaml:"currency"`
	TimeFormat string `yaml:"time_format"` // Go layout, e.g. "02/01/2006 15:04:05"
}

// LoggingConfig controls the command logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug|info|warn|error
	Format string `yaml:"format"` // console|json
}

// SeedAccount is an account opened when the bank starts.
type SeedAccount struct {
	Kind           string `yaml:"kind"` // checking|savings
	Branch         string `yaml:"branch,omitempty"`
	Number         string `yaml:"number"`
	HolderName     string `yaml:"holder_name"`
	HolderTaxID    string `yaml:"holder_tax_id"`
	OpeningDeposit string `yaml:"opening_deposit,omitempty"`
}

// Load reads an agencia.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new bank.
func Default(bankName string) *Config {
	if bankName == "" {
		bankName = "Banco Digital"
	}
	return &Config{
		Bank: BankConfig{
			Name:          bankName,
			DefaultBranch: "0001",
		},
		Display: DisplayConfig{
			Currency:   model.DefaultCurrency,
			TimeFormat: model.DefaultTimeFormat,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks seed accounts for values the bank cannot open.
func (c *Config) Validate() error {
	seen := make(map[string]bool)
	for i, sa := range c.Accounts {
		if sa.Number == "" {
			return fmt.Errorf("account %d: number is required", i+1)
		}
		if seen[sa.Number] {
			return fmt.Errorf("account %d: duplicate number %s", i+1, sa.Number)
		}
		seen[sa.Number] = true
		if _, err := model.ParseKind(sa.Kind); err != nil {
			return fmt.Errorf("account %s: %w", sa.Number, err)
		}
		if _, err := sa.Opening(); err != nil {
			return fmt.Errorf("account %s: %w", sa.Number, err)
		}
	}
	return nil
}

// StatementFormat returns the statement rendering options.
func (c *Config) StatementFormat() model.StatementFormat {
	f := model.DefaultStatementFormat()
	if c.Display.Currency != "" {
		f.Currency = c.Display.Currency
	}
	if c.Display.TimeFormat != "" {
		f.TimeFormat = c.Display.TimeFormat
	}
	return f
}

// Opening parses the opening deposit; empty means zero.
func (sa SeedAccount) Opening() (decimal.Decimal, error) {
	if sa.OpeningDeposit == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(sa.OpeningDeposit)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing opening_deposit %q: %w", sa.OpeningDeposit, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("opening_deposit %s must not be negative", sa.OpeningDeposit)
	}
	return d, nil
}

// BranchOr returns the seed's branch, or def when unset.
func (sa SeedAccount) BranchOr(def string) string {
	if sa.Branch == "" {
		return def
	}
	return sa.Branch
}
