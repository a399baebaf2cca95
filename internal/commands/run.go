package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agencia-dev/agencia/internal/script"
)

func newRunCommand() *cobra.Command {
	var configPath string
	var failFast bool

	cmd := &cobra.Command{
		Use:   "run <script.csv>",
		Short: "Run a CSV script of bank operations against a fresh bank",
		Long: "Each row is one operation: " + fmt.Sprint(script.Names()) + ".\n" +
			"Lines starting with # are ignored.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, args[0], configPath, failFast)
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "stop at the first failed operation")

	return cmd
}

func runScript(cmd *cobra.Command, path, configPath string, failFast bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening script: %w", err)
	}
	defer f.Close()

	ops, err := script.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	s, err := newSession(cmd, configPath)
	if err != nil {
		return err
	}
	defer func() { _ = s.log.Sync() }()

	failed := s.runner.Run(ops, failFast)
	s.log.Info("script finished", zap.String("script", path), zap.Int("operations", len(ops)), zap.Int("failed", failed))
	if failed > 0 {
		return fmt.Errorf("%d of %d operations failed", failed, len(ops))
	}
	return nil
}
