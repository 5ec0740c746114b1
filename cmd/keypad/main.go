package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"keycalc/internal/pkg/logger"
	"keycalc/internal/tui"
)

// version задаётся при сборке через -ldflags "-X main.version=..."
var version = "dev"

func newRootCmd() *cobra.Command {
	var logCfg logger.Config

	root := &cobra.Command{
		Use:   "keypad",
		Short: "Keypad calculator in the terminal",
		Long: `Keypad calculator: digits, decimal point, + - * /, = and C.

Without arguments starts the interactive keypad. Use "keypad eval" to run
a key sequence non-interactively.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// терминал занят интерфейсом, поэтому логи только в файл
			slog.SetDefault(logger.NewFileOnly(logCfg))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			slog.Info("keypad started", "version", version)
			p := tea.NewProgram(tui.New(), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("failed to start the terminal interface: %w", err)
			}
			slog.Info("keypad stopped")
			return nil
		},
	}

	root.PersistentFlags().StringVar(&logCfg.Level, "log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&logCfg.File, "log-file", "", "write logs to this file (discarded when empty)")

	root.AddCommand(newEvalCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of keypad",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "keypad version %s\n", version)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
