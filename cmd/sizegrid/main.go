// Package main provides the CLI entry point for sizegrid-go.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ukaji3/sizegrid-go/internal/config"
	"github.com/ukaji3/sizegrid-go/internal/logging"
	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/sizeorder"
	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/store/sqlite"
)

var (
	configPath string
	logLevel   string
	logFile    string
	dbPath     string
	outputPath string
	pretty     bool

	cfg *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sizegrid",
		Short: "Edit garment size charts",
		Long: `sizegrid-go edits garment size charts (measurements, grading rules,
tolerances and size conversions), stores them in SQLite and moves them
in and out of spreadsheets.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: "+config.DefaultFile+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database path (overrides config)")

	rootCmd.AddCommand(
		newSortCmd(),
		newImportCmd(),
		newExportCmd(),
		newShowCmd(),
		newListCmd(),
		newDeleteCmd(),
		newEditCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if dbPath != "" {
		cfg.Database = dbPath
		cfg.Dir = ""
	}

	w := cmd.ErrOrStderr()
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		w = f
	}
	logging.Setup(cfg.LogLevel, w)
	log.Debug().Str("config", configPath).Str("db", cfg.DatabasePath()).Msg("configuration loaded")
	return nil
}

func comparator() (sizeorder.Comparator, error) {
	ranks, err := cfg.Ranks()
	if err != nil {
		return sizeorder.Comparator{}, err
	}
	return sizeorder.New(ranks), nil
}

func openStore() (*sqlite.Store, error) {
	st, err := sqlite.Open(cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// writeOutput writes data to --output, or stdout when unset.
func writeOutput(cmd *cobra.Command, data []byte) error {
	if outputPath == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
