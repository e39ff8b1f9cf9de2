// Package main provides the rfpboard binary: a terminal board for tracking
// RFPs through the sales pipeline.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/rfpboard/internal/board"
	"github.com/jask/rfpboard/internal/clients"
	"github.com/jask/rfpboard/internal/config"
	"github.com/jask/rfpboard/internal/gesture"
	"github.com/jask/rfpboard/internal/logging"
	"github.com/jask/rfpboard/internal/notify"
	"github.com/jask/rfpboard/internal/service"
	"github.com/jask/rfpboard/internal/testdata"
	"github.com/jask/rfpboard/internal/tui"
)

const (
	Version = "0.1.0"
	appName = "rfpboard"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	logLevel   string
	noSeed     bool
}

func rootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Track RFPs through the sales pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (TOML); defaults to $RFPBOARD_CONFIG or ~/.config/rfpboard/config.toml")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides log.level")
	cmd.PersistentFlags().BoolVar(&opts.noSeed, "no-seed", false, "Start with an empty board")

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Load the configuration and exercise the board headlessly",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if err := runValidation(cfg, slog.New(slog.DiscardHandler)); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	})

	cmd.AddCommand(initCmd(&opts), clientsCmd(&opts))

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})

	return cmd
}

func loadConfig(opts options) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.noSeed {
		cfg.Board.Seed = false
	}
	return cfg, nil
}

func run(opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger, closer, err := logging.New(cfg.Log.Path, level)
	if err != nil {
		return err
	}
	defer closer.Close()

	stages, err := cfg.Stages()
	if err != nil {
		return err
	}
	b, err := board.New(stages)
	if err != nil {
		return fmt.Errorf("build board: %w", err)
	}
	if cfg.Board.Seed {
		n, err := testdata.Seed(b)
		if err != nil {
			return err
		}
		logger.Debug("seeded board", "cards", n)
	}

	registry, err := clients.LoadFile(cfg.Clients.Path)
	if err != nil {
		return err
	}

	toasts := notify.NewToasts(time.Duration(cfg.UI.ToastSeconds) * time.Second)
	events := notify.Fanout{toasts, notify.LogNotifier{Logger: logger}}
	coord := gesture.New(b, gesture.WithNotifier(events), gesture.WithLogger(logger))
	intake := &service.IntakeService{Board: b, NewStage: cfg.Board.NewStage, Notifier: events, Logger: logger}

	logger.Info("rfpboard starting", "version", Version, "stages", len(stages), "cards", b.Len())

	p := tea.NewProgram(tui.New(cfg, tui.Deps{
		Board:       b,
		Coordinator: coord,
		Intake:      intake,
		Clients:     registry,
		Toasts:      toasts,
		Logger:      logger,
	}), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	logger.Info("rfpboard stopped", "cards", b.Len())
	return nil
}
