package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"quickbar/internal/backend"
	"quickbar/internal/config"
	"quickbar/internal/eventbus"
	"quickbar/internal/ui"
	"quickbar/internal/ui/coordinator"
)

type rootOptions struct {
	configPath string
	backendURL string
	logFile    string
	debug      bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "quickbar",
		Short:         "Keyboard-driven launcher for apps and files",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			closeLog, err := setupLogging(cfg, opts.debug)
			if err != nil {
				return err
			}
			defer closeLog()
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default is the user config dir)")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	flags.BoolVar(&opts.debug, "debug", false, "log debug output")
	cmd.Flags().StringVar(&opts.backendURL, "backend", "", "search service URL")

	cmd.AddCommand(newDevserverCommand(opts))
	return cmd
}

// loadConfig reads the config file and applies flag overrides. A missing
// file yields the defaults.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	configSvc := config.NewConfigService()
	if opts.configPath != "" {
		configSvc = config.NewConfigServiceAt(opts.configPath)
	}
	cfg, err := configSvc.Load()
	if err != nil {
		return nil, err
	}
	if opts.backendURL != "" {
		cfg.Backend.URL = opts.backendURL
	}
	if opts.logFile != "" {
		cfg.Log.File = opts.logFile
	}
	return cfg, nil
}

func run(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	client, err := backend.NewClient(cfg.Backend.URL, cfg.BackendTimeout(), bus)
	if err != nil {
		return err
	}
	if err := client.Heartbeat(ctx); err != nil {
		log.Warn("backend not reachable yet", "url", cfg.Backend.URL, "err", err)
	}

	coord := coordinator.NewCoordinator(ctx, client, coordinator.Options{
		Debounce:       cfg.DebounceDelay(),
		ScrollSuppress: cfg.ScrollSuppressWindow(),
		WheelLines:     cfg.UI.WheelLines,
	})
	defer coord.Close()

	// Create UI model
	model := ui.NewModel(cfg, coord)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)
	model.SetProgram(p)
	coord.AttachEvents(client, p.Send)

	g, gctx := errgroup.WithContext(ctx)
	streamCtx, stopStream := context.WithCancel(gctx)

	g.Go(func() error {
		return client.RunEventStream(streamCtx)
	})
	g.Go(func() error {
		defer stopStream()
		log.Info("starting UI", "backend", cfg.Backend.URL)
		if _, err := p.Run(); err != nil && ctx.Err() == nil {
			return fmt.Errorf("error running program: %w", err)
		}
		log.Info("UI exited normally")
		return nil
	})
	return g.Wait()
}
