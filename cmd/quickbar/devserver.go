package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"quickbar/internal/devserver"
	"quickbar/internal/eventbus"
)

type devserverOptions struct {
	addr         string
	catalogPath  string
	settingsPath string
}

func newDevserverCommand(root *rootOptions) *cobra.Command {
	opts := &devserverOptions{}
	cmd := &cobra.Command{
		Use:   "devserver",
		Short: "Serve a YAML catalog as the launcher's search service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}
			closeLog, err := setupLogging(cfg, root.debug)
			if err != nil {
				return err
			}
			defer closeLog()
			return runDevserver(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.addr, "addr", "127.0.0.1:7878", "listen address")
	flags.StringVar(&opts.catalogPath, "catalog", "catalog.yaml", "catalog file")
	flags.StringVar(&opts.settingsPath, "settings", "settings.toml", "settings file")
	return cmd
}

func runDevserver(parent context.Context, opts *devserverOptions) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bus := eventbus.New()
	defer bus.Close()

	catalog := devserver.NewCatalog(opts.catalogPath)
	n, err := catalog.Reload()
	if err != nil {
		return err
	}
	log.Info("catalog loaded", "path", opts.catalogPath, "items", n)

	srv := devserver.New(catalog, devserver.NewSettingsStore(opts.settingsPath), bus)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(opts.addr)
	})
	g.Go(func() error {
		return srv.WatchCatalog(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
