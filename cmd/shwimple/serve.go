package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/shwimple/shwimple/internal/dev"
	"github.com/shwimple/shwimple/internal/errors"
	"github.com/shwimple/shwimple/pkg/pagefile"
	"github.com/shwimple/shwimple/pkg/server"
)

func serveCmd(a *app) *cobra.Command {
	var tracing bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve pages with live reload",
		Long: `Start the preview server.

Pages are read from disk on every request. With reload enabled the
browser refreshes whenever a page file changes, and page file errors
are shown in an overlay.

Examples:
  shwimple serve
  shwimple serve --port 8080 --reload=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, a, tracing)
		},
	}

	cmd.Flags().String("host", "", "Host to bind (default from config)")
	cmd.Flags().IntP("port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().Bool("reload", true, "Reload browsers when pages change")
	cmd.Flags().BoolVar(&tracing, "tracing", false, "Trace requests with OpenTelemetry")
	a.bind("server.host", cmd.Flags().Lookup("host"))
	a.bind("server.port", cmd.Flags().Lookup("port"))
	a.bind("server.reload", cmd.Flags().Lookup("reload"))

	return cmd
}

func runServe(ctx context.Context, a *app, tracing bool) error {
	cfg := a.cfg
	srv := server.New(server.Options{
		PagesDir: cfg.PagesPath(),
		Layout:   cfg.ParsedLayout(),
		Reload:   cfg.Server.Reload,
		Logger:   a.logger,
		Tracing:  tracing,
	})

	var watcher *dev.Watcher
	if srv.Hub() != nil {
		w, err := dev.NewWatcher(dev.WatcherConfig{Dir: cfg.PagesPath(), Logger: a.logger})
		if err != nil {
			return errors.New("E402").
				WithDetail("Could not watch " + cfg.PagesPath()).
				Wrap(err)
		}
		watcher = w
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(gctx, cfg.Address())
	})
	if watcher != nil {
		hub := srv.Hub()
		g.Go(func() error {
			return watcher.Run(gctx, func(paths []string) {
				notifyChange(a, hub, paths)
			})
		})
	}

	success("Serving %s", cfg.URL())
	info("pages:  %s", cfg.PagesPath())
	if cfg.Server.Reload {
		info("reload: on")
	} else {
		warn("reload: off")
	}

	return g.Wait()
}

// notifyChange reloads browsers, or shows the first page file error.
func notifyChange(a *app, hub *dev.ReloadHub, paths []string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue // removed
		}
		if _, err := pagefile.Load(path); err != nil {
			a.logger.Warn("page file error", "path", path, "error", err)
			hub.NotifyError(formatForOverlay(err))
			return
		}
	}
	a.logger.Info("pages changed, reloading", "count", len(paths))
	hub.ClearError()
	hub.NotifyReload()
}

func formatForOverlay(err error) string {
	coded := errors.FromError(err, "E202")
	msg := coded.FormatCompact()
	if coded.Detail != "" {
		msg += "\n" + coded.Detail
	}
	return msg
}
