package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/docfront/pkg/cli/config"
	controller "github.com/m-mizutani/docfront/pkg/controller/http"
	"github.com/m-mizutani/docfront/pkg/utils/async"
	"github.com/m-mizutani/docfront/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		siteCfg   config.Site
		sentryCfg config.Sentry
	)

	flags := append(serverCfg.Flags(), siteCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Serve the landing page over HTTP",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.From(ctx)

			flush, err := sentryCfg.Configure()
			if err != nil {
				return err
			}
			defer flush()

			pageUC, page, err := setupPage(ctx, c, &siteCfg)
			if err != nil {
				return err
			}

			logger.Info("Starting docfront server",
				slog.String("addr", serverCfg.Addr),
				slog.String("mode", page.Mode().String()),
				slog.Any("sentry", sentryCfg),
			)

			server, err := controller.NewServer(
				ctx,
				pageUC,
				controller.WithAddr(serverCfg.Addr),
				controller.WithPageContext(*page),
				controller.WithCacheControl(serverCfg.CacheControl),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine. A listen failure ends serve instead of
			// leaving it waiting for a signal.
			serverErr := make(chan error, 1)
			async.Dispatch(ctx, "http-server", func(ctx context.Context) error {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					serverErr <- goerr.Wrap(err, "HTTP server error", goerr.V("addr", serverCfg.Addr))
				}
				return nil
			})

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			select {
			case err := <-serverErr:
				return err
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
