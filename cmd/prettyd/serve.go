package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignite/response-prettier/internal/api"
	"github.com/ignite/response-prettier/internal/config"
	"github.com/ignite/response-prettier/internal/pkg/logger"
	"github.com/ignite/response-prettier/internal/prettier"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

type serveOptions struct {
	configPath string
	host       string
	port       int
}

func newServeCmd() *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server with the prettier registered",
		Long: `Start the HTTP server. Responses are pretty-printed when the request
carries the trigger query (?pretty=true by default) or when always_on is set.`,
		Args: cobra.NoArgs,
		Example: `  prettyd serve
  prettyd serve --config config/config.yaml --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "config/config.yaml", "Path to the YAML config file")
	cmd.Flags().StringVar(&opts.host, "host", "", "Listen host (overrides config)")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "Listen port (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, opts *serveOptions) error {
	cfg, err := config.LoadFromEnv(opts.configPath)
	if err != nil {
		return errors.Wrap(err, "load config")
	}
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = opts.host
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = opts.port
	}

	if err := logger.SetLevelName(cfg.Log.Level); err != nil {
		return err
	}
	if err := logger.SetFormat(cfg.Log.Format); err != nil {
		return err
	}

	server := api.NewServer(cfg.Server)
	p, err := prettier.Register(server, cfg.Prettier)
	if err != nil {
		return err
	}
	server.SetFormatDecorator(p.Settings().Decorator)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf("%s:%d", cfg.Server.GetHost(), cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", addr, "instance", server.InstanceID())
		if err := server.ListenAndServe(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return errors.Wrap(err, "server error")
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "server shutdown")
	}
	logger.Info("server stopped")
	return nil
}
