package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"entityd/internal/config"
	"entityd/internal/extract"
	"entityd/internal/httpapi"
	"entityd/internal/observability"
)

type serveFlags struct {
	addr         string
	maxBodyBytes int64
	cors         bool
	corsOrigins  string
	otlpEndpoint string
}

func newServeCmd(g *globalFlags) *cobra.Command {
	f := &serveFlags{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the model and serve POST /extract_entities",
		Long: `Load the model and serve POST /extract_entities.

The default prose backend tags PERSON, GPE and a few other labels but has no
ORG. For spaCy labels run a spaCy-like server and use --backend remote.`,
		Example: "  entityd serve --addr 0.0.0.0:8000\n  entityd serve --backend remote --remote-url http://127.0.0.1:9000",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, g, func(c *config.Config) {
				fl := cmd.Flags()
				if fl.Changed("addr") {
					c.Addr = f.addr
				}
				if fl.Changed("max-body-bytes") {
					c.MaxBodyBytes = f.maxBodyBytes
				}
				if fl.Changed("cors") {
					c.CORSEnabled = f.cors
				}
				if fl.Changed("cors-origins") {
					c.CORSAllowedOrigins = splitCSV(f.corsOrigins)
				}
				if fl.Changed("otlp-endpoint") {
					c.OTLPEndpoint = f.otlpEndpoint
				}
			})
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&f.addr, "addr", "", "HTTP listen address (default 0.0.0.0:8000)")
	cmd.Flags().Int64Var(&f.maxBodyBytes, "max-body-bytes", 0, "Maximum request body size in bytes (0 = unlimited)")
	cmd.Flags().BoolVar(&f.cors, "cors", false, "Enable CORS")
	cmd.Flags().StringVar(&f.corsOrigins, "cors-origins", "", "Comma-separated allowed origins for CORS")
	cmd.Flags().StringVar(&f.otlpEndpoint, "otlp-endpoint", "", "OTLP/HTTP trace collector, e.g. localhost:4318")
	return cmd
}

func serve(parent context.Context, cfg config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	log := newLogger(cfg)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	// The model must be loaded before the listener accepts connections.
	backend, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to load model")
		return err
	}
	svc := extract.New(backend, log)
	defer svc.Close()

	httpapi.SetLogger(log)
	httpapi.SetLogLevel(cfg.LogLevel)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSAllowedOrigins, nil, nil)
	httpapi.SetBaseContext(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewMux(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("backend", svc.BackendName()).Msg("entityd listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
	return nil
}
