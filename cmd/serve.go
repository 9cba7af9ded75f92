package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamusis/sitesearch/internal/metrics"
	"github.com/kamusis/sitesearch/internal/search/index"
	"github.com/kamusis/sitesearch/internal/server"
)

var (
	flagServeAddr  string
	flagServeRoot  string
	flagServeIndex string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site with the search page rendered per request",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "Listen address (default from config)")
	serveCmd.Flags().StringVar(&flagServeRoot, "root", "", "Static site root (default from config)")
	serveCmd.Flags().StringVar(&flagServeIndex, "index", "", "Index URL or path (default <root>/search-index.json)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}
	if flagServeAddr != "" {
		cfg.Serve.Addr = flagServeAddr
	}
	if flagServeRoot != "" {
		cfg.Serve.Root = flagServeRoot
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// An explicit --root serves its own index unless --index says otherwise.
	location := flagServeIndex
	if location == "" {
		location = cfg.Index
		if cmd.Flags().Changed("root") {
			location = cfg.Serve.Root + index.DefaultPath
		}
	}
	engine, err := newEngine(cfg, location)
	if err != nil {
		return err
	}
	engine.Source = index.NewShared(metrics.InstrumentSource(engine.Source))

	srv := server.New(server.Config{
		Root:          cfg.Serve.Root,
		Page:          cfg.Serve.Page,
		Selectors:     widgetSelectors(cfg),
		SnippetRadius: cfg.SnippetRadius,
	}, engine, log)

	httpSrv := &http.Server{
		Addr:         cfg.Serve.Addr,
		Handler:      srv.Router(),
		ReadTimeout:  time.Duration(cfg.Serve.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Serve.WriteTimeoutSec) * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server",
			zap.String("addr", cfg.Serve.Addr),
			zap.String("root", cfg.Serve.Root),
			zap.String("index", location),
		)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Serve.ShutdownSec)*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("Error during shutdown", zap.Error(err))
		return err
	}
	log.Info("Server stopped gracefully")
	return nil
}
