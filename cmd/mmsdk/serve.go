package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/interfaces/rest/router"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/worker"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the local HTTP surface and the report flush worker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg, logger := a.cfg, a.logger
	logger.Info("starting mobile messaging service",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
		"report_store", cfg.Reports.Store,
	)

	h := handlers.NewMessageHandler(a.mapper, a.reports, logger)
	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      router.New(h, a.registry, cfg.Server.RequestTimeout, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	reportWorker := worker.NewReportWorker(a.reports, cfg.Reports.FlushInterval, logger)

	workerCtx, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()
	go reportWorker.Start(workerCtx)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")
	cancelWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	// Send what is queued before exiting.
	if _, err := a.reports.Flush(shutdownCtx); err != nil {
		logger.Error("final report flush failed", "error", err)
	}

	logger.Info("server exited")
	return nil
}
