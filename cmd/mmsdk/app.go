package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/application"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/application/services"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/config"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/fingerprint"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/infrastructure/mobileapi"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/infrastructure/persistence"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/infrastructure/persistence/memory"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/infrastructure/persistence/postgres"
	reportredis "github.com/DanielPopoola/mobile-messaging-sdk/internal/infrastructure/persistence/redis"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/infrastructure/transport"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/mapper"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/serialization"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// app holds everything a subcommand needs, built from configuration.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	mapper   *mapper.MessageMapper
	client   *mobileapi.Client
	reports  *services.ReportService
	closers  []func()
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	a := &app{
		cfg:      cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}
	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	engine, err := serialization.EngineByName(cfg.Serialization.Engine)
	if err != nil {
		return nil, err
	}
	serializer := serialization.New(engine,
		serialization.WithPreserveNulls(cfg.Serialization.PreserveNulls),
		serialization.WithLogger(logger),
	)
	a.mapper = mapper.NewMessageMapper(serializer, logger)

	metrics, err := mobileapi.NewMetrics(a.registry)
	if err != nil {
		return nil, err
	}
	a.client, err = mobileapi.NewClient(
		mobileapi.NewBuilder(cfg.API, serializer),
		transport.NewHTTPTransport(cfg.API, logger),
		serializer,
		logger,
		mobileapi.WithMetrics(metrics),
		mobileapi.WithMapper(a.mapper),
		mobileapi.WithUserAgent(cfg.API.UserAgent),
	)
	if err != nil {
		return nil, err
	}

	store, err := a.openStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	hasher, err := fingerprint.ByName(cfg.Reports.KeyDigest)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.reports = services.NewReportService(
		store,
		mobileapi.NewReporter(a.client, cfg.Reports.PushRegistrationID),
		services.ReportServiceConfig{
			PushRegistrationID: cfg.Reports.PushRegistrationID,
			Hasher:             hasher,
			BatchSize:          cfg.Reports.BatchSize,
		},
		logger,
	)
	return a, nil
}

func (a *app) openStore(ctx context.Context) (application.ReportStore, error) {
	switch a.cfg.Reports.Store {
	case "postgres":
		db, err := persistence.Connect(ctx, &a.cfg.Database, a.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		if err := db.Migrate(ctx); err != nil {
			return nil, err
		}
		return postgres.NewReportRepository(db.Pool), nil

	case "redis":
		client, err := reportredis.NewClient(ctx, a.cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = client.Close() })
		return reportredis.New(reportredis.Config{Client: client, KeyPrefix: a.cfg.Redis.KeyPrefix})

	case "memory", "":
		a.logger.Warn("using in-memory report store; queued reports are lost on exit")
		return memory.NewReportStore(), nil

	default:
		return nil, errors.New("unknown report store " + a.cfg.Reports.Store)
	}
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
