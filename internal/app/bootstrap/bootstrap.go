// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.
package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	expertservice "themis/contexts/identity-access/expert-service"
	expertpostgres "themis/contexts/identity-access/expert-service/adapters/postgres"
	tokenadapter "themis/contexts/identity-access/expert-service/adapters/token"
	ratingengine "themis/contexts/judging/rating-engine"
	ratingpostgres "themis/contexts/judging/rating-engine/adapters/postgres"
	ratingqueries "themis/contexts/judging/rating-engine/application/queries"
	ratingworkers "themis/contexts/judging/rating-engine/application/workers"
	ratingports "themis/contexts/judging/rating-engine/ports"
	submissionservice "themis/contexts/judging/submission-service"
	submissionpostgres "themis/contexts/judging/submission-service/adapters/postgres"
	"themis/internal/platform/config"
	"themis/internal/platform/db"
	"themis/internal/platform/httpserver"
	"themis/internal/platform/messaging"
	"themis/internal/platform/metrics"
	"themis/internal/shared/events"
)

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	bus          *messaging.Kafka
	outboxRelay  ratingworkers.OutboxRelay
	pollInterval time.Duration
	serviceName  string
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg).With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("THEMIS_POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	expertRepo := expertpostgres.NewRepository(pg.DB, logger)
	tokens := tokenadapter.NewJWTCodec(cfg.TokenSecret, cfg.TokenTTL, cfg.TokenIssuer)
	expertModule := expertservice.NewModule(expertservice.Dependencies{
		Experts: expertRepo,
		Tokens:  tokens,
		Clock:   expertpostgres.SystemClock{},
		IDGen:   expertpostgres.UUIDGenerator{},
		Codes:   expertpostgres.AccessCodeGenerator{},
		Logger:  logger,
	})

	submissionRepo := submissionpostgres.NewRepository(pg.DB, logger)
	ratingRepo := ratingpostgres.NewRepository(pg.DB, logger)
	catalog := submissionCatalog{repo: submissionRepo}
	ratingModule := ratingengine.NewModule(ratingengine.Dependencies{
		Ratings:     ratingRepo,
		Submissions: catalog,
		Experts:     expertDirectory{repo: expertRepo},
		Outbox:      ratingRepo,
		Clock:       ratingpostgres.SystemClock{},
		IDGen:       ratingpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	submissionModule := submissionservice.NewModule(submissionservice.Dependencies{
		Submissions: submissionRepo,
		Ratings: ratingSource{aggregates: ratingqueries.AggregateUseCase{
			Ratings:     ratingRepo,
			Submissions: catalog,
		}},
		Clock:  submissionpostgres.SystemClock{},
		IDGen:  submissionpostgres.UUIDGenerator{},
		Logger: logger,
	})

	server := httpserver.New(expertModule, submissionModule, ratingModule, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg).With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("THEMIS_POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	bus, err := messaging.NewKafka(logger)
	if err != nil {
		return nil, err
	}

	ratingRepo := ratingpostgres.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		bus:      bus,
		outboxRelay: ratingworkers.OutboxRelay{
			Outbox:    ratingRepo,
			Publisher: bus,
			Clock:     ratingpostgres.SystemClock{},
			BatchSize: cfg.OutboxBatchSize,
			Logger:    logger,
		},
		pollInterval: cfg.OutboxPollInterval,
		serviceName:  cfg.ServiceName,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	for _, topic := range []string{"rating.recorded", "rating.revised"} {
		if err := w.bus.Subscribe(ctx, topic, "judging-rating-events-cg", w.consumeRatingEvent); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.outboxRelay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// consumeRatingEvent folds bus events into the canonical envelope for
// downstream consumers. Today the only consumer is the audit log.
func (w *WorkerApp) consumeRatingEvent(_ context.Context, event ratingports.EventEnvelope) error {
	canonical := events.Envelope{
		EventID:        event.EventID,
		EventType:      event.EventType,
		SourceService:  w.serviceName,
		OccurredAtUTC:  event.OccurredAt.UTC(),
		EntityType:     "rating",
		EntityID:       event.PartitionKey,
		PayloadVersion: 1,
		Payload:        event.Data,
	}
	metrics.RecordOutboxPublished()
	w.logger.Info("rating event consumed",
		"event", "bootstrap_rating_event_consumed",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"event_id", canonical.EventID,
		"event_type", canonical.EventType,
		"entity_id", canonical.EntityID,
	)
	return nil
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func newLogger(cfg config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(strings.TrimSpace(cfg.LogLevel)) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
