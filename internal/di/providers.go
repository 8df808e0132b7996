package di

import (
	"context"
	"fmt"
	"time"

	"RxPulse/internal/domain/repository"
	"RxPulse/internal/handler/api"
	"RxPulse/internal/ml"
	internalrepo "RxPulse/internal/repository"
	"RxPulse/internal/usecase"
	pkgcache "RxPulse/pkg/cache"
	pkgch "RxPulse/pkg/clickhouse"
	"RxPulse/pkg/config"
	pkgkafka "RxPulse/pkg/kafka"
	applogger "RxPulse/pkg/logger"
	"RxPulse/pkg/metrics"
	"RxPulse/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideRegistry creates the model registry. Load happens in App.Run so
// that startup logging is in place first.
func ProvideRegistry(cfg *config.Config, l *applogger.Logger, m repository.Metrics) *ml.Registry {
	return ml.NewRegistry(cfg.Models.Dir, cfg.Models.Mock, l, m)
}

// ProvideForecastCache creates the forecast cache, or nil when disabled.
func ProvideForecastCache(cfg *config.Config) (pkgcache.Service, error) {
	if !cfg.Forecast.CacheEnabled {
		return nil, nil
	}
	switch cfg.Forecast.CacheBackend {
	case "redis":
		c, err := pkgcache.NewRedisCache(
			pkgcache.WithRedisHost(cfg.Forecast.Redis.Host),
			pkgcache.WithRedisPort(cfg.Forecast.Redis.Port),
			pkgcache.WithRedisPassword(cfg.Forecast.Redis.Password),
			pkgcache.WithRedisDB(cfg.Forecast.Redis.DB),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return c, nil
	default:
		return pkgcache.NewMemoryCache(time.Minute), nil
	}
}

// ProvideAuditPublisher creates the Kafka audit publisher when the audit
// backend is kafka, nil otherwise.
func ProvideAuditPublisher(cfg *config.Config) (repository.Publisher, error) {
	if cfg.Audit.Backend != usecase.AuditBackendKafka {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Audit.Kafka.Brokers),
		pkgkafka.WithRequiredAcks(cfg.Audit.Kafka.RequiredAcks),
		pkgkafka.WithCompression(cfg.Audit.Kafka.Compression),
		pkgkafka.WithMaxAttempts(cfg.Audit.Kafka.MaxAttempts),
		pkgkafka.WithWriteTimeout(cfg.Audit.Kafka.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaAuditPublisher(producer, cfg.Audit.Topic), nil
}

// ProvideAuditStorage creates the ClickHouse audit store when the audit
// backend is clickhouse, nil otherwise. The audit table is created eagerly.
func ProvideAuditStorage(cfg *config.Config) (repository.Storage, error) {
	if cfg.Audit.Backend != usecase.AuditBackendClickHouse {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.Audit.ClickHouse.Host),
		pkgch.WithPort(cfg.Audit.ClickHouse.Port),
		pkgch.WithDatabase(cfg.Audit.ClickHouse.Database),
		pkgch.WithCredentials(cfg.Audit.ClickHouse.User, cfg.Audit.ClickHouse.Password),
		pkgch.WithTimeouts(cfg.Audit.ClickHouse.DialTimeout, cfg.Audit.ClickHouse.ReadTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, internalrepo.AuditTableSchema(cfg.Audit.Table)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return internalrepo.NewClickHouseAuditStore(client.DB(), cfg.Audit.Table), nil
}

// ProvideAuditRecorder creates the audit recorder use case.
func ProvideAuditRecorder(
	pub repository.Publisher,
	store repository.Storage,
	m repository.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.AuditRecorder {
	backend := cfg.Audit.Backend
	if backend == "" {
		backend = usecase.AuditBackendNone
	}
	return usecase.NewAuditRecorder(pub, store, m, l, backend)
}

// ProvidePredictor creates the prediction use case.
func ProvidePredictor(
	registry *ml.Registry,
	audit *usecase.AuditRecorder,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.Predictor {
	return usecase.NewPredictor(registry, audit, m, l, nil)
}

// ProvideForecaster creates the forecast use case.
func ProvideForecaster(
	registry *ml.Registry,
	cacheSvc pkgcache.Service,
	m repository.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.Forecaster {
	return usecase.NewForecaster(registry, cacheSvc, cfg.Forecast.CacheTTL, m, l, nil)
}

// ProvideHTTPHandler creates the Echo handler for all prediction routes.
func ProvideHTTPHandler(
	l *applogger.Logger,
	predictor *usecase.Predictor,
	forecaster *usecase.Forecaster,
	registry *ml.Registry,
) *api.PredictionsEchoHandler {
	return api.NewPredictionsEchoHandler(l, predictor, forecaster, registry)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	registry *ml.Registry,
	handler *api.PredictionsEchoHandler,
	audit *usecase.AuditRecorder,
	cacheSvc pkgcache.Service,
) *server.App {
	return server.New(cfg, l, registry, handler, audit, cacheSvc)
}
