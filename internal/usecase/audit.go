package usecase

import (
	"context"
	"time"

	"RxPulse/internal/domain/models"
	drepo "RxPulse/internal/domain/repository"
	applogger "RxPulse/pkg/logger"
)

// Audit backend identifiers, matching the audit.backend config values.
const (
	AuditBackendNone       = "none"
	AuditBackendKafka      = "kafka"
	AuditBackendClickHouse = "clickhouse"
)

// AuditRecorder routes served-prediction events to the configured backend.
// Recording is best effort: a broken audit pipeline must never fail a
// prediction, so errors are logged and counted but not propagated.
type AuditRecorder struct {
	pub     drepo.Publisher
	store   drepo.Storage
	metrics drepo.Metrics
	logger  *applogger.Logger
	backend string
}

// NewAuditRecorder creates a recorder for the given backend. With backend
// "none" every call is a no-op.
func NewAuditRecorder(
	pub drepo.Publisher,
	store drepo.Storage,
	metrics drepo.Metrics,
	logger *applogger.Logger,
	backend string,
) *AuditRecorder {
	return &AuditRecorder{
		pub:     pub,
		store:   store,
		metrics: metrics,
		logger:  logger,
		backend: backend,
	}
}

// Record writes a single audit event to the configured backend.
func (r *AuditRecorder) Record(ctx context.Context, e *models.AuditEvent) {
	if r == nil || r.backend == AuditBackendNone || e == nil {
		return
	}

	start := time.Now()
	var err error

	switch r.backend {
	case AuditBackendKafka:
		err = r.pub.Publish(ctx, e)
	case AuditBackendClickHouse:
		err = r.store.Store(ctx, e)
	}

	if err != nil {
		r.metrics.RecordError("audit")
		r.logger.Error("audit event not recorded",
			applogger.String("backend", r.backend),
			applogger.String("role", e.Role),
			applogger.Error(err),
		)
		return
	}
	r.metrics.RecordLatency("audit", time.Since(start).Seconds())
}

// Close closes underlying resources if available.
func (r *AuditRecorder) Close() {
	if r == nil {
		return
	}
	if r.pub != nil {
		_ = r.pub.Close()
	}
	if r.store != nil {
		_ = r.store.Close()
	}
}
