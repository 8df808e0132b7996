package repository

import (
	"context"

	"RxPulse/internal/domain/models"
)

// Publisher publishes audit events to a message broker.
type Publisher interface {
	Publish(ctx context.Context, e *models.AuditEvent) error
	PublishBatch(ctx context.Context, events []*models.AuditEvent) error
	Close() error
}

// Storage persists audit events in an analytical store.
type Storage interface {
	Store(ctx context.Context, e *models.AuditEvent) error
	StoreBatch(ctx context.Context, events []*models.AuditEvent) error
	Health(ctx context.Context) error
	Close() error
}

// Metrics records operational metrics.
type Metrics interface {
	RecordPrediction(role, status string)
	RecordError(kind string)
	RecordModelLoaded(role string, loaded bool)
	RecordLatency(op string, seconds float64)
}

// NopMetrics is a Metrics implementation that records nothing.
type NopMetrics struct{}

func (NopMetrics) RecordPrediction(string, string)  {}
func (NopMetrics) RecordError(string)               {}
func (NopMetrics) RecordModelLoaded(string, bool)   {}
func (NopMetrics) RecordLatency(string, float64)    {}
