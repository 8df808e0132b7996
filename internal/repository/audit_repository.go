package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"RxPulse/internal/domain/models"
	"RxPulse/internal/domain/repository"
	pkgkafka "RxPulse/pkg/kafka"
)

// AuditTableSchema creates the prediction audit table if missing.
func AuditTableSchema(table string) []string {
	return []string{fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		ts DateTime,
		role LowCardinality(String),
		medicine_id Int64,
		status LowCardinality(String),
		value Float64
	) ENGINE = MergeTree()
	ORDER BY (role, ts)`, table)}
}

// ClickHouseAuditStore implements Storage for ClickHouse.
type ClickHouseAuditStore struct {
	db    *sql.DB
	table string
}

// NewClickHouseAuditStore creates ClickHouse audit storage.
func NewClickHouseAuditStore(db *sql.DB, table string) repository.Storage {
	return &ClickHouseAuditStore{db: db, table: table}
}

func (s *ClickHouseAuditStore) Store(ctx context.Context, e *models.AuditEvent) error {
	q := fmt.Sprintf("INSERT INTO %s (ts, role, medicine_id, status, value) VALUES (?, ?, ?, ?, ?)", s.table)
	_, err := s.db.ExecContext(ctx, q, e.Timestamp, e.Role, e.MedicineID, e.Status, e.Value)
	return err
}

func (s *ClickHouseAuditStore) StoreBatch(ctx context.Context, events []*models.AuditEvent) error {
	if len(events) == 0 {
		return nil
	}
	values := make([]string, 0, len(events))
	args := make([]interface{}, 0, len(events)*5)
	for _, e := range events {
		if e == nil {
			continue
		}
		values = append(values, "(?, ?, ?, ?, ?)")
		args = append(args, e.Timestamp, e.Role, e.MedicineID, e.Status, e.Value)
	}
	if len(values) == 0 {
		return nil
	}
	q := fmt.Sprintf("INSERT INTO %s (ts, role, medicine_id, status, value) VALUES %s", s.table, strings.Join(values, ","))
	_, err := s.db.ExecContext(ctx, q, args...)
	return err
}

func (s *ClickHouseAuditStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseAuditStore) Close() error {
	return nil // Managed by pkg
}

// KafkaAuditPublisher implements Publisher for Kafka. Events are keyed by
// role so per-role ordering survives partitioning.
type KafkaAuditPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaAuditPublisher creates a Kafka audit publisher.
func NewKafkaAuditPublisher(producer *pkgkafka.Producer, topic string) repository.Publisher {
	return &KafkaAuditPublisher{producer: producer, topic: topic}
}

func (p *KafkaAuditPublisher) Publish(ctx context.Context, e *models.AuditEvent) error {
	return p.producer.Publish(ctx, p.topic, auditKey(e), e)
}

func (p *KafkaAuditPublisher) PublishBatch(ctx context.Context, events []*models.AuditEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(events))
	for i, e := range events {
		msgs[i] = pkgkafka.Message{Key: auditKey(e), Value: e}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaAuditPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

func auditKey(e *models.AuditEvent) []byte {
	return []byte(e.Role + "-" + strconv.FormatInt(e.MedicineID, 10))
}
