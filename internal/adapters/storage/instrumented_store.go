// Package storage decorates the attempt store with logging and metrics,
// keeping the core store free of observability concerns and testable in
// isolation.
package storage

import (
	"context"
	"time"

	"github.com/unifiedpay/connector-service/internal/domain/ports"
	"github.com/unifiedpay/connector-service/pkg/observability"
)

// InstrumentedStore wraps an AttemptStore with structured logging and
// Prometheus metrics. Composition, not ambient state: the inner store never
// knows it is being observed.
type InstrumentedStore struct {
	inner  ports.AttemptStore
	logger ports.Logger
}

// NewInstrumentedStore wraps store.
func NewInstrumentedStore(store ports.AttemptStore, logger ports.Logger) *InstrumentedStore {
	return &InstrumentedStore{inner: store, logger: logger}
}

// UpsertAttempt delegates and records the outcome.
func (s *InstrumentedStore) UpsertAttempt(ctx context.Context, record ports.AttemptRecord) error {
	start := time.Now()
	err := s.inner.UpsertAttempt(ctx, record)
	elapsed := time.Since(start)

	if err != nil {
		observability.RecordStoreOperation("upsert_attempt", "error", elapsed)
		s.logger.Error("failed to persist attempt",
			ports.String("payment_id", record.PaymentID),
			ports.String("attempt_id", record.AttemptID),
			ports.Err(err))
		return err
	}

	observability.RecordStoreOperation("upsert_attempt", "success", elapsed)
	s.logger.Debug("attempt persisted",
		ports.String("payment_id", record.PaymentID),
		ports.String("attempt_id", record.AttemptID),
		ports.String("status", string(record.Status)),
		ports.Duration("elapsed", elapsed))
	return nil
}

// GetAttempt delegates and records the outcome.
func (s *InstrumentedStore) GetAttempt(ctx context.Context, paymentID, attemptID string) (*ports.AttemptRecord, error) {
	start := time.Now()
	record, err := s.inner.GetAttempt(ctx, paymentID, attemptID)
	elapsed := time.Since(start)

	if err != nil {
		observability.RecordStoreOperation("get_attempt", "error", elapsed)
		s.logger.Error("failed to read attempt",
			ports.String("payment_id", paymentID),
			ports.String("attempt_id", attemptID),
			ports.Err(err))
		return nil, err
	}

	observability.RecordStoreOperation("get_attempt", "success", elapsed)
	return record, nil
}
