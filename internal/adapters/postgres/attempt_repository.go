package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/unifiedpay/connector-service/internal/domain/models"
	"github.com/unifiedpay/connector-service/internal/domain/ports"
)

// AttemptRepository is the pgx-backed AttemptStore.
type AttemptRepository struct {
	pool *pgxpool.Pool
}

// NewAttemptRepository creates the repository.
func NewAttemptRepository(pool *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{pool: pool}
}

const upsertAttemptSQL = `
INSERT INTO payment_attempts (
    payment_id, attempt_id, merchant_id, connector, flow,
    status, connector_transaction_id,
    error_code, error_message, error_reason,
    connector_mandate_id, mandate_payment_method_id,
    connector_metadata, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
ON CONFLICT (payment_id, attempt_id) DO UPDATE SET
    connector = EXCLUDED.connector,
    flow = EXCLUDED.flow,
    status = EXCLUDED.status,
    connector_transaction_id = EXCLUDED.connector_transaction_id,
    error_code = EXCLUDED.error_code,
    error_message = EXCLUDED.error_message,
    error_reason = EXCLUDED.error_reason,
    connector_mandate_id = EXCLUDED.connector_mandate_id,
    mandate_payment_method_id = EXCLUDED.mandate_payment_method_id,
    connector_metadata = EXCLUDED.connector_metadata,
    updated_at = EXCLUDED.updated_at`

// UpsertAttempt writes the outcome of one connector call, keyed by
// (payment_id, attempt_id).
func (r *AttemptRepository) UpsertAttempt(ctx context.Context, record ports.AttemptRecord) error {
	var metadata []byte
	if len(record.ConnectorMetadata) > 0 {
		var err error
		if metadata, err = json.Marshal(record.ConnectorMetadata); err != nil {
			return fmt.Errorf("marshal connector metadata: %w", err)
		}
	}

	var mandateID, mandatePaymentMethodID string
	if record.MandateReference != nil {
		mandateID = record.MandateReference.ConnectorMandateID
		mandatePaymentMethodID = record.MandateReference.PaymentMethodID
	}

	return withTransaction(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, upsertAttemptSQL,
			record.PaymentID, record.AttemptID, record.MerchantID,
			record.Connector, record.Flow,
			string(record.Status), record.ConnectorTransactionID,
			record.ErrorCode, record.ErrorMessage, record.ErrorReason,
			mandateID, mandatePaymentMethodID,
			metadata, record.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("upsert attempt %s/%s: %w", record.PaymentID, record.AttemptID, err)
		}
		return nil
	})
}

const getAttemptSQL = `
SELECT payment_id, attempt_id, merchant_id, connector, flow,
       status, connector_transaction_id,
       error_code, error_message, error_reason,
       connector_mandate_id, mandate_payment_method_id,
       connector_metadata, updated_at
FROM payment_attempts
WHERE payment_id = $1 AND attempt_id = $2`

// GetAttempt reads back a persisted attempt. Returns (nil, nil) when the
// attempt does not exist.
func (r *AttemptRepository) GetAttempt(ctx context.Context, paymentID, attemptID string) (*ports.AttemptRecord, error) {
	var (
		record                 ports.AttemptRecord
		status                 string
		mandateID              string
		mandatePaymentMethodID string
		metadata               []byte
	)

	err := r.pool.QueryRow(ctx, getAttemptSQL, paymentID, attemptID).Scan(
		&record.PaymentID, &record.AttemptID, &record.MerchantID,
		&record.Connector, &record.Flow,
		&status, &record.ConnectorTransactionID,
		&record.ErrorCode, &record.ErrorMessage, &record.ErrorReason,
		&mandateID, &mandatePaymentMethodID,
		&metadata, &record.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get attempt %s/%s: %w", paymentID, attemptID, err)
	}

	record.Status = models.AttemptStatus(status)
	if mandateID != "" || mandatePaymentMethodID != "" {
		record.MandateReference = &models.MandateReference{
			ConnectorMandateID: mandateID,
			PaymentMethodID:    mandatePaymentMethodID,
		}
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &record.ConnectorMetadata); err != nil {
			return nil, fmt.Errorf("unmarshal connector metadata: %w", err)
		}
	}

	return &record, nil
}
