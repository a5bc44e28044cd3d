package ports

import (
	"context"
	"time"

	"github.com/unifiedpay/connector-service/internal/domain/models"
)

// AttemptRecord is the durable outcome of one connector call. AttemptStatus
// and ErrorResponse are the persisted state; they are never reconstructed
// from the transient RouterData.
type AttemptRecord struct {
	PaymentID  string
	AttemptID  string
	MerchantID string
	Connector  string
	Flow       string

	Status                 models.AttemptStatus
	ConnectorTransactionID string

	ErrorCode    string
	ErrorMessage string
	ErrorReason  string

	MandateReference  *models.MandateReference
	ConnectorMetadata map[string]interface{}

	UpdatedAt time.Time
}

// AttemptStore persists the outcome of each connector call.
type AttemptStore interface {
	// UpsertAttempt writes the record keyed by (payment_id, attempt_id).
	UpsertAttempt(ctx context.Context, record AttemptRecord) error

	// GetAttempt reads back a persisted attempt record.
	GetAttempt(ctx context.Context, paymentID, attemptID string) (*AttemptRecord, error)
}
