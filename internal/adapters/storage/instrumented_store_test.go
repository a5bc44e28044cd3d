package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifiedpay/connector-service/internal/domain/models"
	"github.com/unifiedpay/connector-service/internal/domain/ports"
)

type fakeStore struct {
	upserted []ports.AttemptRecord
	err      error
}

func (f *fakeStore) UpsertAttempt(_ context.Context, record ports.AttemptRecord) error {
	if f.err != nil {
		return f.err
	}
	f.upserted = append(f.upserted, record)
	return nil
}

func (f *fakeStore) GetAttempt(_ context.Context, paymentID, attemptID string) (*ports.AttemptRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.upserted {
		if f.upserted[i].PaymentID == paymentID && f.upserted[i].AttemptID == attemptID {
			return &f.upserted[i], nil
		}
	}
	return nil, nil
}

type recordingLogger struct {
	errors []string
	debugs []string
}

func (l *recordingLogger) Info(string, ...ports.Field) {}
func (l *recordingLogger) Warn(string, ...ports.Field) {}
func (l *recordingLogger) Error(msg string, _ ...ports.Field) {
	l.errors = append(l.errors, msg)
}
func (l *recordingLogger) Debug(msg string, _ ...ports.Field) {
	l.debugs = append(l.debugs, msg)
}

func TestInstrumentedStore_DelegatesAndLogs(t *testing.T) {
	inner := &fakeStore{}
	logger := &recordingLogger{}
	store := NewInstrumentedStore(inner, logger)

	record := ports.AttemptRecord{
		PaymentID: "pay_1",
		AttemptID: "pay_1_1",
		Status:    models.AttemptStatusCharged,
	}
	require.NoError(t, store.UpsertAttempt(context.Background(), record))
	require.Len(t, inner.upserted, 1)
	assert.NotEmpty(t, logger.debugs)
	assert.Empty(t, logger.errors)

	got, err := store.GetAttempt(context.Background(), "pay_1", "pay_1_1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.AttemptStatusCharged, got.Status)
}

func TestInstrumentedStore_SurfacesErrors(t *testing.T) {
	inner := &fakeStore{err: errors.New("connection refused")}
	logger := &recordingLogger{}
	store := NewInstrumentedStore(inner, logger)

	err := store.UpsertAttempt(context.Background(), ports.AttemptRecord{PaymentID: "pay_1"})
	require.Error(t, err)
	assert.NotEmpty(t, logger.errors)

	_, err = store.GetAttempt(context.Background(), "pay_1", "a_1")
	require.Error(t, err)
}
