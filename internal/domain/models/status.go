package models

// AttemptStatus is the canonical payment lifecycle state. Every connector's
// raw status vocabulary (string codes, HTTP statuses, connector enums) maps
// deterministically onto exactly one AttemptStatus. The mapping is one-way:
// connector-native status is never reconstructed from an AttemptStatus.
type AttemptStatus string

const (
	AttemptStatusStarted                AttemptStatus = "started"
	AttemptStatusAuthenticationPending  AttemptStatus = "authentication_pending"
	AttemptStatusAuthenticationFailed   AttemptStatus = "authentication_failed"
	AttemptStatusAuthorized             AttemptStatus = "authorized"
	AttemptStatusAuthorizationFailed    AttemptStatus = "authorization_failed"
	AttemptStatusAuthorizing            AttemptStatus = "authorizing"
	AttemptStatusCaptureInitiated       AttemptStatus = "capture_initiated"
	AttemptStatusCaptureFailed          AttemptStatus = "capture_failed"
	AttemptStatusCharged                AttemptStatus = "charged"
	AttemptStatusPartialCharged         AttemptStatus = "partial_charged"
	AttemptStatusPartialChargedAndChargeable AttemptStatus = "partial_charged_and_chargeable"
	AttemptStatusVoided                 AttemptStatus = "voided"
	AttemptStatusVoidInitiated          AttemptStatus = "void_initiated"
	AttemptStatusVoidFailed             AttemptStatus = "void_failed"
	AttemptStatusPending                AttemptStatus = "pending"
	AttemptStatusUnresolved             AttemptStatus = "unresolved"
	AttemptStatusFailure                AttemptStatus = "failure"
	AttemptStatusPaymentMethodAwaited   AttemptStatus = "payment_method_awaited"
	AttemptStatusConfirmationAwaited    AttemptStatus = "confirmation_awaited"
	AttemptStatusDeviceDataCollectionPending AttemptStatus = "device_data_collection_pending"
)

// IsTerminal reports whether the status can no longer transition.
func (s AttemptStatus) IsTerminal() bool {
	switch s {
	case AttemptStatusCharged, AttemptStatusVoided, AttemptStatusFailure,
		AttemptStatusAuthorizationFailed, AttemptStatusAuthenticationFailed,
		AttemptStatusCaptureFailed, AttemptStatusVoidFailed:
		return true
	}
	return false
}

// RefundStatus is the canonical refund lifecycle state.
type RefundStatus string

const (
	RefundStatusPending       RefundStatus = "pending"
	RefundStatusSuccess       RefundStatus = "success"
	RefundStatusFailure       RefundStatus = "failure"
	RefundStatusManualReview  RefundStatus = "manual_review"
	RefundStatusTransactionFailure RefundStatus = "transaction_failure"
)
