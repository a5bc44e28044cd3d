package models

// Fallback sentinels used when a connector body is unparseable, so the
// caller always has a non-empty, displayable error.
const (
	NoErrorCode    = "NO_ERROR_CODE"
	NoErrorMessage = "NO_ERROR_MESSAGE"
)

// ErrorResponse is the normalized form of a connector-reported failure.
// It is a value, not an exception: connector business declines flow back to
// the caller as an ErrorResponse with the connector's own code/message
// passed through unchanged.
type ErrorResponse struct {
	// StatusCode is the HTTP status the connector answered with.
	StatusCode int

	// Code is the connector-native error code, or NoErrorCode when absent.
	Code string

	// Message is the connector-native message, or NoErrorMessage when absent.
	Message string

	// Reason is a human-readable string; may aggregate several field-level
	// errors joined by ", ".
	Reason string

	// AttemptStatus is the state transition this error implies. nil means
	// "unknown - do not transition state": the caller must reconcile via a
	// sync call, never assume success or failure.
	AttemptStatus *AttemptStatus

	// ConnectorTransactionID is set when the connector assigned an id
	// before failing.
	ConnectorTransactionID string

	// NetworkDeclineCode and NetworkAdviceCode are raw network codes, when
	// the connector surfaces them.
	NetworkDeclineCode string
	NetworkAdviceCode  string
}

// WithDefaults fills empty code/message with the layer sentinels.
func (e ErrorResponse) WithDefaults() ErrorResponse {
	if e.Code == "" {
		e.Code = NoErrorCode
	}
	if e.Message == "" {
		e.Message = NoErrorMessage
	}
	return e
}
