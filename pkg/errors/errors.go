package errors

import (
	"fmt"
)

// Kind classifies a connector-layer failure for handling
type Kind string

const (
	// KindRequestEncodingFailed means the domain request could not be
	// translated into the connector wire format. Programming or
	// configuration error - never retried by this layer.
	KindRequestEncodingFailed Kind = "request_encoding_failed"

	// KindResponseDeserializationFailed means the connector returned a body
	// that matched no known shape. The raw body is preserved for diagnostics.
	KindResponseDeserializationFailed Kind = "response_deserialization_failed"

	// KindMissingRequiredField means a conversion needed data the caller
	// didn't supply. Always a caller/config bug, named explicitly.
	KindMissingRequiredField Kind = "missing_required_field"

	// KindNotImplemented means the connector does not support the requested
	// flow. Distinct from a failure of a supported flow.
	KindNotImplemented Kind = "not_implemented"

	// KindWebhooksNotImplemented means the connector has no webhook support.
	KindWebhooksNotImplemented Kind = "webhooks_not_implemented"

	// KindNetworkError means the HTTP call itself failed before any
	// connector response was received.
	KindNetworkError Kind = "network_error"
)

// ConnectorError is a failure inside the connector integration layer.
// Connector-reported business declines are NOT ConnectorErrors - those are
// returned as a normalized ErrorResponse value so the caller always sees the
// connector's own code/message.
type ConnectorError struct {
	Kind      Kind
	Message   string
	FieldName string // set for KindMissingRequiredField
	RawBody   string // set for KindResponseDeserializationFailed
	Err       error
}

func (e *ConnectorError) Error() string {
	switch {
	case e.FieldName != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.FieldName)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

func (e *ConnectorError) Unwrap() error {
	return e.Err
}

// NewRequestEncodingFailed reports a domain-to-wire conversion failure.
func NewRequestEncodingFailed(err error) *ConnectorError {
	return &ConnectorError{
		Kind:    KindRequestEncodingFailed,
		Message: "failed to encode connector request",
		Err:     err,
	}
}

// NewRequestEncodingFailedWithReason reports a conversion failure with a
// caller-facing reason (e.g. an unknown currency code). Silent defaulting of
// payment fields is a financial-correctness bug, so these fail loudly.
func NewRequestEncodingFailedWithReason(reason string) *ConnectorError {
	return &ConnectorError{
		Kind:    KindRequestEncodingFailed,
		Message: reason,
	}
}

// NewResponseDeserializationFailed reports an unparseable connector body.
// The raw body is carried on the error, never discarded.
func NewResponseDeserializationFailed(rawBody []byte, err error) *ConnectorError {
	return &ConnectorError{
		Kind:    KindResponseDeserializationFailed,
		Message: "failed to deserialize connector response",
		RawBody: string(rawBody),
		Err:     err,
	}
}

// NewMissingRequiredField reports an absent caller-supplied field by name.
func NewMissingRequiredField(fieldName string) *ConnectorError {
	return &ConnectorError{
		Kind:      KindMissingRequiredField,
		Message:   "missing required field",
		FieldName: fieldName,
	}
}

// NewNotImplemented reports that a connector does not support a flow.
func NewNotImplemented(connector, flow string) *ConnectorError {
	return &ConnectorError{
		Kind:    KindNotImplemented,
		Message: fmt.Sprintf("%s does not implement flow %s", connector, flow),
	}
}

// NewWebhooksNotImplemented reports that a connector has no webhook support,
// so callers can special-case it from broken webhook processing.
func NewWebhooksNotImplemented(connector string) *ConnectorError {
	return &ConnectorError{
		Kind:    KindWebhooksNotImplemented,
		Message: fmt.Sprintf("%s has no webhook support", connector),
	}
}

// NewNetworkError wraps a transport-level failure.
func NewNetworkError(err error) *ConnectorError {
	return &ConnectorError{
		Kind:    KindNetworkError,
		Message: "failed to reach connector",
		Err:     err,
	}
}
