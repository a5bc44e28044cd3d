package ucs

import (
	"fmt"
	"net/http"
	"net/url"

	pkgerrors "github.com/unifiedpay/connector-service/pkg/errors"
)

// RequestDetails is the wire shape of an inbound webhook's raw HTTP
// request. The same shape the synchronous path uses for redirect callbacks,
// so the service applies one parsing rule to both.
type RequestDetails struct {
	Method      HTTPMethod        `json:"method"`
	URI         string            `json:"uri,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	Body        []byte            `json:"body,omitempty"`
	QueryParams map[string]string `json:"queryParams,omitempty"`
}

// RequestDetailsFrom converts a raw inbound request. Multi-valued headers
// and query params keep their first value; webhook payloads are not
// multi-valued in practice and the wire shape is a flat map.
func RequestDetailsFrom(method, uri string, headers http.Header, query url.Values, body []byte) RequestDetails {
	h := make(map[string]string, len(headers))
	for name := range headers {
		h[name] = headers.Get(name)
	}
	q := make(map[string]string, len(query))
	for name := range query {
		q[name] = query.Get(name)
	}
	return RequestDetails{
		Method:      HTTPMethodFrom(method),
		URI:         uri,
		Headers:     h,
		Body:        body,
		QueryParams: q,
	}
}

// WebhookEventType is the wire event vocabulary: payment, refund and
// dispute event classes.
type WebhookEventType string

const (
	WebhookEventTypeUnspecified       WebhookEventType = "WEBHOOK_EVENT_TYPE_UNSPECIFIED"
	WebhookEventTypePaymentAuthorized WebhookEventType = "WEBHOOK_EVENT_TYPE_PAYMENT_AUTHORIZED"
	WebhookEventTypePaymentCaptured   WebhookEventType = "WEBHOOK_EVENT_TYPE_PAYMENT_CAPTURED"
	WebhookEventTypePaymentPending    WebhookEventType = "WEBHOOK_EVENT_TYPE_PAYMENT_PENDING"
	WebhookEventTypePaymentFailed     WebhookEventType = "WEBHOOK_EVENT_TYPE_PAYMENT_FAILED"
	WebhookEventTypePaymentVoided     WebhookEventType = "WEBHOOK_EVENT_TYPE_PAYMENT_VOIDED"
	WebhookEventTypeRefundSucceeded   WebhookEventType = "WEBHOOK_EVENT_TYPE_REFUND_SUCCEEDED"
	WebhookEventTypeRefundFailed      WebhookEventType = "WEBHOOK_EVENT_TYPE_REFUND_FAILED"
	WebhookEventTypeDisputeOpened     WebhookEventType = "WEBHOOK_EVENT_TYPE_DISPUTE_OPENED"
	WebhookEventTypeDisputeWon        WebhookEventType = "WEBHOOK_EVENT_TYPE_DISPUTE_WON"
	WebhookEventTypeDisputeLost       WebhookEventType = "WEBHOOK_EVENT_TYPE_DISPUTE_LOST"
)

// WebhookTransformationStatus is the wire completion marker.
type WebhookTransformationStatus string

const (
	WebhookTransformationStatusUnspecified WebhookTransformationStatus = "WEBHOOK_TRANSFORMATION_STATUS_UNSPECIFIED"
	WebhookTransformationStatusComplete    WebhookTransformationStatus = "WEBHOOK_TRANSFORMATION_STATUS_COMPLETE"
	WebhookTransformationStatusIncomplete  WebhookTransformationStatus = "WEBHOOK_TRANSFORMATION_STATUS_INCOMPLETE"
)

// WebhookTransformRequest asks the service to interpret one inbound
// webhook for a connector and merchant.
type WebhookTransformRequest struct {
	Connector  string         `json:"connector"`
	MerchantID string         `json:"merchantId"`
	Request    RequestDetails `json:"request"`
}

// WebhookTransformResponse is the service's interpretation.
type WebhookTransformResponse struct {
	EventType            WebhookEventType            `json:"eventType,omitempty"`
	SourceVerified       bool                        `json:"sourceVerified,omitempty"`
	Content              map[string]string           `json:"content,omitempty"`
	ResponseRefID        *Identifier                 `json:"responseRefId,omitempty"`
	TransformationStatus WebhookTransformationStatus `json:"transformationStatus,omitempty"`
}

// TransformationStatus is the caller-visible completion state.
type TransformationStatus string

const (
	// TransformationComplete means the webhook produced a final state the
	// caller may act on.
	TransformationComplete TransformationStatus = "complete"

	// TransformationIncomplete means the webhook is informational only.
	// The caller must not transition the payment record from it.
	TransformationIncomplete TransformationStatus = "incomplete"
)

// WebhookTransformData is the normalized webhook outcome handed to callers.
type WebhookTransformData struct {
	EventType            WebhookEventType
	SourceVerified       bool
	Content              map[string]string
	ResponseRefID        string
	TransformationStatus TransformationStatus
}

// TransformWebhookResponse interprets the service's answer. The reference
// id resolves through the same Identifier-union rule as synchronous
// responses; if that rule ever changes it must change in both places at
// once.
func TransformWebhookResponse(resp *WebhookTransformResponse) (WebhookTransformData, error) {
	var status TransformationStatus
	switch resp.TransformationStatus {
	case WebhookTransformationStatusComplete:
		status = TransformationComplete
	case WebhookTransformationStatusIncomplete:
		status = TransformationIncomplete
	default:
		return WebhookTransformData{}, pkgerrors.NewResponseDeserializationFailed(
			[]byte(resp.TransformationStatus),
			fmt.Errorf("unknown webhook transformation status %q", resp.TransformationStatus))
	}

	return WebhookTransformData{
		EventType:            resp.EventType,
		SourceVerified:       resp.SourceVerified,
		Content:              resp.Content,
		ResponseRefID:        identifierValue(resp.ResponseRefID),
		TransformationStatus: status,
	}, nil
}
