package wellsfargo

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/unifiedpay/connector-service/internal/connector"
	"github.com/unifiedpay/connector-service/internal/domain/models"
	pkgerrors "github.com/unifiedpay/connector-service/pkg/errors"
)

// paymentStatus is the gateway's native payment status vocabulary. The
// mapping onto AttemptStatus is total over the declared variants; an
// undeclared status is a deserialization error, never a default.
type paymentStatus string

const (
	statusAuthorized              paymentStatus = "AUTHORIZED"
	statusPartialAuthorized       paymentStatus = "PARTIAL_AUTHORIZED"
	statusAuthorizedPendingReview paymentStatus = "AUTHORIZED_PENDING_REVIEW"
	statusAuthorizedRiskDeclined  paymentStatus = "AUTHORIZED_RISK_DECLINED"
	statusPendingAuthentication   paymentStatus = "PENDING_AUTHENTICATION"
	statusPendingReview           paymentStatus = "PENDING_REVIEW"
	statusDeclined                paymentStatus = "DECLINED"
	statusInvalidRequest          paymentStatus = "INVALID_REQUEST"
	statusPending                 paymentStatus = "PENDING"
	statusProcessing              paymentStatus = "PROCESSING"
	statusTransmitted             paymentStatus = "TRANSMITTED"
	statusVoided                  paymentStatus = "VOIDED"
	statusReversed                paymentStatus = "REVERSED"
	statusCancelled               paymentStatus = "CANCELLED"
	statusSucceeded               paymentStatus = "SUCCEEDED"
	statusFailed                  paymentStatus = "FAILED"
)

// attemptStatusFrom maps a native payment status onto the canonical
// AttemptStatus. autoCapture distinguishes a sale (authorize+capture in one
// call) from an authorization-only attempt.
func attemptStatusFrom(status paymentStatus, autoCapture bool) (models.AttemptStatus, error) {
	switch status {
	case statusAuthorized:
		if autoCapture {
			return models.AttemptStatusCharged, nil
		}
		return models.AttemptStatusAuthorized, nil
	case statusPartialAuthorized:
		return models.AttemptStatusPartialCharged, nil
	case statusAuthorizedPendingReview, statusPendingReview:
		return models.AttemptStatusPending, nil
	case statusAuthorizedRiskDeclined, statusDeclined, statusInvalidRequest, statusFailed:
		return models.AttemptStatusFailure, nil
	case statusPendingAuthentication:
		return models.AttemptStatusAuthenticationPending, nil
	case statusPending, statusProcessing:
		return models.AttemptStatusPending, nil
	case statusSucceeded, statusTransmitted:
		return models.AttemptStatusCharged, nil
	case statusVoided, statusReversed, statusCancelled:
		return models.AttemptStatusVoided, nil
	default:
		return "", pkgerrors.NewResponseDeserializationFailed(
			[]byte(status), fmt.Errorf("unknown payment status %q", status))
	}
}

// refundStatusFrom maps the gateway's refund statuses.
func refundStatusFrom(status paymentStatus) (models.RefundStatus, error) {
	switch status {
	case statusSucceeded, statusTransmitted:
		return models.RefundStatusSuccess, nil
	case statusPending, statusProcessing:
		return models.RefundStatusPending, nil
	case statusDeclined, statusInvalidRequest, statusFailed, statusVoided:
		return models.RefundStatusFailure, nil
	default:
		return "", pkgerrors.NewResponseDeserializationFailed(
			[]byte(status), fmt.Errorf("unknown refund status %q", status))
	}
}

// Request wire shapes.

type clientReferenceInformation struct {
	Code string `json:"code"`
}

type amountDetails struct {
	TotalAmount string `json:"totalAmount"`
	Currency    string `json:"currency"`
}

type billTo struct {
	FirstName          string `json:"firstName,omitempty"`
	LastName           string `json:"lastName,omitempty"`
	Address1           string `json:"address1,omitempty"`
	Locality           string `json:"locality,omitempty"`
	AdministrativeArea string `json:"administrativeArea,omitempty"`
	PostalCode         string `json:"postalCode,omitempty"`
	Country            string `json:"country,omitempty"`
	Email              string `json:"email,omitempty"`
	PhoneNumber        string `json:"phoneNumber,omitempty"`
}

type orderInformation struct {
	AmountDetails amountDetails `json:"amountDetails"`
	BillTo        *billTo       `json:"billTo,omitempty"`
}

type cardInformation struct {
	Number          string `json:"number"`
	ExpirationMonth string `json:"expirationMonth"`
	ExpirationYear  string `json:"expirationYear"`
	SecurityCode    string `json:"securityCode,omitempty"`
}

type paymentInstrument struct {
	ID string `json:"id"`
}

type paymentInformation struct {
	Card              *cardInformation   `json:"card,omitempty"`
	PaymentInstrument *paymentInstrument `json:"paymentInstrument,omitempty"`
}

type merchantInitiatedTransaction struct {
	Reason                    string `json:"reason,omitempty"`
	PreviousTransactionID     string `json:"previousTransactionId,omitempty"`
	OriginalAuthorizedAmount  string `json:"originalAuthorizedAmount,omitempty"`
}

type authorizationOptions struct {
	Initiator                    *initiator                    `json:"initiator,omitempty"`
	MerchantInitiatedTransaction *merchantInitiatedTransaction `json:"merchantInitiatedTransaction,omitempty"`
}

type initiator struct {
	InitiatorType       string `json:"type,omitempty"`
	CredentialStoredOnFile bool `json:"credentialStoredOnFile,omitempty"`
	StoredCredentialUsed bool   `json:"storedCredentialUsed,omitempty"`
}

type processingInformation struct {
	Capture              bool                  `json:"capture"`
	CommerceIndicator    string                `json:"commerceIndicator,omitempty"`
	ActionList           []string              `json:"actionList,omitempty"`
	AuthorizationOptions *authorizationOptions `json:"authorizationOptions,omitempty"`
}

type paymentsRequest struct {
	ClientReferenceInformation clientReferenceInformation `json:"clientReferenceInformation"`
	ProcessingInformation      processingInformation      `json:"processingInformation"`
	PaymentInformation         paymentInformation         `json:"paymentInformation"`
	OrderInformation           orderInformation           `json:"orderInformation"`
}

type captureRequest struct {
	ClientReferenceInformation clientReferenceInformation `json:"clientReferenceInformation"`
	OrderInformation           orderInformation           `json:"orderInformation"`
}

type reversalInformation struct {
	AmountDetails amountDetails `json:"amountDetails"`
	Reason        string        `json:"reason,omitempty"`
}

type voidRequest struct {
	ClientReferenceInformation clientReferenceInformation `json:"clientReferenceInformation"`
	ReversalInformation        *reversalInformation       `json:"reversalInformation,omitempty"`
}

type refundRequest struct {
	ClientReferenceInformation clientReferenceInformation `json:"clientReferenceInformation"`
	OrderInformation           orderInformation           `json:"orderInformation"`
}

type incrementalAuthRequest struct {
	ClientReferenceInformation clientReferenceInformation `json:"clientReferenceInformation"`
	OrderInformation           orderInformation           `json:"orderInformation"`
	ProcessingInformation      struct {
		AuthorizationOptions authorizationOptions `json:"authorizationOptions"`
	} `json:"processingInformation"`
}

// Response wire shapes.

type processorInformation struct {
	ApprovalCode         string `json:"approvalCode"`
	NetworkTransactionID string `json:"networkTransactionId"`
	ResponseCode         string `json:"responseCode"`
	MerchantAdvice       struct {
		Code string `json:"code"`
	} `json:"merchantAdvice"`
}

type tokenInformation struct {
	PaymentInstrument    *paymentInstrument `json:"paymentInstrument"`
	InstrumentIdentifier *paymentInstrument `json:"instrumentIdentifier"`
}

type errorInformation struct {
	Reason  string        `json:"reason"`
	Message string        `json:"message"`
	Details []errorDetail `json:"details"`
}

type errorDetail struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type paymentsResponse struct {
	ID                         string                      `json:"id"`
	Status                     paymentStatus               `json:"status"`
	ClientReferenceInformation *clientReferenceInformation `json:"clientReferenceInformation"`
	ProcessorInformation       *processorInformation       `json:"processorInformation"`
	TokenInformation           *tokenInformation           `json:"tokenInformation"`
	ErrorInformation           *errorInformation           `json:"errorInformation"`
}

// transactionResponse is the transaction-search shape returned by sync calls.
type transactionResponse struct {
	ID                 string `json:"id"`
	ApplicationSummary struct {
		Status paymentStatus `json:"status"`
	} `json:"applicationInformation"`
}

// Error wire shapes. A 4xx body arrives in one of three shapes, tried in
// priority order; anything else falls back to a generic error that keeps the
// raw body as the reason.

// standardError is the usual structured decline.
type standardError struct {
	ErrorInformation *errorInformation `json:"errorInformation"`
	Reason           string            `json:"reason"`
	Message          string            `json:"message"`
	Details          []errorDetail     `json:"details"`
}

// authenticationError is returned for credential failures.
type authenticationError struct {
	Response struct {
		RMsg string `json:"rmsg"`
	} `json:"response"`
}

// notAvailableError is returned when the processing service is down.
type notAvailableError struct {
	Errors []struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"errors"`
}

// serverError is the simpler 5xx body shape.
type serverError struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Reason  string `json:"reason"`
}

const errorReasonSeparator = ", "

// parseErrorResponse interprets a non-2xx, non-5xx connector body, trying
// the three known error shapes in priority order.
func parseErrorResponse(resp connector.Response) models.ErrorResponse {
	var std standardError
	if err := json.Unmarshal(resp.Body, &std); err == nil {
		info := std.ErrorInformation
		if info == nil && (std.Reason != "" || std.Message != "") {
			info = &errorInformation{Reason: std.Reason, Message: std.Message, Details: std.Details}
		}
		if info != nil && (info.Reason != "" || info.Message != "") {
			return models.ErrorResponse{
				StatusCode: resp.StatusCode,
				Code:       info.Reason,
				Message:    info.Message,
				Reason:     joinDetails(info.Message, info.Details),
			}.WithDefaults()
		}
	}

	var auth authenticationError
	if err := json.Unmarshal(resp.Body, &auth); err == nil && auth.Response.RMsg != "" {
		return models.ErrorResponse{
			StatusCode: resp.StatusCode,
			Message:    auth.Response.RMsg,
		}.WithDefaults()
	}

	var na notAvailableError
	if err := json.Unmarshal(resp.Body, &na); err == nil && len(na.Errors) > 0 {
		return models.ErrorResponse{
			StatusCode: resp.StatusCode,
			Code:       na.Errors[0].Type,
			Message:    na.Errors[0].Message,
		}.WithDefaults()
	}

	// Nothing matched - keep the raw body so it is never lost.
	return models.ErrorResponse{
		StatusCode: resp.StatusCode,
		Reason:     string(resp.Body),
	}.WithDefaults()
}

// parse5xxErrorResponse interprets a 5xx body. A system error is a confirmed
// terminal failure; a timeout leaves the outcome unknown - the attempt
// status stays nil and the caller must reconcile with a sync call. Conflating
// the two risks double-charging or abandoning a successful charge.
func parse5xxErrorResponse(resp connector.Response) models.ErrorResponse {
	var se serverError
	if err := json.Unmarshal(resp.Body, &se); err != nil {
		return models.ErrorResponse{
			StatusCode: resp.StatusCode,
			Reason:     string(resp.Body),
		}.WithDefaults()
	}

	effective := se.Reason
	if effective == "" {
		effective = se.Status
	}

	var attemptStatus *models.AttemptStatus
	switch normalizeReason(effective) {
	case "systemerror":
		failure := models.AttemptStatusFailure
		attemptStatus = &failure
	case "servertimeout", "servicetimeout":
		// unknown outcome, leave nil
	}

	return models.ErrorResponse{
		StatusCode:    resp.StatusCode,
		Code:          effective,
		Message:       se.Message,
		Reason:        se.Reason,
		AttemptStatus: attemptStatus,
	}.WithDefaults()
}

func normalizeReason(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "_", ""))
}

// joinDetails aggregates field-level errors into one human-readable reason.
func joinDetails(message string, details []errorDetail) string {
	if len(details) == 0 {
		return message
	}
	parts := make([]string, 0, len(details))
	for _, d := range details {
		parts = append(parts, fmt.Sprintf("%s: %s", d.Field, d.Reason))
	}
	return strings.Join(parts, errorReasonSeparator)
}

// errorResponseFrom converts an in-body errorInformation on a 2xx response
// (the gateway reports risk declines this way) into a normalized error.
func errorResponseFrom(statusCode int, resp *paymentsResponse) models.ErrorResponse {
	failure := models.AttemptStatusFailure
	return models.ErrorResponse{
		StatusCode:             statusCode,
		Code:                   resp.ErrorInformation.Reason,
		Message:                resp.ErrorInformation.Message,
		Reason:                 joinDetails(resp.ErrorInformation.Message, resp.ErrorInformation.Details),
		AttemptStatus:          &failure,
		ConnectorTransactionID: resp.ID,
	}.WithDefaults()
}
