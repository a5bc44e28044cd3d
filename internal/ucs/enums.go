package ucs

import (
	"fmt"

	"github.com/unifiedpay/connector-service/internal/domain/models"
	pkgerrors "github.com/unifiedpay/connector-service/pkg/errors"
)

// Wire enums are proto-JSON enum names. Every mapping in this file is
// exhaustive in both directions: an unmapped wire variant is a hard
// ResponseDeserializationFailed, and the "unspecified" sentinel is a
// deterministic error, never a default.

// PaymentStatus is the wire payment lifecycle enum.
type PaymentStatus string

const (
	PaymentStatusUnspecified            PaymentStatus = "PAYMENT_STATUS_UNSPECIFIED"
	PaymentStatusStarted                PaymentStatus = "PAYMENT_STATUS_STARTED"
	PaymentStatusAuthenticationPending  PaymentStatus = "PAYMENT_STATUS_AUTHENTICATION_PENDING"
	PaymentStatusAuthenticationFailed   PaymentStatus = "PAYMENT_STATUS_AUTHENTICATION_FAILED"
	PaymentStatusAuthorized             PaymentStatus = "PAYMENT_STATUS_AUTHORIZED"
	PaymentStatusAuthorizationFailed    PaymentStatus = "PAYMENT_STATUS_AUTHORIZATION_FAILED"
	PaymentStatusAuthorizing            PaymentStatus = "PAYMENT_STATUS_AUTHORIZING"
	PaymentStatusCaptureInitiated       PaymentStatus = "PAYMENT_STATUS_CAPTURE_INITIATED"
	PaymentStatusCaptureFailed          PaymentStatus = "PAYMENT_STATUS_CAPTURE_FAILED"
	PaymentStatusCharged                PaymentStatus = "PAYMENT_STATUS_CHARGED"
	PaymentStatusPartialCharged         PaymentStatus = "PAYMENT_STATUS_PARTIAL_CHARGED"
	PaymentStatusPartialChargedAndChargeable PaymentStatus = "PAYMENT_STATUS_PARTIAL_CHARGED_AND_CHARGEABLE"
	PaymentStatusVoided                 PaymentStatus = "PAYMENT_STATUS_VOIDED"
	PaymentStatusVoidInitiated          PaymentStatus = "PAYMENT_STATUS_VOID_INITIATED"
	PaymentStatusVoidFailed             PaymentStatus = "PAYMENT_STATUS_VOID_FAILED"
	PaymentStatusPending                PaymentStatus = "PAYMENT_STATUS_PENDING"
	PaymentStatusUnresolved             PaymentStatus = "PAYMENT_STATUS_UNRESOLVED"
	PaymentStatusFailure                PaymentStatus = "PAYMENT_STATUS_FAILURE"
	PaymentStatusPaymentMethodAwaited   PaymentStatus = "PAYMENT_STATUS_PAYMENT_METHOD_AWAITED"
	PaymentStatusConfirmationAwaited    PaymentStatus = "PAYMENT_STATUS_CONFIRMATION_AWAITED"
	PaymentStatusDeviceDataCollectionPending PaymentStatus = "PAYMENT_STATUS_DEVICE_DATA_COLLECTION_PENDING"
)

var wirePaymentStatusToDomain = map[PaymentStatus]models.AttemptStatus{
	PaymentStatusStarted:                models.AttemptStatusStarted,
	PaymentStatusAuthenticationPending:  models.AttemptStatusAuthenticationPending,
	PaymentStatusAuthenticationFailed:   models.AttemptStatusAuthenticationFailed,
	PaymentStatusAuthorized:             models.AttemptStatusAuthorized,
	PaymentStatusAuthorizationFailed:    models.AttemptStatusAuthorizationFailed,
	PaymentStatusAuthorizing:            models.AttemptStatusAuthorizing,
	PaymentStatusCaptureInitiated:       models.AttemptStatusCaptureInitiated,
	PaymentStatusCaptureFailed:          models.AttemptStatusCaptureFailed,
	PaymentStatusCharged:                models.AttemptStatusCharged,
	PaymentStatusPartialCharged:         models.AttemptStatusPartialCharged,
	PaymentStatusPartialChargedAndChargeable: models.AttemptStatusPartialChargedAndChargeable,
	PaymentStatusVoided:                 models.AttemptStatusVoided,
	PaymentStatusVoidInitiated:          models.AttemptStatusVoidInitiated,
	PaymentStatusVoidFailed:             models.AttemptStatusVoidFailed,
	PaymentStatusPending:                models.AttemptStatusPending,
	PaymentStatusUnresolved:             models.AttemptStatusUnresolved,
	PaymentStatusFailure:                models.AttemptStatusFailure,
	PaymentStatusPaymentMethodAwaited:   models.AttemptStatusPaymentMethodAwaited,
	PaymentStatusConfirmationAwaited:    models.AttemptStatusConfirmationAwaited,
	PaymentStatusDeviceDataCollectionPending: models.AttemptStatusDeviceDataCollectionPending,
}

// AttemptStatusFrom maps a wire payment status onto the domain enum. The
// unspecified sentinel is a deterministic error: the caller must not guess.
func AttemptStatusFrom(status PaymentStatus) (models.AttemptStatus, error) {
	if status == PaymentStatusUnspecified {
		return "", pkgerrors.NewResponseDeserializationFailed(
			[]byte(status), fmt.Errorf("payment status is unspecified"))
	}
	if s, ok := wirePaymentStatusToDomain[status]; ok {
		return s, nil
	}
	return "", pkgerrors.NewResponseDeserializationFailed(
		[]byte(status), fmt.Errorf("unknown wire payment status %q", status))
}

// TransactionStatus is the wire refund/transaction outcome enum used by
// refund and webhook payloads.
type TransactionStatus string

const (
	TransactionStatusUnspecified        TransactionStatus = "TRANSACTION_STATUS_UNSPECIFIED"
	TransactionStatusPending            TransactionStatus = "TRANSACTION_STATUS_PENDING"
	TransactionStatusSuccess            TransactionStatus = "TRANSACTION_STATUS_SUCCESS"
	TransactionStatusFailure            TransactionStatus = "TRANSACTION_STATUS_FAILURE"
	TransactionStatusManualReview       TransactionStatus = "TRANSACTION_STATUS_MANUAL_REVIEW"
	TransactionStatusTransactionFailure TransactionStatus = "TRANSACTION_STATUS_TRANSACTION_FAILURE"
)

var wireTransactionStatusToDomain = map[TransactionStatus]models.RefundStatus{
	TransactionStatusPending:            models.RefundStatusPending,
	TransactionStatusSuccess:            models.RefundStatusSuccess,
	TransactionStatusFailure:            models.RefundStatusFailure,
	TransactionStatusManualReview:       models.RefundStatusManualReview,
	TransactionStatusTransactionFailure: models.RefundStatusTransactionFailure,
}

// RefundStatusFrom maps a wire transaction status onto the domain enum.
func RefundStatusFrom(status TransactionStatus) (models.RefundStatus, error) {
	if status == TransactionStatusUnspecified {
		return "", pkgerrors.NewResponseDeserializationFailed(
			[]byte(status), fmt.Errorf("transaction status is unspecified"))
	}
	if s, ok := wireTransactionStatusToDomain[status]; ok {
		return s, nil
	}
	return "", pkgerrors.NewResponseDeserializationFailed(
		[]byte(status), fmt.Errorf("unknown wire transaction status %q", status))
}

// HTTPMethod is the wire HTTP method enum used by webhook request details
// and form redirects.
type HTTPMethod string

const (
	HTTPMethodUnspecified HTTPMethod = "HTTP_METHOD_UNSPECIFIED"
	HTTPMethodGet         HTTPMethod = "HTTP_METHOD_GET"
	HTTPMethodPost        HTTPMethod = "HTTP_METHOD_POST"
	HTTPMethodPut         HTTPMethod = "HTTP_METHOD_PUT"
	HTTPMethodDelete      HTTPMethod = "HTTP_METHOD_DELETE"
)

var httpMethodByName = map[string]HTTPMethod{
	"GET":    HTTPMethodGet,
	"POST":   HTTPMethodPost,
	"PUT":    HTTPMethodPut,
	"DELETE": HTTPMethodDelete,
}

// HTTPMethodFrom maps a textual HTTP method. Methods outside the wire
// vocabulary map to the unspecified sentinel; the service decides whether
// that is acceptable for the operation.
func HTTPMethodFrom(method string) HTTPMethod {
	if m, ok := httpMethodByName[method]; ok {
		return m
	}
	return HTTPMethodUnspecified
}

// Currency is the wire currency enum (ISO alpha-3 names on the wire).
type Currency string

const CurrencyUnspecified Currency = "CURRENCY_UNSPECIFIED"

var domainCurrencyToWire = map[models.Currency]Currency{
	models.CurrencyAED: "AED",
	models.CurrencyAUD: "AUD",
	models.CurrencyBHD: "BHD",
	models.CurrencyCAD: "CAD",
	models.CurrencyCHF: "CHF",
	models.CurrencyEUR: "EUR",
	models.CurrencyGBP: "GBP",
	models.CurrencyINR: "INR",
	models.CurrencyJPY: "JPY",
	models.CurrencyKRW: "KRW",
	models.CurrencyKWD: "KWD",
	models.CurrencyOMR: "OMR",
	models.CurrencySGD: "SGD",
	models.CurrencyUSD: "USD",
	models.CurrencyVND: "VND",
}

// CurrencyTo maps a domain currency onto the wire. An unknown currency
// fails loudly: silent currency substitution is a financial-correctness
// bug, so there is no default arm.
func CurrencyTo(currency models.Currency) (Currency, error) {
	if c, ok := domainCurrencyToWire[currency]; ok {
		return c, nil
	}
	return "", pkgerrors.NewRequestEncodingFailedWithReason(
		fmt.Sprintf("currency %q has no wire mapping", currency))
}

// CardNetwork is the wire card scheme enum.
type CardNetwork string

const (
	CardNetworkUnspecified CardNetwork = "CARD_NETWORK_UNSPECIFIED"
	CardNetworkVisa        CardNetwork = "CARD_NETWORK_VISA"
	CardNetworkMastercard  CardNetwork = "CARD_NETWORK_MASTERCARD"
	CardNetworkAmex        CardNetwork = "CARD_NETWORK_AMEX"
	CardNetworkDiscover    CardNetwork = "CARD_NETWORK_DISCOVER"
	CardNetworkJCB         CardNetwork = "CARD_NETWORK_JCB"
	CardNetworkDinersClub  CardNetwork = "CARD_NETWORK_DINERS_CLUB"
	CardNetworkRuPay       CardNetwork = "CARD_NETWORK_RUPAY"
	CardNetworkUnionPay    CardNetwork = "CARD_NETWORK_UNIONPAY"
)

var domainCardNetworkToWire = map[models.CardNetwork]CardNetwork{
	models.CardNetworkVisa:       CardNetworkVisa,
	models.CardNetworkMastercard: CardNetworkMastercard,
	models.CardNetworkAmex:       CardNetworkAmex,
	models.CardNetworkDiscover:   CardNetworkDiscover,
	models.CardNetworkJCB:        CardNetworkJCB,
	models.CardNetworkDinersClub: CardNetworkDinersClub,
	models.CardNetworkRuPay:      CardNetworkRuPay,
	models.CardNetworkUnionPay:   CardNetworkUnionPay,
}

// CardNetworkTo maps a domain card network. An empty network is allowed
// (the scheme can be inferred connector-side); an unknown one is not.
func CardNetworkTo(network models.CardNetwork) (CardNetwork, error) {
	if network == "" {
		return CardNetworkUnspecified, nil
	}
	if n, ok := domainCardNetworkToWire[network]; ok {
		return n, nil
	}
	return "", pkgerrors.NewRequestEncodingFailedWithReason(
		fmt.Sprintf("card network %q has no wire mapping", network))
}

// CaptureMethod is the wire capture method enum.
type CaptureMethod string

const (
	CaptureMethodUnspecified    CaptureMethod = "CAPTURE_METHOD_UNSPECIFIED"
	CaptureMethodAutomatic      CaptureMethod = "CAPTURE_METHOD_AUTOMATIC"
	CaptureMethodManual         CaptureMethod = "CAPTURE_METHOD_MANUAL"
	CaptureMethodManualMultiple CaptureMethod = "CAPTURE_METHOD_MANUAL_MULTIPLE"
)

var domainCaptureMethodToWire = map[models.CaptureMethod]CaptureMethod{
	models.CaptureMethodAutomatic:      CaptureMethodAutomatic,
	models.CaptureMethodManual:         CaptureMethodManual,
	models.CaptureMethodManualMultiple: CaptureMethodManualMultiple,
}

// CaptureMethodTo maps a domain capture method.
func CaptureMethodTo(method models.CaptureMethod) (CaptureMethod, error) {
	if method == "" {
		return CaptureMethodUnspecified, nil
	}
	if m, ok := domainCaptureMethodToWire[method]; ok {
		return m, nil
	}
	return "", pkgerrors.NewRequestEncodingFailedWithReason(
		fmt.Sprintf("capture method %q has no wire mapping", method))
}

// AuthenticationType is the wire 3DS posture enum.
type AuthenticationType string

const (
	AuthenticationTypeUnspecified AuthenticationType = "AUTHENTICATION_TYPE_UNSPECIFIED"
	AuthenticationTypeThreeDS     AuthenticationType = "AUTHENTICATION_TYPE_THREE_DS"
	AuthenticationTypeNoThreeDS   AuthenticationType = "AUTHENTICATION_TYPE_NO_THREE_DS"
)

var domainAuthTypeToWire = map[models.AuthenticationType]AuthenticationType{
	models.AuthenticationTypeThreeDS:   AuthenticationTypeThreeDS,
	models.AuthenticationTypeNoThreeDS: AuthenticationTypeNoThreeDS,
}

// AuthenticationTypeTo maps a domain authentication type.
func AuthenticationTypeTo(authType models.AuthenticationType) (AuthenticationType, error) {
	if authType == "" {
		return AuthenticationTypeUnspecified, nil
	}
	if t, ok := domainAuthTypeToWire[authType]; ok {
		return t, nil
	}
	return "", pkgerrors.NewRequestEncodingFailedWithReason(
		fmt.Sprintf("authentication type %q has no wire mapping", authType))
}

// FutureUsage is the wire stored-credential intent enum.
type FutureUsage string

const (
	FutureUsageUnspecified FutureUsage = "FUTURE_USAGE_UNSPECIFIED"
	FutureUsageOffSession  FutureUsage = "FUTURE_USAGE_OFF_SESSION"
	FutureUsageOnSession   FutureUsage = "FUTURE_USAGE_ON_SESSION"
)

var domainFutureUsageToWire = map[models.FutureUsage]FutureUsage{
	models.FutureUsageOffSession: FutureUsageOffSession,
	models.FutureUsageOnSession:  FutureUsageOnSession,
}

// FutureUsageTo maps a domain future-usage intent.
func FutureUsageTo(usage models.FutureUsage) (FutureUsage, error) {
	if usage == "" {
		return FutureUsageUnspecified, nil
	}
	if u, ok := domainFutureUsageToWire[usage]; ok {
		return u, nil
	}
	return "", pkgerrors.NewRequestEncodingFailedWithReason(
		fmt.Sprintf("future usage %q has no wire mapping", usage))
}
