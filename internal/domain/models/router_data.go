package models

// Flow is a zero-sized marker selecting which connector operation a
// RouterData performs. The marker type, not a runtime value, drives
// dispatch, so a flow mix-up is a compile error.
type Flow interface {
	FlowName() string
}

type (
	Authorize                struct{}
	Capture                  struct{}
	Void                     struct{}
	Refund                   struct{}
	PSync                    struct{}
	RSync                    struct{}
	SetupMandate             struct{}
	IncrementalAuthorization struct{}
	MandateRevoke            struct{}
	CreateOrder              struct{}
	CreateConnectorCustomer  struct{}
	CreateSessionToken       struct{}
	CreatePaymentMethodToken struct{}
	Authenticate             struct{}
	PreAuthenticate          struct{}
	PostAuthenticate         struct{}
	RepeatPayment            struct{}
)

func (Authorize) FlowName() string                { return "authorize" }
func (Capture) FlowName() string                  { return "capture" }
func (Void) FlowName() string                     { return "void" }
func (Refund) FlowName() string                   { return "refund" }
func (PSync) FlowName() string                    { return "psync" }
func (RSync) FlowName() string                    { return "rsync" }
func (SetupMandate) FlowName() string             { return "setup_mandate" }
func (IncrementalAuthorization) FlowName() string { return "incremental_authorization" }
func (MandateRevoke) FlowName() string            { return "mandate_revoke" }
func (CreateOrder) FlowName() string              { return "create_order" }
func (CreateConnectorCustomer) FlowName() string  { return "create_connector_customer" }
func (CreateSessionToken) FlowName() string       { return "create_session_token" }
func (CreatePaymentMethodToken) FlowName() string { return "create_payment_method_token" }
func (Authenticate) FlowName() string             { return "authenticate" }
func (PreAuthenticate) FlowName() string          { return "pre_authenticate" }
func (PostAuthenticate) FlowName() string         { return "post_authenticate" }
func (RepeatPayment) FlowName() string            { return "repeat_payment" }

// RouterData is the unit of work for one connector call: one flow, one
// request payload, one response slot. An instance is immutable once built;
// handling a response produces a new RouterData via WithResponse/WithError,
// never an in-place mutation, and retries construct a fresh request.
type RouterData[F Flow, Req any, Resp any] struct {
	MerchantID string
	CustomerID string
	PaymentID  string
	AttemptID  string

	// ConnectorRequestReferenceID is the caller-supplied id connectors use
	// for deduplication. It is never regenerated across retries of the same
	// logical attempt.
	ConnectorRequestReferenceID string

	Description string
	ReturnURL   string

	// AccessToken is a previously fetched connector OAuth token, when the
	// flow runs under one. Absence means "fetch fresh", not an error.
	AccessToken string

	// ConnectorCustomerID is a previously created connector-side customer.
	ConnectorCustomerID string

	Request Req

	// Exactly one of Response / Error is set after the call completes.
	Response *Resp
	Error    *ErrorResponse
}

// WithResponse returns a copy carrying a success payload.
func (rd RouterData[F, Req, Resp]) WithResponse(resp Resp) RouterData[F, Req, Resp] {
	rd.Response = &resp
	rd.Error = nil
	return rd
}

// WithError returns a copy carrying a normalized connector error.
func (rd RouterData[F, Req, Resp]) WithError(errResp ErrorResponse) RouterData[F, Req, Resp] {
	normalized := errResp.WithDefaults()
	rd.Error = &normalized
	rd.Response = nil
	return rd
}

// Flow-specific request payloads.

// PaymentsAuthorizeData is the Authorize request payload.
type PaymentsAuthorizeData struct {
	Amount            Amount
	Currency          Currency
	PaymentMethod     PaymentMethodData
	CaptureMethod     CaptureMethod
	AuthType          AuthenticationType
	FutureUsage       *FutureUsage
	Billing           *Address
	PaymentMethodBilling *Address
	Email             string
	StatementDescriptor string
	BrowserInfo       *BrowserInfo
	OrderID           string
	Metadata          map[string]interface{}
}

// PaymentsCaptureData is the Capture request payload.
type PaymentsCaptureData struct {
	AmountToCapture        Amount
	Currency               Currency
	ConnectorTransactionID string
}

// PaymentsSyncData is the PSync request payload.
type PaymentsSyncData struct {
	ConnectorTransactionID string
	EncodedData            string
}

// PaymentsCancelData is the Void request payload.
type PaymentsCancelData struct {
	ConnectorTransactionID string
	CancellationReason     string
}

// RefundsData is the Refund and RSync request payload.
type RefundsData struct {
	RefundID               string
	ConnectorTransactionID string
	ConnectorRefundID      string
	RefundAmount           Amount
	Currency               Currency
	Reason                 string
}

// SetupMandateRequestData registers a payment method for future use with a
// zero-value verification.
type SetupMandateRequestData struct {
	Currency      Currency
	PaymentMethod PaymentMethodData
	FutureUsage   FutureUsage
	Billing       *Address
	Email         string
}

// IncrementalAuthorizationData raises the authorized amount on an open
// authorization.
type IncrementalAuthorizationData struct {
	AdditionalAmount       Amount
	Currency               Currency
	ConnectorTransactionID string
	Reason                 string
}

// MandateRevokeData revokes a stored mandate.
type MandateRevokeData struct {
	MandateID          string
	ConnectorMandateID string
}

// RepeatPaymentData charges a stored mandate off-session.
type RepeatPaymentData struct {
	Amount   Amount
	Currency Currency
	Mandate  MandateReferenceID
	Metadata map[string]interface{}
}

// CreateOrderRequestData creates a connector-side order container.
type CreateOrderRequestData struct {
	Amount   Amount
	Currency Currency
}

// ConnectorCustomerData creates a connector-side customer.
type ConnectorCustomerData struct {
	Email string
	Name  string
}

// SessionTokenRequestData requests a client session token.
type SessionTokenRequestData struct {
	Amount   Amount
	Currency Currency
}

// TokenizationData stores a payment method with the connector.
type TokenizationData struct {
	PaymentMethod PaymentMethodData
	Currency      Currency
}

// AuthenticationRequestData drives the Authenticate / PreAuthenticate /
// PostAuthenticate 3DS flows.
type AuthenticationRequestData struct {
	Amount                 Amount
	Currency               Currency
	PaymentMethod          PaymentMethodData
	ConnectorTransactionID string
	AuthenticationID       string
	CavvAlgorithm          string
	ChallengeResponse      string
}

// Flow-specific response payloads.

// PaymentsResponseData is the success payload for payment flows.
type PaymentsResponseData struct {
	Status                   AttemptStatus
	ResourceID               string
	RedirectForm             *RedirectForm
	Mandate                  *MandateReference
	NetworkTransactionID     string
	ConnectorResponseReferenceID string
	IncrementalAuthAllowed   bool
	ConnectorMetadata        map[string]interface{}
}

// RefundsResponseData is the success payload for refund flows.
type RefundsResponseData struct {
	ConnectorRefundID string
	Status            RefundStatus
}

// MandateRevokeResponseData acknowledges a mandate revocation.
type MandateRevokeResponseData struct {
	Status string
}

// CreateOrderResponseData carries the connector-side order id.
type CreateOrderResponseData struct {
	OrderID string
}

// ConnectorCustomerResponseData carries the connector-side customer id.
type ConnectorCustomerResponseData struct {
	ConnectorCustomerID string
}

// SessionTokenResponseData carries a client session token.
type SessionTokenResponseData struct {
	SessionToken string
}

// TokenizationResponseData carries the connector-issued payment method token.
type TokenizationResponseData struct {
	Token string
}

// AuthenticationResponseData is the success payload for 3DS flows.
type AuthenticationResponseData struct {
	Status            AttemptStatus
	AuthenticationID  string
	Cavv              string
	Eci               string
	ChallengeRequired bool
	RedirectForm      *RedirectForm
}
