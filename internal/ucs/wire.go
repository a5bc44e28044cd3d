// Package ucs talks to the unified connector service: an external gRPC
// process that normalizes connector protocols behind one wire contract.
// The wire messages here are hand-maintained mirrors of the service's
// proto-JSON surface; the client invokes them over a JSON content-subtype
// codec so the service's transcoding layer handles proto binding.
package ucs

// Identifier is the tagged union every cross-boundary reference id travels
// in. "No id present" and "opaque encoded blob" are distinguishable from a
// clean string id; collapsing this into a plain optional string would lose
// the encoded-data case some connectors need for multi-step redirects.
type Identifier struct {
	ID               string `json:"id,omitempty"`
	EncodedData      string `json:"encodedData,omitempty"`
	NoResponseIDFlag bool   `json:"noResponseIdMarker,omitempty"`
}

// IdentifierFromID wraps a clean string id.
func IdentifierFromID(id string) Identifier {
	return Identifier{ID: id}
}

// IdentifierFromEncodedData wraps an opaque encoded blob.
func IdentifierFromEncodedData(data string) Identifier {
	return Identifier{EncodedData: data}
}

// NoResponseID marks an absent id. Distinct from the zero Identifier so an
// explicit "the service said there is no id" survives round-trips.
func NoResponseID() Identifier {
	return Identifier{NoResponseIDFlag: true}
}

// Value unwraps the union. The second return is false for the no-id marker
// and the zero value - callers get (``, false), never an empty-string id.
func (i Identifier) Value() (string, bool) {
	switch {
	case i.ID != "":
		return i.ID, true
	case i.EncodedData != "":
		return i.EncodedData, true
	default:
		return "", false
	}
}

// ConnectorState threads previously acquired connector-side state through
// multi-call flows so the service can skip redundant token fetches. Absence
// means "fetch fresh", never an error.
type ConnectorState struct {
	AccessToken         string `json:"accessToken,omitempty"`
	ConnectorCustomerID string `json:"connectorCustomerId,omitempty"`
}

// PaymentAddress is the wire billing/shipping address shape.
type PaymentAddress struct {
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Line1       string `json:"line1,omitempty"`
	Line2       string `json:"line2,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	ZipCode     string `json:"zipCode,omitempty"`
	CountryCode string `json:"countryAlpha2Code,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// CardDetails is the wire card payment method.
type CardDetails struct {
	CardNumber      string      `json:"cardNumber"`
	CardExpMonth    string      `json:"cardExpMonth"`
	CardExpYear     string      `json:"cardExpYear"`
	CardCvc         string      `json:"cardCvc,omitempty"`
	CardHolderName  string      `json:"cardHolderName,omitempty"`
	CardNetwork     CardNetwork `json:"cardNetwork,omitempty"`
}

// UpiDetails is the wire UPI collect payment method.
type UpiDetails struct {
	VpaID string `json:"vpaId"`
}

// WalletDetails is the wire wallet payment method.
type WalletDetails struct {
	Provider string `json:"provider"`
	Token    string `json:"token"`
}

// PaymentMethod is the wire payment method union. Exactly one variant set.
type PaymentMethod struct {
	Card   *CardDetails   `json:"card,omitempty"`
	Upi    *UpiDetails    `json:"upi,omitempty"`
	Wallet *WalletDetails `json:"wallet,omitempty"`
	Token  string         `json:"token,omitempty"`
}

// BrowserInformation carries the 3DS browser fingerprint on the wire.
type BrowserInformation struct {
	UserAgent      string `json:"userAgent,omitempty"`
	AcceptHeader   string `json:"acceptHeader,omitempty"`
	Language       string `json:"language,omitempty"`
	ColorDepth     int    `json:"colorDepth,omitempty"`
	ScreenHeight   int    `json:"screenHeight,omitempty"`
	ScreenWidth    int    `json:"screenWidth,omitempty"`
	TimeZoneOffset int    `json:"timeZoneOffset,omitempty"`
	JavaEnabled    bool   `json:"javaEnabled,omitempty"`
	IPAddress      string `json:"ipAddress,omitempty"`
}

// MandateReference is the wire mandate reference on responses.
type MandateReference struct {
	ConnectorMandateID string `json:"connectorMandateId,omitempty"`
	PaymentMethodID    string `json:"paymentMethodId,omitempty"`
}

// RedirectionData is the wire redirect payload union: either a full HTML
// form post or a bare URI.
type RedirectionData struct {
	Form *RedirectForm `json:"form,omitempty"`
	URI  string        `json:"uri,omitempty"`
}

// RedirectForm is the form-post redirect variant.
type RedirectForm struct {
	Endpoint string            `json:"endpoint"`
	Method   HTTPMethod        `json:"method"`
	Fields   map[string]string `json:"formFields,omitempty"`
}

// PaymentServiceAuthorizeRequest is the wire Authorize request.
type PaymentServiceAuthorizeRequest struct {
	Amount             int64               `json:"amount"`
	MinorAmount        int64               `json:"minorAmount"`
	Currency           Currency            `json:"currency"`
	PaymentMethod      PaymentMethod       `json:"paymentMethod"`
	CaptureMethod      CaptureMethod       `json:"captureMethod,omitempty"`
	AuthType           AuthenticationType  `json:"authType,omitempty"`
	SetupFutureUsage   FutureUsage         `json:"setupFutureUsage,omitempty"`
	RequestRefID       Identifier          `json:"requestRefId"`
	Email              string              `json:"email,omitempty"`
	Address            *PaymentAddress     `json:"address,omitempty"`
	ReturnURL          string              `json:"returnUrl,omitempty"`
	BrowserInfo        *BrowserInformation `json:"browserInfo,omitempty"`
	Metadata           map[string]string   `json:"metadata,omitempty"`
	State              *ConnectorState     `json:"state,omitempty"`
	WebhookURL         string              `json:"webhookUrl,omitempty"`
	StatementDescriptor string             `json:"statementDescriptor,omitempty"`
}

// PaymentServiceCaptureRequest is the wire Capture request.
type PaymentServiceCaptureRequest struct {
	TransactionID Identifier        `json:"transactionId"`
	AmountToCapture int64           `json:"amountToCapture"`
	Currency      Currency          `json:"currency"`
	RequestRefID  Identifier        `json:"requestRefId"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	State         *ConnectorState   `json:"state,omitempty"`
}

// PaymentServiceGetRequest is the wire PSync request.
type PaymentServiceGetRequest struct {
	TransactionID Identifier      `json:"transactionId"`
	RequestRefID  Identifier      `json:"requestRefId"`
	State         *ConnectorState `json:"state,omitempty"`
}

// PaymentServiceRegisterRequest is the wire SetupMandate request: a
// zero-amount verification that stores the payment method.
type PaymentServiceRegisterRequest struct {
	Currency         Currency           `json:"currency"`
	PaymentMethod    PaymentMethod      `json:"paymentMethod"`
	SetupFutureUsage FutureUsage        `json:"setupFutureUsage,omitempty"`
	RequestRefID     Identifier         `json:"requestRefId"`
	Email            string             `json:"email,omitempty"`
	Address          *PaymentAddress    `json:"address,omitempty"`
	State            *ConnectorState    `json:"state,omitempty"`
}

// PaymentServiceRepeatEverythingRequest is the wire RepeatPayment request:
// an off-session charge against a stored mandate.
type PaymentServiceRepeatEverythingRequest struct {
	Amount             int64             `json:"amount"`
	MinorAmount        int64             `json:"minorAmount"`
	Currency           Currency          `json:"currency"`
	ConnectorMandateID string            `json:"connectorMandateId,omitempty"`
	NetworkMandateID   string            `json:"networkMandateId,omitempty"`
	RequestRefID       Identifier        `json:"requestRefId"`
	Metadata           map[string]string `json:"metadata,omitempty"`
	State              *ConnectorState   `json:"state,omitempty"`
}

// PaymentServiceCreateOrderRequest is the wire CreateOrder request.
type PaymentServiceCreateOrderRequest struct {
	Amount       int64           `json:"amount"`
	Currency     Currency        `json:"currency"`
	RequestRefID Identifier      `json:"requestRefId"`
	State        *ConnectorState `json:"state,omitempty"`
}

// PaymentServiceCreateOrderResponse carries the connector-side order id.
type PaymentServiceCreateOrderResponse struct {
	OrderID      *Identifier `json:"orderId,omitempty"`
	ErrorCode    string      `json:"errorCode,omitempty"`
	ErrorMessage string      `json:"errorMessage,omitempty"`
	StatusCode   int         `json:"statusCode,omitempty"`
}

// PaymentServiceCreateConnectorCustomerRequest creates a connector-side
// customer.
type PaymentServiceCreateConnectorCustomerRequest struct {
	Email        string          `json:"email,omitempty"`
	Name         string          `json:"name,omitempty"`
	RequestRefID Identifier      `json:"requestRefId"`
	State        *ConnectorState `json:"state,omitempty"`
}

// PaymentServiceCreateConnectorCustomerResponse carries the connector-side
// customer id.
type PaymentServiceCreateConnectorCustomerResponse struct {
	ConnectorCustomerID *Identifier `json:"connectorCustomerId,omitempty"`
	ErrorCode           string      `json:"errorCode,omitempty"`
	ErrorMessage        string      `json:"errorMessage,omitempty"`
	StatusCode          int         `json:"statusCode,omitempty"`
}

// PaymentServiceCreateSessionTokenRequest requests a client session token.
type PaymentServiceCreateSessionTokenRequest struct {
	Amount       int64           `json:"amount"`
	Currency     Currency        `json:"currency"`
	RequestRefID Identifier      `json:"requestRefId"`
	State        *ConnectorState `json:"state,omitempty"`
}

// PaymentServiceCreateSessionTokenResponse carries the session token.
type PaymentServiceCreateSessionTokenResponse struct {
	SessionToken string `json:"sessionToken,omitempty"`
	ErrorCode    string `json:"errorCode,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	StatusCode   int    `json:"statusCode,omitempty"`
}

// PaymentServiceAuthenticateRequest drives the 3DS authenticate steps. The
// same shape serves Authenticate, PreAuthenticate and PostAuthenticate; the
// RPC method selects the step.
type PaymentServiceAuthenticateRequest struct {
	Amount            int64           `json:"amount"`
	Currency          Currency        `json:"currency"`
	PaymentMethod     *PaymentMethod  `json:"paymentMethod,omitempty"`
	TransactionID     *Identifier     `json:"transactionId,omitempty"`
	AuthenticationID  string          `json:"authenticationId,omitempty"`
	ChallengeResponse string          `json:"challengeResponse,omitempty"`
	RequestRefID      Identifier      `json:"requestRefId"`
	State             *ConnectorState `json:"state,omitempty"`
}

// PaymentServiceResponse is the shared transaction response shape for
// Authorize, Capture, Get (PSync), Register, RepeatEverything and the
// authenticate steps. error_code present means the error branch; status
// alone never implies an error.
type PaymentServiceResponse struct {
	TransactionID *Identifier `json:"transactionId,omitempty"`
	ResponseRefID *Identifier `json:"responseRefId,omitempty"`

	Status PaymentStatus `json:"status,omitempty"`

	ErrorCode    string `json:"errorCode,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	ErrorReason  string `json:"errorReason,omitempty"`

	RedirectionData  *RedirectionData  `json:"redirectionData,omitempty"`
	MandateReference *MandateReference `json:"mandateReference,omitempty"`

	NetworkTxnID        string            `json:"networkTxnId,omitempty"`
	NetworkDeclineCode  string            `json:"networkDeclineCode,omitempty"`
	NetworkAdviceCode   string            `json:"networkAdviceCode,omitempty"`
	ConnectorMetadata   map[string]string `json:"connectorMetadata,omitempty"`
	IncrementalAuthorizationAllowed bool  `json:"incrementalAuthorizationAllowed,omitempty"`

	State      *ConnectorState `json:"state,omitempty"`
	StatusCode int             `json:"statusCode,omitempty"`
}
