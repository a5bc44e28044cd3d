package ucs

import (
	"github.com/google/uuid"

	"github.com/unifiedpay/connector-service/internal/domain/models"
	pkgerrors "github.com/unifiedpay/connector-service/pkg/errors"
)

// NewRequestReferenceID generates a connector request reference id for
// callers that don't supply one. It is generated exactly once, at
// RouterData construction - never regenerated across retries of the same
// logical attempt, so connector-side deduplication keeps working.
func NewRequestReferenceID() string {
	return uuid.NewString()
}

// paymentMethodTo converts the domain payment method union onto the wire.
func paymentMethodTo(pm models.PaymentMethodData) (PaymentMethod, error) {
	switch {
	case pm.Card != nil:
		network, err := CardNetworkTo(pm.Card.Network)
		if err != nil {
			return PaymentMethod{}, err
		}
		return PaymentMethod{Card: &CardDetails{
			CardNumber:     pm.Card.Number.Expose(),
			CardExpMonth:   pm.Card.ExpiryMonth.Expose(),
			CardExpYear:    pm.Card.ExpiryYear.Expose(),
			CardCvc:        pm.Card.CVC.Expose(),
			CardHolderName: pm.Card.HolderName,
			CardNetwork:    network,
		}}, nil
	case pm.UPI != nil:
		return PaymentMethod{Upi: &UpiDetails{VpaID: pm.UPI.VPA.Expose()}}, nil
	case pm.Wallet != nil:
		return PaymentMethod{Wallet: &WalletDetails{
			Provider: pm.Wallet.Provider,
			Token:    pm.Wallet.Token.Expose(),
		}}, nil
	case pm.Token != "":
		return PaymentMethod{Token: pm.Token}, nil
	default:
		return PaymentMethod{}, pkgerrors.NewMissingRequiredField("payment_method_data")
	}
}

func addressTo(addr *models.Address) *PaymentAddress {
	if addr == nil {
		return nil
	}
	return &PaymentAddress{
		FirstName:   addr.FirstName,
		LastName:    addr.LastName,
		Line1:       addr.Line1,
		Line2:       addr.Line2,
		City:        addr.City,
		State:       addr.State,
		ZipCode:     addr.Zip,
		CountryCode: addr.CountryISO,
		Email:       addr.Email,
		PhoneNumber: addr.Phone,
	}
}

// billingAddress applies the payment-method-billing-over-billing precedence
// used everywhere a request carries both.
func billingAddress(paymentMethodBilling, billing *models.Address) *models.Address {
	if paymentMethodBilling != nil {
		return paymentMethodBilling
	}
	return billing
}

func browserInfoTo(info *models.BrowserInfo) *BrowserInformation {
	if info == nil {
		return nil
	}
	return &BrowserInformation{
		UserAgent:      info.UserAgent,
		AcceptHeader:   info.AcceptHeader,
		Language:       info.Language,
		ColorDepth:     info.ColorDepth,
		ScreenHeight:   info.ScreenHeight,
		ScreenWidth:    info.ScreenWidth,
		TimeZoneOffset: info.TimeZoneOffset,
		JavaEnabled:    info.JavaEnabled,
		IPAddress:      info.IPAddress,
	}
}

// connectorStateFrom picks up any previously acquired connector-side state.
// Returns nil when there is none; the service then fetches fresh.
func connectorStateFrom[F models.Flow, Req any, Resp any](rd *models.RouterData[F, Req, Resp]) *ConnectorState {
	if rd.AccessToken == "" && rd.ConnectorCustomerID == "" {
		return nil
	}
	return &ConnectorState{
		AccessToken:         rd.AccessToken,
		ConnectorCustomerID: rd.ConnectorCustomerID,
	}
}

// AuthorizeRequestFrom builds the wire Authorize request.
func AuthorizeRequestFrom(rd *models.RouterData[models.Authorize, models.PaymentsAuthorizeData, models.PaymentsResponseData]) (*PaymentServiceAuthorizeRequest, error) {
	req := rd.Request

	currency, err := CurrencyTo(req.Currency)
	if err != nil {
		return nil, err
	}
	pm, err := paymentMethodTo(req.PaymentMethod)
	if err != nil {
		return nil, err
	}
	captureMethod, err := CaptureMethodTo(req.CaptureMethod)
	if err != nil {
		return nil, err
	}
	authType, err := AuthenticationTypeTo(req.AuthType)
	if err != nil {
		return nil, err
	}
	futureUsage := FutureUsageUnspecified
	if req.FutureUsage != nil {
		if futureUsage, err = FutureUsageTo(*req.FutureUsage); err != nil {
			return nil, err
		}
	}

	return &PaymentServiceAuthorizeRequest{
		Amount:              req.Amount.I64(),
		MinorAmount:         req.Amount.I64(),
		Currency:            currency,
		PaymentMethod:       pm,
		CaptureMethod:       captureMethod,
		AuthType:            authType,
		SetupFutureUsage:    futureUsage,
		RequestRefID:        IdentifierFromID(rd.ConnectorRequestReferenceID),
		Email:               req.Email,
		Address:             addressTo(billingAddress(req.PaymentMethodBilling, req.Billing)),
		ReturnURL:           rd.ReturnURL,
		BrowserInfo:         browserInfoTo(req.BrowserInfo),
		Metadata:            FlattenMetadata(req.Metadata),
		State:               connectorStateFrom(rd),
		StatementDescriptor: req.StatementDescriptor,
	}, nil
}

// CaptureRequestFrom builds the wire Capture request.
func CaptureRequestFrom(rd *models.RouterData[models.Capture, models.PaymentsCaptureData, models.PaymentsResponseData]) (*PaymentServiceCaptureRequest, error) {
	req := rd.Request

	if req.ConnectorTransactionID == "" {
		return nil, pkgerrors.NewMissingRequiredField("connector_transaction_id")
	}
	currency, err := CurrencyTo(req.Currency)
	if err != nil {
		return nil, err
	}

	return &PaymentServiceCaptureRequest{
		TransactionID:   IdentifierFromID(req.ConnectorTransactionID),
		AmountToCapture: req.AmountToCapture.I64(),
		Currency:        currency,
		RequestRefID:    IdentifierFromID(rd.ConnectorRequestReferenceID),
		State:           connectorStateFrom(rd),
	}, nil
}

// GetRequestFrom builds the wire PSync request. The transaction id may be
// an opaque encoded blob from a prior redirect step, so both sources map
// into the Identifier union rather than a plain string.
func GetRequestFrom(rd *models.RouterData[models.PSync, models.PaymentsSyncData, models.PaymentsResponseData]) (*PaymentServiceGetRequest, error) {
	req := rd.Request

	var txn Identifier
	switch {
	case req.ConnectorTransactionID != "":
		txn = IdentifierFromID(req.ConnectorTransactionID)
	case req.EncodedData != "":
		txn = IdentifierFromEncodedData(req.EncodedData)
	default:
		return nil, pkgerrors.NewMissingRequiredField("connector_transaction_id")
	}

	return &PaymentServiceGetRequest{
		TransactionID: txn,
		RequestRefID:  IdentifierFromID(rd.ConnectorRequestReferenceID),
		State:         connectorStateFrom(rd),
	}, nil
}

// RegisterRequestFrom builds the wire SetupMandate request.
func RegisterRequestFrom(rd *models.RouterData[models.SetupMandate, models.SetupMandateRequestData, models.PaymentsResponseData]) (*PaymentServiceRegisterRequest, error) {
	req := rd.Request

	currency, err := CurrencyTo(req.Currency)
	if err != nil {
		return nil, err
	}
	pm, err := paymentMethodTo(req.PaymentMethod)
	if err != nil {
		return nil, err
	}
	futureUsage, err := FutureUsageTo(req.FutureUsage)
	if err != nil {
		return nil, err
	}

	return &PaymentServiceRegisterRequest{
		Currency:         currency,
		PaymentMethod:    pm,
		SetupFutureUsage: futureUsage,
		RequestRefID:     IdentifierFromID(rd.ConnectorRequestReferenceID),
		Email:            req.Email,
		Address:          addressTo(req.Billing),
		State:            connectorStateFrom(rd),
	}, nil
}

// RepeatEverythingRequestFrom builds the wire RepeatPayment request. A
// mandate reference with neither variant set fails before anything reaches
// the wire - an empty mandate reference must never proceed.
func RepeatEverythingRequestFrom(rd *models.RouterData[models.RepeatPayment, models.RepeatPaymentData, models.PaymentsResponseData]) (*PaymentServiceRepeatEverythingRequest, error) {
	req := rd.Request

	if req.Mandate.IsEmpty() {
		return nil, pkgerrors.NewMissingRequiredField("connector_mandate_id")
	}
	currency, err := CurrencyTo(req.Currency)
	if err != nil {
		return nil, err
	}

	out := &PaymentServiceRepeatEverythingRequest{
		Amount:       req.Amount.I64(),
		MinorAmount:  req.Amount.I64(),
		Currency:     currency,
		RequestRefID: IdentifierFromID(rd.ConnectorRequestReferenceID),
		Metadata:     FlattenMetadata(req.Metadata),
		State:        connectorStateFrom(rd),
	}
	if ref, ok := req.Mandate.ConnectorMandate(); ok {
		out.ConnectorMandateID = ref.ConnectorMandateID
	}
	if id, ok := req.Mandate.NetworkMandateID(); ok {
		out.NetworkMandateID = id
	}
	return out, nil
}

// CreateOrderRequestFrom builds the wire CreateOrder request.
func CreateOrderRequestFrom(rd *models.RouterData[models.CreateOrder, models.CreateOrderRequestData, models.CreateOrderResponseData]) (*PaymentServiceCreateOrderRequest, error) {
	currency, err := CurrencyTo(rd.Request.Currency)
	if err != nil {
		return nil, err
	}
	return &PaymentServiceCreateOrderRequest{
		Amount:       rd.Request.Amount.I64(),
		Currency:     currency,
		RequestRefID: IdentifierFromID(rd.ConnectorRequestReferenceID),
		State:        connectorStateFrom(rd),
	}, nil
}

// CreateConnectorCustomerRequestFrom builds the wire customer creation
// request.
func CreateConnectorCustomerRequestFrom(rd *models.RouterData[models.CreateConnectorCustomer, models.ConnectorCustomerData, models.ConnectorCustomerResponseData]) (*PaymentServiceCreateConnectorCustomerRequest, error) {
	return &PaymentServiceCreateConnectorCustomerRequest{
		Email:        rd.Request.Email,
		Name:         rd.Request.Name,
		RequestRefID: IdentifierFromID(rd.ConnectorRequestReferenceID),
		State:        connectorStateFrom(rd),
	}, nil
}

// CreateSessionTokenRequestFrom builds the wire session token request.
func CreateSessionTokenRequestFrom(rd *models.RouterData[models.CreateSessionToken, models.SessionTokenRequestData, models.SessionTokenResponseData]) (*PaymentServiceCreateSessionTokenRequest, error) {
	currency, err := CurrencyTo(rd.Request.Currency)
	if err != nil {
		return nil, err
	}
	return &PaymentServiceCreateSessionTokenRequest{
		Amount:       rd.Request.Amount.I64(),
		Currency:     currency,
		RequestRefID: IdentifierFromID(rd.ConnectorRequestReferenceID),
		State:        connectorStateFrom(rd),
	}, nil
}

// AuthenticateRequestFrom builds the wire request shared by the three 3DS
// steps; the flow marker selects which RPC it is sent to.
func AuthenticateRequestFrom[F models.Flow](rd *models.RouterData[F, models.AuthenticationRequestData, models.AuthenticationResponseData]) (*PaymentServiceAuthenticateRequest, error) {
	req := rd.Request

	currency, err := CurrencyTo(req.Currency)
	if err != nil {
		return nil, err
	}

	out := &PaymentServiceAuthenticateRequest{
		Amount:            req.Amount.I64(),
		Currency:          currency,
		AuthenticationID:  req.AuthenticationID,
		ChallengeResponse: req.ChallengeResponse,
		RequestRefID:      IdentifierFromID(rd.ConnectorRequestReferenceID),
		State:             connectorStateFrom(rd),
	}
	if req.ConnectorTransactionID != "" {
		id := IdentifierFromID(req.ConnectorTransactionID)
		out.TransactionID = &id
	}
	if req.PaymentMethod.Card != nil || req.PaymentMethod.UPI != nil ||
		req.PaymentMethod.Wallet != nil || req.PaymentMethod.Token != "" {
		pm, err := paymentMethodTo(req.PaymentMethod)
		if err != nil {
			return nil, err
		}
		out.PaymentMethod = &pm
	}
	return out, nil
}
