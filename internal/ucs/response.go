package ucs

import (
	"fmt"

	"github.com/unifiedpay/connector-service/internal/domain/models"
	pkgerrors "github.com/unifiedpay/connector-service/pkg/errors"
)

// UPI bare-URI redirects cannot be expressed through the generic redirect
// form: the client must open the URI in the UPI app and poll while showing
// a countdown. The poll configuration injected alongside is fixed; making
// it connector-configurable is an open product question.
const (
	upiPollDelaySeconds          = 5
	upiPollFrequencyPerMinute    = 60
	upiWaitScreenDisplaySeconds  = 300

	sdkURIInformationKey  = "sdk_uri_information"
	waitScreenInformationKey = "wait_screen_information"
)

func identifierValue(id *Identifier) string {
	if id == nil {
		return ""
	}
	v, ok := id.Value()
	if !ok {
		return ""
	}
	return v
}

// errorResponseFrom builds the domain error for a wire response carrying an
// error code. The attempt status is mapped from the wire status when one is
// present; the unspecified sentinel (or no status at all) leaves it nil -
// "unknown, do not transition" - never a guessed failure.
func errorResponseFrom(resp *PaymentServiceResponse) (models.ErrorResponse, error) {
	out := models.ErrorResponse{
		StatusCode:             resp.StatusCode,
		Code:                   resp.ErrorCode,
		Message:                resp.ErrorMessage,
		Reason:                 resp.ErrorReason,
		ConnectorTransactionID: identifierValue(resp.TransactionID),
		NetworkDeclineCode:     resp.NetworkDeclineCode,
		NetworkAdviceCode:      resp.NetworkAdviceCode,
	}
	if resp.Status != "" && resp.Status != PaymentStatusUnspecified {
		status, err := AttemptStatusFrom(resp.Status)
		if err != nil {
			return models.ErrorResponse{}, err
		}
		out.AttemptStatus = &status
	}
	return out.WithDefaults(), nil
}

// connectorMetadataFrom lifts the wire string map and applies the UPI
// redirect special case: a bare URI is repackaged as SDK-URI info plus a
// wait-screen poll block instead of going into the redirect form slot.
func connectorMetadataFrom(resp *PaymentServiceResponse) map[string]interface{} {
	var out map[string]interface{}
	put := func(k string, v interface{}) {
		if out == nil {
			out = make(map[string]interface{})
		}
		out[k] = v
	}

	for k, v := range resp.ConnectorMetadata {
		put(k, v)
	}

	if resp.RedirectionData != nil && resp.RedirectionData.URI != "" {
		put(sdkURIInformationKey, map[string]interface{}{
			"uri": resp.RedirectionData.URI,
		})
		put(waitScreenInformationKey, map[string]interface{}{
			"display_duration_seconds": upiWaitScreenDisplaySeconds,
			"poll_config": map[string]interface{}{
				"delay_in_seconds":     upiPollDelaySeconds,
				"frequency_per_minute": upiPollFrequencyPerMinute,
			},
		})
	}

	return out
}

func redirectFormFrom(data *RedirectionData) *models.RedirectForm {
	if data == nil || data.Form == nil {
		return nil
	}
	method := "GET"
	if data.Form.Method == HTTPMethodPost {
		method = "POST"
	}
	return &models.RedirectForm{
		URL:    data.Form.Endpoint,
		Method: method,
		Fields: data.Form.Fields,
	}
}

func mandateReferenceFrom(ref *MandateReference) *models.MandateReference {
	if ref == nil {
		return nil
	}
	return &models.MandateReference{
		ConnectorMandateID: ref.ConnectorMandateID,
		PaymentMethodID:    ref.PaymentMethodID,
	}
}

// applyConnectorState copies any refreshed connector-side state onto the
// RouterData so follow-up calls in the same flow reuse it.
func applyConnectorState[F models.Flow, Req any, Resp any](rd *models.RouterData[F, Req, Resp], state *ConnectorState) {
	if state == nil {
		return
	}
	if state.AccessToken != "" {
		rd.AccessToken = state.AccessToken
	}
	if state.ConnectorCustomerID != "" {
		rd.ConnectorCustomerID = state.ConnectorCustomerID
	}
}

// ApplyPaymentResponse maps a wire transaction response back onto the
// RouterData. Every payment flow response follows this template: resolve
// the reference ids from the Identifier union, branch on error_code, and
// otherwise convert the wire status and assemble the success payload.
func ApplyPaymentResponse[F models.Flow, Req any](
	rd models.RouterData[F, Req, models.PaymentsResponseData],
	resp *PaymentServiceResponse,
) (models.RouterData[F, Req, models.PaymentsResponseData], error) {
	applyConnectorState(&rd, resp.State)

	if resp.ErrorCode != "" {
		errResp, err := errorResponseFrom(resp)
		if err != nil {
			return rd, err
		}
		return rd.WithError(errResp), nil
	}

	status, err := AttemptStatusFrom(resp.Status)
	if err != nil {
		return rd, err
	}

	return rd.WithResponse(models.PaymentsResponseData{
		Status:                       status,
		ResourceID:                   identifierValue(resp.TransactionID),
		RedirectForm:                 redirectFormFrom(resp.RedirectionData),
		Mandate:                      mandateReferenceFrom(resp.MandateReference),
		NetworkTransactionID:         resp.NetworkTxnID,
		ConnectorResponseReferenceID: identifierValue(resp.ResponseRefID),
		IncrementalAuthAllowed:       resp.IncrementalAuthorizationAllowed,
		ConnectorMetadata:            connectorMetadataFrom(resp),
	}), nil
}

// ApplyAuthenticationResponse maps a wire response for the 3DS steps.
func ApplyAuthenticationResponse[F models.Flow](
	rd models.RouterData[F, models.AuthenticationRequestData, models.AuthenticationResponseData],
	resp *PaymentServiceResponse,
) (models.RouterData[F, models.AuthenticationRequestData, models.AuthenticationResponseData], error) {
	applyConnectorState(&rd, resp.State)

	if resp.ErrorCode != "" {
		errResp, err := errorResponseFrom(resp)
		if err != nil {
			return rd, err
		}
		return rd.WithError(errResp), nil
	}

	status, err := AttemptStatusFrom(resp.Status)
	if err != nil {
		return rd, err
	}

	return rd.WithResponse(models.AuthenticationResponseData{
		Status:            status,
		AuthenticationID:  identifierValue(resp.TransactionID),
		ChallengeRequired: status == models.AttemptStatusAuthenticationPending,
		RedirectForm:      redirectFormFrom(resp.RedirectionData),
	}), nil
}

// ApplyCreateOrderResponse maps the CreateOrder response.
func ApplyCreateOrderResponse(
	rd models.RouterData[models.CreateOrder, models.CreateOrderRequestData, models.CreateOrderResponseData],
	resp *PaymentServiceCreateOrderResponse,
) (models.RouterData[models.CreateOrder, models.CreateOrderRequestData, models.CreateOrderResponseData], error) {
	if resp.ErrorCode != "" {
		return rd.WithError(models.ErrorResponse{
			StatusCode: resp.StatusCode,
			Code:       resp.ErrorCode,
			Message:    resp.ErrorMessage,
		}), nil
	}
	orderID := identifierValue(resp.OrderID)
	if orderID == "" {
		return rd, pkgerrors.NewResponseDeserializationFailed(nil,
			fmt.Errorf("create order response carries no order id"))
	}
	return rd.WithResponse(models.CreateOrderResponseData{OrderID: orderID}), nil
}

// ApplyCreateConnectorCustomerResponse maps the customer creation response
// and threads the new customer id into the RouterData state.
func ApplyCreateConnectorCustomerResponse(
	rd models.RouterData[models.CreateConnectorCustomer, models.ConnectorCustomerData, models.ConnectorCustomerResponseData],
	resp *PaymentServiceCreateConnectorCustomerResponse,
) (models.RouterData[models.CreateConnectorCustomer, models.ConnectorCustomerData, models.ConnectorCustomerResponseData], error) {
	if resp.ErrorCode != "" {
		return rd.WithError(models.ErrorResponse{
			StatusCode: resp.StatusCode,
			Code:       resp.ErrorCode,
			Message:    resp.ErrorMessage,
		}), nil
	}
	customerID := identifierValue(resp.ConnectorCustomerID)
	if customerID == "" {
		return rd, pkgerrors.NewResponseDeserializationFailed(nil,
			fmt.Errorf("customer response carries no customer id"))
	}
	rd.ConnectorCustomerID = customerID
	return rd.WithResponse(models.ConnectorCustomerResponseData{ConnectorCustomerID: customerID}), nil
}

// ApplyCreateSessionTokenResponse maps the session token response.
func ApplyCreateSessionTokenResponse(
	rd models.RouterData[models.CreateSessionToken, models.SessionTokenRequestData, models.SessionTokenResponseData],
	resp *PaymentServiceCreateSessionTokenResponse,
) (models.RouterData[models.CreateSessionToken, models.SessionTokenRequestData, models.SessionTokenResponseData], error) {
	if resp.ErrorCode != "" {
		return rd.WithError(models.ErrorResponse{
			StatusCode: resp.StatusCode,
			Code:       resp.ErrorCode,
			Message:    resp.ErrorMessage,
		}), nil
	}
	if resp.SessionToken == "" {
		return rd, pkgerrors.NewResponseDeserializationFailed(nil,
			fmt.Errorf("session token response carries no token"))
	}
	return rd.WithResponse(models.SessionTokenResponseData{SessionToken: resp.SessionToken}), nil
}
