// Package wellsfargo implements the connector integration contract for the
// Wellsfargo payment gateway (a CyberSource-family REST API).
package wellsfargo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/unifiedpay/connector-service/internal/connector"
	"github.com/unifiedpay/connector-service/internal/domain/models"
	pkgerrors "github.com/unifiedpay/connector-service/pkg/errors"
)

// Adapter holds the connector's process-wide immutable state. Safe to share
// across concurrent calls without locking.
type Adapter struct {
	amountConverter models.MinorUnitConverter
	now             func() time.Time
}

// NewAdapter creates the Wellsfargo adapter.
func NewAdapter() *Adapter {
	return &Adapter{now: time.Now}
}

// RegisterCapabilities declares the flows this connector supports.
func RegisterCapabilities(r *connector.CapabilityRegistry) {
	r.Register(connector.KindWellsfargo,
		models.Authorize{}, models.Capture{}, models.Void{}, models.Refund{},
		models.PSync{}, models.RSync{}, models.SetupMandate{},
		models.IncrementalAuthorization{}, models.MandateRevoke{},
	)
}

// flowIntegration is one (flow, request, response) instantiation of the
// integration contract. The per-flow differences are the method, path, body
// and response handler; header construction, request composition and error
// parsing are shared across all flows.
type flowIntegration[F models.Flow, Req any, Resp any] struct {
	adapter *Adapter
	method  string
	path    func(rd *models.RouterData[F, Req, Resp]) (string, error)
	body    func(rd *models.RouterData[F, Req, Resp]) (interface{}, error)
	handle  func(rd *models.RouterData[F, Req, Resp], resp connector.Response) (models.RouterData[F, Req, Resp], error)
}

func (f *flowIntegration[F, Req, Resp]) GetURL(rd *models.RouterData[F, Req, Resp], cfg *connector.Config) (string, error) {
	path, err := f.path(rd)
	if err != nil {
		return "", err
	}
	return cfg.BaseURL + path, nil
}

func (f *flowIntegration[F, Req, Resp]) GetRequestBody(rd *models.RouterData[F, Req, Resp], cfg *connector.Config) (*connector.RequestContent, error) {
	if f.body == nil {
		return nil, nil
	}
	payload, err := f.body(rd)
	if err != nil {
		return nil, err
	}
	content, err := connector.JSONContent(payload)
	if err != nil {
		return nil, pkgerrors.NewRequestEncodingFailed(err)
	}
	return &content, nil
}

// GetHeaders signs the serialized body, so it runs the body builder
// internally; the output is byte-identical to what BuildRequest transmits.
func (f *flowIntegration[F, Req, Resp]) GetHeaders(ctx context.Context, rd *models.RouterData[F, Req, Resp], cfg *connector.Config) ([]connector.Header, error) {
	fullURL, err := f.GetURL(rd, cfg)
	if err != nil {
		return nil, err
	}
	parsed, err := url.Parse(fullURL)
	if err != nil {
		return nil, pkgerrors.NewRequestEncodingFailed(err)
	}

	var bodyBytes []byte
	content, err := f.GetRequestBody(rd, cfg)
	if err != nil {
		return nil, err
	}
	if content != nil {
		bodyBytes = content.Bytes()
	}

	return signedHeaders(cfg.Auth, f.method, parsed.Host, parsed.RequestURI(), bodyBytes, f.adapter.now())
}

func (f *flowIntegration[F, Req, Resp]) BuildRequest(ctx context.Context, rd *models.RouterData[F, Req, Resp], cfg *connector.Config) (*connector.Request, error) {
	fullURL, err := f.GetURL(rd, cfg)
	if err != nil {
		return nil, err
	}
	headers, err := f.GetHeaders(ctx, rd, cfg)
	if err != nil {
		return nil, err
	}
	body, err := f.GetRequestBody(rd, cfg)
	if err != nil {
		return nil, err
	}
	return &connector.Request{
		Method:  f.method,
		URL:     fullURL,
		Headers: headers,
		Body:    body,
	}, nil
}

func (f *flowIntegration[F, Req, Resp]) HandleResponse(rd *models.RouterData[F, Req, Resp], resp connector.Response) (models.RouterData[F, Req, Resp], error) {
	return f.handle(rd, resp)
}

func (f *flowIntegration[F, Req, Resp]) GetErrorResponse(resp connector.Response) (models.ErrorResponse, error) {
	return parseErrorResponse(resp), nil
}

func (f *flowIntegration[F, Req, Resp]) Get5xxErrorResponse(resp connector.Response) (models.ErrorResponse, error) {
	return parse5xxErrorResponse(resp), nil
}

// Authorize returns the authorization flow integration.
func (a *Adapter) Authorize() connector.Integration[models.Authorize, models.PaymentsAuthorizeData, models.PaymentsResponseData] {
	return &flowIntegration[models.Authorize, models.PaymentsAuthorizeData, models.PaymentsResponseData]{
		adapter: a,
		method:  http.MethodPost,
		path: func(rd *models.RouterData[models.Authorize, models.PaymentsAuthorizeData, models.PaymentsResponseData]) (string, error) {
			return "pts/v2/payments/", nil
		},
		body: func(rd *models.RouterData[models.Authorize, models.PaymentsAuthorizeData, models.PaymentsResponseData]) (interface{}, error) {
			return a.buildAuthorizeRequest(rd)
		},
		handle: func(rd *models.RouterData[models.Authorize, models.PaymentsAuthorizeData, models.PaymentsResponseData], resp connector.Response) (models.RouterData[models.Authorize, models.PaymentsAuthorizeData, models.PaymentsResponseData], error) {
			return handlePaymentResponse(rd, resp, rd.Request.CaptureMethod == models.CaptureMethodAutomatic)
		},
	}
}

// Capture returns the capture flow integration.
func (a *Adapter) Capture() connector.Integration[models.Capture, models.PaymentsCaptureData, models.PaymentsResponseData] {
	return &flowIntegration[models.Capture, models.PaymentsCaptureData, models.PaymentsResponseData]{
		adapter: a,
		method:  http.MethodPost,
		path: func(rd *models.RouterData[models.Capture, models.PaymentsCaptureData, models.PaymentsResponseData]) (string, error) {
			if rd.Request.ConnectorTransactionID == "" {
				return "", pkgerrors.NewMissingRequiredField("connector_transaction_id")
			}
			return fmt.Sprintf("pts/v2/payments/%s/captures", rd.Request.ConnectorTransactionID), nil
		},
		body: func(rd *models.RouterData[models.Capture, models.PaymentsCaptureData, models.PaymentsResponseData]) (interface{}, error) {
			return captureRequest{
				ClientReferenceInformation: clientReferenceInformation{Code: rd.ConnectorRequestReferenceID},
				OrderInformation: orderInformation{
					AmountDetails: a.amountFor(rd.Request.AmountToCapture, rd.Request.Currency),
				},
			}, nil
		},
		handle: func(rd *models.RouterData[models.Capture, models.PaymentsCaptureData, models.PaymentsResponseData], resp connector.Response) (models.RouterData[models.Capture, models.PaymentsCaptureData, models.PaymentsResponseData], error) {
			return handlePaymentResponse(rd, resp, true)
		},
	}
}

// Void returns the void/reversal flow integration.
func (a *Adapter) Void() connector.Integration[models.Void, models.PaymentsCancelData, models.PaymentsResponseData] {
	return &flowIntegration[models.Void, models.PaymentsCancelData, models.PaymentsResponseData]{
		adapter: a,
		method:  http.MethodPost,
		path: func(rd *models.RouterData[models.Void, models.PaymentsCancelData, models.PaymentsResponseData]) (string, error) {
			if rd.Request.ConnectorTransactionID == "" {
				return "", pkgerrors.NewMissingRequiredField("connector_transaction_id")
			}
			return fmt.Sprintf("pts/v2/payments/%s/reversals", rd.Request.ConnectorTransactionID), nil
		},
		body: func(rd *models.RouterData[models.Void, models.PaymentsCancelData, models.PaymentsResponseData]) (interface{}, error) {
			req := voidRequest{
				ClientReferenceInformation: clientReferenceInformation{Code: rd.ConnectorRequestReferenceID},
			}
			if rd.Request.CancellationReason != "" {
				req.ReversalInformation = &reversalInformation{Reason: rd.Request.CancellationReason}
			}
			return req, nil
		},
		handle: func(rd *models.RouterData[models.Void, models.PaymentsCancelData, models.PaymentsResponseData], resp connector.Response) (models.RouterData[models.Void, models.PaymentsCancelData, models.PaymentsResponseData], error) {
			return handlePaymentResponse(rd, resp, false)
		},
	}
}

// Refund returns the refund flow integration.
func (a *Adapter) Refund() connector.Integration[models.Refund, models.RefundsData, models.RefundsResponseData] {
	return &flowIntegration[models.Refund, models.RefundsData, models.RefundsResponseData]{
		adapter: a,
		method:  http.MethodPost,
		path: func(rd *models.RouterData[models.Refund, models.RefundsData, models.RefundsResponseData]) (string, error) {
			if rd.Request.ConnectorTransactionID == "" {
				return "", pkgerrors.NewMissingRequiredField("connector_transaction_id")
			}
			return fmt.Sprintf("pts/v2/payments/%s/refunds", rd.Request.ConnectorTransactionID), nil
		},
		body: func(rd *models.RouterData[models.Refund, models.RefundsData, models.RefundsResponseData]) (interface{}, error) {
			return refundRequest{
				ClientReferenceInformation: clientReferenceInformation{Code: rd.Request.RefundID},
				OrderInformation: orderInformation{
					AmountDetails: a.amountFor(rd.Request.RefundAmount, rd.Request.Currency),
				},
			}, nil
		},
		handle: handleRefundResponse[models.Refund],
	}
}

// PSync returns the payment sync flow integration.
func (a *Adapter) PSync() connector.Integration[models.PSync, models.PaymentsSyncData, models.PaymentsResponseData] {
	return &flowIntegration[models.PSync, models.PaymentsSyncData, models.PaymentsResponseData]{
		adapter: a,
		method:  http.MethodGet,
		path: func(rd *models.RouterData[models.PSync, models.PaymentsSyncData, models.PaymentsResponseData]) (string, error) {
			if rd.Request.ConnectorTransactionID == "" {
				return "", pkgerrors.NewMissingRequiredField("connector_transaction_id")
			}
			return fmt.Sprintf("tss/v2/transactions/%s", rd.Request.ConnectorTransactionID), nil
		},
		handle: func(rd *models.RouterData[models.PSync, models.PaymentsSyncData, models.PaymentsResponseData], resp connector.Response) (models.RouterData[models.PSync, models.PaymentsSyncData, models.PaymentsResponseData], error) {
			var tr transactionResponse
			if err := unmarshalResponse(resp, &tr); err != nil {
				return *rd, err
			}
			status, err := attemptStatusFrom(tr.ApplicationSummary.Status, false)
			if err != nil {
				return *rd, err
			}
			return rd.WithResponse(models.PaymentsResponseData{
				Status:     status,
				ResourceID: tr.ID,
			}), nil
		},
	}
}

// RSync returns the refund sync flow integration.
func (a *Adapter) RSync() connector.Integration[models.RSync, models.RefundsData, models.RefundsResponseData] {
	return &flowIntegration[models.RSync, models.RefundsData, models.RefundsResponseData]{
		adapter: a,
		method:  http.MethodGet,
		path: func(rd *models.RouterData[models.RSync, models.RefundsData, models.RefundsResponseData]) (string, error) {
			if rd.Request.ConnectorRefundID == "" {
				return "", pkgerrors.NewMissingRequiredField("connector_refund_id")
			}
			return fmt.Sprintf("tss/v2/transactions/%s", rd.Request.ConnectorRefundID), nil
		},
		handle: func(rd *models.RouterData[models.RSync, models.RefundsData, models.RefundsResponseData], resp connector.Response) (models.RouterData[models.RSync, models.RefundsData, models.RefundsResponseData], error) {
			var tr transactionResponse
			if err := unmarshalResponse(resp, &tr); err != nil {
				return *rd, err
			}
			status, err := refundStatusFrom(tr.ApplicationSummary.Status)
			if err != nil {
				return *rd, err
			}
			return rd.WithResponse(models.RefundsResponseData{
				ConnectorRefundID: tr.ID,
				Status:            status,
			}), nil
		},
	}
}

// SetupMandate returns the zero-amount mandate registration integration.
func (a *Adapter) SetupMandate() connector.Integration[models.SetupMandate, models.SetupMandateRequestData, models.PaymentsResponseData] {
	return &flowIntegration[models.SetupMandate, models.SetupMandateRequestData, models.PaymentsResponseData]{
		adapter: a,
		method:  http.MethodPost,
		path: func(rd *models.RouterData[models.SetupMandate, models.SetupMandateRequestData, models.PaymentsResponseData]) (string, error) {
			return "pts/v2/payments/", nil
		},
		body: func(rd *models.RouterData[models.SetupMandate, models.SetupMandateRequestData, models.PaymentsResponseData]) (interface{}, error) {
			return a.buildSetupMandateRequest(rd)
		},
		handle: func(rd *models.RouterData[models.SetupMandate, models.SetupMandateRequestData, models.PaymentsResponseData], resp connector.Response) (models.RouterData[models.SetupMandate, models.SetupMandateRequestData, models.PaymentsResponseData], error) {
			return handlePaymentResponse(rd, resp, false)
		},
	}
}

// IncrementalAuthorization returns the incremental authorization integration.
func (a *Adapter) IncrementalAuthorization() connector.Integration[models.IncrementalAuthorization, models.IncrementalAuthorizationData, models.PaymentsResponseData] {
	return &flowIntegration[models.IncrementalAuthorization, models.IncrementalAuthorizationData, models.PaymentsResponseData]{
		adapter: a,
		method:  http.MethodPatch,
		path: func(rd *models.RouterData[models.IncrementalAuthorization, models.IncrementalAuthorizationData, models.PaymentsResponseData]) (string, error) {
			if rd.Request.ConnectorTransactionID == "" {
				return "", pkgerrors.NewMissingRequiredField("connector_transaction_id")
			}
			return fmt.Sprintf("pts/v2/payments/%s", rd.Request.ConnectorTransactionID), nil
		},
		body: func(rd *models.RouterData[models.IncrementalAuthorization, models.IncrementalAuthorizationData, models.PaymentsResponseData]) (interface{}, error) {
			req := incrementalAuthRequest{
				ClientReferenceInformation: clientReferenceInformation{Code: rd.ConnectorRequestReferenceID},
				OrderInformation: orderInformation{
					AmountDetails: a.amountFor(rd.Request.AdditionalAmount, rd.Request.Currency),
				},
			}
			req.ProcessingInformation.AuthorizationOptions = authorizationOptions{
				Initiator: &initiator{InitiatorType: "merchant", StoredCredentialUsed: true},
			}
			return req, nil
		},
		handle: func(rd *models.RouterData[models.IncrementalAuthorization, models.IncrementalAuthorizationData, models.PaymentsResponseData], resp connector.Response) (models.RouterData[models.IncrementalAuthorization, models.IncrementalAuthorizationData, models.PaymentsResponseData], error) {
			out, err := handlePaymentResponse(rd, resp, false)
			if err != nil || out.Response == nil {
				return out, err
			}
			out.Response.IncrementalAuthAllowed = true
			return out, nil
		},
	}
}

// MandateRevoke returns the stored-instrument deletion integration.
func (a *Adapter) MandateRevoke() connector.Integration[models.MandateRevoke, models.MandateRevokeData, models.MandateRevokeResponseData] {
	return &flowIntegration[models.MandateRevoke, models.MandateRevokeData, models.MandateRevokeResponseData]{
		adapter: a,
		method:  http.MethodDelete,
		path: func(rd *models.RouterData[models.MandateRevoke, models.MandateRevokeData, models.MandateRevokeResponseData]) (string, error) {
			if rd.Request.ConnectorMandateID == "" {
				return "", pkgerrors.NewMissingRequiredField("connector_mandate_id")
			}
			return fmt.Sprintf("tms/v1/paymentinstruments/%s", rd.Request.ConnectorMandateID), nil
		},
		handle: func(rd *models.RouterData[models.MandateRevoke, models.MandateRevokeData, models.MandateRevokeResponseData], resp connector.Response) (models.RouterData[models.MandateRevoke, models.MandateRevokeData, models.MandateRevokeResponseData], error) {
			// Deletion answers 204 with no body.
			return rd.WithResponse(models.MandateRevokeResponseData{Status: "revoked"}), nil
		},
	}
}

// Request building helpers.

func (a *Adapter) amountFor(amount models.Amount, currency models.Currency) amountDetails {
	return amountDetails{
		TotalAmount: a.amountConverter.ToMajorUnitString(amount, currency),
		Currency:    string(currency),
	}
}

func (a *Adapter) buildAuthorizeRequest(rd *models.RouterData[models.Authorize, models.PaymentsAuthorizeData, models.PaymentsResponseData]) (interface{}, error) {
	req := rd.Request
	if req.Currency == "" {
		return nil, pkgerrors.NewMissingRequiredField("currency")
	}

	pi, err := paymentInformationFrom(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	processing := processingInformation{
		Capture:           req.CaptureMethod == models.CaptureMethodAutomatic,
		CommerceIndicator: "internet",
	}
	if req.FutureUsage != nil && *req.FutureUsage == models.FutureUsageOffSession {
		processing.ActionList = []string{"TOKEN_CREATE"}
		processing.AuthorizationOptions = &authorizationOptions{
			Initiator: &initiator{InitiatorType: "customer", CredentialStoredOnFile: true},
		}
	}

	return paymentsRequest{
		ClientReferenceInformation: clientReferenceInformation{Code: rd.ConnectorRequestReferenceID},
		ProcessingInformation:      processing,
		PaymentInformation:         pi,
		OrderInformation: orderInformation{
			AmountDetails: a.amountFor(req.Amount, req.Currency),
			BillTo:        billToFrom(billingAddress(req.PaymentMethodBilling, req.Billing), req.Email),
		},
	}, nil
}

func (a *Adapter) buildSetupMandateRequest(rd *models.RouterData[models.SetupMandate, models.SetupMandateRequestData, models.PaymentsResponseData]) (interface{}, error) {
	req := rd.Request
	if req.Currency == "" {
		return nil, pkgerrors.NewMissingRequiredField("currency")
	}

	pi, err := paymentInformationFrom(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	return paymentsRequest{
		ClientReferenceInformation: clientReferenceInformation{Code: rd.ConnectorRequestReferenceID},
		ProcessingInformation: processingInformation{
			Capture:    false,
			ActionList: []string{"TOKEN_CREATE"},
			AuthorizationOptions: &authorizationOptions{
				Initiator: &initiator{InitiatorType: "customer", CredentialStoredOnFile: true},
			},
		},
		PaymentInformation: pi,
		OrderInformation: orderInformation{
			AmountDetails: a.amountFor(models.AmountZero, req.Currency),
			BillTo:        billToFrom(req.Billing, req.Email),
		},
	}, nil
}

func paymentInformationFrom(pm models.PaymentMethodData) (paymentInformation, error) {
	switch {
	case pm.Card != nil:
		return paymentInformation{Card: &cardInformation{
			Number:          pm.Card.Number.Expose(),
			ExpirationMonth: pm.Card.ExpiryMonth.Expose(),
			ExpirationYear:  pm.Card.ExpiryYear.Expose(),
			SecurityCode:    pm.Card.CVC.Expose(),
		}}, nil
	case pm.Token != "":
		return paymentInformation{PaymentInstrument: &paymentInstrument{ID: pm.Token}}, nil
	default:
		return paymentInformation{}, pkgerrors.NewRequestEncodingFailedWithReason(
			"unsupported payment method for this connector")
	}
}

// billingAddress applies the payment-method-billing-over-billing precedence.
func billingAddress(paymentMethodBilling, billing *models.Address) *models.Address {
	if paymentMethodBilling != nil {
		return paymentMethodBilling
	}
	return billing
}

func billToFrom(addr *models.Address, email string) *billTo {
	if addr == nil && email == "" {
		return nil
	}
	bt := &billTo{Email: email}
	if addr != nil {
		bt.FirstName = addr.FirstName
		bt.LastName = addr.LastName
		bt.Address1 = addr.Line1
		bt.Locality = addr.City
		bt.AdministrativeArea = addr.State
		bt.PostalCode = addr.Zip
		bt.Country = addr.CountryISO
		bt.PhoneNumber = addr.Phone
		if bt.Email == "" {
			bt.Email = addr.Email
		}
	}
	return bt
}

// Response handling helpers.

func unmarshalResponse(resp connector.Response, v interface{}) error {
	if err := json.Unmarshal(resp.Body, v); err != nil {
		return pkgerrors.NewResponseDeserializationFailed(resp.Body, err)
	}
	return nil
}

func handlePaymentResponse[F models.Flow, Req any](
	rd *models.RouterData[F, Req, models.PaymentsResponseData],
	resp connector.Response,
	autoCapture bool,
) (models.RouterData[F, Req, models.PaymentsResponseData], error) {
	var pr paymentsResponse
	if err := unmarshalResponse(resp, &pr); err != nil {
		return *rd, err
	}

	if pr.ErrorInformation != nil {
		return rd.WithError(errorResponseFrom(resp.StatusCode, &pr)), nil
	}

	status, err := attemptStatusFrom(pr.Status, autoCapture)
	if err != nil {
		return *rd, err
	}

	out := models.PaymentsResponseData{
		Status:     status,
		ResourceID: pr.ID,
	}
	if pr.ClientReferenceInformation != nil {
		out.ConnectorResponseReferenceID = pr.ClientReferenceInformation.Code
	}
	if pr.ProcessorInformation != nil {
		out.NetworkTransactionID = pr.ProcessorInformation.NetworkTransactionID
	}
	if pr.TokenInformation != nil && pr.TokenInformation.PaymentInstrument != nil {
		out.Mandate = &models.MandateReference{
			ConnectorMandateID: pr.TokenInformation.PaymentInstrument.ID,
		}
	}

	return rd.WithResponse(out), nil
}

func handleRefundResponse[F models.Flow](
	rd *models.RouterData[F, models.RefundsData, models.RefundsResponseData],
	resp connector.Response,
) (models.RouterData[F, models.RefundsData, models.RefundsResponseData], error) {
	var pr paymentsResponse
	if err := unmarshalResponse(resp, &pr); err != nil {
		return *rd, err
	}

	if pr.ErrorInformation != nil {
		return rd.WithError(errorResponseFrom(resp.StatusCode, &pr)), nil
	}

	status, err := refundStatusFrom(pr.Status)
	if err != nil {
		return *rd, err
	}

	return rd.WithResponse(models.RefundsResponseData{
		ConnectorRefundID: pr.ID,
		Status:            status,
	}), nil
}
