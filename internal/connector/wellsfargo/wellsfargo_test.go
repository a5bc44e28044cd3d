package wellsfargo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifiedpay/connector-service/internal/connector"
	"github.com/unifiedpay/connector-service/internal/domain/models"
	"github.com/unifiedpay/connector-service/internal/domain/ports"
	pkgerrors "github.com/unifiedpay/connector-service/pkg/errors"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...ports.Field)  {}
func (nopLogger) Error(string, ...ports.Field) {}
func (nopLogger) Warn(string, ...ports.Field)  {}
func (nopLogger) Debug(string, ...ports.Field) {}

func mustAmount(t *testing.T, v int64) models.Amount {
	t.Helper()
	a, err := models.NewAmount(v)
	require.NoError(t, err)
	return a
}

func testCard() models.PaymentMethodData {
	return models.PaymentMethodData{Card: &models.Card{
		Number:      models.NewMasked("4111111111111111"),
		ExpiryMonth: models.NewMasked("03"),
		ExpiryYear:  models.NewMasked("2030"),
		CVC:         models.NewMasked("737"),
		HolderName:  "Jane Doe",
		Network:     models.CardNetworkVisa,
	}}
}

func TestAttemptStatusMappingIsTotal(t *testing.T) {
	tests := []struct {
		status paymentStatus
		want   models.AttemptStatus
	}{
		{statusAuthorized, models.AttemptStatusAuthorized},
		{statusPartialAuthorized, models.AttemptStatusPartialCharged},
		{statusAuthorizedPendingReview, models.AttemptStatusPending},
		{statusPendingReview, models.AttemptStatusPending},
		{statusAuthorizedRiskDeclined, models.AttemptStatusFailure},
		{statusDeclined, models.AttemptStatusFailure},
		{statusInvalidRequest, models.AttemptStatusFailure},
		{statusFailed, models.AttemptStatusFailure},
		{statusPendingAuthentication, models.AttemptStatusAuthenticationPending},
		{statusPending, models.AttemptStatusPending},
		{statusProcessing, models.AttemptStatusPending},
		{statusSucceeded, models.AttemptStatusCharged},
		{statusTransmitted, models.AttemptStatusCharged},
		{statusVoided, models.AttemptStatusVoided},
		{statusReversed, models.AttemptStatusVoided},
		{statusCancelled, models.AttemptStatusVoided},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			got, err := attemptStatusFrom(tt.status, false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAttemptStatusMapping_AutoCapture(t *testing.T) {
	got, err := attemptStatusFrom(statusAuthorized, true)
	require.NoError(t, err)
	assert.Equal(t, models.AttemptStatusCharged, got)

	got, err = attemptStatusFrom(statusAuthorized, false)
	require.NoError(t, err)
	assert.Equal(t, models.AttemptStatusAuthorized, got)
}

func TestAttemptStatusMapping_UnknownStatusIsHardError(t *testing.T) {
	_, err := attemptStatusFrom("SOMETHING_NEW", false)
	require.Error(t, err)

	var connErr *pkgerrors.ConnectorError
	require.True(t, errors.As(err, &connErr))
	assert.Equal(t, pkgerrors.KindResponseDeserializationFailed, connErr.Kind)
	assert.Equal(t, "SOMETHING_NEW", connErr.RawBody)
}

func TestRefundStatusMapping(t *testing.T) {
	tests := []struct {
		status paymentStatus
		want   models.RefundStatus
	}{
		{statusSucceeded, models.RefundStatusSuccess},
		{statusTransmitted, models.RefundStatusSuccess},
		{statusPending, models.RefundStatusPending},
		{statusProcessing, models.RefundStatusPending},
		{statusDeclined, models.RefundStatusFailure},
		{statusInvalidRequest, models.RefundStatusFailure},
		{statusFailed, models.RefundStatusFailure},
		{statusVoided, models.RefundStatusFailure},
	}
	for _, tt := range tests {
		got, err := refundStatusFrom(tt.status)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := refundStatusFrom("AUTHORIZED_RISK_DECLINED")
	require.Error(t, err)
}

func TestParseErrorResponse_Shapes(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantCode    string
		wantMessage string
		wantReason  string
	}{
		{
			name:        "structured decline",
			body:        `{"errorInformation":{"reason":"INVALID_DATA","message":"Declined - Invalid account","details":[{"field":"paymentInformation.card.number","reason":"INVALID_DATA"},{"field":"orderInformation.amountDetails.totalAmount","reason":"MISSING_FIELD"}]}}`,
			wantCode:    "INVALID_DATA",
			wantMessage: "Declined - Invalid account",
			wantReason:  "paymentInformation.card.number: INVALID_DATA, orderInformation.amountDetails.totalAmount: MISSING_FIELD",
		},
		{
			name:        "flat decline",
			body:        `{"reason":"DUPLICATE_REQUEST","message":"Declined - duplicate"}`,
			wantCode:    "DUPLICATE_REQUEST",
			wantMessage: "Declined - duplicate",
			wantReason:  "Declined - duplicate",
		},
		{
			name:        "authentication failure",
			body:        `{"response":{"rmsg":"Authentication Failed"}}`,
			wantCode:    models.NoErrorCode,
			wantMessage: "Authentication Failed",
		},
		{
			name:        "service not available",
			body:        `{"errors":[{"type":"notAvailable","message":"Service temporarily unavailable"}]}`,
			wantCode:    "notAvailable",
			wantMessage: "Service temporarily unavailable",
		},
		{
			name:        "unrecognized body keeps raw bytes",
			body:        `<html>gateway error</html>`,
			wantCode:    models.NoErrorCode,
			wantMessage: models.NoErrorMessage,
			wantReason:  `<html>gateway error</html>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseErrorResponse(connector.Response{StatusCode: 400, Body: []byte(tt.body)})
			assert.Equal(t, 400, got.StatusCode)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantMessage, got.Message)
			if tt.wantReason != "" {
				assert.Equal(t, tt.wantReason, got.Reason)
			}
		})
	}
}

func TestParse5xxErrorResponse_ErrorClasses(t *testing.T) {
	failure := models.AttemptStatusFailure

	tests := []struct {
		name       string
		body       string
		wantCode   string
		wantStatus *models.AttemptStatus
	}{
		{
			name:       "system error is a confirmed failure",
			body:       `{"status":"SERVER_ERROR","reason":"SYSTEM_ERROR","message":"Processor error"}`,
			wantCode:   "SYSTEM_ERROR",
			wantStatus: &failure,
		},
		{
			name:       "server timeout leaves the outcome unknown",
			body:       `{"status":"ServerTimeout"}`,
			wantCode:   "ServerTimeout",
			wantStatus: nil,
		},
		{
			name:       "service timeout leaves the outcome unknown",
			body:       `{"status":"SERVER_TIMEOUT","reason":"SERVICE_TIMEOUT","message":"Gateway timed out"}`,
			wantCode:   "SERVICE_TIMEOUT",
			wantStatus: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parse5xxErrorResponse(connector.Response{StatusCode: 502, Body: []byte(tt.body)})
			assert.Equal(t, tt.wantCode, got.Code)
			if tt.wantStatus == nil {
				assert.Nil(t, got.AttemptStatus, "timeout must not transition attempt state")
			} else {
				require.NotNil(t, got.AttemptStatus)
				assert.Equal(t, *tt.wantStatus, *got.AttemptStatus)
			}
		})
	}
}

func TestParse5xxErrorResponse_UnparseableBody(t *testing.T) {
	got := parse5xxErrorResponse(connector.Response{StatusCode: 503, Body: []byte("upstream connect error")})
	assert.Equal(t, models.NoErrorCode, got.Code)
	assert.Equal(t, "upstream connect error", got.Reason)
	assert.Nil(t, got.AttemptStatus)
}

func authorizeRouterData(t *testing.T) models.RouterData[models.Authorize, models.PaymentsAuthorizeData, models.PaymentsResponseData] {
	return models.RouterData[models.Authorize, models.PaymentsAuthorizeData, models.PaymentsResponseData]{
		MerchantID:                  "merchant_abc",
		PaymentID:                   "pay_1",
		AttemptID:                   "pay_1_1",
		ConnectorRequestReferenceID: "ref_123",
		Request: models.PaymentsAuthorizeData{
			Amount:        mustAmount(t, 1000),
			Currency:      models.CurrencyUSD,
			PaymentMethod: testCard(),
			CaptureMethod: models.CaptureMethodManual,
			Billing: &models.Address{
				FirstName:  "Jane",
				LastName:   "Doe",
				Line1:      "1 Main St",
				City:       "San Francisco",
				State:      "CA",
				Zip:        "94105",
				CountryISO: "US",
			},
			Email: "jane@example.com",
		},
	}
}

func TestAuthorize_EndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/pts/v2/payments/", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("Signature"))
		assert.NotEmpty(t, r.Header.Get("Digest"))
		assert.Equal(t, "merchant_abc", r.Header.Get("v-c-merchant-id"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body paymentsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ref_123", body.ClientReferenceInformation.Code)
		assert.Equal(t, "10.00", body.OrderInformation.AmountDetails.TotalAmount)
		assert.Equal(t, "USD", body.OrderInformation.AmountDetails.Currency)
		assert.False(t, body.ProcessingInformation.Capture)
		require.NotNil(t, body.PaymentInformation.Card)
		assert.Equal(t, "4111111111111111", body.PaymentInformation.Card.Number)
		require.NotNil(t, body.OrderInformation.BillTo)
		assert.Equal(t, "jane@example.com", body.OrderInformation.BillTo.Email)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"6320101111106962103955","status":"AUTHORIZED","clientReferenceInformation":{"code":"ref_123"},"processorInformation":{"approvalCode":"831000","networkTransactionId":"016153570198200"}}`))
	}))
	defer srv.Close()

	exec := connector.NewExecutor(srv.Client(), nopLogger{})
	cfg := &connector.Config{BaseURL: srv.URL + "/", Auth: testAuth()}

	out, err := connector.Execute(context.Background(), exec, connector.KindWellsfargo,
		NewAdapter().Authorize(), cfg, authorizeRouterData(t))
	require.NoError(t, err)

	require.NotNil(t, out.Response)
	assert.Nil(t, out.Error)
	assert.Equal(t, models.AttemptStatusAuthorized, out.Response.Status)
	assert.Equal(t, "6320101111106962103955", out.Response.ResourceID)
	assert.Equal(t, "ref_123", out.Response.ConnectorResponseReferenceID)
	assert.Equal(t, "016153570198200", out.Response.NetworkTransactionID)
}

func TestAuthorize_ServerTimeoutDoesNotTransitionState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"status":"ServerTimeout"}`))
	}))
	defer srv.Close()

	exec := connector.NewExecutor(srv.Client(), nopLogger{})
	cfg := &connector.Config{BaseURL: srv.URL + "/", Auth: testAuth()}

	out, err := connector.Execute(context.Background(), exec, connector.KindWellsfargo,
		NewAdapter().Authorize(), cfg, authorizeRouterData(t))
	require.NoError(t, err)

	require.NotNil(t, out.Error)
	assert.Nil(t, out.Response)
	assert.Equal(t, http.StatusBadGateway, out.Error.StatusCode)
	assert.Equal(t, "ServerTimeout", out.Error.Code)
	assert.Nil(t, out.Error.AttemptStatus, "timeout must be reconciled by sync, not recorded as failure")
}

func TestAuthorize_DeclineOn4xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errorInformation":{"reason":"INVALID_DATA","message":"Declined - Invalid account"}}`))
	}))
	defer srv.Close()

	exec := connector.NewExecutor(srv.Client(), nopLogger{})
	cfg := &connector.Config{BaseURL: srv.URL + "/", Auth: testAuth()}

	out, err := connector.Execute(context.Background(), exec, connector.KindWellsfargo,
		NewAdapter().Authorize(), cfg, authorizeRouterData(t))
	require.NoError(t, err)

	require.NotNil(t, out.Error)
	assert.Equal(t, "INVALID_DATA", out.Error.Code)
	assert.Equal(t, "Declined - Invalid account", out.Error.Message)
}

func TestCapture_RequiresTransactionID(t *testing.T) {
	rd := models.RouterData[models.Capture, models.PaymentsCaptureData, models.PaymentsResponseData]{
		ConnectorRequestReferenceID: "ref_123",
		Request: models.PaymentsCaptureData{
			AmountToCapture: mustAmount(t, 500),
			Currency:        models.CurrencyUSD,
		},
	}

	_, err := NewAdapter().Capture().GetURL(&rd, &connector.Config{BaseURL: "https://api.example.com/"})
	require.Error(t, err)

	var connErr *pkgerrors.ConnectorError
	require.True(t, errors.As(err, &connErr))
	assert.Equal(t, pkgerrors.KindMissingRequiredField, connErr.Kind)
	assert.Equal(t, "connector_transaction_id", connErr.FieldName)
}

func TestPSync_GetRequestHasNoBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/tss/v2/transactions/txn_42", r.URL.Path)
		assert.Empty(t, r.Header.Get("Digest"))
		fields := signatureFields(t, r.Header.Get("Signature"))
		assert.Equal(t, "host date (request-target) v-c-merchant-id", fields["headers"])

		_, _ = w.Write([]byte(`{"id":"txn_42","applicationInformation":{"status":"TRANSMITTED"}}`))
	}))
	defer srv.Close()

	exec := connector.NewExecutor(srv.Client(), nopLogger{})
	cfg := &connector.Config{BaseURL: srv.URL + "/", Auth: testAuth()}

	rd := models.RouterData[models.PSync, models.PaymentsSyncData, models.PaymentsResponseData]{
		PaymentID: "pay_1",
		Request:   models.PaymentsSyncData{ConnectorTransactionID: "txn_42"},
	}

	out, err := connector.Execute(context.Background(), exec, connector.KindWellsfargo,
		NewAdapter().PSync(), cfg, rd)
	require.NoError(t, err)

	require.NotNil(t, out.Response)
	assert.Equal(t, models.AttemptStatusCharged, out.Response.Status)
	assert.Equal(t, "txn_42", out.Response.ResourceID)
}

func TestRefund_EndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pts/v2/payments/txn_42/refunds", r.URL.Path)

		var body refundRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "re_1", body.ClientReferenceInformation.Code)
		assert.Equal(t, "5.00", body.OrderInformation.AmountDetails.TotalAmount)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"rf_77","status":"PENDING"}`))
	}))
	defer srv.Close()

	exec := connector.NewExecutor(srv.Client(), nopLogger{})
	cfg := &connector.Config{BaseURL: srv.URL + "/", Auth: testAuth()}

	rd := models.RouterData[models.Refund, models.RefundsData, models.RefundsResponseData]{
		PaymentID: "pay_1",
		Request: models.RefundsData{
			RefundID:               "re_1",
			ConnectorTransactionID: "txn_42",
			RefundAmount:           mustAmount(t, 500),
			Currency:               models.CurrencyUSD,
		},
	}

	out, err := connector.Execute(context.Background(), exec, connector.KindWellsfargo,
		NewAdapter().Refund(), cfg, rd)
	require.NoError(t, err)

	require.NotNil(t, out.Response)
	assert.Equal(t, "rf_77", out.Response.ConnectorRefundID)
	assert.Equal(t, models.RefundStatusPending, out.Response.Status)
}

func TestSetupMandate_ZeroAmountTokenCreate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body paymentsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "0.00", body.OrderInformation.AmountDetails.TotalAmount)
		assert.Equal(t, []string{"TOKEN_CREATE"}, body.ProcessingInformation.ActionList)
		assert.False(t, body.ProcessingInformation.Capture)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"txn_90","status":"AUTHORIZED","tokenInformation":{"paymentInstrument":{"id":"pi_555"}}}`))
	}))
	defer srv.Close()

	exec := connector.NewExecutor(srv.Client(), nopLogger{})
	cfg := &connector.Config{BaseURL: srv.URL + "/", Auth: testAuth()}

	rd := models.RouterData[models.SetupMandate, models.SetupMandateRequestData, models.PaymentsResponseData]{
		ConnectorRequestReferenceID: "ref_mandate",
		Request: models.SetupMandateRequestData{
			Currency:      models.CurrencyUSD,
			PaymentMethod: testCard(),
			FutureUsage:   models.FutureUsageOffSession,
		},
	}

	out, err := connector.Execute(context.Background(), exec, connector.KindWellsfargo,
		NewAdapter().SetupMandate(), cfg, rd)
	require.NoError(t, err)

	require.NotNil(t, out.Response)
	assert.Equal(t, models.AttemptStatusAuthorized, out.Response.Status)
	require.NotNil(t, out.Response.Mandate)
	assert.Equal(t, "pi_555", out.Response.Mandate.ConnectorMandateID)
}

func TestMandateRevoke_Delete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/tms/v1/paymentinstruments/pi_555", r.URL.Path)
		assert.Empty(t, r.Header.Get("Digest"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	exec := connector.NewExecutor(srv.Client(), nopLogger{})
	cfg := &connector.Config{BaseURL: srv.URL + "/", Auth: testAuth()}

	rd := models.RouterData[models.MandateRevoke, models.MandateRevokeData, models.MandateRevokeResponseData]{
		Request: models.MandateRevokeData{ConnectorMandateID: "pi_555"},
	}

	out, err := connector.Execute(context.Background(), exec, connector.KindWellsfargo,
		NewAdapter().MandateRevoke(), cfg, rd)
	require.NoError(t, err)

	require.NotNil(t, out.Response)
	assert.Equal(t, "revoked", out.Response.Status)
}

func TestRegisterCapabilities(t *testing.T) {
	reg := connector.NewCapabilityRegistry()
	RegisterCapabilities(reg)

	assert.True(t, reg.Supports(connector.KindWellsfargo, models.Authorize{}))
	assert.True(t, reg.Supports(connector.KindWellsfargo, models.IncrementalAuthorization{}))
	assert.False(t, reg.Supports(connector.KindWellsfargo, models.CreateOrder{}))

	err := reg.CheckSupported(connector.KindWellsfargo, models.CreateOrder{})
	var connErr *pkgerrors.ConnectorError
	require.True(t, errors.As(err, &connErr))
	assert.Equal(t, pkgerrors.KindNotImplemented, connErr.Kind)
}
