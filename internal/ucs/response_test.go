package ucs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifiedpay/connector-service/internal/domain/models"
)

func paymentRD() models.RouterData[models.Authorize, models.PaymentsAuthorizeData, models.PaymentsResponseData] {
	return models.RouterData[models.Authorize, models.PaymentsAuthorizeData, models.PaymentsResponseData]{
		PaymentID:                   "pay_1",
		ConnectorRequestReferenceID: "ref_1",
	}
}

func idPtr(id Identifier) *Identifier {
	return &id
}

func TestApplyPaymentResponse_Success(t *testing.T) {
	resp := &PaymentServiceResponse{
		TransactionID: idPtr(IdentifierFromID("txn_9")),
		ResponseRefID: idPtr(IdentifierFromID("ref_1")),
		Status:        PaymentStatusCharged,
		NetworkTxnID:  "nt_5",
		MandateReference: &MandateReference{
			ConnectorMandateID: "pi_3",
			PaymentMethodID:    "pm_3",
		},
		ConnectorMetadata: map[string]string{"capture_id": "cap_1"},
		StatusCode:        200,
	}

	out, err := ApplyPaymentResponse(paymentRD(), resp)
	require.NoError(t, err)

	require.NotNil(t, out.Response)
	assert.Nil(t, out.Error)
	assert.Equal(t, models.AttemptStatusCharged, out.Response.Status)
	assert.Equal(t, "txn_9", out.Response.ResourceID)
	assert.Equal(t, "ref_1", out.Response.ConnectorResponseReferenceID)
	assert.Equal(t, "nt_5", out.Response.NetworkTransactionID)
	require.NotNil(t, out.Response.Mandate)
	assert.Equal(t, "pi_3", out.Response.Mandate.ConnectorMandateID)
	assert.Equal(t, "cap_1", out.Response.ConnectorMetadata["capture_id"])
}

func TestApplyPaymentResponse_NoResponseIDMarker(t *testing.T) {
	resp := &PaymentServiceResponse{
		TransactionID: idPtr(NoResponseID()),
		Status:        PaymentStatusPending,
	}

	out, err := ApplyPaymentResponse(paymentRD(), resp)
	require.NoError(t, err)

	require.NotNil(t, out.Response)
	assert.Empty(t, out.Response.ResourceID)
}

func TestApplyPaymentResponse_ErrorWithUnspecifiedStatus(t *testing.T) {
	resp := &PaymentServiceResponse{
		TransactionID: idPtr(IdentifierFromID("txn_9")),
		Status:        PaymentStatusUnspecified,
		ErrorCode:     "card_declined",
		ErrorMessage:  "Card was declined",
		StatusCode:    402,
	}

	out, err := ApplyPaymentResponse(paymentRD(), resp)
	require.NoError(t, err)

	require.NotNil(t, out.Error)
	assert.Nil(t, out.Response)
	assert.Equal(t, "card_declined", out.Error.Code)
	assert.Equal(t, "txn_9", out.Error.ConnectorTransactionID)
	assert.Nil(t, out.Error.AttemptStatus, "unspecified wire status must never be guessed")
}

func TestApplyPaymentResponse_ErrorWithKnownStatus(t *testing.T) {
	resp := &PaymentServiceResponse{
		Status:       PaymentStatusFailure,
		ErrorCode:    "card_declined",
		ErrorMessage: "Card was declined",
	}

	out, err := ApplyPaymentResponse(paymentRD(), resp)
	require.NoError(t, err)

	require.NotNil(t, out.Error)
	require.NotNil(t, out.Error.AttemptStatus)
	assert.Equal(t, models.AttemptStatusFailure, *out.Error.AttemptStatus)
}

func TestApplyPaymentResponse_UnknownStatusIsHardError(t *testing.T) {
	resp := &PaymentServiceResponse{Status: "PAYMENT_STATUS_SOMETHING_NEW"}

	_, err := ApplyPaymentResponse(paymentRD(), resp)
	require.Error(t, err)
}

func TestApplyPaymentResponse_FormRedirect(t *testing.T) {
	resp := &PaymentServiceResponse{
		Status: PaymentStatusAuthenticationPending,
		RedirectionData: &RedirectionData{Form: &RedirectForm{
			Endpoint: "https://acs.example.com/challenge",
			Method:   HTTPMethodPost,
			Fields:   map[string]string{"creq": "abc"},
		}},
	}

	out, err := ApplyPaymentResponse(paymentRD(), resp)
	require.NoError(t, err)

	require.NotNil(t, out.Response.RedirectForm)
	assert.Equal(t, "https://acs.example.com/challenge", out.Response.RedirectForm.URL)
	assert.Equal(t, "POST", out.Response.RedirectForm.Method)
	assert.Nil(t, out.Response.ConnectorMetadata)
}

func TestApplyPaymentResponse_BareURIBecomesSDKMetadata(t *testing.T) {
	resp := &PaymentServiceResponse{
		Status: PaymentStatusAuthenticationPending,
		RedirectionData: &RedirectionData{
			URI: "upi://pay?pa=merchant@bank&am=10.00",
		},
	}

	out, err := ApplyPaymentResponse(paymentRD(), resp)
	require.NoError(t, err)

	assert.Nil(t, out.Response.RedirectForm, "a bare URI never lands in the generic redirect slot")

	sdkInfo, ok := out.Response.ConnectorMetadata[sdkURIInformationKey].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "upi://pay?pa=merchant@bank&am=10.00", sdkInfo["uri"])

	waitScreen, ok := out.Response.ConnectorMetadata[waitScreenInformationKey].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, upiWaitScreenDisplaySeconds, waitScreen["display_duration_seconds"])

	pollConfig, ok := waitScreen["poll_config"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, upiPollDelaySeconds, pollConfig["delay_in_seconds"])
	assert.Equal(t, upiPollFrequencyPerMinute, pollConfig["frequency_per_minute"])
}

func TestApplyPaymentResponse_RefreshesConnectorState(t *testing.T) {
	resp := &PaymentServiceResponse{
		Status: PaymentStatusAuthorized,
		State:  &ConnectorState{AccessToken: "tok_new"},
	}

	rd := paymentRD()
	rd.AccessToken = "tok_old"
	rd.ConnectorCustomerID = "cus_1"

	out, err := ApplyPaymentResponse(rd, resp)
	require.NoError(t, err)

	assert.Equal(t, "tok_new", out.AccessToken)
	assert.Equal(t, "cus_1", out.ConnectorCustomerID, "absent fields keep prior state")
}

func TestApplyCreateOrderResponse(t *testing.T) {
	rd := models.RouterData[models.CreateOrder, models.CreateOrderRequestData, models.CreateOrderResponseData]{}

	out, err := ApplyCreateOrderResponse(rd, &PaymentServiceCreateOrderResponse{
		OrderID: idPtr(IdentifierFromID("ord_1")),
	})
	require.NoError(t, err)
	require.NotNil(t, out.Response)
	assert.Equal(t, "ord_1", out.Response.OrderID)

	_, err = ApplyCreateOrderResponse(rd, &PaymentServiceCreateOrderResponse{
		OrderID: idPtr(NoResponseID()),
	})
	require.Error(t, err, "no-id marker is not an order id")

	out, err = ApplyCreateOrderResponse(rd, &PaymentServiceCreateOrderResponse{
		ErrorCode: "order_failed", ErrorMessage: "no", StatusCode: 400,
	})
	require.NoError(t, err)
	require.NotNil(t, out.Error)
	assert.Equal(t, "order_failed", out.Error.Code)
}

func TestApplyCreateConnectorCustomerResponse_ThreadsCustomerID(t *testing.T) {
	rd := models.RouterData[models.CreateConnectorCustomer, models.ConnectorCustomerData, models.ConnectorCustomerResponseData]{}

	out, err := ApplyCreateConnectorCustomerResponse(rd, &PaymentServiceCreateConnectorCustomerResponse{
		ConnectorCustomerID: idPtr(IdentifierFromID("cus_9")),
	})
	require.NoError(t, err)
	require.NotNil(t, out.Response)
	assert.Equal(t, "cus_9", out.Response.ConnectorCustomerID)
	assert.Equal(t, "cus_9", out.ConnectorCustomerID)
}
