package connector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifiedpay/connector-service/internal/domain/models"
	"github.com/unifiedpay/connector-service/internal/domain/ports"
	pkgerrors "github.com/unifiedpay/connector-service/pkg/errors"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...ports.Field)  {}
func (nopLogger) Error(string, ...ports.Field) {}
func (nopLogger) Warn(string, ...ports.Field)  {}
func (nopLogger) Debug(string, ...ports.Field) {}

type fakeRequest struct {
	Reference string `json:"reference"`
}

type fakeResponse struct {
	Status string
}

// fakeIntegration is a minimal Integration whose behavior each test
// overrides through the function fields.
type fakeIntegration struct {
	build  func(cfg *Config) (*Request, error)
	handle func(rd *models.RouterData[models.Authorize, fakeRequest, fakeResponse], resp Response) (models.RouterData[models.Authorize, fakeRequest, fakeResponse], error)
	err4xx func(resp Response) (models.ErrorResponse, error)
	err5xx func(resp Response) (models.ErrorResponse, error)
}

func (f *fakeIntegration) GetHeaders(context.Context, *models.RouterData[models.Authorize, fakeRequest, fakeResponse], *Config) ([]Header, error) {
	return nil, nil
}

func (f *fakeIntegration) GetURL(_ *models.RouterData[models.Authorize, fakeRequest, fakeResponse], cfg *Config) (string, error) {
	return cfg.BaseURL, nil
}

func (f *fakeIntegration) GetRequestBody(*models.RouterData[models.Authorize, fakeRequest, fakeResponse], *Config) (*RequestContent, error) {
	return nil, nil
}

func (f *fakeIntegration) BuildRequest(_ context.Context, _ *models.RouterData[models.Authorize, fakeRequest, fakeResponse], cfg *Config) (*Request, error) {
	return f.build(cfg)
}

func (f *fakeIntegration) HandleResponse(rd *models.RouterData[models.Authorize, fakeRequest, fakeResponse], resp Response) (models.RouterData[models.Authorize, fakeRequest, fakeResponse], error) {
	return f.handle(rd, resp)
}

func (f *fakeIntegration) GetErrorResponse(resp Response) (models.ErrorResponse, error) {
	return f.err4xx(resp)
}

func (f *fakeIntegration) Get5xxErrorResponse(resp Response) (models.ErrorResponse, error) {
	return f.err5xx(resp)
}

func postIntegration() *fakeIntegration {
	return &fakeIntegration{
		build: func(cfg *Config) (*Request, error) {
			body, _ := JSONContent(fakeRequest{Reference: "ref_1"})
			return &Request{Method: http.MethodPost, URL: cfg.BaseURL, Body: &body}, nil
		},
		handle: func(rd *models.RouterData[models.Authorize, fakeRequest, fakeResponse], _ Response) (models.RouterData[models.Authorize, fakeRequest, fakeResponse], error) {
			return rd.WithResponse(fakeResponse{Status: "ok"}), nil
		},
		err4xx: func(resp Response) (models.ErrorResponse, error) {
			return models.ErrorResponse{Code: "declined", Reason: string(resp.Body)}, nil
		},
		err5xx: func(resp Response) (models.ErrorResponse, error) {
			return models.ErrorResponse{Code: "server_error", Reason: string(resp.Body)}, nil
		},
	}
}

func execute(t *testing.T, integ *fakeIntegration, baseURL string) (models.RouterData[models.Authorize, fakeRequest, fakeResponse], error) {
	t.Helper()
	exec := NewExecutor(http.DefaultClient, nopLogger{})
	cfg := &Config{BaseURL: baseURL}
	rd := models.RouterData[models.Authorize, fakeRequest, fakeResponse]{
		PaymentID: "pay_1",
		Request:   fakeRequest{Reference: "ref_1"},
	}
	return Execute(context.Background(), exec, KindWellsfargo, integ, cfg, rd)
}

func TestExecute_SuccessRoutesToHandleResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	out, err := execute(t, postIntegration(), server.URL)
	require.NoError(t, err)
	require.NotNil(t, out.Response)
	assert.Equal(t, "ok", out.Response.Status)
	assert.Nil(t, out.Error)
}

func TestExecute_ClientErrorRoutesToErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"reason":"insufficient funds"}`))
	}))
	defer server.Close()

	out, err := execute(t, postIntegration(), server.URL)
	require.NoError(t, err)
	require.NotNil(t, out.Error)
	assert.Equal(t, "declined", out.Error.Code)
	assert.Equal(t, http.StatusPaymentRequired, out.Error.StatusCode)
	assert.Nil(t, out.Response)
}

func TestExecute_ServerErrorRoutesTo5xxPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	out, err := execute(t, postIntegration(), server.URL)
	require.NoError(t, err)
	require.NotNil(t, out.Error)
	assert.Equal(t, "server_error", out.Error.Code)
	assert.Equal(t, http.StatusBadGateway, out.Error.StatusCode)
}

func TestExecute_NilRequestIsNoOp(t *testing.T) {
	integ := postIntegration()
	integ.build = func(*Config) (*Request, error) { return nil, nil }

	out, err := execute(t, integ, "http://unused.invalid")
	require.NoError(t, err)
	assert.Nil(t, out.Response)
	assert.Nil(t, out.Error)
}

func TestExecute_BuildErrorShortCircuits(t *testing.T) {
	integ := postIntegration()
	integ.build = func(*Config) (*Request, error) {
		return nil, pkgerrors.NewMissingRequiredField("connector_transaction_id")
	}

	_, err := execute(t, integ, "http://unused.invalid")
	require.Error(t, err)
	var connErr *pkgerrors.ConnectorError
	require.True(t, errors.As(err, &connErr))
	assert.Equal(t, pkgerrors.KindMissingRequiredField, connErr.Kind)
}

func TestExecute_NetworkFailureIsTyped(t *testing.T) {
	// Closed server: the dial fails before any response exists.
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := execute(t, postIntegration(), url)
	require.Error(t, err)
	var connErr *pkgerrors.ConnectorError
	require.True(t, errors.As(err, &connErr))
	assert.Equal(t, pkgerrors.KindNetworkError, connErr.Kind)
}

func TestCapabilityRegistry(t *testing.T) {
	reg := NewCapabilityRegistry()
	reg.Register(KindWellsfargo, models.Authorize{}, models.Capture{})

	assert.True(t, reg.Supports(KindWellsfargo, models.Authorize{}))
	assert.False(t, reg.Supports(KindWellsfargo, models.Refund{}))
	assert.False(t, reg.Supports(Kind("other"), models.Authorize{}))

	require.NoError(t, reg.CheckSupported(KindWellsfargo, models.Capture{}))

	err := reg.CheckSupported(KindWellsfargo, models.Refund{})
	var connErr *pkgerrors.ConnectorError
	require.True(t, errors.As(err, &connErr))
	assert.Equal(t, pkgerrors.KindNotImplemented, connErr.Kind)

	err = reg.CheckWebhooks(KindWellsfargo)
	require.True(t, errors.As(err, &connErr))
	assert.Equal(t, pkgerrors.KindWebhooksNotImplemented, connErr.Kind)

	reg.RegisterWebhooks(KindWellsfargo)
	require.NoError(t, reg.CheckWebhooks(KindWellsfargo))
}
