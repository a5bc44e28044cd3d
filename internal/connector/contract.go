package connector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/unifiedpay/connector-service/internal/domain/models"
)

// Header is one outgoing HTTP header. Values are Masked because auth headers
// carry credentials; they are exposed only at transmission time.
type Header struct {
	Name  string
	Value models.Masked
}

// ContentType identifies how a request body is serialized.
type ContentType string

const (
	ContentTypeJSON ContentType = "application/json"
	ContentTypeForm ContentType = "application/x-www-form-urlencoded"
)

// RequestContent is a serialized connector request body. The bytes are fixed
// at construction so signing and transmission operate on identical input.
type RequestContent struct {
	contentType ContentType
	body        []byte
}

// JSONContent serializes v as the JSON request body.
func JSONContent(v interface{}) (RequestContent, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return RequestContent{}, fmt.Errorf("marshal request body: %w", err)
	}
	return RequestContent{contentType: ContentTypeJSON, body: body}, nil
}

// FormContent encodes values as a form-urlencoded request body.
func FormContent(values url.Values) RequestContent {
	return RequestContent{contentType: ContentTypeForm, body: []byte(values.Encode())}
}

// Bytes returns the exact bytes that will be transmitted.
func (rc RequestContent) Bytes() []byte {
	return rc.body
}

// Type returns the body content type.
func (rc RequestContent) Type() ContentType {
	return rc.contentType
}

// Request is a fully composed connector HTTP request.
type Request struct {
	Method  string
	URL     string
	Headers []Header
	Body    *RequestContent
}

// Response is the raw connector answer: status code plus unparsed bytes.
// The body is kept verbatim so deserialization failures can preserve it.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// Config is the per-connector runtime configuration an integration needs to
// build requests.
type Config struct {
	BaseURL string
	Auth    AuthConfig
}

// AuthConfig holds connector credentials. The secret is the signing key;
// the merchant account scopes requests connector-side.
type AuthConfig struct {
	APIKey          models.Masked
	APISecret       models.Masked
	MerchantAccount string
}

// Integration is the uniform lifecycle for issuing one connector HTTP call
// and interpreting its result, parameterized by flow. One implementation
// exists per (connector, flow) pair; a connector that doesn't support a flow
// simply has no implementation registered, which surfaces as a typed
// NotImplemented error rather than a silent success.
type Integration[F models.Flow, Req any, Resp any] interface {
	// GetHeaders builds auth headers. Header construction may sign the
	// serialized body, so it executes the body builder internally and must
	// produce byte-identical output to what is actually sent.
	GetHeaders(ctx context.Context, rd *models.RouterData[F, Req, Resp], cfg *Config) ([]Header, error)

	// GetURL builds the full endpoint URL. Pure given config and request.
	GetURL(rd *models.RouterData[F, Req, Resp], cfg *Config) (string, error)

	// GetRequestBody serializes the domain request into the connector wire
	// format. Returns nil for flows that send no body.
	GetRequestBody(rd *models.RouterData[F, Req, Resp], cfg *Config) (*RequestContent, error)

	// BuildRequest composes method + url + headers + body. A nil request
	// with nil error means "this flow is a deliberate no-op for this
	// connector" - distinct from an error.
	BuildRequest(ctx context.Context, rd *models.RouterData[F, Req, Resp], cfg *Config) (*Request, error)

	// HandleResponse deserializes a 2xx response and returns a new
	// RouterData with the response slot populated. The input RouterData is
	// never mutated.
	HandleResponse(rd *models.RouterData[F, Req, Resp], resp Response) (models.RouterData[F, Req, Resp], error)

	// GetErrorResponse interprets a non-2xx, non-5xx response body.
	GetErrorResponse(resp Response) (models.ErrorResponse, error)

	// Get5xxErrorResponse interprets a 5xx response. Separate from
	// GetErrorResponse because 5xx bodies have a different shape and,
	// critically, a different interpretation: a timeout must map to an
	// unknown attempt status (resolved by a follow-up sync), not a
	// confirmed failure.
	Get5xxErrorResponse(resp Response) (models.ErrorResponse, error)
}
