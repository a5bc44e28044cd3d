package ucs

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/unifiedpay/connector-service/pkg/observability"
)

const serviceName = "/ucs.payments.PaymentService/"

// Client is the unified connector service gRPC client. Safe for concurrent
// use; the underlying connection multiplexes calls.
type Client struct {
	conn    *grpc.ClientConn
	timeout time.Duration
}

// NewClient connects to the unified connector service at target. timeout
// bounds each call unless the caller's context already carries a deadline;
// zero disables the default.
func NewClient(target string, timeout time.Duration) (*Client, error) {
	conn, err := grpc.NewClient(target,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(CallContentSubtype)),
		grpc.WithUnaryInterceptor(observability.UnaryClientInterceptor()),
	)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, timeout: timeout}, nil
}

// Close tears down the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// callContext applies the client default timeout when the caller set none.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Client) invoke(ctx context.Context, method string, req, resp interface{}) error {
	ctx, cancel := c.callContext(ctx)
	defer cancel()
	return c.conn.Invoke(ctx, serviceName+method, req, resp)
}

// Authorize runs the Authorize flow through the service.
func (c *Client) Authorize(ctx context.Context, req *PaymentServiceAuthorizeRequest) (*PaymentServiceResponse, error) {
	var resp PaymentServiceResponse
	if err := c.invoke(ctx, "Authorize", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Capture runs the Capture flow.
func (c *Client) Capture(ctx context.Context, req *PaymentServiceCaptureRequest) (*PaymentServiceResponse, error) {
	var resp PaymentServiceResponse
	if err := c.invoke(ctx, "Capture", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get syncs a payment's current state.
func (c *Client) Get(ctx context.Context, req *PaymentServiceGetRequest) (*PaymentServiceResponse, error) {
	var resp PaymentServiceResponse
	if err := c.invoke(ctx, "Get", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register runs the zero-amount mandate setup flow.
func (c *Client) Register(ctx context.Context, req *PaymentServiceRegisterRequest) (*PaymentServiceResponse, error) {
	var resp PaymentServiceResponse
	if err := c.invoke(ctx, "Register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RepeatEverything charges a stored mandate off-session.
func (c *Client) RepeatEverything(ctx context.Context, req *PaymentServiceRepeatEverythingRequest) (*PaymentServiceResponse, error) {
	var resp PaymentServiceResponse
	if err := c.invoke(ctx, "RepeatEverything", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateOrder creates a connector-side order container.
func (c *Client) CreateOrder(ctx context.Context, req *PaymentServiceCreateOrderRequest) (*PaymentServiceCreateOrderResponse, error) {
	var resp PaymentServiceCreateOrderResponse
	if err := c.invoke(ctx, "CreateOrder", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateConnectorCustomer creates a connector-side customer.
func (c *Client) CreateConnectorCustomer(ctx context.Context, req *PaymentServiceCreateConnectorCustomerRequest) (*PaymentServiceCreateConnectorCustomerResponse, error) {
	var resp PaymentServiceCreateConnectorCustomerResponse
	if err := c.invoke(ctx, "CreateConnectorCustomer", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateSessionToken requests a client session token.
func (c *Client) CreateSessionToken(ctx context.Context, req *PaymentServiceCreateSessionTokenRequest) (*PaymentServiceCreateSessionTokenResponse, error) {
	var resp PaymentServiceCreateSessionTokenResponse
	if err := c.invoke(ctx, "CreateSessionToken", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Authenticate runs the 3DS authenticate step.
func (c *Client) Authenticate(ctx context.Context, req *PaymentServiceAuthenticateRequest) (*PaymentServiceResponse, error) {
	var resp PaymentServiceResponse
	if err := c.invoke(ctx, "Authenticate", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PreAuthenticate runs the 3DS pre-authenticate step.
func (c *Client) PreAuthenticate(ctx context.Context, req *PaymentServiceAuthenticateRequest) (*PaymentServiceResponse, error) {
	var resp PaymentServiceResponse
	if err := c.invoke(ctx, "PreAuthenticate", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PostAuthenticate runs the 3DS post-authenticate step.
func (c *Client) PostAuthenticate(ctx context.Context, req *PaymentServiceAuthenticateRequest) (*PaymentServiceResponse, error) {
	var resp PaymentServiceResponse
	if err := c.invoke(ctx, "PostAuthenticate", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TransformWebhook asks the service to interpret an inbound connector
// webhook.
func (c *Client) TransformWebhook(ctx context.Context, req *WebhookTransformRequest) (*WebhookTransformResponse, error) {
	var resp WebhookTransformResponse
	if err := c.invoke(ctx, "TransformWebhook", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
