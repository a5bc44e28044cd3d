package connector

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/unifiedpay/connector-service/internal/domain/models"
	"github.com/unifiedpay/connector-service/internal/domain/ports"
	pkgerrors "github.com/unifiedpay/connector-service/pkg/errors"
	"github.com/unifiedpay/connector-service/pkg/observability"
)

// Executor runs integration lifecycles against a shared HTTP client.
// It is stateless apart from its immutable collaborators and safe for
// concurrent use.
type Executor struct {
	client ports.HTTPClient
	logger ports.Logger
}

// NewExecutor creates an executor.
func NewExecutor(client ports.HTTPClient, logger ports.Logger) *Executor {
	return &Executor{client: client, logger: logger}
}

// Execute runs one connector call end to end: build the request, send it,
// and route the raw response through the integration's success or error
// path by status-code class. The returned RouterData is a new value; the
// input is never mutated.
//
// The network call is the only suspension point. Timeouts and retries
// belong to the HTTP client; this layer only interprets a reported outcome.
func Execute[F models.Flow, Req any, Resp any](
	ctx context.Context,
	e *Executor,
	kind Kind,
	integ Integration[F, Req, Resp],
	cfg *Config,
	rd models.RouterData[F, Req, Resp],
) (models.RouterData[F, Req, Resp], error) {
	var flow F
	start := time.Now()

	req, err := integ.BuildRequest(ctx, &rd, cfg)
	if err != nil {
		return rd, err
	}
	if req == nil {
		// Deliberate no-op for this connector and flow.
		e.logger.Debug("connector flow is a no-op",
			ports.String("connector", string(kind)),
			ports.String("flow", flow.FlowName()))
		return rd, nil
	}

	resp, err := e.send(ctx, req)
	if err != nil {
		observability.RecordConnectorCall(string(kind), flow.FlowName(), "network_error", time.Since(start))
		return rd, pkgerrors.NewNetworkError(err)
	}

	e.logger.Info("connector call completed",
		ports.String("connector", string(kind)),
		ports.String("flow", flow.FlowName()),
		ports.String("payment_id", rd.PaymentID),
		ports.Int("status_code", resp.StatusCode),
		ports.Duration("elapsed", time.Since(start)))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		out, err := integ.HandleResponse(&rd, resp)
		if err != nil {
			observability.RecordConnectorCall(string(kind), flow.FlowName(), "deserialization_error", time.Since(start))
			return rd, err
		}
		observability.RecordConnectorCall(string(kind), flow.FlowName(), "success", time.Since(start))
		return out, nil

	case resp.StatusCode >= 500:
		errResp, err := integ.Get5xxErrorResponse(resp)
		if err != nil {
			return rd, err
		}
		errResp.StatusCode = resp.StatusCode
		observability.RecordConnectorCall(string(kind), flow.FlowName(), "server_error", time.Since(start))
		return rd.WithError(errResp), nil

	default:
		errResp, err := integ.GetErrorResponse(resp)
		if err != nil {
			return rd, err
		}
		errResp.StatusCode = resp.StatusCode
		observability.RecordConnectorCall(string(kind), flow.FlowName(), "declined", time.Since(start))
		return rd.WithError(errResp), nil
	}
}

func (e *Executor) send(ctx context.Context, req *Request) (Response, error) {
	var bodyReader io.Reader
	if req.Body != nil {
		bodyReader = bytes.NewReader(req.Body.Bytes())
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		return Response{}, err
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", string(req.Body.Type()))
	}
	for _, h := range req.Headers {
		httpReq.Header.Set(h.Name, h.Value.Expose())
	}

	httpResp, err := e.client.Do(httpReq)
	if err != nil {
		return Response{}, err
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return Response{}, err
	}

	return Response{
		StatusCode: httpResp.StatusCode,
		Body:       body,
		Headers:    httpResp.Header,
	}, nil
}
