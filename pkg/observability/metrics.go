package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

var (
	// Connector call metrics
	connectorCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "connector_calls_total",
			Help: "Total number of connector calls",
		},
		[]string{"connector", "flow", "outcome"},
	)

	connectorCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "connector_call_duration_seconds",
			Help:    "Duration of connector calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"connector", "flow"},
	)

	// UCS client metrics
	ucsRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ucs_requests_total",
			Help: "Total number of unified connector service requests",
		},
		[]string{"method", "status"},
	)

	ucsRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ucs_request_duration_seconds",
			Help:    "Duration of unified connector service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// Attempt store metrics
	attemptStoreOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "attempt_store_operations_total",
			Help: "Total number of attempt store operations",
		},
		[]string{"operation", "outcome"},
	)

	attemptStoreOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "attempt_store_operation_duration_seconds",
			Help:    "Duration of attempt store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// RecordStoreOperation records the outcome and duration of one attempt
// store operation.
func RecordStoreOperation(operation, outcome string, elapsed time.Duration) {
	attemptStoreOpsTotal.WithLabelValues(operation, outcome).Inc()
	attemptStoreOpDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// RecordConnectorCall records the outcome and duration of one connector call.
// Outcome is one of: success, declined, server_error, network_error,
// deserialization_error.
func RecordConnectorCall(connector, flow, outcome string, elapsed time.Duration) {
	connectorCallsTotal.WithLabelValues(connector, flow, outcome).Inc()
	connectorCallDuration.WithLabelValues(connector, flow).Observe(elapsed.Seconds())
}

// UnaryClientInterceptor returns a gRPC unary client interceptor that records
// Prometheus metrics for calls to the unified connector service
func UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply interface{},
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		start := time.Now()

		err := invoker(ctx, method, req, reply, cc, opts...)

		ucsRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())

		statusCode := "OK"
		if err != nil {
			st, _ := status.FromError(err)
			statusCode = st.Code().String()
		}
		ucsRequestsTotal.WithLabelValues(method, statusCode).Inc()

		return err
	}
}
