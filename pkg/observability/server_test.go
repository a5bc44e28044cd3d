package observability

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifiedpay/connector-service/internal/domain/ports"
)

type recordingLogger struct {
	mu     sync.Mutex
	errors []string
}

func (l *recordingLogger) Info(string, ...ports.Field)  {}
func (l *recordingLogger) Warn(string, ...ports.Field)  {}
func (l *recordingLogger) Debug(string, ...ports.Field) {}
func (l *recordingLogger) Error(msg string, _ ...ports.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

func (l *recordingLogger) errorCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errors)
}

func TestStartMetricsServer_ServesMetricsAndHealth(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	logger := &recordingLogger{}
	server := StartMetricsServer(strconv.Itoa(port), nil, logger)
	defer ShutdownMetricsServer(server)

	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/metrics")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	resp, err := http.Get(base + "/ready")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Zero(t, logger.errorCount())
}

func TestStartMetricsServer_LogsServeFailure(t *testing.T) {
	// Hold the port so the server cannot bind it.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()
	port := listener.Addr().(*net.TCPAddr).Port

	logger := &recordingLogger{}
	server := StartMetricsServer(strconv.Itoa(port), nil, logger)
	defer server.Close()

	require.Eventually(t, func() bool {
		return logger.errorCount() > 0
	}, 2*time.Second, 20*time.Millisecond)
}
