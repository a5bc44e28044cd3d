// Package http builds the outbound client used for connector calls and
// wraps it with per-connector rate limiting.
package http

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// ClientConfig tunes the outbound connector client. Each connector talks to
// a single gateway host, so the pool is sized for high concurrency toward
// one endpoint rather than broad host distribution.
type ClientConfig struct {
	// Timeout bounds one whole request/response exchange.
	Timeout time.Duration

	// MaxConnsPerHost caps concurrent connections to the gateway;
	// MaxIdleConnsPerHost keeps warm connections for reuse between calls.
	MaxConnsPerHost     int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration

	DialTimeout           time.Duration
	TLSHandshakeTimeout   time.Duration
	ResponseHeaderTimeout time.Duration
}

// ConnectorClientConfig returns the defaults for a payment gateway.
// ResponseHeaderTimeout is generous because card processors can sit on an
// authorization for tens of seconds before answering.
func ConnectorClientConfig() *ClientConfig {
	return &ClientConfig{
		Timeout:               30 * time.Second,
		MaxConnsPerHost:       100,
		MaxIdleConnsPerHost:   50,
		IdleConnTimeout:       90 * time.Second,
		DialTimeout:           10 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
	}
}

// NewClient builds the connector HTTP client from cfg.
func NewClient(cfg *ClientConfig) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: 60 * time.Second,
	}

	transport := &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: dialer.DialContext,

		MaxConnsPerHost:     cfg.MaxConnsPerHost,
		MaxIdleConns:        cfg.MaxIdleConnsPerHost,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,

		TLSHandshakeTimeout:   cfg.TLSHandshakeTimeout,
		ResponseHeaderTimeout: cfg.ResponseHeaderTimeout,
		ExpectContinueTimeout: time.Second,

		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		ForceAttemptHTTP2: true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}
}
