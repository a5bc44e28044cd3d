// Package secrets resolves connector credentials from secret stores.
// Credentials are resolved at startup and cached; rotation is picked up on
// cache expiry, not pushed.
package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/unifiedpay/connector-service/internal/connector"
	"github.com/unifiedpay/connector-service/internal/domain/models"
)

// CredentialSource resolves the auth configuration for a connector.
type CredentialSource interface {
	ConnectorCredentials(ctx context.Context, kind connector.Kind) (connector.AuthConfig, error)
}

// credentialPayload is the JSON document stored per connector in the
// secret backend.
type credentialPayload struct {
	APIKey          string `json:"api_key"`
	APISecret       string `json:"api_secret"`
	MerchantAccount string `json:"merchant_account"`
}

func parseCredentials(raw []byte, kind connector.Kind) (connector.AuthConfig, error) {
	var payload credentialPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return connector.AuthConfig{}, fmt.Errorf("parse credentials for %s: %w", kind, err)
	}
	if payload.APIKey == "" || payload.APISecret == "" {
		return connector.AuthConfig{}, fmt.Errorf("credentials for %s are missing api_key or api_secret", kind)
	}
	return connector.AuthConfig{
		APIKey:          models.NewMasked(payload.APIKey),
		APISecret:       models.NewMasked(payload.APISecret),
		MerchantAccount: payload.MerchantAccount,
	}, nil
}

// secretPath is where a connector's credential document lives in the
// backend.
func secretPath(prefix string, kind connector.Kind) string {
	return fmt.Sprintf("%s/connectors/%s", prefix, kind)
}

// credentialCache is a TTL cache over resolved credentials.
type credentialCache struct {
	mu      sync.RWMutex
	entries map[connector.Kind]*cacheEntry
	enabled bool
	ttl     time.Duration
}

type cacheEntry struct {
	auth      connector.AuthConfig
	expiresAt time.Time
}

func newCredentialCache(enabled bool, ttl time.Duration) *credentialCache {
	return &credentialCache{
		entries: make(map[connector.Kind]*cacheEntry),
		enabled: enabled,
		ttl:     ttl,
	}
}

func (c *credentialCache) get(kind connector.Kind) (connector.AuthConfig, bool) {
	if !c.enabled {
		return connector.AuthConfig{}, false
	}
	c.mu.RLock()
	entry, ok := c.entries[kind]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return connector.AuthConfig{}, false
	}
	return entry.auth, true
}

func (c *credentialCache) set(kind connector.Kind, auth connector.AuthConfig) {
	if !c.enabled {
		return
	}
	c.mu.Lock()
	c.entries[kind] = &cacheEntry{auth: auth, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}
