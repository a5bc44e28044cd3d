package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	vault "github.com/hashicorp/vault/api"

	"github.com/unifiedpay/connector-service/internal/connector"
	"github.com/unifiedpay/connector-service/internal/domain/ports"
)

// VaultSourceConfig configures the HashiCorp Vault credential source.
type VaultSourceConfig struct {
	// Address of the Vault server, e.g. "https://vault.example.com:8200".
	Address string

	// AuthMethod is "token" or "approle".
	AuthMethod string
	Token      string
	RoleID     string
	SecretID   string

	// Namespace for Vault Enterprise.
	Namespace string

	// MountPath of the KV v2 secrets engine (default "secret").
	MountPath string

	// PathPrefix is the secret path prefix, e.g. "connector-service".
	PathPrefix string

	CacheTTL    time.Duration
	EnableCache bool

	TLSSkipVerify bool
}

// DefaultVaultSourceConfig returns the standard configuration.
func DefaultVaultSourceConfig(address, pathPrefix string) *VaultSourceConfig {
	return &VaultSourceConfig{
		Address:     address,
		AuthMethod:  "token",
		MountPath:   "secret",
		PathPrefix:  pathPrefix,
		CacheTTL:    5 * time.Minute,
		EnableCache: true,
	}
}

// VaultSource resolves connector credentials from a Vault KV v2 engine.
type VaultSource struct {
	client *vault.Client
	config *VaultSourceConfig
	logger ports.Logger
	cache  *credentialCache
}

// NewVaultSource creates and authenticates the source.
func NewVaultSource(ctx context.Context, cfg *VaultSourceConfig, logger ports.Logger) (*VaultSource, error) {
	vaultConfig := vault.DefaultConfig()
	vaultConfig.Address = cfg.Address

	if cfg.TLSSkipVerify {
		if err := vaultConfig.ConfigureTLS(&vault.TLSConfig{Insecure: true}); err != nil {
			return nil, fmt.Errorf("configure TLS: %w", err)
		}
	}

	client, err := vault.NewClient(vaultConfig)
	if err != nil {
		return nil, fmt.Errorf("create Vault client: %w", err)
	}
	if cfg.Namespace != "" {
		client.SetNamespace(cfg.Namespace)
	}

	if err := authenticate(client, cfg); err != nil {
		return nil, fmt.Errorf("authenticate with Vault: %w", err)
	}

	logger.Info("Vault credential source initialized",
		ports.String("address", cfg.Address),
		ports.String("auth_method", cfg.AuthMethod),
		ports.String("mount_path", cfg.MountPath))

	return &VaultSource{
		client: client,
		config: cfg,
		logger: logger,
		cache:  newCredentialCache(cfg.EnableCache, cfg.CacheTTL),
	}, nil
}

func authenticate(client *vault.Client, cfg *VaultSourceConfig) error {
	switch cfg.AuthMethod {
	case "token":
		if cfg.Token == "" {
			return fmt.Errorf("token is required for token auth")
		}
		client.SetToken(cfg.Token)
		return nil

	case "approle":
		if cfg.RoleID == "" || cfg.SecretID == "" {
			return fmt.Errorf("role_id and secret_id are required for AppRole auth")
		}
		resp, err := client.Logical().Write("auth/approle/login", map[string]interface{}{
			"role_id":   cfg.RoleID,
			"secret_id": cfg.SecretID,
		})
		if err != nil {
			return fmt.Errorf("AppRole login: %w", err)
		}
		if resp.Auth == nil {
			return fmt.Errorf("AppRole login returned no auth info")
		}
		client.SetToken(resp.Auth.ClientToken)
		return nil

	default:
		return fmt.Errorf("unsupported auth method: %s", cfg.AuthMethod)
	}
}

// ConnectorCredentials resolves one connector's auth configuration from
// the KV v2 engine.
func (s *VaultSource) ConnectorCredentials(ctx context.Context, kind connector.Kind) (connector.AuthConfig, error) {
	if auth, ok := s.cache.get(kind); ok {
		return auth, nil
	}

	fullPath := fmt.Sprintf("%s/data/%s", s.config.MountPath, secretPath(s.config.PathPrefix, kind))

	start := time.Now()
	secret, err := s.client.Logical().ReadWithContext(ctx, fullPath)
	if err != nil {
		s.logger.Error("failed to retrieve connector credentials",
			ports.String("connector", string(kind)),
			ports.Err(err))
		return connector.AuthConfig{}, fmt.Errorf("read secret %s: %w", fullPath, err)
	}
	if secret == nil {
		return connector.AuthConfig{}, fmt.Errorf("no credentials stored for connector %s", kind)
	}

	// KV v2 wraps the document in a "data" field.
	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return connector.AuthConfig{}, fmt.Errorf("unexpected secret format for connector %s", kind)
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return connector.AuthConfig{}, fmt.Errorf("re-encode secret data: %w", err)
	}

	s.logger.Info("connector credentials resolved",
		ports.String("connector", string(kind)),
		ports.Duration("elapsed", time.Since(start)))

	auth, err := parseCredentials(raw, kind)
	if err != nil {
		return connector.AuthConfig{}, err
	}

	s.cache.set(kind, auth)
	return auth, nil
}
