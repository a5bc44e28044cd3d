// Package config loads service configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	UCS         UCSConfig
	Connectors  ConnectorsConfig
	Credentials CredentialsConfig
	Logger      LoggerConfig
}

// ServerConfig holds the operational HTTP surface (metrics + health).
type ServerConfig struct {
	MetricsPort int
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL      string
	MaxConns int32
	MinConns int32
}

// UCSConfig holds the unified connector service gRPC endpoint
type UCSConfig struct {
	Endpoint string
	Timeout  time.Duration
}

// ConnectorsConfig holds per-connector settings
type ConnectorsConfig struct {
	Wellsfargo ConnectorConfig
}

// ConnectorConfig holds one connector's runtime settings
type ConnectorConfig struct {
	BaseURL string
	Timeout time.Duration
	// Rate limiting toward the connector
	RequestsPerSecond float64
	Burst             int
}

// CredentialsConfig selects and configures the credential source
type CredentialsConfig struct {
	// Source is "aws", "vault" or "env"
	Source     string
	PathPrefix string

	// AWS Secrets Manager
	AWSRegion   string
	AWSProfile  string
	AWSEndpoint string

	// HashiCorp Vault
	VaultAddress    string
	VaultAuthMethod string
	VaultToken      string
	VaultRoleID     string
	VaultSecretID   string
	VaultNamespace  string
	VaultMountPath  string

	CacheTTL time.Duration
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level string // debug, info, warn, error
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			MetricsPort: getEnvAsInt("METRICS_PORT", 9090),
		},
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			MaxConns: int32(getEnvAsInt("DB_MAX_CONNS", 25)),
			MinConns: int32(getEnvAsInt("DB_MIN_CONNS", 5)),
		},
		UCS: UCSConfig{
			Endpoint: getEnv("UCS_ENDPOINT", ""),
			Timeout:  getEnvAsDuration("UCS_TIMEOUT_SECONDS", 30),
		},
		Connectors: ConnectorsConfig{
			Wellsfargo: ConnectorConfig{
				BaseURL:           getEnv("WELLSFARGO_BASE_URL", "https://apitest.cybersource.com/"),
				Timeout:           getEnvAsDuration("WELLSFARGO_TIMEOUT_SECONDS", 30),
				RequestsPerSecond: getEnvAsFloat("WELLSFARGO_RPS", 10),
				Burst:             getEnvAsInt("WELLSFARGO_BURST", 20),
			},
		},
		Credentials: CredentialsConfig{
			Source:          getEnv("CREDENTIAL_SOURCE", "env"),
			PathPrefix:      getEnv("CREDENTIAL_PATH_PREFIX", "connector-service"),
			AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
			AWSProfile:      getEnv("AWS_PROFILE", ""),
			AWSEndpoint:     getEnv("AWS_SECRETS_ENDPOINT", ""),
			VaultAddress:    getEnv("VAULT_ADDR", ""),
			VaultAuthMethod: getEnv("VAULT_AUTH_METHOD", "token"),
			VaultToken:      getEnv("VAULT_TOKEN", ""),
			VaultRoleID:     getEnv("VAULT_ROLE_ID", ""),
			VaultSecretID:   getEnv("VAULT_SECRET_ID", ""),
			VaultNamespace:  getEnv("VAULT_NAMESPACE", ""),
			VaultMountPath:  getEnv("VAULT_MOUNT_PATH", "secret"),
			CacheTTL:        getEnvAsDuration("CREDENTIAL_CACHE_TTL_SECONDS", 300),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	// Validate required fields
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.UCS.Endpoint == "" {
		return nil, fmt.Errorf("UCS_ENDPOINT is required")
	}
	switch cfg.Credentials.Source {
	case "aws", "vault", "env":
	default:
		return nil, fmt.Errorf("CREDENTIAL_SOURCE must be aws, vault or env, got %q", cfg.Credentials.Source)
	}
	if cfg.Credentials.Source == "vault" && cfg.Credentials.VaultAddress == "" {
		return nil, fmt.Errorf("VAULT_ADDR is required when CREDENTIAL_SOURCE=vault")
	}

	return cfg, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvAsInt(key, defaultSeconds)) * time.Second
}
