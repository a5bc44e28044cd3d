package secrets

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/unifiedpay/connector-service/internal/connector"
	"github.com/unifiedpay/connector-service/internal/domain/models"
)

// EnvSource resolves connector credentials from environment variables.
// Intended for local development and CI only; production deployments use
// AWSSource or VaultSource.
//
// Variables follow the pattern CONNECTOR_<KIND>_API_KEY,
// CONNECTOR_<KIND>_API_SECRET and CONNECTOR_<KIND>_MERCHANT_ACCOUNT,
// e.g. CONNECTOR_WELLSFARGO_API_KEY.
type EnvSource struct {
	lookup func(string) (string, bool)
}

// NewEnvSource creates the source reading from the process environment.
func NewEnvSource() *EnvSource {
	return &EnvSource{lookup: os.LookupEnv}
}

// ConnectorCredentials resolves one connector's auth configuration.
func (s *EnvSource) ConnectorCredentials(_ context.Context, kind connector.Kind) (connector.AuthConfig, error) {
	prefix := "CONNECTOR_" + strings.ToUpper(string(kind)) + "_"

	apiKey, ok := s.lookup(prefix + "API_KEY")
	if !ok || apiKey == "" {
		return connector.AuthConfig{}, fmt.Errorf("%sAPI_KEY is not set", prefix)
	}
	apiSecret, ok := s.lookup(prefix + "API_SECRET")
	if !ok || apiSecret == "" {
		return connector.AuthConfig{}, fmt.Errorf("%sAPI_SECRET is not set", prefix)
	}
	merchantAccount, _ := s.lookup(prefix + "MERCHANT_ACCOUNT")

	return connector.AuthConfig{
		APIKey:          models.NewMasked(apiKey),
		APISecret:       models.NewMasked(apiSecret),
		MerchantAccount: merchantAccount,
	}, nil
}
