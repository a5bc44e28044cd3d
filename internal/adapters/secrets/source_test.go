package secrets

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifiedpay/connector-service/internal/connector"
	"github.com/unifiedpay/connector-service/internal/domain/models"
)

func TestParseCredentials(t *testing.T) {
	raw := []byte(`{"api_key":"key_1","api_secret":"c2VjcmV0","merchant_account":"merchant_abc"}`)

	auth, err := parseCredentials(raw, connector.KindWellsfargo)
	require.NoError(t, err)
	assert.Equal(t, "key_1", auth.APIKey.Expose())
	assert.Equal(t, "c2VjcmV0", auth.APISecret.Expose())
	assert.Equal(t, "merchant_abc", auth.MerchantAccount)
}

func TestParseCredentials_MissingFields(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"no api_key", `{"api_secret":"s"}`},
		{"no api_secret", `{"api_key":"k"}`},
		{"not json", `api_key=k`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseCredentials([]byte(tc.raw), connector.KindWellsfargo)
			require.Error(t, err)
		})
	}
}

func TestSecretPath(t *testing.T) {
	assert.Equal(t, "connector-service/connectors/wellsfargo",
		secretPath("connector-service", connector.KindWellsfargo))
}

func TestCredentialCache_TTL(t *testing.T) {
	cache := newCredentialCache(true, 50*time.Millisecond)
	auth := connector.AuthConfig{APIKey: models.NewMasked("k")}

	_, ok := cache.get(connector.KindWellsfargo)
	assert.False(t, ok)

	cache.set(connector.KindWellsfargo, auth)
	got, ok := cache.get(connector.KindWellsfargo)
	require.True(t, ok)
	assert.Equal(t, "k", got.APIKey.Expose())

	time.Sleep(60 * time.Millisecond)
	_, ok = cache.get(connector.KindWellsfargo)
	assert.False(t, ok)
}

func TestCredentialCache_Disabled(t *testing.T) {
	cache := newCredentialCache(false, time.Minute)
	cache.set(connector.KindWellsfargo, connector.AuthConfig{APIKey: models.NewMasked("k")})

	_, ok := cache.get(connector.KindWellsfargo)
	assert.False(t, ok)
}

func TestEnvSource(t *testing.T) {
	env := map[string]string{
		"CONNECTOR_WELLSFARGO_API_KEY":          "key_1",
		"CONNECTOR_WELLSFARGO_API_SECRET":       "secret_1",
		"CONNECTOR_WELLSFARGO_MERCHANT_ACCOUNT": "merchant_abc",
	}
	source := &EnvSource{lookup: func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}}

	auth, err := source.ConnectorCredentials(context.Background(), connector.KindWellsfargo)
	require.NoError(t, err)
	assert.Equal(t, "key_1", auth.APIKey.Expose())
	assert.Equal(t, "secret_1", auth.APISecret.Expose())
	assert.Equal(t, "merchant_abc", auth.MerchantAccount)
}

func TestEnvSource_MissingSecret(t *testing.T) {
	source := &EnvSource{lookup: func(string) (string, bool) { return "", false }}

	_, err := source.ConnectorCredentials(context.Background(), connector.KindWellsfargo)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CONNECTOR_WELLSFARGO_API_KEY")
}
