package secrets

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/unifiedpay/connector-service/internal/connector"
	"github.com/unifiedpay/connector-service/internal/domain/ports"
)

// AWSSourceConfig configures the AWS Secrets Manager credential source.
type AWSSourceConfig struct {
	Region string

	// Profile selects a shared-config profile for local development; empty
	// uses the default credential chain (IAM role in production).
	Profile string

	// Endpoint overrides the service endpoint (LocalStack testing).
	Endpoint string

	// PathPrefix is the secret name prefix, e.g. "connector-service".
	PathPrefix string

	CacheTTL    time.Duration
	EnableCache bool
}

// DefaultAWSSourceConfig returns the standard configuration.
func DefaultAWSSourceConfig(region, pathPrefix string) *AWSSourceConfig {
	return &AWSSourceConfig{
		Region:      region,
		PathPrefix:  pathPrefix,
		CacheTTL:    5 * time.Minute,
		EnableCache: true,
	}
}

// AWSSource resolves connector credentials from AWS Secrets Manager.
type AWSSource struct {
	client *secretsmanager.Client
	config *AWSSourceConfig
	logger ports.Logger
	cache  *credentialCache
}

// NewAWSSource creates the source.
func NewAWSSource(ctx context.Context, cfg *AWSSourceConfig, logger ports.Logger) (*AWSSource, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(cfg.Profile))
	}
	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	clientOptions := []func(*secretsmanager.Options){}
	if cfg.Endpoint != "" {
		clientOptions = append(clientOptions, func(o *secretsmanager.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	logger.Info("AWS secrets manager credential source initialized",
		ports.String("region", cfg.Region),
		ports.Bool("cache_enabled", cfg.EnableCache))

	return &AWSSource{
		client: secretsmanager.NewFromConfig(awsConfig, clientOptions...),
		config: cfg,
		logger: logger,
		cache:  newCredentialCache(cfg.EnableCache, cfg.CacheTTL),
	}, nil
}

// ConnectorCredentials resolves one connector's auth configuration.
func (s *AWSSource) ConnectorCredentials(ctx context.Context, kind connector.Kind) (connector.AuthConfig, error) {
	if auth, ok := s.cache.get(kind); ok {
		return auth, nil
	}

	path := secretPath(s.config.PathPrefix, kind)
	start := time.Now()
	result, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(path),
	})
	if err != nil {
		s.logger.Error("failed to retrieve connector credentials",
			ports.String("connector", string(kind)),
			ports.Err(err))
		return connector.AuthConfig{}, fmt.Errorf("get secret %s: %w", path, err)
	}

	s.logger.Info("connector credentials resolved",
		ports.String("connector", string(kind)),
		ports.Duration("elapsed", time.Since(start)))

	auth, err := parseCredentials([]byte(aws.ToString(result.SecretString)), kind)
	if err != nil {
		return connector.AuthConfig{}, err
	}

	s.cache.set(kind, auth)
	return auth, nil
}
