package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/unifiedpay/connector-service/internal/adapters/postgres"
	"github.com/unifiedpay/connector-service/internal/adapters/secrets"
	"github.com/unifiedpay/connector-service/internal/adapters/storage"
	"github.com/unifiedpay/connector-service/internal/config"
	"github.com/unifiedpay/connector-service/internal/connector"
	"github.com/unifiedpay/connector-service/internal/connector/wellsfargo"
	"github.com/unifiedpay/connector-service/internal/domain/models"
	"github.com/unifiedpay/connector-service/internal/domain/ports"
	"github.com/unifiedpay/connector-service/internal/logging"
	"github.com/unifiedpay/connector-service/internal/ucs"
	pkghttp "github.com/unifiedpay/connector-service/pkg/http"
	"github.com/unifiedpay/connector-service/pkg/observability"
)

// Dependencies holds the wired connector stack handed to callers of this
// service (dispatch handlers, workers).
type Dependencies struct {
	Executor     *connector.Executor
	Registry     *connector.CapabilityRegistry
	Configs      map[connector.Kind]*connector.Config
	AttemptStore ports.AttemptStore
	UCS          *ucs.Client
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "connector-service: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.Logger.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("starting connector service",
		ports.String("environment", cfg.Environment),
		ports.Int("metrics_port", cfg.Server.MetricsPort))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.Database.URL, postgres.PoolConfig{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	deps, err := initDependencies(ctx, cfg, pool, logger)
	if err != nil {
		return err
	}
	defer deps.UCS.Close()

	logger.Info("connector stack ready",
		ports.String("wellsfargo_base_url", cfg.Connectors.Wellsfargo.BaseURL),
		ports.String("ucs_endpoint", cfg.UCS.Endpoint),
		ports.Bool("wellsfargo_authorize", deps.Registry.Supports(connector.KindWellsfargo, models.Authorize{})))

	healthChecker := observability.NewHealthChecker(pool)
	metricsServer := observability.StartMetricsServer(strconv.Itoa(cfg.Server.MetricsPort), healthChecker, logger)

	<-ctx.Done()
	logger.Info("shutting down")

	if err := observability.ShutdownMetricsServer(metricsServer); err != nil {
		logger.Error("metrics server shutdown", ports.Err(err))
	}

	logger.Info("stopped")
	return nil
}

// initDependencies wires the connector stack: credential resolution, the
// capability registry, the rate-limited HTTP client, and the unified
// connector service client.
func initDependencies(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, logger ports.Logger) (*Dependencies, error) {
	credentialSource, err := buildCredentialSource(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init credential source: %w", err)
	}

	wellsfargoAuth, err := credentialSource.ConnectorCredentials(ctx, connector.KindWellsfargo)
	if err != nil {
		return nil, fmt.Errorf("resolve wellsfargo credentials: %w", err)
	}

	registry := connector.NewCapabilityRegistry()
	wellsfargo.RegisterCapabilities(registry)

	clientConfig := pkghttp.ConnectorClientConfig()
	clientConfig.Timeout = cfg.Connectors.Wellsfargo.Timeout
	httpClient := pkghttp.NewRateLimitedClient(
		pkghttp.NewClient(clientConfig),
		cfg.Connectors.Wellsfargo.RequestsPerSecond,
		cfg.Connectors.Wellsfargo.Burst,
	)

	ucsClient, err := ucs.NewClient(cfg.UCS.Endpoint, cfg.UCS.Timeout)
	if err != nil {
		return nil, fmt.Errorf("connect unified connector service: %w", err)
	}

	return &Dependencies{
		Executor: connector.NewExecutor(httpClient, logger),
		Registry: registry,
		Configs: map[connector.Kind]*connector.Config{
			connector.KindWellsfargo: {
				BaseURL: cfg.Connectors.Wellsfargo.BaseURL,
				Auth:    wellsfargoAuth,
			},
		},
		AttemptStore: storage.NewInstrumentedStore(postgres.NewAttemptRepository(pool), logger),
		UCS:          ucsClient,
	}, nil
}

func buildCredentialSource(ctx context.Context, cfg *config.Config, logger ports.Logger) (secrets.CredentialSource, error) {
	switch cfg.Credentials.Source {
	case "aws":
		awsCfg := secrets.DefaultAWSSourceConfig(cfg.Credentials.AWSRegion, cfg.Credentials.PathPrefix)
		awsCfg.Profile = cfg.Credentials.AWSProfile
		awsCfg.Endpoint = cfg.Credentials.AWSEndpoint
		awsCfg.CacheTTL = cfg.Credentials.CacheTTL
		return secrets.NewAWSSource(ctx, awsCfg, logger)

	case "vault":
		vaultCfg := secrets.DefaultVaultSourceConfig(cfg.Credentials.VaultAddress, cfg.Credentials.PathPrefix)
		vaultCfg.AuthMethod = cfg.Credentials.VaultAuthMethod
		vaultCfg.Token = cfg.Credentials.VaultToken
		vaultCfg.RoleID = cfg.Credentials.VaultRoleID
		vaultCfg.SecretID = cfg.Credentials.VaultSecretID
		vaultCfg.Namespace = cfg.Credentials.VaultNamespace
		vaultCfg.MountPath = cfg.Credentials.VaultMountPath
		vaultCfg.CacheTTL = cfg.Credentials.CacheTTL
		return secrets.NewVaultSource(ctx, vaultCfg, logger)

	default:
		return secrets.NewEnvSource(), nil
	}
}
