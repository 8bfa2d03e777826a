package app

import (
	"fmt"
	"sync"

	"github.com/allisson/onetime/internal/config"
	"github.com/allisson/onetime/internal/metrics"
	secretsHTTP "github.com/allisson/onetime/internal/secrets/http"
	secretsRepository "github.com/allisson/onetime/internal/secrets/repository"
	secretsUseCase "github.com/allisson/onetime/internal/secrets/usecase"
)

// secretsComponents holds the one-time secret components.
type secretsComponents struct {
	secretRepository secretsUseCase.SecretRepository
	secretUseCase    secretsUseCase.SecretUseCase
	secretHandler    *secretsHTTP.SecretHandler

	secretRepositoryInit sync.Once
	secretUseCaseInit    sync.Once
	secretHandlerInit    sync.Once
}

// SecretRepository returns the secret store selected by STORE_DRIVER.
func (c *Container) SecretRepository() (secretsUseCase.SecretRepository, error) {
	var err error
	c.secretRepositoryInit.Do(func() {
		c.secretRepository, err = c.initSecretRepository()
		if err != nil {
			c.setInitError("secretRepository", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("secretRepository"); storedErr != nil {
		return nil, storedErr
	}
	return c.secretRepository, nil
}

// SecretUseCase returns the secret use case, wrapped with business metrics when enabled.
func (c *Container) SecretUseCase() (secretsUseCase.SecretUseCase, error) {
	var err error
	c.secretUseCaseInit.Do(func() {
		c.secretUseCase, err = c.initSecretUseCase()
		if err != nil {
			c.setInitError("secretUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("secretUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.secretUseCase, nil
}

// SecretHandler returns the HTTP handler for one-time secret operations.
func (c *Container) SecretHandler() (*secretsHTTP.SecretHandler, error) {
	var err error
	c.secretHandlerInit.Do(func() {
		c.secretHandler, err = c.initSecretHandler()
		if err != nil {
			c.setInitError("secretHandler", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("secretHandler"); storedErr != nil {
		return nil, storedErr
	}
	return c.secretHandler, nil
}

// initSecretRepository creates the store for the configured driver.
func (c *Container) initSecretRepository() (secretsUseCase.SecretRepository, error) {
	switch c.config.StoreDriver {
	case config.StoreDriverRedis:
		client, err := c.RedisClient()
		if err != nil {
			return nil, fmt.Errorf("failed to get redis client for secret repository: %w", err)
		}
		return secretsRepository.NewRedisSecretRepository(client, c.config.RedisKeyPrefix), nil
	case config.StoreDriverMemory:
		c.Logger().Warn("using in-memory secret store, secrets are lost on restart")
		return secretsRepository.NewMemorySecretRepository(), nil
	case config.StoreDriverPostgres:
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for secret repository: %w", err)
		}
		return secretsRepository.NewPostgreSQLSecretRepository(db), nil
	case config.StoreDriverMySQL:
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for secret repository: %w", err)
		}
		txManager, err := c.TxManager()
		if err != nil {
			return nil, fmt.Errorf("failed to get tx manager for secret repository: %w", err)
		}
		return secretsRepository.NewMySQLSecretRepository(db, txManager), nil
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", c.config.StoreDriver)
	}
}

// initSecretUseCase wires the crypto services and store into the use case.
func (c *Container) initSecretUseCase() (secretsUseCase.SecretUseCase, error) {
	secretRepository, err := c.SecretRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret repository for secret use case: %w", err)
	}

	useCase := secretsUseCase.NewSecretUseCase(
		secretRepository,
		c.KeyDeriver(),
		c.NonceGenerator(),
		c.AEADManager(),
	)

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for secret use case: %w", err)
	}
	if metricsProvider == nil {
		return useCase, nil
	}

	businessMetrics, err := metrics.NewBusinessMetrics(
		metricsProvider.MeterProvider(),
		c.config.MetricsNamespace,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}

	return secretsUseCase.NewSecretUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initSecretHandler creates the HTTP handler for secrets.
func (c *Container) initSecretHandler() (*secretsHTTP.SecretHandler, error) {
	useCase, err := c.SecretUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret use case for secret handler: %w", err)
	}

	return secretsHTTP.NewSecretHandler(
		useCase,
		c.config.SecretMaxSizeBytes,
		c.config.PublicBaseURL,
		c.Logger(),
	), nil
}
