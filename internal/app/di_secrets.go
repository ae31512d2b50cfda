package app

import (
	"fmt"
	"log/slog"

	cryptoService "github.com/allisson/secretkeeper/internal/crypto/service"
	"github.com/allisson/secretkeeper/internal/database"
	secretsHTTP "github.com/allisson/secretkeeper/internal/secrets/http"
	secretsRepository "github.com/allisson/secretkeeper/internal/secrets/repository"
	secretsService "github.com/allisson/secretkeeper/internal/secrets/service"
	secretsUseCase "github.com/allisson/secretkeeper/internal/secrets/usecase"
)

// RegisterDeclarationProviders adds providers to the secret catalog, in order.
// It must be called before the catalog is first used.
func (c *Container) RegisterDeclarationProviders(providers ...secretsService.DeclarationProvider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.providers = append(c.providers, providers...)
}

// Envelope returns the crypto envelope, or nil when no encryption key is configured.
func (c *Container) Envelope() (cryptoService.Envelope, error) {
	var err error
	c.envelopeInit.Do(func() {
		c.envelope, err = c.initEnvelope()
		if err != nil {
			c.initErrors["envelope"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["envelope"]; exists {
		return nil, storedErr
	}
	return c.envelope, nil
}

// Catalog returns the catalog of declared secrets.
func (c *Container) Catalog() *secretsService.Catalog {
	c.catalogInit.Do(func() {
		c.mu.Lock()
		providers := append([]secretsService.DeclarationProvider(nil), c.providers...)
		c.mu.Unlock()
		c.catalog = secretsService.NewCatalog(providers...)
	})
	return c.catalog
}

// SecretRepository returns the secret repository for the store driver, or nil when
// the store is not configured.
func (c *Container) SecretRepository() (secretsUseCase.SecretRepository, error) {
	var err error
	c.secretRepositoryInit.Do(func() {
		c.secretRepository, err = c.initSecretRepository()
		if err != nil {
			c.initErrors["secretRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretRepository"]; exists {
		return nil, storedErr
	}
	return c.secretRepository, nil
}

// SecretUseCase returns the secret use case.
func (c *Container) SecretUseCase() (secretsUseCase.SecretUseCase, error) {
	var err error
	c.secretUseCaseInit.Do(func() {
		c.secretUseCase, err = c.initSecretUseCase()
		if err != nil {
			c.initErrors["secretUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretUseCase"]; exists {
		return nil, storedErr
	}
	return c.secretUseCase, nil
}

// EnvironmentSecretUseCase returns a secret use case that reads environment overrides only.
// It never opens the store, so an override still resolves when the store is unreachable.
func (c *Container) EnvironmentSecretUseCase() secretsUseCase.SecretUseCase {
	return secretsUseCase.NewSecretUseCase(
		nil,
		nil,
		nil,
		c.Catalog(),
		c.config.EnvOverridePrefix,
		nil,
		c.Logger(),
	)
}

// SecretHandler returns the HTTP handler for secret management operations.
func (c *Container) SecretHandler() (*secretsHTTP.SecretHandler, error) {
	var err error
	c.secretHandlerInit.Do(func() {
		c.secretHandler, err = c.initSecretHandler()
		if err != nil {
			c.initErrors["secretHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretHandler"]; exists {
		return nil, storedErr
	}
	return c.secretHandler, nil
}

// initEnvelope parses the configured key and algorithm.
func (c *Container) initEnvelope() (cryptoService.Envelope, error) {
	if !c.config.StoreConfigured() {
		return nil, nil
	}

	envelope, err := cryptoService.NewEnvelopeFromText(
		c.config.StoreEncryptionKey,
		c.config.StoreEncryptionAlgorithm,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load store encryption key: %w", err)
	}

	c.Logger().Info("secret store encryption enabled",
		slog.String("key_name", envelope.KeyName()),
		slog.String("algorithm", string(envelope.Algorithm())),
	)
	return envelope, nil
}

// initSecretRepository creates the secret repository based on the store driver.
func (c *Container) initSecretRepository() (secretsUseCase.SecretRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for secret repository: %w", err)
	}
	if db == nil {
		return nil, nil
	}

	switch driver := c.config.StoreDriver(); driver {
	case database.DriverPostgres:
		return secretsRepository.NewPostgreSQLSecretRepository(db), nil
	case database.DriverMySQL:
		return secretsRepository.NewMySQLSecretRepository(db), nil
	case database.DriverSQLite:
		return secretsRepository.NewSQLiteSecretRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// initSecretUseCase creates the secret use case with all its dependencies.
func (c *Container) initSecretUseCase() (secretsUseCase.SecretUseCase, error) {
	envelope, err := c.Envelope()
	if err != nil {
		return nil, fmt.Errorf("failed to get envelope for secret use case: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for secret use case: %w", err)
	}

	secretRepository, err := c.SecretRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret repository for secret use case: %w", err)
	}

	baseUseCase := secretsUseCase.NewSecretUseCase(
		txManager,
		secretRepository,
		envelope,
		c.Catalog(),
		c.config.EnvOverridePrefix,
		nil,
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for secret use case: %w", err)
		}
		return secretsUseCase.NewSecretUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initSecretHandler creates the secret HTTP handler with all its dependencies.
func (c *Container) initSecretHandler() (*secretsHTTP.SecretHandler, error) {
	secretUseCase, err := c.SecretUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret use case for secret handler: %w", err)
	}

	return secretsHTTP.NewSecretHandler(secretUseCase, c.Logger()), nil
}
