package app

import (
	"fmt"

	authDomain "github.com/allisson/secretkeeper/internal/auth/domain"
	authService "github.com/allisson/secretkeeper/internal/auth/service"
	authUseCase "github.com/allisson/secretkeeper/internal/auth/usecase"
)

// TokenService returns the admin token hashing service.
func (c *Container) TokenService() authService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = authService.NewTokenService()
	})
	return c.tokenService
}

// AdminUseCase returns the admin authentication use case.
func (c *Container) AdminUseCase() (authUseCase.AdminUseCase, error) {
	var err error
	c.adminUseCaseInit.Do(func() {
		c.adminUseCase, err = c.initAdminUseCase()
		if err != nil {
			c.initErrors["adminUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["adminUseCase"]; exists {
		return nil, storedErr
	}
	return c.adminUseCase, nil
}

// initAdminUseCase parses ADMIN_CREDENTIALS. An empty list is valid and rejects every request.
func (c *Container) initAdminUseCase() (authUseCase.AdminUseCase, error) {
	credentials, err := authDomain.ParseCredentials(c.config.AdminCredentials)
	if err != nil {
		return nil, fmt.Errorf("failed to parse admin credentials: %w", err)
	}

	if len(credentials) == 0 {
		c.Logger().Warn("no admin credentials configured, the admin API will reject every request")
	}

	baseUseCase := authUseCase.NewAdminUseCase(credentials, c.TokenService())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for admin use case: %w", err)
		}
		return authUseCase.NewAdminUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
