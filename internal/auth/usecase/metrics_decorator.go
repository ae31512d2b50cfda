package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/secretkeeper/internal/auth/domain"
	"github.com/allisson/secretkeeper/internal/metrics"
)

// adminUseCaseWithMetrics decorates AdminUseCase with metrics instrumentation.
type adminUseCaseWithMetrics struct {
	next    AdminUseCase
	metrics metrics.BusinessMetrics
}

// NewAdminUseCaseWithMetrics wraps an AdminUseCase with metrics recording.
func NewAdminUseCaseWithMetrics(useCase AdminUseCase, m metrics.BusinessMetrics) AdminUseCase {
	return &adminUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Authenticate records metrics for authentication attempts.
func (a *adminUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	actorName, token string,
) (*authDomain.Actor, error) {
	start := time.Now()
	actor, err := a.next.Authenticate(ctx, actorName, token)
	metrics.Observe(ctx, a.metrics, metrics.AdminAuthenticate, start, err)

	return actor, err
}

// CreateCredential records metrics for credential generation.
func (a *adminUseCaseWithMetrics) CreateCredential(
	ctx context.Context,
	actorName string,
) (*authDomain.CreateCredentialOutput, error) {
	start := time.Now()
	output, err := a.next.CreateCredential(ctx, actorName)
	metrics.Observe(ctx, a.metrics, metrics.AdminCredentialCreate, start, err)

	return output, err
}
