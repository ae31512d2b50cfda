package usecase

import (
	"context"
	"time"

	"github.com/allisson/secretkeeper/internal/metrics"
	secretsDomain "github.com/allisson/secretkeeper/internal/secrets/domain"
)

// secretUseCaseWithMetrics decorates SecretUseCase with metrics instrumentation.
type secretUseCaseWithMetrics struct {
	next    SecretUseCase
	metrics metrics.BusinessMetrics
}

// NewSecretUseCaseWithMetrics wraps a SecretUseCase with metrics recording.
func NewSecretUseCaseWithMetrics(useCase SecretUseCase, m metrics.BusinessMetrics) SecretUseCase {
	return &secretUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Resolve records metrics for secret resolution. An absent secret counts as success.
func (s *secretUseCaseWithMetrics) Resolve(ctx context.Context, name string, actor *string) (string, bool, error) {
	start := time.Now()
	value, found, err := s.next.Resolve(ctx, name, actor)
	metrics.Observe(ctx, s.metrics, metrics.SecretResolve, start, err)
	return value, found, err
}

// Set records metrics for secret writes.
func (s *secretUseCaseWithMetrics) Set(
	ctx context.Context,
	input secretsDomain.SetSecretInput,
) (*secretsDomain.SetSecretResult, error) {
	start := time.Now()
	result, err := s.next.Set(ctx, input)
	metrics.Observe(ctx, s.metrics, metrics.SecretSet, start, err)
	return result, err
}

// List records metrics for listings.
func (s *secretUseCaseWithMetrics) List(ctx context.Context) (*secretsDomain.Listing, error) {
	start := time.Now()
	listing, err := s.next.List(ctx)
	metrics.Observe(ctx, s.metrics, metrics.SecretList, start, err)
	return listing, err
}

// Describe records metrics for detail lookups.
func (s *secretUseCaseWithMetrics) Describe(ctx context.Context, name string) (*secretsDomain.SecretDetail, error) {
	start := time.Now()
	detail, err := s.next.Describe(ctx, name)
	metrics.Observe(ctx, s.metrics, metrics.SecretDescribe, start, err)
	return detail, err
}
