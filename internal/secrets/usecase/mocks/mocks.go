// Package mocks provides mock implementations of the secret use case ports for testing.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	secretsDomain "github.com/allisson/secretkeeper/internal/secrets/domain"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockSecretRepository is a mock implementation of SecretRepository.
type MockSecretRepository struct {
	mock.Mock
}

// NewMockSecretRepository creates a MockSecretRepository that asserts its expectations on cleanup.
func NewMockSecretRepository(t testingT) *MockSecretRepository {
	m := &MockSecretRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create mocks the Create method.
func (m *MockSecretRepository) Create(ctx context.Context, secret *secretsDomain.Secret) error {
	return m.Called(ctx, secret).Error(0)
}

// GetLatest mocks the GetLatest method.
func (m *MockSecretRepository) GetLatest(ctx context.Context, name string) (*secretsDomain.Secret, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.Secret), args.Error(1)
}

// UpdateNote mocks the UpdateNote method.
func (m *MockSecretRepository) UpdateNote(
	ctx context.Context,
	id int64,
	note string,
	actor *string,
	at time.Time,
) error {
	return m.Called(ctx, id, note, actor, at).Error(0)
}

// StampLastUsed mocks the StampLastUsed method.
func (m *MockSecretRepository) StampLastUsed(ctx context.Context, id int64, actor *string, at time.Time) error {
	return m.Called(ctx, id, actor, at).Error(0)
}

// ListLatest mocks the ListLatest method.
func (m *MockSecretRepository) ListLatest(ctx context.Context, excluding []string) ([]*secretsDomain.Secret, error) {
	args := m.Called(ctx, excluding)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*secretsDomain.Secret), args.Error(1)
}

// MockSecretUseCase is a mock implementation of SecretUseCase.
type MockSecretUseCase struct {
	mock.Mock
}

// NewMockSecretUseCase creates a MockSecretUseCase that asserts its expectations on cleanup.
func NewMockSecretUseCase(t testingT) *MockSecretUseCase {
	m := &MockSecretUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Resolve mocks the Resolve method.
func (m *MockSecretUseCase) Resolve(ctx context.Context, name string, actor *string) (string, bool, error) {
	args := m.Called(ctx, name, actor)
	return args.String(0), args.Bool(1), args.Error(2)
}

// Set mocks the Set method.
func (m *MockSecretUseCase) Set(
	ctx context.Context,
	input secretsDomain.SetSecretInput,
) (*secretsDomain.SetSecretResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.SetSecretResult), args.Error(1)
}

// List mocks the List method.
func (m *MockSecretUseCase) List(ctx context.Context) (*secretsDomain.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.Listing), args.Error(1)
}

// Describe mocks the Describe method.
func (m *MockSecretUseCase) Describe(ctx context.Context, name string) (*secretsDomain.SecretDetail, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.SecretDetail), args.Error(1)
}
