// Package mocks provides mock implementations of the admin authentication ports for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/secretkeeper/internal/auth/domain"
)

// MockAdminUseCase is a mock implementation of usecase.AdminUseCase.
type MockAdminUseCase struct {
	mock.Mock
}

// NewMockAdminUseCase creates a MockAdminUseCase that asserts its expectations on cleanup.
func NewMockAdminUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAdminUseCase {
	m := &MockAdminUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Authenticate mocks the Authenticate method.
func (m *MockAdminUseCase) Authenticate(ctx context.Context, actorName, token string) (*authDomain.Actor, error) {
	args := m.Called(ctx, actorName, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Actor), args.Error(1)
}

// CreateCredential mocks the CreateCredential method.
func (m *MockAdminUseCase) CreateCredential(
	ctx context.Context,
	actorName string,
) (*authDomain.CreateCredentialOutput, error) {
	args := m.Called(ctx, actorName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.CreateCredentialOutput), args.Error(1)
}
