package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/secretkeeper/internal/auth/domain"
	authService "github.com/allisson/secretkeeper/internal/auth/service"
	apperrors "github.com/allisson/secretkeeper/internal/errors"
	"github.com/allisson/secretkeeper/internal/metrics"
)

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateToken() (string, string, error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockTokenService) HashToken(plainToken string) (string, error) {
	args := m.Called(plainToken)
	return args.String(0), args.Error(1)
}

func (m *mockTokenService) CompareToken(plainToken string, tokenHash string) bool {
	return m.Called(plainToken, tokenHash).Bool(0)
}

type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, op metrics.Operation, status metrics.Status) {
	m.Called(ctx, op, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	op metrics.Operation,
	duration time.Duration,
	status metrics.Status,
) {
	m.Called(ctx, op, duration, status)
}

func TestAdminUseCase_Authenticate(t *testing.T) {
	ctx := context.Background()
	creds := map[string]authDomain.Credential{
		"admin": {Actor: "admin", Hash: "admin-hash"},
	}

	t.Run("Success", func(t *testing.T) {
		svc := &mockTokenService{}
		svc.On("CompareToken", "good", "admin-hash").Return(true).Once()

		actor, err := NewAdminUseCase(creds, svc).Authenticate(ctx, "admin", "good")
		require.NoError(t, err)
		assert.Equal(t, "admin", actor.Name)
		svc.AssertExpectations(t)
	})

	t.Run("Error_WrongToken", func(t *testing.T) {
		svc := &mockTokenService{}
		svc.On("CompareToken", "bad", "admin-hash").Return(false).Once()

		actor, err := NewAdminUseCase(creds, svc).Authenticate(ctx, "admin", "bad")
		assert.Nil(t, actor)
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		svc.AssertExpectations(t)
	})

	t.Run("Error_UnknownActor", func(t *testing.T) {
		svc := &mockTokenService{}

		_, err := NewAdminUseCase(creds, svc).Authenticate(ctx, "mallory", "good")
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
		svc.AssertNotCalled(t, "CompareToken", mock.Anything, mock.Anything)
	})

	t.Run("Error_NoCredentialsConfigured", func(t *testing.T) {
		_, err := NewAdminUseCase(nil, &mockTokenService{}).Authenticate(ctx, "admin", "good")
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
	})
}

func TestAdminUseCase_CreateCredential(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc := &mockTokenService{}
		svc.On("GenerateToken").Return("plain", "hash", nil).Once()

		out, err := NewAdminUseCase(nil, svc).CreateCredential(ctx, "admin")
		require.NoError(t, err)
		assert.Equal(t, "admin:hash", out.Credential.String())
		assert.Equal(t, "plain", out.Token)
	})

	t.Run("Error_InvalidActor", func(t *testing.T) {
		_, err := NewAdminUseCase(nil, &mockTokenService{}).CreateCredential(ctx, "bad actor")
		assert.ErrorIs(t, err, authDomain.ErrInvalidActorName)
	})

	t.Run("Error_GenerateToken", func(t *testing.T) {
		svc := &mockTokenService{}
		svc.On("GenerateToken").Return("", "", errors.New("no entropy")).Once()

		_, err := NewAdminUseCase(nil, svc).CreateCredential(ctx, "admin")
		assert.Error(t, err)
	})
}

func TestAdminUseCase_RoundTripWithRealHasher(t *testing.T) {
	ctx := context.Background()
	svc := authService.NewTokenService()

	out, err := NewAdminUseCase(nil, svc).CreateCredential(ctx, "admin")
	require.NoError(t, err)

	creds, err := authDomain.ParseCredentials(out.Credential.String())
	require.NoError(t, err)

	uc := NewAdminUseCase(creds, svc)
	actor, err := uc.Authenticate(ctx, "admin", out.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", actor.Name)

	_, err = uc.Authenticate(ctx, "admin", out.Token+"x")
	assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
}

func TestAdminUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	svc := &mockTokenService{}
	m := &mockBusinessMetrics{}
	creds := map[string]authDomain.Credential{"admin": {Actor: "admin", Hash: "h"}}

	svc.On("CompareToken", "bad", "h").Return(false).Once()
	m.On("RecordOperation", mock.Anything, metrics.AdminAuthenticate, metrics.StatusError).Once()
	m.On("RecordDuration", mock.Anything, metrics.AdminAuthenticate, mock.AnythingOfType("time.Duration"), metrics.StatusError).
		Once()

	uc := NewAdminUseCaseWithMetrics(NewAdminUseCase(creds, svc), m)
	_, err := uc.Authenticate(ctx, "admin", "bad")
	assert.Error(t, err)

	svc.On("GenerateToken").Return("p", "h2", nil).Once()
	m.On("RecordOperation", mock.Anything, metrics.AdminCredentialCreate, metrics.StatusSuccess).Once()
	m.On("RecordDuration", mock.Anything, metrics.AdminCredentialCreate, mock.AnythingOfType("time.Duration"), metrics.StatusSuccess).
		Once()

	_, err = uc.CreateCredential(ctx, "ops")
	require.NoError(t, err)

	m.AssertExpectations(t)
	svc.AssertExpectations(t)
}
