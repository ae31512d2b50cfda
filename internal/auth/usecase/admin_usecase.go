package usecase

import (
	"context"

	authDomain "github.com/allisson/secretkeeper/internal/auth/domain"
	authService "github.com/allisson/secretkeeper/internal/auth/service"
)

type adminUseCase struct {
	credentials  map[string]authDomain.Credential
	tokenService authService.TokenService
}

func (a *adminUseCase) Authenticate(_ context.Context, actorName, token string) (*authDomain.Actor, error) {
	credential, ok := a.credentials[actorName]
	if !ok {
		return nil, authDomain.ErrInvalidCredentials
	}
	if !a.tokenService.CompareToken(token, credential.Hash) {
		return nil, authDomain.ErrInvalidCredentials
	}
	return &authDomain.Actor{Name: credential.Actor}, nil
}

func (a *adminUseCase) CreateCredential(
	_ context.Context,
	actorName string,
) (*authDomain.CreateCredentialOutput, error) {
	if err := authDomain.ValidateActorName(actorName); err != nil {
		return nil, err
	}

	plainToken, tokenHash, err := a.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	return &authDomain.CreateCredentialOutput{
		Credential: authDomain.Credential{Actor: actorName, Hash: tokenHash},
		Token:      plainToken,
	}, nil
}

// NewAdminUseCase creates an AdminUseCase over the parsed credential list.
func NewAdminUseCase(
	credentials map[string]authDomain.Credential,
	tokenService authService.TokenService,
) AdminUseCase {
	if credentials == nil {
		credentials = map[string]authDomain.Credential{}
	}
	return &adminUseCase{
		credentials:  credentials,
		tokenService: tokenService,
	}
}
