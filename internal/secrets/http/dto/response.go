package dto

import (
	"time"

	secretsDomain "github.com/allisson/secretkeeper/internal/secrets/domain"
)

// SecretResponse is stored version metadata. Values and ciphertext are never included.
type SecretResponse struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	Version           int        `json:"version"`
	Note              string     `json:"note"`
	EncryptionKeyName string     `json:"encryption_key_name"`
	CreatedAt         time.Time  `json:"created_at"`
	CreatedBy         *string    `json:"created_by"`
	UpdatedAt         time.Time  `json:"updated_at"`
	UpdatedBy         *string    `json:"updated_by"`
	LastUsedAt        *time.Time `json:"last_used_at"`
	LastUsedBy        *string    `json:"last_used_by"`
}

// DeclarationResponse is a declared secret name.
type DeclarationResponse struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ObtainURL   string `json:"obtain_url,omitempty"`
	ObtainLabel string `json:"obtain_label,omitempty"`
}

// EnvironmentSecretResponse is a declared secret supplied by an override variable.
type EnvironmentSecretResponse struct {
	DeclarationResponse
	Variable string `json:"variable"`
}

// StoredSecretResponse is the latest stored version of a name.
type StoredSecretResponse struct {
	Declaration *DeclarationResponse `json:"declaration"`
	Secret      SecretResponse       `json:"secret"`
}

// ListSecretsResponse groups secrets by where their value comes from.
type ListSecretsResponse struct {
	Environment []EnvironmentSecretResponse `json:"environment"`
	Stored      []StoredSecretResponse      `json:"stored"`
	Unset       []DeclarationResponse       `json:"unset"`
}

// SecretDetailResponse describes one name.
type SecretDetailResponse struct {
	Name                string               `json:"name"`
	Declaration         *DeclarationResponse `json:"declaration"`
	EnvironmentVariable string               `json:"environment_variable"`
	EnvironmentSet      bool                 `json:"environment_set"`
	Latest              *SecretResponse      `json:"latest"`
}

// SetSecretResponse is returned by POST /v1/secrets/:name.
type SetSecretResponse struct {
	SecretResponse
	NoteOnly bool `json:"note_only"`
}

// MapSecretToResponse converts a domain secret to its metadata response.
func MapSecretToResponse(secret *secretsDomain.Secret) SecretResponse {
	return SecretResponse{
		ID:                secret.ID,
		Name:              secret.Name,
		Version:           secret.Version,
		Note:              secret.Note,
		EncryptionKeyName: secret.EncryptionKeyName,
		CreatedAt:         secret.CreatedAt,
		CreatedBy:         secret.CreatedBy,
		UpdatedAt:         secret.UpdatedAt,
		UpdatedBy:         secret.UpdatedBy,
		LastUsedAt:        secret.LastUsedAt,
		LastUsedBy:        secret.LastUsedBy,
	}
}

// MapDeclarationToResponse converts a declaration.
func MapDeclarationToResponse(decl secretsDomain.Declaration) DeclarationResponse {
	return DeclarationResponse{
		Name:        decl.Name,
		Description: decl.Description,
		ObtainURL:   decl.ObtainURL,
		ObtainLabel: decl.ObtainLabel,
	}
}

func mapDeclarationPtr(decl *secretsDomain.Declaration) *DeclarationResponse {
	if decl == nil {
		return nil
	}
	resp := MapDeclarationToResponse(*decl)
	return &resp
}

// MapListingToResponse converts a listing.
func MapListingToResponse(listing *secretsDomain.Listing) ListSecretsResponse {
	resp := ListSecretsResponse{
		Environment: make([]EnvironmentSecretResponse, 0, len(listing.Environment)),
		Stored:      make([]StoredSecretResponse, 0, len(listing.Stored)),
		Unset:       make([]DeclarationResponse, 0, len(listing.Unset)),
	}

	for _, env := range listing.Environment {
		resp.Environment = append(resp.Environment, EnvironmentSecretResponse{
			DeclarationResponse: MapDeclarationToResponse(env.Declaration),
			Variable:            env.Variable,
		})
	}
	for _, stored := range listing.Stored {
		resp.Stored = append(resp.Stored, StoredSecretResponse{
			Declaration: mapDeclarationPtr(stored.Declaration),
			Secret:      MapSecretToResponse(stored.Secret),
		})
	}
	for _, decl := range listing.Unset {
		resp.Unset = append(resp.Unset, MapDeclarationToResponse(decl))
	}

	return resp
}

// MapDetailToResponse converts a secret detail.
func MapDetailToResponse(detail *secretsDomain.SecretDetail) SecretDetailResponse {
	resp := SecretDetailResponse{
		Name:                detail.Name,
		Declaration:         mapDeclarationPtr(detail.Declaration),
		EnvironmentVariable: detail.EnvironmentVariable,
		EnvironmentSet:      detail.EnvironmentSet,
	}
	if detail.Latest != nil {
		latest := MapSecretToResponse(detail.Latest)
		resp.Latest = &latest
	}
	return resp
}

// MapSetResultToResponse converts the result of a write.
func MapSetResultToResponse(result *secretsDomain.SetSecretResult) SetSecretResponse {
	return SetSecretResponse{
		SecretResponse: MapSecretToResponse(result.Secret),
		NoteOnly:       result.NoteOnly,
	}
}
