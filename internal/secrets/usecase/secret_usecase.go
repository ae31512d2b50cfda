package usecase

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	cryptoDomain "github.com/allisson/secretkeeper/internal/crypto/domain"
	cryptoService "github.com/allisson/secretkeeper/internal/crypto/service"
	"github.com/allisson/secretkeeper/internal/database"
	apperrors "github.com/allisson/secretkeeper/internal/errors"
	secretsDomain "github.com/allisson/secretkeeper/internal/secrets/domain"
)

// secretUseCase implements the SecretUseCase interface.
// A nil secretRepo or envelope means the store is not configured.
type secretUseCase struct {
	txManager  database.TxManager
	secretRepo SecretRepository
	envelope   cryptoService.Envelope
	catalog    Catalog
	envPrefix  string
	lookupEnv  LookupEnvFunc
	logger     *slog.Logger
	now        func() time.Time
}

func (s *secretUseCase) storeConfigured() bool {
	return s.secretRepo != nil && s.envelope != nil
}

// envOverride returns the override value for name when it is set and non-empty.
func (s *secretUseCase) envOverride(name string) (string, bool) {
	value, ok := s.lookupEnv(secretsDomain.EnvVariable(s.envPrefix, name))
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// Resolve returns the override value, else the decrypted latest stored version.
// The catalog is not consulted: undeclared names resolve the same way.
func (s *secretUseCase) Resolve(ctx context.Context, name string, actor *string) (string, bool, error) {
	if value, ok := s.envOverride(name); ok {
		return value, true, nil
	}

	if !s.storeConfigured() {
		return "", false, nil
	}

	secret, err := s.secretRepo.GetLatest(ctx, name)
	if err != nil {
		if errors.Is(err, secretsDomain.ErrSecretNotFound) || errors.Is(err, secretsDomain.ErrStoreUnavailable) {
			return "", false, nil
		}
		return "", false, err
	}

	plaintext, err := s.envelope.Decrypt(secret.Encrypted)
	if err != nil {
		return "", false, err
	}
	defer cryptoDomain.Zero(plaintext)

	if err := s.secretRepo.StampLastUsed(ctx, secret.ID, actor, s.now()); err != nil {
		s.logger.Warn("failed to stamp secret usage",
			slog.String("name", name),
			slog.Int64("id", secret.ID),
			slog.Any("error", err),
		)
	}

	return string(plaintext), true, nil
}

// Set validates the write and either edits the latest note or appends a new version.
func (s *secretUseCase) Set(
	ctx context.Context,
	input secretsDomain.SetSecretInput,
) (*secretsDomain.SetSecretResult, error) {
	if !s.storeConfigured() {
		return nil, secretsDomain.ErrStoreNotConfigured
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, secretsDomain.ErrNameRequired
	}
	if utf8.RuneCountInString(name) > secretsDomain.MaxNameLength {
		return nil, secretsDomain.ErrNameTooLong
	}
	if utf8.RuneCountInString(input.Note) > secretsDomain.MaxNoteLength {
		return nil, secretsDomain.ErrNoteTooLong
	}

	actor := secretsDomain.ActorPtr(input.Actor)

	if input.Secret == "" {
		return s.updateNote(ctx, name, input.Note, actor)
	}

	plaintext := []byte(input.Secret)
	defer cryptoDomain.Zero(plaintext)

	encrypted, err := s.envelope.Encrypt(plaintext)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= secretsDomain.MaxSetAttempts; attempt++ {
		now := s.now()
		secret := &secretsDomain.Secret{
			Name:              name,
			Note:              input.Note,
			Encrypted:         encrypted,
			EncryptionKeyName: s.envelope.KeyName(),
			CreatedAt:         now,
			CreatedBy:         actor,
			UpdatedAt:         now,
			UpdatedBy:         actor,
		}

		err := s.txManager.WithTx(ctx, func(txCtx context.Context) error {
			return s.secretRepo.Create(txCtx, secret)
		})
		if err == nil {
			return &secretsDomain.SetSecretResult{Secret: secret}, nil
		}
		if !errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}

		s.logger.Debug("secret version conflict, retrying",
			slog.String("name", name),
			slog.Int("attempt", attempt),
		)
	}

	return nil, secretsDomain.ErrVersionConflict
}

// updateNote edits the note on the latest version of name. The read and the update
// share one transaction so a concurrent write cannot slip between them.
func (s *secretUseCase) updateNote(
	ctx context.Context,
	name, note string,
	actor *string,
) (*secretsDomain.SetSecretResult, error) {
	var latest *secretsDomain.Secret
	now := s.now()

	err := s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		latest, err = s.secretRepo.GetLatest(txCtx, name)
		if err != nil {
			if errors.Is(err, secretsDomain.ErrSecretNotFound) {
				return secretsDomain.ErrSecretRequired
			}
			return err
		}
		return s.secretRepo.UpdateNote(txCtx, latest.ID, note, actor, now)
	})
	if err != nil {
		return nil, err
	}

	latest.Note = note
	latest.UpdatedAt = now
	latest.UpdatedBy = actor
	latest.Encrypted = nil

	return &secretsDomain.SetSecretResult{Secret: latest, NoteOnly: true}, nil
}

// List partitions the catalog into environment-set, stored and unset secrets.
// Stored secrets include names no longer declared.
func (s *secretUseCase) List(ctx context.Context) (*secretsDomain.Listing, error) {
	decls, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	listing := &secretsDomain.Listing{
		Environment: make([]secretsDomain.EnvironmentSecret, 0),
		Stored:      make([]secretsDomain.StoredSecret, 0),
		Unset:       make([]secretsDomain.Declaration, 0),
	}

	envNames := make([]string, 0)
	envSet := make(map[string]struct{})
	firstDecl := make(map[string]*secretsDomain.Declaration)
	for i := range decls {
		d := decls[i]
		if _, ok := firstDecl[d.Name]; !ok {
			firstDecl[d.Name] = &decls[i]
		}
		if _, ok := s.envOverride(d.Name); ok {
			listing.Environment = append(listing.Environment, secretsDomain.EnvironmentSecret{
				Declaration: d,
				Variable:    secretsDomain.EnvVariable(s.envPrefix, d.Name),
			})
			if _, dup := envSet[d.Name]; !dup {
				envSet[d.Name] = struct{}{}
				envNames = append(envNames, d.Name)
			}
		}
	}

	storedSet := make(map[string]struct{})
	if s.storeConfigured() {
		stored, err := s.secretRepo.ListLatest(ctx, envNames)
		if err != nil && !errors.Is(err, secretsDomain.ErrStoreUnavailable) {
			return nil, err
		}
		for _, secret := range stored {
			storedSet[secret.Name] = struct{}{}
			listing.Stored = append(listing.Stored, secretsDomain.StoredSecret{
				Declaration: firstDecl[secret.Name],
				Secret:      secret,
			})
		}
	}

	for _, d := range decls {
		_, inEnv := envSet[d.Name]
		_, inStore := storedSet[d.Name]
		if !inEnv && !inStore {
			listing.Unset = append(listing.Unset, d)
		}
	}

	return listing, nil
}

// Describe returns the declaration, override state and latest stored metadata for name.
func (s *secretUseCase) Describe(ctx context.Context, name string) (*secretsDomain.SecretDetail, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, secretsDomain.ErrNameRequired
	}

	decl, _, err := s.catalog.Lookup(ctx, name)
	if err != nil {
		return nil, err
	}

	_, envSet := s.envOverride(name)
	detail := &secretsDomain.SecretDetail{
		Name:                name,
		Declaration:         decl,
		EnvironmentVariable: secretsDomain.EnvVariable(s.envPrefix, name),
		EnvironmentSet:      envSet,
	}

	if s.storeConfigured() {
		latest, err := s.secretRepo.GetLatest(ctx, name)
		switch {
		case err == nil:
			latest.Encrypted = nil
			detail.Latest = latest
		case errors.Is(err, secretsDomain.ErrSecretNotFound), errors.Is(err, secretsDomain.ErrStoreUnavailable):
		default:
			return nil, err
		}
	}

	return detail, nil
}

// NewSecretUseCase creates a new secret use case instance with the provided dependencies.
// Pass a nil secretRepo and envelope when no encryption key is configured; lookupEnv
// defaults to os.LookupEnv and envPrefix to "SECRETS_".
func NewSecretUseCase(
	txManager database.TxManager,
	secretRepo SecretRepository,
	envelope cryptoService.Envelope,
	catalog Catalog,
	envPrefix string,
	lookupEnv LookupEnvFunc,
	logger *slog.Logger,
) SecretUseCase {
	if envPrefix == "" {
		envPrefix = secretsDomain.DefaultEnvPrefix
	}
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	return &secretUseCase{
		txManager:  txManager,
		secretRepo: secretRepo,
		envelope:   envelope,
		catalog:    catalog,
		envPrefix:  envPrefix,
		lookupEnv:  lookupEnv,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}
