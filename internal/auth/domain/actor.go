package domain

import (
	"regexp"
	"strings"

	"github.com/allisson/secretkeeper/internal/errors"
)

var actorNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.@-]+$`)

// Actor is an authenticated administrator.
type Actor struct {
	Name string
}

// Credential binds an actor name to the Argon2id hash of its token.
type Credential struct {
	Actor string
	Hash  string
}

// String renders the credential as a configuration entry.
func (c Credential) String() string {
	return c.Actor + ActorSeparator + c.Hash
}

// CreateCredentialOutput carries a freshly generated credential. Token is shown once.
type CreateCredentialOutput struct {
	Credential Credential
	Token      string
}

// BearerValue returns the Authorization header value that authenticates as this actor.
func (o *CreateCredentialOutput) BearerValue() string {
	return "Bearer " + o.Credential.Actor + ActorSeparator + o.Token
}

// ValidateActorName checks that name is usable as an actor.
func ValidateActorName(name string) error {
	if name == "" || len(name) > MaxActorNameLength || !actorNamePattern.MatchString(name) {
		return ErrInvalidActorName
	}
	return nil
}

// ParseCredentials parses "actor:hash;actor2:hash" into credentials keyed by actor.
// Blank entries are skipped. Duplicated actors are rejected.
func ParseCredentials(text string) (map[string]Credential, error) {
	credentials := make(map[string]Credential)
	for _, entry := range strings.Split(text, CredentialSeparator) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		actor, hash, ok := strings.Cut(entry, ActorSeparator)
		actor = strings.TrimSpace(actor)
		hash = strings.TrimSpace(hash)
		if !ok || hash == "" {
			return nil, errors.Wrapf(ErrMalformedCredentials, "entry for %q has no hash", actor)
		}
		if err := ValidateActorName(actor); err != nil {
			return nil, errors.Wrapf(ErrMalformedCredentials, "entry %q", actor)
		}
		if _, exists := credentials[actor]; exists {
			return nil, errors.Wrapf(ErrMalformedCredentials, "actor %q listed twice", actor)
		}

		credentials[actor] = Credential{Actor: actor, Hash: hash}
	}
	return credentials, nil
}

// ParseBearerValue splits "actor:token" as sent after the Bearer prefix.
func ParseBearerValue(value string) (actor, token string, ok bool) {
	actor, token, ok = strings.Cut(value, ActorSeparator)
	if !ok || actor == "" || token == "" {
		return "", "", false
	}
	return actor, token, true
}
