// Package domain defines the core domain models and types for secret management.
// Stored secrets are append-only: every set creates a new row with the next version
// for its name, and the highest version is the current value.
package domain

import (
	"time"
)

// Secret is one stored version of a named secret.
type Secret struct {
	// ID identifies this specific version row.
	ID int64
	// Name is the logical secret name, e.g. "OPENAI_API_KEY".
	Name string
	// Note is a short free-form annotation shown to administrators.
	Note string
	// Version is 1 for the first stored value and increments by one per set.
	Version int
	// Encrypted is the sealed envelope blob. Never returned over HTTP.
	Encrypted []byte `json:"-"`
	// EncryptionKeyName is the logical name of the key that sealed Encrypted.
	EncryptionKeyName string
	CreatedAt         time.Time
	CreatedBy         *string
	// UpdatedAt and UpdatedBy move on every note-only edit.
	UpdatedAt time.Time
	UpdatedBy *string
	// DeletedAt and DeletedBy are reserved for soft deletion and never written.
	DeletedAt *time.Time
	DeletedBy *string
	// LastUsedAt and LastUsedBy record the latest successful resolution.
	LastUsedAt *time.Time
	LastUsedBy *string
}

// SetSecretInput carries an administrator write. An empty Secret means note-only update.
type SetSecretInput struct {
	Name   string
	Secret string
	Note   string
	Actor  string
}

// SetSecretResult reports what a write did.
type SetSecretResult struct {
	Secret *Secret
	// NoteOnly is true when the latest version's note was edited in place.
	NoteOnly bool
}

// ActorPtr returns nil for an empty actor so it is stored as NULL.
func ActorPtr(actor string) *string {
	if actor == "" {
		return nil
	}
	return &actor
}
